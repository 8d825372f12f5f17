package model

import "time"

// DiscrepancyStatus moves pending -> in-progress -> resolved, never backwards.
type DiscrepancyStatus string

const (
	DiscrepancyPending    DiscrepancyStatus = "pending"
	DiscrepancyInProgress DiscrepancyStatus = "in-progress"
	DiscrepancyResolved   DiscrepancyStatus = "resolved"
)

// DiscrepancyPriority classifies how urgent a reported issue is.
type DiscrepancyPriority string

const (
	PriorityCritical DiscrepancyPriority = "critical"
	PriorityHigh     DiscrepancyPriority = "high"
	PriorityMedium   DiscrepancyPriority = "medium"
	PriorityLow      DiscrepancyPriority = "low"
)

// Discrepancy is a reported issue against a project, optionally pinned to one
// milestone. While unresolved with RequiresEscrowHold set, the referenced
// milestone cannot be verified. Discrepancies are never deleted; the register
// is the audit trail.
type Discrepancy struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`

	// MilestoneID is empty for project-level issues.
	MilestoneID string `json:"milestone_id,omitempty"`

	Category    string              `json:"category"`
	Priority    DiscrepancyPriority `json:"priority"`
	Status      DiscrepancyStatus   `json:"status"`
	Description string              `json:"description,omitempty"`

	RequiresEscrowHold bool `json:"requires_escrow_hold"`

	ReportedBy string     `json:"reported_by"`
	Resolution string     `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Open reports whether the discrepancy still needs attention.
func (d Discrepancy) Open() bool {
	return d.Status != DiscrepancyResolved
}

// BlocksVerification reports whether this discrepancy holds escrow release
// for its referenced milestone. Evaluated at verification time, never cached.
func (d Discrepancy) BlocksVerification() bool {
	return d.Open() && d.RequiresEscrowHold
}

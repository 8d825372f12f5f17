package model

import "time"

// MilestoneState is the closed set of milestone lifecycle states.
// Transitions only ever move forward: pending -> completed -> verified.
type MilestoneState string

const (
	MilestonePending   MilestoneState = "pending"
	MilestoneCompleted MilestoneState = "completed"
	MilestoneVerified  MilestoneState = "verified"
)

// Project is the aggregate root for one construction project.
// All milestone, escrow and discrepancy updates for a project happen inside a
// single per-project critical section; see service.projectLocks.
type Project struct {
	ID          string `json:"id"`
	DeveloperID string `json:"developer_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// TotalInvestmentCentavos equals the sum of the milestone payment amounts.
	// Stored redundantly so the escrow derivation can cross-check the ledger.
	TotalInvestmentCentavos int64 `json:"total_investment_centavos"`

	Milestones []Milestone `json:"milestones,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Milestone is a discrete, payable unit of construction progress.
// Payment amount and target percentage are fixed at creation; only the state
// machine and the verification metadata mutate after that.
type Milestone struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Ordinal is the position in the project's milestone sequence, starting at 1.
	Ordinal int `json:"ordinal"`

	// TargetPercentage is the completion-of-work target. It must be
	// non-decreasing across a project's ordered milestone list.
	TargetPercentage int `json:"target_percentage"`

	PaymentCentavos int64          `json:"payment_centavos"`
	State           MilestoneState `json:"state"`

	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`

	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	VerifiedBy   string     `json:"verified_by,omitempty"`
	QualityScore *int       `json:"quality_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

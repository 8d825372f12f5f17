package model

// EscrowAccount is the per-project view of escrowed purchase funds.
// It is derived from the milestone list on every read and never stored or
// independently mutated: released + held == the project's total investment.
type EscrowAccount struct {
	ProjectID        string `json:"project_id"`
	ReleasedCentavos int64  `json:"released_centavos"`
	HeldCentavos     int64  `json:"held_centavos"`

	// NextReleaseCentavos is the payment of the lowest-ordinal unreleased
	// milestone, completed milestones first. Zero once everything is verified.
	NextReleaseCentavos int64 `json:"next_release_centavos"`

	// NextReleaseMilestoneID identifies the milestone behind NextReleaseCentavos,
	// empty when no release remains.
	NextReleaseMilestoneID string `json:"next_release_milestone_id,omitempty"`
}

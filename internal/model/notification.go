package model

import "time"

// NotificationType identifies the state transition behind an event.
type NotificationType string

const (
	NotifyProjectCreated      NotificationType = "project.created"
	NotifyMilestoneCompleted  NotificationType = "milestone.completed"
	NotifyMilestoneVerified   NotificationType = "milestone.verified"
	NotifyDocumentSubmitted   NotificationType = "document.submitted"
	NotifyDocumentAdvanced    NotificationType = "document.advanced"
	NotifyDocumentDelivered   NotificationType = "document.delivered"
	NotifyDiscrepancyRaised   NotificationType = "discrepancy.raised"
	NotifyDiscrepancyStarted  NotificationType = "discrepancy.started"
	NotifyDiscrepancyResolved NotificationType = "discrepancy.resolved"
	NotifyEscrowHoldChanged   NotificationType = "discrepancy.hold_changed"
)

// Notification is one append-only event in a project's state-change log.
// Every successful state-changing operation emits exactly one.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	ProjectID string           `json:"project_id"`

	// EntityID references the milestone, document or discrepancy that changed.
	EntityID string `json:"entity_id"`

	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"buildsafe/internal/model"
)

var (
	// ErrValidation marks caller input errors. Specific messages wrap it so
	// the HTTP layer can map the whole family to one status.
	ErrValidation = errors.New("validation failed")

	ErrIDRequired           = fmt.Errorf("%w: id is required", ErrValidation)
	ErrProjectNotFound      = errors.New("project not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDiscrepancyNotFound  = errors.New("discrepancy not found")
	ErrAlreadyResolved      = errors.New("discrepancy already resolved")
	ErrReaderNil            = fmt.Errorf("%w: reader is nil", ErrValidation)
	ErrNoMilestones         = fmt.Errorf("%w: project needs at least one milestone", ErrValidation)
	ErrConfirmationRequired = errors.New("project has released funds; deletion requires explicit confirmation")

	// ErrLedgerInvariant means released + held no longer equals the total
	// investment. That is a bug in the derivation, not a caller mistake; the
	// triggering transition is aborted and nothing is persisted.
	ErrLedgerInvariant = errors.New("escrow ledger invariant violated")
)

// InvalidTransitionError reports a milestone state machine violation.
// It is always recoverable by the caller correcting the request.
type InvalidTransitionError struct {
	MilestoneID string
	From        model.MilestoneState
	To          model.MilestoneState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid milestone transition %s -> %s for %s", e.From, e.To, e.MilestoneID)
}

// EscrowHeldError blocks a verification because open discrepancies require an
// escrow hold. The blocking IDs are surfaced so the caller can resolve them;
// there is no silent override.
type EscrowHeldError struct {
	MilestoneID    string
	DiscrepancyIDs []string
}

func (e *EscrowHeldError) Error() string {
	return fmt.Sprintf("escrow held for milestone %s by discrepancies [%s]",
		e.MilestoneID, strings.Join(e.DiscrepancyIDs, ", "))
}

// InvalidDocumentTransitionError reports a document pipeline regression or
// skipped stage.
type InvalidDocumentTransitionError struct {
	DocumentID string
	From       model.DocumentStatus
	To         model.DocumentStatus
}

func (e *InvalidDocumentTransitionError) Error() string {
	return fmt.Sprintf("invalid document transition %s -> %s for %s", e.From, e.To, e.DocumentID)
}

// InvalidDiscrepancyTransitionError reports a discrepancy status regression.
type InvalidDiscrepancyTransitionError struct {
	DiscrepancyID string
	From          model.DiscrepancyStatus
	To            model.DiscrepancyStatus
}

func (e *InvalidDiscrepancyTransitionError) Error() string {
	return fmt.Sprintf("invalid discrepancy transition %s -> %s for %s", e.From, e.To, e.DiscrepancyID)
}

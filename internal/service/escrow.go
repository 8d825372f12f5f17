package service

import (
	"buildsafe/internal/model"
)

// deriveEscrow recomputes the escrow account from the full milestone list.
// It is a pure function, recomputed on every read and every transition rather
// than incrementally patched, so the account can never drift from the ledger.
//
//	released    = sum of verified payments
//	held        = totalInvestment - released
//	nextRelease = payment of the lowest-ordinal completed milestone, or the
//	              lowest-ordinal pending one if nothing is completed-but-unverified
//
// totalInvestment is the amount recorded on the project row; a mismatch with
// the milestone sum is a fatal ErrLedgerInvariant.
func deriveEscrow(projectID string, totalInvestmentCentavos int64, milestones []model.Milestone) (*model.EscrowAccount, error) {
	var sum, released int64
	for _, m := range milestones {
		sum += m.PaymentCentavos
		if m.State == model.MilestoneVerified {
			released += m.PaymentCentavos
		}
	}
	if sum != totalInvestmentCentavos {
		return nil, ErrLedgerInvariant
	}

	held := totalInvestmentCentavos - released
	if released < 0 || held < 0 || released+held != totalInvestmentCentavos {
		return nil, ErrLedgerInvariant
	}

	acct := &model.EscrowAccount{
		ProjectID:        projectID,
		ReleasedCentavos: released,
		HeldCentavos:     held,
	}

	// Milestones arrive ordered by ordinal. Completed milestones outrank
	// pending ones: the next release is the next payment a buyer should
	// expect, not necessarily the next ordinal.
	for _, m := range milestones {
		if m.State == model.MilestoneCompleted {
			acct.NextReleaseCentavos = m.PaymentCentavos
			acct.NextReleaseMilestoneID = m.ID
			return acct, nil
		}
	}
	for _, m := range milestones {
		if m.State == model.MilestonePending {
			acct.NextReleaseCentavos = m.PaymentCentavos
			acct.NextReleaseMilestoneID = m.ID
			return acct, nil
		}
	}
	return acct, nil
}

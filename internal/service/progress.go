package service

import (
	"math"

	"buildsafe/internal/model"
)

// ComputeApplicationProgress reports how much of a buyer's conditionally
// required document set has been submitted, as an integer percentage 0-100.
//
// The required set depends on the profile: government ID and birth
// certificate always; marriage certificate only for married buyers; the
// employment/income document pair plus the TIN only once an employment type
// is declared. The function is deterministic and side-effect-free; it is
// called repeatedly for display and never mutates a persisted record.
func ComputeApplicationProgress(p model.BuyerApplicationProfile) int {
	type field struct {
		required  bool
		submitted bool
	}

	hasEmployment := p.EmploymentType != ""

	fields := []field{
		{required: true, submitted: p.HasGovernmentID},
		{required: true, submitted: p.HasBirthCertificate},
		{required: p.CivilStatus == model.CivilMarried, submitted: p.HasMarriageCertificate},
		{required: hasEmployment, submitted: p.HasEmploymentDocs},
		{required: hasEmployment, submitted: p.HasIncomeDocs},
		{required: hasEmployment, submitted: p.TINNumber != ""},
	}

	total, submitted := 0, 0
	for _, f := range fields {
		if !f.required {
			continue
		}
		total++
		if f.submitted {
			submitted++
		}
	}

	if total == 0 {
		if p.TINNumber != "" {
			return 20
		}
		return 0
	}

	progress := int(math.Round(float64(submitted) / float64(total) * 100))

	// A buyer who has given any basic profile detail has started; report 5
	// so the tracker can tell them apart from an untouched application.
	if progress == 0 && (p.TINNumber != "" || p.CivilStatus != "" || p.EmploymentType != "") {
		return 5
	}
	return progress
}

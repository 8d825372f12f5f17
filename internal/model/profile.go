package model

// CivilStatus values accepted by the progress calculator.
type CivilStatus string

const (
	CivilSingle  CivilStatus = "single"
	CivilMarried CivilStatus = "married"
	CivilWidowed CivilStatus = "widowed"
)

// EmploymentType values accepted by the progress calculator. All three require
// the same pair of logical employment/income fields; only the underlying
// evidentiary documents differ (payslips, business registration, remittance
// proof), and any of them satisfies the field.
type EmploymentType string

const (
	EmploymentEmployed     EmploymentType = "employed"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentOFW          EmploymentType = "ofw"
)

// BuyerApplicationProfile is the input to the application progress
// calculation. It is supplied by the caller per request and never persisted
// by this service.
type BuyerApplicationProfile struct {
	CivilStatus    CivilStatus    `json:"civil_status,omitempty"`
	EmploymentType EmploymentType `json:"employment_type,omitempty"`
	TINNumber      string         `json:"tin_number,omitempty"`

	HasGovernmentID        bool `json:"has_government_id"`
	HasBirthCertificate    bool `json:"has_birth_certificate"`
	HasMarriageCertificate bool `json:"has_marriage_certificate"`
	HasEmploymentDocs      bool `json:"has_employment_docs"`
	HasIncomeDocs          bool `json:"has_income_docs"`
}

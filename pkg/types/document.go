package types

import "time"

type DocStatus string

const (
	DocStatusDraft    DocStatus = "DRAFT"
	DocStatusActive   DocStatus = "ACTIVE"
	DocStatusArchived DocStatus = "ARCHIVED"
)

// EmployerDoc is the legal case bundle for one employer/helper pairing.
// VersionNumber increments whenever a legally material ("strict") field on
// any of its sub-documents changes after creation, marking previously
// generated PDFs and collected signatures stale.
type EmployerDoc struct {
	ID         string `db:"id"`
	AgencyID   string `db:"agency_id"`
	EmployerID string `db:"employer_id"`
	MaidID     string `db:"maid_id"`

	CaseRef       string    `db:"case_ref"`
	VersionNumber int       `db:"version_number"`
	Status        DocStatus `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ServiceFee is the service fee schedule sub-document. All money fields
// are legally material.
type ServiceFee struct {
	ID            string `db:"id"`
	EmployerDocID string `db:"employer_doc_id"`

	PlacementFeeCents   int `db:"placement_fee_cents" form:"placement_fee_cents"`
	DepositCents        int `db:"deposit_cents" form:"deposit_cents"`
	PerReplacementCents int `db:"per_replacement_cents" form:"per_replacement_cents"`

	Remarks *string `db:"remarks" form:"remarks"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ServiceAgreement is the agency/employer service agreement sub-document.
type ServiceAgreement struct {
	ID            string `db:"id"`
	EmployerDocID string `db:"employer_doc_id"`

	DurationMonths   int `db:"duration_months" form:"duration_months"`
	NoticeDays       int `db:"notice_days" form:"notice_days"`
	ReplacementCount int `db:"replacement_count" form:"replacement_count"`

	Remarks *string `db:"remarks" form:"remarks"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EmploymentContract is the employer/helper contract sub-document.
type EmploymentContract struct {
	ID            string `db:"id"`
	EmployerDocID string `db:"employer_doc_id"`

	SalaryCents    int `db:"salary_cents" form:"salary_cents"`
	DaysOffMonthly int `db:"days_off_monthly" form:"days_off_monthly"`
	ProbationDays  int `db:"probation_days" form:"probation_days"`

	Remarks *string `db:"remarks" form:"remarks"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DocType names the PDF-renderable documents of a case bundle and fixes
// the download filename for each.
type DocType string

const (
	DocTypeServiceFee         DocType = "service-fee-schedule"
	DocTypeServiceAgreement   DocType = "service-agreement"
	DocTypeEmploymentContract DocType = "employment-contract"
)

func (t DocType) Filename() string {
	return string(t) + ".pdf"
}

func (t DocType) Valid() bool {
	switch t {
	case DocTypeServiceFee, DocTypeServiceAgreement, DocTypeEmploymentContract:
		return true
	}
	return false
}

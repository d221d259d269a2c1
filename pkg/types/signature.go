package types

import "time"

// SignerRole identifies one signing party on a case bundle. Employer-side
// roles verify with last-4 NRIC/FIN + mobile number; the FDW verifies with
// last-4 passport + date of birth.
type SignerRole string

const (
	RoleEmployer SignerRole = "employer"
	RoleSpouse   SignerRole = "spouse"
	RoleSponsor  SignerRole = "sponsor"
	RoleFDW      SignerRole = "fdw"
)

func (r SignerRole) Valid() bool {
	switch r {
	case RoleEmployer, RoleSpouse, RoleSponsor, RoleFDW:
		return true
	}
	return false
}

// DocSignature is the signature sub-record of an EmployerDoc: one slug,
// one single-use verification token and one captured image per role.
// Renewing a slug overwrites the old one; the previously distributed link
// and any outstanding token die with it.
type DocSignature struct {
	ID            string `db:"id"`
	EmployerDocID string `db:"employer_doc_id"`

	EmployerSlug      string     `db:"employer_slug"`
	EmployerToken     *string    `db:"employer_token"`
	EmployerSignature *string    `db:"employer_signature"`
	EmployerSignedAt  *time.Time `db:"employer_signed_at"`

	SpouseSlug      string     `db:"spouse_slug"`
	SpouseToken     *string    `db:"spouse_token"`
	SpouseSignature *string    `db:"spouse_signature"`
	SpouseSignedAt  *time.Time `db:"spouse_signed_at"`

	SponsorSlug      string     `db:"sponsor_slug"`
	SponsorToken     *string    `db:"sponsor_token"`
	SponsorSignature *string    `db:"sponsor_signature"`
	SponsorSignedAt  *time.Time `db:"sponsor_signed_at"`

	FDWSlug      string     `db:"fdw_slug"`
	FDWToken     *string    `db:"fdw_token"`
	FDWSignature *string    `db:"fdw_signature"`
	FDWSignedAt  *time.Time `db:"fdw_signed_at"`

	WitnessName      *string `db:"witness_name"`
	WitnessNRICLast4 *string `db:"witness_nric_last4"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Slug returns the role's current signing slug.
func (s *DocSignature) Slug(role SignerRole) string {
	switch role {
	case RoleEmployer:
		return s.EmployerSlug
	case RoleSpouse:
		return s.SpouseSlug
	case RoleSponsor:
		return s.SponsorSlug
	case RoleFDW:
		return s.FDWSlug
	}
	return ""
}

// Token returns the role's outstanding verification token, nil when the
// challenge has not been solved or the token has been consumed.
func (s *DocSignature) Token(role SignerRole) *string {
	switch role {
	case RoleEmployer:
		return s.EmployerToken
	case RoleSpouse:
		return s.SpouseToken
	case RoleSponsor:
		return s.SponsorToken
	case RoleFDW:
		return s.FDWToken
	}
	return nil
}

// Signature returns the role's captured signature image, nil if unsigned.
func (s *DocSignature) Signature(role SignerRole) *string {
	switch role {
	case RoleEmployer:
		return s.EmployerSignature
	case RoleSpouse:
		return s.SpouseSignature
	case RoleSponsor:
		return s.SponsorSignature
	case RoleFDW:
		return s.FDWSignature
	}
	return nil
}

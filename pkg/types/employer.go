package types

import "time"

type EmployerStatus string

const (
	EmployerStatusActive   EmployerStatus = "ACTIVE"
	EmployerStatusArchived EmployerStatus = "ARCHIVED"
)

type Employer struct {
	ID       string `db:"id"`
	AgencyID string `db:"agency_id"`

	Name         string `db:"name" form:"name"`
	Email        string `db:"email" form:"email"`
	MobileNumber string `db:"mobile_number" form:"mobile_number"`
	Address      string `db:"address" form:"address"`

	// NRIC/FIN is stored encrypted across three sibling columns. Never
	// read these directly; go through crypto.Codec.
	NRICCiphertext []byte `db:"nric"`
	NRICNonce      []byte `db:"nric_nonce"`
	NRICTag        []byte `db:"nric_tag"`

	Status    EmployerStatus `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (e *Employer) NRIC() EncryptedField {
	return EncryptedField{Ciphertext: e.NRICCiphertext, Nonce: e.NRICNonce, Tag: e.NRICTag}
}

func (e *Employer) SetNRIC(f EncryptedField) {
	e.NRICCiphertext = f.Ciphertext
	e.NRICNonce = f.Nonce
	e.NRICTag = f.Tag
}

// EmployerForm is the decoded POST body for employer create/update. The
// NRIC arrives as plaintext and is encrypted before it touches the store.
type EmployerForm struct {
	Name         string `form:"name"`
	Email        string `form:"email"`
	MobileNumber string `form:"mobile_number"`
	Address      string `form:"address"`
	NRIC         string `form:"nric"`
}

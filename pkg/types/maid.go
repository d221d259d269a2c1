package types

import "time"

type MaidType string

const (
	MaidTypeNew         MaidType = "NEW"
	MaidTypeTransfer    MaidType = "TRANSFER"
	MaidTypeExperienced MaidType = "EXPERIENCED"
)

type Maid struct {
	ID       string `db:"id"`
	AgencyID string `db:"agency_id"`

	ReferenceNumber string `db:"reference_number" form:"reference_number"`
	Name            string `db:"name" form:"name"`
	CountryOfOrigin string `db:"country_of_origin" form:"country_of_origin"`

	// Passport number, envelope-encrypted across three sibling columns.
	PassportCiphertext []byte `db:"passport_number"`
	PassportNonce      []byte `db:"passport_number_nonce"`
	PassportTag        []byte `db:"passport_number_tag"`

	DateOfBirth  time.Time `db:"date_of_birth"`
	MaidType     MaidType  `db:"maid_type"`
	SalaryCents  int       `db:"salary_cents" form:"salary_cents"`
	DaysOff      int       `db:"days_off" form:"days_off"`
	PhotoKey     *string   `db:"photo_key"`
	AboutMe      *string   `db:"about_me" form:"about_me"`
	Published    bool      `db:"published"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m *Maid) Passport() EncryptedField {
	return EncryptedField{Ciphertext: m.PassportCiphertext, Nonce: m.PassportNonce, Tag: m.PassportTag}
}

func (m *Maid) SetPassport(f EncryptedField) {
	m.PassportCiphertext = f.Ciphertext
	m.PassportNonce = f.Nonce
	m.PassportTag = f.Tag
}

// Age in whole years as of today.
func (m *Maid) Age() int {
	today := time.Now()
	years := today.Year() - m.DateOfBirth.Year()
	anniversary := m.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}
	return years
}

type MaidForm struct {
	ReferenceNumber string `form:"reference_number"`
	Name            string `form:"name"`
	CountryOfOrigin string `form:"country_of_origin"`
	PassportNumber  string `form:"passport_number"`
	DateOfBirth     string `form:"date_of_birth"` // 2006-01-02
	MaidType        string `form:"maid_type"`
	SalaryCents     int    `form:"salary_cents"`
	DaysOff         int    `form:"days_off"`
	AboutMe         string `form:"about_me"`
	Published       bool   `form:"published"`
}

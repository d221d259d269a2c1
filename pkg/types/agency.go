package types

import "time"

type Agency struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	LicenseNo string `db:"license_no"`
	Email     string `db:"email"`

	StripeCustomerID     *string `db:"stripe_customer_id"`
	StripeSubscriptionID *string `db:"stripe_subscription_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AgencyStaff ties a Cognito subject to an agency. The subject is the row
// id; there is no separate credential store.
type AgencyStaff struct {
	ID         string    `db:"id"`
	AgencyID   string    `db:"agency_id"`
	Email      *string   `db:"email"`
	GivenName  *string   `db:"given_name"`
	FamilyName *string   `db:"family_name"`
	Role       string    `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const (
	StaffRoleOwner   = "owner"
	StaffRoleManager = "manager"
	StaffRoleMember  = "member"
)

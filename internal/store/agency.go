package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	agencyTableName = "maidlink.agencies"
	staffTableName  = "maidlink.agency_staff"
)

var (
	agencyColumns = utils.StructTagValues(types.Agency{})
	staffColumns  = utils.StructTagValues(types.AgencyStaff{})
)

type AgencyRepository struct {
	pool *pgxpool.Pool
}

func NewAgencyRepository(pool *pgxpool.Pool) *AgencyRepository {
	return &AgencyRepository{pool: pool}
}

func (r *AgencyRepository) Agency(ctx context.Context, agencyID string) (*types.Agency, error) {
	query, args, err := psql().
		Select(agencyColumns...).
		From(agencyTableName).
		Where(sq.Eq{"id": agencyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency query: %w", err)
	}

	var agency types.Agency
	err = pgxscan.Get(ctx, r.pool, &agency, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to fetch agency: %w", err)
	}

	return &agency, nil
}

func (r *AgencyRepository) CreateAgency(ctx context.Context, agency *types.Agency) error {
	now := time.Now()
	if agency.ID == "" {
		agency.ID = utils.NanoID()
	}
	agency.CreatedAt = now
	agency.UpdatedAt = now

	query, args, err := psql().
		Insert(agencyTableName).
		SetMap(utils.StructToMap(agency)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert agency query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create agency")
}

// SetStripeIDs records the hosted billing objects after a subscription is
// created.
func (r *AgencyRepository) SetStripeIDs(ctx context.Context, agencyID, customerID, subscriptionID string) error {
	query, args, err := psql().
		Update(agencyTableName).
		Set("stripe_customer_id", customerID).
		Set("stripe_subscription_id", subscriptionID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate stripe ids update query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update agency stripe ids")
}

// ClearStripeSubscription drops the subscription id after cancellation,
// keeping the customer id for a later resubscribe.
func (r *AgencyRepository) ClearStripeSubscription(ctx context.Context, agencyID string) error {
	query, args, err := psql().
		Update(agencyTableName).
		Set("stripe_subscription_id", nil).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate clear stripe subscription query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to clear agency stripe subscription")
}

func (r *AgencyRepository) Staff(ctx context.Context, staffID string) (*types.AgencyStaff, error) {
	query, args, err := psql().
		Select(staffColumns...).
		From(staffTableName).
		Where(sq.Eq{"id": staffID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate staff query: %w", err)
	}

	var staff types.AgencyStaff
	err = pgxscan.Get(ctx, r.pool, &staff, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to fetch agency staff: %w", err)
	}

	return &staff, nil
}

// AgencyByEmail resolves the agency registered under a contact email.
// Used to attach the first authenticated staff login to its tenant.
func (r *AgencyRepository) AgencyByEmail(ctx context.Context, email string) (*types.Agency, error) {
	query, args, err := psql().
		Select(agencyColumns...).
		From(agencyTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency by email query: %w", err)
	}

	var agency types.Agency
	err = pgxscan.Get(ctx, r.pool, &agency, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAgencyNotFound
		}
		return nil, fmt.Errorf("failed to fetch agency by email: %w", err)
	}

	return &agency, nil
}

// UpsertStaffIdentity keeps the local staff row in sync with the identity
// provider's claims. The role only applies on first insert.
func (r *AgencyRepository) UpsertStaffIdentity(ctx context.Context, staffID, agencyID, email, givenName, familyName, role string) error {
	now := time.Now()

	var emailPtr *string
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail != "" {
		emailPtr = &trimmedEmail
	}

	var givenNamePtr *string
	trimmedGivenName := strings.TrimSpace(givenName)
	if trimmedGivenName != "" {
		givenNamePtr = &trimmedGivenName
	}

	var familyNamePtr *string
	trimmedFamilyName := strings.TrimSpace(familyName)
	if trimmedFamilyName != "" {
		familyNamePtr = &trimmedFamilyName
	}

	query, args, err := psql().
		Insert(staffTableName).
		Columns("id", "agency_id", "email", "given_name", "family_name", "role", "created_at", "updated_at").
		Values(staffID, agencyID, emailPtr, givenNamePtr, familyNamePtr, role, now, now).
		Suffix("ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, given_name = EXCLUDED.given_name, family_name = EXCLUDED.family_name, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert staff identity query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert staff identity")
}

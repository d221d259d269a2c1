package store

import (
	"context"
	"fmt"
	"time"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employerTableName = "maidlink.employers"

var employerColumns = utils.StructTagValues(types.Employer{})

type EmployerRepository struct {
	pool *pgxpool.Pool
}

func NewEmployerRepository(pool *pgxpool.Pool) *EmployerRepository {
	return &EmployerRepository{pool: pool}
}

func (r *EmployerRepository) Employer(ctx context.Context, agencyID, employerID string) (*types.Employer, error) {
	query, args, err := psql().
		Select(employerColumns...).
		From(employerTableName).
		Where(sq.Eq{"id": employerID, "agency_id": agencyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate employer query: %w", err)
	}

	var employer types.Employer
	err = pgxscan.Get(ctx, r.pool, &employer, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEmployerNotFound
		}
		return nil, fmt.Errorf("failed to fetch employer: %w", err)
	}

	return &employer, nil
}

func (r *EmployerRepository) Employers(ctx context.Context, agencyID string, status types.EmployerStatus) ([]*types.Employer, error) {
	query, args, err := psql().
		Select(employerColumns...).
		From(employerTableName).
		Where(sq.Eq{"agency_id": agencyID, "status": status}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate employers query: %w", err)
	}

	var employers []*types.Employer
	err = pgxscan.Select(ctx, r.pool, &employers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employers: %w", err)
	}

	return employers, nil
}

func (r *EmployerRepository) CreateEmployer(ctx context.Context, employer *types.Employer) error {
	now := time.Now()
	if employer.ID == "" {
		employer.ID = utils.NanoID()
	}
	employer.Status = types.EmployerStatusActive
	employer.CreatedAt = now
	employer.UpdatedAt = now

	query, args, err := psql().
		Insert(employerTableName).
		SetMap(utils.StructToMap(employer)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert employer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create employer")
}

func (r *EmployerRepository) UpdateEmployer(ctx context.Context, employer *types.Employer) error {
	employer.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(employerTableName).
		SetMap(utils.StructToMap(employer)).
		Where(sq.Eq{"id": employer.ID, "agency_id": employer.AgencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update employer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update employer")
}

func (r *EmployerRepository) SetEmployerStatus(ctx context.Context, agencyID, employerID string, status types.EmployerStatus) error {
	query, args, err := psql().
		Update(employerTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": employerID, "agency_id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate employer status query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update employer status")
}

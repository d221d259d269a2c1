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

const maidTableName = "maidlink.maids"

var maidColumns = utils.StructTagValues(types.Maid{})

// MaidFilter narrows the public browse listing. Zero values mean "any".
type MaidFilter struct {
	CountryOfOrigin string
	MaidType        types.MaidType
	MaxSalaryCents  int
}

type MaidRepository struct {
	pool *pgxpool.Pool
}

func NewMaidRepository(pool *pgxpool.Pool) *MaidRepository {
	return &MaidRepository{pool: pool}
}

func (r *MaidRepository) Maid(ctx context.Context, maidID string) (*types.Maid, error) {
	query, args, err := psql().
		Select(maidColumns...).
		From(maidTableName).
		Where(sq.Eq{"id": maidID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate maid query: %w", err)
	}

	var maid types.Maid
	err = pgxscan.Get(ctx, r.pool, &maid, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrMaidNotFound
		}
		return nil, fmt.Errorf("failed to fetch maid: %w", err)
	}

	return &maid, nil
}

func (r *MaidRepository) AgencyMaid(ctx context.Context, agencyID, maidID string) (*types.Maid, error) {
	query, args, err := psql().
		Select(maidColumns...).
		From(maidTableName).
		Where(sq.Eq{"id": maidID, "agency_id": agencyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency maid query: %w", err)
	}

	var maid types.Maid
	err = pgxscan.Get(ctx, r.pool, &maid, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrMaidNotFound
		}
		return nil, fmt.Errorf("failed to fetch agency maid: %w", err)
	}

	return &maid, nil
}

func (r *MaidRepository) AgencyMaids(ctx context.Context, agencyID string) ([]*types.Maid, error) {
	query, args, err := psql().
		Select(maidColumns...).
		From(maidTableName).
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("reference_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency maids query: %w", err)
	}

	var maids []*types.Maid
	err = pgxscan.Select(ctx, r.pool, &maids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agency maids: %w", err)
	}

	return maids, nil
}

// PublishedMaids is the public browse listing.
func (r *MaidRepository) PublishedMaids(ctx context.Context, filter MaidFilter) ([]*types.Maid, error) {
	builder := psql().
		Select(maidColumns...).
		From(maidTableName).
		Where(sq.Eq{"published": true}).
		OrderBy("created_at DESC")

	if filter.CountryOfOrigin != "" {
		builder = builder.Where(sq.Eq{"country_of_origin": filter.CountryOfOrigin})
	}

	if filter.MaidType != "" {
		builder = builder.Where(sq.Eq{"maid_type": filter.MaidType})
	}

	if filter.MaxSalaryCents > 0 {
		builder = builder.Where(sq.LtOrEq{"salary_cents": filter.MaxSalaryCents})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate published maids query: %w", err)
	}

	var maids []*types.Maid
	err = pgxscan.Select(ctx, r.pool, &maids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published maids: %w", err)
	}

	return maids, nil
}

func (r *MaidRepository) MaidsByIDs(ctx context.Context, maidIDs []string) ([]*types.Maid, error) {
	if len(maidIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql().
		Select(maidColumns...).
		From(maidTableName).
		Where(sq.Eq{"id": maidIDs, "published": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate maids by ids query: %w", err)
	}

	var maids []*types.Maid
	err = pgxscan.Select(ctx, r.pool, &maids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch maids by ids: %w", err)
	}

	return maids, nil
}

func (r *MaidRepository) CreateMaid(ctx context.Context, maid *types.Maid) error {
	now := time.Now()
	if maid.ID == "" {
		maid.ID = utils.NanoID()
	}
	maid.CreatedAt = now
	maid.UpdatedAt = now

	query, args, err := psql().
		Insert(maidTableName).
		SetMap(utils.StructToMap(maid)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert maid query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create maid")
}

func (r *MaidRepository) UpdateMaid(ctx context.Context, maid *types.Maid) error {
	maid.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(maidTableName).
		SetMap(utils.StructToMap(maid)).
		Where(sq.Eq{"id": maid.ID, "agency_id": maid.AgencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update maid query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update maid")
}

func (r *MaidRepository) SetMaidPhoto(ctx context.Context, agencyID, maidID, photoKey string) error {
	query, args, err := psql().
		Update(maidTableName).
		Set("photo_key", nullable(photoKey)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": maidID, "agency_id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate maid photo query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update maid photo")
}

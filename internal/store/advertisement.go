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

const advertisementTableName = "maidlink.advertisements"

var advertisementColumns = utils.StructTagValues(types.Advertisement{})

type AdvertisementRepository struct {
	pool *pgxpool.Pool
}

func NewAdvertisementRepository(pool *pgxpool.Pool) *AdvertisementRepository {
	return &AdvertisementRepository{pool: pool}
}

func (r *AdvertisementRepository) CreateAdvertisement(ctx context.Context, ad *types.Advertisement) error {
	now := time.Now()
	if ad.ID == "" {
		ad.ID = utils.NanoID()
	}
	ad.CreatedAt = now
	ad.UpdatedAt = now

	query, args, err := psql().
		Insert(advertisementTableName).
		SetMap(utils.StructToMap(ad)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert advertisement query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create advertisement")
}

// ActiveAdvertisements returns ads currently within their run window for
// the given placement.
func (r *AdvertisementRepository) ActiveAdvertisements(ctx context.Context, placement types.AdPlacement, at time.Time) ([]*types.Advertisement, error) {
	query, args, err := psql().
		Select(advertisementColumns...).
		From(advertisementTableName).
		Where(sq.LtOrEq{"starts_at": at}).
		Where(sq.Gt{"ends_at": at}).
		Where(sq.Eq{"placement": placement}).
		OrderBy("starts_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate active advertisements query: %w", err)
	}

	var ads []*types.Advertisement
	err = pgxscan.Select(ctx, r.pool, &ads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active advertisements: %w", err)
	}

	return ads, nil
}

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

const enquiryTableName = "maidlink.enquiries"

var enquiryColumns = utils.StructTagValues(types.Enquiry{})

type EnquiryRepository struct {
	pool *pgxpool.Pool
}

func NewEnquiryRepository(pool *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{pool: pool}
}

func (r *EnquiryRepository) CreateEnquiry(ctx context.Context, enquiry *types.Enquiry) error {
	enquiry.ID = utils.NanoID()
	enquiry.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(enquiryTableName).
		SetMap(utils.StructToMap(enquiry)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert enquiry query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create enquiry")
}

// AgencyEnquiries returns enquiries about the agency's maids, newest first.
func (r *EnquiryRepository) AgencyEnquiries(ctx context.Context, agencyID string) ([]*types.Enquiry, error) {
	builder := psql().
		Select(utils.PrefixedColumns("e", enquiryColumns)...).
		From(enquiryTableName + " e").
		Join(maidTableName + " m ON m.id = e.maid_id").
		Where(sq.Eq{"m.agency_id": agencyID}).
		OrderBy("e.created_at DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency enquiries query: %w", err)
	}

	var enquiries []*types.Enquiry
	err = pgxscan.Select(ctx, r.pool, &enquiries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agency enquiries: %w", err)
	}

	return enquiries, nil
}

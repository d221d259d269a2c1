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

const signatureTableName = "maidlink.doc_signatures"

var signatureColumns = utils.StructTagValues(types.DocSignature{})

type SignatureRepository struct {
	pool *pgxpool.Pool
}

func NewSignatureRepository(pool *pgxpool.Pool) *SignatureRepository {
	return &SignatureRepository{pool: pool}
}

func (r *SignatureRepository) SignatureByDoc(ctx context.Context, docID string) (*types.DocSignature, error) {
	query, args, err := psql().
		Select(signatureColumns...).
		From(signatureTableName).
		Where(sq.Eq{"employer_doc_id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signature by doc query: %w", err)
	}

	var sig types.DocSignature
	err = pgxscan.Get(ctx, r.pool, &sig, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrSignatureNotFound
		}
		return nil, fmt.Errorf("failed to fetch signature by doc: %w", err)
	}

	return &sig, nil
}

// SignatureBySlug resolves a signing link to its record and role. A slug
// that was overwritten by renewal matches nothing.
func (r *SignatureRepository) SignatureBySlug(ctx context.Context, slug string) (*types.DocSignature, types.SignerRole, error) {
	query, args, err := psql().
		Select(signatureColumns...).
		From(signatureTableName).
		Where(sq.Or{
			sq.Eq{"employer_slug": slug},
			sq.Eq{"spouse_slug": slug},
			sq.Eq{"sponsor_slug": slug},
			sq.Eq{"fdw_slug": slug},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate signature by slug query: %w", err)
	}

	var sig types.DocSignature
	err = pgxscan.Get(ctx, r.pool, &sig, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, "", types.ErrSignatureNotFound
		}
		return nil, "", fmt.Errorf("failed to fetch signature by slug: %w", err)
	}

	for _, role := range []types.SignerRole{types.RoleEmployer, types.RoleSpouse, types.RoleSponsor, types.RoleFDW} {
		if sig.Slug(role) == slug {
			return &sig, role, nil
		}
	}

	return nil, "", types.ErrSignatureNotFound
}

func (r *SignatureRepository) CreateSignature(ctx context.Context, sig *types.DocSignature) error {
	now := time.Now()
	sig.ID = utils.NanoID()
	sig.CreatedAt = now
	sig.UpdatedAt = now

	query, args, err := psql().
		Insert(signatureTableName).
		SetMap(utils.StructToMap(sig)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert signature query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create signature")
}

// SetToken stores the role's verification token after a solved identity
// challenge. Any previously outstanding token for the role is replaced.
func (r *SignatureRepository) SetToken(ctx context.Context, sigID string, role types.SignerRole, token string) error {
	column, err := roleColumn(role, "token")
	if err != nil {
		return err
	}

	query, args, err := psql().
		Update(signatureTableName).
		Set(column, token).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": sigID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate set token query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to set signature token")
}

// SaveSignature persists the captured image and consumes the role's token
// in a single statement, making the token single-use.
func (r *SignatureRepository) SaveSignature(ctx context.Context, sigID string, role types.SignerRole, image string, signedAt time.Time) error {
	signatureColumn, err := roleColumn(role, "signature")
	if err != nil {
		return err
	}
	tokenColumn, err := roleColumn(role, "token")
	if err != nil {
		return err
	}
	signedAtColumn, err := roleColumn(role, "signed_at")
	if err != nil {
		return err
	}

	query, args, err := psql().
		Update(signatureTableName).
		Set(signatureColumn, image).
		Set(signedAtColumn, signedAt).
		Set(tokenColumn, nil).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": sigID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate save signature query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to save signature")
}

// RenewSlug overwrites the role's slug, invalidating the previously
// distributed link along with any outstanding token and captured
// signature for that role.
func (r *SignatureRepository) RenewSlug(ctx context.Context, sigID string, role types.SignerRole, newSlug string) error {
	slugColumn, err := roleColumn(role, "slug")
	if err != nil {
		return err
	}
	tokenColumn, err := roleColumn(role, "token")
	if err != nil {
		return err
	}
	signatureColumn, err := roleColumn(role, "signature")
	if err != nil {
		return err
	}
	signedAtColumn, err := roleColumn(role, "signed_at")
	if err != nil {
		return err
	}

	query, args, err := psql().
		Update(signatureTableName).
		Set(slugColumn, newSlug).
		Set(tokenColumn, nil).
		Set(signatureColumn, nil).
		Set(signedAtColumn, nil).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": sigID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate renew slug query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to renew signature slug")
}

func (r *SignatureRepository) SetWitness(ctx context.Context, sigID, name, nricLast4 string) error {
	query, args, err := psql().
		Update(signatureTableName).
		Set("witness_name", name).
		Set("witness_nric_last4", nricLast4).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": sigID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate set witness query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to set witness")
}

func roleColumn(role types.SignerRole, suffix string) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("unknown signer role %q", role)
	}
	return fmt.Sprintf("%s_%s", role, suffix), nil
}

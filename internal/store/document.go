package store

import (
	"context"
	"fmt"
	"time"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	docTableName                = "maidlink.employer_docs"
	serviceFeeTableName         = "maidlink.doc_service_fees"
	serviceAgreementTableName   = "maidlink.doc_service_agreements"
	employmentContractTableName = "maidlink.doc_employment_contracts"
)

var (
	docColumns                = utils.StructTagValues(types.EmployerDoc{})
	serviceFeeColumns         = utils.StructTagValues(types.ServiceFee{})
	serviceAgreementColumns   = utils.StructTagValues(types.ServiceAgreement{})
	employmentContractColumns = utils.StructTagValues(types.EmploymentContract{})
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Doc(ctx context.Context, agencyID, docID string) (*types.EmployerDoc, error) {
	query, args, err := psql().
		Select(docColumns...).
		From(docTableName).
		Where(sq.Eq{"id": docID, "agency_id": agencyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate doc query: %w", err)
	}

	var doc types.EmployerDoc
	err = pgxscan.Get(ctx, r.pool, &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch doc: %w", err)
	}

	return &doc, nil
}

// DocByID fetches a doc without the agency scope. Used by the public
// signing flow, which authenticates with a slug rather than a session.
func (r *DocumentRepository) DocByID(ctx context.Context, docID string) (*types.EmployerDoc, error) {
	query, args, err := psql().
		Select(docColumns...).
		From(docTableName).
		Where(sq.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate doc by id query: %w", err)
	}

	var doc types.EmployerDoc
	err = pgxscan.Get(ctx, r.pool, &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch doc by id: %w", err)
	}

	return &doc, nil
}

func (r *DocumentRepository) Docs(ctx context.Context, agencyID string) ([]*types.EmployerDoc, error) {
	query, args, err := psql().
		Select(docColumns...).
		From(docTableName).
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate docs query: %w", err)
	}

	var docs []*types.EmployerDoc
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch docs: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) CreateDoc(ctx context.Context, doc *types.EmployerDoc) error {
	now := time.Now()
	doc.ID = utils.NanoID()
	doc.VersionNumber = 1
	doc.Status = types.DocStatusDraft
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query, args, err := psql().
		Insert(docTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert doc query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create doc")
}

func (r *DocumentRepository) SetDocStatus(ctx context.Context, agencyID, docID string, status types.DocStatus) error {
	query, args, err := psql().
		Update(docTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": docID, "agency_id": agencyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate doc status query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update doc status")
}

// bumpVersion increments the doc version in place. Performed as an
// in-database increment so concurrent edits never lose a bump.
func (r *DocumentRepository) bumpVersion(ctx context.Context, tx pgx.Tx, docID string) error {
	query, args, err := psql().
		Update(docTableName).
		Set("version_number", sq.Expr("version_number + 1")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate version bump query: %w", err)
	}

	_, err = tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to bump doc version")
}

func (r *DocumentRepository) ServiceFee(ctx context.Context, docID string) (*types.ServiceFee, error) {
	var fee types.ServiceFee
	err := r.subDocument(ctx, serviceFeeTableName, serviceFeeColumns, docID, &fee)
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *DocumentRepository) ServiceAgreement(ctx context.Context, docID string) (*types.ServiceAgreement, error) {
	var agreement types.ServiceAgreement
	err := r.subDocument(ctx, serviceAgreementTableName, serviceAgreementColumns, docID, &agreement)
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *DocumentRepository) EmploymentContract(ctx context.Context, docID string) (*types.EmploymentContract, error) {
	var contract types.EmploymentContract
	err := r.subDocument(ctx, employmentContractTableName, employmentContractColumns, docID, &contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *DocumentRepository) subDocument(ctx context.Context, table string, columns []string, docID string, dest any) error {
	query, args, err := psql().
		Select(columns...).
		From(table).
		Where(sq.Eq{"employer_doc_id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate sub-document query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, dest, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to fetch sub-document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) CreateServiceFee(ctx context.Context, fee *types.ServiceFee) error {
	now := time.Now()
	fee.ID = utils.NanoID()
	fee.CreatedAt = now
	fee.UpdatedAt = now
	return r.insertSubDocument(ctx, serviceFeeTableName, utils.StructToMap(fee))
}

func (r *DocumentRepository) CreateServiceAgreement(ctx context.Context, agreement *types.ServiceAgreement) error {
	now := time.Now()
	agreement.ID = utils.NanoID()
	agreement.CreatedAt = now
	agreement.UpdatedAt = now
	return r.insertSubDocument(ctx, serviceAgreementTableName, utils.StructToMap(agreement))
}

func (r *DocumentRepository) CreateEmploymentContract(ctx context.Context, contract *types.EmploymentContract) error {
	now := time.Now()
	contract.ID = utils.NanoID()
	contract.CreatedAt = now
	contract.UpdatedAt = now
	return r.insertSubDocument(ctx, employmentContractTableName, utils.StructToMap(contract))
}

func (r *DocumentRepository) insertSubDocument(ctx context.Context, table string, values map[string]any) error {
	query, args, err := psql().
		Insert(table).
		SetMap(values).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert sub-document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create sub-document")
}

// UpdateServiceFee persists the fee schedule; when bump is true the parent
// doc's version is incremented in the same transaction.
func (r *DocumentRepository) UpdateServiceFee(ctx context.Context, fee *types.ServiceFee, bump bool) error {
	fee.UpdatedAt = time.Now()
	return r.updateSubDocument(ctx, serviceFeeTableName, fee.ID, fee.EmployerDocID, utils.StructToMap(fee), bump)
}

func (r *DocumentRepository) UpdateServiceAgreement(ctx context.Context, agreement *types.ServiceAgreement, bump bool) error {
	agreement.UpdatedAt = time.Now()
	return r.updateSubDocument(ctx, serviceAgreementTableName, agreement.ID, agreement.EmployerDocID, utils.StructToMap(agreement), bump)
}

func (r *DocumentRepository) UpdateEmploymentContract(ctx context.Context, contract *types.EmploymentContract, bump bool) error {
	contract.UpdatedAt = time.Now()
	return r.updateSubDocument(ctx, employmentContractTableName, contract.ID, contract.EmployerDocID, utils.StructToMap(contract), bump)
}

func (r *DocumentRepository) updateSubDocument(ctx context.Context, table, id, docID string, values map[string]any, bump bool) error {
	query, args, err := psql().
		Update(table).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update sub-document query: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin sub-document transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update sub-document: %w", err)
	}

	if bump {
		if err := r.bumpVersion(ctx, tx, docID); err != nil {
			return err
		}
	}

	return utils.ErrorWrapOrNil(tx.Commit(ctx), "failed to commit sub-document transaction")
}

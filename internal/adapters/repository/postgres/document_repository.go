package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const documentColumns = `id, employee_id, doc_type_id, doc_path, is_verified, is_active, created_by, created_at, updated_by, updated_at`

// DocumentRepository は PostgreSQL を利用した書類サブレコード永続化の実装です。
type DocumentRepository struct {
	pool pgdb.Queryer
}

// NewDocumentRepository は DocumentRepository を生成します。
func NewDocumentRepository(pool pgdb.Queryer) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create は書類レコードを新規作成します。
func (r *DocumentRepository) Create(ctx context.Context, d *employee.Document) (*employee.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_documents (employee_id, doc_type_id, doc_path, is_verified, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+documentColumns+`
    `,
		d.EmployeeID,
		d.DocTypeID,
		d.DocPath,
		d.Verified,
		d.Active,
		d.CreatedBy,
		d.CreatedAt,
		d.UpdatedBy,
		d.UpdatedAt,
	)

	return scanDocument(row)
}

// Update は書類レコードを更新します。
func (r *DocumentRepository) Update(ctx context.Context, d *employee.Document) (*employee.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_documents
           SET doc_type_id = $1,
               doc_path = $2,
               is_verified = $3,
               is_active = $4,
               updated_by = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING `+documentColumns+`
    `,
		d.DocTypeID,
		d.DocPath,
		d.Verified,
		d.Active,
		d.UpdatedBy,
		d.UpdatedAt,
		d.ID,
	)

	return scanDocument(row)
}

// ListActiveByEmployee は有効な書類レコードを挿入順で返します。
func (r *DocumentRepository) ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*employee.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+documentColumns+`
          FROM employee_documents
         WHERE employee_id = $1 AND is_active = TRUE
         ORDER BY id
    `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*employee.Document, 0)
	for rows.Next() {
		record, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanDocument(row pgx.Row) (*employee.Document, error) {
	var (
		d         employee.Document
		docPath   sql.NullString
		createdBy sql.NullInt32
		createdAt sql.NullTime
		updatedBy sql.NullInt32
		updatedAt sql.NullTime
	)

	if err := row.Scan(
		&d.ID,
		&d.EmployeeID,
		&d.DocTypeID,
		&docPath,
		&d.Verified,
		&d.Active,
		&createdBy,
		&createdAt,
		&updatedBy,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrDetailsNotFound
		}
		return nil, err
	}

	d.DocPath = nullableString(docPath)
	d.CreatedBy = nullableInt32(createdBy)
	d.CreatedAt = nullableTime(createdAt)
	d.UpdatedBy = nullableInt32(updatedBy)
	d.UpdatedAt = nullableTime(updatedAt)
	return &d, nil
}

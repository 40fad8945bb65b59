package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const chequeColumns = `id, employee_id, cheque_no, bank_name, ifsc_code, is_active, created_by, created_at, updated_by, updated_at`

// ChequeRepository は PostgreSQL を利用した小切手サブレコード永続化の実装です。
type ChequeRepository struct {
	pool pgdb.Queryer
}

// NewChequeRepository は ChequeRepository を生成します。
func NewChequeRepository(pool pgdb.Queryer) *ChequeRepository {
	return &ChequeRepository{pool: pool}
}

// Create は小切手レコードを新規作成します。
func (r *ChequeRepository) Create(ctx context.Context, c *employee.Cheque) (*employee.Cheque, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_cheques (employee_id, cheque_no, bank_name, ifsc_code, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+chequeColumns+`
    `,
		c.EmployeeID,
		c.ChequeNo,
		c.BankName,
		c.IFSCCode,
		c.Active,
		c.CreatedBy,
		c.CreatedAt,
		c.UpdatedBy,
		c.UpdatedAt,
	)

	return scanCheque(row)
}

// Update は小切手レコードを更新します。
func (r *ChequeRepository) Update(ctx context.Context, c *employee.Cheque) (*employee.Cheque, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_cheques
           SET cheque_no = $1,
               bank_name = $2,
               ifsc_code = $3,
               is_active = $4,
               updated_by = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING `+chequeColumns+`
    `,
		c.ChequeNo,
		c.BankName,
		c.IFSCCode,
		c.Active,
		c.UpdatedBy,
		c.UpdatedAt,
		c.ID,
	)

	return scanCheque(row)
}

// ListActiveByEmployee は有効な小切手レコードを挿入順で返します。
func (r *ChequeRepository) ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*employee.Cheque, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+chequeColumns+`
          FROM employee_cheques
         WHERE employee_id = $1 AND is_active = TRUE
         ORDER BY id
    `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*employee.Cheque, 0)
	for rows.Next() {
		record, err := scanCheque(rows)
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

func scanCheque(row pgx.Row) (*employee.Cheque, error) {
	var (
		c         employee.Cheque
		createdBy sql.NullInt32
		createdAt sql.NullTime
		updatedBy sql.NullInt32
		updatedAt sql.NullTime
	)

	if err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.ChequeNo,
		&c.BankName,
		&c.IFSCCode,
		&c.Active,
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

	c.CreatedBy = nullableInt32(createdBy)
	c.CreatedAt = nullableTime(createdAt)
	c.UpdatedBy = nullableInt32(updatedBy)
	c.UpdatedAt = nullableTime(updatedAt)
	return &c, nil
}

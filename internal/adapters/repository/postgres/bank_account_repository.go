package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const bankAccountColumns = `id, employee_id, account_type, holder_name, account_no, ifsc_code, bank_name, bank_branch, payable_at, payment_type_id, statement_cheque_path, is_active, created_by, created_at, updated_by, updated_at`

// BankAccountRepository は PostgreSQL を利用した銀行口座サブレコード永続化の実装です。
type BankAccountRepository struct {
	pool pgdb.Queryer
}

// NewBankAccountRepository は BankAccountRepository を生成します。
func NewBankAccountRepository(pool pgdb.Queryer) *BankAccountRepository {
	return &BankAccountRepository{pool: pool}
}

// Create は銀行口座レコードを新規作成します。
func (r *BankAccountRepository) Create(ctx context.Context, b *employee.BankAccount) (*employee.BankAccount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_bank_accounts (employee_id, account_type, holder_name, account_no, ifsc_code, bank_name, bank_branch, payable_at, payment_type_id, statement_cheque_path, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING `+bankAccountColumns+`
    `,
		b.EmployeeID,
		b.AccountType,
		b.HolderName,
		b.AccountNo,
		b.IFSCCode,
		b.BankName,
		b.BankBranch,
		b.PayableAt,
		b.PaymentTypeID,
		b.StatementChequePath,
		b.Active,
		b.CreatedBy,
		b.CreatedAt,
		b.UpdatedBy,
		b.UpdatedAt,
	)

	return scanBankAccount(row)
}

// Update は銀行口座レコードを更新します。
func (r *BankAccountRepository) Update(ctx context.Context, b *employee.BankAccount) (*employee.BankAccount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_bank_accounts
           SET account_type = $1,
               holder_name = $2,
               account_no = $3,
               ifsc_code = $4,
               bank_name = $5,
               bank_branch = $6,
               payable_at = $7,
               payment_type_id = $8,
               statement_cheque_path = $9,
               is_active = $10,
               updated_by = $11,
               updated_at = $12
         WHERE id = $13
        RETURNING `+bankAccountColumns+`
    `,
		b.AccountType,
		b.HolderName,
		b.AccountNo,
		b.IFSCCode,
		b.BankName,
		b.BankBranch,
		b.PayableAt,
		b.PaymentTypeID,
		b.StatementChequePath,
		b.Active,
		b.UpdatedBy,
		b.UpdatedAt,
		b.ID,
	)

	return scanBankAccount(row)
}

// ListActiveByEmployee は有効な銀行口座レコードを挿入順で返します。
func (r *BankAccountRepository) ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*employee.BankAccount, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+bankAccountColumns+`
          FROM employee_bank_accounts
         WHERE employee_id = $1 AND is_active = TRUE
         ORDER BY id
    `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*employee.BankAccount, 0)
	for rows.Next() {
		record, err := scanBankAccount(rows)
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

func scanBankAccount(row pgx.Row) (*employee.BankAccount, error) {
	var (
		b                   employee.BankAccount
		bankName            sql.NullString
		bankBranch          sql.NullString
		payableAt           sql.NullString
		paymentTypeID       sql.NullInt32
		statementChequePath sql.NullString
		createdBy           sql.NullInt32
		createdAt           sql.NullTime
		updatedBy           sql.NullInt32
		updatedAt           sql.NullTime
	)

	if err := row.Scan(
		&b.ID,
		&b.EmployeeID,
		&b.AccountType,
		&b.HolderName,
		&b.AccountNo,
		&b.IFSCCode,
		&bankName,
		&bankBranch,
		&payableAt,
		&paymentTypeID,
		&statementChequePath,
		&b.Active,
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

	b.BankName = nullableString(bankName)
	b.BankBranch = nullableString(bankBranch)
	b.PayableAt = nullableString(payableAt)
	b.PaymentTypeID = nullableInt32(paymentTypeID)
	b.StatementChequePath = nullableString(statementChequePath)
	b.CreatedBy = nullableInt32(createdBy)
	b.CreatedAt = nullableTime(createdAt)
	b.UpdatedBy = nullableInt32(updatedBy)
	b.UpdatedAt = nullableTime(updatedAt)
	return &b, nil
}

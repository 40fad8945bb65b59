package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

// DetailsRepository は PostgreSQL を利用した個人詳細サテライト永続化の実装です。
type DetailsRepository struct {
	pool pgdb.Queryer
}

// NewDetailsRepository は DetailsRepository を生成します。
func NewDetailsRepository(pool pgdb.Queryer) *DetailsRepository {
	return &DetailsRepository{pool: pool}
}

// Create は個人詳細を新規作成します。
func (r *DetailsRepository) Create(ctx context.Context, d *employee.Details) (*employee.Details, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_details (employee_id, aadhaar_no, personal_email, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, employee_id, aadhaar_no, personal_email, is_active, created_by, created_at, updated_by, updated_at
    `,
		d.EmployeeID,
		d.AadhaarNo,
		d.PersonalEmail,
		d.Active,
		d.CreatedBy,
		d.CreatedAt,
		d.UpdatedBy,
		d.UpdatedAt,
	)

	created, err := scanDetails(row)
	if err != nil {
		return nil, translateDetailsPgError(err)
	}
	return created, nil
}

// Update は個人詳細を更新します。付け替えのため employee_id も更新対象です。
func (r *DetailsRepository) Update(ctx context.Context, d *employee.Details) (*employee.Details, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_details
           SET employee_id = $1,
               aadhaar_no = $2,
               personal_email = $3,
               is_active = $4,
               updated_by = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING id, employee_id, aadhaar_no, personal_email, is_active, created_by, created_at, updated_by, updated_at
    `,
		d.EmployeeID,
		d.AadhaarNo,
		d.PersonalEmail,
		d.Active,
		d.UpdatedBy,
		d.UpdatedAt,
		d.ID,
	)

	updated, err := scanDetails(row)
	if err != nil {
		return nil, translateDetailsPgError(err)
	}
	return updated, nil
}

// FindByEmployeeID は社員 ID で有効な個人詳細を取得します。
func (r *DetailsRepository) FindByEmployeeID(ctx context.Context, employeeID int32) (*employee.Details, error) {
	return r.findOne(ctx, "employee_id = $1", employeeID)
}

// FindByAadhaarNo は Aadhaar 番号で有効な個人詳細を取得します。
func (r *DetailsRepository) FindByAadhaarNo(ctx context.Context, aadhaarNo int64) (*employee.Details, error) {
	return r.findOne(ctx, "aadhaar_no = $1", aadhaarNo)
}

// FindByPersonalEmail は個人メールアドレスで有効な個人詳細を取得します。
func (r *DetailsRepository) FindByPersonalEmail(ctx context.Context, email string) (*employee.Details, error) {
	return r.findOne(ctx, "personal_email = $1", email)
}

func (r *DetailsRepository) findOne(ctx context.Context, condition string, arg any) (*employee.Details, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_id, aadhaar_no, personal_email, is_active, created_by, created_at, updated_by, updated_at
          FROM employee_details
         WHERE `+condition+` AND is_active = TRUE
         LIMIT 1
    `, arg)

	found, err := scanDetails(row)
	if err != nil {
		return nil, translateDetailsPgError(err)
	}
	return found, nil
}

func scanDetails(row pgx.Row) (*employee.Details, error) {
	var (
		d             employee.Details
		personalEmail sql.NullString
		createdBy     sql.NullInt32
		createdAt     sql.NullTime
		updatedBy     sql.NullInt32
		updatedAt     sql.NullTime
	)

	if err := row.Scan(
		&d.ID,
		&d.EmployeeID,
		&d.AadhaarNo,
		&personalEmail,
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

	d.PersonalEmail = nullableString(personalEmail)
	d.CreatedBy = nullableInt32(createdBy)
	d.CreatedAt = nullableTime(createdAt)
	d.UpdatedBy = nullableInt32(updatedBy)
	d.UpdatedAt = nullableTime(updatedAt)
	return &d, nil
}

func translateDetailsPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrDetailsNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if pgErr.ConstraintName == "employee_details_personal_email_key" {
			return employee.ErrEmailAlreadyExists
		}
	}

	return err
}

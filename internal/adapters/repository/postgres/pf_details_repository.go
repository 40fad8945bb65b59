package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

// PFDetailsRepository は PostgreSQL を利用した PF サテライト永続化の実装です。
type PFDetailsRepository struct {
	pool pgdb.Queryer
}

// NewPFDetailsRepository は PFDetailsRepository を生成します。
func NewPFDetailsRepository(pool pgdb.Queryer) *PFDetailsRepository {
	return &PFDetailsRepository{pool: pool}
}

// Create は PF 詳細を新規作成します。
func (r *PFDetailsRepository) Create(ctx context.Context, pf *employee.PFDetails) (*employee.PFDetails, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_pf_details (employee_id, previous_uan, previous_esi, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, employee_id, previous_uan, previous_esi, is_active, created_by, created_at, updated_by, updated_at
    `,
		pf.EmployeeID,
		pf.PreviousUAN,
		pf.PreviousESI,
		pf.Active,
		pf.CreatedBy,
		pf.CreatedAt,
		pf.UpdatedBy,
		pf.UpdatedAt,
	)

	created, err := scanPFDetails(row)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update は PF 詳細を更新します。
func (r *PFDetailsRepository) Update(ctx context.Context, pf *employee.PFDetails) (*employee.PFDetails, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_pf_details
           SET previous_uan = $1,
               previous_esi = $2,
               is_active = $3,
               updated_by = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING id, employee_id, previous_uan, previous_esi, is_active, created_by, created_at, updated_by, updated_at
    `,
		pf.PreviousUAN,
		pf.PreviousESI,
		pf.Active,
		pf.UpdatedBy,
		pf.UpdatedAt,
		pf.ID,
	)

	updated, err := scanPFDetails(row)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindByEmployeeID は社員 ID で有効な PF 詳細を取得します。
func (r *PFDetailsRepository) FindByEmployeeID(ctx context.Context, employeeID int32) (*employee.PFDetails, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_id, previous_uan, previous_esi, is_active, created_by, created_at, updated_by, updated_at
          FROM employee_pf_details
         WHERE employee_id = $1 AND is_active = TRUE
         LIMIT 1
    `, employeeID)

	found, err := scanPFDetails(row)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func scanPFDetails(row pgx.Row) (*employee.PFDetails, error) {
	var (
		pf          employee.PFDetails
		previousUAN sql.NullString
		previousESI sql.NullString
		createdBy   sql.NullInt32
		createdAt   sql.NullTime
		updatedBy   sql.NullInt32
		updatedAt   sql.NullTime
	)

	if err := row.Scan(
		&pf.ID,
		&pf.EmployeeID,
		&previousUAN,
		&previousESI,
		&pf.Active,
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

	pf.PreviousUAN = nullableString(previousUAN)
	pf.PreviousESI = nullableString(previousESI)
	pf.CreatedBy = nullableInt32(createdBy)
	pf.CreatedAt = nullableTime(createdAt)
	pf.UpdatedBy = nullableInt32(updatedBy)
	pf.UpdatedAt = nullableTime(updatedAt)
	return &pf, nil
}

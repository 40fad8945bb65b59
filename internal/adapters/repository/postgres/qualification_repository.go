package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const qualificationColumns = `id, employee_id, qualification_id, qualification_degree_id, university, institute, specialization, passed_out_year, is_active, created_by, created_at, updated_by, updated_at`

// QualificationRepository は PostgreSQL を利用した資格サブレコード永続化の実装です。
type QualificationRepository struct {
	pool pgdb.Queryer
}

// NewQualificationRepository は QualificationRepository を生成します。
func NewQualificationRepository(pool pgdb.Queryer) *QualificationRepository {
	return &QualificationRepository{pool: pool}
}

// Create は資格レコードを新規作成します。
func (r *QualificationRepository) Create(ctx context.Context, q *employee.Qualification) (*employee.Qualification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_qualifications (employee_id, qualification_id, qualification_degree_id, university, institute, specialization, passed_out_year, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING `+qualificationColumns+`
    `,
		q.EmployeeID,
		q.QualificationID,
		q.QualificationDegreeID,
		q.University,
		q.Institute,
		q.Specialization,
		q.PassedOutYear,
		q.Active,
		q.CreatedBy,
		q.CreatedAt,
		q.UpdatedBy,
		q.UpdatedAt,
	)

	return scanQualification(row)
}

// Update は資格レコードを更新します。
func (r *QualificationRepository) Update(ctx context.Context, q *employee.Qualification) (*employee.Qualification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_qualifications
           SET qualification_id = $1,
               qualification_degree_id = $2,
               university = $3,
               institute = $4,
               specialization = $5,
               passed_out_year = $6,
               is_active = $7,
               updated_by = $8,
               updated_at = $9
         WHERE id = $10
        RETURNING `+qualificationColumns+`
    `,
		q.QualificationID,
		q.QualificationDegreeID,
		q.University,
		q.Institute,
		q.Specialization,
		q.PassedOutYear,
		q.Active,
		q.UpdatedBy,
		q.UpdatedAt,
		q.ID,
	)

	return scanQualification(row)
}

// ListActiveByEmployee は有効な資格レコードを挿入順で返します。
func (r *QualificationRepository) ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*employee.Qualification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+qualificationColumns+`
          FROM employee_qualifications
         WHERE employee_id = $1 AND is_active = TRUE
         ORDER BY id
    `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*employee.Qualification, 0)
	for rows.Next() {
		record, err := scanQualification(rows)
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

func scanQualification(row pgx.Row) (*employee.Qualification, error) {
	var (
		q                     employee.Qualification
		qualificationID       sql.NullInt32
		qualificationDegreeID sql.NullInt32
		university            sql.NullString
		institute             sql.NullString
		specialization        sql.NullString
		passedOutYear         sql.NullInt32
		createdBy             sql.NullInt32
		createdAt             sql.NullTime
		updatedBy             sql.NullInt32
		updatedAt             sql.NullTime
	)

	if err := row.Scan(
		&q.ID,
		&q.EmployeeID,
		&qualificationID,
		&qualificationDegreeID,
		&university,
		&institute,
		&specialization,
		&passedOutYear,
		&q.Active,
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

	q.QualificationID = nullableInt32(qualificationID)
	q.QualificationDegreeID = nullableInt32(qualificationDegreeID)
	q.University = nullableString(university)
	q.Institute = nullableString(institute)
	q.Specialization = nullableString(specialization)
	q.PassedOutYear = nullableInt32(passedOutYear)
	q.CreatedBy = nullableInt32(createdBy)
	q.CreatedAt = nullableTime(createdAt)
	q.UpdatedBy = nullableInt32(updatedBy)
	q.UpdatedAt = nullableTime(updatedAt)
	return &q, nil
}

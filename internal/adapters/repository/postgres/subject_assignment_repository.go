package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const subjectAssignmentColumns = `id, employee_id, subject_id, agreed_periods_per_week, orientation_id, is_active, created_by, created_at, updated_by, updated_at`

// SubjectAssignmentRepository は PostgreSQL を利用した担当科目永続化の実装です。
type SubjectAssignmentRepository struct {
	pool pgdb.Queryer
}

// NewSubjectAssignmentRepository は SubjectAssignmentRepository を生成します。
func NewSubjectAssignmentRepository(pool pgdb.Queryer) *SubjectAssignmentRepository {
	return &SubjectAssignmentRepository{pool: pool}
}

// Create は担当科目レコードを新規作成します。
func (r *SubjectAssignmentRepository) Create(ctx context.Context, s *employee.SubjectAssignment) (*employee.SubjectAssignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employee_subjects (employee_id, subject_id, agreed_periods_per_week, orientation_id, is_active, created_by, created_at, updated_by, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+subjectAssignmentColumns+`
    `,
		s.EmployeeID,
		s.SubjectID,
		s.AgreedPeriodsPerWeek,
		s.OrientationID,
		s.Active,
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedBy,
		s.UpdatedAt,
	)

	return scanSubjectAssignment(row)
}

// Update は担当科目レコードを更新します。
func (r *SubjectAssignmentRepository) Update(ctx context.Context, s *employee.SubjectAssignment) (*employee.SubjectAssignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employee_subjects
           SET subject_id = $1,
               agreed_periods_per_week = $2,
               orientation_id = $3,
               is_active = $4,
               updated_by = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING `+subjectAssignmentColumns+`
    `,
		s.SubjectID,
		s.AgreedPeriodsPerWeek,
		s.OrientationID,
		s.Active,
		s.UpdatedBy,
		s.UpdatedAt,
		s.ID,
	)

	return scanSubjectAssignment(row)
}

// ListActiveByEmployee は有効な担当科目レコードを挿入順で返します。
func (r *SubjectAssignmentRepository) ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*employee.SubjectAssignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+subjectAssignmentColumns+`
          FROM employee_subjects
         WHERE employee_id = $1 AND is_active = TRUE
         ORDER BY id
    `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*employee.SubjectAssignment, 0)
	for rows.Next() {
		record, err := scanSubjectAssignment(rows)
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

func scanSubjectAssignment(row pgx.Row) (*employee.SubjectAssignment, error) {
	var (
		s             employee.SubjectAssignment
		orientationID sql.NullInt32
		createdBy     sql.NullInt32
		createdAt     sql.NullTime
		updatedBy     sql.NullInt32
		updatedAt     sql.NullTime
	)

	if err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.SubjectID,
		&s.AgreedPeriodsPerWeek,
		&orientationID,
		&s.Active,
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

	s.OrientationID = nullableInt32(orientationID)
	s.CreatedBy = nullableInt32(createdBy)
	s.CreatedAt = nullableTime(createdAt)
	s.UpdatedBy = nullableInt32(updatedBy)
	s.UpdatedAt = nullableTime(updatedAt)
	return &s, nil
}

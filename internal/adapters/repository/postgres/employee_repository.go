package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const employeeColumns = `
               e.id,
               e.campus_id,
               e.temp_payroll_id,
               e.first_name,
               e.last_name,
               e.primary_mobile_no,
               e.date_of_birth,
               e.gender_id,
               e.qualification_id,
               e.employee_type_id,
               e.department_id,
               e.designation_id,
               e.agreement_org_id,
               e.agreement_type,
               e.check_submit_level_id,
               e.status_id,
               e.created_by,
               e.created_at,
               e.updated_by,
               e.updated_at,
               s.id,
               s.name`

// EmployeeRepository は PostgreSQL を利用した社員ルート集約永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO employees (
                campus_id, temp_payroll_id, first_name, last_name, primary_mobile_no,
                date_of_birth, gender_id, qualification_id, employee_type_id, department_id,
                designation_id, agreement_org_id, agreement_type, check_submit_level_id,
                status_id, created_by, created_at, updated_by, updated_at
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
            RETURNING id, campus_id, temp_payroll_id, first_name, last_name, primary_mobile_no,
                      date_of_birth, gender_id, qualification_id, employee_type_id, department_id,
                      designation_id, agreement_org_id, agreement_type, check_submit_level_id,
                      status_id, created_by, created_at, updated_by, updated_at
        )
        SELECT i.id, i.campus_id, i.temp_payroll_id, i.first_name, i.last_name, i.primary_mobile_no,
               i.date_of_birth, i.gender_id, i.qualification_id, i.employee_type_id, i.department_id,
               i.designation_id, i.agreement_org_id, i.agreement_type, i.check_submit_level_id,
               i.status_id, i.created_by, i.created_at, i.updated_by, i.updated_at,
               s.id, s.name
          FROM inserted i
          LEFT JOIN checklist_statuses s ON s.id = i.status_id
    `,
		e.CampusID,
		e.TempPayrollID,
		e.FirstName,
		e.LastName,
		e.PrimaryMobileNo,
		dateArg(e.DateOfBirth),
		e.GenderID,
		e.QualificationID,
		e.EmployeeTypeID,
		e.DepartmentID,
		e.DesignationID,
		e.AgreementOrgID,
		e.AgreementType,
		e.CheckSubmitLevelID,
		e.StatusID,
		e.CreatedBy,
		e.CreatedAt,
		e.UpdatedBy,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE employees
               SET campus_id = $1,
                   temp_payroll_id = $2,
                   first_name = $3,
                   last_name = $4,
                   primary_mobile_no = $5,
                   date_of_birth = $6,
                   gender_id = $7,
                   qualification_id = $8,
                   employee_type_id = $9,
                   department_id = $10,
                   designation_id = $11,
                   agreement_org_id = $12,
                   agreement_type = $13,
                   check_submit_level_id = $14,
                   status_id = $15,
                   updated_by = $16,
                   updated_at = $17
             WHERE id = $18
            RETURNING id, campus_id, temp_payroll_id, first_name, last_name, primary_mobile_no,
                      date_of_birth, gender_id, qualification_id, employee_type_id, department_id,
                      designation_id, agreement_org_id, agreement_type, check_submit_level_id,
                      status_id, created_by, created_at, updated_by, updated_at
        )
        SELECT u.id, u.campus_id, u.temp_payroll_id, u.first_name, u.last_name, u.primary_mobile_no,
               u.date_of_birth, u.gender_id, u.qualification_id, u.employee_type_id, u.department_id,
               u.designation_id, u.agreement_org_id, u.agreement_type, u.check_submit_level_id,
               u.status_id, u.created_by, u.created_at, u.updated_by, u.updated_at,
               s.id, s.name
          FROM updated u
          LEFT JOIN checklist_statuses s ON s.id = u.status_id
    `,
		e.CampusID,
		e.TempPayrollID,
		e.FirstName,
		e.LastName,
		e.PrimaryMobileNo,
		dateArg(e.DateOfBirth),
		e.GenderID,
		e.QualificationID,
		e.EmployeeTypeID,
		e.DepartmentID,
		e.DesignationID,
		e.AgreementOrgID,
		e.AgreementType,
		e.CheckSubmitLevelID,
		e.StatusID,
		e.UpdatedBy,
		e.UpdatedAt,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// FindByID は数値 ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int32) (*employee.Employee, error) {
	return r.findOne(ctx, "e.id = $1", id)
}

// FindByTempPayrollID は仮給与 ID で社員を取得します。
func (r *EmployeeRepository) FindByTempPayrollID(ctx context.Context, tempPayrollID string) (*employee.Employee, error) {
	return r.findOne(ctx, "e.temp_payroll_id = $1", tempPayrollID)
}

// FindByPrimaryMobileNo は主連絡先電話番号で社員を取得します。
func (r *EmployeeRepository) FindByPrimaryMobileNo(ctx context.Context, mobileNo int64) (*employee.Employee, error) {
	return r.findOne(ctx, "e.primary_mobile_no = $1", mobileNo)
}

func (r *EmployeeRepository) findOne(ctx context.Context, condition string, arg any) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees e
          LEFT JOIN checklist_statuses s ON s.id = e.status_id
         WHERE `+condition+`
         LIMIT 1
    `, arg)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindMaxTempPayrollID は接頭辞に一致する仮給与 ID の最大値を返します。
// 接尾辞の桁数が揃わない場合に備えて長さ優先で比較します。
func (r *EmployeeRepository) FindMaxTempPayrollID(ctx context.Context, prefix string) (string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT temp_payroll_id
          FROM employees
         WHERE temp_payroll_id LIKE $1 || '%'
         ORDER BY length(temp_payroll_id) DESC, temp_payroll_id DESC
         LIMIT 1
    `, prefix)

	var maxID string
	if err := row.Scan(&maxID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return maxID, nil
}

// Search は市区・社員種別・給与 ID の任意条件で社員を検索します。
func (r *EmployeeRepository) Search(ctx context.Context, filter employee.SearchFilter) ([]*employee.SearchResult, error) {
	args := make([]any, 0, 3)
	conditions := make([]string, 0, 3)

	if filter.CityID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "c.city_id = "+placeholder)
		args = append(args, *filter.CityID)
	}
	if filter.EmployeeTypeID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "e.employee_type_id = "+placeholder)
		args = append(args, *filter.EmployeeTypeID)
	}
	if filter.PayrollID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "e.temp_payroll_id = "+placeholder)
		args = append(args, *filter.PayrollID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT e.id,
               e.first_name,
               e.last_name,
               d.name,
               e.temp_payroll_id
          FROM employees e
          LEFT JOIN campuses c ON c.id = e.campus_id
          LEFT JOIN departments d ON d.id = e.department_id` + whereClause + `
         ORDER BY e.id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	results := make([]*employee.SearchResult, 0)
	for rows.Next() {
		var (
			result         employee.SearchResult
			departmentName sql.NullString
		)
		if err := rows.Scan(
			&result.EmployeeID,
			&result.FirstName,
			&result.LastName,
			&departmentName,
			&result.TempPayrollID,
		); err != nil {
			return nil, translateEmployeePgError(err)
		}
		result.DepartmentName = nullableString(departmentName)
		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return results, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e                  employee.Employee
		dateOfBirth        sql.NullTime
		genderID           sql.NullInt32
		qualificationID    sql.NullInt32
		employeeTypeID     sql.NullInt32
		departmentID       sql.NullInt32
		designationID      sql.NullInt32
		agreementOrgID     sql.NullInt32
		agreementType      sql.NullString
		checkSubmitLevelID sql.NullInt32
		statusID           sql.NullInt32
		createdBy          sql.NullInt32
		createdAt          sql.NullTime
		updatedBy          sql.NullInt32
		updatedAt          sql.NullTime
		joinedStatusID     sql.NullInt32
		joinedStatusName   sql.NullString
	)

	if err := row.Scan(
		&e.ID,
		&e.CampusID,
		&e.TempPayrollID,
		&e.FirstName,
		&e.LastName,
		&e.PrimaryMobileNo,
		&dateOfBirth,
		&genderID,
		&qualificationID,
		&employeeTypeID,
		&departmentID,
		&designationID,
		&agreementOrgID,
		&agreementType,
		&checkSubmitLevelID,
		&statusID,
		&createdBy,
		&createdAt,
		&updatedBy,
		&updatedAt,
		&joinedStatusID,
		&joinedStatusName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.DateOfBirth = nullableDate(dateOfBirth)
	e.GenderID = nullableInt32(genderID)
	e.QualificationID = nullableInt32(qualificationID)
	e.EmployeeTypeID = nullableInt32(employeeTypeID)
	e.DepartmentID = nullableInt32(departmentID)
	e.DesignationID = nullableInt32(designationID)
	e.AgreementOrgID = nullableInt32(agreementOrgID)
	e.AgreementType = nullableString(agreementType)
	e.CheckSubmitLevelID = nullableInt32(checkSubmitLevelID)
	e.StatusID = nullableInt32(statusID)
	e.CreatedBy = nullableInt32(createdBy)
	e.CreatedAt = nullableTime(createdAt)
	e.UpdatedBy = nullableInt32(updatedBy)
	e.UpdatedAt = nullableTime(updatedAt)

	if joinedStatusID.Valid && joinedStatusName.Valid {
		e.Status = &employee.ChecklistStatus{ID: joinedStatusID.Int32, Name: joinedStatusName.String}
	}

	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == "employees_temp_payroll_id_key" {
				return employee.ErrTempPayrollIDAlreadyExists
			}
			return err
		case foreignKeyViolationCode:
			return err
		}
	}

	return err
}

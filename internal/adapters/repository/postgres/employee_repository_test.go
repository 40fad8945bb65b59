package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
)

type stubRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

var employeeColumnNames = []string{
	"id", "campus_id", "temp_payroll_id", "first_name", "last_name", "primary_mobile_no",
	"date_of_birth", "gender_id", "qualification_id", "employee_type_id", "department_id",
	"designation_id", "agreement_org_id", "agreement_type", "check_submit_level_id",
	"status_id", "created_by", "created_at", "updated_by", "updated_at",
	"s_id", "s_name",
}

func TestEmployeeRepository_FindByTempPayrollID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	dob := time.Date(2000, 8, 15, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(employeeColumnNames).
		AddRow(int32(42), int32(7), "TEMP10620001", "Asha", "Rao", int64(9876543210),
			dob, int32(1), nil, nil, nil,
			nil, nil, nil, nil,
			int32(1), nil, nil, nil, nil,
			int32(1), employee.StatusIncompleted)

	mock.ExpectQuery(`FROM employees e`).
		WithArgs("TEMP10620001").
		WillReturnRows(rows)

	found, err := repo.FindByTempPayrollID(context.Background(), "TEMP10620001")
	if err != nil {
		t.Fatalf("FindByTempPayrollID returned error: %v", err)
	}

	if found.ID != 42 {
		t.Errorf("expected id 42, got %d", found.ID)
	}
	if found.DateOfBirth == nil || !found.DateOfBirth.Equal(dob) {
		t.Errorf("unexpected date of birth: %+v", found.DateOfBirth)
	}
	if found.StatusName() != employee.StatusIncompleted {
		t.Errorf("expected joined status, got %q", found.StatusName())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanEmployee(row)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_temp_payroll_id_key"}
	if !errors.Is(translateEmployeePgError(uniqueErr), employee.ErrTempPayrollIDAlreadyExists) {
		t.Fatalf("expected unique violation to map to ErrTempPayrollIDAlreadyExists")
	}

	if !errors.Is(translateEmployeePgError(pgx.ErrNoRows), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected no rows to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestEmployeeRepository_FindMaxTempPayrollID_Empty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(`FROM employees`).
		WithArgs("TEMP1062").
		WillReturnError(pgx.ErrNoRows)

	maxID, err := repo.FindMaxTempPayrollID(context.Background(), "TEMP1062")
	if err != nil {
		t.Fatalf("FindMaxTempPayrollID returned error: %v", err)
	}
	if maxID != "" {
		t.Fatalf("expected empty max id, got %q", maxID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Search_WithFilters(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "first_name", "last_name", "name", "temp_payroll_id"}).
		AddRow(int32(1), "Asha", "Rao", "Science", "TEMP10620001").
		AddRow(int32(2), "Ravi", "Kumar", nil, "TEMP10620002")

	cityID := int32(12)
	payrollID := "TEMP10620001"

	mock.ExpectQuery(`FROM employees e`).
		WithArgs(cityID, payrollID).
		WillReturnRows(rows)

	results, err := repo.Search(context.Background(), employee.SearchFilter{
		CityID:    &cityID,
		PayrollID: &payrollID,
	})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DepartmentName == nil || *results[0].DepartmentName != "Science" {
		t.Errorf("unexpected department name: %+v", results[0].DepartmentName)
	}
	if results[1].DepartmentName != nil {
		t.Errorf("expected nil department name, got %+v", results[1].DepartmentName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrDetailsNotFound  = errors.New("employee: details not found")
	ErrStatusNotFound   = errors.New("employee: checklist status not found")
	ErrInvalidID        = errors.New("employee: invalid id")

	// ErrEmailAlreadyExists は個人メールの一意制約違反の変換先です。
	ErrEmailAlreadyExists = errors.New("employee: personal email already exists")
	// ErrTempPayrollIDAlreadyExists は仮給与 ID の一意制約違反の変換先です。
	ErrTempPayrollIDAlreadyExists = errors.New("employee: temp payroll id already exists")
)

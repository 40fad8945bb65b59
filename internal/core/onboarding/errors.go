package onboarding

import (
	"errors"
	"fmt"
)

var (
	ErrHREmployeeNotFound   = errors.New("onboarding: hr employee not found")
	ErrCampusNotAssigned    = errors.New("onboarding: hr employee has no campus assigned")
	ErrCampusInactive       = errors.New("onboarding: campus is not active")
	ErrCampusCodeUnset      = errors.New("onboarding: campus code is not set")
	ErrAadhaarRequired      = errors.New("onboarding: aadhaar number is required when temp payroll id is not provided")
	ErrPhoneRequired        = errors.New("onboarding: phone number is required when temp payroll id is not provided")
	ErrUnknownTempPayrollID = errors.New("onboarding: temp payroll id not found in active skill test records")

	ErrDocTypeRequired        = errors.New("onboarding: document type id is required")
	ErrAccountNumberRequired  = errors.New("onboarding: account number is required")
	ErrAccountNumberNotNumber = errors.New("onboarding: account number must be numeric")
	ErrIFSCCodeRequired       = errors.New("onboarding: ifsc code is required")
	ErrHolderNameRequired     = errors.New("onboarding: account holder name is required")
	ErrBankBranchConflict     = errors.New("onboarding: provide either bank branch id or bank branch name, not both")
	ErrPeriodsPerWeekRequired = errors.New("onboarding: agreed periods per week is required when subject is provided")
	ErrChequesRequired        = errors.New("onboarding: cheque details are required when check submit is true")
	ErrChequeNumberRequired   = errors.New("onboarding: cheque number is required")
	ErrChequeBankNameRequired = errors.New("onboarding: cheque bank name is required")
	ErrChequeIFSCCodeRequired = errors.New("onboarding: cheque bank ifsc code is required")
)

// 重複フィンガープリントの所在。
const (
	StoreSkillTest       = "skill test"
	StoreEmployeeDetails = "employee details"
	StoreEmployee        = "employee"
)

// 衝突したフィールド。
const (
	FieldAadhaar = "aadhaar number"
	FieldPhone   = "phone number"
)

// DuplicateError は重複ガードの一致を表します。どのストアのどのフィールドが
// 衝突したか、既存レコードの仮給与 ID とともに呼び出し側へ伝えます。
type DuplicateError struct {
	Store         string
	Field         string
	Value         string
	TempPayrollID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("onboarding: %s %q already exists in %s store with temp payroll id %q",
		e.Field, e.Value, e.Store, e.TempPayrollID)
}

// AsDuplicate はエラーチェーンから DuplicateError を取り出します。
func AsDuplicate(err error) (*DuplicateError, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

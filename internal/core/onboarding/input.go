package onboarding

import "time"

// BasicInfoInput は仮給与 ID 採番(社員作成・更新)の入力です。
// TempPayrollID が指定された場合は採番せず検証のみを行います。
type BasicInfoInput struct {
	TempPayrollID   string
	FirstName       string
	LastName        string
	AadhaarNo       int64
	PrimaryMobileNo int64
	PersonalEmail   string
	DateOfBirth     *time.Time
	CampusID        int32
	GenderID        *int32
	QualificationID *int32
	PreviousUAN     string
	PreviousESI     string
	CreatedBy       int32
}

// GenerateResult は採番操作の結果です。
type GenerateResult struct {
	TempPayrollID string
	EmployeeID    int32
	Message       string
}

// QualificationInput は資格タブの 1 レコードです。
type QualificationInput struct {
	QualificationID       *int32
	QualificationDegreeID *int32
	University            string
	Institute             string
	Specialization        string
	PassedOutYear         *int32
}

// QualificationsInput は資格タブ全体の入力です。
type QualificationsInput struct {
	Qualifications []QualificationInput
	CreatedBy      int32
	UpdatedBy      int32
}

// DocumentInput は書類タブの 1 レコードです。
type DocumentInput struct {
	DocTypeID *int32
	DocPath   string
	Verified  bool
}

// DocumentsInput は書類タブ全体の入力です。
type DocumentsInput struct {
	Documents []DocumentInput
	CreatedBy int32
	UpdatedBy int32
}

// CategoryInfoInput はカテゴリータブの入力です。
type CategoryInfoInput struct {
	EmployeeTypeID       *int32
	DepartmentID         *int32
	DesignationID        *int32
	SubjectID            *int32
	AgreedPeriodsPerWeek *int32
	OrientationID        *int32
	CreatedBy            int32
	UpdatedBy            int32
}

// BankAccountInput は口座 1 件分の入力です。
type BankAccountInput struct {
	AccountNo         string
	IFSCCode          string
	AccountHolderName string
	BankName          string
	PayableAt         string
}

// BankInfoInput は銀行タブの入力です。BankBranchID と BankBranchName は
// 同時に指定できません。
type BankInfoInput struct {
	PaymentTypeID   *int32
	BankID          *int32
	BankBranchID    *int32
	BankBranchName  string
	PersonalAccount *BankAccountInput
	SalaryAccount   *BankAccountInput
	CreatedBy       int32
	UpdatedBy       int32
}

// ChequeInput は小切手 1 件分の入力です。
type ChequeInput struct {
	ChequeNo int64
	BankName string
	IFSCCode string
}

// AgreementInfoInput は契約タブの入力です。CheckSubmit が true の場合は
// 小切手明細が必須になります。
type AgreementInfoInput struct {
	AgreementOrgID *int32
	AgreementType  string
	CheckSubmit    *bool
	Cheques        []ChequeInput
	CreatedBy      int32
	UpdatedBy      int32
}

// SearchInput は社員検索の入力です。条件は任意の組み合わせで指定できます。
type SearchInput struct {
	CityID         *int32
	EmployeeTypeID *int32
	PayrollID      string
}

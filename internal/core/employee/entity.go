package employee

import "time"

// Audit は作成・更新の監査フィールド 4 点セットです。作成者が指定されない
// 場合は未設定のままとし、ストア側の既定値に委ねます。
type Audit struct {
	CreatedBy *int32
	CreatedAt *time.Time
	UpdatedBy *int32
	UpdatedAt *time.Time
}

// StampCreated は作成監査を記録します。作成者 id が正の場合のみ記録します。
func (a *Audit) StampCreated(createdBy int32, at time.Time) {
	if createdBy <= 0 {
		return
	}
	a.CreatedBy = &createdBy
	a.CreatedAt = &at
}

// StampUpdated は更新監査を記録します。更新者 id が正の場合のみ記録します。
func (a *Audit) StampUpdated(updatedBy int32, at time.Time) {
	if updatedBy <= 0 {
		return
	}
	a.UpdatedBy = &updatedBy
	a.UpdatedAt = &at
}

// Employee は採用ワークフローのルート集約です。数値 id は初回永続化時に
// ストアが採番します。仮給与 ID は Employee ストアと技能試験ストアを
// 横断して一意です。
type Employee struct {
	ID              int32
	CampusID        int32
	TempPayrollID   string
	FirstName       string
	LastName        string
	PrimaryMobileNo int64
	DateOfBirth     *time.Time
	GenderID        *int32
	QualificationID *int32

	// カテゴリータブ。
	EmployeeTypeID *int32
	DepartmentID   *int32
	DesignationID  *int32

	// 契約タブ。CheckSubmitLevelID は小切手提出チェック時に設定される
	// 社員レベル参照で、未チェック時は nil です。
	AgreementOrgID     *int32
	AgreementType      *string
	CheckSubmitLevelID *int32

	// チェックリスト状態のスナップショット(結合済み)。
	StatusID *int32
	Status   *ChecklistStatus

	Audit
}

// FullName は口座名義の既定値に使われる氏名を返します。
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// StatusName は現在のチェックリスト状態名を返します。未設定なら空文字列です。
func (e *Employee) StatusName() string {
	if e.Status == nil {
		return ""
	}
	return e.Status.Name
}

// Details は Employee と一対一の個人詳細サテライトです。Aadhaar 番号と
// 個人メールアドレスを保持します。個人メールは有効レコード間で一意です。
type Details struct {
	ID            int32
	EmployeeID    int32
	AadhaarNo     int64
	PersonalEmail *string
	Active        bool
	Audit
}

// PFDetails は前職の UAN / ESI 番号を保持する一対一サテライトです。
type PFDetails struct {
	ID          int32
	EmployeeID  int32
	PreviousUAN *string
	PreviousESI *string
	Active      bool
	Audit
}

// Qualification は学歴・資格サブレコードです。
type Qualification struct {
	ID                    int32
	EmployeeID            int32
	QualificationID       *int32
	QualificationDegreeID *int32
	University            *string
	Institute             *string
	Specialization        *string
	PassedOutYear         *int32
	Active                bool
	Audit
}

// Document は提出書類サブレコードです。DocTypeID は必須です。
type Document struct {
	ID         int32
	EmployeeID int32
	DocTypeID  int32
	DocPath    *string
	Verified   bool
	Active     bool
	Audit
}

// 口座種別。
const (
	AccountTypePersonal = "PERSONAL"
	AccountTypeSalary   = "SALARY"
)

// BankAccount は銀行口座サブレコードです。
type BankAccount struct {
	ID                  int32
	EmployeeID          int32
	AccountType         string
	HolderName          string
	AccountNo           int64
	IFSCCode            string
	BankName            *string
	BankBranch          *string
	PayableAt           *string
	PaymentTypeID       *int32
	StatementChequePath *string
	Active              bool
	Audit
}

// Cheque は契約タブで提出される小切手サブレコードです。
type Cheque struct {
	ID         int32
	EmployeeID int32
	ChequeNo   int64
	BankName   string
	IFSCCode   string
	Active     bool
	Audit
}

// SubjectAssignment はカテゴリータブで登録される担当科目です。
// 社員ごとに有効レコードは高々 1 件に保たれます。
type SubjectAssignment struct {
	ID                   int32
	EmployeeID           int32
	SubjectID            int32
	AgreedPeriodsPerWeek int32
	OrientationID        *int32
	Active               bool
	Audit
}

// SearchFilter は柔軟な社員検索の条件です。nil のフィールドは無視されます。
type SearchFilter struct {
	CityID         *int32
	EmployeeTypeID *int32
	PayrollID      *string
}

// SearchResult は検索結果の 1 行です。
type SearchResult struct {
	EmployeeID     int32
	FirstName      string
	LastName       string
	DepartmentName *string
	TempPayrollID  string
}

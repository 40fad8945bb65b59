package employee

import "context"

// Repository は Employee ルート集約の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, emp *Employee) (*Employee, error)
	Update(ctx context.Context, emp *Employee) (*Employee, error)
	FindByID(ctx context.Context, id int32) (*Employee, error)
	FindByTempPayrollID(ctx context.Context, tempPayrollID string) (*Employee, error)
	FindByPrimaryMobileNo(ctx context.Context, mobileNo int64) (*Employee, error)
	// FindMaxTempPayrollID は接頭辞に一致する仮給与 ID の最大値を返します。
	// 一致がなければ空文字列を返します。
	FindMaxTempPayrollID(ctx context.Context, prefix string) (string, error)
	Search(ctx context.Context, filter SearchFilter) ([]*SearchResult, error)
}

// DetailsRepository は個人詳細サテライトの永続化の抽象です。
type DetailsRepository interface {
	Create(ctx context.Context, details *Details) (*Details, error)
	Update(ctx context.Context, details *Details) (*Details, error)
	FindByEmployeeID(ctx context.Context, employeeID int32) (*Details, error)
	FindByAadhaarNo(ctx context.Context, aadhaarNo int64) (*Details, error)
	FindByPersonalEmail(ctx context.Context, email string) (*Details, error)
}

// PFDetailsRepository は PF サテライトの永続化の抽象です。
type PFDetailsRepository interface {
	Create(ctx context.Context, pf *PFDetails) (*PFDetails, error)
	Update(ctx context.Context, pf *PFDetails) (*PFDetails, error)
	FindByEmployeeID(ctx context.Context, employeeID int32) (*PFDetails, error)
}

// QualificationRepository は資格サブレコードの永続化の抽象です。
// ListActiveByEmployee は挿入順で有効レコードを返します(位置対応の前提)。
type QualificationRepository interface {
	Create(ctx context.Context, q *Qualification) (*Qualification, error)
	Update(ctx context.Context, q *Qualification) (*Qualification, error)
	ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*Qualification, error)
}

// DocumentRepository は書類サブレコードの永続化の抽象です。
type DocumentRepository interface {
	Create(ctx context.Context, d *Document) (*Document, error)
	Update(ctx context.Context, d *Document) (*Document, error)
	ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*Document, error)
}

// BankAccountRepository は銀行口座サブレコードの永続化の抽象です。
type BankAccountRepository interface {
	Create(ctx context.Context, b *BankAccount) (*BankAccount, error)
	Update(ctx context.Context, b *BankAccount) (*BankAccount, error)
	ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*BankAccount, error)
}

// ChequeRepository は小切手サブレコードの永続化の抽象です。
type ChequeRepository interface {
	Create(ctx context.Context, c *Cheque) (*Cheque, error)
	Update(ctx context.Context, c *Cheque) (*Cheque, error)
	ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*Cheque, error)
}

// SubjectAssignmentRepository は担当科目サブレコードの永続化の抽象です。
type SubjectAssignmentRepository interface {
	Create(ctx context.Context, s *SubjectAssignment) (*SubjectAssignment, error)
	Update(ctx context.Context, s *SubjectAssignment) (*SubjectAssignment, error)
	ListActiveByEmployee(ctx context.Context, employeeID int32) ([]*SubjectAssignment, error)
}

// StatusRepository はチェックリスト状態の名前検索の抽象です。
type StatusRepository interface {
	FindByName(ctx context.Context, name string) (*ChecklistStatus, error)
}

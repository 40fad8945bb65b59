package skilltest

import "context"

// Repository は技能試験レコードの永続化の抽象です。FindActive 系は
// 有効フラグが立つレコードのみを対象とします。
type Repository interface {
	Create(ctx context.Context, record *SkillTest) (*SkillTest, error)
	FindActiveByTempPayrollID(ctx context.Context, tempPayrollID string) (*SkillTest, error)
	FindActiveByAadhaarNo(ctx context.Context, aadhaarNo int64) (*SkillTest, error)
	FindActiveByContactNumber(ctx context.Context, contactNumber int64) (*SkillTest, error)
	// FindMaxTempPayrollID は接頭辞に一致する仮給与 ID の最大値を返します。
	// 一致がなければ空文字列を返します。
	FindMaxTempPayrollID(ctx context.Context, prefix string) (string, error)
}

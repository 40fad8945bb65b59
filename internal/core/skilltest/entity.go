package skilltest

import (
	"time"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
)

// SkillTest は採用前登録(技能試験段階)のエンティティです。Aadhaar 番号と
// 連絡先電話番号は有効レコード間でそれぞれ一意です。
type SkillTest struct {
	ID                   int32
	AadhaarNo            int64
	PreviousEmployeeCode *string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	Email                *string
	ContactNumber        int64
	TotalExperience      *int32
	TempPayrollID        string
	Password             string

	GenderID        *int32
	QualificationID *int32
	JoiningAsID     *int32
	StreamID        *int32
	SubjectID       *int32
	LevelID         *int32
	GradeID         *int32
	StructureID     *int32

	Active bool
	employee.Audit
}

// DerivePassword は初期パスワードを導出します。名の先頭 3 文字
// (3 文字未満なら "emp")に生年月日 ddMMyyyy を連結します。
func DerivePassword(firstName string, dateOfBirth time.Time) string {
	namePart := "emp"
	if len(firstName) >= 3 {
		namePart = firstName[:3]
	}
	return namePart + dateOfBirth.Format("02012006")
}

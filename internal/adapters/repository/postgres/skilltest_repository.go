package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

const skillTestColumns = `id, aadhaar_no, previous_employee_code, first_name, last_name, date_of_birth, email, contact_number, total_experience, temp_payroll_id, password, gender_id, qualification_id, joining_as_id, stream_id, subject_id, level_id, grade_id, structure_id, is_active, created_by, created_at, updated_by, updated_at`

// SkillTestRepository は PostgreSQL を利用した技能試験レコード永続化の実装です。
type SkillTestRepository struct {
	pool pgdb.Queryer
}

// NewSkillTestRepository は SkillTestRepository を生成します。
func NewSkillTestRepository(pool pgdb.Queryer) *SkillTestRepository {
	return &SkillTestRepository{pool: pool}
}

// Create は技能試験レコードを新規作成します。
func (r *SkillTestRepository) Create(ctx context.Context, record *skilltest.SkillTest) (*skilltest.SkillTest, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO skill_tests (
            aadhaar_no, previous_employee_code, first_name, last_name, date_of_birth,
            email, contact_number, total_experience, temp_payroll_id, password,
            gender_id, qualification_id, joining_as_id, stream_id, subject_id,
            level_id, grade_id, structure_id, is_active, created_by, created_at, updated_by, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
        RETURNING `+skillTestColumns+`
    `,
		record.AadhaarNo,
		record.PreviousEmployeeCode,
		record.FirstName,
		record.LastName,
		dateArg(&record.DateOfBirth),
		record.Email,
		record.ContactNumber,
		record.TotalExperience,
		record.TempPayrollID,
		record.Password,
		record.GenderID,
		record.QualificationID,
		record.JoiningAsID,
		record.StreamID,
		record.SubjectID,
		record.LevelID,
		record.GradeID,
		record.StructureID,
		record.Active,
		record.CreatedBy,
		record.CreatedAt,
		record.UpdatedBy,
		record.UpdatedAt,
	)

	created, err := scanSkillTest(row)
	if err != nil {
		return nil, translateSkillTestPgError(err)
	}
	return created, nil
}

// FindActiveByTempPayrollID は仮給与 ID で有効な技能試験レコードを取得します。
func (r *SkillTestRepository) FindActiveByTempPayrollID(ctx context.Context, tempPayrollID string) (*skilltest.SkillTest, error) {
	return r.findActive(ctx, "temp_payroll_id = $1", tempPayrollID)
}

// FindActiveByAadhaarNo は Aadhaar 番号で有効な技能試験レコードを取得します。
func (r *SkillTestRepository) FindActiveByAadhaarNo(ctx context.Context, aadhaarNo int64) (*skilltest.SkillTest, error) {
	return r.findActive(ctx, "aadhaar_no = $1", aadhaarNo)
}

// FindActiveByContactNumber は連絡先電話番号で有効な技能試験レコードを取得します。
func (r *SkillTestRepository) FindActiveByContactNumber(ctx context.Context, contactNumber int64) (*skilltest.SkillTest, error) {
	return r.findActive(ctx, "contact_number = $1", contactNumber)
}

func (r *SkillTestRepository) findActive(ctx context.Context, condition string, arg any) (*skilltest.SkillTest, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+skillTestColumns+`
          FROM skill_tests
         WHERE `+condition+` AND is_active = TRUE
         LIMIT 1
    `, arg)

	found, err := scanSkillTest(row)
	if err != nil {
		return nil, translateSkillTestPgError(err)
	}
	return found, nil
}

// FindMaxTempPayrollID は接頭辞に一致する仮給与 ID の最大値を返します。
// 接尾辞の桁数が揃わない場合に備えて長さ優先で比較します。
func (r *SkillTestRepository) FindMaxTempPayrollID(ctx context.Context, prefix string) (string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT temp_payroll_id
          FROM skill_tests
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

func scanSkillTest(row pgx.Row) (*skilltest.SkillTest, error) {
	var (
		st                   skilltest.SkillTest
		previousEmployeeCode sql.NullString
		dateOfBirth          sql.NullTime
		email                sql.NullString
		totalExperience      sql.NullInt32
		genderID             sql.NullInt32
		qualificationID      sql.NullInt32
		joiningAsID          sql.NullInt32
		streamID             sql.NullInt32
		subjectID            sql.NullInt32
		levelID              sql.NullInt32
		gradeID              sql.NullInt32
		structureID          sql.NullInt32
		createdBy            sql.NullInt32
		createdAt            sql.NullTime
		updatedBy            sql.NullInt32
		updatedAt            sql.NullTime
	)

	if err := row.Scan(
		&st.ID,
		&st.AadhaarNo,
		&previousEmployeeCode,
		&st.FirstName,
		&st.LastName,
		&dateOfBirth,
		&email,
		&st.ContactNumber,
		&totalExperience,
		&st.TempPayrollID,
		&st.Password,
		&genderID,
		&qualificationID,
		&joiningAsID,
		&streamID,
		&subjectID,
		&levelID,
		&gradeID,
		&structureID,
		&st.Active,
		&createdBy,
		&createdAt,
		&updatedBy,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, skilltest.ErrNotFound
		}
		return nil, err
	}

	if dob := nullableDate(dateOfBirth); dob != nil {
		st.DateOfBirth = *dob
	}
	st.PreviousEmployeeCode = nullableString(previousEmployeeCode)
	st.Email = nullableString(email)
	st.TotalExperience = nullableInt32(totalExperience)
	st.GenderID = nullableInt32(genderID)
	st.QualificationID = nullableInt32(qualificationID)
	st.JoiningAsID = nullableInt32(joiningAsID)
	st.StreamID = nullableInt32(streamID)
	st.SubjectID = nullableInt32(subjectID)
	st.LevelID = nullableInt32(levelID)
	st.GradeID = nullableInt32(gradeID)
	st.StructureID = nullableInt32(structureID)
	st.CreatedBy = nullableInt32(createdBy)
	st.CreatedAt = nullableTime(createdAt)
	st.UpdatedBy = nullableInt32(updatedBy)
	st.UpdatedAt = nullableTime(updatedAt)
	return &st, nil
}

func translateSkillTestPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return skilltest.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case "skill_tests_aadhaar_no_key":
			return skilltest.ErrAadhaarAlreadyExists
		case "skill_tests_contact_number_key":
			return skilltest.ErrContactAlreadyExists
		}
	}

	return err
}

package skilltest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/aadhaar"
	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	"github.com/ogurasousui/employee-onboarding/internal/core/payrollid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// RecruiterFinder は登録担当者の解決に必要な最小の検索面です。
type RecruiterFinder interface {
	FindByID(ctx context.Context, id int32) (*employee.Employee, error)
}

// Service は技能試験候補者の登録ユースケースをまとめます。
type Service struct {
	repo       Repository
	recruiters RecruiterFinder
	master     masterdata.Repository
	gen        *payrollid.Generator
	clock      Clock
	tx         TransactionManager
	logger     *zap.Logger
}

// UseCase は技能試験ユースケースの公開インターフェースです。
type UseCase interface {
	RegisterCandidate(ctx context.Context, recruiterEmployeeID int32, in CandidateInput) (*SkillTest, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, recruiters RecruiterFinder, master masterdata.Repository, gen *payrollid.Generator, clock Clock, tx TransactionManager, logger *zap.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, recruiters: recruiters, master: master, gen: gen, clock: clock, tx: tx, logger: logger}
}

// CandidateInput は候補者登録時の入力です。
type CandidateInput struct {
	AadhaarNo            int64
	PreviousEmployeeCode string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	Email                string
	ContactNumber        int64
	TotalExperience      *int32

	GenderID        *int32
	QualificationID *int32
	JoiningAsID     *int32
	StreamID        *int32
	SubjectID       *int32
	LevelID         *int32
	GradeID         *int32
	StructureID     *int32
}

// RegisterCandidate は技能試験候補者を登録し、仮給与 ID を採番します。
// 登録担当者のキャンパスコードが採番の名前空間になります。
func (s *Service) RegisterCandidate(ctx context.Context, recruiterEmployeeID int32, in CandidateInput) (*SkillTest, error) {
	if recruiterEmployeeID <= 0 {
		return nil, ErrInvalidRecruiterID
	}
	if in.DateOfBirth.IsZero() {
		return nil, ErrDateOfBirthRequired
	}
	if in.AadhaarNo > 0 {
		if err := aadhaar.Validate(in.AadhaarNo); err != nil {
			return nil, err
		}
	}

	var created *SkillTest
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		recruiter, err := s.recruiters.FindByID(txCtx, recruiterEmployeeID)
		if err != nil {
			return fmt.Errorf("recruiter %d: %w", recruiterEmployeeID, ErrRecruiterNotFound)
		}
		if recruiter.CampusID == 0 {
			return fmt.Errorf("recruiter %d: %w", recruiterEmployeeID, ErrCampusNotAssigned)
		}

		campus, err := s.master.FindCampus(txCtx, recruiter.CampusID)
		if err != nil {
			return err
		}

		if err := s.resolveReferences(txCtx, in); err != nil {
			return err
		}

		tempPayrollID, err := s.gen.Next(txCtx, campus.Code)
		if err != nil {
			return err
		}

		record := &SkillTest{
			AadhaarNo:       in.AadhaarNo,
			FirstName:       in.FirstName,
			LastName:        in.LastName,
			DateOfBirth:     in.DateOfBirth,
			ContactNumber:   in.ContactNumber,
			TotalExperience: in.TotalExperience,
			TempPayrollID:   tempPayrollID,
			Password:        DerivePassword(in.FirstName, in.DateOfBirth),
			GenderID:        in.GenderID,
			QualificationID: in.QualificationID,
			JoiningAsID:     in.JoiningAsID,
			StreamID:        in.StreamID,
			SubjectID:       in.SubjectID,
			LevelID:         in.LevelID,
			GradeID:         in.GradeID,
			StructureID:     in.StructureID,
			Active:          true,
		}
		if in.PreviousEmployeeCode != "" {
			code := in.PreviousEmployeeCode
			record.PreviousEmployeeCode = &code
		}
		if in.Email != "" {
			email := in.Email
			record.Email = &email
		}
		record.StampCreated(recruiterEmployeeID, s.clock.Now())

		saved, err := s.repo.Create(txCtx, record)
		if err != nil {
			return err
		}

		created = saved
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("registered skill test candidate",
		zap.Int32("recruiter_employee_id", recruiterEmployeeID),
		zap.String("temp_payroll_id", created.TempPayrollID),
	)
	return created, nil
}

// resolveReferences は入力が参照するマスターデータの存在を確認します。
func (s *Service) resolveReferences(ctx context.Context, in CandidateInput) error {
	lookups := []struct {
		id   *int32
		find func(context.Context, int32) (*masterdata.Record, error)
	}{
		{in.GenderID, s.master.FindGender},
		{in.QualificationID, s.master.FindQualification},
		{in.JoiningAsID, s.master.FindJoiningAs},
		{in.StreamID, s.master.FindStream},
		{in.SubjectID, s.master.FindSubject},
		{in.LevelID, s.master.FindEmployeeLevel},
		{in.GradeID, s.master.FindGrade},
		{in.StructureID, s.master.FindStructure},
	}

	for _, lookup := range lookups {
		if lookup.id == nil || *lookup.id <= 0 {
			continue
		}
		if _, err := lookup.find(ctx, *lookup.id); err != nil {
			return err
		}
	}
	return nil
}

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/aadhaar"
	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	"github.com/ogurasousui/employee-onboarding/internal/core/payrollid"
	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
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

// Repositories はオーケストレーターが依存する永続化面の束です。
type Repositories struct {
	Employees      employee.Repository
	Details        employee.DetailsRepository
	PFDetails      employee.PFDetailsRepository
	Qualifications employee.QualificationRepository
	Documents      employee.DocumentRepository
	BankAccounts   employee.BankAccountRepository
	Cheques        employee.ChequeRepository
	Subjects       employee.SubjectAssignmentRepository
	Statuses       employee.StatusRepository
	SkillTests     skilltest.Repository
	Master         masterdata.Repository
}

// Service は採用オンボーディングの保存操作をまとめるオーケストレーターです。
// 各操作は単一のトランザクション内で検証と書き込みを行います。
type Service struct {
	repos  Repositories
	gen    *payrollid.Generator
	clock  Clock
	tx     TransactionManager
	logger *zap.Logger
}

// UseCase はオンボーディングユースケースの公開インターフェースです。
type UseCase interface {
	GenerateTempPayrollID(ctx context.Context, hrEmployeeID int32, in BasicInfoInput) (*GenerateResult, error)
	SaveQualifications(ctx context.Context, tempPayrollID string, in QualificationsInput) error
	SaveDocuments(ctx context.Context, tempPayrollID string, in DocumentsInput) error
	SaveCategoryInfo(ctx context.Context, tempPayrollID string, in CategoryInfoInput) error
	SaveBankInfo(ctx context.Context, tempPayrollID string, in BankInfoInput) error
	SaveAgreementInfo(ctx context.Context, tempPayrollID string, in AgreementInfoInput) error
	SearchEmployees(ctx context.Context, in SearchInput) ([]*employee.SearchResult, error)
}

// NewService は Service を生成します。
func NewService(repos Repositories, gen *payrollid.Generator, clock Clock, tx TransactionManager, logger *zap.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repos: repos, gen: gen, clock: clock, tx: tx, logger: logger}
}

// GenerateTempPayrollID は基本情報タブの保存です。仮給与 ID が未指定なら
// 重複ガードを通過した上で採番し、指定済みなら技能試験ストアで検証した上で
// 既存社員の更新または新規作成を行います。
func (s *Service) GenerateTempPayrollID(ctx context.Context, hrEmployeeID int32, in BasicInfoInput) (*GenerateResult, error) {
	explicitID := strings.TrimSpace(in.TempPayrollID)
	if explicitID == "" {
		if in.AadhaarNo <= 0 {
			return nil, ErrAadhaarRequired
		}
		if in.PrimaryMobileNo <= 0 {
			return nil, ErrPhoneRequired
		}
		if err := aadhaar.Validate(in.AadhaarNo); err != nil {
			return nil, err
		}
	}

	var result *GenerateResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		campus, err := s.resolveHRCampus(txCtx, hrEmployeeID)
		if err != nil {
			return err
		}
		if err := s.resolveBasicReferences(txCtx, in); err != nil {
			return err
		}

		now := s.clock.Now()

		var (
			emp      *employee.Employee
			isUpdate bool
			finalID  string
		)
		if explicitID != "" {
			if _, err := s.repos.SkillTests.FindActiveByTempPayrollID(txCtx, explicitID); err != nil {
				if errors.Is(err, skilltest.ErrNotFound) {
					return fmt.Errorf("%q: %w", explicitID, ErrUnknownTempPayrollID)
				}
				return err
			}
			finalID = explicitID

			existing, err := s.repos.Employees.FindByTempPayrollID(txCtx, explicitID)
			switch {
			case err == nil:
				emp = existing
				isUpdate = true
			case errors.Is(err, employee.ErrEmployeeNotFound):
				emp = &employee.Employee{}
			default:
				return err
			}
		} else {
			if err := s.checkDuplicates(txCtx, in.AadhaarNo, in.PrimaryMobileNo); err != nil {
				return err
			}
			generated, err := s.gen.Next(txCtx, campus.Code)
			if err != nil {
				return err
			}
			finalID = generated
			emp = &employee.Employee{}
		}

		s.applyBasicInfo(emp, in, campus.ID)
		emp.TempPayrollID = finalID

		if isUpdate {
			if employee.ShouldStampUpdate(emp.StatusName(), hrEmployeeID) {
				emp.StampUpdated(hrEmployeeID, now)
			}
			if emp, err = s.repos.Employees.Update(txCtx, emp); err != nil {
				return err
			}
		} else {
			status, err := s.repos.Statuses.FindByName(txCtx, employee.StatusIncompleted)
			if err != nil {
				return err
			}
			emp.StatusID = &status.ID
			emp.Status = status
			emp.StampCreated(in.CreatedBy, now)
			if emp, err = s.repos.Employees.Create(txCtx, emp); err != nil {
				return err
			}
		}

		if err := s.upsertDetails(txCtx, emp, in, isUpdate, hrEmployeeID, now); err != nil {
			return err
		}
		if err := s.upsertPFDetails(txCtx, emp, in, hrEmployeeID, now); err != nil {
			return err
		}

		message := "new employee created successfully"
		if isUpdate {
			message = "employee updated successfully"
		}
		result = &GenerateResult{
			TempPayrollID: emp.TempPayrollID,
			EmployeeID:    emp.ID,
			Message:       message,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("saved basic info",
		zap.Int32("hr_employee_id", hrEmployeeID),
		zap.String("temp_payroll_id", result.TempPayrollID),
		zap.Int32("employee_id", result.EmployeeID),
	)
	return result, nil
}

// SearchEmployees は市区・社員種別・給与 ID の任意の組み合わせで社員を
// 検索します。
func (s *Service) SearchEmployees(ctx context.Context, in SearchInput) ([]*employee.SearchResult, error) {
	filter := employee.SearchFilter{
		CityID:         in.CityID,
		EmployeeTypeID: in.EmployeeTypeID,
	}
	if trimmed := strings.TrimSpace(in.PayrollID); trimmed != "" {
		filter.PayrollID = &trimmed
	}

	var results []*employee.SearchResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repos.Employees.Search(txCtx, filter)
		if err != nil {
			return err
		}
		results = found
		return nil
	}); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveHRCampus は操作者の所属キャンパスを解決し、採番に使える状態で
// あることを確認します。
func (s *Service) resolveHRCampus(ctx context.Context, hrEmployeeID int32) (*masterdata.Campus, error) {
	hr, err := s.repos.Employees.FindByID(ctx, hrEmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("hr employee %d: %w", hrEmployeeID, ErrHREmployeeNotFound)
		}
		return nil, err
	}
	if hr.CampusID == 0 {
		return nil, fmt.Errorf("hr employee %d: %w", hrEmployeeID, ErrCampusNotAssigned)
	}

	campus, err := s.repos.Master.FindCampus(ctx, hr.CampusID)
	if err != nil {
		return nil, err
	}
	if !campus.Active {
		return nil, fmt.Errorf("campus %d: %w", campus.ID, ErrCampusInactive)
	}
	if campus.Code == 0 {
		return nil, fmt.Errorf("campus %d: %w", campus.ID, ErrCampusCodeUnset)
	}
	return campus, nil
}

// checkDuplicates は両ストアを定められた順序で照会し、最初の一致を
// DuplicateError として返します。
func (s *Service) checkDuplicates(ctx context.Context, aadhaarNo, mobileNo int64) error {
	if st, err := s.repos.SkillTests.FindActiveByAadhaarNo(ctx, aadhaarNo); err == nil {
		return &DuplicateError{
			Store:         StoreSkillTest,
			Field:         FieldAadhaar,
			Value:         strconv.FormatInt(aadhaarNo, 10),
			TempPayrollID: st.TempPayrollID,
		}
	} else if !errors.Is(err, skilltest.ErrNotFound) {
		return err
	}

	if details, err := s.repos.Details.FindByAadhaarNo(ctx, aadhaarNo); err == nil {
		tempID, err := s.tempPayrollIDOf(ctx, details.EmployeeID)
		if err != nil {
			return err
		}
		return &DuplicateError{
			Store:         StoreEmployeeDetails,
			Field:         FieldAadhaar,
			Value:         strconv.FormatInt(aadhaarNo, 10),
			TempPayrollID: tempID,
		}
	} else if !errors.Is(err, employee.ErrDetailsNotFound) {
		return err
	}

	if st, err := s.repos.SkillTests.FindActiveByContactNumber(ctx, mobileNo); err == nil {
		return &DuplicateError{
			Store:         StoreSkillTest,
			Field:         FieldPhone,
			Value:         strconv.FormatInt(mobileNo, 10),
			TempPayrollID: st.TempPayrollID,
		}
	} else if !errors.Is(err, skilltest.ErrNotFound) {
		return err
	}

	if emp, err := s.repos.Employees.FindByPrimaryMobileNo(ctx, mobileNo); err == nil {
		return &DuplicateError{
			Store:         StoreEmployee,
			Field:         FieldPhone,
			Value:         strconv.FormatInt(mobileNo, 10),
			TempPayrollID: emp.TempPayrollID,
		}
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}

	return nil
}

func (s *Service) tempPayrollIDOf(ctx context.Context, employeeID int32) (string, error) {
	emp, err := s.repos.Employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return "", nil
		}
		return "", err
	}
	return emp.TempPayrollID, nil
}

// resolveBasicReferences は基本情報が参照するマスターデータの存在を
// 確認します。
func (s *Service) resolveBasicReferences(ctx context.Context, in BasicInfoInput) error {
	lookups := []struct {
		id   *int32
		find func(context.Context, int32) (*masterdata.Record, error)
	}{
		{in.GenderID, s.repos.Master.FindGender},
		{in.QualificationID, s.repos.Master.FindQualification},
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

// applyBasicInfo は基本情報タブの項目をルート集約へ写します。
func (s *Service) applyBasicInfo(emp *employee.Employee, in BasicInfoInput, hrCampusID int32) {
	emp.FirstName = in.FirstName
	emp.LastName = in.LastName
	emp.PrimaryMobileNo = in.PrimaryMobileNo
	emp.DateOfBirth = in.DateOfBirth
	if in.GenderID != nil && *in.GenderID > 0 {
		emp.GenderID = in.GenderID
	}
	if in.QualificationID != nil && *in.QualificationID > 0 {
		emp.QualificationID = in.QualificationID
	}
	if in.CampusID > 0 {
		emp.CampusID = in.CampusID
	} else if emp.CampusID == 0 {
		emp.CampusID = hrCampusID
	}
}

// upsertDetails は個人詳細サテライトを保存します。社員 id で既存レコードが
// 見つからない場合は、個人メールアドレスで既存レコードを探して付け替えます。
func (s *Service) upsertDetails(ctx context.Context, emp *employee.Employee, in BasicInfoInput, isUpdate bool, hrEmployeeID int32, now time.Time) error {
	email := strings.TrimSpace(in.PersonalEmail)

	if isUpdate {
		existing, err := s.repos.Details.FindByEmployeeID(ctx, emp.ID)
		switch {
		case err == nil:
			existing.AadhaarNo = in.AadhaarNo
			if email != "" {
				existing.PersonalEmail = &email
			}
			existing.Active = true
			existing.StampUpdated(hrEmployeeID, now)
			_, err = s.repos.Details.Update(ctx, existing)
			return err
		case !errors.Is(err, employee.ErrDetailsNotFound):
			return err
		}
	}

	if email != "" {
		orphan, err := s.repos.Details.FindByPersonalEmail(ctx, email)
		switch {
		case err == nil:
			orphan.EmployeeID = emp.ID
			orphan.AadhaarNo = in.AadhaarNo
			orphan.Active = true
			orphan.StampUpdated(hrEmployeeID, now)
			_, err = s.repos.Details.Update(ctx, orphan)
			return err
		case !errors.Is(err, employee.ErrDetailsNotFound):
			return err
		}
	}

	details := &employee.Details{
		EmployeeID: emp.ID,
		AadhaarNo:  in.AadhaarNo,
		Active:     true,
	}
	if email != "" {
		details.PersonalEmail = &email
	}
	details.StampCreated(in.CreatedBy, now)
	_, err := s.repos.Details.Create(ctx, details)
	return err
}

// upsertPFDetails は前職 PF 番号のサテライトを保存します。UAN も ESI も
// 空なら何もしません。
func (s *Service) upsertPFDetails(ctx context.Context, emp *employee.Employee, in BasicInfoInput, hrEmployeeID int32, now time.Time) error {
	uan := strings.TrimSpace(in.PreviousUAN)
	esi := strings.TrimSpace(in.PreviousESI)
	if uan == "" && esi == "" {
		return nil
	}

	existing, err := s.repos.PFDetails.FindByEmployeeID(ctx, emp.ID)
	switch {
	case err == nil:
		setOptional(&existing.PreviousUAN, uan)
		setOptional(&existing.PreviousESI, esi)
		existing.Active = true
		existing.StampUpdated(hrEmployeeID, now)
		_, err = s.repos.PFDetails.Update(ctx, existing)
		return err
	case !errors.Is(err, employee.ErrDetailsNotFound):
		return err
	}

	pf := &employee.PFDetails{EmployeeID: emp.ID, Active: true}
	setOptional(&pf.PreviousUAN, uan)
	setOptional(&pf.PreviousESI, esi)
	pf.StampCreated(in.CreatedBy, now)
	_, err = s.repos.PFDetails.Create(ctx, pf)
	return err
}

// findByTempPayrollID はタブ保存の共通入口です。
func (s *Service) findByTempPayrollID(ctx context.Context, tempPayrollID string) (*employee.Employee, error) {
	trimmed := strings.TrimSpace(tempPayrollID)
	emp, err := s.repos.Employees.FindByTempPayrollID(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("temp payroll id %q: %w", trimmed, err)
	}
	return emp, nil
}

func setOptional(dst **string, value string) {
	if value == "" {
		return
	}
	v := value
	*dst = &v
}

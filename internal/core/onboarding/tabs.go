package onboarding

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	"github.com/ogurasousui/employee-onboarding/internal/core/reconcile"
)

// SaveQualifications は資格タブを保存します。送信列と既存の有効列を
// 位置対応で突き合わせます。
func (s *Service) SaveQualifications(ctx context.Context, tempPayrollID string, in QualificationsInput) error {
	var result reconcile.Result
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		for _, q := range in.Qualifications {
			if err := s.resolveQualificationReferences(txCtx, q); err != nil {
				return err
			}
		}

		emp, err := s.findByTempPayrollID(txCtx, tempPayrollID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		submitted := make([]*employee.Qualification, 0, len(in.Qualifications))
		for _, q := range in.Qualifications {
			record := &employee.Qualification{
				EmployeeID:            emp.ID,
				QualificationID:       q.QualificationID,
				QualificationDegreeID: q.QualificationDegreeID,
				PassedOutYear:         q.PassedOutYear,
				Active:                true,
			}
			setOptional(&record.University, strings.TrimSpace(q.University))
			setOptional(&record.Institute, strings.TrimSpace(q.Institute))
			setOptional(&record.Specialization, strings.TrimSpace(q.Specialization))
			submitted = append(submitted, record)
		}

		existing, err := s.repos.Qualifications.ListActiveByEmployee(txCtx, emp.ID)
		if err != nil {
			return err
		}

		result, err = reconcile.Zip(txCtx, submitted, existing, reconcile.Funcs[*employee.Qualification]{
			Update: func(ctx context.Context, current, next *employee.Qualification) error {
				current.QualificationID = next.QualificationID
				current.QualificationDegreeID = next.QualificationDegreeID
				current.University = next.University
				current.Institute = next.Institute
				current.Specialization = next.Specialization
				current.PassedOutYear = next.PassedOutYear
				current.Active = true
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.Qualifications.Update(ctx, current)
				return err
			},
			Insert: func(ctx context.Context, next *employee.Qualification) error {
				next.StampCreated(in.CreatedBy, now)
				_, err := s.repos.Qualifications.Create(ctx, next)
				return err
			},
			Deactivate: func(ctx context.Context, current *employee.Qualification) error {
				current.Active = false
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.Qualifications.Update(ctx, current)
				return err
			},
		})
		return err
	}); err != nil {
		return err
	}

	s.logger.Info("saved qualifications",
		zap.String("temp_payroll_id", tempPayrollID),
		zap.Int("updated", result.Updated),
		zap.Int("inserted", result.Inserted),
		zap.Int("deactivated", result.Deactivated),
	)
	return nil
}

// SaveDocuments は書類タブを保存します。
func (s *Service) SaveDocuments(ctx context.Context, tempPayrollID string, in DocumentsInput) error {
	var result reconcile.Result
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		for i, d := range in.Documents {
			if d.DocTypeID == nil || *d.DocTypeID <= 0 {
				return fmt.Errorf("document %d: %w", i, ErrDocTypeRequired)
			}
			if _, err := s.repos.Master.FindDocumentType(txCtx, *d.DocTypeID); err != nil {
				return err
			}
		}

		emp, err := s.findByTempPayrollID(txCtx, tempPayrollID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		submitted := make([]*employee.Document, 0, len(in.Documents))
		for _, d := range in.Documents {
			record := &employee.Document{
				EmployeeID: emp.ID,
				DocTypeID:  *d.DocTypeID,
				Verified:   d.Verified,
				Active:     true,
			}
			setOptional(&record.DocPath, strings.TrimSpace(d.DocPath))
			submitted = append(submitted, record)
		}

		existing, err := s.repos.Documents.ListActiveByEmployee(txCtx, emp.ID)
		if err != nil {
			return err
		}

		result, err = reconcile.Zip(txCtx, submitted, existing, reconcile.Funcs[*employee.Document]{
			Update: func(ctx context.Context, current, next *employee.Document) error {
				current.DocTypeID = next.DocTypeID
				current.DocPath = next.DocPath
				current.Verified = next.Verified
				current.Active = true
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.Documents.Update(ctx, current)
				return err
			},
			Insert: func(ctx context.Context, next *employee.Document) error {
				next.StampCreated(in.CreatedBy, now)
				_, err := s.repos.Documents.Create(ctx, next)
				return err
			},
			Deactivate: func(ctx context.Context, current *employee.Document) error {
				current.Active = false
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.Documents.Update(ctx, current)
				return err
			},
		})
		return err
	}); err != nil {
		return err
	}

	s.logger.Info("saved documents",
		zap.String("temp_payroll_id", tempPayrollID),
		zap.Int("updated", result.Updated),
		zap.Int("inserted", result.Inserted),
		zap.Int("deactivated", result.Deactivated),
	)
	return nil
}

// SaveCategoryInfo はカテゴリータブを保存します。ルート集約の所属参照を
// 更新し、担当科目が指定されていれば有効レコードを高々 1 件に保ちます。
func (s *Service) SaveCategoryInfo(ctx context.Context, tempPayrollID string, in CategoryInfoInput) error {
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.resolveCategoryReferences(txCtx, in); err != nil {
			return err
		}

		emp, err := s.findByTempPayrollID(txCtx, tempPayrollID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		if in.EmployeeTypeID != nil && *in.EmployeeTypeID > 0 {
			emp.EmployeeTypeID = in.EmployeeTypeID
		}
		if in.DepartmentID != nil && *in.DepartmentID > 0 {
			emp.DepartmentID = in.DepartmentID
		}
		if in.DesignationID != nil && *in.DesignationID > 0 {
			emp.DesignationID = in.DesignationID
		}
		if employee.ShouldStampUpdate(emp.StatusName(), in.UpdatedBy) {
			emp.StampUpdated(in.UpdatedBy, now)
		}
		if _, err := s.repos.Employees.Update(txCtx, emp); err != nil {
			return err
		}

		return s.saveSubjectAssignment(txCtx, emp, in, now)
	}); err != nil {
		return err
	}

	s.logger.Info("saved category info", zap.String("temp_payroll_id", tempPayrollID))
	return nil
}

// saveSubjectAssignment は担当科目を保存します。既存の有効レコードの先頭を
// 更新し、残りは無効化します。
func (s *Service) saveSubjectAssignment(ctx context.Context, emp *employee.Employee, in CategoryInfoInput, now time.Time) error {
	if in.SubjectID == nil || *in.SubjectID <= 0 {
		return nil
	}
	if in.AgreedPeriodsPerWeek == nil || *in.AgreedPeriodsPerWeek <= 0 {
		return ErrPeriodsPerWeekRequired
	}

	existing, err := s.repos.Subjects.ListActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		assignment := &employee.SubjectAssignment{
			EmployeeID:           emp.ID,
			SubjectID:            *in.SubjectID,
			AgreedPeriodsPerWeek: *in.AgreedPeriodsPerWeek,
			OrientationID:        in.OrientationID,
			Active:               true,
		}
		assignment.StampCreated(in.CreatedBy, now)
		_, err := s.repos.Subjects.Create(ctx, assignment)
		return err
	}

	head := existing[0]
	head.SubjectID = *in.SubjectID
	head.AgreedPeriodsPerWeek = *in.AgreedPeriodsPerWeek
	head.OrientationID = in.OrientationID
	head.Active = true
	head.StampUpdated(in.UpdatedBy, now)
	if _, err := s.repos.Subjects.Update(ctx, head); err != nil {
		return err
	}

	for _, stale := range existing[1:] {
		stale.Active = false
		stale.StampUpdated(in.UpdatedBy, now)
		if _, err := s.repos.Subjects.Update(ctx, stale); err != nil {
			return err
		}
	}
	return nil
}

// SaveBankInfo は銀行タブを保存します。個人口座と給与口座を組み立てて
// 既存の有効口座と位置対応で突き合わせます。
func (s *Service) SaveBankInfo(ctx context.Context, tempPayrollID string, in BankInfoInput) error {
	var result reconcile.Result
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		branchName, bank, err := s.resolveBankReferences(txCtx, in)
		if err != nil {
			return err
		}

		emp, err := s.findByTempPayrollID(txCtx, tempPayrollID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		submitted, err := s.buildBankAccounts(emp, in, branchName, bank)
		if err != nil {
			return err
		}

		existing, err := s.repos.BankAccounts.ListActiveByEmployee(txCtx, emp.ID)
		if err != nil {
			return err
		}

		result, err = reconcile.Zip(txCtx, submitted, existing, reconcile.Funcs[*employee.BankAccount]{
			Update: func(ctx context.Context, current, next *employee.BankAccount) error {
				current.AccountType = next.AccountType
				current.HolderName = next.HolderName
				current.AccountNo = next.AccountNo
				current.IFSCCode = next.IFSCCode
				current.BankName = next.BankName
				current.BankBranch = next.BankBranch
				current.PayableAt = next.PayableAt
				current.PaymentTypeID = next.PaymentTypeID
				current.Active = true
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.BankAccounts.Update(ctx, current)
				return err
			},
			Insert: func(ctx context.Context, next *employee.BankAccount) error {
				next.StampCreated(in.CreatedBy, now)
				_, err := s.repos.BankAccounts.Create(ctx, next)
				return err
			},
			Deactivate: func(ctx context.Context, current *employee.BankAccount) error {
				current.Active = false
				current.StampUpdated(in.UpdatedBy, now)
				_, err := s.repos.BankAccounts.Update(ctx, current)
				return err
			},
		})
		return err
	}); err != nil {
		return err
	}

	s.logger.Info("saved bank info",
		zap.String("temp_payroll_id", tempPayrollID),
		zap.Int("updated", result.Updated),
		zap.Int("inserted", result.Inserted),
		zap.Int("deactivated", result.Deactivated),
	)
	return nil
}

// resolveBankReferences は銀行タブの参照を検証し、支店名と銀行マスターを
// 解決します。支店は id か名前のどちらか一方で指定します。
func (s *Service) resolveBankReferences(ctx context.Context, in BankInfoInput) (string, *masterdata.Bank, error) {
	branchName := strings.TrimSpace(in.BankBranchName)
	hasBranchID := in.BankBranchID != nil && *in.BankBranchID > 0
	if hasBranchID && branchName != "" {
		return "", nil, ErrBankBranchConflict
	}

	if in.PaymentTypeID != nil && *in.PaymentTypeID > 0 {
		if _, err := s.repos.Master.FindActivePaymentType(ctx, *in.PaymentTypeID); err != nil {
			return "", nil, err
		}
	}

	if hasBranchID {
		branch, err := s.repos.Master.FindBankBranch(ctx, *in.BankBranchID)
		if err != nil {
			return "", nil, err
		}
		branchName = branch.Name
	}

	var bank *masterdata.Bank
	if in.BankID != nil && *in.BankID > 0 {
		found, err := s.repos.Master.FindBank(ctx, *in.BankID)
		if err != nil {
			return "", nil, err
		}
		bank = found
	}
	return branchName, bank, nil
}

// buildBankAccounts は入力から送信口座列を組み立てます。個人口座が先頭、
// 給与口座が後続という並びを保ちます。
func (s *Service) buildBankAccounts(emp *employee.Employee, in BankInfoInput, branchName string, bank *masterdata.Bank) ([]*employee.BankAccount, error) {
	accounts := make([]*employee.BankAccount, 0, 2)

	hasSalary := in.SalaryAccount != nil && strings.TrimSpace(in.SalaryAccount.AccountNo) != ""

	if in.PersonalAccount != nil {
		personal, err := buildAccount(emp, *in.PersonalAccount, employee.AccountTypePersonal, false)
		if err != nil {
			return nil, err
		}
		// 給与口座がなければ支払い方法は個人口座に付きます。
		if !hasSalary {
			personal.PaymentTypeID = in.PaymentTypeID
		}
		accounts = append(accounts, personal)
	}

	if hasSalary {
		salary, err := buildAccount(emp, *in.SalaryAccount, employee.AccountTypeSalary, true)
		if err != nil {
			return nil, err
		}
		salary.PaymentTypeID = in.PaymentTypeID
		setOptional(&salary.BankBranch, branchName)
		if bank != nil {
			name := bank.Name
			salary.BankName = &name
			if salary.IFSCCode == "" {
				salary.IFSCCode = bank.IFSCCode
			}
		}
		accounts = append(accounts, salary)
	}

	return accounts, nil
}

// buildAccount は口座 1 件を検証して組み立てます。給与口座は IFSC と名義を
// 後段で補完できるため必須チェックを緩めます。
func buildAccount(emp *employee.Employee, in BankAccountInput, accountType string, relaxed bool) (*employee.BankAccount, error) {
	accountNo := strings.TrimSpace(in.AccountNo)
	if accountNo == "" {
		return nil, fmt.Errorf("%s account: %w", strings.ToLower(accountType), ErrAccountNumberRequired)
	}
	parsed, err := strconv.ParseInt(accountNo, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s account %q: %w", strings.ToLower(accountType), accountNo, ErrAccountNumberNotNumber)
	}

	ifsc := strings.TrimSpace(in.IFSCCode)
	holder := strings.TrimSpace(in.AccountHolderName)
	if !relaxed {
		if ifsc == "" {
			return nil, fmt.Errorf("%s account: %w", strings.ToLower(accountType), ErrIFSCCodeRequired)
		}
		if holder == "" {
			return nil, fmt.Errorf("%s account: %w", strings.ToLower(accountType), ErrHolderNameRequired)
		}
	}
	if holder == "" {
		holder = emp.FullName()
	}

	account := &employee.BankAccount{
		EmployeeID:  emp.ID,
		AccountType: accountType,
		HolderName:  holder,
		AccountNo:   parsed,
		IFSCCode:    ifsc,
		Active:      true,
	}
	setOptional(&account.BankName, strings.TrimSpace(in.BankName))
	setOptional(&account.PayableAt, strings.TrimSpace(in.PayableAt))
	return account, nil
}

// SaveAgreementInfo は契約タブを保存します。保存が成功すると状態は
// 必ず Pending at DO へ遷移します。
func (s *Service) SaveAgreementInfo(ctx context.Context, tempPayrollID string, in AgreementInfoInput) error {
	checkSubmit := in.CheckSubmit != nil && *in.CheckSubmit
	if checkSubmit {
		if len(in.Cheques) == 0 {
			return ErrChequesRequired
		}
		for i, c := range in.Cheques {
			if c.ChequeNo <= 0 {
				return fmt.Errorf("cheque %d: %w", i, ErrChequeNumberRequired)
			}
			if strings.TrimSpace(c.BankName) == "" {
				return fmt.Errorf("cheque %d: %w", i, ErrChequeBankNameRequired)
			}
			if strings.TrimSpace(c.IFSCCode) == "" {
				return fmt.Errorf("cheque %d: %w", i, ErrChequeIFSCCodeRequired)
			}
		}
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp, err := s.findByTempPayrollID(txCtx, tempPayrollID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		if in.AgreementOrgID != nil && *in.AgreementOrgID > 0 {
			emp.AgreementOrgID = in.AgreementOrgID
		}
		if agreementType := strings.TrimSpace(in.AgreementType); agreementType != "" {
			emp.AgreementType = &agreementType
		}
		if in.CheckSubmit != nil {
			if checkSubmit {
				level := int32(1)
				emp.CheckSubmitLevelID = &level
			} else {
				emp.CheckSubmitLevelID = nil
			}
		}

		if employee.ShouldStampUpdate(emp.StatusName(), in.UpdatedBy) {
			emp.StampUpdated(in.UpdatedBy, now)
		}

		pending, err := s.repos.Statuses.FindByName(txCtx, employee.StatusPendingAtDO)
		if err != nil {
			return err
		}
		emp.StatusID = &pending.ID
		emp.Status = pending

		if _, err := s.repos.Employees.Update(txCtx, emp); err != nil {
			return err
		}

		return s.saveCheques(txCtx, emp, in, checkSubmit, now)
	}); err != nil {
		return err
	}

	s.logger.Info("saved agreement info",
		zap.String("temp_payroll_id", tempPayrollID),
		zap.Bool("check_submit", checkSubmit),
	)
	return nil
}

// saveCheques は小切手集合を保存します。小切手提出が外れた場合は既存の
// 有効レコードをすべて無効化します。
func (s *Service) saveCheques(ctx context.Context, emp *employee.Employee, in AgreementInfoInput, checkSubmit bool, now time.Time) error {
	existing, err := s.repos.Cheques.ListActiveByEmployee(ctx, emp.ID)
	if err != nil {
		return err
	}

	if !checkSubmit {
		for _, current := range existing {
			current.Active = false
			current.StampUpdated(in.UpdatedBy, now)
			if _, err := s.repos.Cheques.Update(ctx, current); err != nil {
				return err
			}
		}
		return nil
	}

	submitted := make([]*employee.Cheque, 0, len(in.Cheques))
	for _, c := range in.Cheques {
		submitted = append(submitted, &employee.Cheque{
			EmployeeID: emp.ID,
			ChequeNo:   c.ChequeNo,
			BankName:   strings.TrimSpace(c.BankName),
			IFSCCode:   strings.TrimSpace(c.IFSCCode),
			Active:     true,
		})
	}

	_, err = reconcile.Zip(ctx, submitted, existing, reconcile.Funcs[*employee.Cheque]{
		Update: func(ctx context.Context, current, next *employee.Cheque) error {
			current.ChequeNo = next.ChequeNo
			current.BankName = next.BankName
			current.IFSCCode = next.IFSCCode
			current.Active = true
			current.StampUpdated(in.UpdatedBy, now)
			_, err := s.repos.Cheques.Update(ctx, current)
			return err
		},
		Insert: func(ctx context.Context, next *employee.Cheque) error {
			next.StampCreated(in.CreatedBy, now)
			_, err := s.repos.Cheques.Create(ctx, next)
			return err
		},
		Deactivate: func(ctx context.Context, current *employee.Cheque) error {
			current.Active = false
			current.StampUpdated(in.UpdatedBy, now)
			_, err := s.repos.Cheques.Update(ctx, current)
			return err
		},
	})
	return err
}

func (s *Service) resolveQualificationReferences(ctx context.Context, in QualificationInput) error {
	if in.QualificationID != nil && *in.QualificationID > 0 {
		if _, err := s.repos.Master.FindQualification(ctx, *in.QualificationID); err != nil {
			return err
		}
	}
	if in.QualificationDegreeID != nil && *in.QualificationDegreeID > 0 {
		if _, err := s.repos.Master.FindQualificationDegree(ctx, *in.QualificationDegreeID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resolveCategoryReferences(ctx context.Context, in CategoryInfoInput) error {
	lookups := []struct {
		id   *int32
		find func(context.Context, int32) (*masterdata.Record, error)
	}{
		{in.EmployeeTypeID, s.repos.Master.FindEmployeeType},
		{in.DepartmentID, s.repos.Master.FindDepartment},
		{in.DesignationID, s.repos.Master.FindDesignation},
		{in.SubjectID, s.repos.Master.FindSubject},
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

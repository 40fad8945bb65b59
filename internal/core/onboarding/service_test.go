package onboarding

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	"github.com/ogurasousui/employee-onboarding/internal/core/payrollid"
	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
)

const (
	validAadhaar = int64(234123412346)
	validPhone   = int64(9876543210)
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

type fakeEmployeeRepo struct {
	employees  map[int32]*employee.Employee
	nextID     int32
	lastFilter *employee.SearchFilter
	results    []*employee.SearchResult
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int32]*employee.Employee{}, nextID: 1}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp *employee.Employee) (*employee.Employee, error) {
	emp.ID = r.nextID
	r.nextID++
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp *employee.Employee) (*employee.Employee, error) {
	if _, ok := r.employees[emp.ID]; !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id int32) (*employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) FindByTempPayrollID(_ context.Context, tempPayrollID string) (*employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.TempPayrollID == tempPayrollID {
			return emp, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) FindByPrimaryMobileNo(_ context.Context, mobileNo int64) (*employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.PrimaryMobileNo == mobileNo {
			return emp, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) FindMaxTempPayrollID(_ context.Context, prefix string) (string, error) {
	maxID := ""
	for _, emp := range r.employees {
		if strings.HasPrefix(emp.TempPayrollID, prefix) && emp.TempPayrollID > maxID {
			maxID = emp.TempPayrollID
		}
	}
	return maxID, nil
}

func (r *fakeEmployeeRepo) Search(_ context.Context, filter employee.SearchFilter) ([]*employee.SearchResult, error) {
	r.lastFilter = &filter
	return r.results, nil
}

type fakeDetailsRepo struct {
	records []*employee.Details
}

func (r *fakeDetailsRepo) Create(_ context.Context, details *employee.Details) (*employee.Details, error) {
	r.records = append(r.records, details)
	return details, nil
}

func (r *fakeDetailsRepo) Update(_ context.Context, details *employee.Details) (*employee.Details, error) {
	return details, nil
}

func (r *fakeDetailsRepo) FindByEmployeeID(_ context.Context, employeeID int32) (*employee.Details, error) {
	for _, d := range r.records {
		if d.Active && d.EmployeeID == employeeID {
			return d, nil
		}
	}
	return nil, employee.ErrDetailsNotFound
}

func (r *fakeDetailsRepo) FindByAadhaarNo(_ context.Context, aadhaarNo int64) (*employee.Details, error) {
	for _, d := range r.records {
		if d.Active && d.AadhaarNo == aadhaarNo {
			return d, nil
		}
	}
	return nil, employee.ErrDetailsNotFound
}

func (r *fakeDetailsRepo) FindByPersonalEmail(_ context.Context, email string) (*employee.Details, error) {
	for _, d := range r.records {
		if d.Active && d.PersonalEmail != nil && *d.PersonalEmail == email {
			return d, nil
		}
	}
	return nil, employee.ErrDetailsNotFound
}

type fakePFRepo struct {
	records []*employee.PFDetails
	nextID  int32
}

func (r *fakePFRepo) Create(_ context.Context, pf *employee.PFDetails) (*employee.PFDetails, error) {
	r.nextID++
	pf.ID = r.nextID
	r.records = append(r.records, pf)
	return pf, nil
}

func (r *fakePFRepo) Update(_ context.Context, pf *employee.PFDetails) (*employee.PFDetails, error) {
	return pf, nil
}

func (r *fakePFRepo) FindByEmployeeID(_ context.Context, employeeID int32) (*employee.PFDetails, error) {
	for _, pf := range r.records {
		if pf.Active && pf.EmployeeID == employeeID {
			return pf, nil
		}
	}
	return nil, employee.ErrDetailsNotFound
}

type fakeQualificationRepo struct {
	records []*employee.Qualification
	nextID  int32
}

func (r *fakeQualificationRepo) Create(_ context.Context, q *employee.Qualification) (*employee.Qualification, error) {
	r.nextID++
	q.ID = r.nextID
	r.records = append(r.records, q)
	return q, nil
}

func (r *fakeQualificationRepo) Update(_ context.Context, q *employee.Qualification) (*employee.Qualification, error) {
	return q, nil
}

func (r *fakeQualificationRepo) ListActiveByEmployee(_ context.Context, employeeID int32) ([]*employee.Qualification, error) {
	var active []*employee.Qualification
	for _, q := range r.records {
		if q.Active && q.EmployeeID == employeeID {
			active = append(active, q)
		}
	}
	return active, nil
}

type fakeDocumentRepo struct {
	records []*employee.Document
	nextID  int32
}

func (r *fakeDocumentRepo) Create(_ context.Context, d *employee.Document) (*employee.Document, error) {
	r.nextID++
	d.ID = r.nextID
	r.records = append(r.records, d)
	return d, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, d *employee.Document) (*employee.Document, error) {
	return d, nil
}

func (r *fakeDocumentRepo) ListActiveByEmployee(_ context.Context, employeeID int32) ([]*employee.Document, error) {
	var active []*employee.Document
	for _, d := range r.records {
		if d.Active && d.EmployeeID == employeeID {
			active = append(active, d)
		}
	}
	return active, nil
}

type fakeBankAccountRepo struct {
	records []*employee.BankAccount
	nextID  int32
}

func (r *fakeBankAccountRepo) Create(_ context.Context, b *employee.BankAccount) (*employee.BankAccount, error) {
	r.nextID++
	b.ID = r.nextID
	r.records = append(r.records, b)
	return b, nil
}

func (r *fakeBankAccountRepo) Update(_ context.Context, b *employee.BankAccount) (*employee.BankAccount, error) {
	return b, nil
}

func (r *fakeBankAccountRepo) ListActiveByEmployee(_ context.Context, employeeID int32) ([]*employee.BankAccount, error) {
	var active []*employee.BankAccount
	for _, b := range r.records {
		if b.Active && b.EmployeeID == employeeID {
			active = append(active, b)
		}
	}
	return active, nil
}

type fakeChequeRepo struct {
	records []*employee.Cheque
	nextID  int32
}

func (r *fakeChequeRepo) Create(_ context.Context, c *employee.Cheque) (*employee.Cheque, error) {
	r.nextID++
	c.ID = r.nextID
	r.records = append(r.records, c)
	return c, nil
}

func (r *fakeChequeRepo) Update(_ context.Context, c *employee.Cheque) (*employee.Cheque, error) {
	return c, nil
}

func (r *fakeChequeRepo) ListActiveByEmployee(_ context.Context, employeeID int32) ([]*employee.Cheque, error) {
	var active []*employee.Cheque
	for _, c := range r.records {
		if c.Active && c.EmployeeID == employeeID {
			active = append(active, c)
		}
	}
	return active, nil
}

type fakeSubjectRepo struct {
	records []*employee.SubjectAssignment
	nextID  int32
}

func (r *fakeSubjectRepo) Create(_ context.Context, s *employee.SubjectAssignment) (*employee.SubjectAssignment, error) {
	r.nextID++
	s.ID = r.nextID
	r.records = append(r.records, s)
	return s, nil
}

func (r *fakeSubjectRepo) Update(_ context.Context, s *employee.SubjectAssignment) (*employee.SubjectAssignment, error) {
	return s, nil
}

func (r *fakeSubjectRepo) ListActiveByEmployee(_ context.Context, employeeID int32) ([]*employee.SubjectAssignment, error) {
	var active []*employee.SubjectAssignment
	for _, s := range r.records {
		if s.Active && s.EmployeeID == employeeID {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeStatusRepo struct {
	statuses map[string]*employee.ChecklistStatus
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{statuses: map[string]*employee.ChecklistStatus{
		employee.StatusIncompleted: {ID: 1, Name: employee.StatusIncompleted},
		employee.StatusPendingAtDO: {ID: 2, Name: employee.StatusPendingAtDO},
		employee.StatusConfirm:     {ID: 3, Name: employee.StatusConfirm},
	}}
}

func (r *fakeStatusRepo) FindByName(_ context.Context, name string) (*employee.ChecklistStatus, error) {
	status, ok := r.statuses[name]
	if !ok {
		return nil, employee.ErrStatusNotFound
	}
	return status, nil
}

type fakeSkillTestRepo struct {
	records []*skilltest.SkillTest
}

func (r *fakeSkillTestRepo) Create(_ context.Context, record *skilltest.SkillTest) (*skilltest.SkillTest, error) {
	r.records = append(r.records, record)
	return record, nil
}

func (r *fakeSkillTestRepo) FindActiveByTempPayrollID(_ context.Context, tempPayrollID string) (*skilltest.SkillTest, error) {
	for _, st := range r.records {
		if st.Active && st.TempPayrollID == tempPayrollID {
			return st, nil
		}
	}
	return nil, skilltest.ErrNotFound
}

func (r *fakeSkillTestRepo) FindActiveByAadhaarNo(_ context.Context, aadhaarNo int64) (*skilltest.SkillTest, error) {
	for _, st := range r.records {
		if st.Active && st.AadhaarNo == aadhaarNo {
			return st, nil
		}
	}
	return nil, skilltest.ErrNotFound
}

func (r *fakeSkillTestRepo) FindActiveByContactNumber(_ context.Context, contactNumber int64) (*skilltest.SkillTest, error) {
	for _, st := range r.records {
		if st.Active && st.ContactNumber == contactNumber {
			return st, nil
		}
	}
	return nil, skilltest.ErrNotFound
}

func (r *fakeSkillTestRepo) FindMaxTempPayrollID(_ context.Context, prefix string) (string, error) {
	maxID := ""
	for _, st := range r.records {
		if strings.HasPrefix(st.TempPayrollID, prefix) && st.TempPayrollID > maxID {
			maxID = st.TempPayrollID
		}
	}
	return maxID, nil
}

type fakeMasterRepo struct {
	campuses map[int32]*masterdata.Campus
	banks    map[int32]*masterdata.Bank
}

func newFakeMasterRepo() *fakeMasterRepo {
	return &fakeMasterRepo{
		campuses: map[int32]*masterdata.Campus{},
		banks:    map[int32]*masterdata.Bank{},
	}
}

func (r *fakeMasterRepo) FindCampus(_ context.Context, id int32) (*masterdata.Campus, error) {
	campus, ok := r.campuses[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return campus, nil
}

func (r *fakeMasterRepo) ListCampusesWithCode(_ context.Context) ([]*masterdata.Campus, error) {
	var campuses []*masterdata.Campus
	for _, c := range r.campuses {
		if c.Code != 0 {
			campuses = append(campuses, c)
		}
	}
	return campuses, nil
}

func (r *fakeMasterRepo) record(id int32) (*masterdata.Record, error) {
	return &masterdata.Record{ID: id, Name: "record", Active: true}, nil
}

func (r *fakeMasterRepo) FindGender(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindQualification(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindQualificationDegree(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindDocumentType(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindDepartment(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindDesignation(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindEmployeeType(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindSubject(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindActivePaymentType(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindBank(_ context.Context, id int32) (*masterdata.Bank, error) {
	bank, ok := r.banks[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return bank, nil
}

func (r *fakeMasterRepo) FindBankBranch(_ context.Context, id int32) (*masterdata.Record, error) {
	return &masterdata.Record{ID: id, Name: "MG Road", Active: true}, nil
}

func (r *fakeMasterRepo) FindJoiningAs(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindStream(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindEmployeeLevel(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindGrade(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

func (r *fakeMasterRepo) FindStructure(_ context.Context, id int32) (*masterdata.Record, error) {
	return r.record(id)
}

type fixture struct {
	service    *Service
	employees  *fakeEmployeeRepo
	details    *fakeDetailsRepo
	pf         *fakePFRepo
	quals      *fakeQualificationRepo
	documents  *fakeDocumentRepo
	banks      *fakeBankAccountRepo
	cheques    *fakeChequeRepo
	subjects   *fakeSubjectRepo
	statuses   *fakeStatusRepo
	skillTests *fakeSkillTestRepo
	master     *fakeMasterRepo
	now        time.Time
}

func newFixture() *fixture {
	f := &fixture{
		employees:  newFakeEmployeeRepo(),
		details:    &fakeDetailsRepo{},
		pf:         &fakePFRepo{},
		quals:      &fakeQualificationRepo{},
		documents:  &fakeDocumentRepo{},
		banks:      &fakeBankAccountRepo{},
		cheques:    &fakeChequeRepo{},
		subjects:   &fakeSubjectRepo{},
		statuses:   newFakeStatusRepo(),
		skillTests: &fakeSkillTestRepo{},
		master:     newFakeMasterRepo(),
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.master.campuses[7] = &masterdata.Campus{ID: 7, Code: 1062, Name: "Main", Active: true}

	gen := payrollid.NewGenerator(f.employees, f.skillTests, payrollid.NewCache(), nil)
	f.service = NewService(Repositories{
		Employees:      f.employees,
		Details:        f.details,
		PFDetails:      f.pf,
		Qualifications: f.quals,
		Documents:      f.documents,
		BankAccounts:   f.banks,
		Cheques:        f.cheques,
		Subjects:       f.subjects,
		Statuses:       f.statuses,
		SkillTests:     f.skillTests,
		Master:         f.master,
	}, gen, stubClock{now: f.now}, nil, nil)
	return f
}

// seedHR は採番操作を行う人事担当の社員を登録します。
func (f *fixture) seedHR(t *testing.T) int32 {
	t.Helper()
	hr, err := f.employees.Create(context.Background(), &employee.Employee{
		CampusID:      7,
		TempPayrollID: "HR0001",
		FirstName:     "Hr",
		LastName:      "User",
	})
	if err != nil {
		t.Fatalf("seed hr: %v", err)
	}
	return hr.ID
}

// seedOnboarded は基本情報保存済みの社員を 1 名登録します。
func (f *fixture) seedOnboarded(t *testing.T, tempPayrollID, statusName string) *employee.Employee {
	t.Helper()
	status := f.statuses.statuses[statusName]
	emp, err := f.employees.Create(context.Background(), &employee.Employee{
		CampusID:        7,
		TempPayrollID:   tempPayrollID,
		FirstName:       "Asha",
		LastName:        "Rao",
		PrimaryMobileNo: validPhone,
		StatusID:        &status.ID,
		Status:          status,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

func TestGenerateTempPayrollIDCreatesEmployee(t *testing.T) {
	t.Parallel()

	f := newFixture()
	hrID := f.seedHR(t)

	result, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
		FirstName:       "Asha",
		LastName:        "Rao",
		AadhaarNo:       validAadhaar,
		PrimaryMobileNo: validPhone,
		PersonalEmail:   "asha@example.com",
		CreatedBy:       hrID,
	})
	if err != nil {
		t.Fatalf("GenerateTempPayrollID() error = %v", err)
	}
	if result.TempPayrollID != "TEMP10620001" {
		t.Errorf("TempPayrollID = %q, want %q", result.TempPayrollID, "TEMP10620001")
	}

	emp, err := f.employees.FindByTempPayrollID(context.Background(), result.TempPayrollID)
	if err != nil {
		t.Fatalf("created employee not found: %v", err)
	}
	if emp.StatusName() != employee.StatusIncompleted {
		t.Errorf("status = %q, want %q", emp.StatusName(), employee.StatusIncompleted)
	}
	if emp.CreatedBy == nil || *emp.CreatedBy != hrID {
		t.Errorf("CreatedBy = %v, want %d", emp.CreatedBy, hrID)
	}

	details, err := f.details.FindByEmployeeID(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("details not found: %v", err)
	}
	if details.AadhaarNo != validAadhaar {
		t.Errorf("details aadhaar = %d, want %d", details.AadhaarNo, validAadhaar)
	}
}

func TestGenerateTempPayrollIDRequiresFingerprint(t *testing.T) {
	t.Parallel()

	f := newFixture()
	hrID := f.seedHR(t)

	_, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
		PrimaryMobileNo: validPhone,
	})
	if !errors.Is(err, ErrAadhaarRequired) {
		t.Errorf("missing aadhaar: error = %v, want ErrAadhaarRequired", err)
	}

	_, err = f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
		AadhaarNo: validAadhaar,
	})
	if !errors.Is(err, ErrPhoneRequired) {
		t.Errorf("missing phone: error = %v, want ErrPhoneRequired", err)
	}
}

func TestGenerateTempPayrollIDDuplicateGuardOrder(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, seed func(*fixture), wantStore, wantField string) {
		t.Helper()
		f := newFixture()
		hrID := f.seedHR(t)
		seed(f)

		_, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
			AadhaarNo:       validAadhaar,
			PrimaryMobileNo: validPhone,
		})
		dup, ok := AsDuplicate(err)
		if !ok {
			t.Fatalf("error = %v, want DuplicateError", err)
		}
		if dup.Store != wantStore || dup.Field != wantField {
			t.Errorf("got %s/%s, want %s/%s", dup.Store, dup.Field, wantStore, wantField)
		}
	}

	seedSkillTestAadhaar := func(f *fixture) {
		f.skillTests.records = append(f.skillTests.records, &skilltest.SkillTest{
			AadhaarNo: validAadhaar, TempPayrollID: "TEMP10620009", Active: true,
		})
	}
	seedDetailsAadhaar := func(f *fixture) {
		emp := f.seedOnboarded(t, "TEMP10620008", employee.StatusIncompleted)
		f.details.records = append(f.details.records, &employee.Details{
			EmployeeID: emp.ID, AadhaarNo: validAadhaar, Active: true,
		})
	}
	seedSkillTestPhone := func(f *fixture) {
		f.skillTests.records = append(f.skillTests.records, &skilltest.SkillTest{
			ContactNumber: validPhone, TempPayrollID: "TEMP10620007", Active: true,
		})
	}
	seedEmployeePhone := func(f *fixture) {
		f.seedOnboarded(t, "TEMP10620006", employee.StatusIncompleted)
	}

	t.Run("skill test aadhaar wins over all", func(t *testing.T) {
		run(t, func(f *fixture) {
			seedSkillTestAadhaar(f)
			seedDetailsAadhaar(f)
			seedSkillTestPhone(f)
			seedEmployeePhone(f)
		}, StoreSkillTest, FieldAadhaar)
	})
	t.Run("details aadhaar wins over phone matches", func(t *testing.T) {
		run(t, func(f *fixture) {
			seedDetailsAadhaar(f)
			seedSkillTestPhone(f)
			seedEmployeePhone(f)
		}, StoreEmployeeDetails, FieldAadhaar)
	})
	t.Run("skill test phone wins over employee phone", func(t *testing.T) {
		run(t, func(f *fixture) {
			seedSkillTestPhone(f)
			seedEmployeePhone(f)
		}, StoreSkillTest, FieldPhone)
	})
	t.Run("employee phone checked last", func(t *testing.T) {
		run(t, seedEmployeePhone, StoreEmployee, FieldPhone)
	})
}

func TestGenerateTempPayrollIDExplicitID(t *testing.T) {
	t.Parallel()

	t.Run("unknown id is rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		hrID := f.seedHR(t)

		_, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
			TempPayrollID: "TEMP10629999",
		})
		if !errors.Is(err, ErrUnknownTempPayrollID) {
			t.Errorf("error = %v, want ErrUnknownTempPayrollID", err)
		}
	})

	t.Run("known id without employee creates one", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		hrID := f.seedHR(t)
		f.skillTests.records = append(f.skillTests.records, &skilltest.SkillTest{
			TempPayrollID: "TEMP10620001", Active: true,
		})

		result, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
			TempPayrollID:   "TEMP10620001",
			FirstName:       "Asha",
			LastName:        "Rao",
			PrimaryMobileNo: validPhone,
			CreatedBy:       hrID,
		})
		if err != nil {
			t.Fatalf("GenerateTempPayrollID() error = %v", err)
		}
		if result.TempPayrollID != "TEMP10620001" {
			t.Errorf("TempPayrollID = %q, want the explicit id", result.TempPayrollID)
		}
		if _, err := f.employees.FindByTempPayrollID(context.Background(), "TEMP10620001"); err != nil {
			t.Errorf("employee not created: %v", err)
		}
	})

	t.Run("known id with employee updates it", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		hrID := f.seedHR(t)
		f.skillTests.records = append(f.skillTests.records, &skilltest.SkillTest{
			TempPayrollID: "TEMP10620001", Active: true,
		})
		seeded := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

		result, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
			TempPayrollID:   "TEMP10620001",
			FirstName:       "Asha",
			LastName:        "Kumar",
			PrimaryMobileNo: validPhone,
		})
		if err != nil {
			t.Fatalf("GenerateTempPayrollID() error = %v", err)
		}
		if result.EmployeeID != seeded.ID {
			t.Errorf("EmployeeID = %d, want %d", result.EmployeeID, seeded.ID)
		}
		updated, _ := f.employees.FindByID(context.Background(), seeded.ID)
		if updated.LastName != "Kumar" {
			t.Errorf("LastName = %q, want %q", updated.LastName, "Kumar")
		}
	})
}

func TestGenerateTempPayrollIDUpdateStampGate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		statusName string
		wantStamp  bool
	}{
		{"incompleted is not stamped", employee.StatusIncompleted, false},
		{"pending at do is not stamped", employee.StatusPendingAtDO, false},
		{"confirm is stamped", employee.StatusConfirm, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			hrID := f.seedHR(t)
			f.skillTests.records = append(f.skillTests.records, &skilltest.SkillTest{
				TempPayrollID: "TEMP10620001", Active: true,
			})
			seeded := f.seedOnboarded(t, "TEMP10620001", tc.statusName)

			_, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
				TempPayrollID:   "TEMP10620001",
				FirstName:       "Asha",
				LastName:        "Rao",
				PrimaryMobileNo: validPhone,
			})
			if err != nil {
				t.Fatalf("GenerateTempPayrollID() error = %v", err)
			}

			updated, _ := f.employees.FindByID(context.Background(), seeded.ID)
			stamped := updated.UpdatedBy != nil
			if stamped != tc.wantStamp {
				t.Errorf("stamped = %v, want %v", stamped, tc.wantStamp)
			}
			if tc.wantStamp && *updated.UpdatedBy != hrID {
				t.Errorf("UpdatedBy = %d, want %d", *updated.UpdatedBy, hrID)
			}
		})
	}
}

func TestGenerateTempPayrollIDReattachesDetailsByEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	hrID := f.seedHR(t)
	email := "asha@example.com"
	orphan := &employee.Details{EmployeeID: 999, PersonalEmail: &email, Active: true}
	f.details.records = append(f.details.records, orphan)

	result, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
		FirstName:       "Asha",
		LastName:        "Rao",
		AadhaarNo:       validAadhaar,
		PrimaryMobileNo: validPhone,
		PersonalEmail:   email,
	})
	if err != nil {
		t.Fatalf("GenerateTempPayrollID() error = %v", err)
	}

	if len(f.details.records) != 1 {
		t.Fatalf("details count = %d, want the orphan reattached, not a new row", len(f.details.records))
	}
	if orphan.EmployeeID != result.EmployeeID {
		t.Errorf("orphan EmployeeID = %d, want %d", orphan.EmployeeID, result.EmployeeID)
	}
	if orphan.AadhaarNo != validAadhaar {
		t.Errorf("orphan AadhaarNo = %d, want %d", orphan.AadhaarNo, validAadhaar)
	}
}

func TestGenerateTempPayrollIDSavesPFDetails(t *testing.T) {
	t.Parallel()

	f := newFixture()
	hrID := f.seedHR(t)

	result, err := f.service.GenerateTempPayrollID(context.Background(), hrID, BasicInfoInput{
		FirstName:       "Asha",
		LastName:        "Rao",
		AadhaarNo:       validAadhaar,
		PrimaryMobileNo: validPhone,
		PreviousUAN:     "100200300400",
	})
	if err != nil {
		t.Fatalf("GenerateTempPayrollID() error = %v", err)
	}

	pf, err := f.pf.FindByEmployeeID(context.Background(), result.EmployeeID)
	if err != nil {
		t.Fatalf("pf details not found: %v", err)
	}
	if pf.PreviousUAN == nil || *pf.PreviousUAN != "100200300400" {
		t.Errorf("PreviousUAN = %v, want 100200300400", pf.PreviousUAN)
	}
}

func TestSaveQualificationsReconciles(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	id := func(v int32) *int32 { return &v }
	first := QualificationsInput{Qualifications: []QualificationInput{
		{QualificationID: id(1), University: "Delhi University"},
		{QualificationID: id(2), University: "Mumbai University"},
	}}
	if err := f.service.SaveQualifications(context.Background(), emp.TempPayrollID, first); err != nil {
		t.Fatalf("SaveQualifications() error = %v", err)
	}
	if got := len(f.quals.records); got != 2 {
		t.Fatalf("records = %d, want 2", got)
	}

	// 1 件だけ再送すると、重なりは更新、余った既存は無効化されます。
	second := QualificationsInput{Qualifications: []QualificationInput{
		{QualificationID: id(3), University: "Chennai University"},
	}}
	if err := f.service.SaveQualifications(context.Background(), emp.TempPayrollID, second); err != nil {
		t.Fatalf("SaveQualifications() error = %v", err)
	}

	active, _ := f.quals.ListActiveByEmployee(context.Background(), emp.ID)
	if len(active) != 1 {
		t.Fatalf("active = %d, want 1", len(active))
	}
	if active[0].University == nil || *active[0].University != "Chennai University" {
		t.Errorf("head university = %v, want Chennai University", active[0].University)
	}
	if len(f.quals.records) != 2 {
		t.Errorf("physical records = %d, want 2 (no new insert)", len(f.quals.records))
	}
}

func TestSaveDocumentsRequiresDocType(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	err := f.service.SaveDocuments(context.Background(), emp.TempPayrollID, DocumentsInput{
		Documents: []DocumentInput{{DocPath: "/docs/aadhaar.pdf"}},
	})
	if !errors.Is(err, ErrDocTypeRequired) {
		t.Errorf("error = %v, want ErrDocTypeRequired", err)
	}
}

func TestSaveCategoryInfoKeepsSingleActiveSubject(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	id := func(v int32) *int32 { return &v }
	in := CategoryInfoInput{
		EmployeeTypeID:       id(4),
		DepartmentID:         id(5),
		SubjectID:            id(9),
		AgreedPeriodsPerWeek: id(24),
	}
	if err := f.service.SaveCategoryInfo(context.Background(), emp.TempPayrollID, in); err != nil {
		t.Fatalf("SaveCategoryInfo() error = %v", err)
	}

	// 科目を替えて再送しても有効レコードは 1 件のままです。
	in.SubjectID = id(10)
	if err := f.service.SaveCategoryInfo(context.Background(), emp.TempPayrollID, in); err != nil {
		t.Fatalf("SaveCategoryInfo() second error = %v", err)
	}

	active, _ := f.subjects.ListActiveByEmployee(context.Background(), emp.ID)
	if len(active) != 1 {
		t.Fatalf("active subjects = %d, want 1", len(active))
	}
	if active[0].SubjectID != 10 {
		t.Errorf("SubjectID = %d, want 10", active[0].SubjectID)
	}

	updated, _ := f.employees.FindByID(context.Background(), emp.ID)
	if updated.EmployeeTypeID == nil || *updated.EmployeeTypeID != 4 {
		t.Errorf("EmployeeTypeID = %v, want 4", updated.EmployeeTypeID)
	}
}

func TestSaveCategoryInfoRequiresPeriodsWithSubject(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	id := func(v int32) *int32 { return &v }
	err := f.service.SaveCategoryInfo(context.Background(), emp.TempPayrollID, CategoryInfoInput{
		SubjectID: id(9),
	})
	if !errors.Is(err, ErrPeriodsPerWeekRequired) {
		t.Errorf("error = %v, want ErrPeriodsPerWeekRequired", err)
	}
}

func TestSaveBankInfoBranchConflict(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	id := func(v int32) *int32 { return &v }
	err := f.service.SaveBankInfo(context.Background(), emp.TempPayrollID, BankInfoInput{
		BankBranchID:   id(2),
		BankBranchName: "Andheri",
	})
	if !errors.Is(err, ErrBankBranchConflict) {
		t.Errorf("error = %v, want ErrBankBranchConflict", err)
	}
}

func TestSaveBankInfoPersonalAndSalary(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)
	f.master.banks[5] = &masterdata.Bank{ID: 5, Name: "ICICI", IFSCCode: "ICIC0000001", Active: true}

	id := func(v int32) *int32 { return &v }
	in := BankInfoInput{
		PaymentTypeID: id(3),
		BankID:        id(5),
		PersonalAccount: &BankAccountInput{
			AccountNo:         "12345678",
			IFSCCode:          "HDFC0000001",
			AccountHolderName: "Asha Rao",
			BankName:          "HDFC",
		},
		SalaryAccount: &BankAccountInput{
			AccountNo: "87654321",
		},
	}
	if err := f.service.SaveBankInfo(context.Background(), emp.TempPayrollID, in); err != nil {
		t.Fatalf("SaveBankInfo() error = %v", err)
	}

	active, _ := f.banks.ListActiveByEmployee(context.Background(), emp.ID)
	if len(active) != 2 {
		t.Fatalf("active accounts = %d, want 2", len(active))
	}

	personal, salary := active[0], active[1]
	if personal.AccountType != employee.AccountTypePersonal {
		t.Errorf("first account type = %q, want PERSONAL", personal.AccountType)
	}
	if personal.PaymentTypeID != nil {
		t.Errorf("personal PaymentTypeID = %v, want nil when salary account exists", personal.PaymentTypeID)
	}
	if salary.AccountType != employee.AccountTypeSalary {
		t.Errorf("second account type = %q, want SALARY", salary.AccountType)
	}
	if salary.IFSCCode != "ICIC0000001" {
		t.Errorf("salary IFSC = %q, want the bank master fallback", salary.IFSCCode)
	}
	if salary.HolderName != emp.FullName() {
		t.Errorf("salary holder = %q, want %q", salary.HolderName, emp.FullName())
	}
	if salary.PaymentTypeID == nil || *salary.PaymentTypeID != 3 {
		t.Errorf("salary PaymentTypeID = %v, want 3", salary.PaymentTypeID)
	}
}

func TestSaveBankInfoValidatesPersonalAccount(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	cases := []struct {
		name    string
		account BankAccountInput
		wantErr error
	}{
		{"missing account number", BankAccountInput{IFSCCode: "HDFC0000001", AccountHolderName: "Asha"}, ErrAccountNumberRequired},
		{"non numeric account number", BankAccountInput{AccountNo: "12AB", IFSCCode: "HDFC0000001", AccountHolderName: "Asha"}, ErrAccountNumberNotNumber},
		{"missing ifsc", BankAccountInput{AccountNo: "123", AccountHolderName: "Asha"}, ErrIFSCCodeRequired},
		{"missing holder", BankAccountInput{AccountNo: "123", IFSCCode: "HDFC0000001"}, ErrHolderNameRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			account := tc.account
			err := f.service.SaveBankInfo(context.Background(), emp.TempPayrollID, BankInfoInput{
				PersonalAccount: &account,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSaveAgreementInfoRequiresCheques(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	submit := true
	err := f.service.SaveAgreementInfo(context.Background(), emp.TempPayrollID, AgreementInfoInput{
		CheckSubmit: &submit,
	})
	if !errors.Is(err, ErrChequesRequired) {
		t.Errorf("error = %v, want ErrChequesRequired", err)
	}
}

func TestSaveAgreementInfoIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	submit := true
	in := AgreementInfoInput{
		CheckSubmit: &submit,
		Cheques:     []ChequeInput{{ChequeNo: 445566, BankName: "HDFC", IFSCCode: "HDFC0000001"}},
	}

	for i := 0; i < 2; i++ {
		if err := f.service.SaveAgreementInfo(context.Background(), emp.TempPayrollID, in); err != nil {
			t.Fatalf("SaveAgreementInfo() #%d error = %v", i+1, err)
		}
	}

	active, _ := f.cheques.ListActiveByEmployee(context.Background(), emp.ID)
	if len(active) != 1 {
		t.Fatalf("active cheques = %d, want 1 after identical resubmission", len(active))
	}

	updated, _ := f.employees.FindByID(context.Background(), emp.ID)
	if updated.StatusName() != employee.StatusPendingAtDO {
		t.Errorf("status = %q, want %q", updated.StatusName(), employee.StatusPendingAtDO)
	}
	if updated.CheckSubmitLevelID == nil {
		t.Error("CheckSubmitLevelID = nil, want set when check submit is true")
	}
}

func TestSaveAgreementInfoUncheckedDeactivatesCheques(t *testing.T) {
	t.Parallel()

	f := newFixture()
	emp := f.seedOnboarded(t, "TEMP10620001", employee.StatusIncompleted)

	submit := true
	seed := AgreementInfoInput{
		CheckSubmit: &submit,
		Cheques:     []ChequeInput{{ChequeNo: 445566, BankName: "HDFC", IFSCCode: "HDFC0000001"}},
	}
	if err := f.service.SaveAgreementInfo(context.Background(), emp.TempPayrollID, seed); err != nil {
		t.Fatalf("seed agreement: %v", err)
	}

	unchecked := false
	if err := f.service.SaveAgreementInfo(context.Background(), emp.TempPayrollID, AgreementInfoInput{
		CheckSubmit: &unchecked,
	}); err != nil {
		t.Fatalf("SaveAgreementInfo() error = %v", err)
	}

	active, _ := f.cheques.ListActiveByEmployee(context.Background(), emp.ID)
	if len(active) != 0 {
		t.Errorf("active cheques = %d, want 0", len(active))
	}

	updated, _ := f.employees.FindByID(context.Background(), emp.ID)
	if updated.CheckSubmitLevelID != nil {
		t.Errorf("CheckSubmitLevelID = %v, want nil", updated.CheckSubmitLevelID)
	}
	if updated.StatusName() != employee.StatusPendingAtDO {
		t.Errorf("status = %q, want %q even when unchecked", updated.StatusName(), employee.StatusPendingAtDO)
	}
}

func TestSearchEmployeesPassesFilter(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.employees.results = []*employee.SearchResult{{EmployeeID: 1, TempPayrollID: "TEMP10620001"}}

	cityID := int32(12)
	results, err := f.service.SearchEmployees(context.Background(), SearchInput{
		CityID:    &cityID,
		PayrollID: "  TEMP10620001  ",
	})
	if err != nil {
		t.Fatalf("SearchEmployees() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	filter := f.employees.lastFilter
	if filter == nil {
		t.Fatal("filter not recorded")
	}
	if filter.CityID == nil || *filter.CityID != cityID {
		t.Errorf("CityID = %v, want %d", filter.CityID, cityID)
	}
	if filter.PayrollID == nil || *filter.PayrollID != "TEMP10620001" {
		t.Errorf("PayrollID = %v, want trimmed id", filter.PayrollID)
	}
}

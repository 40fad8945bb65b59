package handler

import (
	"fmt"
	"time"

	"github.com/ogurasousui/employee-onboarding/internal/core/onboarding"
	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &parsed, nil
}

// basicInfoRequest は基本情報タブ保存のリクエストボディです。
type basicInfoRequest struct {
	HREmployeeID    int32  `json:"hrEmployeeId" binding:"required"`
	TempPayrollID   string `json:"tempPayrollId"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName"`
	AadhaarNo       int64  `json:"aadhaarNo"`
	PrimaryMobileNo int64  `json:"primaryMobileNo"`
	PersonalEmail   string `json:"personalEmail"`
	DateOfBirth     string `json:"dateOfBirth"`
	CampusID        int32  `json:"campusId"`
	GenderID        *int32 `json:"genderId"`
	QualificationID *int32 `json:"qualificationId"`
	PreviousUAN     string `json:"previousUan"`
	PreviousESI     string `json:"previousEsi"`
}

func (r basicInfoRequest) toInput() (onboarding.BasicInfoInput, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return onboarding.BasicInfoInput{}, err
	}
	return onboarding.BasicInfoInput{
		TempPayrollID:   r.TempPayrollID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		AadhaarNo:       r.AadhaarNo,
		PrimaryMobileNo: r.PrimaryMobileNo,
		PersonalEmail:   r.PersonalEmail,
		DateOfBirth:     dob,
		CampusID:        r.CampusID,
		GenderID:        r.GenderID,
		QualificationID: r.QualificationID,
		PreviousUAN:     r.PreviousUAN,
		PreviousESI:     r.PreviousESI,
		CreatedBy:       r.HREmployeeID,
	}, nil
}

type generateResponse struct {
	TempPayrollID string `json:"tempPayrollId"`
	EmployeeID    int32  `json:"employeeId"`
	Message       string `json:"message"`
}

type qualificationRequest struct {
	QualificationID       *int32 `json:"qualificationId"`
	QualificationDegreeID *int32 `json:"qualificationDegreeId"`
	University            string `json:"university"`
	Institute             string `json:"institute"`
	Specialization        string `json:"specialization"`
	PassedOutYear         *int32 `json:"passedOutYear"`
}

type qualificationsRequest struct {
	UpdatedBy      int32                  `json:"updatedBy"`
	Qualifications []qualificationRequest `json:"qualifications"`
}

func (r qualificationsRequest) toInput() onboarding.QualificationsInput {
	in := onboarding.QualificationsInput{CreatedBy: r.UpdatedBy, UpdatedBy: r.UpdatedBy}
	for _, q := range r.Qualifications {
		in.Qualifications = append(in.Qualifications, onboarding.QualificationInput{
			QualificationID:       q.QualificationID,
			QualificationDegreeID: q.QualificationDegreeID,
			University:            q.University,
			Institute:             q.Institute,
			Specialization:        q.Specialization,
			PassedOutYear:         q.PassedOutYear,
		})
	}
	return in
}

type documentRequest struct {
	DocTypeID *int32 `json:"docTypeId"`
	DocPath   string `json:"docPath"`
	Verified  bool   `json:"verified"`
}

type documentsRequest struct {
	UpdatedBy int32             `json:"updatedBy"`
	Documents []documentRequest `json:"documents"`
}

func (r documentsRequest) toInput() onboarding.DocumentsInput {
	in := onboarding.DocumentsInput{CreatedBy: r.UpdatedBy, UpdatedBy: r.UpdatedBy}
	for _, d := range r.Documents {
		in.Documents = append(in.Documents, onboarding.DocumentInput{
			DocTypeID: d.DocTypeID,
			DocPath:   d.DocPath,
			Verified:  d.Verified,
		})
	}
	return in
}

type categoryInfoRequest struct {
	UpdatedBy            int32  `json:"updatedBy"`
	EmployeeTypeID       *int32 `json:"employeeTypeId"`
	DepartmentID         *int32 `json:"departmentId"`
	DesignationID        *int32 `json:"designationId"`
	SubjectID            *int32 `json:"subjectId"`
	AgreedPeriodsPerWeek *int32 `json:"agreedPeriodsPerWeek"`
	OrientationID        *int32 `json:"orientationId"`
}

func (r categoryInfoRequest) toInput() onboarding.CategoryInfoInput {
	return onboarding.CategoryInfoInput{
		EmployeeTypeID:       r.EmployeeTypeID,
		DepartmentID:         r.DepartmentID,
		DesignationID:        r.DesignationID,
		SubjectID:            r.SubjectID,
		AgreedPeriodsPerWeek: r.AgreedPeriodsPerWeek,
		OrientationID:        r.OrientationID,
		CreatedBy:            r.UpdatedBy,
		UpdatedBy:            r.UpdatedBy,
	}
}

type bankAccountRequest struct {
	AccountNo         string `json:"accountNo"`
	IFSCCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	PayableAt         string `json:"payableAt"`
}

func (r *bankAccountRequest) toInput() *onboarding.BankAccountInput {
	if r == nil {
		return nil
	}
	return &onboarding.BankAccountInput{
		AccountNo:         r.AccountNo,
		IFSCCode:          r.IFSCCode,
		AccountHolderName: r.AccountHolderName,
		BankName:          r.BankName,
		PayableAt:         r.PayableAt,
	}
}

type bankInfoRequest struct {
	UpdatedBy       int32               `json:"updatedBy"`
	PaymentTypeID   *int32              `json:"paymentTypeId"`
	BankID          *int32              `json:"bankId"`
	BankBranchID    *int32              `json:"bankBranchId"`
	BankBranchName  string              `json:"bankBranchName"`
	PersonalAccount *bankAccountRequest `json:"personalAccount"`
	SalaryAccount   *bankAccountRequest `json:"salaryAccount"`
}

func (r bankInfoRequest) toInput() onboarding.BankInfoInput {
	return onboarding.BankInfoInput{
		PaymentTypeID:   r.PaymentTypeID,
		BankID:          r.BankID,
		BankBranchID:    r.BankBranchID,
		BankBranchName:  r.BankBranchName,
		PersonalAccount: r.PersonalAccount.toInput(),
		SalaryAccount:   r.SalaryAccount.toInput(),
		CreatedBy:       r.UpdatedBy,
		UpdatedBy:       r.UpdatedBy,
	}
}

type chequeRequest struct {
	ChequeNo int64  `json:"chequeNo"`
	BankName string `json:"bankName"`
	IFSCCode string `json:"ifscCode"`
}

type agreementInfoRequest struct {
	UpdatedBy      int32           `json:"updatedBy"`
	AgreementOrgID *int32          `json:"agreementOrgId"`
	AgreementType  string          `json:"agreementType"`
	CheckSubmit    *bool           `json:"isCheckSubmit"`
	Cheques        []chequeRequest `json:"cheques"`
}

func (r agreementInfoRequest) toInput() onboarding.AgreementInfoInput {
	in := onboarding.AgreementInfoInput{
		AgreementOrgID: r.AgreementOrgID,
		AgreementType:  r.AgreementType,
		CheckSubmit:    r.CheckSubmit,
		CreatedBy:      r.UpdatedBy,
		UpdatedBy:      r.UpdatedBy,
	}
	for _, c := range r.Cheques {
		in.Cheques = append(in.Cheques, onboarding.ChequeInput{
			ChequeNo: c.ChequeNo,
			BankName: c.BankName,
			IFSCCode: c.IFSCCode,
		})
	}
	return in
}

type searchResultResponse struct {
	EmployeeID     int32   `json:"employeeId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	DepartmentName *string `json:"departmentName"`
	TempPayrollID  string  `json:"tempPayrollId"`
}

// candidateRequest は技能試験候補者登録のリクエストボディです。
type candidateRequest struct {
	RecruiterEmployeeID  int32  `json:"recruiterEmployeeId" binding:"required"`
	AadhaarNo            int64  `json:"aadhaarNo"`
	PreviousEmployeeCode string `json:"previousEmployeeCode"`
	FirstName            string `json:"firstName" binding:"required"`
	LastName             string `json:"lastName"`
	DateOfBirth          string `json:"dateOfBirth" binding:"required"`
	Email                string `json:"email"`
	ContactNumber        int64  `json:"contactNumber"`
	TotalExperience      *int32 `json:"totalExperience"`
	GenderID             *int32 `json:"genderId"`
	QualificationID      *int32 `json:"qualificationId"`
	JoiningAsID          *int32 `json:"joiningAsId"`
	StreamID             *int32 `json:"streamId"`
	SubjectID            *int32 `json:"subjectId"`
	LevelID              *int32 `json:"levelId"`
	GradeID              *int32 `json:"gradeId"`
	StructureID          *int32 `json:"structureId"`
}

func (r candidateRequest) toInput() (skilltest.CandidateInput, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return skilltest.CandidateInput{}, err
	}
	in := skilltest.CandidateInput{
		AadhaarNo:            r.AadhaarNo,
		PreviousEmployeeCode: r.PreviousEmployeeCode,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		Email:                r.Email,
		ContactNumber:        r.ContactNumber,
		TotalExperience:      r.TotalExperience,
		GenderID:             r.GenderID,
		QualificationID:      r.QualificationID,
		JoiningAsID:          r.JoiningAsID,
		StreamID:             r.StreamID,
		SubjectID:            r.SubjectID,
		LevelID:              r.LevelID,
		GradeID:              r.GradeID,
		StructureID:          r.StructureID,
	}
	if dob != nil {
		in.DateOfBirth = *dob
	}
	return in, nil
}

type candidateResponse struct {
	ID            int32  `json:"id"`
	TempPayrollID string `json:"tempPayrollId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

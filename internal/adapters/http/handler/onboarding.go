package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/onboarding"
)

// OnboardingHandler はオンボーディング API のハンドラーです。
type OnboardingHandler struct {
	usecase onboarding.UseCase
	logger  *zap.Logger
}

// NewOnboardingHandler は OnboardingHandler を生成します。
func NewOnboardingHandler(usecase onboarding.UseCase, logger *zap.Logger) *OnboardingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingHandler{usecase: usecase, logger: logger}
}

// GenerateTempPayrollID は POST /employees/basic-info を処理します。
func (h *OnboardingHandler) GenerateTempPayrollID(c *gin.Context) {
	var req basicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.usecase.GenerateTempPayrollID(c.Request.Context(), req.HREmployeeID, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		TempPayrollID: result.TempPayrollID,
		EmployeeID:    result.EmployeeID,
		Message:       result.Message,
	})
}

// SaveQualifications は PUT /employees/:tempPayrollId/qualifications を処理します。
func (h *OnboardingHandler) SaveQualifications(c *gin.Context) {
	var req qualificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.usecase.SaveQualifications(c.Request.Context(), c.Param("tempPayrollId"), req.toInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "qualifications saved"})
}

// SaveDocuments は PUT /employees/:tempPayrollId/documents を処理します。
func (h *OnboardingHandler) SaveDocuments(c *gin.Context) {
	var req documentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.usecase.SaveDocuments(c.Request.Context(), c.Param("tempPayrollId"), req.toInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "documents saved"})
}

// SaveCategoryInfo は PUT /employees/:tempPayrollId/category を処理します。
func (h *OnboardingHandler) SaveCategoryInfo(c *gin.Context) {
	var req categoryInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.usecase.SaveCategoryInfo(c.Request.Context(), c.Param("tempPayrollId"), req.toInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category info saved"})
}

// SaveBankInfo は PUT /employees/:tempPayrollId/bank を処理します。
func (h *OnboardingHandler) SaveBankInfo(c *gin.Context) {
	var req bankInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.usecase.SaveBankInfo(c.Request.Context(), c.Param("tempPayrollId"), req.toInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bank info saved"})
}

// SaveAgreementInfo は PUT /employees/:tempPayrollId/agreement を処理します。
func (h *OnboardingHandler) SaveAgreementInfo(c *gin.Context) {
	var req agreementInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.usecase.SaveAgreementInfo(c.Request.Context(), c.Param("tempPayrollId"), req.toInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "agreement info saved"})
}

// SearchEmployees は GET /employees/search を処理します。
func (h *OnboardingHandler) SearchEmployees(c *gin.Context) {
	in := onboarding.SearchInput{PayrollID: c.Query("payrollId")}

	if v := c.Query("cityId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "cityId must be an integer"})
			return
		}
		cityID := int32(parsed)
		in.CityID = &cityID
	}
	if v := c.Query("employeeTypeId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "employeeTypeId must be an integer"})
			return
		}
		employeeTypeID := int32(parsed)
		in.EmployeeTypeID = &employeeTypeID
	}

	results, err := h.usecase.SearchEmployees(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]searchResultResponse, 0, len(results))
	for _, result := range results {
		response = append(response, searchResultResponse{
			EmployeeID:     result.EmployeeID,
			FirstName:      result.FirstName,
			LastName:       result.LastName,
			DepartmentName: result.DepartmentName,
			TempPayrollID:  result.TempPayrollID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"employees": response})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/aadhaar"
	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	"github.com/ogurasousui/employee-onboarding/internal/core/onboarding"
	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
)

type errorResponse struct {
	Error string `json:"error"`
}

type duplicateResponse struct {
	Error         string `json:"error"`
	Store         string `json:"store"`
	Field         string `json:"field"`
	TempPayrollID string `json:"tempPayrollId"`
}

// validationErrors は 400 に対応させる入力検証エラーの一覧です。
var validationErrors = []error{
	aadhaar.ErrInvalidLength,
	aadhaar.ErrChecksum,
	onboarding.ErrAadhaarRequired,
	onboarding.ErrPhoneRequired,
	onboarding.ErrCampusNotAssigned,
	onboarding.ErrCampusInactive,
	onboarding.ErrCampusCodeUnset,
	onboarding.ErrUnknownTempPayrollID,
	onboarding.ErrDocTypeRequired,
	onboarding.ErrAccountNumberRequired,
	onboarding.ErrAccountNumberNotNumber,
	onboarding.ErrIFSCCodeRequired,
	onboarding.ErrHolderNameRequired,
	onboarding.ErrBankBranchConflict,
	onboarding.ErrPeriodsPerWeekRequired,
	onboarding.ErrChequesRequired,
	onboarding.ErrChequeNumberRequired,
	onboarding.ErrChequeBankNameRequired,
	onboarding.ErrChequeIFSCCodeRequired,
	skilltest.ErrInvalidRecruiterID,
	skilltest.ErrDateOfBirthRequired,
	skilltest.ErrCampusNotAssigned,
}

// notFoundErrors は 404 に対応させるエラーの一覧です。
var notFoundErrors = []error{
	employee.ErrEmployeeNotFound,
	employee.ErrDetailsNotFound,
	employee.ErrStatusNotFound,
	skilltest.ErrNotFound,
	skilltest.ErrRecruiterNotFound,
	masterdata.ErrNotFound,
	onboarding.ErrHREmployeeNotFound,
}

// conflictErrors は 409 に対応させるエラーの一覧です。
var conflictErrors = []error{
	employee.ErrEmailAlreadyExists,
	employee.ErrTempPayrollIDAlreadyExists,
	skilltest.ErrAadhaarAlreadyExists,
	skilltest.ErrContactAlreadyExists,
}

// respondError はドメインエラーを HTTP ステータスへ変換して応答します。
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if dup, ok := onboarding.AsDuplicate(err); ok {
		c.JSON(http.StatusConflict, duplicateResponse{
			Error:         dup.Error(),
			Store:         dup.Store,
			Field:         dup.Field,
			TempPayrollID: dup.TempPayrollID,
		})
		return
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
	}

	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
	}

	logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

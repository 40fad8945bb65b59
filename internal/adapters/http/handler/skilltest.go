package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
)

// SkillTestHandler は技能試験 API のハンドラーです。
type SkillTestHandler struct {
	usecase skilltest.UseCase
	logger  *zap.Logger
}

// NewSkillTestHandler は SkillTestHandler を生成します。
func NewSkillTestHandler(usecase skilltest.UseCase, logger *zap.Logger) *SkillTestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillTestHandler{usecase: usecase, logger: logger}
}

// RegisterCandidate は POST /skill-tests を処理します。
func (h *SkillTestHandler) RegisterCandidate(c *gin.Context) {
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := h.usecase.RegisterCandidate(c.Request.Context(), req.RecruiterEmployeeID, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, candidateResponse{
		ID:            created.ID,
		TempPayrollID: created.TempPayrollID,
		FirstName:     created.FirstName,
		LastName:      created.LastName,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/adapters/http/middleware"
)

// NewRouter は全ルートを配線した gin エンジンを生成します。
func NewRouter(onboardingHandler *OnboardingHandler, skillTestHandler *SkillTestHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		employees := v1.Group("/employees")
		{
			employees.POST("/basic-info", onboardingHandler.GenerateTempPayrollID)
			employees.GET("/search", onboardingHandler.SearchEmployees)
			employees.PUT("/:tempPayrollId/qualifications", onboardingHandler.SaveQualifications)
			employees.PUT("/:tempPayrollId/documents", onboardingHandler.SaveDocuments)
			employees.PUT("/:tempPayrollId/category", onboardingHandler.SaveCategoryInfo)
			employees.PUT("/:tempPayrollId/bank", onboardingHandler.SaveBankInfo)
			employees.PUT("/:tempPayrollId/agreement", onboardingHandler.SaveAgreementInfo)
		}

		v1.POST("/skill-tests", skillTestHandler.RegisterCandidate)
	}

	return router
}

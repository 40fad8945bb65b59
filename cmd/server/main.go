package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ogurasousui/employee-onboarding/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-onboarding/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-onboarding/internal/core/onboarding"
	"github.com/ogurasousui/employee-onboarding/internal/core/payrollid"
	"github.com/ogurasousui/employee-onboarding/internal/core/skilltest"
	"github.com/ogurasousui/employee-onboarding/internal/platform/config"
	pg "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-onboarding/internal/platform/logging"
	"github.com/ogurasousui/employee-onboarding/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	detailsRepo := postgres.NewDetailsRepository(dbPool)
	pfDetailsRepo := postgres.NewPFDetailsRepository(dbPool)
	qualificationRepo := postgres.NewQualificationRepository(dbPool)
	documentRepo := postgres.NewDocumentRepository(dbPool)
	bankAccountRepo := postgres.NewBankAccountRepository(dbPool)
	chequeRepo := postgres.NewChequeRepository(dbPool)
	subjectRepo := postgres.NewSubjectAssignmentRepository(dbPool)
	statusRepo := postgres.NewStatusRepository(dbPool)
	skillTestRepo := postgres.NewSkillTestRepository(dbPool)
	masterRepo := postgres.NewMasterDataRepository(dbPool)

	generator := payrollid.NewGenerator(employeeRepo, skillTestRepo, payrollid.NewCache(), logger)
	if err := warmPayrollCache(ctx, generator, masterRepo); err != nil {
		logger.Fatal("failed to warm payroll id cache", zap.Error(err))
	}

	onboardingSvc := onboarding.NewService(onboarding.Repositories{
		Employees:      employeeRepo,
		Details:        detailsRepo,
		PFDetails:      pfDetailsRepo,
		Qualifications: qualificationRepo,
		Documents:      documentRepo,
		BankAccounts:   bankAccountRepo,
		Cheques:        chequeRepo,
		Subjects:       subjectRepo,
		Statuses:       statusRepo,
		SkillTests:     skillTestRepo,
		Master:         masterRepo,
	}, generator, nil, txManager, logger)

	skillTestSvc := skilltest.NewService(skillTestRepo, employeeRepo, masterRepo, generator, nil, txManager, logger)

	router := handler.NewRouter(
		handler.NewOnboardingHandler(onboardingSvc, logger),
		handler.NewSkillTestHandler(skillTestSvc, logger),
		logger,
	)

	httpServer := server.New(cfg.Server, router, logger)

	if err := httpServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func warmPayrollCache(ctx context.Context, generator *payrollid.Generator, master *postgres.MasterDataRepository) error {
	campuses, err := master.ListCampusesWithCode(ctx)
	if err != nil {
		return err
	}
	codes := make([]int32, 0, len(campuses))
	for _, campus := range campuses {
		codes = append(codes, campus.Code)
	}
	return generator.WarmCache(ctx, codes)
}

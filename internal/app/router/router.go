package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mutual/loanlifecycle/internal/app/handlers"
	"mutual/loanlifecycle/internal/app/middleware"
	"mutual/loanlifecycle/internal/pkg/config"
	mongodb "mutual/loanlifecycle/internal/pkg/db/mongo"
	"mutual/loanlifecycle/internal/pkg/downstreams"
	"mutual/loanlifecycle/internal/pkg/store/impl/collection_methods"
	"mutual/loanlifecycle/internal/pkg/store/impl/decisions"
	"mutual/loanlifecycle/internal/pkg/store/impl/installments"
	"mutual/loanlifecycle/internal/pkg/store/impl/loan_types"
	"mutual/loanlifecycle/internal/pkg/store/impl/loans"
	"mutual/loanlifecycle/internal/pkg/store/repository"
	"mutual/loanlifecycle/internal/service/collectionmethod"
	"mutual/loanlifecycle/internal/service/interfaces"
	"mutual/loanlifecycle/internal/service/lifecycle"
	"mutual/loanlifecycle/internal/service/loantype"
	"mutual/loanlifecycle/internal/service/overdue"
	"mutual/loanlifecycle/internal/service/schedule"
)

// SetupRouter wires the store, services and handlers into the gin engine.
func SetupRouter(
	cfg *config.AppConfig,
	mongoClient *mongodb.MongoClient,
	redisClient *redis.Client,
	reportUploader interfaces.ReportUploaderInterface,
) *gin.Engine {
	server := gin.Default()
	server.Use(middleware.AttachTraceID())

	loansRepo := loans.NewLoansRepository(mongoClient)
	installmentsRepo := installments.NewInstallmentsRepository(mongoClient)
	loanTypesRepo := loantypes.NewLoanTypesRepository(mongoClient)
	methodsRepo := collectionmethods.NewCollectionMethodsRepository(mongoClient)
	decisionsRepo := decisions.NewDecisionsRepository(mongoClient)
	redisAdapter := repository.NewRedisStoreAdapter(redisClient, cfg.Redis.CatalogTTL)

	notifier := downstreams.NewNotificationClient(cfg.Downstreams.NotificationURL, cfg.Downstreams.RequestTimeout)
	associates := downstreams.NewAssociatesClient(cfg.Downstreams.AssociatesURL, cfg.Downstreams.RequestTimeout)

	lifecycleService := lifecycle.NewLifecycleService(
		loansRepo,
		loanTypesRepo,
		installmentsRepo,
		decisionsRepo,
		associates,
		notifier,
		time.Now,
	)
	workflow := lifecycle.NewApprovalWorkflow(lifecycleService)
	scheduleService := schedule.NewScheduleService(loansRepo, installmentsRepo, methodsRepo, time.Now)
	overdueService := overdue.NewOverdueService(loansRepo, installmentsRepo, time.Now)
	reportService := overdue.NewReportService(overdueService, reportUploader)
	loanTypeService := loantype.NewLoanTypeService(loanTypesRepo, redisAdapter, time.Now)
	methodService := collectionmethod.NewCollectionMethodService(methodsRepo, redisAdapter, time.Now)

	loanHandler := handlers.NewLoanHandler(lifecycleService, workflow)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	overdueHandler := handlers.NewOverdueHandler(overdueService, reportService)
	loanTypeHandler := handlers.NewLoanTypeHandler(loanTypeService)
	methodHandler := handlers.NewCollectionMethodHandler(methodService)
	healthCheckHandler := handlers.NewHealthCheckHandler()

	server.GET("/loans", loanHandler.ListLoans)
	server.POST("/loans", loanHandler.RequestLoan)
	server.GET("/loans/:id", loanHandler.GetLoan)
	server.PATCH("/loans/:id/status", loanHandler.UpdateStatus)
	server.GET("/loans/:id/decisions", loanHandler.ListDecisions)
	server.GET("/loans/:id/installments", scheduleHandler.GetSchedule)

	server.POST("/installments/:id/collection", scheduleHandler.RecordCollection)

	server.GET("/overdue", overdueHandler.ListOverdue)
	server.GET("/overdue/summary", overdueHandler.Summary)
	server.POST("/overdue/report", overdueHandler.ExportReport)

	server.GET("/loan-types", loanTypeHandler.List)
	server.POST("/loan-types", loanTypeHandler.Create)
	server.GET("/loan-types/:id", loanTypeHandler.GetByID)
	server.PATCH("/loan-types/:id/deactivate", loanTypeHandler.Deactivate)

	server.GET("/collection-methods", methodHandler.List)
	server.POST("/collection-methods/batch", methodHandler.RegisterBatch)
	server.PATCH("/collection-methods/:id", methodHandler.Update)
	server.PATCH("/collection-methods/:id/toggle", methodHandler.Toggle)

	server.GET("/IntegrationServices/LoanLifecycle/HealthCheck", healthCheckHandler.HealthCheck)

	return server
}

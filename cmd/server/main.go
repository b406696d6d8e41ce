package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	budgetapp "github.com/projops/backend/internal/application/budget"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	procurementapp "github.com/projops/backend/internal/application/procurement"
	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/delivery"
	"github.com/projops/backend/internal/infrastructure/auth"
	"github.com/projops/backend/internal/infrastructure/config"
	"github.com/projops/backend/internal/infrastructure/logger"
	"github.com/projops/backend/internal/infrastructure/persistence"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/projops/backend/internal/interfaces/http/handler"
	"github.com/projops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories and version stores
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	consumptionRepo := persistence.NewGormConsumptionRepository(db.DB)
	srnRepo := persistence.NewGormSRNRepository(db.DB)
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	keySequence := persistence.NewGormKeySequence(db.DB)

	budgetLineStore := persistence.NewGormVersionStore[*budget.BudgetLine](db.DB, "line_key")
	projectStore := persistence.NewGormVersionStore[*delivery.Project](db.DB, "chain_key")
	teamStore := persistence.NewGormVersionStore[*delivery.ProjectTeam](db.DB, "chain_key")
	taskStore := persistence.NewGormVersionStore[*delivery.Task](db.DB, "business_key")
	userStoryStore := persistence.NewGormVersionStore[*delivery.UserStory](db.DB, "business_key")
	solutionStoryStore := persistence.NewGormVersionStore[*delivery.SolutionStory](db.DB, "business_key")
	sprintStore := persistence.NewGormVersionStore[*delivery.Sprint](db.DB, "chain_key")
	releaseStore := persistence.NewGormVersionStore[*delivery.Release](db.DB, "chain_key")
	ridaStore := persistence.NewGormVersionStore[*delivery.Rida](db.DB, "chain_key")

	// Application services
	poService := procurementapp.NewPurchaseOrderService(poRepo)
	consumptionService := procurementapp.NewConsumptionService(poRepo, consumptionRepo)
	srnService := procurementapp.NewSRNService(poRepo, srnRepo)
	balanceService := procurementapp.NewBalanceService(poRepo, consumptionRepo, srnRepo)

	projector := budgetapp.NewBudgetLineAmountProjector(budgetLineStore, allocationRepo)
	budgetLineService := budgetapp.NewBudgetLineService(budgetLineStore)
	allocationService := budgetapp.NewAllocationService(budgetLineStore, allocationRepo, projector)

	projectService := deliveryapp.NewRecordService[*delivery.Project]("project", projectStore)
	teamService := deliveryapp.NewRecordService[*delivery.ProjectTeam]("project_team", teamStore)
	taskService := deliveryapp.NewRecordService[*delivery.Task]("task", taskStore)
	userStoryService := deliveryapp.NewRecordService[*delivery.UserStory]("user_story", userStoryStore)
	solutionStoryService := deliveryapp.NewRecordService[*delivery.SolutionStory]("solution_story", solutionStoryStore)
	sprintService := deliveryapp.NewRecordService[*delivery.Sprint]("sprint", sprintStore)
	releaseService := deliveryapp.NewRecordService[*delivery.Release]("release", releaseStore)
	ridaService := deliveryapp.NewRecordService[*delivery.Rida]("rida", ridaStore)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.New(router.Config{
		Logger:       log,
		JWTService:   jwtService,
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
	})
	r.Register(handler.NewPurchaseOrderHandler(poService, balanceService))
	r.Register(handler.NewConsumptionHandler(consumptionService))
	r.Register(handler.NewSRNHandler(srnService))
	r.Register(handler.NewBudgetHandler(budgetLineService, allocationService))
	r.Register(handler.NewProjectHandler(projectService, teamService))
	r.Register(handler.NewTaskHandler(taskService, keySequence))
	r.Register(handler.NewStoryHandler(userStoryService, solutionStoryService, keySequence))
	r.Register(handler.NewSprintHandler(sprintService, releaseService))
	r.Register(handler.NewRidaHandler(ridaService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

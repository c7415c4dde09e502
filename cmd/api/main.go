package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/farmvet/herdsafe/internal/api/handlers"
	"github.com/farmvet/herdsafe/internal/api/router"
	"github.com/farmvet/herdsafe/internal/config"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/validator"
	"github.com/farmvet/herdsafe/internal/repository/postgres"
	"github.com/farmvet/herdsafe/internal/services"
	"github.com/farmvet/herdsafe/internal/withdrawal"
	"github.com/farmvet/herdsafe/internal/worker"
)

// @title HerdSafe API
// @version 1.0
// @description Livestock antimicrobial usage compliance and withdrawal tracking engine
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	drugRepo := postgres.NewDrugRepository(db)
	animalRepo := postgres.NewAnimalRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	alertRepo := postgres.NewAlertRepository(db)

	// Services
	product := withdrawal.Product(cfg.Compliance.ProductContext)
	treatmentSvc := services.NewTreatmentService(treatmentRepo, drugRepo, product, log)
	alertSvc := services.NewAlertService(alertRepo, log)
	complianceSvc := services.NewComplianceService(
		treatmentRepo, drugRepo, animalRepo, alertRepo, alertSvc, cfg.Compliance, log,
	)

	// Background compliance scanner
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Compliance.ScannerEnabled {
		scanner := worker.NewComplianceScanner(complianceSvc, alertSvc, cfg.Compliance.RunSchedule, log)
		go scanner.Start(ctx)
	}

	// HTTP layer
	val := validator.New()
	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(db),
		Drug:       handlers.NewDrugHandler(drugRepo, log, val),
		Animal:     handlers.NewAnimalHandler(animalRepo, log, val),
		Treatment:  handlers.NewTreatmentHandler(treatmentSvc, log, val),
		Alert:      handlers.NewAlertHandler(alertSvc, log, val),
		Compliance: handlers.NewComplianceHandler(complianceSvc, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}

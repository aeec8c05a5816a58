package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"attendancetracker/config"
	_ "attendancetracker/docs"
	"attendancetracker/internal/adapters/email"
	httpdelivery "attendancetracker/internal/delivery/http"
	"attendancetracker/internal/delivery/http/controllers"
	"attendancetracker/internal/delivery/http/middleware"
	"attendancetracker/internal/repository/postgres"
	"attendancetracker/internal/services"
)

// @title Attendance Tracker API
// @version 1.0
// @description Employee attendance check-in/check-out with asynchronous email notifications.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	directory := postgres.NewEmployeeDirectory(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	queue := postgres.NewNotificationQueueRepository(db)

	attendanceService := services.NewAttendanceService(directory, attendanceRepo, queue, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipTLS,
		},
	}, logger)
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	sender := email.NewNotificationSender(mailer, email.NewTemplateRenderer())

	worker := services.NewNotificationWorker(queue, sender, logger, services.WorkerConfig{
		PollInterval: cfg.Worker.PollInterval,
		Lease:        cfg.Worker.Lease,
		MaxAttempts:  cfg.Worker.MaxAttempts,
		BackoffBase:  cfg.Worker.BackoffBase,
		BackoffMax:   cfg.Worker.BackoffMax,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	logger.Info("notification workers started", "count", cfg.Worker.Concurrency)

	attendanceController := controllers.NewAttendanceController(logger, attendanceService)
	mux := httpdelivery.NewRouter(attendanceController, db)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "err", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	serveErr := server.ListenAndServe()
	if serveErr != nil && serveErr != http.ErrServerClosed {
		logger.Error("server failed", "err", serveErr)
	}

	// Drain workers before exiting, on the failure path too, so a leased
	// event is not abandoned mid-send without its nack/dead-letter
	// bookkeeping.
	stop()
	wg.Wait()
	logger.Info("shutdown complete")
	if serveErr != nil && serveErr != http.ErrServerClosed {
		os.Exit(1)
	}
}

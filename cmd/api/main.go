package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/randevuhq/randevu-api/internal/config"
	"github.com/randevuhq/randevu-api/internal/handler"
	appointmentHandler "github.com/randevuhq/randevu-api/internal/handler/appointment"
	authHandler "github.com/randevuhq/randevu-api/internal/handler/auth"
	businessHandler "github.com/randevuhq/randevu-api/internal/handler/business"
	cashHandler "github.com/randevuhq/randevu-api/internal/handler/cash"
	customerHandler "github.com/randevuhq/randevu-api/internal/handler/customer"
	staffHandler "github.com/randevuhq/randevu-api/internal/handler/staff"
	"github.com/randevuhq/randevu-api/internal/middleware"
	"github.com/randevuhq/randevu-api/internal/repository/postgres"
	"github.com/randevuhq/randevu-api/internal/router"
	appointmentService "github.com/randevuhq/randevu-api/internal/service/appointment"
	authService "github.com/randevuhq/randevu-api/internal/service/auth"
	businessService "github.com/randevuhq/randevu-api/internal/service/business"
	cashService "github.com/randevuhq/randevu-api/internal/service/cash"
	customerService "github.com/randevuhq/randevu-api/internal/service/customer"
	eventService "github.com/randevuhq/randevu-api/internal/service/event"
	"github.com/randevuhq/randevu-api/internal/service/notification"
	staffService "github.com/randevuhq/randevu-api/internal/service/staff"
	"github.com/randevuhq/randevu-api/internal/worker"
	"github.com/randevuhq/randevu-api/pkg/auth"
	"github.com/randevuhq/randevu-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := router.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("randevu", "api")

	// Repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	cashRepo := postgres.NewCashRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	authSvc := authService.NewService(userRepo, jwtSvc)
	eventSvc := eventService.NewService(outboxRepo)

	var notifier notification.Service = notification.Noop{}
	if cfg.SMTP.Enabled {
		notifier = notification.NewService(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, customerRepo)
	}

	appointmentSvc := appointmentService.NewService(appointmentRepo, eventSvc, notifier)
	appointmentSvc.SetWorkingHours(
		cfg.Calendar.StartHour,
		cfg.Calendar.EndHour,
		time.Duration(cfg.Calendar.GranularityMinutes)*time.Minute,
	)
	businessSvc := businessService.NewService(businessRepo)
	staffSvc := staffService.NewService(staffRepo)
	customerSvc := customerService.NewService(customerRepo)
	cashSvc := cashService.NewService(cashRepo)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, appMetrics)
	businessH := businessHandler.NewHandler(businessSvc)
	staffH := staffHandler.NewHandler(staffSvc)
	customerH := customerHandler.NewHandler(customerSvc)
	cashH := cashHandler.NewHandler(cashSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		h,
		router.Config{
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RequestTimeout:   cfg.Server.RequestTimeout,
			CORSConfig:       middleware.DefaultCORSConfig(),
			MetricsPrefix:    "randevu_http",
		},
		appointmentH,
		businessH,
		staffH,
		customerH,
		cashH,
	)
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Processed events older than 30 days are pruned daily.
	cleanup := worker.NewOutboxCleanupWorker(outboxRepo, 30, 24*time.Hour)
	go cleanup.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

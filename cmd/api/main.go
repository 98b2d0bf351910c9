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

	"github.com/medportal/portal-api/internal/config"
	"github.com/medportal/portal-api/internal/email"
	appointmentHandler "github.com/medportal/portal-api/internal/handler/appointment"
	authHandler "github.com/medportal/portal-api/internal/handler/auth"
	complaintHandler "github.com/medportal/portal-api/internal/handler/complaint"
	doctorHandler "github.com/medportal/portal-api/internal/handler/doctor"
	healthHandler "github.com/medportal/portal-api/internal/handler/health"
	paymentHandler "github.com/medportal/portal-api/internal/handler/payment"
	prescriptionHandler "github.com/medportal/portal-api/internal/handler/prescription"
	transactionHandler "github.com/medportal/portal-api/internal/handler/transaction"
	userHandler "github.com/medportal/portal-api/internal/handler/user"
	"github.com/medportal/portal-api/internal/middleware"
	"github.com/medportal/portal-api/internal/repository/postgres"
	"github.com/medportal/portal-api/internal/router"
	appointmentService "github.com/medportal/portal-api/internal/service/appointment"
	authService "github.com/medportal/portal-api/internal/service/auth"
	complaintService "github.com/medportal/portal-api/internal/service/complaint"
	doctorService "github.com/medportal/portal-api/internal/service/doctor"
	eventService "github.com/medportal/portal-api/internal/service/event"
	paymentService "github.com/medportal/portal-api/internal/service/payment"
	prescriptionService "github.com/medportal/portal-api/internal/service/prescription"
	transactionService "github.com/medportal/portal-api/internal/service/transaction"
	userService "github.com/medportal/portal-api/internal/service/user"
	"github.com/medportal/portal-api/pkg/auth"
	"github.com/medportal/portal-api/pkg/logger"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	prescriptionRepo := postgres.NewPrescriptionRepository(base)
	paymentRepo := postgres.NewPaymentRepository(base)
	transactionRepo := postgres.NewTransactionRepository(base)
	complaintRepo := postgres.NewComplaintRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	// Shared building blocks
	tokenSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(security.DefaultCost)
	codes := verification.NewCodeGenerator()
	emailSvc := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	eventSvc := eventService.NewService(outboxRepo)

	// Services
	authSvc := authService.NewService(userRepo, tokenSvc, emailSvc, hasher, codes, eventSvc)
	userSvc := userService.NewService(userRepo, hasher, codes)
	doctorSvc := doctorService.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, eventSvc)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo)
	paymentSvc := paymentService.NewService(paymentRepo, eventSvc)
	transactionSvc := transactionService.NewService(transactionRepo)
	complaintSvc := complaintService.NewService(complaintRepo, eventSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.New(router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		User:         userHandler.NewHandler(userSvc),
		Doctor:       doctorHandler.NewHandler(doctorSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Prescription: prescriptionHandler.NewHandler(prescriptionSvc),
		Payment:      paymentHandler.NewHandler(paymentSvc),
		Transaction:  transactionHandler.NewHandler(transactionSvc),
		Complaint:    complaintHandler.NewHandler(complaintSvc),
		Health:       healthHandler.NewHandler(db),
	}, authMiddleware, router.Config{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           middleware.DefaultCORSConfig(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

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

	"github.com/meditrack/hms-api/internal/config"
	"github.com/meditrack/hms-api/internal/email"
	appointmentHandler "github.com/meditrack/hms-api/internal/handler/appointment"
	authHandler "github.com/meditrack/hms-api/internal/handler/auth"
	billingHandler "github.com/meditrack/hms-api/internal/handler/billing"
	doctorHandler "github.com/meditrack/hms-api/internal/handler/doctor"
	healthHandler "github.com/meditrack/hms-api/internal/handler/health"
	labtestHandler "github.com/meditrack/hms-api/internal/handler/labtest"
	patientHandler "github.com/meditrack/hms-api/internal/handler/patient"
	prescriptionHandler "github.com/meditrack/hms-api/internal/handler/prescription"
	roomHandler "github.com/meditrack/hms-api/internal/handler/room"
	treatmentHandler "github.com/meditrack/hms-api/internal/handler/treatment"
	"github.com/meditrack/hms-api/internal/middleware"
	"github.com/meditrack/hms-api/internal/repository"
	"github.com/meditrack/hms-api/internal/repository/postgres"
	redisrepo "github.com/meditrack/hms-api/internal/repository/redis"
	"github.com/meditrack/hms-api/internal/router"
	appointmentService "github.com/meditrack/hms-api/internal/service/appointment"
	authService "github.com/meditrack/hms-api/internal/service/auth"
	billingService "github.com/meditrack/hms-api/internal/service/billing"
	doctorService "github.com/meditrack/hms-api/internal/service/doctor"
	labtestService "github.com/meditrack/hms-api/internal/service/labtest"
	patientService "github.com/meditrack/hms-api/internal/service/patient"
	prescriptionService "github.com/meditrack/hms-api/internal/service/prescription"
	roomService "github.com/meditrack/hms-api/internal/service/room"
	statsService "github.com/meditrack/hms-api/internal/service/stats"
	treatmentService "github.com/meditrack/hms-api/internal/service/treatment"
	"github.com/meditrack/hms-api/pkg/auth"
	"github.com/meditrack/hms-api/pkg/logger"
	"github.com/meditrack/hms-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Token revocation needs Redis; without it logout degrades to token
	// expiry only.
	var tokenRepo repository.TokenRepository
	if cfg.Redis.URL != "" {
		tokenRepo, err = redisrepo.NewTokenRepository(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}

	txRunner := postgres.NewTxRunner(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	labTestRepo := postgres.NewLabTestRepository(db)
	billingRepo := postgres.NewBillingRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	appMetrics := metrics.NewMetrics("hms")
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	emailSvc := email.NewService(cfg.SMTP)

	billingSvc := billingService.NewService(billingRepo, appMetrics)
	patientSvc := patientService.NewService(patientRepo, doctorRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, emailSvc, appLogger)
	treatmentSvc := treatmentService.NewService(treatmentRepo, txRunner, billingSvc)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, medicationRepo, txRunner, billingSvc)
	labtestSvc := labtestService.NewService(labTestRepo, txRunner, billingSvc)
	roomSvc := roomService.NewService(roomRepo, patientRepo)
	authSvc := authService.NewService(cfg.Admin, doctorRepo, patientRepo, tokenRepo, jwtSvc)
	statsSvc := statsService.NewService(statsRepo)

	authMw := middleware.NewAuthMiddleware(jwtSvc, tokenRepo)

	handlers := router.Handlers{
		Health:       healthHandler.NewHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Patient:      patientHandler.NewHandler(patientSvc),
		Doctor:       doctorHandler.NewHandler(doctorSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Treatment:    treatmentHandler.NewHandler(treatmentSvc),
		Prescription: prescriptionHandler.NewHandler(prescriptionSvc),
		LabTest:      labtestHandler.NewHandler(labtestSvc),
		Billing:      billingHandler.NewHandler(billingSvc, statsSvc),
		Room:         roomHandler.NewHandler(roomSvc),
	}

	r := router.NewRouter(authMw, handlers, appMetrics, router.Config{
		RateLimit:      rate.Limit(100),
		RateBurst:      200,
		RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

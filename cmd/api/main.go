package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caresync/hms-api/internal/config"
	"github.com/caresync/hms-api/internal/email"
	"github.com/caresync/hms-api/internal/handler"
	"github.com/caresync/hms-api/internal/repository/postgres"
	"github.com/caresync/hms-api/internal/router"
	appointmentsvc "github.com/caresync/hms-api/internal/service/appointment"
	authsvc "github.com/caresync/hms-api/internal/service/auth"
	catalogsvc "github.com/caresync/hms-api/internal/service/catalog"
	consultationsvc "github.com/caresync/hms-api/internal/service/consultation"
	labtestsvc "github.com/caresync/hms-api/internal/service/labtest"
	notificationsvc "github.com/caresync/hms-api/internal/service/notification"
	outboxsvc "github.com/caresync/hms-api/internal/service/outbox"
	paymentsvc "github.com/caresync/hms-api/internal/service/payment"
	prescriptionsvc "github.com/caresync/hms-api/internal/service/prescription"
	profilesvc "github.com/caresync/hms-api/internal/service/profile"
	staffsvc "github.com/caresync/hms-api/internal/service/staff"
	vitalsvc "github.com/caresync/hms-api/internal/service/vital"
	pkgauth "github.com/caresync/hms-api/pkg/auth"
	"github.com/caresync/hms-api/pkg/event"
	"github.com/caresync/hms-api/pkg/logger"
	"github.com/caresync/hms-api/pkg/metrics"
	"github.com/caresync/hms-api/pkg/security"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerologLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories.
	profileRepo := postgres.NewProfileRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	insuranceRepo := postgres.NewInsuranceRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	deptRepo := postgres.NewDepartmentRepository(db)
	hospDeptRepo := postgres.NewHospitalDepartmentRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	templateRepo := postgres.NewLabTestTemplateRepository(db)
	pharmacyRepo := postgres.NewPharmacyRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	nurseRepo := postgres.NewNurseRepository(db)
	apptRepo := postgres.NewAppointmentRepository(db)
	consultRepo := postgres.NewConsultationRepository(db)
	labRepo := postgres.NewLabTestRepository(db)
	prescRepo := postgres.NewPrescriptionRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	notifRepo := postgres.NewNotificationRepository(db)
	vitalRepo := postgres.NewVitalRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Domain events: notifications in-request, outbox for the worker.
	dispatcher := event.NewDispatcher(log)

	notifSvc := notificationsvc.NewService(notifRepo)
	for _, typ := range []event.Type{
		event.TypeAppointmentCreated,
		event.TypeAppointmentDecided,
		event.TypeLabResultRecorded,
		event.TypePrescriptionDispatched,
	} {
		dispatcher.Subscribe(typ, event.HandlerFunc(notifSvc.HandleEvent))
	}
	outboxsvc.NewSink(outboxRepo).SubscribeAll(dispatcher)

	// Services.
	tokenSvc := pkgauth.NewJWTService(cfg.JWT.Secret, pkgauth.TokenExpiry)
	hasher := security.NewBcryptHasher(0)

	var emailSvc email.Service
	if cfg.SMTP.Configured() {
		emailSvc = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		emailSvc = email.NewNoopService(log)
	}

	authSvc := authsvc.NewService(profileRepo, tokenRepo, tokenSvc, hasher, emailSvc, log)
	profSvc := profilesvc.NewService(profileRepo, insuranceRepo)
	catSvc := catalogsvc.NewService(insuranceRepo, hospitalRepo, deptRepo, hospDeptRepo, medicationRepo, templateRepo, pharmacyRepo, profileRepo)
	stfSvc := staffsvc.NewService(doctorRepo, nurseRepo, profileRepo, hospitalRepo, deptRepo)
	apptSvc := appointmentsvc.NewService(apptRepo, doctorRepo, profileRepo, dispatcher)
	consSvc := consultationsvc.NewService(consultRepo, apptRepo, doctorRepo)
	labSvc := labtestsvc.NewService(labRepo, consultRepo, apptRepo, templateRepo, hospitalRepo, doctorRepo, dispatcher)
	presSvc := prescriptionsvc.NewService(prescRepo, consultRepo, doctorRepo, medicationRepo, pharmacyRepo, dispatcher)
	paySvc := paymentsvc.NewService(paymentRepo, profileRepo, insuranceRepo, labRepo)
	vitSvc := vitalsvc.NewService(vitalRepo, nurseRepo, profileRepo)

	registry := prometheus.NewRegistry()
	m := metrics.New("hms_api", registry)

	engine := router.New(cfg, log, m, registry, authSvc, router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, log),
		Profile:      handler.NewProfileHandler(profSvc, log),
		Catalog:      handler.NewCatalogHandler(catSvc, log),
		Staff:        handler.NewStaffHandler(stfSvc, log),
		Appointment:  handler.NewAppointmentHandler(apptSvc, log),
		Consultation: handler.NewConsultationHandler(consSvc, log),
		LabTest:      handler.NewLabTestHandler(labSvc, log),
		Prescription: handler.NewPrescriptionHandler(presSvc, log),
		Payment:      handler.NewPaymentHandler(paySvc, log),
		Notification: handler.NewNotificationHandler(notifSvc, log),
		Vital:        handler.NewVitalHandler(vitSvc, log),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
}

func zerologLevel(s string) (logger.Level, error) {
	switch s {
	case "debug":
		return logger.DebugLevel, nil
	case "", "info":
		return logger.InfoLevel, nil
	case "warn":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	default:
		return logger.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

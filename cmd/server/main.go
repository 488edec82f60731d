package main

import (
	"fmt"
	"log"
	"net/http"

	"bilagsky/internal/config"
	"bilagsky/internal/docscan"
	"bilagsky/internal/email/noop"
	"bilagsky/internal/email/ses"
	"bilagsky/internal/fiken"
	"bilagsky/internal/handler"
	"bilagsky/internal/port"
	"bilagsky/internal/repository/postgres"
	"bilagsky/internal/router"
	"bilagsky/internal/service"
	s3storage "bilagsky/internal/storage/s3"
	"bilagsky/internal/vision"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	scanRepo := postgres.NewScanRepo(db)

	// Initialize storage and external clients
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	visionClient := vision.NewClient(cfg.Vision)
	fikenClient := fiken.NewClient(cfg.Fiken)

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	classifier := docscan.NewClassifier(cfg.Docscan.InvoiceMarkers, cfg.Docscan.ReceiptMarkers)
	extractor := docscan.NewExtractor(classifier, nil)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	passwordResetSvc := service.NewPasswordResetService(userRepo, emailSender, cfg.JWT)
	userSvc := service.NewUserService(userRepo, fikenClient)
	scanSvc := service.NewScanService(scanRepo, s3Client, visionClient, extractor, &cfg.S3)
	bookkeepingSvc := service.NewBookkeepingService(userRepo, scanRepo, s3Client, fikenClient)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, passwordResetSvc)
	userH := handler.NewUserHandler(userSvc)
	scanH := handler.NewScanHandler(scanSvc)
	bookkeepingH := handler.NewBookkeepingHandler(bookkeepingSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, authSvc, authH, userH, scanH, bookkeepingH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

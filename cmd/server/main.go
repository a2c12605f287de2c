package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/email/noop"
	"github.com/SuperShot3/order-form/internal/email/ses"
	"github.com/SuperShot3/order-form/internal/handler"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/parse/openai"
	"github.com/SuperShot3/order-form/internal/port"
	"github.com/SuperShot3/order-form/internal/repository/excel"
	"github.com/SuperShot3/order-form/internal/repository/postgres"
	"github.com/SuperShot3/order-form/internal/router"
	"github.com/SuperShot3/order-form/internal/service"
	s3storage "github.com/SuperShot3/order-form/internal/storage/s3"
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

	// Pick the order-ledger backend
	orderRepo, settingsRepo, db, err := buildRepositories(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// Object storage (optional report archive)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Email sender
	var emailer port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailer, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailer = noop.NewNoopSender()
	}

	// Initialize services
	parser := parse.NewParser(openai.NewExtractor(&cfg.Parser))
	authSvc := service.NewAuthService(cfg.Auth)
	parseSvc := service.NewParseService(parser, settingsRepo)
	orderSvc := service.NewOrderService(orderRepo, cfg.Parser.OrderLinkBase)
	settingsSvc := service.NewSettingsService(settingsRepo)
	reportSvc := service.NewReportService(orderRepo, storage, emailer, cfg.S3.Bucket, cfg.Storage.ExportsDir)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	parseH := handler.NewParseHandler(parseSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	reportH := handler.NewReportHandler(reportSvc, cfg.Email.DriverAddress)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, parseH, orderH, settingsH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildRepositories selects the ledger backend: "postgres", "excel", or
// "auto" (postgres when a DB host is configured).
func buildRepositories(cfg *config.Config) (port.OrderRepository, port.SettingsRepository, *sqlx.DB, error) {
	usePostgres := false
	switch cfg.Storage.Backend {
	case "postgres":
		usePostgres = true
	case "excel":
	case "auto", "":
		usePostgres = cfg.DB.Configured()
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if usePostgres {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Printf("Using postgres order ledger at %s", cfg.DB.Host)
		return postgres.NewOrderRepo(db), postgres.NewSettingsRepo(db), db, nil
	}

	orderRepo, err := excel.NewOrderRepo(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open order workbook: %w", err)
	}
	settingsRepo, err := excel.NewSettingsRepo(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	log.Printf("Using workbook order ledger in %s", cfg.Storage.DataDir)
	return orderRepo, settingsRepo, nil, nil
}

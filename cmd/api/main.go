package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/carteira-backend/internal/handlers/http"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/config"
	"github.com/rafabene/carteira-backend/internal/infrastructure/i18n"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
	"github.com/rafabene/carteira-backend/internal/infrastructure/notification"
	"github.com/rafabene/carteira-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/carteira-backend/internal/infrastructure/reports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/session"
	"github.com/rafabene/carteira-backend/internal/infrastructure/waha"
	"github.com/rafabene/carteira-backend/internal/services"
)

//	@title			Carteira API
//	@version		1.0
//	@description	API de controle financeiro pessoal
//	@BasePath		/api
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						apikey

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting carteira backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Migrações antes de abrir o pool do GORM
	if err := postgres.RunMigrations(cfg.Database.MigrationURL()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Env, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	var i18nService *i18n.Service
	if cfg.LocalesDir != "" {
		i18nService, err = i18n.NewService(cfg.LocalesDir, i18n.DefaultLanguage)
	} else {
		i18nService, err = i18n.NewEmbeddedService(i18n.DefaultLanguage)
	}
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)
	if err := dto.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	methodRepo := postgres.NewPaymentMethodRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	tokenRepo := postgres.NewAPITokenRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	cancellationRepo := postgres.NewCancellationRepository(db)
	impersonationRepo := postgres.NewImpersonationRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	themeRepo := postgres.NewThemeRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Notificações em tempo real
	hub := notification.NewHub(notification.HubConfig{
		PingInterval:   cfg.Notification.PingInterval,
		PongTimeout:    cfg.Notification.PongTimeout,
		AllowedOrigins: middleware.SplitOrigins(cfg.CORS.AllowedOrigins),
	}, logger)
	go hub.Run(ctx)

	var notifier ports.Notifier = hub
	var bridge *notification.AMQPBridge
	if cfg.Notification.AMQPURL != "" {
		bridge, err = notification.NewAMQPBridge(cfg.Notification.AMQPURL, cfg.Notification.AMQPExchange, hub, logger)
		if err != nil {
			logger.Error("failed to connect to amqp", "error", err)
			log.Fatal(err)
		}
		go func() {
			if err := bridge.Consume(ctx); err != nil {
				logger.Error("amqp consumer stopped", "error", err)
			}
		}()
		notifier = bridge
	}

	var forwarder ports.Forwarder
	if cfg.Waha.TargetURL != "" {
		forwarder = waha.NewHTTPForwarder(cfg.Waha.TargetURL, 0)
	}

	// Inicializar services
	auditService := services.NewAuditService(auditRepo, logger)
	ledgerService := services.NewLedgerService(ledgerRepo, nil, logger)
	walletService := services.NewWalletService(walletRepo, ledgerService, logger)
	tokenService := services.NewAPITokenService(tokenRepo, nil, logger)
	authService := services.NewAuthService(userRepo, walletRepo, tokenService, uow, logger)
	userService := services.NewUserService(userRepo, cancellationRepo, uow, nil, logger)
	categoryService := services.NewCategoryService(categoryRepo, transactionRepo, auditService, logger)
	methodService := services.NewPaymentMethodService(methodRepo, transactionRepo, auditService, logger)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, walletService, methodService, notifier, nil, logger)
	reminderService := services.NewReminderService(reminderRepo, logger)
	reportService := services.NewReportService(
		userRepo, walletService, transactionRepo, categoryRepo, methodRepo, ledgerService,
		reports.NewCSVRenderer(), reports.NewDiskStore(cfg.PublicDir), nil, logger,
	)
	impersonationService := services.NewImpersonationService(userRepo, impersonationRepo, auditService, uow, nil, logger)
	adminService := services.NewAdminService(userRepo, authService, auditService, impersonationService, uow, notifier, logger)
	seedService := services.NewSeedService(categoryRepo, methodRepo, uow, logger)
	themeService := services.NewThemeService(themeRepo, auditService, uow, logger)
	webhookService := services.NewWebhookService(cfg.Waha.WebhookHash, userRepo, notifier, forwarder, logger)

	// Bootstrap do super admin e dos globais
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := authService.EnsureSuperAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Error("failed to bootstrap super admin", "error", err)
			log.Fatal(err)
		}
	}
	if _, err := seedService.Seed(ctx); err != nil {
		logger.Error("failed to seed defaults", "error", err)
		log.Fatal(err)
	}

	// Autenticação
	codec := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	authn := middleware.NewAuthenticator(codec, userService, tokenService, impersonationService, cfg.Session.SecureCookie, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		I18n:           middleware.NewI18nMiddleware(i18nService),
		Authenticator:  authn,
		Auth:           httphandlers.NewAuthHandler(authService, authn, logger),
		Users:          httphandlers.NewUserHandler(userService, logger),
		Wallet:         httphandlers.NewWalletHandler(walletService, logger),
		Categories:     httphandlers.NewCategoryHandler(categoryService, logger),
		PaymentMethods: httphandlers.NewPaymentMethodHandler(methodService, logger),
		Transactions:   httphandlers.NewTransactionHandler(transactionService, logger),
		Reminders:      httphandlers.NewReminderHandler(reminderService, logger),
		Tokens:         httphandlers.NewTokenHandler(tokenService, logger),
		Reports:        httphandlers.NewReportHandler(reportService, cfg.Server.BaseURL, logger),
		Admin:          httphandlers.NewAdminHandler(adminService, impersonationService, auditService, seedService, authn, logger),
		Themes:         httphandlers.NewThemeHandler(themeService, logger),
		Webhook:        httphandlers.NewWebhookHandler(webhookService, logger),
		WS:             httphandlers.NewWSHandler(hub, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	hub.Close()
	if bridge != nil {
		if err := bridge.Close(); err != nil {
			logger.Error("failed to close amqp bridge", "error", err)
		}
	}

	logger.Info("server exited")
}

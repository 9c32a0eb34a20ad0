package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/aiextractor"
	logger_adapter "github.com/swami086/gentle-space-realty-sub007/internal/adapters/logger"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/portalurl"
	postgres_adapter "github.com/swami086/gentle-space-realty-sub007/internal/adapters/postgres"
	rabbitmq_adapter "github.com/swami086/gentle-space-realty-sub007/internal/adapters/rabbitmq"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/rest"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/scrapeapi"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/staging"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/storageapi"
	"github.com/swami086/gentle-space-realty-sub007/internal/adapters/systemclock"
	"github.com/swami086/gentle-space-realty-sub007/internal/configs"
	"github.com/swami086/gentle-space-realty-sub007/internal/constants"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/usecase"
	fluentlogger "github.com/swami086/gentle-space-realty-sub007/pkg/fluent_logger"
	"github.com/swami086/gentle-space-realty-sub007/pkg/postgres"
	"github.com/swami086/gentle-space-realty-sub007/pkg/rabbitmq/rabbitmq_common"
	"github.com/swami086/gentle-space-realty-sub007/pkg/rabbitmq/rabbitmq_producer"
)

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	fluentClient  *fluent.Fluent
	apiServer     *rest.Server
	logger        port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		connManager.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeName,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create event producer", err, port.Fields{"url": appConfig.RabbitMQ.URL})
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	appLogger.Info("RabbitMQ Event Producer initialized.", nil)

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	scrapeAdapter, err := scrapeapi.NewScrapeAPIAdapter(appConfig.ScrapeAPI.URL, appConfig.ScrapeAPI.APIKey)
	if err != nil {
		appLogger.Error("Failed to create scrape API adapter", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize scrape API adapter: %w", err)
	}

	aiAdapter, err := aiextractor.NewClient(appConfig.AIExtractor.URL, appConfig.AIExtractor.APIKey)
	if err != nil {
		appLogger.Error("Failed to create AI extractor client", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize AI extractor client: %w", err)
	}

	storageClient, err := storageapi.NewClient(appConfig.StorageAPI.URL)
	if err != nil {
		appLogger.Error("Failed to create storage API client", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize storage API client: %w", err)
	}

	urlBuilder, err := portalurl.NewBuilder(constants.PortalBaseURL)
	if err != nil {
		appLogger.Error("Failed to create portal URL builder", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize portal URL builder: %w", err)
	}

	presetRepo, err := postgres_adapter.NewPostgresPresetRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create preset repository", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize preset repository: %w", err)
	}

	reportEnqueueAdapter, err := rabbitmq_adapter.NewReportEnqueueAdapter(
		eventProducer,
		constants.RoutingKeyExtractionReports,
		constants.RoutingKeyImportReports,
	)
	if err != nil {
		appLogger.Error("Failed to create report enqueue adapter", err, nil)
		eventProducer.Close()
		dbPool.Close()
		connManager.Close()
		return nil, fmt.Errorf("failed to initialize report enqueue adapter: %w", err)
	}

	clock := systemclock.New()
	stagingRepo := staging.NewRepository(clock)
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES (ядро бизнес-логики) ---
	awaitCrawlUseCase := usecase.NewAwaitCrawlUseCase(scrapeAdapter, clock, usecase.CrawlPollingConfig{
		Interval:    appConfig.Pipeline.PollInterval,
		MaxAttempts: appConfig.Pipeline.PollMaxAttempts,
	})
	runExtractionUseCase := usecase.NewRunExtractionUseCase(
		urlBuilder,
		scrapeAdapter,
		awaitCrawlUseCase,
		aiAdapter,
		stagingRepo,
		reportEnqueueAdapter,
		clock,
		usecase.RunExtractionConfig{CrawlLimit: appConfig.Pipeline.CrawlLimit},
	)
	approveImportUseCase := usecase.NewApproveImportUseCase(stagingRepo, storageClient, reportEnqueueAdapter)
	managePresetsUseCase := usecase.NewManagePresetsUseCase(presetRepo, urlBuilder, clock)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЙ REST-АДАПТЕР ---
	extractionHandlers := rest.NewExtractionHandler(runExtractionUseCase, approveImportUseCase, stagingRepo)
	presetHandlers := rest.NewPresetHandler(managePresetsUseCase)
	searchURLHandlers := rest.NewSearchURLHandler(urlBuilder)

	apiServer := rest.NewServer(appConfig.HTTPPort, extractionHandlers, presetHandlers, searchURLHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// 7. Собираем приложение
	application := &App{
		config:        appConfig,
		dbPool:        dbPool,
		connManager:   connManager,
		eventProducer: eventProducer,
		fluentClient:  fluentClient,
		apiServer:     apiServer,
		logger:        appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}

		if a.connManager != nil {
			a.connManager.Close()
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTPPort})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}

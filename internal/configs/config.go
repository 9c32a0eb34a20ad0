package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ScrapeAPIConfig хранит конфигурацию внешнего scrape-сервиса
type ScrapeAPIConfig struct {
	URL    string
	APIKey string
}

// AIExtractorConfig хранит конфигурацию AI-сервиса извлечения
type AIExtractorConfig struct {
	URL    string
	APIKey string
}

// StorageAPIConfig хранит конфигурацию сервиса-хранилища объектов
type StorageAPIConfig struct {
	URL string
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level string // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию INFO
}

// PipelineConfig хранит настройки прогона извлечения
type PipelineConfig struct {
	PollInterval    time.Duration
	PollMaxAttempts int
	CrawlLimit      int
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	HTTPPort     string
	ScrapeAPI    ScrapeAPIConfig
	AIExtractor  AIExtractorConfig
	StorageAPI   StorageAPIConfig
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	Pipeline     PipelineConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {

	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "extractor-service")
	cfg.HTTPPort = getEnvAsString("HTTP_PORT", "8084")

	// Читаем конфигурацию scrape-сервиса
	cfg.ScrapeAPI.URL = os.Getenv("SCRAPE_API_URL")
	if cfg.ScrapeAPI.URL == "" {
		return nil, fmt.Errorf("SCRAPE_API_URL environment variable is required")
	}
	cfg.ScrapeAPI.APIKey = os.Getenv("SCRAPE_API_KEY")
	if cfg.ScrapeAPI.APIKey == "" {
		return nil, fmt.Errorf("SCRAPE_API_KEY environment variable is required")
	}

	// Читаем конфигурацию AI-сервиса
	cfg.AIExtractor.URL = os.Getenv("AI_API_URL")
	if cfg.AIExtractor.URL == "" {
		return nil, fmt.Errorf("AI_API_URL environment variable is required")
	}
	cfg.AIExtractor.APIKey = os.Getenv("AI_API_KEY")
	if cfg.AIExtractor.APIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY environment variable is required")
	}

	cfg.StorageAPI.URL = os.Getenv("STORAGE_API_URL")
	if cfg.StorageAPI.URL == "" {
		return nil, fmt.Errorf("STORAGE_API_URL environment variable is required")
	}

	// Читаем DATABASE URL
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Читаем конфигурацию для RabbitMQ
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	cfg.Pipeline.PollInterval = time.Duration(getEnvAsInt("POLL_INTERVAL_MS", 5000)) * time.Millisecond
	cfg.Pipeline.PollMaxAttempts = getEnvAsInt("POLL_MAX_ATTEMPTS", 60)
	cfg.Pipeline.CrawlLimit = getEnvAsInt("CRAWL_LIMIT", 10)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Logging
	LogLevel   string
	AppDataDir string

	// HTTP Client
	HTTPClientConfig HTTPClientConfig

	// Retry
	RetryConfig RetryConfig

	NameHits  NameHitsConfig
	Discovery DiscoveryConfig
	Review    ReviewConfig
	Harvest   HarvestConfig

	// Опциональный архив результатов в PostgreSQL
	DatabaseURL string

	// Опциональное уведомление в Telegram
	BotToken     string
	NotifyChatID int64
}

// HTTPClientConfig представляет конфигурацию HTTP клиента
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	RequestTimeout        time.Duration
	DisableKeepAlives     bool
	UserAgent             string
}

// RetryConfig представляет конфигурацию retry механизма
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// NameHitsConfig настройки счетчика упоминаний имен
type NameHitsConfig struct {
	NamesURL string
	// SearchURL содержит плейсхолдер {name}
	SearchURL string
	TopN      int
}

// DiscoveryConfig настройки поиска URL через браузер
type DiscoveryConfig struct {
	Workers       int
	Stagger       time.Duration
	SearchURL     string
	ProfilePrefix string
	PageStride    int
	Browser       BrowserConfig
}

// BrowserConfig настройки браузерной сессии
type BrowserConfig struct {
	Engine   string
	Headless bool
	Timeout  time.Duration
}

// ReviewConfig настройки извлечения отзывов
type ReviewConfig struct {
	Pause time.Duration
}

// HarvestConfig настройки входного и выходных файлов
type HarvestConfig struct {
	InputPath string
	OutputDir string
	Offset    int
	Limit     int
	Separator rune
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	config := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AppDataDir: getEnv("APP_DATA_DIR", "./data"),
		HTTPClientConfig: HTTPClientConfig{
			MaxIdleConns:          getEnvInt("HTTP_MAX_IDLE_CONNS", 100),
			MaxIdleConnsPerHost:   getEnvInt("HTTP_MAX_IDLE_CONNS_PER_HOST", 10),
			IdleConnTimeout:       getEnvDuration("HTTP_IDLE_CONN_TIMEOUT", 90*time.Second),
			TLSHandshakeTimeout:   getEnvDuration("HTTP_TLS_HANDSHAKE_TIMEOUT", 10*time.Second),
			ResponseHeaderTimeout: getEnvDuration("HTTP_RESPONSE_HEADER_TIMEOUT", 30*time.Second),
			RequestTimeout:        getEnvDuration("HTTP_REQUEST_TIMEOUT", 60*time.Second),
			DisableKeepAlives:     getEnvBool("HTTP_DISABLE_KEEP_ALIVES", false),
			UserAgent:             getEnv("HTTP_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		},
		RetryConfig: RetryConfig{
			MaxRetries:        getEnvInt("RETRY_MAX_RETRIES", 3),
			InitialDelay:      getEnvDuration("RETRY_INITIAL_DELAY", 1*time.Second),
			MaxDelay:          getEnvDuration("RETRY_MAX_DELAY", 30*time.Second),
			BackoffMultiplier: getEnvFloat("RETRY_BACKOFF_MULTIPLIER", 2.0),
		},
		NameHits: NameHitsConfig{
			NamesURL:  getEnv("NAMES_URL", "http://www.fabpedigree.com/james/mathmen.htm"),
			SearchURL: getEnv("HITS_SEARCH_URL", "https://www.torontopubliclibrary.ca/search.jsp?Ntt={name}"),
			TopN:      getEnvInt("HITS_TOP_N", 5),
		},
		Discovery: DiscoveryConfig{
			Workers:       getEnvInt("DISCOVERY_WORKERS", 2),
			Stagger:       getEnvDuration("DISCOVERY_STAGGER", 1*time.Second),
			SearchURL:     getEnv("DISCOVERY_SEARCH_URL", "https://www.beeradvocate.com/search/"),
			ProfilePrefix: getEnv("DISCOVERY_PROFILE_PREFIX", "https://www.beeradvocate.com/beer/profile"),
			PageStride:    getEnvInt("DISCOVERY_PAGE_STRIDE", 25),
			Browser: BrowserConfig{
				Engine:   getEnv("BROWSER_ENGINE", "firefox"),
				Headless: getEnvBool("BROWSER_HEADLESS", true),
				Timeout:  getEnvDuration("BROWSER_TIMEOUT", 5*time.Second),
			},
		},
		Review: ReviewConfig{
			Pause: getEnvDuration("REVIEW_PAUSE", 1*time.Second),
		},
		Harvest: HarvestConfig{
			InputPath: getEnv("INPUT_PATH", "beer_classification.csv"),
			OutputDir: getEnv("OUTPUT_DIR", "."),
			Offset:    getEnvInt("INPUT_OFFSET", 0),
			Limit:     getEnvInt("INPUT_LIMIT", 200),
			Separator: getEnvRune("CSV_SEPARATOR", ';'),
		},
		DatabaseURL:  getEnv("DB_DSN", ""),
		BotToken:     getEnv("BOT_TOKEN", ""),
		NotifyChatID: getEnvInt64("NOTIFY_CHAT_ID", 0),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.NameHits.NamesURL == "" {
		return fmt.Errorf("NAMES_URL is required")
	}

	if !strings.Contains(c.NameHits.SearchURL, "{name}") {
		return fmt.Errorf("HITS_SEARCH_URL must contain {name} placeholder")
	}

	if c.NameHits.TopN <= 0 {
		return fmt.Errorf("HITS_TOP_N must be positive, got %d", c.NameHits.TopN)
	}

	if c.Discovery.Workers <= 0 {
		return fmt.Errorf("DISCOVERY_WORKERS must be positive, got %d", c.Discovery.Workers)
	}

	if c.Discovery.PageStride <= 0 {
		return fmt.Errorf("DISCOVERY_PAGE_STRIDE must be positive, got %d", c.Discovery.PageStride)
	}

	switch c.Discovery.Browser.Engine {
	case "firefox", "chromium", "webkit":
	default:
		return fmt.Errorf("unsupported BROWSER_ENGINE: %s", c.Discovery.Browser.Engine)
	}

	if c.Harvest.Offset < 0 || c.Harvest.Limit < 0 {
		return fmt.Errorf("INPUT_OFFSET and INPUT_LIMIT must not be negative")
	}

	if c.RetryConfig.MaxRetries < 0 {
		return fmt.Errorf("RETRY_MAX_RETRIES must not be negative")
	}

	if c.BotToken != "" && c.NotifyChatID == 0 {
		return fmt.Errorf("NOTIFY_CHAT_ID is required when BOT_TOKEN is set")
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 получает переменную окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvRune получает первый символ переменной окружения
func getEnvRune(key string, defaultValue rune) rune {
	if value := os.Getenv(key); value != "" {
		for _, r := range value {
			return r
		}
	}
	return defaultValue
}

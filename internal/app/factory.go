// Package app собирает компоненты и выполняет команды приложения.
package app

import (
	"context"
	"fmt"
	"os"

	"scrapekit/internal/config"
	"scrapekit/internal/discovery"
	"scrapekit/internal/export"
	"scrapekit/internal/gateway/browser"
	"scrapekit/internal/gateway/scraper"
	"scrapekit/internal/infrastructure/metrics"
	"scrapekit/internal/namehits"
	"scrapekit/internal/notify"
	"scrapekit/internal/review"
	"scrapekit/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	httpClient *scraper.HTTPClient
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if logger == nil {
		panic("Logger cannot be nil")
	}
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}

	return &ComponentFactory{
		config:  config,
		logger:  logger,
		metrics: metrics.NewMetrics(logger),
	}
}

// Metrics возвращает общие счетчики запуска
func (f *ComponentFactory) Metrics() *metrics.Metrics {
	return f.metrics
}

// CreateOutputDirectory создает каталог для файлов результатов
func (f *ComponentFactory) CreateOutputDirectory() error {
	dir := f.config.Harvest.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		f.logger.Error("Failed to create output directory", zap.String("dir", dir), zap.Error(err))
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f.logger.Info("Output directory ready", zap.String("dir", dir))
	return nil
}

// CreateHTTPClient создает общий HTTP клиент
func (f *ComponentFactory) CreateHTTPClient() *scraper.HTTPClient {
	if f.httpClient != nil {
		return f.httpClient
	}

	c := f.config.HTTPClientConfig
	f.httpClient = scraper.NewHTTPClient(scraper.HTTPClientConfig{
		MaxIdleConns:          c.MaxIdleConns,
		MaxIdleConnsPerHost:   c.MaxIdleConnsPerHost,
		IdleConnTimeout:       c.IdleConnTimeout,
		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		RequestTimeout:        c.RequestTimeout,
		DisableKeepAlives:     c.DisableKeepAlives,
		UserAgent:             c.UserAgent,
	}, f.logger)
	return f.httpClient
}

// CreateNameHitsClient создает счетчик упоминаний имен
func (f *ComponentFactory) CreateNameHitsClient() *namehits.Client {
	return namehits.NewClient(f.CreateHTTPClient(), namehits.Config{
		NamesURL:  f.config.NameHits.NamesURL,
		SearchURL: f.config.NameHits.SearchURL,
		TopN:      f.config.NameHits.TopN,
		Retry:     f.retryConfig(),
	}, f.metrics, f.logger)
}

// CreateLauncher создает запуск браузерных сессий
func (f *ComponentFactory) CreateLauncher() *browser.Playwright {
	b := f.config.Discovery.Browser
	return browser.NewPlaywright(browser.Config{
		Engine:   b.Engine,
		Headless: b.Headless,
		Timeout:  b.Timeout,
	}, f.logger)
}

// DiscoveryConfig переводит конфигурацию в настройки поиска ссылок
func (f *ComponentFactory) DiscoveryConfig() discovery.Config {
	d := f.config.Discovery
	return discovery.Config{
		Workers:       d.Workers,
		Stagger:       d.Stagger,
		SearchURL:     d.SearchURL,
		ProfilePrefix: d.ProfilePrefix,
		PageStride:    d.PageStride,
	}
}

// CreateExtractor создает извлекатель отзывов поверх общего транспорта
func (f *ComponentFactory) CreateExtractor() *review.Extractor {
	collector := scraper.NewCollector(scraper.CollectorConfig{
		UserAgent:      f.config.HTTPClientConfig.UserAgent,
		RequestTimeout: f.config.HTTPClientConfig.RequestTimeout,
	}, f.CreateHTTPClient(), f.logger)

	return review.NewExtractor(collector, review.Config{Pause: f.config.Review.Pause}, f.metrics, f.logger)
}

// CreateExporter создает запись таблиц в каталог вывода
func (f *ComponentFactory) CreateExporter() *export.Writer {
	return export.NewWriter(f.config.Harvest.OutputDir, f.config.Harvest.Separator, f.logger)
}

// CreateArchive подключает архив в PostgreSQL. Без DB_DSN возвращается пустой архив.
func (f *ComponentFactory) CreateArchive(ctx context.Context) (Archive, func(), error) {
	if f.config.DatabaseURL == "" {
		f.logger.Debug("Database URL not provided, archive disabled")
		return NopArchive{}, func() {}, nil
	}

	db, err := storage.NewPostgres(ctx, f.config.DatabaseURL, storage.DefaultConnectOptions(), f.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := db.CreateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create archive schema: %w", err)
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			f.logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	f.logger.Info("Archive created successfully")
	return db.GetResultRepository(), closeFn, nil
}

// CreateNotifier создает уведомления в Telegram. Без BOT_TOKEN возвращается notify.Nop.
func (f *ComponentFactory) CreateNotifier() (notify.Notifier, error) {
	if f.config.BotToken == "" {
		return notify.Nop{}, nil
	}

	tg, err := notify.NewTelegram(f.config.BotToken, f.config.NotifyChatID, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram notifier: %w", err)
	}

	f.logger.Info("Telegram notifier created successfully")
	return tg, nil
}

// CreateRunner собирает Runner со всеми зависимостями
func (f *ComponentFactory) CreateRunner(ctx context.Context) (*Runner, func(), error) {
	if err := f.CreateOutputDirectory(); err != nil {
		return nil, nil, err
	}

	archive, closeArchive, err := f.CreateArchive(ctx)
	if err != nil {
		return nil, nil, err
	}

	notifier, err := f.CreateNotifier()
	if err != nil {
		closeArchive()
		return nil, nil, err
	}

	runner := &Runner{
		Hits:      f.CreateNameHitsClient(),
		TopN:      f.config.NameHits.TopN,
		Launcher:  f.CreateLauncher(),
		Discovery: f.DiscoveryConfig(),
		Reviews:   f.CreateExtractor(),
		Exporter:  f.CreateExporter(),
		Archive:   archive,
		Notifier:  notifier,
		Metrics:   f.metrics,
		Logger:    f.logger,
	}

	f.logger.Info("Runner created successfully")
	return runner, closeArchive, nil
}

func (f *ComponentFactory) retryConfig() scraper.RetryConfig {
	r := f.config.RetryConfig
	return scraper.RetryConfig{
		MaxRetries:        r.MaxRetries,
		InitialDelay:      r.InitialDelay,
		MaxDelay:          r.MaxDelay,
		BackoffMultiplier: r.BackoffMultiplier,
	}
}

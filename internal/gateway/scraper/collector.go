package scraper

import (
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollectorConfig настройки colly-коллектора
type CollectorConfig struct {
	UserAgent      string
	RequestTimeout time.Duration
	// Delay задержка colly между запросами к одному домену
	Delay time.Duration
}

// NewCollector создает синхронный colly-коллектор поверх транспорта HTTPClient
func NewCollector(config CollectorConfig, httpClient *HTTPClient, logger *zap.Logger) *colly.Collector {
	options := []colly.CollectorOption{
		colly.MaxDepth(1),
		colly.AllowURLRevisit(),
	}
	if config.UserAgent != "" {
		options = append(options, colly.UserAgent(config.UserAgent))
	}

	collector := colly.NewCollector(options...)

	if httpClient != nil {
		collector.WithTransport(httpClient.Transport())
	}
	if config.RequestTimeout > 0 {
		collector.SetRequestTimeout(config.RequestTimeout)
	}

	_ = collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       config.Delay,
	})

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Making request", zap.String("url", r.URL.String()))
	})

	collector.OnResponse(func(r *colly.Response) {
		logger.Debug("Received response",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode),
			zap.Int("size", len(r.Body)))
	})

	return collector
}

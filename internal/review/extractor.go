package review

import (
	"context"
	"time"

	"scrapekit/internal/infrastructure/metrics"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Config настройки извлечения отзывов
type Config struct {
	// Pause фиксированная пауза после каждого запроса
	Pause         time.Duration
	BlockSelector string
}

// Extractor последовательно загружает страницы и разбирает отзывы
type Extractor struct {
	collector *colly.Collector
	config    Config
	metrics   metrics.Interface
	logger    *zap.Logger

	// current отзывы текущей страницы, коллектор синхронный
	current []Review
}

// NewExtractor создает извлекатель поверх настроенного коллектора
func NewExtractor(collector *colly.Collector, config Config, m metrics.Interface, logger *zap.Logger) *Extractor {
	if config.BlockSelector == "" {
		config.BlockSelector = "div.user-comment"
	}
	if m == nil {
		m = metrics.Nop{}
	}

	e := &Extractor{
		collector: collector,
		config:    config,
		metrics:   m,
		logger:    logger,
	}

	collector.OnHTML(config.BlockSelector, func(el *colly.HTMLElement) {
		e.current = append(e.current, Parse(el.Request.URL.String(), el.DOM))
	})

	return e
}

// Scrape обходит адреса по порядку, после каждого запроса выдерживает паузу.
// Страница, которую не удалось загрузить, дает одну запись-заглушку.
// При отмене контекста возвращается уже собранное.
func (e *Extractor) Scrape(ctx context.Context, urls []string) ([]Review, error) {
	var reviews []Review

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return reviews, err
		}

		reviews = append(reviews, e.scrapeOne(url)...)
		e.logger.Info("Page completed", zap.Int("done", i+1), zap.Int("total", len(urls)))

		if err := e.pause(ctx); err != nil {
			return reviews, err
		}
	}

	e.metrics.AddRecords(len(reviews))
	e.logger.Info("Scraper complete", zap.Int("pages", len(urls)), zap.Int("reviews", len(reviews)))
	return reviews, nil
}

func (e *Extractor) scrapeOne(url string) []Review {
	e.current = nil

	start := time.Now()
	err := e.collector.Visit(url)
	e.collector.Wait()
	e.metrics.RecordRequest(time.Since(start))

	if err != nil {
		e.logger.Warn("Failed to fetch review page", zap.String("url", url), zap.Error(err))
		e.metrics.RecordError()
		e.metrics.RecordSentinel()
		return []Review{Placeholder(url)}
	}

	reviews := e.current
	e.current = nil

	// Отзывы привязываются к исходному адресу, а не к адресу после редиректа
	for i := range reviews {
		reviews[i].URL = url
	}
	return reviews
}

func (e *Extractor) pause(ctx context.Context) error {
	if e.config.Pause <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.config.Pause):
		return nil
	}
}

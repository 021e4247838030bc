// Package namehits считает число результатов поиска по каждому имени из списка.
package namehits

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"scrapekit/internal/gateway/scraper"
	"scrapekit/internal/infrastructure/metrics"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// NoResult значение-заглушка для имени без пригодного результата
const NoResult = -1

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Fetcher загружает и разбирает HTML-страницы
type Fetcher interface {
	GetHTML(ctx context.Context, url string) (*goquery.Document, error)
}

// Config настройки счетчика
type Config struct {
	NamesURL  string
	SearchURL string
	// HitSelector элемент со счетчиком результатов на странице поиска
	HitSelector string
	TopN        int
	Retry       scraper.RetryConfig
}

// Result имя и число найденных результатов (NoResult, если неизвестно)
type Result struct {
	Name string
	Hits int
}

// Client выполняет загрузку списка имен и запросы к поиску
type Client struct {
	fetcher Fetcher
	config  Config
	metrics metrics.Interface
	logger  *zap.Logger
}

// NewClient создает клиент счетчика
func NewClient(fetcher Fetcher, config Config, m metrics.Interface, logger *zap.Logger) *Client {
	if config.HitSelector == "" {
		config.HitSelector = "h3.item-count"
	}
	if config.TopN <= 0 {
		config.TopN = 5
	}
	if m == nil {
		m = metrics.Nop{}
	}

	return &Client{
		fetcher: fetcher,
		config:  config,
		metrics: m,
		logger:  logger,
	}
}

// FetchNames загружает страницу со списком и возвращает уникальные непустые имена.
// Порядок результата не определен.
func (c *Client) FetchNames(ctx context.Context) ([]string, error) {
	var doc *goquery.Document
	err := scraper.WithRetry(ctx, c.logger, c.config.Retry, func() error {
		var err error
		doc, err = c.get(ctx, c.config.NamesURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error retrieving contents at %s: %w", c.config.NamesURL, err)
	}

	set := make(map[string]struct{})
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		for _, line := range strings.Split(li.Text(), "\n") {
			name := norm.NFC.String(strings.TrimSpace(line))
			if name == "" {
				continue
			}
			set[name] = struct{}{}
		}
	})

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}

	c.logger.Info("Fetched names", zap.String("url", c.config.NamesURL), zap.Int("count", len(names)))
	return names, nil
}

// SearchURL подставляет имя в шаблон поискового запроса
func (c *Client) SearchURL(name string) string {
	return strings.ReplaceAll(c.config.SearchURL, "{name}", url.QueryEscape(name))
}

// FetchHitCount возвращает число результатов поиска по имени.
// ok == false означает, что значение получить не удалось; ошибка не возвращается.
func (c *Client) FetchHitCount(ctx context.Context, name string) (hits int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic while fetching hit count", zap.String("name", name), zap.Any("panic", r))
			hits, ok = 0, false
		}
	}()

	searchURL := c.SearchURL(name)
	c.logger.Info("GET request", zap.String("url", searchURL))

	doc, err := c.get(ctx, searchURL)
	if err != nil {
		c.logger.Warn("Error during request", zap.String("url", searchURL), zap.Error(err))
		return 0, false
	}

	hitElement := doc.Find(c.config.HitSelector).First()
	if hitElement.Length() == 0 {
		c.logger.Warn("No hit count found", zap.String("name", name))
		return 0, false
	}

	digits := nonDigits.ReplaceAllString(hitElement.Text(), "")
	count, err := strconv.Atoi(digits)
	if err != nil {
		c.logger.Warn("Couldn't parse hit count as int",
			zap.String("name", name),
			zap.String("text", digits),
			zap.Error(err))
		return 0, false
	}

	return count, true
}

// Run получает имена и счетчики по каждому имени. Ошибкой завершается только загрузка списка.
func (c *Client) Run(ctx context.Context) ([]Result, error) {
	c.logger.Info("Getting the list of names")
	names, err := c.FetchNames(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Getting stats for each name", zap.Int("names", len(names)))
	results := make([]Result, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		hits, ok := c.FetchHitCount(ctx, name)
		if !ok {
			c.metrics.RecordSentinel()
			hits = NoResult
		}
		results = append(results, Result{Name: name, Hits: hits})
	}
	c.metrics.AddRecords(len(results))

	return Rank(results), nil
}

func (c *Client) get(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()
	doc, err := c.fetcher.GetHTML(ctx, url)
	c.metrics.RecordRequest(time.Since(start))
	if err != nil {
		c.metrics.RecordError()
	}
	return doc, err
}

package discovery

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scrapekit/internal/gateway/browser"
	"scrapekit/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// Config настройки поиска ссылок
type Config struct {
	Workers int
	// Stagger пауза между запусками воркеров
	Stagger       time.Duration
	SearchURL     string
	ProfilePrefix string
	PageStride    int

	ResultSelector   string
	LastPageSelector string
	TitleSelector    string
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.PageStride < 1 {
		c.PageStride = 25
	}
	if c.ResultSelector == "" {
		c.ResultSelector = `xpath=//div[@id = "ba-content"]/div/div/span|//div[@id = "ba-content"]/div/div/a`
	}
	if c.LastPageSelector == "" {
		c.LastPageSelector = `xpath=//span/*[text() = "last"]`
	}
	if c.TitleSelector == "" {
		c.TitleSelector = "h1"
	}
	return c
}

// Worker обрабатывает свою часть запросов в собственной вкладке браузера
type Worker struct {
	index   int
	page    browser.Page
	config  Config
	metrics metrics.Interface
	logger  *zap.Logger
}

// NewWorker создает воркер поверх открытой страницы
func NewWorker(index int, page browser.Page, config Config, m metrics.Interface, logger *zap.Logger) *Worker {
	if m == nil {
		m = metrics.Nop{}
	}
	return &Worker{
		index:   index,
		page:    page,
		config:  config.withDefaults(),
		metrics: m,
		logger:  logger.With(zap.Int("worker", index)),
	}
}

// Run обрабатывает запросы по порядку и возвращает все найденные записи
func (w *Worker) Run(terms []string) []Record {
	start := time.Now()
	records := make([]Record, 0, len(terms))

	for _, term := range terms {
		records = append(records, w.safeDiscover(term)...)
	}

	w.metrics.AddRecords(len(records))
	w.logger.Info("Driver completed",
		zap.Int("urls", len(records)),
		zap.Int("elapsed_seconds", int(time.Since(start).Seconds())))

	return records
}

func (w *Worker) safeDiscover(term string) (records []Record) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Panic while discovering", zap.String("term", term), zap.Any("panic", r))
			w.metrics.RecordSentinel()
			records = []Record{NotFound(term)}
		}
	}()
	return w.Discover(term)
}

// Discover возвращает одну заглушку или одну и более записей для запроса
func (w *Worker) Discover(term string) []Record {
	if err := w.gotoWithRetry(SearchURL(w.config.SearchURL, term), term); err != nil {
		w.logger.Warn("Search failed", zap.String("term", term), zap.Error(err))
		return w.notFound(term)
	}

	if !w.onProfilePage() {
		target, ok := w.firstCandidate()
		if !ok {
			w.logger.Debug("No search results", zap.String("term", term))
			return w.notFound(term)
		}

		if err := w.gotoWithRetry(target, term); err != nil {
			w.logger.Warn("Failed to open top result", zap.String("term", term), zap.String("url", target), zap.Error(err))
			return w.notFound(term)
		}
	}

	return w.collectPages(term)
}

// SearchURL строит адрес поиска для запроса
func SearchURL(base, term string) string {
	return base + "?q=" + url.QueryEscape(term) + "&qt=beer"
}

// PageLinks строит ссылки на все страницы отзывов по ссылке на последнюю страницу.
// Смещение последней страницы берется после последнего "=".
func PageLinks(lastHref string, stride int) ([]string, error) {
	first := strings.Index(lastHref, "=")
	last := strings.LastIndex(lastHref, "=")
	if first < 0 {
		return nil, fmt.Errorf("no offset in %q", lastHref)
	}

	lastOffset, err := strconv.Atoi(lastHref[last+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid offset in %q: %w", lastHref, err)
	}

	prefix := lastHref[:first]
	links := make([]string, 0, lastOffset/stride+1)
	for offset := 0; offset < lastOffset; offset += stride {
		links = append(links, prefix+"=beer&sort=&start="+strconv.Itoa(offset))
	}
	return links, nil
}

func (w *Worker) gotoWithRetry(target, term string) error {
	err := w.page.Goto(target)
	if errors.Is(err, browser.ErrTimeout) {
		w.logger.Warn("Timeout raised, retrying once", zap.String("term", term), zap.String("url", target))
		w.metrics.RecordRetry()
		err = w.page.Goto(target)
	}
	if err != nil {
		w.metrics.RecordError()
	}
	return err
}

func (w *Worker) onProfilePage() bool {
	return strings.Contains(w.page.URL(), w.config.ProfilePrefix)
}

func (w *Worker) firstCandidate() (string, bool) {
	hrefs, err := w.page.Attributes(w.config.ResultSelector, "href")
	if err != nil {
		w.logger.Debug("Failed to read search results", zap.Error(err))
		return "", false
	}

	href := firstNonEmpty(hrefs)
	if href == "" {
		return "", false
	}
	return w.resolve(href), true
}

func (w *Worker) collectPages(term string) []Record {
	current := w.page.URL()

	found, err := w.page.Text(w.config.TitleSelector)
	if err != nil {
		w.logger.Debug("No title on page", zap.String("url", current), zap.Error(err))
		found = NotAvailable
	}
	found = strings.TrimSpace(found)

	single := []Record{{Search: term, Found: found, Link: current, Page: 0}}

	hrefs, err := w.page.Attributes(w.config.LastPageSelector, "href")
	if err != nil {
		return single
	}
	lastHref := firstNonEmpty(hrefs)
	if lastHref == "" {
		return single
	}

	links, err := PageLinks(w.resolve(lastHref), w.config.PageStride)
	if err != nil || len(links) == 0 {
		w.logger.Warn("Could not expand review pages", zap.String("term", term), zap.String("last", lastHref), zap.Error(err))
		return single
	}

	records := make([]Record, len(links))
	for i, link := range links {
		records[i] = Record{Search: term, Found: found, Link: link, Page: i}
	}
	return records
}

func (w *Worker) notFound(term string) []Record {
	w.metrics.RecordSentinel()
	return []Record{NotFound(term)}
}

// resolve делает ссылку абсолютной относительно текущей страницы
func (w *Worker) resolve(href string) string {
	base, err := url.Parse(w.page.URL())
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

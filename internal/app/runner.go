package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"scrapekit/internal/config"
	"scrapekit/internal/discovery"
	"scrapekit/internal/export"
	"scrapekit/internal/gateway/browser"
	"scrapekit/internal/infrastructure/metrics"
	"scrapekit/internal/input"
	"scrapekit/internal/namehits"
	"scrapekit/internal/notify"
	"scrapekit/internal/review"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Archive сохраняет результаты запусков
type Archive interface {
	SaveDiscovery(ctx context.Context, runID uuid.UUID, records []discovery.Record) error
	SaveReviews(ctx context.Context, runID uuid.UUID, rows []review.Row) error
	SaveHitCounts(ctx context.Context, runID uuid.UUID, results []namehits.Result) error
}

// NopArchive ничего не сохраняет
type NopArchive struct{}

func (NopArchive) SaveDiscovery(context.Context, uuid.UUID, []discovery.Record) error { return nil }
func (NopArchive) SaveReviews(context.Context, uuid.UUID, []review.Row) error         { return nil }
func (NopArchive) SaveHitCounts(context.Context, uuid.UUID, []namehits.Result) error  { return nil }

// HitCounter считает упоминания имен
type HitCounter interface {
	Run(ctx context.Context) ([]namehits.Result, error)
}

// ReviewScraper загружает отзывы по списку адресов
type ReviewScraper interface {
	Scrape(ctx context.Context, urls []string) ([]review.Review, error)
}

// Runner выполняет команды приложения
type Runner struct {
	Hits      HitCounter
	TopN      int
	Launcher  browser.Launcher
	Discovery discovery.Config
	Reviews   ReviewScraper
	Exporter  *export.Writer
	Archive   Archive
	Notifier  notify.Notifier
	Metrics   metrics.Interface
	Logger    *zap.Logger
}

// DiscoveryResult итог поиска ссылок
type DiscoveryResult struct {
	RunID   uuid.UUID
	Records []discovery.Record
	File    string
}

// ReviewResult итог сбора отзывов
type ReviewResult struct {
	RunID   uuid.UUID
	Reviews int
	Rows    []review.Row
	File    string
}

// HarvestResult итог полного сбора
type HarvestResult struct {
	Discovery DiscoveryResult
	Review    ReviewResult
}

// LoadTerms читает входной файл и выбирает окно запросов
func LoadTerms(cfg config.HarvestConfig) ([]string, error) {
	products, err := input.ReadProducts(cfg.InputPath, cfg.Separator)
	if err != nil {
		return nil, err
	}
	return input.Select(products, cfg.Offset, cfg.Limit), nil
}

// RunHits считает упоминания имен и печатает таблицу лидеров в w
func (r *Runner) RunHits(ctx context.Context, w io.Writer) ([]namehits.Result, error) {
	runID := uuid.New()
	logger := r.Logger.With(zap.String("run_id", runID.String()))
	start := time.Now()

	ranked, err := r.Hits.Run(ctx)
	if err != nil {
		return nil, err
	}

	namehits.Report(w, ranked, r.TopN)
	for _, res := range namehits.Top(ranked, r.TopN) {
		logger.Info(fmt.Sprintf("%s with %d results", res.Name, res.Hits))
	}
	logger.Info("Name hits completed",
		zap.Int("names", len(ranked)),
		zap.Int("missing", namehits.CountMissing(ranked)),
		zap.Duration("elapsed", time.Since(start)))

	if err := r.archive().SaveHitCounts(ctx, runID, ranked); err != nil {
		logger.Warn("Failed to archive hit counts", zap.Error(err))
	}
	r.notify(ctx, logger, notify.FormatHits(ranked, r.TopN))
	r.logStats(logger)

	return ranked, nil
}

// RunDiscover ищет ссылки на отзывы и сохраняет таблицу URL
func (r *Runner) RunDiscover(ctx context.Context, terms []string) (*DiscoveryResult, error) {
	runID := uuid.New()
	logger := r.Logger.With(zap.String("run_id", runID.String()))

	res, err := r.discover(ctx, runID, logger, terms)
	if err != nil {
		return nil, err
	}
	r.logStats(logger)
	return res, nil
}

// RunReviews собирает отзывы по ранее найденным ссылкам
func (r *Runner) RunReviews(ctx context.Context, records []discovery.Record) (*ReviewResult, error) {
	runID := uuid.New()
	logger := r.Logger.With(zap.String("run_id", runID.String()))

	res, err := r.reviews(ctx, runID, logger, records)
	r.logStats(logger)
	return res, err
}

// RunHarvest выполняет поиск ссылок, сбор отзывов и сохраняет обе таблицы
func (r *Runner) RunHarvest(ctx context.Context, terms []string) (*HarvestResult, error) {
	runID := uuid.New()
	logger := r.Logger.With(zap.String("run_id", runID.String()))
	start := time.Now()

	logger.Info("Harvest started", zap.Int("terms", len(terms)))

	found, err := r.discover(ctx, runID, logger, terms)
	if err != nil {
		return nil, err
	}

	collected, err := r.reviews(ctx, runID, logger, found.Records)
	if collected == nil {
		return &HarvestResult{Discovery: *found}, err
	}

	result := &HarvestResult{Discovery: *found, Review: *collected}

	summary := notify.HarvestSummary{
		RunID:     runID,
		Terms:     len(terms),
		Records:   len(found.Records),
		NotFound:  countNotFound(found.Records),
		Reviews:   collected.Reviews,
		Rows:      len(collected.Rows),
		Elapsed:   time.Since(start),
		Cancelled: errors.Is(err, context.Canceled),
	}
	for _, f := range []string{found.File, collected.File} {
		if f != "" {
			summary.Files = append(summary.Files, f)
		}
	}
	r.notify(context.WithoutCancel(ctx), logger, notify.FormatHarvest(summary))

	logger.Info("Harvest completed",
		zap.Int("records", summary.Records),
		zap.Int("rows", summary.Rows),
		zap.Duration("elapsed", summary.Elapsed))
	r.logStats(logger)

	return result, err
}

func (r *Runner) discover(ctx context.Context, runID uuid.UUID, logger *zap.Logger, terms []string) (*DiscoveryResult, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("no search terms")
	}

	coordinator := discovery.Start(r.Launcher, r.Discovery, terms, r.Metrics, logger)
	records, err := coordinator.Join()
	if err != nil {
		// Упавшие воркеры уже заменили свои запросы заглушками
		logger.Warn("Some drivers failed", zap.Error(err))
	}

	path, err := r.Exporter.WriteRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to save discovered urls: %w", err)
	}

	if err := r.archive().SaveDiscovery(context.WithoutCancel(ctx), runID, records); err != nil {
		logger.Warn("Failed to archive discovered urls", zap.Error(err))
	}

	return &DiscoveryResult{RunID: runID, Records: records, File: path}, nil
}

// reviews при отмене контекста сохраняет уже собранное и возвращает ошибку контекста
func (r *Runner) reviews(ctx context.Context, runID uuid.UUID, logger *zap.Logger, records []discovery.Record) (*ReviewResult, error) {
	urls := review.URLs(records)
	logger.Info("Collecting reviews", zap.Int("pages", len(urls)))

	reviews, scrapeErr := r.Reviews.Scrape(ctx, urls)
	rows := review.Join(reviews, records)
	result := &ReviewResult{RunID: runID, Reviews: len(reviews), Rows: rows}

	if len(rows) == 0 {
		logger.Warn("No reviews collected")
		return result, scrapeErr
	}

	path, err := r.Exporter.WriteRows(rows)
	if err != nil {
		return nil, errors.Join(scrapeErr, fmt.Errorf("failed to save reviews: %w", err))
	}
	result.File = path

	if err := r.archive().SaveReviews(context.WithoutCancel(ctx), runID, rows); err != nil {
		logger.Warn("Failed to archive reviews", zap.Error(err))
	}

	return result, scrapeErr
}

func (r *Runner) archive() Archive {
	if r.Archive == nil {
		return NopArchive{}
	}
	return r.Archive
}

func (r *Runner) notify(ctx context.Context, logger *zap.Logger, text string) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.Notify(ctx, text); err != nil {
		logger.Warn("Failed to send notification", zap.Error(err))
	}
}

func (r *Runner) logStats(logger *zap.Logger) {
	if r.Metrics == nil {
		return
	}
	logger.Info("Run statistics", zap.Any("stats", r.Metrics.GetStats()))
}

func countNotFound(records []discovery.Record) int {
	n := 0
	for _, rec := range records {
		if rec.IsNotFound() {
			n++
		}
	}
	return n
}

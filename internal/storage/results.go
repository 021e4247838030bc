package storage

import (
	"context"
	"fmt"

	"scrapekit/internal/discovery"
	"scrapekit/internal/namehits"
	"scrapekit/internal/review"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ResultRepository сохраняет результаты запусков
type ResultRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewResultRepository создает новый репозиторий результатов
func NewResultRepository(db *bun.DB, logger *zap.Logger) *ResultRepository {
	return &ResultRepository{
		db:     db,
		logger: logger,
	}
}

// SaveDiscovery сохраняет найденные ссылки запуска
func (r *ResultRepository) SaveDiscovery(ctx context.Context, runID uuid.UUID, records []discovery.Record) error {
	rows := FromRecords(runID, records)
	if len(rows) == 0 {
		return nil
	}

	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert discovered urls: %w", err)
	}

	r.logger.Info("Discovered urls archived", zap.String("run_id", runID.String()), zap.Int("count", len(rows)))
	return nil
}

// SaveReviews сохраняет итоговые строки отзывов запуска
func (r *ResultRepository) SaveReviews(ctx context.Context, runID uuid.UUID, reviewRows []review.Row) error {
	rows := FromRows(runID, reviewRows)
	if len(rows) == 0 {
		return nil
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for start := 0; start < len(rows); start += insertBatch {
			end := min(start+insertBatch, len(rows))
			batch := rows[start:end]
			if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert review rows: %w", err)
	}

	r.logger.Info("Review rows archived", zap.String("run_id", runID.String()), zap.Int("count", len(rows)))
	return nil
}

// SaveHitCounts сохраняет результаты подсчета упоминаний
func (r *ResultRepository) SaveHitCounts(ctx context.Context, runID uuid.UUID, results []namehits.Result) error {
	rows := FromResults(runID, results)
	if len(rows) == 0 {
		return nil
	}

	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert hit counts: %w", err)
	}

	r.logger.Info("Hit counts archived", zap.String("run_id", runID.String()), zap.Int("count", len(rows)))
	return nil
}

// insertBatch максимальное число строк в одном INSERT
const insertBatch = 500

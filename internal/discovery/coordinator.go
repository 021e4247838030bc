package discovery

import (
	"fmt"
	"time"

	"scrapekit/internal/gateway/browser"
	"scrapekit/internal/infrastructure/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Coordinator запускает фиксированное число воркеров и собирает их результаты
type Coordinator struct {
	group errgroup.Group
	// slots[i] пишет только воркер i, читается после Wait
	slots  [][]Record
	logger *zap.Logger
}

// Start делит запросы на config.Workers частей и сразу запускает воркеры.
// Остановить запущенные воркеры нельзя, результаты доступны только через Join.
func Start(launcher browser.Launcher, config Config, terms []string, m metrics.Interface, logger *zap.Logger) *Coordinator {
	config = config.withDefaults()
	if m == nil {
		m = metrics.Nop{}
	}

	parts := Partition(terms, config.Workers)
	c := &Coordinator{
		slots:  make([][]Record, len(parts)),
		logger: logger,
	}

	for i, part := range parts {
		c.group.Go(func() error {
			return c.runWorker(i, part, launcher, config, m)
		})

		logger.Info("Driver started", zap.Int("worker", i), zap.Int("terms", len(part)))

		if config.Stagger > 0 && i < len(parts)-1 {
			time.Sleep(config.Stagger)
		}
	}

	return c
}

// Join ждет завершения всех воркеров и склеивает результаты по индексу воркера
func (c *Coordinator) Join() ([]Record, error) {
	err := c.group.Wait()
	records := Concat(c.slots)

	c.logger.Info("All drivers completed", zap.Int("records", len(records)))
	return records, err
}

func (c *Coordinator) runWorker(index int, terms []string, launcher browser.Launcher, config Config, m metrics.Interface) error {
	if len(terms) == 0 {
		return nil
	}

	page, err := launcher.Launch()
	if err != nil {
		c.logger.Error("Failed to start browser", zap.Int("worker", index), zap.Error(err))

		// Каждый запрос все равно получает запись
		slot := make([]Record, len(terms))
		for i, term := range terms {
			m.RecordSentinel()
			slot[i] = NotFound(term)
		}
		c.slots[index] = slot
		return fmt.Errorf("worker %d: %w", index, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			c.logger.Warn("Failed to close browser", zap.Int("worker", index), zap.Error(err))
		}
	}()

	c.slots[index] = NewWorker(index, page, config, m, c.logger).Run(terms)
	return nil
}

// Package metrics реализует счетчики прогона скрейпера.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Metrics представляет метрики одного прогона
type Metrics struct {
	mu sync.RWMutex

	totalRequests   int64
	errorCount      int64
	retryCount      int64
	sentinelCount   int64
	recordCount     int64
	avgResponseTime time.Duration

	startedAt time.Time

	logger *zap.Logger
}

var _ Interface = (*Metrics)(nil)

// NewMetrics создает новую систему метрик
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		startedAt: time.Now(),
		logger:    logger,
	}
}

// RecordRequest записывает время ответа
func (m *Metrics) RecordRequest(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	// Простое скользящее среднее
	if m.avgResponseTime == 0 {
		m.avgResponseTime = duration
	} else {
		m.avgResponseTime = (m.avgResponseTime + duration) / 2
	}
}

// RecordError записывает ошибку
func (m *Metrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorCount++
}

// RecordSentinel записывает подстановку заглушки
func (m *Metrics) RecordSentinel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sentinelCount++
}

// RecordRetry записывает повтор
func (m *Metrics) RecordRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.retryCount++
}

// AddRecords увеличивает счетчик записей
func (m *Metrics) AddRecords(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordCount += int64(n)
}

// GetStats возвращает все метрики в виде map
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"performance": map[string]interface{}{
			"avg_response_time": m.formatDuration(m.avgResponseTime),
			"total_requests":    m.totalRequests,
			"error_count":       m.errorCount,
			"error_rate":        m.calculateErrorRate(),
			"retry_count":       m.retryCount,
		},
		"results": map[string]interface{}{
			"records":   m.recordCount,
			"sentinels": m.sentinelCount,
		},
		"system": map[string]interface{}{
			"elapsed": m.formatDuration(time.Since(m.startedAt)),
		},
	}
}

// LogStats выводит метрики в лог
func (m *Metrics) LogStats(msg string) {
	m.logger.Info(msg, zap.Any("stats", m.GetStats()))
}

// calculateErrorRate вычисляет процент ошибок
func (m *Metrics) calculateErrorRate() float64 {
	if m.totalRequests > 0 {
		return float64(m.errorCount) / float64(m.totalRequests) * 100
	}
	return 0
}

// formatDuration форматирует duration с двумя знаками после запятой
func (m *Metrics) formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Nop метрики, которые ничего не записывают
type Nop struct{}

func (Nop) RecordRequest(time.Duration)      {}
func (Nop) RecordError()                     {}
func (Nop) RecordSentinel()                  {}
func (Nop) RecordRetry()                     {}
func (Nop) AddRecords(int)                   {}
func (Nop) GetStats() map[string]interface{} { return map[string]interface{}{} }

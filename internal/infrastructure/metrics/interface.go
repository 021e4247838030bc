package metrics

import "time"

// Interface определяет интерфейс для системы метрик прогона
type Interface interface {
	// RecordRequest записывает выполненный запрос и его длительность
	RecordRequest(duration time.Duration)

	// RecordError записывает неудачный запрос
	RecordError()

	// RecordSentinel записывает подстановку значения-заглушки
	RecordSentinel()

	// RecordRetry записывает повтор после таймаута
	RecordRetry()

	// AddRecords увеличивает число полученных записей
	AddRecords(n int)

	// GetStats возвращает все метрики в виде map
	GetStats() map[string]interface{}
}

// Package scraper содержит HTTP-шлюз для парсинга HTML-страниц.
package scraper

import (
	"errors"
	"time"
)

var (
	// ErrUnexpectedStatus возвращается при ответе с кодом, отличным от 200
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrNotHTML возвращается, если Content-Type ответа не HTML
	ErrNotHTML = errors.New("response is not html")
)

// HTTPClientConfig конфигурация HTTP клиента
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	RequestTimeout        time.Duration
	DisableKeepAlives     bool
	UserAgent             string
}

// RetryConfig конфигурация для retry механизма
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

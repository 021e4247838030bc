package scraper

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPClient представляет HTTP клиент для скрапинга
type HTTPClient struct {
	client    *resty.Client
	transport *http.Transport
	logger    *zap.Logger
}

// NewHTTPClient создает новый HTTP клиент с пулом соединений
func NewHTTPClient(config HTTPClientConfig, logger *zap.Logger) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		DisableKeepAlives:     config.DisableKeepAlives,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.NewWithClient(&http.Client{
		Transport: transport,
		Timeout:   timeout,
	})
	if config.UserAgent != "" {
		client.SetHeader("User-Agent", config.UserAgent)
	}

	logger.Debug("HTTP client created",
		zap.Int("max_idle_conns", config.MaxIdleConns),
		zap.Int("max_idle_conns_per_host", config.MaxIdleConnsPerHost),
		zap.Duration("request_timeout", timeout))

	return &HTTPClient{
		client:    client,
		transport: transport,
		logger:    logger,
	}
}

// Transport возвращает транспорт клиента для colly
func (c *HTTPClient) Transport() http.RoundTripper {
	return c.transport
}

// GetHTML загружает страницу и разбирает ее. Ответ не 200 или не HTML считается ошибкой.
func (c *HTTPClient) GetHTML(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.logger.Debug("Received response",
		zap.String("url", url),
		zap.Int("status", res.StatusCode()),
		zap.Int("size", len(res.Body())))

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode())
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("%w: %q", ErrNotHTML, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

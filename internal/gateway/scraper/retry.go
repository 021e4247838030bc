package scraper

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// RetryableFunc функция, которая может быть повторена
type RetryableFunc func() error

// WithRetry выполняет функцию с экспоненциальным backoff между попытками
func WithRetry(ctx context.Context, logger *zap.Logger, config RetryConfig, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 0 {
				logger.Debug("Function succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}
		lastErr = err

		if attempt == config.MaxRetries {
			break
		}

		delay := backoff(config, attempt)

		logger.Warn("Retry attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", config.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", config.MaxRetries+1, lastErr)
}

// backoff вычисляет задержку перед следующей попыткой
func backoff(config RetryConfig, attempt int) time.Duration {
	multiplier := config.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}

	delay := time.Duration(float64(config.InitialDelay) * math.Pow(multiplier, float64(attempt)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	return delay
}

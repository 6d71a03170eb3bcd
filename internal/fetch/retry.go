package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vietddude/readflow/internal/faults"
	"github.com/vietddude/readflow/internal/metrics"
)

// Config defines retry behavior for one logical operation.
type Config struct {
	MaxRetries      int           // additional attempts after the first
	InitialDelay    time.Duration // delay before the first retry
	BackoffMultiple float64       // > 1
	AttemptTimeout  time.Duration // per-attempt deadline
}

// DefaultConfig provides sensible defaults.
var DefaultConfig = Config{
	MaxRetries:      3,
	InitialDelay:    1 * time.Second,
	BackoffMultiple: 2.0,
	AttemptTimeout:  10 * time.Second,
}

func (c Config) withDefaults() Config {
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultConfig.InitialDelay
	}
	if c.BackoffMultiple <= 1 {
		c.BackoffMultiple = DefaultConfig.BackoffMultiple
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = DefaultConfig.AttemptTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}

// Do executes op with per-attempt timeouts and exponential backoff.
//
// Each attempt runs under its own deadline; expiry cancels only that attempt
// and classifies as Timeout. Failures are classified via faults.Classify and
// non-retryable kinds propagate immediately. At most MaxRetries+1 attempts
// are made, with delays InitialDelay, InitialDelay*Multiple, ... between
// them. Cancelling ctx aborts the whole sequence.
func Do[T any](ctx context.Context, cfg Config, opContext string, op func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error

	maxAttempts := cfg.MaxRetries + 1
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.AttemptTimeout)
		result, err := op(attemptCtx)
		cancel()
		metrics.FetchLatency.WithLabelValues(opContext).Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.FetchAttemptsTotal.WithLabelValues(opContext, "success").Inc()
			slog.Debug("fetch succeeded",
				"context", opContext,
				"attempt", attempt,
			)
			return result, nil
		}

		lastErr = err
		metrics.FetchAttemptsTotal.WithLabelValues(opContext, "failure").Inc()

		// Outer cancellation is not a fetch failure; stop without retrying.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		kind := faults.Classify(err)
		if !faults.Retryable(kind) {
			slog.Warn("fetch failed, not retryable",
				"context", opContext,
				"attempt", attempt,
				"kind", kind,
				"error", err,
			)
			metrics.FetchFailuresTotal.WithLabelValues(opContext, string(kind)).Inc()
			return zero, err
		}

		if attempt == maxAttempts {
			break
		}

		delay := backoffDelay(attempt, cfg)
		slog.Warn("fetch failed, retrying",
			"context", opContext,
			"attempt", attempt,
			"kind", kind,
			"next_delay", delay,
			"error", err,
		)
		metrics.FetchRetriesTotal.WithLabelValues(opContext).Inc()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	kind := faults.Classify(lastErr)
	metrics.FetchFailuresTotal.WithLabelValues(opContext, string(kind)).Inc()
	slog.Error("fetch failed after all attempts",
		"context", opContext,
		"attempts", maxAttempts,
		"kind", kind,
		"error", lastErr,
	)
	return zero, fmt.Errorf("%s: failed after %d attempts: %w", opContext, maxAttempts, lastErr)
}

// backoffDelay returns the wait before the attempt following attempt n.
// Pure exponential: InitialDelay * Multiple^(n-1).
func backoffDelay(attempt int, cfg Config) time.Duration {
	return time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.BackoffMultiple, float64(attempt-1)))
}

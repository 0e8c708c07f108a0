package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/common"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

// ResilientChat wraps a raw Client with a per-call timeout, a bounded
// retry budget, and a circuit breaker, and implements
// service.ChatCompletion. The decomposer treats every error from here as
// a silent fallback signal, so the breaker only shortens the wait before
// giving up when the provider is down.
type ResilientChat struct {
	client  Client
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
	timeout time.Duration
	retry   service.RetryOptions
}

// NewResilientChat builds the resilience wrapper around client.
func NewResilientChat(client Client, cfg Config, logger *slog.Logger) *ResilientChat {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	maxAttempts := cfg.MaxRetries + 1
	if cfg.MaxRetries < 0 {
		maxAttempts = 1
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 200 * time.Millisecond
	}

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "llm-chat",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &ResilientChat{
		client:  client,
		breaker: breaker,
		logger:  logger,
		timeout: timeout,
		retry: service.RetryOptions{
			MaxAttempts:  maxAttempts,
			InitialDelay: retryDelay,
			MaxDelay:     2 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Chat implements service.ChatCompletion.
func (r *ResilientChat) Chat(ctx context.Context, prompt string) (string, error) {
	return r.breaker.Execute(func() (string, error) {
		var content string
		err := common.WithRetry(ctx, func() error {
			callCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			result, err := r.client.Chat(callCtx, prompt)
			if err != nil {
				r.logger.Debug("LLM chat attempt failed", "error", err)
				return err
			}
			if result == "" {
				return common.ErrEmptyResponse
			}
			content = result
			return nil
		}, r.retry)

		return content, err
	})
}

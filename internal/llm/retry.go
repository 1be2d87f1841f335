package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/saturogrp-blip/Grand/internal/logging"
)

type retrying struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries transient failures with exponential backoff and ±20%
// jitter. Rate limits wait RetryAfter when the server sent one. An invalid
// response is retried once. Context errors, truncation and rejected
// requests are returned immediately.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	logger := logging.FromContext(ctx)
	retriedInvalid := false

	var err error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &retriedInvalid) || attempt == r.cfg.MaxAttempts-1 {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		logger.Debug("retrying llm request", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, err
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Kind {
	case KindTruncated, KindRejected:
		return false
	case KindInvalidResponse:
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
	}
	return true
}

func (r *retrying) backoff(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}

package llm

import (
	"context"
	"time"

	"github.com/saturogrp-blip/Grand/internal/logging"
	"github.com/saturogrp-blip/Grand/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "suggest".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

type recording struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithRecording logs every request through the context logger and, when
// events is non-nil, appends it to the event history. A failure to record
// never fails the request.
func WithRecording(p Provider, provider string, events store.EventRepo) Provider {
	return &recording{inner: p, provider: provider, events: events}
}

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	logger.Debug("llm request",
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
		"input_tokens", ev.InputTokens,
		"output_tokens", ev.OutputTokens,
		"success", ev.Success)

	if r.events != nil {
		// Recording must outlive a cancelled request context.
		if recErr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
			logger.Warn("failed to record llm request", "error", recErr)
		}
	}
	return resp, err
}

func (r *recording) ModelID() string { return r.inner.ModelID() }

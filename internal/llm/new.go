package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/saturogrp-blip/Grand/internal/store"
)

// New builds the configured provider wrapped as
// caller → timeout → retry → recording → provider.
func New(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		base, err = NewAnthropic(cfg.APIKey, cfg.Model, opts...)
	case ProviderOpenAI:
		base, err = NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderOpenRouter:
		base, err = NewOpenRouter(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderGemini:
		base, err = NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetry()
	}
	p := WithRetry(WithRecording(base, cfg.Provider, events), retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

type timeout struct {
	inner Provider
	d     time.Duration
}

// WithTimeout bounds each Generate call, retries included, to d.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeout{inner: p, d: d}
}

func (t *timeout) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeout) ModelID() string { return t.inner.ModelID() }

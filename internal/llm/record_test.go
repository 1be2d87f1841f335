package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saturogrp-blip/Grand/internal/logging"
	"github.com/saturogrp-blip/Grand/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "grand.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecording_AppendsEvents(t *testing.T) {
	s := openStore(t)
	mock := NewMockProvider(
		MockReply{Content: json.RawMessage(`{"questions":[]}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockReply{Err: &Error{Kind: KindRateLimited, Err: errors.New("slow down")}},
	)
	p := WithRecording(mock, ProviderMock, s.EventRepo())
	ctx := WithPurpose(context.Background(), "suggest")

	if _, err := p.Generate(ctx, Request{Schema: questionsSchema}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("second call: expected error")
	}

	events, err := s.EventRepo().ListLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	failed, ok := events[0], events[1]
	if !ok.Success || ok.InputTokens != 12 || ok.OutputTokens != 3 || ok.Purpose != "suggest" || ok.Provider != "mock" {
		t.Errorf("success event = %+v", ok)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "slow down") {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestRecording_LogsWithoutRepo(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New("debug", "json", &buf))
	p := WithRecording(NewMockProvider(okReply), ProviderMock, nil)

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"msg":"llm request"`) || !strings.Contains(out, `"purpose":"unknown"`) {
		t.Errorf("log output = %s", out)
	}
}

func TestNew_Mock(t *testing.T) {
	s := openStore(t)
	p, err := New(context.Background(), Config{Provider: ProviderMock}, s.EventRepo())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{Provider: "llama"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := New(context.Background(), Config{Provider: ProviderOpenAI}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

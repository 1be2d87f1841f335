package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

var questionsSchema = &Schema{
	Name: "test-questions",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
}

func jsonHandler(t *testing.T, status int, body any, seen *string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			*seen = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func anthropicServer(t *testing.T, h http.HandlerFunc) *Anthropic {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropic("test-key", "claude-haiku", option.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new anthropic: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropic_Generate(t *testing.T) {
	var body string
	p := anthropicServer(t, jsonHandler(t, http.StatusOK,
		anthropicMessage(`{"questions":["Why EMS?"]}`, "end_turn"), &body))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write interview questions.",
		Prompt:    "Suggest one.",
		Schema:    questionsSchema,
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"questions":["Why EMS?"]}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.Total() != 80 {
		t.Errorf("total tokens = %d, want 80", resp.Usage.Total())
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}
	if !strings.Contains(body, "You write interview questions.") || !strings.Contains(body, "claude-haiku-4-5-20251001") {
		t.Errorf("request body missing system prompt or model: %s", body)
	}
}

func TestAnthropic_SchemaMismatch(t *testing.T) {
	p := anthropicServer(t, jsonHandler(t, http.StatusOK,
		anthropicMessage(`{"questions":"nope"}`, "end_turn"), nil))

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: questionsSchema, MaxTokens: 10})
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("err = %v, want invalid response", err)
	}
}

func TestAnthropic_Truncated(t *testing.T) {
	p := anthropicServer(t, jsonHandler(t, http.StatusOK,
		anthropicMessage(`{"questions":["Why`, "max_tokens"), nil))

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: questionsSchema, MaxTokens: 10})
	if !IsKind(err, KindTruncated) {
		t.Fatalf("err = %v, want truncated", err)
	}
}

func TestAnthropic_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindUnavailable},
		{http.StatusUnauthorized, KindRejected},
	}
	for _, tt := range tests {
		p := anthropicServer(t, jsonHandler(t, tt.status, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "error", "message": "boom"},
		}, nil))

		_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10})
		if !IsKind(err, tt.want) {
			t.Errorf("status %d: err = %v, want %s", tt.status, err, tt.want)
		}
	}
}

func TestAnthropic_PlainTextWithoutSchema(t *testing.T) {
	p := anthropicServer(t, jsonHandler(t, http.StatusOK, anthropicMessage("hello", "end_turn"), nil))

	resp, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s string
	if err := json.Unmarshal(resp.Content, &s); err != nil || s != "hello" {
		t.Errorf("content = %s, want JSON string \"hello\"", resp.Content)
	}
}

func openAIServer(t *testing.T, h http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAI("test-key", "gpt-4o-mini", srv.URL+"/v1")
	if err != nil {
		t.Fatalf("new openai: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAI_Generate(t *testing.T) {
	var body string
	p := openAIServer(t, jsonHandler(t, http.StatusOK, chatCompletion(`{"questions":["a","b"]}`, "stop"), &body))

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Prompt:    "user prompt",
		Schema:    questionsSchema,
		MaxTokens: 128,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", resp.Model)
	}
	for _, want := range []string{`"json_schema"`, `"test-questions"`, `"user prompt"`, `"system"`} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %s: %s", want, body)
		}
	}
}

func TestOpenAI_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Kind
	}{
		{"rate limit", jsonHandler(t, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "slow down", "type": "rate_limit"},
		}, nil), KindRateLimited},
		{"server error", jsonHandler(t, http.StatusBadGateway, map[string]any{
			"error": map[string]any{"message": "bad gateway", "type": "server_error"},
		}, nil), KindUnavailable},
		{"no choices", jsonHandler(t, http.StatusOK, map[string]any{
			"id": "x", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []any{},
		}, nil), KindInvalidResponse},
		{"length", jsonHandler(t, http.StatusOK, chatCompletion(`{"questions":[`, "length"), nil), KindTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openAIServer(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: questionsSchema, MaxTokens: 10})
			if !IsKind(err, tt.want) {
				t.Fatalf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestOpenRouter_DefaultBaseURL(t *testing.T) {
	if _, err := NewOpenRouter("", "m", ""); err == nil {
		t.Fatal("expected error for missing key")
	}
	p, err := NewOpenRouter("key", "google/gemini-2.0-flash-001", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-001" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": float64(5),
				"items":    map[string]any{"type": "string", "description": "one question"},
			},
			"tone": map[string]any{"type": "string", "enum": []string{"formal", "casual"}},
		},
	})

	if s.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	q := s.Properties["questions"]
	if q.Type != "ARRAY" || q.Items.Type != "STRING" || q.Items.Description != "one question" {
		t.Errorf("questions = %+v", q)
	}
	if q.MinItems == nil || *q.MinItems != 1 || q.MaxItems == nil || *q.MaxItems != 5 {
		t.Errorf("item bounds = %v, %v", q.MinItems, q.MaxItems)
	}
	if len(s.Properties["tone"].Enum) != 2 || len(s.Required) != 1 {
		t.Errorf("enum/required not converted: %+v", s)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicAliases, "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", anthropicAliases, "claude-sonnet-4-20250514"},
		{"gemini-flash", geminiAliases, "gemini-2.0-flash"},
		{"gemini-2.5-pro", geminiAliases, "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

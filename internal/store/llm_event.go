package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/saturogrp-blip/Grand/ent/migrate"
)

// eventRepo implements EventRepo on the llm_request_events table.
type eventRepo struct {
	drv *entsql.Driver
}

var llmEventColumns = []string{
	"sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := appendEntry(ctx, r.drv, migrate.LlmRequestEventsTable.Name,
		llmEventColumns[1:],
		[]any{time.Now().UTC(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	q, args := opts.apply(builder().Select(llmEventColumns...).
		From(entsql.Table(migrate.LlmRequestEventsTable.Name))).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var ev LLMRequestEvent
		err := rows.Scan(&ev.Sequence, &ev.Timestamp, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan LLM request event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

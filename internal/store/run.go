package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/saturogrp-blip/Grand/ent/migrate"
)

type runRepo struct {
	drv *entsql.Driver
}

var runColumns = []string{"sequence", "timestamp", "run_id", "dir", "passed", "failed", "results"}

func (r *runRepo) AppendRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("append run: empty id")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	_, err = appendEntry(ctx, r.drv, migrate.VerificationRunsTable.Name,
		runColumns[1:],
		[]any{run.CreatedAt.UTC(), run.ID, run.Dir, run.Passed, run.Failed, string(results)},
	)
	if err != nil {
		return fmt.Errorf("save verification run: %w", err)
	}
	return nil
}

func (r *runRepo) ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error) {
	q, args := opts.apply(builder().Select(runColumns...).
		From(entsql.Table(migrate.VerificationRunsTable.Name))).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query verification runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec     RunRecord
			results string
		)
		if err := rows.Scan(&rec.Sequence, &rec.CreatedAt, &rec.ID, &rec.Dir, &rec.Passed, &rec.Failed, &results); err != nil {
			return nil, fmt.Errorf("scan verification run: %w", err)
		}
		if err := json.Unmarshal([]byte(results), &rec.Results); err != nil {
			return nil, fmt.Errorf("decode results of run %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

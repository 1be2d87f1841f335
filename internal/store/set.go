package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/saturogrp-blip/Grand/ent/migrate"
)

type setRepo struct {
	drv *entsql.Driver
}

var setColumns = []string{"sequence", "timestamp", "set_id", "organization", "strategy", "sample", "seed", "questions", "notes"}

func (r *setRepo) SaveSet(ctx context.Context, set SetRecord) error {
	if set.ID == "" {
		return fmt.Errorf("save set: empty id")
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now()
	}

	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	notes, err := encodeNotes(set.Notes)
	if err != nil {
		return err
	}

	_, err = appendEntry(ctx, r.drv, migrate.InterviewSetsTable.Name,
		setColumns[1:],
		[]any{set.CreatedAt.UTC(), set.ID, set.Organization, set.Strategy, set.Sample,
			strconv.FormatUint(set.Seed, 10), string(questions), notes},
	)
	if err != nil {
		return fmt.Errorf("save interview set: %w", err)
	}
	return nil
}

func (r *setRepo) GetSet(ctx context.Context, id string) (*SetRecord, error) {
	sets, err := r.query(ctx, builder().Select(setColumns...).
		From(entsql.Table(migrate.InterviewSetsTable.Name)).
		Where(entsql.EQ("set_id", id)).
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("interview set %s: %w", id, ErrNotFound)
	}
	return &sets[0], nil
}

func (r *setRepo) ListSets(ctx context.Context, opts QueryOpts) ([]SetRecord, error) {
	return r.query(ctx, opts.apply(builder().Select(setColumns...).
		From(entsql.Table(migrate.InterviewSetsTable.Name))))
}

func (r *setRepo) SaveNotes(ctx context.Context, id string, notes map[int]string) error {
	encoded, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	q, args := builder().Update(migrate.InterviewSetsTable.Name).
		Set("notes", encoded).
		Where(entsql.EQ("set_id", id)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("interview set %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *setRepo) query(ctx context.Context, sel *entsql.Selector) ([]SetRecord, error) {
	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query interview sets: %w", err)
	}
	defer rows.Close()

	var out []SetRecord
	for rows.Next() {
		var (
			rec                    SetRecord
			seed, questions, notes string
		)
		err := rows.Scan(&rec.Sequence, &rec.CreatedAt, &rec.ID, &rec.Organization, &rec.Strategy,
			&rec.Sample, &seed, &questions, &notes)
		if err != nil {
			return nil, fmt.Errorf("scan interview set: %w", err)
		}
		if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("decode seed of set %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(questions), &rec.Questions); err != nil {
			return nil, fmt.Errorf("decode questions of set %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(notes), &rec.Notes); err != nil {
			return nil, fmt.Errorf("decode notes of set %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func encodeNotes(notes map[int]string) (string, error) {
	if notes == nil {
		notes = map[int]string{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("encode notes: %w", err)
	}
	return string(data), nil
}

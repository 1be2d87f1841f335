package store

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// historyCounter names the counter shared by every history table, so runs,
// sets and LLM requests interleave in one order.
const historyCounter = "history"

var sequencesColumns = []*entschema.Column{
	{Name: "name", Type: field.TypeString},
	{Name: "value", Type: field.TypeInt64, Default: 0},
}

// sequencesTable stores the last issued value of each named counter.
var sequencesTable = &entschema.Table{
	Name:       "sequences",
	Columns:    sequencesColumns,
	PrimaryKey: []*entschema.Column{sequencesColumns[0]},
}

func seedSequences(ctx context.Context, drv dialect.ExecQuerier) error {
	q, args := builder().Insert(sequencesTable.Name).
		Columns("name", "value").
		Values(historyCounter, 0).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence bumps the history counter inside tx and returns the new
// value. A rolled-back insert does not consume a number.
func nextSequence(ctx context.Context, tx dialect.Tx) (int64, error) {
	q, args := builder().Update(sequencesTable.Name).
		Add("value", 1).
		Where(entsql.EQ("name", historyCounter)).
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	q, args = builder().Select("value").
		From(entsql.Table(sequencesTable.Name)).
		Where(entsql.EQ("name", historyCounter)).
		Query()
	var rows entsql.Rows
	if err := tx.Query(ctx, q, args, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, errors.New("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// appendEntry inserts one history row into table with the next sequence
// number and returns that number.
func appendEntry(ctx context.Context, drv *entsql.Driver, table string, cols []string, vals []any) (int64, error) {
	var seq int64
	err := inTx(ctx, drv, func(tx dialect.Tx) error {
		var err error
		if seq, err = nextSequence(ctx, tx); err != nil {
			return err
		}
		q, args := builder().Insert(table).
			Columns(append([]string{"sequence"}, cols...)...).
			Values(append([]any{seq}, vals...)...).
			Query()
		return tx.Exec(ctx, q, args, nil)
	})
	return seq, err
}

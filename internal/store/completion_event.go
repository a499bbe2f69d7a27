package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableCompletions).
		Columns("sequence", "timestamp", "session_id", "module_id", "score", "total", "passed").
		Values(seqNum, r.now().UnixNano(), data.SessionID, data.ModuleID, data.Score, data.Total, data.Passed).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error) {
	sel := builder().
		Select("sequence", "timestamp", "session_id", "module_id", "score", "total", "passed").
		From(entsql.Table(tableCompletions)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var records []CompletionEventRecord
	for rows.Next() {
		var (
			rec CompletionEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.ModuleID,
			&rec.Score, &rec.Total, &rec.Passed); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) ModuleStats(ctx context.Context) ([]ModuleStat, error) {
	query, args := builder().
		Select("module_id", entsql.Count("*"), entsql.Sum("passed"), entsql.Max("score"), entsql.Max("timestamp")).
		From(entsql.Table(tableCompletions)).
		GroupBy("module_id").
		OrderBy("module_id").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query module stats: %w", err)
	}
	defer rows.Close()

	var stats []ModuleStat
	for rows.Next() {
		var (
			st ModuleStat
			ts int64
		)
		if err := rows.Scan(&st.ModuleID, &st.Attempts, &st.Passes, &st.BestScore, &ts); err != nil {
			return nil, fmt.Errorf("scan module stats: %w", err)
		}
		st.LastAttempt = time.Unix(0, ts)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate module stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, table := range []string{tableCompletions, tableRewards} {
		query, args := builder().Delete(table).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

// applyOpts narrows sel by the filters set in opts.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if opts.ModuleID != "" {
		sel.Where(entsql.EQ("module_id", opts.ModuleID))
	}
}

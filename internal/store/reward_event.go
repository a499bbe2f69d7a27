package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrDuplicateReward is returned when a module's reward was already recorded.
var ErrDuplicateReward = errors.New("reward already recorded")

func (r *eventRepo) AppendReward(ctx context.Context, data RewardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableRewards).
		Columns("sequence", "timestamp", "session_id", "module_id", "reward", "rarity", "score", "total").
		Values(seqNum, r.now().UnixNano(), data.SessionID, data.ModuleID, data.Reward, data.Rarity, data.Score, data.Total).
		OnConflict(entsql.ConflictColumns("module_id"), entsql.DoNothing()).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateReward, data.ModuleID)
	}
	return nil
}

func (r *eventRepo) QueryRewards(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	sel := builder().
		Select("sequence", "timestamp", "session_id", "module_id", "reward", "rarity", "score", "total").
		From(entsql.Table(tableRewards)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var records []RewardEventRecord
	for rows.Next() {
		var (
			rec RewardEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.ModuleID,
			&rec.Reward, &rec.Rarity, &rec.Score, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) HasReward(ctx context.Context, moduleID string) (bool, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(tableRewards)).
		Where(entsql.EQ("module_id", moduleID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return false, fmt.Errorf("count rewards: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, fmt.Errorf("scan reward count: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("count rewards: %w", err)
	}
	return n > 0, nil
}

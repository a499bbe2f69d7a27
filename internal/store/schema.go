package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableCompletions = "completion_events"
	tableRewards     = "reward_events"
)

// Event tables share the sequence/timestamp prefix so every event can be
// ordered against every other one.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS completion_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		module_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		passed INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS completion_events_module_id ON completion_events (module_id)`,
	`CREATE TABLE IF NOT EXISTS reward_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		module_id TEXT NOT NULL UNIQUE,
		reward TEXT NOT NULL,
		rarity TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	ModuleID string    // exact module match ("" = any)
}

// CompletionEventData captures one submitted quiz.
type CompletionEventData struct {
	SessionID string
	ModuleID  string
	Score     int
	Total     int
	Passed    bool
}

// CompletionEventRecord is a stored completion event.
type CompletionEventRecord struct {
	CompletionEventData
	Sequence  int64
	Timestamp time.Time
}

// ModuleStat aggregates every recorded attempt at one module.
type ModuleStat struct {
	ModuleID    string
	Attempts    int
	Passes      int
	BestScore   int
	LastAttempt time.Time
}

// RewardEventData captures a reward unlocked by passing a module.
type RewardEventData struct {
	SessionID string
	ModuleID  string
	Reward    string
	Rarity    string
	Score     int
	Total     int
}

// RewardEventRecord is a stored reward event.
type RewardEventRecord struct {
	RewardEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to learner events.
type EventRepo interface {
	// AppendCompletion records a submitted quiz, passed or not.
	AppendCompletion(ctx context.Context, data CompletionEventData) error

	// QueryCompletions returns completion events, newest first.
	QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error)

	// ModuleStats aggregates completions per module, ordered by module ID.
	ModuleStats(ctx context.Context) ([]ModuleStat, error)

	// AppendReward records an unlocked reward. Each module has at most one;
	// a second append for the same module returns ErrDuplicateReward.
	AppendReward(ctx context.Context, data RewardEventData) error

	// QueryRewards returns reward events, newest first.
	QueryRewards(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	// HasReward reports whether moduleID's reward has been unlocked.
	HasReward(ctx context.Context, moduleID string) (bool, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}

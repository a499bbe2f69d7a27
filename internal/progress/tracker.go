package progress

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/store"
	"github.com/abhisek/climassist/internal/trail"
)

// maxUnfinishedProgress keeps an unfinished module below 100 until its quiz
// is passed.
const maxUnfinishedProgress = 99

// ModuleStatus is the learner's standing on one module.
type ModuleStatus struct {
	IsCompleted bool
	Progress    int // 0-100
	BestScore   int
	Attempts    int
}

// Tracker records quiz completions and answers status queries for the
// catalog. It is the production trail.Reporter.
type Tracker struct {
	catalog *catalog.Catalog
	events  store.EventRepo // nil keeps everything in memory
	rewards *rewards.Service
	logger  *zap.Logger

	mu     sync.Mutex
	status map[string]ModuleStatus
}

var _ trail.Reporter = (*Tracker)(nil)

// NewTracker creates a tracker. events and rewardSvc may be nil.
func NewTracker(cat *catalog.Catalog, events store.EventRepo, rewardSvc *rewards.Service, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		catalog: cat,
		events:  events,
		rewards: rewardSvc,
		logger:  logger,
		status:  make(map[string]ModuleStatus),
	}
}

// Load rebuilds module statuses from the recorded completion events.
func (t *Tracker) Load(ctx context.Context) error {
	if t.events == nil {
		return nil
	}
	stats, err := t.events.ModuleStats(ctx)
	if err != nil {
		return fmt.Errorf("load module stats: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, st := range stats {
		s := t.status[st.ModuleID]
		s.Attempts = st.Attempts
		s.BestScore = max(s.BestScore, st.BestScore)
		if st.Passes > 0 {
			s.IsCompleted = true
			s.Progress = 100
		}
		t.status[st.ModuleID] = s
	}
	return nil
}

// Report implements trail.Reporter.
func (t *Tracker) Report(ctx context.Context, c trail.Completion) {
	t.Record(ctx, c)
}

// Record stores a submitted quiz, passed or failed, and returns the reward
// it unlocked, if any. Failures are logged and never returned: the session
// that produced c has already moved on.
func (t *Tracker) Record(ctx context.Context, c trail.Completion) *rewards.Award {
	t.mu.Lock()
	s := t.status[c.ModuleID]
	s.Attempts++
	s.BestScore = max(s.BestScore, c.Score)
	if c.Passed {
		s.IsCompleted = true
		s.Progress = 100
	}
	t.status[c.ModuleID] = s
	t.mu.Unlock()

	log := t.logger.With(
		zap.String("module_id", c.ModuleID),
		zap.String("session_id", c.SessionID),
		zap.Int("score", c.Score),
		zap.Int("total", c.Total),
		zap.Bool("passed", c.Passed))

	if t.events != nil {
		err := t.events.AppendCompletion(ctx, store.CompletionEventData{
			SessionID: c.SessionID,
			ModuleID:  c.ModuleID,
			Score:     c.Score,
			Total:     c.Total,
			Passed:    c.Passed,
		})
		if err != nil {
			log.Error("record completion failed", zap.Error(err))
		}
	}
	log.Info("quiz submitted")

	if !c.Passed || t.rewards == nil {
		return nil
	}
	m, err := t.catalog.GetModule(c.ModuleID)
	if err != nil {
		log.Warn("reward lookup failed", zap.Error(err))
		return nil
	}
	award := t.rewards.AwardModule(ctx, m, c.Score, c.Total, c.SessionID)
	if award != nil {
		log.Info("reward unlocked",
			zap.String("reward", award.Reward),
			zap.String("rarity", string(award.Rarity)))
	}
	return award
}

// Visit notes that the learner reached pageIndex of a module with pageCount
// content pages. The quiz counts as one more step. Progress only grows and
// stays below 100 until the module is completed.
func (t *Tracker) Visit(moduleID string, pageIndex, pageCount int) {
	if pageCount < 0 || pageIndex < 0 || pageIndex > pageCount {
		return
	}
	pct := min((pageIndex+1)*100/(pageCount+1), maxUnfinishedProgress)

	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.status[moduleID]
	if s.IsCompleted || pct <= s.Progress {
		return
	}
	s.Progress = pct
	t.status[moduleID] = s
}

// Status returns the learner's standing on moduleID. Unknown modules report
// the zero status.
func (t *Tracker) Status(moduleID string) ModuleStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status[moduleID]
}

// Completed returns how many catalog modules are completed.
func (t *Tracker) Completed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, m := range t.catalog.ListModules() {
		if t.status[m.ID].IsCompleted {
			n++
		}
	}
	return n
}

// History returns recorded quiz attempts, newest first. limit <= 0 returns
// every attempt. A tracker without an event repo has no history.
func (t *Tracker) History(ctx context.Context, limit int) ([]store.CompletionEventRecord, error) {
	if t.events == nil {
		return nil, nil
	}
	recs, err := t.events.QueryCompletions(ctx, store.QueryOpts{Limit: max(limit, 0)})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return recs, nil
}

// Reset deletes all recorded progress and rewards.
func (t *Tracker) Reset(ctx context.Context) error {
	if t.events != nil {
		if err := t.events.Reset(ctx); err != nil {
			return fmt.Errorf("reset events: %w", err)
		}
	}
	if t.rewards != nil {
		t.rewards.Forget()
	}

	t.mu.Lock()
	t.status = make(map[string]ModuleStatus)
	t.mu.Unlock()

	t.logger.Info("progress reset")
	return nil
}

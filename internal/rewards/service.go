package rewards

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/store"
)

// Service awards module rewards and keeps track of what has been earned.
// It is safe for concurrent use.
type Service struct {
	eventRepo store.EventRepo
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex

	// earned is the in-process record of modules whose reward was handed
	// out, used when no event repo is configured.
	earned map[string]bool

	// sessionAwards accumulates rewards earned since the app started.
	sessionAwards []Award
}

// NewService creates a reward service. eventRepo may be nil, in which case
// awards only live for the lifetime of the process.
func NewService(eventRepo store.EventRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
		earned:    make(map[string]bool),
	}
}

// AwardModule awards module's reward for passing its quiz with score out of
// total. A module's reward is earned once; retakes return nil. Storage
// failures are logged and the award is still returned.
func (s *Service) AwardModule(ctx context.Context, m catalog.Module, score, total int, sessionID string) *Award {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.alreadyEarned(ctx, m.ID) {
		return nil
	}

	award := &Award{
		ModuleID:    m.ID,
		ModuleTitle: m.Title,
		Reward:      m.Reward,
		Rarity:      ScoreRarity(score, total),
		Score:       score,
		Total:       total,
		SessionID:   sessionID,
		AwardedAt:   s.now(),
	}
	if err := s.persist(ctx, award); err != nil {
		if errors.Is(err, store.ErrDuplicateReward) {
			s.earned[m.ID] = true
			return nil
		}
		s.logger.Warn("persist reward failed",
			zap.String("module_id", m.ID),
			zap.Error(err))
	}
	s.earned[m.ID] = true
	s.sessionAwards = append(s.sessionAwards, *award)
	return award
}

// Earned returns every recorded award, newest first.
func (s *Service) Earned(ctx context.Context) ([]Award, error) {
	if s.eventRepo == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]Award, len(s.sessionAwards))
		for i, a := range s.sessionAwards {
			out[len(out)-1-i] = a
		}
		return out, nil
	}

	recs, err := s.eventRepo.QueryRewards(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query rewards: %w", err)
	}
	awards := make([]Award, len(recs))
	for i, r := range recs {
		awards[i] = Award{
			ModuleID:  r.ModuleID,
			Reward:    r.Reward,
			Rarity:    Rarity(r.Rarity),
			Score:     r.Score,
			Total:     r.Total,
			SessionID: r.SessionID,
			AwardedAt: r.Timestamp,
		}
	}
	return awards, nil
}

// HasEarned reports whether moduleID's reward has been awarded.
func (s *Service) HasEarned(ctx context.Context, moduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alreadyEarned(ctx, moduleID)
}

// Forget clears the in-process record, e.g. after the store was reset.
func (s *Service) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earned = make(map[string]bool)
	s.sessionAwards = nil
}

func (s *Service) alreadyEarned(ctx context.Context, moduleID string) bool {
	if s.earned[moduleID] {
		return true
	}
	if s.eventRepo == nil {
		return false
	}
	has, err := s.eventRepo.HasReward(ctx, moduleID)
	if err != nil {
		s.logger.Warn("check reward failed",
			zap.String("module_id", moduleID),
			zap.Error(err))
		return false
	}
	if has {
		s.earned[moduleID] = true
	}
	return has
}

func (s *Service) persist(ctx context.Context, award *Award) error {
	if s.eventRepo == nil {
		return nil
	}
	return s.eventRepo.AppendReward(ctx, store.RewardEventData{
		SessionID: award.SessionID,
		ModuleID:  award.ModuleID,
		Reward:    award.Reward,
		Rarity:    string(award.Rarity),
		Score:     award.Score,
		Total:     award.Total,
	})
}

// SessionAwards returns the rewards earned since the app started, oldest first.
func (s *Service) SessionAwards() []Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sessionAwards)
}

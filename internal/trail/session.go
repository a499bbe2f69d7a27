package trail

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/climassist/internal/catalog"
)

// Result summarises a submitted quiz.
type Result struct {
	ModuleID string
	Score    int
	Total    int
	Passed   bool
	Reward   string // module reward; only earned when Passed
}

// Session tracks one learner's progress through one module: the content
// pages, then the final quiz. Every transition is synchronous, and calls that
// are not valid in the current phase are ignored rather than treated as errors.
//
// A Session is owned by a single view and is not safe for concurrent use.
type Session struct {
	module    *catalog.Module
	pageIndex int

	// answers maps question ID to the selected option. Last answer wins.
	answers map[string]string

	// score is nil until the quiz is submitted.
	score *int

	explanations map[string]bool

	id        string
	startedAt time.Time
	reporter  Reporter

	newID func() string
	now   func() time.Time
}

// NewSession creates an idle session that reports passed quizzes to reporter.
// A nil reporter discards completions.
func NewSession(reporter Reporter) *Session {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Session{
		reporter: reporter,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

// Start begins module m from its first page, discarding any previous module,
// answers and score. A module without pages starts directly on the quiz.
func (s *Session) Start(m catalog.Module) {
	s.module = &m
	s.pageIndex = 0
	s.answers = make(map[string]string)
	s.score = nil
	s.explanations = make(map[string]bool)
	s.id = s.newID()
	s.startedAt = s.now()
}

// Reset discards the session entirely, as if no module had been started.
func (s *Session) Reset() {
	s.module = nil
	s.pageIndex = 0
	s.answers = nil
	s.score = nil
	s.explanations = nil
	s.id = ""
	s.startedAt = time.Time{}
}

// Next advances one content page. From the last page it moves to the quiz,
// where the page index equals the page count. Returns false if nothing changed.
func (s *Session) Next() bool {
	if s.module == nil || s.pageIndex >= s.module.PageCount() {
		return false
	}
	s.pageIndex++
	return true
}

// Prev goes back one page, including from the quiz to the last content page.
// A submitted quiz keeps its score. Returns false at the first page.
func (s *Session) Prev() bool {
	if s.module == nil || s.pageIndex == 0 {
		return false
	}
	s.pageIndex--
	return true
}

// Answer records option as the answer to questionID, replacing any earlier
// answer. It is ignored outside the quiz, after submission, for unknown
// questions and for options the question doesn't declare.
func (s *Session) Answer(questionID, option string) bool {
	if s.Phase() != PhaseQuiz {
		return false
	}
	q, ok := s.module.Question(questionID)
	if !ok || !q.HasOption(option) {
		return false
	}
	s.answers[questionID] = option
	return true
}

// Submit scores the quiz and locks the answers. Unanswered questions count as
// wrong. When the quiz passes the reporter is notified after the local state
// has already moved to PhaseQuizCompleted. Returns false if the session is not
// on an unsubmitted quiz.
func (s *Session) Submit(ctx context.Context) (Result, bool) {
	if s.Phase() != PhaseQuiz {
		return Result{}, false
	}

	score := 0
	for _, q := range s.module.Quiz {
		if a, ok := s.answers[q.ID]; ok && a == q.CorrectAnswer {
			score++
		}
		s.explanations[q.ID] = true
	}
	s.score = &score

	res := s.result()
	if res.Passed {
		s.report(ctx, Completion{
			ModuleID:  res.ModuleID,
			Passed:    true,
			Score:     res.Score,
			Total:     res.Total,
			SessionID: s.id,
		})
	}
	return res, true
}

// report hands c to the reporter. A panicking reporter must not take the
// session down with it; the quiz is already scored locally.
func (s *Session) report(ctx context.Context, c Completion) {
	defer func() { _ = recover() }()
	s.reporter.Report(ctx, c)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	switch {
	case s.module == nil:
		return PhaseIdle
	case s.pageIndex < s.module.PageCount():
		return PhaseBrowsing
	case s.score == nil:
		return PhaseQuiz
	default:
		return PhaseQuizCompleted
	}
}

// Module returns the active module, if any.
func (s *Session) Module() (catalog.Module, bool) {
	if s.module == nil {
		return catalog.Module{}, false
	}
	return *s.module, true
}

// ID returns the identifier assigned when the module was started.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the current module was started.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// PageIndex returns the current page index in [0, PageCount()].
func (s *Session) PageIndex() int {
	return s.pageIndex
}

// PageCount returns the active module's number of content pages.
func (s *Session) PageCount() int {
	if s.module == nil {
		return 0
	}
	return s.module.PageCount()
}

// CurrentPage returns the content page being shown, or false on the quiz.
func (s *Session) CurrentPage() (catalog.ContentPage, bool) {
	if s.Phase() != PhaseBrowsing {
		return catalog.ContentPage{}, false
	}
	return s.module.Pages[s.pageIndex], true
}

// OnQuiz reports whether the quiz view is showing, submitted or not.
func (s *Session) OnQuiz() bool {
	p := s.Phase()
	return p == PhaseQuiz || p == PhaseQuizCompleted
}

// AnswerFor returns the selected option for questionID.
func (s *Session) AnswerFor(questionID string) (string, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// Answers returns a copy of all selected answers.
func (s *Session) Answers() map[string]string {
	return maps.Clone(s.answers)
}

// Score returns the quiz score once submitted.
func (s *Session) Score() (int, bool) {
	if s.score == nil {
		return 0, false
	}
	return *s.score, true
}

// Submitted reports whether the quiz has been scored.
func (s *Session) Submitted() bool {
	return s.score != nil
}

// ExplanationVisible reports whether the explanation for questionID is shown.
func (s *Session) ExplanationVisible(questionID string) bool {
	return s.explanations[questionID]
}

// Result returns the scored result once the quiz has been submitted.
func (s *Session) Result() (Result, bool) {
	if s.module == nil || s.score == nil {
		return Result{}, false
	}
	return s.result(), true
}

func (s *Session) result() Result {
	total := len(s.module.Quiz)
	return Result{
		ModuleID: s.module.ID,
		Score:    *s.score,
		Total:    total,
		Passed:   Passed(*s.score, total),
		Reward:   s.module.Reward,
	}
}

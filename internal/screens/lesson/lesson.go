package lesson

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/notify"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/trail"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/layout"
)

// LessonScreen walks the learner through one module: its content pages,
// then the quiz, then the result.
type LessonScreen struct {
	deps    screen.Deps
	module  catalog.Module
	session *trail.Session

	focus   int   // focused question on the quiz
	cursors []int // option cursor per question

	body   viewport.Model
	saving bool
	award  string // reward label once persisted
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a lesson screen and starts m.
func New(deps screen.Deps, m catalog.Module) *LessonScreen {
	s := &LessonScreen{
		deps:   deps,
		module: m,
		body:   viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
	}
	// Passed and failed attempts are both recorded from submit, off the
	// update loop, so the session itself reports nowhere.
	s.session = trail.NewSession(nil)
	s.start()
	return s
}

func (s *LessonScreen) start() {
	s.session.Start(s.module)
	s.focus = 0
	s.cursors = make([]int, len(s.module.Quiz))
	s.saving = false
	s.award = ""
	s.visited()
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.module.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	switch s.session.Phase() {
	case trail.PhaseBrowsing:
		if s.session.PageIndex() == 0 {
			return components.Hints(k.Next, k.Up, k.Down, k.Back)
		}
		return components.Hints(k.Prev, k.Next, k.Up, k.Down, k.Back)
	case trail.PhaseQuiz:
		hints := []key.Binding{k.Up, k.Down, k.Select}
		if len(s.module.Quiz) > 1 {
			hints = append(hints, k.Tab)
		}
		hints = append(hints, k.Submit)
		if s.session.PageCount() > 0 {
			hints = append(hints, k.Prev)
		}
		return components.Hints(append(hints, k.Back)...)
	case trail.PhaseQuizCompleted:
		return components.Hints(k.Retry, k.Prev, k.Back)
	}
	return components.Hints(k.Back)
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		return s.handleRecorded(msg)
	case tea.KeyPressMsg:
		if key.Matches(msg, components.Keys.Back) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		switch s.session.Phase() {
		case trail.PhaseBrowsing:
			return s.updateBrowsing(msg)
		case trail.PhaseQuiz:
			return s.updateQuiz(msg)
		case trail.PhaseQuizCompleted:
			return s.updateCompleted(msg)
		}
	}
	return s, nil
}

func (s *LessonScreen) updateBrowsing(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, components.Keys.Next), key.Matches(msg, components.Keys.Select):
		if s.session.Next() {
			s.body.GotoTop()
			s.visited()
		}
	case key.Matches(msg, components.Keys.Prev):
		if s.session.Prev() {
			s.body.GotoTop()
		}
	case key.Matches(msg, components.Keys.Up):
		s.body.ScrollUp(1)
	case key.Matches(msg, components.Keys.Down):
		s.body.ScrollDown(1)
	}
	return s, nil
}

func (s *LessonScreen) updateQuiz(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	quiz := s.module.Quiz
	switch {
	case key.Matches(msg, components.Keys.Prev):
		s.session.Prev()
	case key.Matches(msg, components.Keys.Submit):
		return s, s.submit()
	case len(quiz) == 0:
	case key.Matches(msg, components.Keys.Tab):
		s.focus = (s.focus + 1) % len(quiz)
	case key.Matches(msg, components.Keys.Untab):
		s.focus = (s.focus - 1 + len(quiz)) % len(quiz)
	case key.Matches(msg, components.Keys.Up):
		if s.cursors[s.focus] > 0 {
			s.cursors[s.focus]--
		}
	case key.Matches(msg, components.Keys.Down):
		if s.cursors[s.focus] < len(quiz[s.focus].Options)-1 {
			s.cursors[s.focus]++
		}
	case key.Matches(msg, components.Keys.Select):
		q := quiz[s.focus]
		s.session.Answer(q.ID, q.Options[s.cursors[s.focus]])
		if s.focus < len(quiz)-1 {
			s.focus++
		}
	}
	return s, nil
}

func (s *LessonScreen) updateCompleted(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, components.Keys.Retry):
		if !s.saving {
			s.start()
		}
	case key.Matches(msg, components.Keys.Prev):
		if s.session.Prev() {
			s.body.GotoTop()
		}
	}
	return s, nil
}

// submit scores the quiz locally and returns the command that records it.
func (s *LessonScreen) submit() tea.Cmd {
	res, ok := s.session.Submit(context.Background())
	if !ok {
		return nil
	}

	c := trail.Completion{
		ModuleID:  res.ModuleID,
		Passed:    res.Passed,
		Score:     res.Score,
		Total:     res.Total,
		SessionID: s.session.ID(),
	}

	tracker := s.deps.Tracker
	if tracker == nil {
		return s.deps.Notify(resultNotice(res, ""))
	}
	s.saving = true
	return func() tea.Msg {
		award := tracker.Record(context.Background(), c)
		return recordedMsg{Passed: c.Passed, Award: award}
	}
}

func (s *LessonScreen) handleRecorded(msg recordedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Award != nil {
		s.award = msg.Award.Reward
	}
	res, ok := s.session.Result()
	if !ok {
		return s, nil
	}
	return s, s.deps.Notify(resultNotice(res, s.award))
}

// visited reports the current page to the tracker for progress display.
func (s *LessonScreen) visited() {
	if s.deps.Tracker != nil {
		s.deps.Tracker.Visit(s.module.ID, s.session.PageIndex(), s.session.PageCount())
	}
}

func resultNotice(res trail.Result, award string) notify.Notification {
	if !res.Passed {
		return notify.Notification{
			Title:    "Not quite",
			Message:  fmt.Sprintf("%d of %d correct. Review the pages and try again.", res.Score, res.Total),
			Severity: notify.SeverityWarning,
		}
	}
	n := notify.Notification{
		Title:    "Module complete",
		Message:  fmt.Sprintf("%d of %d correct.", res.Score, res.Total),
		Severity: notify.SeveritySuccess,
	}
	if award != "" {
		n.Title = "Reward unlocked"
		n.Message = fmt.Sprintf("You earned the %s (%d of %d correct).", award, res.Score, res.Total)
	}
	return n
}

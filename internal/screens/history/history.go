package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/store"
	"github.com/abhisek/climassist/internal/trail"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/layout"
	"github.com/abhisek/climassist/internal/ui/theme"
)

// historyLimit caps how many attempts the screen loads.
const historyLimit = 50

type historyLoadedMsg struct {
	Attempts []store.CompletionEventRecord
	Awards   map[string]rewards.Award // sessionID → award earned in it
	Err      error
}

// HistoryScreen lists past quiz attempts, newest first.
type HistoryScreen struct {
	deps     screen.Deps
	attempts []store.CompletionEventRecord
	awards   map[string]rewards.Award
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	tracker, rewardSvc := s.deps.Tracker, s.deps.Rewards
	return func() tea.Msg {
		if tracker == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		attempts, err := tracker.History(ctx, historyLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		awards := make(map[string]rewards.Award)
		if rewardSvc != nil {
			earned, err := rewardSvc.Earned(ctx)
			if err == nil {
				for _, a := range earned {
					awards[a.SessionID] = a
				}
			}
		}
		return historyLoadedMsg{Attempts: attempts, Awards: awards}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	details := key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Details"))
	return components.Hints(details, k.Up, k.Down, k.Back)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.awards = msg.Awards
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, components.Keys.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, components.Keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, components.Keys.Down):
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case key.Matches(msg, components.Keys.Select):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return centered(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return centered(theme.Hint, "\n\n  No quiz attempts yet. Pick a trail to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	maxVisible := max(height-4, 3)
	start := 0
	if s.selected >= maxVisible {
		start = s.selected - maxVisible + 1
	}

	for i := start; i < len(s.attempts) && i < start+maxVisible; i++ {
		a := s.attempts[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := theme.Correct.Render("✓")
		if !a.Passed {
			mark = theme.Incorrect.Render("✗")
		}

		line := fmt.Sprintf("%s%s  %-28s  %d/%d  %3d%%",
			prefix, a.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			s.moduleTitle(a.ModuleID), a.Score, a.Total, trail.Percent(a.Score, a.Total))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+"  "+mark))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.details(a)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// details renders the expanded line for an attempt: its session and the
// reward it unlocked, if any.
func (s *HistoryScreen) details(a store.CompletionEventRecord) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if award, ok := s.awards[a.SessionID]; ok && award.ModuleID == a.ModuleID {
		return lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("    %s %s (%s)", award.Rarity.Icon(), award.Reward, award.Rarity.DisplayName()))
	}
	if a.Passed {
		return dim.Render("    Passed · reward already earned")
	}
	return dim.Render(fmt.Sprintf("    Needed %d%% to pass", trail.PassNumerator))
}

func (s *HistoryScreen) moduleTitle(id string) string {
	if s.deps.Catalog != nil {
		if m, err := s.deps.Catalog.GetModule(id); err == nil {
			id = m.Title
		}
	}
	r := []rune(id)
	if len(r) > 28 {
		return string(r[:25]) + "..."
	}
	return id
}

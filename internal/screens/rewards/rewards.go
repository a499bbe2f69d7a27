package rewards

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/catalog"
	rw "github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/layout"
	"github.com/abhisek/climassist/internal/ui/theme"
)

type awardsLoadedMsg struct {
	Awards []rw.Award
	Err    error
}

// RewardsScreen lists earned module rewards and the ones still locked.
type RewardsScreen struct {
	deps         screen.Deps
	awards       []rw.Award
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates a new RewardsScreen.
func New(deps screen.Deps) *RewardsScreen {
	return &RewardsScreen{deps: deps}
}

func (s *RewardsScreen) Init() tea.Cmd {
	svc := s.deps.Rewards
	return func() tea.Msg {
		if svc == nil {
			return awardsLoadedMsg{}
		}
		awards, err := svc.Earned(context.Background())
		return awardsLoadedMsg{Awards: awards, Err: err}
	}
}

func (s *RewardsScreen) Title() string {
	return "Rewards"
}

func (s *RewardsScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	return components.Hints(k.Up, k.Down, k.Back)
}

func (s *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case awardsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.awards = msg.Awards
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, components.Keys.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, components.Keys.Up):
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case key.Matches(msg, components.Keys.Down):
			if s.scrollOffset < len(s.rows())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

// row is one line of the list: an earned award or a locked module.
type row struct {
	award  *rw.Award
	module catalog.Module
}

// rows lists earned awards newest first, then locked catalog modules in
// catalog order.
func (s *RewardsScreen) rows() []row {
	earned := make(map[string]bool, len(s.awards))
	rows := make([]row, 0, len(s.awards))
	for i := range s.awards {
		earned[s.awards[i].ModuleID] = true
		rows = append(rows, row{award: &s.awards[i]})
	}
	if s.deps.Catalog != nil {
		for _, m := range s.deps.Catalog.ListModules() {
			if !earned[m.ID] {
				rows = append(rows, row{module: m})
			}
		}
	}
	return rows
}

func (s *RewardsScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading rewards...")
	}

	var b strings.Builder
	total := len(s.awards)
	if s.deps.Catalog != nil {
		total = max(total, s.deps.Catalog.Len())
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("\n%d of %d rewards earned\n", len(s.awards), total)))
	b.WriteString("\n")

	// Rarity tally.
	var tally []string
	for _, r := range rw.AllRarities() {
		n := 0
		for _, a := range s.awards {
			if a.Rarity == r {
				n++
			}
		}
		tally = append(tally, lipgloss.NewStyle().Foreground(rarityColor(r)).
			Render(fmt.Sprintf("%s %s (%d)", r.Icon(), r.DisplayName(), n)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tally, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 64), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := s.rows()
	if len(rows) == 0 {
		b.WriteString(center(theme.Hint, "No trails available"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := min(s.scrollOffset, len(rows)-1)
	end := min(start+maxVisible, len(rows))

	for _, r := range rows[start:end] {
		var line string
		var style lipgloss.Style
		if r.award != nil {
			a := r.award
			line = fmt.Sprintf("%s  %-28s %-10s %d/%d  %s",
				a.Rarity.Icon(), a.Reward, a.Rarity.DisplayName(), a.Score, a.Total,
				a.AwardedAt.Format("Jan 02, 2006"))
			style = lipgloss.NewStyle().Foreground(rarityColor(a.Rarity))
		} else {
			line = fmt.Sprintf("🔒  %-28s %s", r.module.Reward, "Complete "+r.module.Title)
			style = theme.Disabled
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("... %d more", len(rows)-end)))
	}
	return b.String()
}

func rarityColor(r rw.Rarity) color.Color {
	switch r {
	case rw.RarityRare:
		return theme.Secondary
	case rw.RarityEpic:
		return theme.Primary
	case rw.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}

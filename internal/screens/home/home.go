package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/screens/history"
	"github.com/abhisek/climassist/internal/screens/lesson"
	"github.com/abhisek/climassist/internal/screens/rewards"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/layout"
	"github.com/abhisek/climassist/internal/weather"
)

// conditionsTimeout bounds the weather lookup done when the screen opens.
const conditionsTimeout = 5 * time.Second

type conditionsMsg struct {
	Weather weather.Weather
	Alert   weather.Alert
	Err     error
}

// HomeScreen lists the learning trails with their progress, plus the local
// weather and hazard alert.
type HomeScreen struct {
	deps screen.Deps
	menu components.Menu

	conditions *conditionsMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	provider, loc, logger := h.deps.Weather, h.deps.Location, h.deps.Logger
	if provider == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), conditionsTimeout)
		defer cancel()

		w, err := provider.Weather(ctx, loc)
		if err != nil {
			if logger != nil {
				logger.Warn("weather lookup failed", zap.String("location", loc.String()), zap.Error(err))
			}
			return conditionsMsg{Err: err}
		}
		a, err := provider.Alert(ctx, loc)
		if err != nil {
			if logger != nil {
				logger.Warn("alert lookup failed", zap.String("location", loc.String()), zap.Error(err))
			}
			return conditionsMsg{Weather: w, Err: err}
		}
		return conditionsMsg{Weather: w, Alert: a}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	return components.Hints(k.Up, k.Down, k.Select, k.Quit)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case conditionsMsg:
		h.conditions = &msg
		return h, nil
	case router.RefreshMsg:
		h.refresh()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refresh rebuilds the menu from current progress, keeping the selection.
func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	if selected < len(h.menu.Items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	var items []components.MenuItem
	if h.deps.Catalog != nil {
		for _, m := range h.deps.Catalog.ListModules() {
			items = append(items, components.MenuItem{
				Label:  m.Title,
				Detail: h.moduleDetail(m),
				Action: func() tea.Cmd {
					return func() tea.Msg {
						return router.PushScreenMsg{Screen: lesson.New(h.deps, m)}
					}
				},
			})
		}
	}

	items = append(items,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps)}
			}
		}},
		components.MenuItem{Label: "Rewards", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: rewards.New(h.deps)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

// moduleDetail is the dim text after a module's title: hazard, then
// completion state or progress, then the estimated time.
func (h *HomeScreen) moduleDetail(m catalog.Module) string {
	parts := []string{m.Hazard.DisplayName()}

	if h.deps.Tracker != nil {
		st := h.deps.Tracker.Status(m.ID)
		switch {
		case st.IsCompleted:
			parts = append(parts, fmt.Sprintf("✔ Completed · best %d/%d", st.BestScore, len(m.Quiz)))
		case st.Progress > 0:
			parts = append(parts, fmt.Sprintf("%d%%", st.Progress))
		default:
			parts = append(parts, "New")
		}
	}

	if m.EstimatedTime != "" {
		parts = append(parts, m.EstimatedTime)
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := height < 24 || layout.IsCompactWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if h.deps.Weather != nil {
		sections = append(sections, renderConditions(h.conditions, h.deps.Location, cw, compact))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/notify"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/screens/home"
	"github.com/abhisek/climassist/internal/screens/welcome"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/layout"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

type statsMsg struct {
	Stats layout.HeaderStats
}

type toastExpiredMsg struct {
	ID int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	deps    screen.Deps
	notices *notify.Queue
	stats   layout.HeaderStats

	toast   *notify.Notification
	toastID int

	width  int
	height int
}

// Options configures the application.
type Options struct {
	Deps screen.Deps

	// Notices is read back for display. Deps.Notifier must deliver to it,
	// directly or through a notify.Multi.
	Notices *notify.Queue

	// Splash plays the welcome intro before the home screen.
	Splash bool
}

// New creates an AppModel on the home screen, or the intro when opts.Splash
// is set.
func New(opts Options) AppModel {
	deps := opts.Deps
	var first screen.Screen = home.New(deps)
	if opts.Splash {
		first = welcome.New(func() screen.Screen { return home.New(deps) })
	}
	return AppModel{
		router:  router.New(first),
		deps:    deps,
		notices: opts.Notices,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStats())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case statsMsg:
		m.stats = msg.Stats
		return m, nil

	case screen.NotifiedMsg:
		return m, tea.Batch(m.showNextToast(), m.loadStats())

	case toastExpiredMsg:
		if msg.ID == m.toastID {
			m.toast = nil
		}
		return m, nil

	case router.RefreshMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadStats())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// showNextToast moves the oldest queued notification on screen and schedules
// its removal.
func (m *AppModel) showNextToast() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	n, ok := m.notices.Pop()
	if !ok {
		return nil
	}
	m.toast = &n
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{ID: id}
	})
}

// loadStats gathers header counters off the update loop.
func (m AppModel) loadStats() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		var s layout.HeaderStats
		if deps.Catalog != nil {
			s.Modules = deps.Catalog.Len()
		}
		if deps.Tracker != nil {
			s.Completed = deps.Tracker.Completed()
		}
		if deps.Rewards != nil {
			awards, err := deps.Rewards.Earned(context.Background())
			if err != nil && deps.Logger != nil {
				deps.Logger.Warn("load reward count failed", zap.Error(err))
			}
			s.Rewards = len(awards)
		}
		return statsMsg{Stats: s}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full frame: header, active screen, toast and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	contentHeight := layout.ContentHeight(header, footer, m.height)

	var toast string
	if m.toast != nil {
		toast = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, components.Toast(*m.toast, m.width-2))
		contentHeight = max(contentHeight-lipgloss.Height(toast), 0)
	}

	content := m.router.View(m.width, contentHeight)
	if toast != "" {
		content = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content) + "\n" + toast
	}

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// skyFrames cycle above the banner: the weather clears as the intro plays.
var skyFrames = []string{
	"⛈   🌧   ⛈   🌧   ⛈",
	"🌧   ☁   🌧   ☁   🌧",
	"☁   ⛅   ☁   ⛅   ☁",
	"⛅   ☀   ⛅   ☀   ⛅",
}

var hazards = []string{"Floods", "Landslides", "Heat Waves", "Storms"}

type tickMsg time.Time

// WelcomeScreen plays a short intro before handing over to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the intro once the banner is up.
		if w.elapsed >= phase2End {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// sky returns the weather frame for the current point of the intro.
func (w *WelcomeScreen) sky() string {
	i := int(w.elapsed * time.Duration(len(skyFrames)) / (totalDur + tickInterval))
	return skyFrames[min(i, len(skyFrames)-1)]
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.sky()))

	if w.elapsed >= phase1End {
		sections = append(sections, "", components.Banner(width, false))
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Be ready before the weather turns."),
			theme.Subtitle.Render(strings.Join(hazards, " · ")),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

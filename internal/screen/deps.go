package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/notify"
	"github.com/abhisek/climassist/internal/progress"
	"github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/weather"
)

// Deps are the services screens share. Screens never touch the store
// directly; everything goes through these.
type Deps struct {
	Catalog  *catalog.Catalog
	Tracker  *progress.Tracker
	Rewards  *rewards.Service
	Weather  weather.Provider
	Location weather.Location
	Notifier notify.Sink
	Logger   *zap.Logger
}

// Notify queues n and returns the command that asks the app to show it.
func (d Deps) Notify(n notify.Notification) tea.Cmd {
	if d.Notifier == nil {
		return nil
	}
	d.Notifier.Notify(context.Background(), n)
	return func() tea.Msg { return NotifiedMsg{} }
}

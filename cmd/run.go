package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/app"
	"github.com/abhisek/climassist/internal/notify"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/weather"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	tracker, rewardSvc, err := env.tracker(cmd.Context())
	if err != nil {
		return err
	}

	notices := notify.NewQueue(notify.DefaultQueueSize)
	deps := screen.Deps{
		Catalog:  env.catalog,
		Tracker:  tracker,
		Rewards:  rewardSvc,
		Weather:  weather.Stub{},
		Location: env.cfg.Location(),
		Notifier: notify.Multi{notices, notify.LogSink{Logger: env.logger}},
		Logger:   env.logger,
	}

	// First launch plays the intro.
	attempts, err := tracker.History(cmd.Context(), 1)
	if err != nil {
		return err
	}

	env.logger.Info("starting", zap.String("db", env.dbPath), zap.Int("modules", env.catalog.Len()))
	return app.Run(app.Options{
		Deps:    deps,
		Notices: notices,
		Splash:  len(attempts) == 0,
	})
}

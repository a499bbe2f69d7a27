package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/climassist/internal/config"
	"github.com/abhisek/climassist/internal/weather"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show current weather and hazard alert for a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loc := cfg.Location()
		if cmd.Flags().Changed("lat") {
			loc.Lat, _ = cmd.Flags().GetFloat64("lat")
		}
		if cmd.Flags().Changed("lng") {
			loc.Lng, _ = cmd.Flags().GetFloat64("lng")
		}

		var provider weather.Provider = weather.Stub{}
		w, err := provider.Weather(cmd.Context(), loc)
		if err != nil {
			return fmt.Errorf("weather: %w", err)
		}
		a, err := provider.Alert(cmd.Context(), loc)
		if err != nil {
			return fmt.Errorf("alert: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Location:    %s\n", loc)
		fmt.Fprintf(out, "Conditions:  %s, %.1f°C, humidity %d%%\n", w.Conditions, w.TemperatureCelsius, w.Humidity)
		fmt.Fprintf(out, "Alert:       %s - %s\n", a.RiskLevel, a.Description)
		return nil
	},
}

func init() {
	forecastCmd.Flags().Float64("lat", 0, "Latitude in decimal degrees (default CLIMASSIST_LAT)")
	forecastCmd.Flags().Float64("lng", 0, "Longitude in decimal degrees (default CLIMASSIST_LNG)")
}

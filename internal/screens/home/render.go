package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/theme"
	"github.com/abhisek/climassist/internal/weather"
)

const tagline = "Learn to prepare. Earn your badges."

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return max(min(frameWidth-6, 72), 20)
}

func renderTitle(cw int, compact bool) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.Banner(cw, compact) + "\n" + theme.Hint.Render(tagline))
}

// renderConditions renders the weather and alert card. c is nil while the
// lookup is in flight.
func renderConditions(c *conditionsMsg, loc weather.Location, cw int, compact bool) string {
	var body string
	switch {
	case c == nil:
		body = theme.Hint.Render("Checking conditions at " + loc.String() + "...")
	case c.Err != nil && c.Weather.Conditions == "":
		body = lipgloss.NewStyle().Foreground(theme.Warning).Render("Weather unavailable: " + c.Err.Error())
	default:
		w := c.Weather
		line := fmt.Sprintf("%s %.0f°C  %s  💧 %d%%", conditionIcon(w.Conditions), w.TemperatureCelsius, w.Conditions, w.Humidity)
		body = theme.Body.Render(line)
		if c.Err != nil {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render("Alerts unavailable")
		} else if c.Alert.RiskLevel != "" {
			risk := theme.RiskStyle(string(c.Alert.RiskLevel))
			alert := risk.Render(fmt.Sprintf("⚠ %s RISK", c.Alert.RiskLevel))
			if !compact {
				alert += "  " + theme.Subtitle.Render(c.Alert.Description)
			}
			body += "\n" + alert
		}
	}

	border := theme.Border
	if c != nil && c.Err == nil && c.Alert.RiskLevel == weather.RiskHigh {
		border = theme.Error
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(body)
}

func conditionIcon(conditions string) string {
	switch strings.ToLower(conditions) {
	case "sunny", "clear":
		return "☀"
	case "cloudy", "overcast":
		return "☁"
	case "rainy", "rain", "showers":
		return "🌧"
	case "stormy", "storm", "thunderstorm":
		return "⛈"
	default:
		return "🌡"
	}
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(strings.TrimRight(m.View(), "\n"))
}

// renderFrame centers content within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/notify"
	"github.com/abhisek/climassist/internal/ui/theme"
)

// Toast renders a notification as a bordered box colored by severity.
func Toast(n notify.Notification, width int) string {
	color := theme.Primary
	switch n.Severity {
	case notify.SeveritySuccess:
		color = theme.Success
	case notify.SeverityWarning:
		color = theme.Warning
	case notify.SeverityError:
		color = theme.Error
	}

	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(n.Title)
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(n.Message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(min(width, 60)).
		Render(title + "\n" + body)
}

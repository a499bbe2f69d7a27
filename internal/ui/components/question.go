package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/ui/theme"
)

// QuestionCard renders one quiz question. It holds no state of its own; the
// caller supplies the cursor, the chosen option and whether the answer key
// is revealed.
type QuestionCard struct {
	Number      int
	Prompt      string
	Options     []string
	Cursor      int  // highlighted option, -1 for none
	Focused     bool // the card receives key input
	Chosen      string
	Correct     string
	Revealed    bool
	Explanation string
	Width       int
}

// View renders the card.
func (q QuestionCard) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Width(q.Width).
		Render(fmt.Sprintf("%d. %s", q.Number, q.Prompt)))
	b.WriteString("\n")

	for i, opt := range q.Options {
		mark := "○"
		if opt == q.Chosen {
			mark = "●"
		}
		prefix := "  "
		if q.Focused && i == q.Cursor && !q.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)

		style := theme.Unselected
		switch {
		case q.Revealed && opt == q.Correct:
			style = theme.Correct
			line += "  ✓"
		case q.Revealed && opt == q.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case q.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case q.Focused && i == q.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if q.Revealed {
		if q.Chosen == "" {
			b.WriteString(theme.Incorrect.Render("  Not answered"))
			b.WriteString("\n")
		}
		if q.Explanation != "" {
			b.WriteString(theme.Hint.Width(q.Width).Render("  " + q.Explanation))
			b.WriteString("\n")
		}
	}
	return b.String()
}

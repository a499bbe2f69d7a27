package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/trail"
	"github.com/abhisek/climassist/internal/ui/components"
	"github.com/abhisek/climassist/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	cw := contentWidth(width)

	var body string
	switch s.session.Phase() {
	case trail.PhaseBrowsing:
		body = s.renderPage(cw, height)
	case trail.PhaseQuiz, trail.PhaseQuizCompleted:
		body = s.renderQuiz(cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 0).
		Render(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(body)))
}

func contentWidth(width int) int {
	return max(min(width-8, 76), 20)
}

// stepLine renders "Page 2 of 5" with a progress bar over pages plus quiz.
func (s *LessonScreen) stepLine(cw int) string {
	steps := s.session.PageCount() + 1
	label := "Quiz"
	if !s.session.OnQuiz() {
		label = fmt.Sprintf("Page %d of %d", s.session.PageIndex()+1, s.session.PageCount())
	}
	bar := components.ProgressBar{
		Percent: (s.session.PageIndex() + 1) * 100 / steps,
		Width:   max(cw-lipgloss.Width(label)-2, 4),
	}
	return theme.Subtitle.Render(label) + "  " + bar.View()
}

func (s *LessonScreen) renderPage(cw, height int) string {
	page, ok := s.session.CurrentPage()
	if !ok {
		return ""
	}

	header := s.stepLine(cw) + "\n\n" + theme.Title.Render(page.Title) + "\n\n"

	s.body.SetWidth(cw)
	s.body.SetHeight(max(height-lipgloss.Height(header)-3, 3))
	s.body.SetContent(pageBody(page, cw))

	next := "Next page"
	if s.session.PageIndex() == s.session.PageCount()-1 {
		next = "Take the quiz"
	}
	footer := theme.Hint.Render(fmt.Sprintf("→ %s", next))

	return header + s.body.View() + "\n\n" + footer
}

// pageBody renders the page body by kind. Media pages show their reference
// and alt text since the terminal can't display them.
func pageBody(page catalog.ContentPage, width int) string {
	text := theme.Body.Width(width)
	switch page.Kind {
	case catalog.PageImage:
		out := lipgloss.NewStyle().Foreground(theme.Secondary).Render("🖼  Image: " + page.Body)
		if page.Hint != "" {
			out += "\n" + theme.Hint.Width(width).Render(page.Hint)
		}
		return out
	case catalog.PageVideo:
		out := lipgloss.NewStyle().Foreground(theme.Secondary).Render("▶  Video: " + page.Body)
		if page.Hint != "" {
			out += "\n" + theme.Hint.Width(width).Render(page.Hint)
		}
		return out
	default:
		return text.Render(page.Body)
	}
}

func (s *LessonScreen) renderQuiz(cw int) string {
	var b strings.Builder
	b.WriteString(s.stepLine(cw))
	b.WriteString("\n\n")

	quiz := s.module.Quiz
	if len(quiz) == 0 {
		b.WriteString(theme.Hint.Render("This module has no questions."))
		b.WriteString("\n\n")
	}

	submitted := s.session.Submitted()
	for i, q := range quiz {
		chosen, _ := s.session.AnswerFor(q.ID)
		card := components.QuestionCard{
			Number:   i + 1,
			Prompt:   q.Prompt,
			Options:  q.Options,
			Cursor:   s.cursors[i],
			Focused:  i == s.focus && !submitted,
			Chosen:   chosen,
			Correct:  q.CorrectAnswer,
			Revealed: s.session.ExplanationVisible(q.ID),
			Width:    cw,
		}
		if card.Revealed {
			card.Explanation = q.Explanation
		}
		b.WriteString(card.View())
		b.WriteString("\n")
	}

	if res, ok := s.session.Result(); ok {
		b.WriteString(s.renderResult(res))
	} else {
		answered := len(s.session.Answers())
		b.WriteString(theme.Subtitle.Render(
			fmt.Sprintf("%d of %d answered · press s to submit", answered, len(quiz))))
	}
	return b.String()
}

func (s *LessonScreen) renderResult(res trail.Result) string {
	score := fmt.Sprintf("Score: %d / %d (%d%%)", res.Score, res.Total, trail.Percent(res.Score, res.Total))
	if !res.Passed {
		return theme.Incorrect.Render(score) + "\n" +
			theme.Hint.Render(fmt.Sprintf("You need %d%% to pass. Press r to try again.", trail.PassNumerator))
	}

	out := theme.Correct.Render(score+"  Passed!") + "\n"
	switch {
	case s.saving:
		out += theme.Hint.Render("Saving your progress...")
	case s.award != "":
		out += theme.Badge.Render("🏅 "+s.award) + "\n" + theme.Hint.Render("Added to your rewards.")
	default:
		out += theme.Hint.Render(fmt.Sprintf("Reward: %s", res.Reward))
	}
	return out
}

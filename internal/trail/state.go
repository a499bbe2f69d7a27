package trail

// Phase is the current phase of a trail session.
type Phase int

const (
	PhaseIdle          Phase = iota // No module started
	PhaseBrowsing                   // Reading content pages
	PhaseQuiz                       // Answering the final quiz
	PhaseQuizCompleted              // Quiz submitted and scored
)

// String returns a short label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBrowsing:
		return "browsing"
	case PhaseQuiz:
		return "quiz"
	case PhaseQuizCompleted:
		return "quiz-completed"
	default:
		return "unknown"
	}
}

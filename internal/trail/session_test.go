package trail

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/climassist/internal/catalog"
)

// recordingReporter captures every completion it receives.
type recordingReporter struct {
	calls []Completion
}

func (r *recordingReporter) Report(_ context.Context, c Completion) {
	r.calls = append(r.calls, c)
}

func twoQuestionModule() catalog.Module {
	return catalog.Module{
		ID:    "flood-prep",
		Title: "Floods",
		Pages: []catalog.ContentPage{
			{Title: "One", Body: "first", Kind: catalog.PageText},
			{Title: "Two", Body: "second", Kind: catalog.PageText},
			{Title: "Three", Body: "third", Kind: catalog.PageText},
		},
		Quiz: []catalog.QuizQuestion{
			{ID: "q1", Prompt: "First?", Options: []string{"A", "B", "C"}, CorrectAnswer: "A", Explanation: "because A"},
			{ID: "q2", Prompt: "Second?", Options: []string{"A", "B", "C"}, CorrectAnswer: "B"},
		},
		Reward: "Flood Medal",
	}
}

func tenQuestionModule() catalog.Module {
	m := catalog.Module{ID: "ten", Title: "Ten", Reward: "Ten Star"}
	for i := 1; i <= 10; i++ {
		m.Quiz = append(m.Quiz, catalog.QuizQuestion{
			ID:            fmt.Sprintf("q%d", i),
			Prompt:        "?",
			Options:       []string{"right", "wrong"},
			CorrectAnswer: "right",
		})
	}
	return m
}

func testSession() (*Session, *recordingReporter) {
	rep := &recordingReporter{}
	s := NewSession(rep)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	s.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return s, rep
}

// toQuiz advances a freshly started session to the quiz view.
func toQuiz(t *testing.T, s *Session) {
	t.Helper()
	for s.Phase() == PhaseBrowsing {
		if !s.Next() {
			t.Fatal("Next refused to advance while browsing")
		}
	}
	if s.Phase() != PhaseQuiz {
		t.Fatalf("phase = %s, want quiz", s.Phase())
	}
}

func TestNewSession_Idle(t *testing.T) {
	s, _ := testSession()

	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase())
	}
	if s.Next() || s.Prev() || s.Answer("q1", "A") {
		t.Error("transitions on an idle session should be no-ops")
	}
	if _, ok := s.Submit(context.Background()); ok {
		t.Error("Submit on an idle session should be a no-op")
	}
	if _, ok := s.Module(); ok {
		t.Error("idle session should have no module")
	}
}

func TestStart_EntersFirstPage(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())

	if s.Phase() != PhaseBrowsing {
		t.Errorf("phase = %s, want browsing", s.Phase())
	}
	if s.PageIndex() != 0 {
		t.Errorf("PageIndex = %d, want 0", s.PageIndex())
	}
	page, ok := s.CurrentPage()
	if !ok || page.Title != "One" {
		t.Errorf("CurrentPage = %q, %v; want One", page.Title, ok)
	}
	if s.ID() != "session-1" {
		t.Errorf("ID = %q, want session-1", s.ID())
	}
	if s.StartedAt().IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestStart_NoPagesGoesStraightToQuiz(t *testing.T) {
	s, _ := testSession()
	s.Start(tenQuestionModule())

	if s.Phase() != PhaseQuiz {
		t.Errorf("phase = %s, want quiz", s.Phase())
	}
	if s.PageIndex() != 0 || s.PageCount() != 0 {
		t.Errorf("PageIndex/PageCount = %d/%d, want 0/0", s.PageIndex(), s.PageCount())
	}
}

func TestNext_LastPageMovesToQuiz(t *testing.T) {
	s, _ := testSession()
	m := twoQuestionModule()
	s.Start(m)

	for i := 1; i < m.PageCount(); i++ {
		if !s.Next() {
			t.Fatalf("Next %d returned false", i)
		}
		if s.PageIndex() != i {
			t.Fatalf("PageIndex = %d, want %d", s.PageIndex(), i)
		}
	}

	if !s.Next() {
		t.Fatal("Next from last page should move to the quiz")
	}
	if s.PageIndex() != m.PageCount() {
		t.Errorf("PageIndex = %d, want %d", s.PageIndex(), m.PageCount())
	}
	if s.Phase() != PhaseQuiz {
		t.Errorf("phase = %s, want quiz", s.Phase())
	}
	if _, ok := s.CurrentPage(); ok {
		t.Error("CurrentPage should report false on the quiz")
	}

	// Never beyond the quiz.
	if s.Next() {
		t.Error("Next on the quiz should be a no-op")
	}
	if s.PageIndex() != m.PageCount() {
		t.Errorf("PageIndex = %d after extra Next, want %d", s.PageIndex(), m.PageCount())
	}
}

func TestPrev_NoopAtFirstPage(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())

	if s.Prev() {
		t.Error("Prev at page 0 should return false")
	}
	if s.PageIndex() != 0 {
		t.Errorf("PageIndex = %d, want 0", s.PageIndex())
	}
}

func TestPrev_FromQuizToLastPage(t *testing.T) {
	s, _ := testSession()
	m := twoQuestionModule()
	s.Start(m)
	toQuiz(t, s)

	if !s.Prev() {
		t.Fatal("Prev from quiz should succeed")
	}
	if s.PageIndex() != m.PageCount()-1 {
		t.Errorf("PageIndex = %d, want %d", s.PageIndex(), m.PageCount()-1)
	}
	if s.Phase() != PhaseBrowsing {
		t.Errorf("phase = %s, want browsing", s.Phase())
	}
}

func TestAnswer_OnlyDuringQuiz(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())

	if s.Answer("q1", "A") {
		t.Error("Answer while browsing should be ignored")
	}
	if len(s.Answers()) != 0 {
		t.Errorf("answers = %v, want none", s.Answers())
	}
}

func TestAnswer_RejectsUnknownOptionAndQuestion(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)

	if s.Answer("q1", "Z") {
		t.Error("unknown option should be rejected")
	}
	if s.Answer("q9", "A") {
		t.Error("unknown question should be rejected")
	}
	if _, ok := s.AnswerFor("q1"); ok {
		t.Error("rejected answer must not be stored")
	}

	s.Answer("q1", "B")
	s.Answer("q1", "Z")
	if a, _ := s.AnswerFor("q1"); a != "B" {
		t.Errorf("answer = %q, want B (invalid option must not overwrite)", a)
	}
}

func TestAnswer_LastAnswerWins(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)

	s.Answer("q1", "C")
	s.Answer("q1", "B")
	s.Answer("q1", "A")

	if a, _ := s.AnswerFor("q1"); a != "A" {
		t.Errorf("answer = %q, want A", a)
	}
	if len(s.Answers()) != 1 {
		t.Errorf("got %d answers, want 1", len(s.Answers()))
	}
}

func TestAnswers_ReturnsCopy(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")

	a := s.Answers()
	a["q1"] = "C"

	if got, _ := s.AnswerFor("q1"); got != "A" {
		t.Errorf("answer = %q after mutating copy, want A", got)
	}
}

func TestSubmit_ScoreCountsExactMatches(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"none answered", nil, 0},
		{"one right", map[string]string{"q1": "A"}, 1},
		{"one right one wrong", map[string]string{"q1": "A", "q2": "C"}, 1},
		{"both wrong", map[string]string{"q1": "B", "q2": "A"}, 0},
		{"both right", map[string]string{"q1": "A", "q2": "B"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testSession()
			s.Start(twoQuestionModule())
			toQuiz(t, s)
			for q, a := range tt.answers {
				s.Answer(q, a)
			}

			res, ok := s.Submit(context.Background())
			if !ok {
				t.Fatal("Submit returned false")
			}
			if res.Score != tt.want {
				t.Errorf("score = %d, want %d", res.Score, tt.want)
			}
			if got, _ := s.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
			if res.Total != 2 {
				t.Errorf("total = %d, want 2", res.Total)
			}
		})
	}
}

func TestSubmit_OneOfTwoFails(t *testing.T) {
	s, rep := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Answer("q2", "C")

	res, _ := s.Submit(context.Background())

	if res.Score != 1 {
		t.Errorf("score = %d, want 1", res.Score)
	}
	if res.Passed {
		t.Error("1/2 should not pass")
	}
	if len(rep.calls) != 0 {
		t.Errorf("reporter called %d times for a failed quiz, want 0", len(rep.calls))
	}
}

func TestSubmit_AllCorrectPassesAndReports(t *testing.T) {
	s, rep := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Answer("q2", "B")

	res, _ := s.Submit(context.Background())

	if res.Score != 2 || !res.Passed {
		t.Errorf("result = %+v, want score 2 and passed", res)
	}
	if res.Reward != "Flood Medal" {
		t.Errorf("reward = %q, want Flood Medal", res.Reward)
	}
	if len(rep.calls) != 1 {
		t.Fatalf("reporter called %d times, want 1", len(rep.calls))
	}
	got := rep.calls[0]
	want := Completion{ModuleID: "flood-prep", Passed: true, Score: 2, Total: 2, SessionID: "session-1"}
	if got != want {
		t.Errorf("completion = %+v, want %+v", got, want)
	}
}

func TestSubmit_ZeroQuestionsFails(t *testing.T) {
	s, rep := testSession()
	s.Start(catalog.Module{ID: "empty", Title: "Empty", Reward: "Nothing"})

	res, ok := s.Submit(context.Background())
	if !ok {
		t.Fatal("Submit on an empty quiz should still complete")
	}
	if res.Score != 0 || res.Passed {
		t.Errorf("result = %+v, want score 0 and not passed", res)
	}
	if s.Phase() != PhaseQuizCompleted {
		t.Errorf("phase = %s, want quiz-completed", s.Phase())
	}
	if len(rep.calls) != 0 {
		t.Error("reporter should not be called for an empty quiz")
	}
}

func TestSubmit_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		correct int
		passed  bool
	}{
		{6, false},
		{7, true},
		{10, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of 10", tt.correct), func(t *testing.T) {
			s, _ := testSession()
			m := tenQuestionModule()
			s.Start(m)
			for i, q := range m.Quiz {
				if i < tt.correct {
					s.Answer(q.ID, "right")
				} else {
					s.Answer(q.ID, "wrong")
				}
			}
			res, _ := s.Submit(context.Background())
			if res.Passed != tt.passed {
				t.Errorf("passed = %v, want %v", res.Passed, tt.passed)
			}
		})
	}
}

func TestSubmit_LocksAnswers(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Submit(context.Background())

	if s.Answer("q1", "B") {
		t.Error("Answer after Submit should be ignored")
	}
	if s.Answer("q2", "B") {
		t.Error("answering an unanswered question after Submit should be ignored")
	}
	if a, _ := s.AnswerFor("q1"); a != "A" {
		t.Errorf("answer = %q, want A", a)
	}
	if _, ok := s.AnswerFor("q2"); ok {
		t.Error("q2 should still be unanswered")
	}
	if score, _ := s.Score(); score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
}

func TestSubmit_OnlyOnce(t *testing.T) {
	s, rep := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Answer("q2", "B")

	s.Submit(context.Background())
	if _, ok := s.Submit(context.Background()); ok {
		t.Error("second Submit should be a no-op")
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter called %d times, want 1", len(rep.calls))
	}
}

func TestSubmit_RevealsAllExplanations(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)

	if s.ExplanationVisible("q1") {
		t.Error("explanations should be hidden before Submit")
	}

	s.Submit(context.Background())

	for _, id := range []string{"q1", "q2"} {
		if !s.ExplanationVisible(id) {
			t.Errorf("explanation for %s should be visible after Submit", id)
		}
	}
}

func TestSubmit_NotWhileBrowsing(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())

	if _, ok := s.Submit(context.Background()); ok {
		t.Error("Submit while browsing should be a no-op")
	}
	if s.Submitted() {
		t.Error("session should not be submitted")
	}
}

func TestSubmit_PanickingReporterDoesNotBlock(t *testing.T) {
	s := NewSession(ReporterFunc(func(context.Context, Completion) {
		panic("reporter exploded")
	}))
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Answer("q2", "B")

	res, ok := s.Submit(context.Background())
	if !ok || !res.Passed {
		t.Fatalf("Submit = %+v, %v; want passed", res, ok)
	}
	if s.Phase() != PhaseQuizCompleted {
		t.Errorf("phase = %s, want quiz-completed", s.Phase())
	}
}

func TestPrev_AfterSubmitKeepsScore(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Submit(context.Background())

	s.Prev()
	if s.Phase() != PhaseBrowsing {
		t.Errorf("phase = %s, want browsing", s.Phase())
	}
	s.Next()
	if s.Phase() != PhaseQuizCompleted {
		t.Errorf("phase = %s, want quiz-completed", s.Phase())
	}
	if score, ok := s.Score(); !ok || score != 1 {
		t.Errorf("score = %d, %v; want 1", score, ok)
	}
}

func TestStart_DiscardsPreviousModule(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Submit(context.Background())

	other := tenQuestionModule()
	s.Start(other)

	m, _ := s.Module()
	if m.ID != "ten" {
		t.Errorf("module = %q, want ten", m.ID)
	}
	if len(s.Answers()) != 0 {
		t.Errorf("answers = %v, want none", s.Answers())
	}
	if _, ok := s.Score(); ok {
		t.Error("score should be reset")
	}
	if s.ExplanationVisible("q1") {
		t.Error("explanations should be reset")
	}
	if s.ID() != "session-2" {
		t.Errorf("ID = %q, want session-2", s.ID())
	}
}

func TestStart_RetakeCompletedModule(t *testing.T) {
	s, rep := testSession()
	m := twoQuestionModule()
	s.Start(m)
	toQuiz(t, s)
	s.Answer("q1", "A")
	s.Answer("q2", "B")
	s.Submit(context.Background())

	s.Start(m)
	if s.Phase() != PhaseBrowsing || s.PageIndex() != 0 {
		t.Errorf("phase/page = %s/%d, want browsing/0", s.Phase(), s.PageIndex())
	}
	if _, ok := s.Score(); ok {
		t.Error("retake should clear the score")
	}

	toQuiz(t, s)
	if !s.Answer("q1", "C") {
		t.Error("answers should be editable again on retake")
	}
	res, _ := s.Submit(context.Background())
	if res.Passed {
		t.Error("retake with wrong answers should fail")
	}
	if len(rep.calls) != 1 {
		t.Errorf("reporter calls = %d, want 1 (only the first pass)", len(rep.calls))
	}
}

func TestReset(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)
	s.Answer("q1", "A")

	s.Reset()

	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase())
	}
	if s.ID() != "" || s.PageIndex() != 0 || len(s.Answers()) != 0 {
		t.Error("Reset should clear all session state")
	}
	if _, ok := s.Result(); ok {
		t.Error("Result should be unavailable after Reset")
	}
}

func TestResult(t *testing.T) {
	s, _ := testSession()
	s.Start(twoQuestionModule())
	toQuiz(t, s)

	if _, ok := s.Result(); ok {
		t.Error("Result should be unavailable before Submit")
	}

	s.Answer("q2", "B")
	s.Submit(context.Background())

	res, ok := s.Result()
	if !ok {
		t.Fatal("Result should be available after Submit")
	}
	if res.Score != 1 || res.Total != 2 || res.Passed {
		t.Errorf("result = %+v", res)
	}
}

func TestNilReporter(t *testing.T) {
	s := NewSession(nil)
	s.Start(tenQuestionModule())
	for _, q := range tenQuestionModule().Quiz {
		s.Answer(q.ID, "right")
	}
	if res, ok := s.Submit(context.Background()); !ok || !res.Passed {
		t.Errorf("Submit = %+v, %v; want passed", res, ok)
	}
}

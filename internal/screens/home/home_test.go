package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/progress"
	"github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
	"github.com/abhisek/climassist/internal/screens/history"
	"github.com/abhisek/climassist/internal/screens/lesson"
	rewardsscreen "github.com/abhisek/climassist/internal/screens/rewards"
	"github.com/abhisek/climassist/internal/trail"
	"github.com/abhisek/climassist/internal/weather"
)

func testDeps(t *testing.T) screen.Deps {
	t.Helper()
	cat, err := catalog.New([]catalog.Module{
		{
			ID: "flood-prep", Title: "Flood Preparedness", Hazard: catalog.HazardFlood,
			EstimatedTime: "10 min", Reward: "Flood Expert Medal",
			Pages: []catalog.ContentPage{{Title: "a", Kind: catalog.PageText}},
			Quiz:  []catalog.QuizQuestion{{ID: "q1", Prompt: "?", Options: []string{"A", "B"}, CorrectAnswer: "A"}},
		},
		{ID: "heat-wave", Title: "Heat Waves", Hazard: catalog.HazardHeat, Reward: "Heat Guardian Badge"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc := rewards.NewService(nil, nil)
	return screen.Deps{
		Catalog:  cat,
		Tracker:  progress.NewTracker(cat, nil, svc, nil),
		Rewards:  svc,
		Weather:  weather.Stub{},
		Location: weather.Location{Lat: -23.5505, Lng: -46.6333},
	}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestHomeScreen_MenuLayout(t *testing.T) {
	h := New(testDeps(t))

	labels := make([]string, 0, len(h.menu.Items))
	for _, it := range h.menu.Items {
		labels = append(labels, it.Label)
	}
	want := []string{"Flood Preparedness", "Heat Waves", "History", "Rewards", "Quit"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if d := h.menu.Items[0].Detail; d != "Floods · New · 10 min" {
		t.Errorf("detail = %q", d)
	}
}

func TestHomeScreen_OpensLesson(t *testing.T) {
	h := New(testDeps(t))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	s := pushed(t, cmd)
	if _, ok := s.(*lesson.LessonScreen); !ok {
		t.Fatalf("pushed %T, want lesson", s)
	}
	if s.Title() != "Flood Preparedness" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestHomeScreen_OpensHistoryAndRewards(t *testing.T) {
	h := New(testDeps(t))
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Fatal("expected history screen")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*rewardsscreen.RewardsScreen); !ok {
		t.Fatal("expected rewards screen")
	}
}

func TestHomeScreen_RefreshShowsProgress(t *testing.T) {
	deps := testDeps(t)
	h := New(deps)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	deps.Tracker.Report(context.Background(), trail.Completion{
		ModuleID: "flood-prep", Passed: true, Score: 1, Total: 1, SessionID: "s1",
	})
	deps.Tracker.Visit("heat-wave", 0, 0)
	h.Update(router.RefreshMsg{})

	if d := h.menu.Items[0].Detail; !strings.Contains(d, "✔ Completed · best 1/1") {
		t.Errorf("flood detail = %q", d)
	}
	if d := h.menu.Items[1].Detail; !strings.Contains(d, "99%") {
		t.Errorf("heat detail = %q", d)
	}
	if h.menu.Selected != 1 {
		t.Errorf("selection = %d, want kept at 1", h.menu.Selected)
	}
}

func TestHomeScreen_Conditions(t *testing.T) {
	h := New(testDeps(t))
	if v := h.View(100, 40); !strings.Contains(v, "Checking conditions") {
		t.Error("expected pending conditions")
	}

	h.Update(h.Init()())
	v := h.View(100, 40)
	for _, want := range []string{"25°C", "Sunny", "60%", "LOW RISK"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

type brokenProvider struct{}

func (brokenProvider) Weather(context.Context, weather.Location) (weather.Weather, error) {
	return weather.Weather{}, errors.New("service offline")
}

func (brokenProvider) Alert(context.Context, weather.Location) (weather.Alert, error) {
	return weather.Alert{}, errors.New("service offline")
}

func TestHomeScreen_ConditionsUnavailable(t *testing.T) {
	deps := testDeps(t)
	deps.Weather = brokenProvider{}
	h := New(deps)

	h.Update(h.Init()())
	if v := h.View(100, 40); !strings.Contains(v, "Weather unavailable") {
		t.Error("expected unavailable message")
	}
}

func TestHomeScreen_NoProvider(t *testing.T) {
	deps := testDeps(t)
	deps.Weather = nil
	h := New(deps)
	if h.Init() != nil {
		t.Error("no provider means no lookup")
	}
	if strings.Contains(h.View(100, 40), "conditions") {
		t.Error("conditions card should be hidden")
	}
}

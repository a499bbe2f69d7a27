package rewards

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/climassist/internal/catalog"
	rw "github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/router"
	"github.com/abhisek/climassist/internal/screen"
)

func testDeps(t *testing.T) screen.Deps {
	t.Helper()
	cat, err := catalog.New([]catalog.Module{
		{ID: "flood-prep", Title: "Flood Preparedness", Reward: "Flood Expert Medal"},
		{ID: "heat-wave", Title: "Heat Waves", Reward: "Heat Guardian Badge"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return screen.Deps{Catalog: cat, Rewards: rw.NewService(nil, nil)}
}

func load(t *testing.T, s *RewardsScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestRewardsScreen_Loading(t *testing.T) {
	s := New(testDeps(t))
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	if s.Title() != "Rewards" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestRewardsScreen_EarnedAndLocked(t *testing.T) {
	deps := testDeps(t)
	m, _ := deps.Catalog.GetModule("flood-prep")
	deps.Rewards.AwardModule(context.Background(), m, 2, 2, "s1")

	s := New(deps)
	load(t, s)

	rows := s.rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].award == nil || rows[0].award.ModuleID != "flood-prep" {
		t.Errorf("first row should be the earned award, got %+v", rows[0])
	}
	if rows[1].award != nil || rows[1].module.ID != "heat-wave" {
		t.Errorf("second row should be the locked module, got %+v", rows[1])
	}

	view := s.View(100, 30)
	for _, want := range []string{"1 of 2 rewards earned", "Flood Expert Medal", "Legendary", "Complete Heat Waves"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRewardsScreen_Scroll(t *testing.T) {
	s := New(testDeps(t))
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.scrollOffset != 1 {
		t.Errorf("offset = %d, want 1", s.scrollOffset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.scrollOffset != 1 {
		t.Errorf("offset = %d, want clamp at 1", s.scrollOffset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.scrollOffset != 0 {
		t.Errorf("offset = %d, want 0", s.scrollOffset)
	}
}

func TestRewardsScreen_Error(t *testing.T) {
	s := New(testDeps(t))
	s.Update(awardsLoadedMsg{Err: context.DeadlineExceeded})
	if !strings.Contains(s.View(80, 24), "Error") {
		t.Error("expected error view")
	}
}

func TestRewardsScreen_EscPops(t *testing.T) {
	s := New(testDeps(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

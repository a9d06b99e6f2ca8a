package nownext

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/store"
)

func TestTrackerDueWindow(t *testing.T) {
	sessions := []session.Session{
		{ID: "s", Date: "2026-02-13", StartTime: "10:00", Venue: "Stage", Title: "Talk"},
	}

	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"eleven minutes ahead", 9*60 + 49, 0},
		{"ten minutes ahead", 9*60 + 50, 1},
		{"nine minutes ahead", 9*60 + 51, 1},
		{"eight minutes ahead", 9*60 + 52, 0},
		{"already started", 10 * 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(store.NewMemStore())
			due := tracker.Due(sessions, at("2026-02-13", tt.minutes))
			if len(due) != tt.want {
				t.Errorf("Due at %d = %d sessions, want %d", tt.minutes, len(due), tt.want)
			}
		})
	}
}

func TestTrackerAtMostOnce(t *testing.T) {
	st := store.NewMemStore()
	tracker := NewTracker(st)
	sessions := []session.Session{
		{ID: "s", Date: "2026-02-13", StartTime: "10:00"},
	}

	m := at("2026-02-13", 9*60+50)
	if due := tracker.Due(sessions, m); len(due) != 1 {
		t.Fatalf("first poll should be due, got %d", len(due))
	}
	// Same poll a minute later, still inside the window.
	if due := tracker.Due(sessions, at("2026-02-13", 9*60+51)); len(due) != 0 {
		t.Errorf("second poll must not re-notify, got %d", len(due))
	}

	// A fresh tracker over the same store still remembers.
	if due := NewTracker(st).Due(sessions, m); len(due) != 0 {
		t.Error("notified state should persist across tracker instances")
	}
}

func TestTrackerOtherDaysIgnored(t *testing.T) {
	tracker := NewTracker(store.NewMemStore())
	sessions := []session.Session{
		{ID: "s", Date: "2026-02-14", StartTime: "10:00"},
	}
	if due := tracker.Due(sessions, at("2026-02-13", 9*60+50)); len(due) != 0 {
		t.Errorf("sessions on other days are never due, got %d", len(due))
	}
}

func TestEngineTick(t *testing.T) {
	loc := time.UTC
	var out bytes.Buffer
	clock := fixedClock{time.Date(2026, 2, 13, 9, 50, 0, 0, time.UTC)}

	engine := &Engine{
		Loc:      loc,
		Clock:    clock,
		Tracker:  NewTracker(store.NewMemStore()),
		Notifier: WriterNotifier{Out: &out},
	}

	sessions := []session.Session{
		{ID: "a", Date: "2026-02-13", StartTime: "09:00", EndTime: "10:00", Title: "Breakfast", Venue: "Main Hut"},
		{ID: "b", Date: "2026-02-13", StartTime: "10:00", EndTime: "11:00", Title: "Folk Set", Venue: "River Stage"},
	}

	result := engine.Tick(sessions)
	if result.NowID != "a" || result.NextID != "b" {
		t.Errorf("Tick result = %+v", result)
	}
	if !strings.Contains(out.String(), "Folk Set") {
		t.Errorf("starting-soon notification missing: %q", out.String())
	}

	// Second tick in the same minute: same result, no duplicate delivery.
	out.Reset()
	if got := engine.Tick(sessions); got != result {
		t.Errorf("repeat tick diverged: %+v", got)
	}
	if out.Len() != 0 {
		t.Errorf("duplicate notification delivered: %q", out.String())
	}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

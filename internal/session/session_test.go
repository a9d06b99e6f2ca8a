package session

import "testing"

func TestGenerateIDDeterministic(t *testing.T) {
	a := GenerateID("2026-02-13", "08:30", "Main Hut", "Breakfast", "")
	b := GenerateID("2026-02-13", "08:30", "Main Hut", "Breakfast", "")
	if a != b {
		t.Errorf("same inputs produced different IDs: %q vs %q", a, b)
	}
	if a != "2026-02-13|08:30|main-hut|breakfast|" {
		t.Errorf("unexpected ID shape: %q", a)
	}
}

func TestGenerateIDWhitespaceNoise(t *testing.T) {
	clean := GenerateID("2026-02-13", "08:30", "Main Hut", "Breakfast", "A. Cook")
	noisy := GenerateID("2026-02-13", "08:30", "  Main   Hut ", " Breakfast", "A.  Cook ")
	if clean != noisy {
		t.Errorf("whitespace noise changed the ID: %q vs %q", clean, noisy)
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:05", "10:59", "19:30", "23:59"}
	for _, v := range valid {
		if !ValidTime(v) {
			t.Errorf("ValidTime(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "24:00", "9:05", "12:60", "12:5", "noon", "12.30", "12:30:00"}
	for _, v := range invalid {
		if ValidTime(v) {
			t.Errorf("ValidTime(%q) = true, want false", v)
		}
	}
}

func TestTimeRange(t *testing.T) {
	s := Session{StartTime: "10:00", EndTime: "11:00"}
	if got := s.TimeRange(); got != "10:00–11:00" {
		t.Errorf("TimeRange() = %q", got)
	}

	s.EndTime = ""
	if got := s.TimeRange(); got != "10:00" {
		t.Errorf("TimeRange() without end = %q", got)
	}
}

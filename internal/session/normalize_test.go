package session

import (
	"reflect"
	"strings"
	"testing"
)

var testDayDates = map[string]string{
	"friday":   "2026-02-13",
	"saturday": "2026-02-14",
	"sunday":   "2026-02-15",
}

func testNormalizer() *Normalizer {
	return NewNormalizer(testDayDates, 0)
}

func TestFromRecordsRequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		record     map[string]string
		wantReason string
	}{
		{
			name:       "missing day",
			record:     map[string]string{"start_time": "10:00", "venue": "Stage"},
			wantReason: "missing day",
		},
		{
			name:       "missing start_time",
			record:     map[string]string{"day": "Friday", "venue": "Stage"},
			wantReason: "missing start_time",
		},
		{
			name:       "missing venue",
			record:     map[string]string{"day": "Friday", "start_time": "10:00"},
			wantReason: "missing venue",
		},
		{
			name:       "whitespace-only venue",
			record:     map[string]string{"day": "Friday", "start_time": "10:00", "venue": "   "},
			wantReason: "missing venue",
		},
		{
			name:       "malformed start_time",
			record:     map[string]string{"day": "Friday", "start_time": "25:00", "venue": "Stage"},
			wantReason: `invalid start_time "25:00"`,
		},
		{
			name:       "malformed end_time",
			record:     map[string]string{"day": "Friday", "start_time": "10:00", "end_time": "10:61", "venue": "Stage"},
			wantReason: `invalid end_time "10:61"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, diags := testNormalizer().FromRecords([]map[string]string{tt.record})
			if len(sessions) != 0 {
				t.Fatalf("invalid row was not excluded: %#v", sessions)
			}
			if len(diags) != 1 {
				t.Fatalf("want 1 diagnostic, got %d", len(diags))
			}
			if diags[0].Row != 1 {
				t.Errorf("diagnostic row = %d, want 1", diags[0].Row)
			}
			if diags[0].Reason != tt.wantReason {
				t.Errorf("diagnostic reason = %q, want %q", diags[0].Reason, tt.wantReason)
			}
		})
	}
}

func TestFromRecordsDefaultsAndInference(t *testing.T) {
	sessions, diags := testNormalizer().FromRecords([]map[string]string{
		{
			"day":        "Saturday",
			"start_time": "14:00",
			"venue":      "River Stage",
			"speaker":    "  Asha Rao ",
		},
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	if len(sessions) != 1 {
		t.Fatalf("want 1 session, got %d", len(sessions))
	}

	s := sessions[0]
	if s.Title != DefaultTitle {
		t.Errorf("blank title not defaulted: %q", s.Title)
	}
	if s.Date != "2026-02-14" {
		t.Errorf("date not inferred from day: %q", s.Date)
	}
	if s.Speaker != "Asha Rao" {
		t.Errorf("speaker not trimmed: %q", s.Speaker)
	}
	if s.ID == "" {
		t.Error("ID not assigned")
	}
}

func TestFromRecordsUnknownDayPassesThrough(t *testing.T) {
	sessions, _ := testNormalizer().FromRecords([]map[string]string{
		{"day": "Someday", "start_time": "10:00", "venue": "Stage", "title": "X"},
	})
	if len(sessions) != 1 {
		t.Fatalf("want 1 session, got %d", len(sessions))
	}
	if sessions[0].Date != "" {
		t.Errorf("unknown day should yield empty date, got %q", sessions[0].Date)
	}
}

func TestFromRecordsTags(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]string
		want   []string
	}{
		{
			name:   "split tag columns",
			record: map[string]string{"day": "Friday", "start_time": "10:00", "venue": "S", "title": "T", "tag1": "Music", "tag2": "Workshop"},
			want:   []string{"music", "workshop"},
		},
		{
			name:   "pipe-joined tags column",
			record: map[string]string{"day": "Friday", "start_time": "10:00", "venue": "S", "title": "T", "tags": "Food | Talk"},
			want:   []string{"food", "talk"},
		},
		{
			name:   "no tags",
			record: map[string]string{"day": "Friday", "start_time": "10:00", "venue": "S", "title": "T"},
			want:   nil,
		},
		{
			name:   "duplicate tags collapse",
			record: map[string]string{"day": "Friday", "start_time": "10:00", "venue": "S", "title": "T", "tag1": "Music", "tag2": "music"},
			want:   []string{"music"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, _ := testNormalizer().FromRecords([]map[string]string{tt.record})
			if len(sessions) != 1 {
				t.Fatalf("want 1 session, got %d", len(sessions))
			}
			if !reflect.DeepEqual(sessions[0].Tags, tt.want) {
				t.Errorf("Tags = %#v, want %#v", sessions[0].Tags, tt.want)
			}
		})
	}
}

func TestFromTableHeaderFolding(t *testing.T) {
	rows := [][]string{
		{"Day", "Date", "Start Time", "End Time", "Venue", "Title", "Speaker", "Tag1", "Tag2"},
		{"Friday", "2026-02-13", "08:30", "09:30", "Main Hut", "Breakfast", "", "Food", ""},
	}

	sessions, diags := testNormalizer().FromTable(rows)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
	if len(sessions) != 1 {
		t.Fatalf("want 1 session, got %d", len(sessions))
	}

	want := Session{
		ID:        "2026-02-13|08:30|main-hut|breakfast|",
		Day:       "Friday",
		Date:      "2026-02-13",
		StartTime: "08:30",
		EndTime:   "09:30",
		Venue:     "Main Hut",
		Title:     "Breakfast",
		Tags:      []string{"food"},
	}
	if !reflect.DeepEqual(sessions[0], want) {
		t.Errorf("session = %#v, want %#v", sessions[0], want)
	}
}

func TestFromTableShortRows(t *testing.T) {
	rows := [][]string{
		{"day", "start_time", "venue", "title"},
		{"Friday", "10:00", "Stage"},
	}
	sessions, _ := testNormalizer().FromTable(rows)
	if len(sessions) != 1 {
		t.Fatalf("short row should still normalize, got %d sessions", len(sessions))
	}
	if sessions[0].Title != DefaultTitle {
		t.Errorf("missing cell should default title, got %q", sessions[0].Title)
	}
}

func TestNormalizationOrdering(t *testing.T) {
	records := []map[string]string{
		{"day": "Sunday", "start_time": "09:00", "venue": "A", "title": "late day"},
		{"day": "Friday", "start_time": "19:00", "venue": "B", "title": "friday night"},
		{"day": "Friday", "start_time": "08:30", "venue": "C", "title": "friday morning"},
		{"day": "Saturday", "start_time": "12:00", "venue": "D", "title": "saturday noon"},
	}

	sessions, _ := testNormalizer().FromRecords(records)
	for i := 1; i < len(sessions); i++ {
		if sessions[i-1].SortKey() > sessions[i].SortKey() {
			t.Errorf("sequence not ordered at %d: %q > %q",
				i, sessions[i-1].SortKey(), sessions[i].SortKey())
		}
	}
	if sessions[0].Title != "friday morning" {
		t.Errorf("first session = %q, want friday morning", sessions[0].Title)
	}
}

func TestNormalizationDeterministic(t *testing.T) {
	records := []map[string]string{
		{"day": "Friday", "start_time": "10:00", "venue": "Stage", "title": "Opening", "speaker": "MC", "tag1": "talk"},
		{"day": "Friday", "start_time": "11:00", "venue": "Main Hut", "title": "Workshop"},
		{"day": "Friday", "venue": "nowhere"}, // invalid on purpose
	}

	first, firstDiags := testNormalizer().FromRecords(records)
	second, secondDiags := testNormalizer().FromRecords(records)

	if !reflect.DeepEqual(first, second) {
		t.Error("normalizing the same input twice differed")
	}
	if !reflect.DeepEqual(firstDiags, secondDiags) {
		t.Error("diagnostics differed between runs")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("ID differed at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := map[string]string{
		"Start Time": "start_time",
		"start_time": "start_time",
		"  VENUE  ":  "venue",
		"End   Time": "end_time",
		"Tag1":       "tag1",
	}
	for in, want := range tests {
		if got := CanonicalKey(in); got != want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizerNeverPanicsOnGarbage(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("normalizer panicked: %v", r)
		}
	}()

	garbage := []map[string]string{
		nil,
		{},
		{"day": strings.Repeat("x", 10000)},
		{"start_time": "10:00"},
	}
	testNormalizer().FromRecords(garbage)
}

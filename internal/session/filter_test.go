package session

import (
	"reflect"
	"testing"
)

func filterFixture() []Session {
	return []Session{
		{ID: "a", Day: "Friday", Venue: "Main Hut", Title: "Breakfast", Tags: []string{"food"}},
		{ID: "b", Day: "Friday", Venue: "River Stage", Title: "Folk Set", Speaker: "Mira", Tags: []string{"music"}},
		{ID: "c", Day: "Saturday", Venue: "Main Hut", Title: "Compost Workshop", Tags: []string{"workshop", "green"}},
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	f := Filter{}
	if !f.IsEmpty() {
		t.Error("zero filter should be empty")
	}
	got := f.Apply(filterFixture())
	if len(got) != 3 {
		t.Errorf("empty filter returned %d of 3", len(got))
	}
}

func TestFilterMatches(t *testing.T) {
	sessions := filterFixture()

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"by day", Filter{Day: "friday"}, []string{"a", "b"}},
		{"by venue", Filter{Venue: "main hut"}, []string{"a", "c"}},
		{"by tag", Filter{Tags: []string{"music"}}, []string{"b"}},
		{"by any of several tags", Filter{Tags: []string{"food", "green"}}, []string{"a", "c"}},
		{"by query on title", Filter{Query: "workshop"}, []string{"c"}},
		{"by query on speaker", Filter{Query: "mira"}, []string{"b"}},
		{"combined", Filter{Day: "Friday", Venue: "River Stage"}, []string{"b"}},
		{"no match", Filter{Day: "Sunday"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range tt.f.Apply(sessions) {
				got = append(got, s.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysAndVenues(t *testing.T) {
	sessions := filterFixture()

	if got := Days(sessions); !reflect.DeepEqual(got, []string{"Friday", "Saturday"}) {
		t.Errorf("Days = %v", got)
	}
	if got := Venues(sessions); !reflect.DeepEqual(got, []string{"Main Hut", "River Stage"}) {
		t.Errorf("Venues = %v", got)
	}
}

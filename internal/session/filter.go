package session

import "strings"

// Filter narrows a schedule to sessions matching day, venue, tag, and
// free-text criteria. An empty filter matches everything. Filter state is
// shareable through deep links, so its fields mirror the link parameters.
type Filter struct {
	Day   string   `json:"day,omitempty"`
	Venue string   `json:"venue,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Query string   `json:"query,omitempty"`
}

// IsEmpty reports whether the filter has no active criteria.
func (f Filter) IsEmpty() bool {
	return f.Day == "" && f.Venue == "" && len(f.Tags) == 0 && f.Query == ""
}

// Matches reports whether a session passes all active criteria.
//   - Day and Venue match exactly, case-insensitively.
//   - Tags match if the session carries at least one of the filter tags.
//   - Query is a case-insensitive substring match over title, speaker,
//     tags, and venue.
func (f Filter) Matches(s Session) bool {
	if f.Day != "" && !strings.EqualFold(f.Day, s.Day) {
		return false
	}
	if f.Venue != "" && !strings.EqualFold(f.Venue, s.Venue) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(s, f.Tags) {
		return false
	}
	if f.Query != "" {
		hay := strings.ToLower(strings.Join([]string{s.Title, s.Speaker, s.TagString(), s.Venue}, " "))
		if !strings.Contains(hay, strings.ToLower(f.Query)) {
			return false
		}
	}
	return true
}

// Apply returns the matching subset of sessions in their original order.
func (f Filter) Apply(sessions []Session) []Session {
	if f.IsEmpty() {
		return sessions
	}
	var out []Session
	for _, s := range sessions {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

func hasAnyTag(s Session, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		for _, t := range s.Tags {
			if t == w {
				return true
			}
		}
	}
	return false
}

// Days returns the distinct day labels of a schedule in first-seen order.
func Days(sessions []Session) []string {
	return distinct(sessions, func(s Session) string { return s.Day })
}

// Venues returns the distinct venues of a schedule in first-seen order.
func Venues(sessions []Session) []string {
	return distinct(sessions, func(s Session) string { return s.Venue })
}

func distinct(sessions []Session, key func(Session) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range sessions {
		k := key(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

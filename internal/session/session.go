package session

import (
	"regexp"
	"strings"
)

// Session represents one scheduled festival activity
type Session struct {
	ID        string   `json:"id"`
	Day       string   `json:"day"`
	Date      string   `json:"date,omitempty"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time,omitempty"`
	Venue     string   `json:"venue"`
	Title     string   `json:"title"`
	Speaker   string   `json:"speaker,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// DefaultTitle is used when a row carries no title rather than rejecting it.
const DefaultTitle = "TBA Session"

// timePattern matches strict 24-hour HH:MM values (00-23, 00-59).
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidTime reports whether v is a strict two-digit-hour, two-digit-minute
// 24-hour time.
func ValidTime(v string) bool {
	return timePattern.MatchString(v)
}

var whitespace = regexp.MustCompile(`\s+`)

// slug lowercases a field, trims it, and collapses internal whitespace runs
// to a single hyphen, so IDs stay stable under whitespace noise in the source.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespace.ReplaceAllString(s, "-")
}

// GenerateID creates the deterministic session identifier from the five
// identifying fields in fixed order. It is a pure function: the same inputs
// always yield the same ID, and two sessions with identical date, start,
// venue, title, and speaker collide by design (they are the same session).
func GenerateID(date, startTime, venue, title, speaker string) string {
	return strings.Join([]string{
		slug(date),
		slug(startTime),
		slug(venue),
		slug(title),
		slug(speaker),
	}, "|")
}

// SortKey is the chronological ordering key: lexicographic on the
// concatenation of zero-padded date and start time.
func (s Session) SortKey() string {
	return s.Date + s.StartTime
}

// TagString joins the tags with the pipe separator used by the source sheets.
func (s Session) TagString() string {
	return strings.Join(s.Tags, "|")
}

// TimeRange renders "start–end", or the bare start when no end is set.
func (s Session) TimeRange() string {
	if s.EndTime == "" {
		return s.StartTime
	}
	return s.StartTime + "–" + s.EndTime
}

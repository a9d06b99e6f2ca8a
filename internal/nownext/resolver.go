package nownext

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/festplan/internal/session"
)

// lastMinute is the clamp boundary for default end times (23:59).
const lastMinute = 23*60 + 59

// defaultDuration is the assumed length, in minutes, of a session with no
// end time.
const defaultDuration = 60

// Clock supplies the current moment. The system clock is the production
// implementation; tests step a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Moment is a date plus minutes-past-midnight resolved in the festival
// timezone, independent of the viewer's locale.
type Moment struct {
	Date    string // YYYY-MM-DD
	Minutes int    // 0..1439
}

// MomentAt resolves t in loc.
func MomentAt(t time.Time, loc *time.Location) Moment {
	local := t.In(loc)
	return Moment{
		Date:    local.Format("2006-01-02"),
		Minutes: local.Hour()*60 + local.Minute(),
	}
}

// Result identifies the current and upcoming sessions. Empty strings mean
// no session qualifies. Results are computed fresh on every query, never
// cached.
type Result struct {
	NowID  string `json:"now_id"`
	NextID string `json:"next_id"`
}

type boundedSession struct {
	session.Session
	start int
	end   int
}

// Resolve computes the now/next pair for the given moment.
//
// Sessions on other dates are ignored. A session with no end time ends
// 60 minutes after it starts, clamped to 23:59. "Now" is the first session
// in start order whose half-open interval [start, end) contains the moment;
// a session ending exactly at the current minute is no longer "now".
// "Next" is the earliest session starting at or after the now-session's end
// boundary, or, with no session active, the earliest session starting
// strictly later than the moment, falling back to the day's earliest
// session. Both are empty when the date has no sessions at all.
func Resolve(sessions []session.Session, m Moment) Result {
	var today []boundedSession
	for _, s := range sessions {
		if s.Date != m.Date {
			continue
		}
		start := toMinutes(s.StartTime)
		today = append(today, boundedSession{
			Session: s,
			start:   start,
			end:     effectiveEnd(s, start),
		})
	}
	if len(today) == 0 {
		return Result{}
	}

	sort.SliceStable(today, func(i, j int) bool {
		return today[i].start < today[j].start
	})

	var result Result
	nowEnd := -1
	for _, s := range today {
		if s.start <= m.Minutes && m.Minutes < s.end {
			result.NowID = s.ID
			nowEnd = s.end
			break
		}
	}

	if nowEnd >= 0 {
		for _, s := range today {
			if s.start >= nowEnd {
				result.NextID = s.ID
				break
			}
		}
		return result
	}

	for _, s := range today {
		if s.start > m.Minutes {
			result.NextID = s.ID
			return result
		}
	}
	// Nothing later today: wrap to the day's earliest session.
	result.NextID = today[0].ID
	return result
}

// effectiveEnd computes a session's end boundary in minutes.
func effectiveEnd(s session.Session, start int) int {
	if s.EndTime != "" && session.ValidTime(s.EndTime) {
		return toMinutes(s.EndTime)
	}
	end := start + defaultDuration
	if end > lastMinute {
		end = lastMinute
	}
	return end
}

// toMinutes converts a validated HH:MM string to minutes past midnight.
func toMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

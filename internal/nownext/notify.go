package nownext

import (
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/store"
)

// Notification lead window, in minutes ahead of the session start.
const (
	notifyLeadMin = 9
	notifyLeadMax = 10
)

// Notifier delivers a one-time "starting soon" notification for a session.
type Notifier interface {
	Notify(s session.Session) error
}

// WriterNotifier prints notifications to an output stream. It stands in
// for platform notification surfaces, which live outside the core.
type WriterNotifier struct {
	Out io.Writer
}

// Notify writes a starting-soon line for the session.
func (n WriterNotifier) Notify(s session.Session) error {
	_, err := fmt.Fprintf(n.Out, "Starting soon: %s at %s in %s\n", s.Title, s.StartTime, s.Venue)
	return err
}

// Tracker remembers which session/day pairs have already been notified, so
// a notification fires at most once even across repeated polls. The map is
// persisted through the store; persistence failures degrade to best-effort.
type Tracker struct {
	store store.Store
}

// NewTracker creates a Tracker over the given store.
func NewTracker(st store.Store) *Tracker {
	return &Tracker{store: st}
}

// Due returns the sessions eligible for a starting-soon notification at
// moment m: today's sessions starting between 9 and 10 minutes ahead that
// have not been notified before. Returned sessions are marked as notified
// immediately.
func (t *Tracker) Due(sessions []session.Session, m Moment) []session.Session {
	notified := make(map[string]bool)
	if _, err := t.store.Get(store.KeyNotified, &notified); err != nil {
		// Treat an unreadable map as empty; worst case is a repeat.
		logger.Warn("reading notified map failed", logger.Fields{"error": err.Error()})
		notified = make(map[string]bool)
	}

	var due []session.Session
	changed := false
	for _, s := range sessions {
		if s.Date != m.Date {
			continue
		}
		lead := toMinutes(s.StartTime) - m.Minutes
		if lead < notifyLeadMin || lead > notifyLeadMax {
			continue
		}
		key := s.ID + "|" + s.Date
		if notified[key] {
			continue
		}
		notified[key] = true
		changed = true
		due = append(due, s)
	}

	if changed {
		if err := t.store.Set(store.KeyNotified, notified); err != nil {
			logger.Warn("persisting notified map failed", logger.Fields{"error": err.Error()})
		}
	}
	return due
}

// Engine ties the resolver, the clock, and the notification path together
// for periodic re-evaluation.
type Engine struct {
	Loc      *time.Location
	Clock    Clock
	Tracker  *Tracker
	Notifier Notifier
}

// Tick resolves now/next at the current clock reading and fires any due
// notifications. Notification failures are logged and swallowed; a tick
// always produces a result.
func (e *Engine) Tick(sessions []session.Session) Result {
	m := MomentAt(e.Clock.Now(), e.Loc)
	result := Resolve(sessions, m)
	logger.IncrCounter("nownext.ticks")

	if e.Tracker != nil && e.Notifier != nil {
		for _, s := range e.Tracker.Due(sessions, m) {
			if err := e.Notifier.Notify(s); err != nil {
				logger.Error("notification delivery failed", logger.Fields{
					"session": s.ID,
				}, err)
			}
		}
	}
	return result
}

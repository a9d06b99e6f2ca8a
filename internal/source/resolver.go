package source

import (
	"context"
	"time"

	"github.com/pfrederiksen/festplan/internal/config"
	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/store"
)

// Resolver tries providers strictly in order and returns the first usable
// schedule. A successful non-cache load overwrites the single cache slot
// immediately so a later offline run can still bootstrap.
type Resolver struct {
	Providers []Provider
	Store     store.Store

	// Placeholder is the last-resort schedule when every source and the
	// cache fail. It is non-empty by policy: the planner always renders
	// something rather than an error state.
	Placeholder []session.Session
}

// NewResolver wires the standard provider chain from configuration:
// local JSON, then local CSV, then the remote sheet export.
func NewResolver(conf *config.Config, st store.Store) *Resolver {
	n := session.NewNormalizer(conf.DayDates, conf.ExpectedSessions)
	return &Resolver{
		Providers: []Provider{
			JSONFile(conf.LocalJSONPath, n),
			CSVFile(conf.LocalCSVPath, n),
			RemoteCSV(conf.RemoteCSVURL, n),
		},
		Store:       st,
		Placeholder: PlaceholderSchedule(conf),
	}
}

// PlaceholderSchedule builds the built-in single-session fallback on the
// festival's first known day.
func PlaceholderSchedule(conf *config.Config) []session.Session {
	s := session.Session{
		Day:       "Friday",
		Date:      conf.DayDates["friday"],
		StartTime: "08:30",
		EndTime:   "09:30",
		Venue:     "Main Hut",
		Title:     "Breakfast",
		Tags:      []string{"food"},
	}
	s.ID = session.GenerateID(s.Date, s.StartTime, s.Venue, s.Title, s.Speaker)
	return []session.Session{s}
}

// Resolve walks the provider chain and returns the first non-empty
// schedule. Attempts are strictly sequential: each completes before the
// next begins, so priority order is deterministic. Failures are logged,
// never returned: on total exhaustion the cached schedule is used, and
// failing that, the placeholder.
func (r *Resolver) Resolve(ctx context.Context) []session.Session {
	for _, p := range r.Providers {
		started := time.Now()
		sessions, err := p.Load(ctx)
		logger.RecordTiming("source."+p.Name, time.Since(started))

		if err != nil {
			logger.IncrCounter("source.failed")
			logger.Warn("schedule source failed", logger.Fields{
				"source": p.Name,
				"error":  err.Error(),
			})
			continue
		}
		if len(sessions) == 0 {
			logger.IncrCounter("source.empty")
			logger.Warn("schedule source yielded no sessions", logger.Fields{
				"source": p.Name,
			})
			continue
		}

		logger.Info("schedule loaded", logger.Fields{
			"source":   p.Name,
			"sessions": len(sessions),
		})
		if err := r.Store.Set(store.KeyScheduleCache, sessions); err != nil {
			logger.Warn("caching schedule failed", logger.Fields{"error": err.Error()})
		}
		return sessions
	}

	var cached []session.Session
	if found, err := r.Store.Get(store.KeyScheduleCache, &cached); err == nil && found && len(cached) > 0 {
		logger.Info("serving cached schedule", logger.Fields{"sessions": len(cached)})
		return cached
	}

	logger.Warn("all schedule sources exhausted, using placeholder", nil)
	return r.Placeholder
}

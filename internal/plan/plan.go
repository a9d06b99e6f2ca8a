package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/store"
)

// SortMode selects the total order for plan views and exports.
type SortMode string

const (
	// SortChrono orders by date then start time.
	SortChrono SortMode = "chrono"
	// SortByDay orders by day label, then start time.
	SortByDay SortMode = "day"
	// SortByStart orders by start time, then day label.
	SortByStart SortMode = "start"
)

// ParseSortMode validates a sort mode name.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortChrono:
		return SortChrono, nil
	case SortByDay:
		return SortByDay, nil
	case SortByStart:
		return SortByStart, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (chrono, day, or start)", s)
}

// Plan is the saved-ID set over a store. Every read tolerates a missing or
// unreadable key by acting as empty; every write is best-effort.
type Plan struct {
	store store.Store
}

// New creates a Plan over the given store.
func New(st store.Store) *Plan {
	return &Plan{store: st}
}

// IDs returns the saved session IDs in saved order.
func (p *Plan) IDs() []string {
	var ids []string
	if _, err := p.store.Get(store.KeySavedSessions, &ids); err != nil {
		logger.Warn("reading saved plan failed", logger.Fields{"error": err.Error()})
		return nil
	}
	return ids
}

// Has reports whether id is saved.
func (p *Plan) Has(id string) bool {
	for _, saved := range p.IDs() {
		if saved == id {
			return true
		}
	}
	return false
}

// Add saves id, reporting whether the set changed.
func (p *Plan) Add(id string) bool {
	if id == "" || p.Has(id) {
		return false
	}
	p.persist(append(p.IDs(), id))
	return true
}

// Remove drops id, reporting whether the set changed.
func (p *Plan) Remove(id string) bool {
	ids := p.IDs()
	for i, saved := range ids {
		if saved == id {
			p.persist(append(ids[:i], ids[i+1:]...))
			return true
		}
	}
	return false
}

// Toggle flips id's membership and reports whether it is now saved.
func (p *Plan) Toggle(id string) bool {
	if p.Remove(id) {
		return false
	}
	p.Add(id)
	return true
}

// Merge adds every ID not already saved (the shared-link side channel),
// returning how many were new.
func (p *Plan) Merge(ids []string) int {
	existing := p.IDs()
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}

	added := 0
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		existing = append(existing, id)
		added++
	}
	if added > 0 {
		p.persist(existing)
	}
	return added
}

func (p *Plan) persist(ids []string) {
	if err := p.store.Set(store.KeySavedSessions, ids); err != nil {
		logger.Warn("persisting saved plan failed", logger.Fields{"error": err.Error()})
	}
}

// SortMode returns the persisted sort preference, defaulting to chrono.
func (p *Plan) SortMode() SortMode {
	var raw string
	if _, err := p.store.Get(store.KeySortMode, &raw); err != nil {
		return SortChrono
	}
	mode, err := ParseSortMode(raw)
	if err != nil {
		return SortChrono
	}
	return mode
}

// SetSortMode persists the sort preference.
func (p *Plan) SetSortMode(mode SortMode) error {
	return p.store.Set(store.KeySortMode, string(mode))
}

// Join resolves the saved set against a schedule, silently dropping stale
// IDs, and returns the subset in the plan's active sort mode.
func (p *Plan) Join(schedule []session.Session) []session.Session {
	saved := make(map[string]bool)
	for _, id := range p.IDs() {
		saved[id] = true
	}

	var subset []session.Session
	for _, s := range schedule {
		if saved[s.ID] {
			subset = append(subset, s)
		}
	}

	Sort(subset, p.SortMode())
	return subset
}

// Sort orders sessions in place by the given mode. Every mode is a stable
// total order: ties fall through to the remaining fields and finally the ID.
func Sort(sessions []session.Session, mode SortMode) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		switch mode {
		case SortByDay:
			if !strings.EqualFold(a.Day, b.Day) {
				return strings.ToLower(a.Day) < strings.ToLower(b.Day)
			}
			if a.StartTime != b.StartTime {
				return a.StartTime < b.StartTime
			}
		case SortByStart:
			if a.StartTime != b.StartTime {
				return a.StartTime < b.StartTime
			}
			if !strings.EqualFold(a.Day, b.Day) {
				return strings.ToLower(a.Day) < strings.ToLower(b.Day)
			}
		default: // SortChrono
			if a.SortKey() != b.SortKey() {
				return a.SortKey() < b.SortKey()
			}
		}
		return a.ID < b.ID
	})
}

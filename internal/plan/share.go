package plan

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/festplan/internal/session"
)

// Deep-link query parameter names.
const (
	paramPlan  = "plan"
	paramDay   = "day"
	paramVenue = "venue"
	paramTag   = "tag"
	paramQuery = "q"
)

// EncodeLink builds a shareable deep link: the saved-ID set as one
// comma-joined percent-encoded parameter, plus optional filter-state
// parameters so a filtered view is shareable too.
func EncodeLink(base string, ids []string, f session.Filter) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	q := u.Query()
	if len(ids) > 0 {
		q.Set(paramPlan, strings.Join(ids, ","))
	}
	if f.Day != "" {
		q.Set(paramDay, f.Day)
	}
	if f.Venue != "" {
		q.Set(paramVenue, f.Venue)
	}
	for _, tag := range f.Tags {
		q.Add(paramTag, tag)
	}
	if f.Query != "" {
		q.Set(paramQuery, f.Query)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DecodeLink reads a deep link back against the current schedule. IDs not
// present in the schedule are silently dropped, not an error; the returned
// slice holds the surviving IDs in link order without duplicates.
func DecodeLink(raw string, schedule []session.Session) ([]string, session.Filter, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, session.Filter{}, fmt.Errorf("parsing link: %w", err)
	}
	q := u.Query()

	known := make(map[string]bool, len(schedule))
	for _, s := range schedule {
		known[s.ID] = true
	}

	var ids []string
	seen := make(map[string]bool)
	for _, id := range strings.Split(q.Get(paramPlan), ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] || !known[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	f := session.Filter{
		Day:   q.Get(paramDay),
		Venue: q.Get(paramVenue),
		Tags:  q[paramTag],
		Query: q.Get(paramQuery),
	}

	return ids, f, nil
}

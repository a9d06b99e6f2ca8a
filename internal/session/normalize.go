package session

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pfrederiksen/festplan/internal/logger"
)

// Diagnostic records why a raw row was excluded during normalization.
// Row is the 1-based index of the data row in its source.
type Diagnostic struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Normalizer validates and canonicalizes raw schedule rows into Sessions.
// Normalization never fails: invalid rows are dropped and reported as
// diagnostics.
type Normalizer struct {
	// DayDates maps case-folded day labels to ISO dates for the festival's
	// known days. A day outside the table with no explicit date yields an
	// empty date, which is passed through.
	DayDates map[string]string

	// ExpectedCount, when positive, triggers a non-fatal drift warning if
	// the valid session count differs. It never affects behavior.
	ExpectedCount int
}

// NewNormalizer creates a Normalizer with the given day→date table.
func NewNormalizer(dayDates map[string]string, expectedCount int) *Normalizer {
	folded := make(map[string]string, len(dayDates))
	for day, date := range dayDates {
		folded[strings.ToLower(strings.TrimSpace(day))] = date
	}
	return &Normalizer{DayDates: folded, ExpectedCount: expectedCount}
}

var headerSpace = regexp.MustCompile(`\s+`)

// CanonicalKey folds a header name to the canonical lowercase-with-underscore
// form, so "Start Time" and "start_time" are equivalent.
func CanonicalKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return headerSpace.ReplaceAllString(name, "_")
}

// FromTable normalizes a parsed table: the first-row header names are
// canonicalized, every following row becomes a record, and the records go
// through the same validation as FromRecords. Missing cells are empty.
func (n *Normalizer) FromTable(rows [][]string) ([]Session, []Diagnostic) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CanonicalKey(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, key := range headers {
			if i < len(row) {
				record[key] = row[i]
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}

	return n.FromRecords(records)
}

// FromRecords normalizes record-shaped rows (the structured-JSON source
// shape). Keys are canonicalized before lookup. The result is sorted
// ascending by date+start time and carries deterministic IDs.
func (n *Normalizer) FromRecords(records []map[string]string) ([]Session, []Diagnostic) {
	var sessions []Session
	var diags []Diagnostic

	for i, record := range records {
		s, diag, ok := n.normalizeRecord(i+1, record)
		if !ok {
			diags = append(diags, diag)
			continue
		}
		sessions = append(sessions, s)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SortKey() < sessions[j].SortKey()
	})

	for _, d := range diags {
		logger.Warn("row dropped during normalization", logger.Fields{
			"row":    d.Row,
			"reason": d.Reason,
		})
	}
	if n.ExpectedCount > 0 && len(sessions) != n.ExpectedCount {
		logger.Warn("session count drift", logger.Fields{
			"expected": n.ExpectedCount,
			"actual":   len(sessions),
		})
	}

	return sessions, diags
}

// normalizeRecord validates and canonicalizes one record.
func (n *Normalizer) normalizeRecord(row int, record map[string]string) (Session, Diagnostic, bool) {
	get := func(key string) string {
		return strings.TrimSpace(record[key])
	}

	day := get("day")
	start := get("start_time")
	end := get("end_time")
	venue := get("venue")

	switch {
	case day == "":
		return Session{}, Diagnostic{Row: row, Reason: "missing day"}, false
	case start == "":
		return Session{}, Diagnostic{Row: row, Reason: "missing start_time"}, false
	case venue == "":
		return Session{}, Diagnostic{Row: row, Reason: "missing venue"}, false
	case !ValidTime(start):
		return Session{}, Diagnostic{Row: row, Reason: fmt.Sprintf("invalid start_time %q", start)}, false
	case end != "" && !ValidTime(end):
		return Session{}, Diagnostic{Row: row, Reason: fmt.Sprintf("invalid end_time %q", end)}, false
	}

	title := get("title")
	if title == "" {
		title = DefaultTitle
	}

	date := get("date")
	if date == "" {
		date = n.DayDates[strings.ToLower(day)]
	}

	speaker := get("speaker")

	s := Session{
		Day:       day,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Venue:     venue,
		Title:     title,
		Speaker:   speaker,
		Tags:      collectTags(record),
	}
	s.ID = GenerateID(s.Date, s.StartTime, s.Venue, s.Title, s.Speaker)

	return s, Diagnostic{}, true
}

// collectTags gathers category labels from either the split tag1/tag2 columns
// or the earlier pipe-joined tags column. Tags are lowercased and deduped.
func collectTags(record map[string]string) []string {
	var raw []string
	if t1, t2 := record["tag1"], record["tag2"]; t1 != "" || t2 != "" {
		raw = []string{t1, t2}
	} else {
		raw = strings.Split(record["tags"], "|")
	}

	var tags []string
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

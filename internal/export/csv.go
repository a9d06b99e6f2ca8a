package export

import (
	"strings"

	"github.com/pfrederiksen/festplan/internal/session"
)

var csvHeader = []string{"Title", "Time", "Venue", "Day", "Tags"}

// CSV renders sessions as comma-separated values, header row first. Every
// value is double-quoted with internal quotes doubled, so the output
// re-parses exactly with the tabular parser regardless of commas or quotes
// in titles. Row order follows the input (the caller applies the plan's
// sort mode).
func CSV(sessions []session.Session) string {
	var out strings.Builder

	writeRow(&out, csvHeader)
	for _, s := range sessions {
		writeRow(&out, []string{
			s.Title,
			s.TimeRange(),
			s.Venue,
			s.Day,
			s.TagString(),
		})
	}

	return out.String()
}

func writeRow(out *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString(quote(f))
	}
	out.WriteString("\n")
}

// quote wraps a value in double quotes, doubling internal quotes.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/festplan/internal/nownext"
	"github.com/pfrederiksen/festplan/internal/session"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScheduleOutput contains a schedule view to be rendered.
type ScheduleOutput struct {
	Label    string            `json:"label,omitempty"`
	Total    int               `json:"total"`
	Sessions []session.Session `json:"sessions"`
	Saved    map[string]bool   `json:"-"`
	Filtered bool              `json:"filtered,omitempty"`
}

// WriteSchedule writes the schedule view in the given format.
func WriteSchedule(w io.Writer, result *ScheduleOutput, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}
	return writeScheduleText(w, result)
}

func writeScheduleText(w io.Writer, result *ScheduleOutput) error {
	if result.Label != "" {
		fmt.Fprintf(w, "%s\n\n", result.Label)
	}

	if result.Filtered {
		fmt.Fprintf(w, "Showing %d of %d sessions\n", len(result.Sessions), result.Total)
	}
	if len(result.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions match.")
		return nil
	}

	lastDay := ""
	for _, s := range result.Sessions {
		if s.Day != lastDay {
			fmt.Fprintf(w, "\n%s", s.Day)
			if s.Date != "" {
				fmt.Fprintf(w, " (%s)", s.Date)
			}
			fmt.Fprintln(w, ":")
			lastDay = s.Day
		}

		marker := " "
		if result.Saved[s.ID] {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-13s %s — %s", marker, s.TimeRange(), s.Title, s.Venue)
		if s.Speaker != "" {
			fmt.Fprintf(w, " (%s)", s.Speaker)
		}
		if len(s.Tags) > 0 {
			fmt.Fprintf(w, " [%s]", s.TagString())
		}
		fmt.Fprintln(w)
	}
	return nil
}

// NowOutput pairs the resolved IDs with their sessions for rendering.
type NowOutput struct {
	Result nownext.Result   `json:"result"`
	Now    *session.Session `json:"now,omitempty"`
	Next   *session.Session `json:"next,omitempty"`
}

// NewNowOutput joins a now/next result against the schedule.
func NewNowOutput(result nownext.Result, schedule []session.Session) *NowOutput {
	out := &NowOutput{Result: result}
	for i := range schedule {
		s := schedule[i]
		if s.ID == result.NowID && result.NowID != "" {
			out.Now = &s
		}
		if s.ID == result.NextID && result.NextID != "" {
			out.Next = &s
		}
	}
	return out
}

// WriteNow writes a now/next view in the given format.
func WriteNow(w io.Writer, out *NowOutput, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, out)
	}

	if out.Now == nil && out.Next == nil {
		fmt.Fprintln(w, "No sessions scheduled for today.")
		return nil
	}
	if out.Now != nil {
		fmt.Fprintf(w, "Now:  %s at %s in %s\n", out.Now.Title, out.Now.StartTime, out.Now.Venue)
	}
	if out.Next != nil {
		fmt.Fprintf(w, "Next: %s at %s in %s\n", out.Next.Title, out.Next.StartTime, out.Next.Venue)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

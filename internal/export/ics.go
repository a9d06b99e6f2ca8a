package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/festplan/internal/session"
)

// uidSuffix namespaces calendar UIDs derived from session IDs.
const uidSuffix = "@festplan"

// ICS generates an iCalendar document for the given sessions, one VEVENT
// per session. Start and end are local wall-clock times tagged with the
// festival timezone identifier; the end boundary of a session with no end
// time is start plus one hour, clamped to the last minute of the day.
func ICS(sessions []session.Session, tzid string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//festplan//Guest Schedule//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, s := range sessions {
		writeEvent(&ics, s, tzid)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, s session.Session, tzid string) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s%s\r\n", s.ID, uidSuffix))
	ics.WriteString(fmt.Sprintf("DTSTART;TZID=%s:%s\r\n", tzid, icsDateTime(s.Date, s.StartTime)))
	ics.WriteString(fmt.Sprintf("DTEND;TZID=%s:%s\r\n", tzid, icsDateTime(s.Date, EndBoundary(s))))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(s.Title)))

	description := ""
	if s.Speaker != "" {
		description = fmt.Sprintf("Speaker: %s", s.Speaker)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	location := s.Venue
	if location == "" {
		location = "Festival Venue"
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if len(s.Tags) > 0 {
		ics.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", strings.Join(s.Tags, ",")))
	}

	ics.WriteString("END:VEVENT\r\n")
}

// EndBoundary returns the session's effective end time: the end time when
// present, otherwise one hour after the start clamped to 23:59.
func EndBoundary(s session.Session) string {
	if s.EndTime != "" {
		return s.EndTime
	}
	if !session.ValidTime(s.StartTime) {
		return "23:59"
	}
	hour, err := strconv.Atoi(s.StartTime[:2])
	if err != nil || hour >= 23 {
		return "23:59"
	}
	return fmt.Sprintf("%02d:%s", hour+1, s.StartTime[3:])
}

// icsDateTime renders a date and HH:MM time as an iCalendar local datetime.
func icsDateTime(date, hhmm string) string {
	return strings.ReplaceAll(date, "-", "") + "T" + strings.ReplaceAll(hhmm, ":", "") + "00"
}

// escapeICS escapes text content according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

const slotDuration = 30 * time.Minute

// ExportICal renders an event's meetings as an iCalendar document so
// attendees can pull the schedule into their own calendar apps.
func ExportICal(eventID string, meetings []*entities.Meeting) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//twgdev//sigma-scheduler//EN")

	now := time.Now().UTC()

	for _, m := range meetings {
		start, err := time.Parse("2006-01-02 15:04", m.Date+" "+m.TimeSlot)
		if err != nil {
			return "", fmt.Errorf("meeting %s has unparseable slot %s %s: %w", m.ID, m.Date, m.TimeSlot, err)
		}

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", m.ID, eventID))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, now)
		ev.Props.SetDateTime(ical.PropDateTimeStart, start)
		ev.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(slotDuration))
		ev.Props.SetText(ical.PropSummary, summaryFor(m))
		ev.Props.SetText(ical.PropStatus, icalStatus(m.Status))
		if m.Location != "" {
			ev.Props.SetText(ical.PropLocation, m.Location)
		}
		if m.Agenda != "" {
			ev.Props.SetText(ical.PropDescription, m.Agenda)
		}

		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

func summaryFor(m *entities.Meeting) string {
	switch {
	case m.CompanyName != "" && m.Partner != "":
		return fmt.Sprintf("%s / %s", m.CompanyName, m.Partner)
	case m.CompanyName != "":
		return m.CompanyName
	case m.TWGPerson != "":
		return fmt.Sprintf("Meeting with %s", m.TWGPerson)
	default:
		return "Meeting"
	}
}

func icalStatus(s entities.MeetingStatus) string {
	if s == entities.MeetingStatusConfirmed {
		return "CONFIRMED"
	}
	return "TENTATIVE"
}

package calendar

import (
	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

// Slot is one row of the day grid: a fixed time bucket and the meeting
// occupying it, if any.
type Slot struct {
	TimeSlot string            `json:"time_slot"`
	Meeting  *entities.Meeting `json:"meeting,omitempty"`
}

// DayGrid is the schedule view for one event day
type DayGrid struct {
	Date        string `json:"date"`
	DateDisplay string `json:"date_display"`
	Slots       []Slot `json:"slots"`
}

// BuildDayGrid computes the slot grid for one date. Each slot holds at most
// one meeting; when two records collide on a slot the earlier one in the
// (already date/slot ordered) input wins, so a duplicate never doubles a row.
// A non-empty query keeps only slots whose meeting matches; empty slots are
// hidden entirely rather than shown as bookable.
func BuildDayGrid(meetings []*entities.Meeting, date, query string) DayGrid {
	grid := DayGrid{
		Date:        date,
		DateDisplay: entities.FormatDateDisplay(date),
	}

	filtering := query != ""

	for _, slot := range entities.TimeSlots() {
		var occupant *entities.Meeting
		for _, m := range meetings {
			if m.OccupiesSlot(date, slot) {
				occupant = m
				break
			}
		}

		if filtering {
			if occupant == nil || !occupant.MatchesSearch(query) {
				continue
			}
		}

		grid.Slots = append(grid.Slots, Slot{TimeSlot: slot, Meeting: occupant})
	}

	return grid
}

// FilterMeetings returns the meetings matching a free-text query across
// company, attendee and partner names
func FilterMeetings(meetings []*entities.Meeting, query string) []*entities.Meeting {
	if query == "" {
		return meetings
	}
	var out []*entities.Meeting
	for _, m := range meetings {
		if m.MatchesSearch(query) {
			out = append(out, m)
		}
	}
	return out
}

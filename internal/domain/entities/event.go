package entities

import (
	"fmt"
	"time"
)

// DefaultEventID is the active trade event when none is configured
const DefaultEventID = "sigma-rome-2025"

// Schedule grid boundaries: slots run 10:00 through 15:30 in 30-minute steps.
const (
	firstSlotHour = 10
	lastSlot      = "15:30"
)

// EventDates returns the configured days of the event, in order
func EventDates() []string {
	return []string{"2025-11-03", "2025-11-04", "2025-11-05", "2025-11-06"}
}

// TimeSlots returns the fixed slot grid for one event day
func TimeSlots() []string {
	var slots []string
	for hour := firstSlotHour; hour < 16; hour++ {
		for _, minute := range []int{0, 30} {
			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			if slot <= lastSlot {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}

// IsEventDate checks if the date is one of the event days
func IsEventDate(date string) bool {
	for _, d := range EventDates() {
		if d == date {
			return true
		}
	}
	return false
}

// IsTimeSlot checks if the slot is part of the grid
func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// FormatDateDisplay renders an ISO date as "Nov 3 (Mon)" for grid headers
func FormatDateDisplay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d (%s)", t.Format("Jan"), t.Day(), t.Format("Mon"))
}

// SampleMeetings returns the built-in records served in mock mode. Callers
// receive fresh copies so mutating a result never leaks between fetches.
func SampleMeetings() []*Meeting {
	samples := []Meeting{
		{
			ID:          "1",
			EventID:     DefaultEventID,
			Date:        "2025-11-03",
			TimeSlot:    "10:00",
			Status:      MeetingStatusConfirmed,
			TWGPerson:   "John Smith",
			CompanyName: "Tech Solutions Inc",
			Partner:     "Sarah Johnson",
			Phone:       "+1 555-0123",
			Location:    "Conference Room A",
			Agenda:      "Discuss partnership opportunities and Q4 strategy",
		},
		{
			ID:          "2",
			EventID:     DefaultEventID,
			Date:        "2025-11-03",
			TimeSlot:    "11:30",
			Status:      MeetingStatusInProcess,
			TWGPerson:   "Emma Davis",
			CompanyName: "Global Marketing Co",
			Partner:     "Michael Chen",
			Phone:       "+1 555-0456",
			Location:    "Meeting Room B",
			Agenda:      "Review marketing campaign results",
		},
		{
			ID:          "3",
			EventID:     DefaultEventID,
			Date:        "2025-11-04",
			TimeSlot:    "14:00",
			Status:      MeetingStatusNotConfirmed,
			TWGPerson:   "Robert Brown",
			CompanyName: "Innovation Labs",
			Partner:     "Lisa Anderson",
			Phone:       "+1 555-0789",
			Location:    "Board Room",
			Agenda:      "Product demo and technical discussion",
		},
		{
			ID:          "4",
			EventID:     DefaultEventID,
			Date:        "2025-11-05",
			TimeSlot:    "10:30",
			Status:      MeetingStatusConfirmed,
			TWGPerson:   "Alice Wilson",
			CompanyName: "Future Ventures",
			Partner:     "David Martinez",
			Phone:       "+1 555-0321",
			Location:    "Executive Suite",
			Agenda:      "Investment opportunities and growth strategies",
		},
	}

	out := make([]*Meeting, len(samples))
	for i := range samples {
		m := samples[i]
		out[i] = &m
	}
	return out
}

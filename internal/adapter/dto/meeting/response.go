package meeting

import "time"

// MeetingResponse is the wire form of a meeting record
type MeetingResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"time_slot"`
	Status         string    `json:"status"`
	TWGPerson      string    `json:"twg_person"`
	CompanyName    string    `json:"company_name"`
	Partner        string    `json:"partner"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	Agenda         string    `json:"agenda"`
	MeetingSummary *string   `json:"meeting_summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MeetingListResponse wraps a list of meetings. Source tells the client
// whether it is looking at store data or the built-in samples.
type MeetingListResponse struct {
	Meetings []*MeetingResponse `json:"meetings"`
	Total    int                `json:"total"`
	Source   string             `json:"source"`
}

// SlotResponse is one row of the day grid
type SlotResponse struct {
	TimeSlot string           `json:"time_slot"`
	Meeting  *MeetingResponse `json:"meeting,omitempty"`
}

// CalendarResponse is the schedule view for one event day
type CalendarResponse struct {
	Date        string         `json:"date"`
	DateDisplay string         `json:"date_display"`
	EventDates  []string       `json:"event_dates"`
	Slots       []SlotResponse `json:"slots"`
}

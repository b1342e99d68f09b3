package entities

import (
	"strings"
	"time"
)

// MeetingStatus represents the confirmation state of a meeting
type MeetingStatus string

const (
	MeetingStatusConfirmed    MeetingStatus = "confirmed"
	MeetingStatusNotConfirmed MeetingStatus = "not_confirmed"
	MeetingStatusInProcess    MeetingStatus = "in_process"
)

// IsValid checks if the status is one of the known values
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusConfirmed, MeetingStatusNotConfirmed, MeetingStatusInProcess:
		return true
	}
	return false
}

// Meeting represents one booked slot in the trade-event schedule.
// Dates and time slots are stored as the wire strings (ISO date, HH:MM)
// so lexicographic ordering matches chronological ordering.
type Meeting struct {
	ID          string        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID     string        `gorm:"type:varchar(100);not null;index" json:"event_id"`
	Date        string        `gorm:"type:varchar(10);not null" json:"date"`
	TimeSlot    string        `gorm:"column:time_slot;type:varchar(5);not null" json:"time_slot"`
	Status      MeetingStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	TWGPerson   string        `gorm:"column:twg_person;type:varchar(255)" json:"twg_person"`
	CompanyName string        `gorm:"type:varchar(255)" json:"company_name"`
	Partner     string        `gorm:"type:varchar(255)" json:"partner"`
	Phone       string        `gorm:"type:varchar(50)" json:"phone"`
	Location    string        `gorm:"type:varchar(255)" json:"location"`
	Agenda      string        `gorm:"type:text" json:"agenda"`
	// MeetingSummary lives in a column added by a later migration and may be
	// absent on older deployments; keep it a pointer so writes can omit it.
	MeetingSummary *string   `gorm:"type:text" json:"meeting_summary,omitempty"`
	CreatedAt      time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// OccupiesSlot checks if the meeting sits in the given (date, time_slot) pair
func (m *Meeting) OccupiesSlot(date, timeSlot string) bool {
	return m.Date == date && m.TimeSlot == timeSlot
}

// MatchesSearch performs a case-insensitive substring match across the
// company, attendee and partner names.
func (m *Meeting) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.CompanyName), q) ||
		strings.Contains(strings.ToLower(m.TWGPerson), q) ||
		strings.Contains(strings.ToLower(m.Partner), q)
}

// IsConfirmed checks if the meeting is confirmed
func (m *Meeting) IsConfirmed() bool {
	return m.Status == MeetingStatusConfirmed
}

package presenter

import (
	"github.com/twgdev/sigma-scheduler/internal/adapter/dto/meeting"
	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/usecase/calendar"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meeting.MeetingResponse{
		ID:             m.ID,
		EventID:        m.EventID,
		Date:           m.Date,
		TimeSlot:       m.TimeSlot,
		Status:         string(m.Status),
		TWGPerson:      m.TWGPerson,
		CompanyName:    m.CompanyName,
		Partner:        m.Partner,
		Phone:          m.Phone,
		Location:       m.Location,
		Agenda:         m.Agenda,
		MeetingSummary: m.MeetingSummary,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of Meeting entities to a list DTO
func ToMeetingListResponse(meetings []*entities.Meeting, source string) *meeting.MeetingListResponse {
	responses := make([]*meeting.MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}

	return &meeting.MeetingListResponse{
		Meetings: responses,
		Total:    len(responses),
		Source:   source,
	}
}

// ToCalendarResponse converts a day grid to its wire form
func ToCalendarResponse(grid calendar.DayGrid) *meeting.CalendarResponse {
	slots := make([]meeting.SlotResponse, len(grid.Slots))
	for i, s := range grid.Slots {
		slots[i] = meeting.SlotResponse{
			TimeSlot: s.TimeSlot,
			Meeting:  ToMeetingResponse(s.Meeting),
		}
	}

	return &meeting.CalendarResponse{
		Date:        grid.Date,
		DateDisplay: grid.DateDisplay,
		EventDates:  entities.EventDates(),
		Slots:       slots,
	}
}

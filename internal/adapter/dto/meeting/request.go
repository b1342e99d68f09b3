package meeting

// CreateMeetingRequest represents the request to book a slot. The event id
// is server-assigned, never client-supplied.
type CreateMeetingRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot       string  `json:"time_slot" validate:"required,halfhour"`
	Status         string  `json:"status" validate:"omitempty,oneof=confirmed not_confirmed in_process"`
	TWGPerson      string  `json:"twg_person" validate:"omitempty,max=255"`
	CompanyName    string  `json:"company_name" validate:"omitempty,max=255"`
	Partner        string  `json:"partner" validate:"omitempty,max=255"`
	Phone          string  `json:"phone" validate:"omitempty,max=50"`
	Location       string  `json:"location" validate:"omitempty,max=255"`
	Agenda         string  `json:"agenda"`
	MeetingSummary *string `json:"meeting_summary,omitempty"`
}

// UpdateMeetingRequest represents a partial update; omitted fields are kept
type UpdateMeetingRequest struct {
	Date           *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot       *string `json:"time_slot,omitempty" validate:"omitempty,halfhour"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=confirmed not_confirmed in_process"`
	TWGPerson      *string `json:"twg_person,omitempty" validate:"omitempty,max=255"`
	CompanyName    *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
	Partner        *string `json:"partner,omitempty" validate:"omitempty,max=255"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Agenda         *string `json:"agenda,omitempty"`
	MeetingSummary *string `json:"meeting_summary,omitempty"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	EventID string `query:"event_id"`
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Search  string `query:"q"`
}

// CalendarRequest represents query parameters for the day grid
type CalendarRequest struct {
	EventID string `query:"event_id"`
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Search  string `query:"q"`
}

package meeting

import (
	"context"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/realtime"
)

// Service defines the interface for the meeting data-access layer.
// Every operation is gated by the same configured-store predicate: when no
// real store is present, reads serve the built-in sample data and writes
// echo their input without persistence.
type Service interface {
	// FetchMeetings retrieves all meetings for an event, sorted by date
	// ascending then time_slot ascending
	FetchMeetings(ctx context.Context, eventID string) ([]*entities.Meeting, error)

	// CreateMeeting inserts a new meeting under the active event and
	// returns the stored record including the server-assigned id
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// UpdateMeeting applies a partial field replacement by id and returns
	// the updated record
	UpdateMeeting(ctx context.Context, id string, input UpdateMeetingInput) (*entities.Meeting, error)

	// DeleteMeeting removes a meeting by id
	DeleteMeeting(ctx context.Context, id string) error

	// SubscribeToMeetings registers a change-event listener scoped to one
	// event. The handle is nil when the store is unconfigured.
	SubscribeToMeetings(eventID string, callback func(realtime.ChangeEvent)) (realtime.Subscription, error)

	// StoreConfigured reports whether a real record store backs this service
	StoreConfigured() bool

	// EventID returns the active trade event identifier
	EventID() string
}

// ChangeBus is the slice of the realtime bus the service needs
type ChangeBus interface {
	Publish(ctx context.Context, ev realtime.ChangeEvent) error
	Subscribe(eventID string, callback func(realtime.ChangeEvent)) (realtime.Subscription, error)
}

// CreateMeetingInput represents input for creating a meeting. The event id
// is never client-supplied; the service stamps the active event.
type CreateMeetingInput struct {
	Date           string
	TimeSlot       string
	Status         entities.MeetingStatus
	TWGPerson      string
	CompanyName    string
	Partner        string
	Phone          string
	Location       string
	Agenda         string
	MeetingSummary *string
}

// UpdateMeetingInput represents a partial update; nil fields are left as-is
type UpdateMeetingInput struct {
	Date           *string
	TimeSlot       *string
	Status         *entities.MeetingStatus
	TWGPerson      *string
	CompanyName    *string
	Partner        *string
	Phone          *string
	Location       *string
	Agenda         *string
	MeetingSummary *string
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// Ensure the redis bus satisfies ChangeBus
var _ ChangeBus = (*realtime.Bus)(nil)

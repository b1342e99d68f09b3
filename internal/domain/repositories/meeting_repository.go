package repositories

import (
	"context"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create inserts a new meeting and fills the server-assigned id
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)

	// FindBySlot retrieves the meeting occupying a (event, date, time_slot)
	// triple, or nil when the slot is free
	FindBySlot(ctx context.Context, eventID, date, timeSlot string) (*entities.Meeting, error)

	// ListByEvent retrieves all meetings for an event, ordered by
	// date ascending then time_slot ascending
	ListByEvent(ctx context.Context, eventID string) ([]*entities.Meeting, error)

	// Update persists the full field set of an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes a meeting by id
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindBySlot retrieves the meeting occupying a slot, nil when the slot is free
func (r *meetingRepository) FindBySlot(ctx context.Context, eventID, date, timeSlot string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND date = ? AND time_slot = ?", eventID, date, timeSlot).
		First(&meeting).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// ListByEvent retrieves all meetings for an event ordered by date then slot
func (r *meetingRepository) ListByEvent(ctx context.Context, eventID string) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("date ASC").
		Order("time_slot ASC").
		Find(&meetings).Error
	return meetings, err
}

// Update persists the full field set of an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete removes a meeting by id
func (r *meetingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}

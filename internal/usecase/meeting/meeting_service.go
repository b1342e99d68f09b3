package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/twgdev/sigma-scheduler/errors"
	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/domain/repositories"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/cache"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/realtime"
)

const listCacheTTL = 15 * time.Second

// Columns a write may reference that older deployments lack. Checked against
// driver error text because the hosted store offers no schema introspection
// to this client; see ErrSchemaMismatch.
var optionalColumns = []string{"meeting_summary"}

// MeetingService is the data-access layer over the meetings table. With a
// configured store it proxies to the repository and fans change events out
// on the bus; without one it serves the built-in sample records.
type MeetingService struct {
	repo       repositories.MeetingRepository
	bus        ChangeBus
	cache      *cache.MemoryStore
	logger     *zap.Logger
	eventID    string
	configured bool
}

// NewMeetingService creates a new meeting service. repo and bus may be nil
// when configured is false.
func NewMeetingService(
	repo repositories.MeetingRepository,
	bus ChangeBus,
	listCache *cache.MemoryStore,
	logger *zap.Logger,
	eventID string,
	configured bool,
) *MeetingService {
	if eventID == "" {
		eventID = entities.DefaultEventID
	}
	return &MeetingService{
		repo:       repo,
		bus:        bus,
		cache:      listCache,
		logger:     logger,
		eventID:    eventID,
		configured: configured,
	}
}

// StoreConfigured reports whether a real record store backs this service
func (s *MeetingService) StoreConfigured() bool {
	return s.configured
}

// EventID returns the active trade event identifier
func (s *MeetingService) EventID() string {
	return s.eventID
}

// FetchMeetings retrieves all meetings for an event, sorted by date then slot
func (s *MeetingService) FetchMeetings(ctx context.Context, eventID string) ([]*entities.Meeting, error) {
	if eventID == "" {
		eventID = s.eventID
	}

	if !s.configured {
		samples := entities.SampleMeetings()
		sortMeetings(samples)
		return samples, nil
	}

	if cached, ok := s.cachedList(eventID); ok {
		return cached, nil
	}

	meetings, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("fetch_meetings", err)
	}

	s.storeList(eventID, meetings)
	return meetings, nil
}

// CreateMeeting inserts a new meeting under the active event
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	if input.Status == "" {
		input.Status = entities.MeetingStatusConfirmed
	}
	if err := s.validateSlot(input.Date, input.TimeSlot, input.Status); err != nil {
		return nil, err
	}

	m := &entities.Meeting{
		EventID:        s.eventID,
		Date:           input.Date,
		TimeSlot:       input.TimeSlot,
		Status:         input.Status,
		TWGPerson:      input.TWGPerson,
		CompanyName:    input.CompanyName,
		Partner:        input.Partner,
		Phone:          input.Phone,
		Location:       input.Location,
		Agenda:         input.Agenda,
		MeetingSummary: input.MeetingSummary,
	}

	if !s.configured {
		// No server round trip: synthesize a local id and echo the input
		m.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
		return m, nil
	}

	// Best-effort duplicate guard: the store itself also carries a partial
	// unique index on (event_id, date, time_slot)
	existing, err := s.repo.FindBySlot(ctx, s.eventID, input.Date, input.TimeSlot)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("check_slot", err)
	}
	if existing != nil {
		return nil, apperrors.ErrSlotAlreadyBooked(input.Date, input.TimeSlot)
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, s.wrapWriteError("create_meeting", err)
	}

	s.invalidate(s.eventID)
	s.publish(ctx, realtime.ChangeInsert, m.ID, m)

	return m, nil
}

// UpdateMeeting applies a partial field replacement by id
func (s *MeetingService) UpdateMeeting(ctx context.Context, id string, input UpdateMeetingInput) (*entities.Meeting, error) {
	if id == "" {
		return nil, apperrors.ErrInvalidArgument("meeting id is required")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown status %q", *input.Status))
	}

	if !s.configured {
		// Echo the merged input without persistence
		m := &entities.Meeting{ID: id, EventID: s.eventID}
		applyUpdate(m, input)
		return m, nil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMeetingNotFound(id)
		}
		return nil, apperrors.ErrDBQueryFailed("find_meeting", err)
	}

	applyUpdate(m, input)

	if !entities.IsEventDate(m.Date) {
		return nil, apperrors.ErrInvalidEventDate(m.Date)
	}
	if !entities.IsTimeSlot(m.TimeSlot) {
		return nil, apperrors.ErrInvalidTimeSlot(m.TimeSlot)
	}

	// Moving a meeting must not land on an occupied slot
	occupant, err := s.repo.FindBySlot(ctx, m.EventID, m.Date, m.TimeSlot)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("check_slot", err)
	}
	if occupant != nil && occupant.ID != m.ID {
		return nil, apperrors.ErrSlotAlreadyBooked(m.Date, m.TimeSlot)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, s.wrapWriteError("update_meeting", err)
	}

	s.invalidate(m.EventID)
	s.publish(ctx, realtime.ChangeUpdate, m.ID, m)

	return m, nil
}

// DeleteMeeting removes a meeting by id. Deleting an id that is already
// gone is not an error, matching the store's own delete semantics.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrInvalidArgument("meeting id is required")
	}

	if !s.configured {
		return nil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.ErrDBQueryFailed("find_meeting", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQueryFailed("delete_meeting", err)
	}

	s.invalidate(m.EventID)
	s.publish(ctx, realtime.ChangeDelete, id, nil)

	return nil
}

// SubscribeToMeetings registers a change-event listener for one event.
// Returns a nil handle in mock mode: with no store there is nothing to
// notify about.
func (s *MeetingService) SubscribeToMeetings(eventID string, callback func(realtime.ChangeEvent)) (realtime.Subscription, error) {
	if !s.configured {
		return nil, nil
	}
	if eventID == "" {
		eventID = s.eventID
	}

	// Drop the cached list before the caller reacts so their reload sees
	// fresh data
	wrapped := func(ev realtime.ChangeEvent) {
		s.invalidate(eventID)
		callback(ev)
	}

	sub, err := s.bus.Subscribe(eventID, wrapped)
	if err != nil {
		return nil, apperrors.ErrRealtimeFailed("subscribe", err)
	}
	return sub, nil
}

func (s *MeetingService) validateSlot(date, timeSlot string, status entities.MeetingStatus) error {
	if !entities.IsEventDate(date) {
		return apperrors.ErrInvalidEventDate(date)
	}
	if !entities.IsTimeSlot(timeSlot) {
		return apperrors.ErrInvalidTimeSlot(timeSlot)
	}
	if !status.IsValid() {
		return apperrors.ErrInvalidArgument(fmt.Sprintf("unknown status %q", status))
	}
	return nil
}

// wrapWriteError classifies a failed insert/update. A missing optional
// column is recognized by its name appearing in the driver error text.
func (s *MeetingService) wrapWriteError(operation string, err error) error {
	msg := err.Error()
	for _, col := range optionalColumns {
		if strings.Contains(msg, col) {
			return apperrors.ErrSchemaMismatch(col, err)
		}
	}
	return apperrors.ErrDBQueryFailed(operation, err)
}

func (s *MeetingService) publish(ctx context.Context, typ realtime.ChangeType, meetingID string, m *entities.Meeting) {
	if s.bus == nil {
		return
	}
	ev := realtime.ChangeEvent{
		Type:       typ,
		EventID:    s.eventID,
		MeetingID:  meetingID,
		Meeting:    m,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		// The write already succeeded; viewers reconcile on their next reload
		if s.logger != nil {
			s.logger.Warn("meeting.publish_failed",
				zap.String("type", string(typ)),
				zap.String("meeting_id", meetingID),
				zap.Error(err),
			)
		}
	}
}

func (s *MeetingService) cachedList(eventID string) ([]*entities.Meeting, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(listCacheKey(eventID))
	if !ok {
		return nil, false
	}
	var meetings []*entities.Meeting
	if err := json.Unmarshal([]byte(raw), &meetings); err != nil {
		s.cache.Delete(listCacheKey(eventID))
		return nil, false
	}
	return meetings, true
}

func (s *MeetingService) storeList(eventID string, meetings []*entities.Meeting) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(meetings)
	if err != nil {
		return
	}
	s.cache.Set(listCacheKey(eventID), string(raw), listCacheTTL)
}

func (s *MeetingService) invalidate(eventID string) {
	if s.cache != nil {
		s.cache.Delete(listCacheKey(eventID))
	}
}

func listCacheKey(eventID string) string {
	return fmt.Sprintf("meetings:list:%s", eventID)
}

func applyUpdate(m *entities.Meeting, input UpdateMeetingInput) {
	if input.Date != nil {
		m.Date = *input.Date
	}
	if input.TimeSlot != nil {
		m.TimeSlot = *input.TimeSlot
	}
	if input.Status != nil {
		m.Status = *input.Status
	}
	if input.TWGPerson != nil {
		m.TWGPerson = *input.TWGPerson
	}
	if input.CompanyName != nil {
		m.CompanyName = *input.CompanyName
	}
	if input.Partner != nil {
		m.Partner = *input.Partner
	}
	if input.Phone != nil {
		m.Phone = *input.Phone
	}
	if input.Location != nil {
		m.Location = *input.Location
	}
	if input.Agenda != nil {
		m.Agenda = *input.Agenda
	}
	if input.MeetingSummary != nil {
		m.MeetingSummary = input.MeetingSummary
	}
}

func sortMeetings(meetings []*entities.Meeting) {
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date < meetings[j].Date
		}
		return meetings[i].TimeSlot < meetings[j].TimeSlot
	})
}

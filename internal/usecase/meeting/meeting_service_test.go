package meeting

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/twgdev/sigma-scheduler/errors"
	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/cache"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/realtime"
)

type fakeRepo struct {
	meetings  map[string]*entities.Meeting
	nextID    int
	listCalls int
	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meetings: make(map[string]*entities.Meeting), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, m *entities.Meeting) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == "" {
		m.ID = "m-" + strconv.Itoa(r.nextID)
		r.nextID++
	}
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*entities.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) FindBySlot(_ context.Context, eventID, date, timeSlot string) (*entities.Meeting, error) {
	for _, m := range r.meetings {
		if m.EventID == eventID && m.OccupiesSlot(date, timeSlot) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListByEvent(_ context.Context, eventID string) ([]*entities.Meeting, error) {
	r.listCalls++
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.EventID == eventID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortMeetings(out)
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, m *entities.Meeting) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.meetings, id)
	return nil
}

type fakeBus struct {
	published    []realtime.ChangeEvent
	subscribed   []string
	subscribeErr error
}

type fakeSubscription struct {
	unsubscribes int
}

func (s *fakeSubscription) Unsubscribe() { s.unsubscribes++ }

func (b *fakeBus) Publish(_ context.Context, ev realtime.ChangeEvent) error {
	b.published = append(b.published, ev)
	return nil
}

func (b *fakeBus) Subscribe(eventID string, _ func(realtime.ChangeEvent)) (realtime.Subscription, error) {
	if b.subscribeErr != nil {
		return nil, b.subscribeErr
	}
	b.subscribed = append(b.subscribed, eventID)
	return &fakeSubscription{}, nil
}

func newMockService() *MeetingService {
	return NewMeetingService(nil, nil, nil, zap.NewNop(), "", false)
}

func newConfiguredService(repo *fakeRepo, bus *fakeBus) *MeetingService {
	return NewMeetingService(repo, bus, cache.NewMemoryStore(), zap.NewNop(), entities.DefaultEventID, true)
}

func appCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestFetchMeetingsMockMode(t *testing.T) {
	svc := newMockService()

	meetings, err := svc.FetchMeetings(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, meetings, 4)

	assert.Equal(t, "Tech Solutions Inc", meetings[0].CompanyName)
	assert.Equal(t, "2025-11-03", meetings[0].Date)
	assert.Equal(t, "10:00", meetings[0].TimeSlot)
	for _, m := range meetings {
		assert.Equal(t, entities.DefaultEventID, m.EventID)
	}
	for i := 1; i < len(meetings); i++ {
		prev, cur := meetings[i-1], meetings[i]
		ordered := prev.Date < cur.Date || (prev.Date == cur.Date && prev.TimeSlot < cur.TimeSlot)
		assert.True(t, ordered, "meetings out of order at %d", i)
	}
}

func TestFetchMeetingsMockModeIgnoresEventID(t *testing.T) {
	svc := newMockService()

	meetings, err := svc.FetchMeetings(context.Background(), "some-other-event")
	require.NoError(t, err)
	assert.Len(t, meetings, 4)
}

func TestCreateMeetingMockModeEchoesInput(t *testing.T) {
	svc := newMockService()

	m, err := svc.CreateMeeting(context.Background(), CreateMeetingInput{
		Date:        "2025-11-04",
		TimeSlot:    "11:00",
		CompanyName: "Acme Corp",
		TWGPerson:   "Jane Doe",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	_, numErr := strconv.ParseInt(m.ID, 10, 64)
	assert.NoError(t, numErr, "mock ids are millisecond timestamps")
	assert.Equal(t, entities.DefaultEventID, m.EventID)
	assert.Equal(t, "Acme Corp", m.CompanyName)
	assert.Equal(t, entities.MeetingStatusConfirmed, m.Status, "status defaults to confirmed")

	// Nothing is persisted: a fetch still returns only the samples
	meetings, err := svc.FetchMeetings(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, meetings, 4)
}

func TestCreateMeetingRejectsBadSlot(t *testing.T) {
	svc := newMockService()
	ctx := context.Background()

	_, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-12-25", TimeSlot: "10:00"})
	assert.Equal(t, apperrors.ErrorCode_INVALID_EVENT_DATE, appCode(t, err))

	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:15"})
	assert.Equal(t, apperrors.ErrorCode_INVALID_TIME_SLOT, appCode(t, err))

	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "16:00"})
	assert.Equal(t, apperrors.ErrorCode_INVALID_TIME_SLOT, appCode(t, err))

	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00", Status: "maybe"})
	assert.Equal(t, apperrors.ErrorCode_INVALID_ARGUMENT, appCode(t, err))
}

func TestCreateMeetingPersistsAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newConfiguredService(repo, bus)

	m, err := svc.CreateMeeting(context.Background(), CreateMeetingInput{
		Date:        "2025-11-03",
		TimeSlot:    "10:00",
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)
	assert.Len(t, repo.meetings, 1)

	require.Len(t, bus.published, 1)
	ev := bus.published[0]
	assert.Equal(t, realtime.ChangeInsert, ev.Type)
	assert.Equal(t, entities.DefaultEventID, ev.EventID)
	assert.Equal(t, m.ID, ev.MeetingID)
	require.NotNil(t, ev.Meeting)
	assert.Equal(t, "Acme Corp", ev.Meeting.CompanyName)
}

func TestCreateMeetingRejectsOccupiedSlot(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newConfiguredService(repo, bus)
	ctx := context.Background()

	_, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00", CompanyName: "First"})
	require.NoError(t, err)

	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00", CompanyName: "Second"})
	assert.Equal(t, apperrors.ErrorCode_SLOT_ALREADY_BOOKED, appCode(t, err))
	assert.Len(t, repo.meetings, 1)
	assert.Len(t, bus.published, 1, "rejected create must not publish")
}

func TestCreateMeetingDetectsMissingColumn(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New(`ERROR: column "meeting_summary" of relation "meetings" does not exist (SQLSTATE 42703)`)
	svc := newConfiguredService(repo, &fakeBus{})

	summary := "notes"
	_, err := svc.CreateMeeting(context.Background(), CreateMeetingInput{
		Date:           "2025-11-03",
		TimeSlot:       "10:00",
		MeetingSummary: &summary,
	})
	assert.Equal(t, apperrors.ErrorCode_SCHEMA_MISMATCH, appCode(t, err))
}

func TestUpdateMeetingMockModeEchoesMerge(t *testing.T) {
	svc := newMockService()

	status := entities.MeetingStatusInProcess
	m, err := svc.UpdateMeeting(context.Background(), "42", UpdateMeetingInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "42", m.ID)
	assert.Equal(t, entities.MeetingStatusInProcess, m.Status)
}

func TestUpdateMeetingNotFound(t *testing.T) {
	svc := newConfiguredService(newFakeRepo(), &fakeBus{})

	_, err := svc.UpdateMeeting(context.Background(), "missing", UpdateMeetingInput{})
	assert.Equal(t, apperrors.ErrorCode_MEETING_NOT_FOUND, appCode(t, err))
}

func TestUpdateMeetingStatusOnly(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newConfiguredService(repo, bus)
	ctx := context.Background()

	created, err := svc.CreateMeeting(ctx, CreateMeetingInput{
		Date:        "2025-11-03",
		TimeSlot:    "10:00",
		CompanyName: "Acme Corp",
		Status:      entities.MeetingStatusNotConfirmed,
	})
	require.NoError(t, err)

	status := entities.MeetingStatusConfirmed
	updated, err := svc.UpdateMeeting(ctx, created.ID, UpdateMeetingInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, entities.MeetingStatusConfirmed, updated.Status)
	assert.Equal(t, "Acme Corp", updated.CompanyName, "untouched fields survive")
	assert.Equal(t, "2025-11-03", updated.Date)
	assert.Equal(t, "10:00", updated.TimeSlot)

	require.Len(t, bus.published, 2)
	assert.Equal(t, realtime.ChangeUpdate, bus.published[1].Type)
}

func TestUpdateMeetingCannotMoveOntoOccupiedSlot(t *testing.T) {
	repo := newFakeRepo()
	svc := newConfiguredService(repo, &fakeBus{})
	ctx := context.Background()

	first, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00"})
	require.NoError(t, err)
	second, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:30"})
	require.NoError(t, err)

	slot := "10:00"
	_, err = svc.UpdateMeeting(ctx, second.ID, UpdateMeetingInput{TimeSlot: &slot})
	assert.Equal(t, apperrors.ErrorCode_SLOT_ALREADY_BOOKED, appCode(t, err))

	// Re-saving a meeting on its own slot is fine
	status := entities.MeetingStatusInProcess
	_, err = svc.UpdateMeeting(ctx, first.ID, UpdateMeetingInput{Status: &status})
	assert.NoError(t, err)
}

func TestDeleteMeetingMockModeIsNoop(t *testing.T) {
	svc := newMockService()
	assert.NoError(t, svc.DeleteMeeting(context.Background(), "anything"))
}

func TestDeleteMeeting(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newConfiguredService(repo, bus)
	ctx := context.Background()

	created, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMeeting(ctx, created.ID))
	assert.Empty(t, repo.meetings)

	require.Len(t, bus.published, 2)
	ev := bus.published[1]
	assert.Equal(t, realtime.ChangeDelete, ev.Type)
	assert.Equal(t, created.ID, ev.MeetingID)
	assert.Nil(t, ev.Meeting)

	// Deleting an id that is already gone is not an error
	assert.NoError(t, svc.DeleteMeeting(ctx, created.ID))
	assert.Len(t, bus.published, 2, "second delete must not publish")
}

func TestFetchMeetingsUsesListCache(t *testing.T) {
	repo := newFakeRepo()
	svc := newConfiguredService(repo, &fakeBus{})
	ctx := context.Background()

	_, err := svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00", CompanyName: "Acme Corp"})
	require.NoError(t, err)

	first, err := svc.FetchMeetings(ctx, "")
	require.NoError(t, err)
	second, err := svc.FetchMeetings(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second fetch is served from cache")
	assert.Equal(t, len(first), len(second))

	// A write drops the cached list
	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:30"})
	require.NoError(t, err)

	third, err := svc.FetchMeetings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, third, 2)
}

func TestSubscribeToMeetings(t *testing.T) {
	t.Run("mock mode returns nil handle", func(t *testing.T) {
		svc := newMockService()
		sub, err := svc.SubscribeToMeetings("", func(realtime.ChangeEvent) {})
		assert.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("configured subscribes on the bus", func(t *testing.T) {
		bus := &fakeBus{}
		svc := newConfiguredService(newFakeRepo(), bus)

		sub, err := svc.SubscribeToMeetings("", func(realtime.ChangeEvent) {})
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, []string{entities.DefaultEventID}, bus.subscribed)
	})

	t.Run("bus failure is wrapped", func(t *testing.T) {
		bus := &fakeBus{subscribeErr: errors.New("connection refused")}
		svc := newConfiguredService(newFakeRepo(), bus)

		_, err := svc.SubscribeToMeetings("", func(realtime.ChangeEvent) {})
		assert.Equal(t, apperrors.ErrorCode_REALTIME_FAILED, appCode(t, err))
	})
}

func TestMockModeGatesAllOperationsUniformly(t *testing.T) {
	svc := newMockService()
	ctx := context.Background()

	assert.False(t, svc.StoreConfigured())

	_, err := svc.FetchMeetings(ctx, "")
	assert.NoError(t, err)
	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Date: "2025-11-03", TimeSlot: "10:00"})
	assert.NoError(t, err)
	_, err = svc.UpdateMeeting(ctx, "1", UpdateMeetingInput{})
	assert.NoError(t, err)
	assert.NoError(t, svc.DeleteMeeting(ctx, "1"))
	sub, err := svc.SubscribeToMeetings("", func(realtime.ChangeEvent) {})
	assert.NoError(t, err)
	assert.Nil(t, sub)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/twgdev/sigma-scheduler/errors"
	dto "github.com/twgdev/sigma-scheduler/internal/adapter/dto/meeting"
	"github.com/twgdev/sigma-scheduler/internal/adapter/presenter"
	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/usecase/calendar"
	meetingUsecase "github.com/twgdev/sigma-scheduler/internal/usecase/meeting"
)

const (
	sourceStore  = "store"
	sourceSample = "sample"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// ListMeetings handles GET /meetings. A failed fetch degrades to the
// built-in sample data instead of an empty view; Source tells the client
// which one it got.
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	meetings, source := h.fetchOrFallback(c, req.EventID)

	if req.Date != "" {
		var filtered []*entities.Meeting
		for _, m := range meetings {
			if m.Date == req.Date {
				filtered = append(filtered, m)
			}
		}
		meetings = filtered
	}
	meetings = calendar.FilterMeetings(meetings, req.Search)

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings, source))
}

// CreateMeeting handles POST /meetings
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	input := meetingUsecase.CreateMeetingInput{
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		Status:         entities.MeetingStatus(req.Status),
		TWGPerson:      req.TWGPerson,
		CompanyName:    req.CompanyName,
		Partner:        req.Partner,
		Phone:          req.Phone,
		Location:       req.Location,
		Agenda:         req.Agenda,
		MeetingSummary: req.MeetingSummary,
	}

	created, err := h.service.CreateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(created))
}

// UpdateMeeting handles PATCH /meetings/:id
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id := c.Param("id")

	var req dto.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	input := meetingUsecase.UpdateMeetingInput{
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		TWGPerson:      req.TWGPerson,
		CompanyName:    req.CompanyName,
		Partner:        req.Partner,
		Phone:          req.Phone,
		Location:       req.Location,
		Agenda:         req.Agenda,
		MeetingSummary: req.MeetingSummary,
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.service.UpdateMeeting(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(updated))
}

// DeleteMeeting handles DELETE /meetings/:id
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id := c.Param("id")

	if err := h.service.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Calendar handles GET /calendar: the slot grid for one event day, with an
// optional free-text filter over company, attendee and partner names.
func (h *Meeting) Calendar(c echo.Context) error {
	var req dto.CalendarRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	date := req.Date
	if date == "" {
		date = entities.EventDates()[0]
	}
	if !entities.IsEventDate(date) {
		return HandleError(h.logger, c, apperrors.ErrInvalidEventDate(date))
	}

	meetings, _ := h.fetchOrFallback(c, req.EventID)
	grid := calendar.BuildDayGrid(meetings, date, req.Search)

	return HandleSuccess(h.logger, c, presenter.ToCalendarResponse(grid))
}

// ExportICal handles GET /calendar/ical: the full event schedule as an
// iCalendar document.
func (h *Meeting) ExportICal(c echo.Context) error {
	eventID := c.QueryParam("event_id")
	if eventID == "" {
		eventID = h.service.EventID()
	}

	meetings, _ := h.fetchOrFallback(c, eventID)

	doc, err := calendar.ExportICal(eventID, meetings)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrExportFailed("ical", err))
	}

	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(doc))
}

// fetchOrFallback loads the event's meetings, degrading to the sample
// records when the store errors so the schedule view is never empty.
func (h *Meeting) fetchOrFallback(c echo.Context, eventID string) ([]*entities.Meeting, string) {
	meetings, err := h.service.FetchMeetings(c.Request().Context(), eventID)
	if err != nil {
		h.logger.Warn("meeting.fetch_failed_falling_back",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err),
		)
		return entities.SampleMeetings(), sourceSample
	}

	source := sourceStore
	if !h.service.StoreConfigured() {
		source = sourceSample
	}
	return meetings, source
}

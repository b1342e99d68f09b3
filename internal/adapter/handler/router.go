package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twgdev/sigma-scheduler/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupCalendarRoutes(v1)
}

// setupMeetingRoutes configures meeting CRUD and the change-event stream
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("/stream", rt.meetingHandler.StreamMeetings)
	meetings.PATCH("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
}

// setupCalendarRoutes configures the schedule-grid views
func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	cal := g.Group("/calendar")

	cal.GET("", rt.meetingHandler.Calendar)
	cal.GET("/ical", rt.meetingHandler.ExportICal)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	mode := "store"
	if !rt.cfg.StoreConfigured() {
		mode = "mock"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"mode":        mode,
		"event_id":    rt.cfg.Event.ID,
	})
}

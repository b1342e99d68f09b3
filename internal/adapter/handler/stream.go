package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/twgdev/sigma-scheduler/internal/infrastructure/realtime"
)

const keepaliveInterval = 25 * time.Second

// StreamMeetings handles GET /meetings/stream: a server-sent-events feed of
// meeting change events for one trade event. Browser clients reload the
// schedule on every event, the same contract the hosted store's realtime
// channel gave them.
func (h *Meeting) StreamMeetings(c echo.Context) error {
	eventID := c.QueryParam("event_id")
	if eventID == "" {
		eventID = h.service.EventID()
	}

	// Buffered so a slow client never blocks the bus goroutine; a dropped
	// event is harmless because consumers reload the full list anyway.
	events := make(chan realtime.ChangeEvent, 16)

	sub, err := h.service.SubscribeToMeetings(eventID, func(ev realtime.ChangeEvent) {
		select {
		case events <- ev:
		default:
		}
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if sub == nil {
		// Mock mode: nothing changes server-side, so there is nothing to push
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error":   "realtime_unavailable",
			"message": "change notifications require a configured record store",
		})
	}
	defer sub.Unsubscribe()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	h.logger.Info("meeting.stream_opened",
		zap.String("request_id", getRequestID(c)),
		zap.String("event_id", eventID),
	)

	ctx := c.Request().Context()
	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(resp, "data: %s\n\n", payload)
			resp.Flush()
		case <-keepalive.C:
			fmt.Fprint(resp, ": keepalive\n\n")
			resp.Flush()
		}
	}
}

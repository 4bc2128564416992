package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// EventHandler serves the campus-event endpoints.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates the EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Create creates a campus event.
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimestamp):
			response.BadRequest(c, 19001, "timestamps must be RFC 3339")
		case errors.Is(err, service.ErrEventOrder):
			response.BadRequest(c, 19002, "starts_at must be before ends_at")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, event)
}

// List lists events in start order.
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, events)
}

// Delete removes an event.
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, 19003, "event not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ExportICS downloads all events as an iCalendar feed.
// GET /api/v1/events/export
func (h *EventHandler) ExportICS(c *gin.Context) {
	data, err := h.eventSvc.ExportICS(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Data(http.StatusOK, "text/calendar", data)
}

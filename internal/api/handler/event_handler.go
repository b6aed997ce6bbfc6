package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/metrics"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

// EventHandler handles calendar event reads and role-gated mutations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /api/events — the public read surface behind the
// calendar and the embed widget.
//
// @Summary      List calendar events
// @Tags         events
// @Produce      json
// @Param        department  query     string  false  "Filter by department"
// @Param        event       query     string  false  "Scope to a single event ID"
// @Success      200         {array}   domain.CalendarEvent
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.List(c.Request().Context(), ports.EventFilter{
		Department: c.QueryParam("department"),
		EventID:    c.QueryParam("event"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id.
//
// @Summary      Get a calendar event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.CalendarEvent
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create handles POST /api/events.
//
// @Summary      Create a calendar event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  domain.CalendarEvent
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), claims, toEventInput(req))
	if err != nil {
		return err
	}

	metrics.EventMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /api/events/:id.
//
// @Summary      Update a calendar event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string        true  "Event ID"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  domain.CalendarEvent
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), toEventInput(req))
	if err != nil {
		return err
	}

	metrics.EventMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete a calendar event
// @Tags         events
// @Produce      json
// @Security     SessionCookie
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}

	metrics.EventMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r eventRequest) ports.EventInput {
	return ports.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Department:  r.Department,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		AllDay:      r.AllDay,
	}
}

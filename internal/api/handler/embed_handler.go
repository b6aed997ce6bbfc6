package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

const defaultEmbedHeight = 600

// EmbedHandler serves the embeddable calendar widget configuration. The
// endpoint is public: host pages fetch it with the widget's query string
// and render the returned events with the resolved options.
type EmbedHandler struct {
	service ports.EventService
}

func NewEmbedHandler(service ports.EventService) *EmbedHandler {
	return &EmbedHandler{service: service}
}

type embedResponse struct {
	Theme  string                 `json:"theme"`
	View   string                 `json:"view"`
	Header bool                   `json:"header"`
	Height int                    `json:"height"`
	Events []domain.CalendarEvent `json:"events"`
}

// Widget handles GET /embed.
//
// @Summary      Embeddable calendar widget configuration
// @Tags         embed
// @Produce      json
// @Param        theme   query     string  false  "light or dark"         Enums(light, dark)
// @Param        view    query     string  false  "calendar view"         Enums(dayGridMonth, timeGridWeek)
// @Param        header  query     string  false  "show widget header"    Enums(true, false)
// @Param        height  query     int     false  "widget height in px"
// @Param        event   query     string  false  "scope to one event ID"
// @Success      200     {object}  embedResponse
// @Failure      422     {object}  map[string]string
// @Router       /embed [get]
func (h *EmbedHandler) Widget(c echo.Context) error {
	var q embedQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	events, err := h.service.List(c.Request().Context(), ports.EventFilter{EventID: q.Event})
	if err != nil {
		return err
	}

	resp := embedResponse{
		Theme:  q.Theme,
		View:   q.View,
		Header: q.Header != "false",
		Height: q.Height,
		Events: events,
	}
	if resp.Theme == "" {
		resp.Theme = "light"
	}
	if resp.View == "" {
		resp.View = "dayGridMonth"
	}
	if resp.Height == 0 {
		resp.Height = defaultEmbedHeight
	}

	return c.JSON(http.StatusOK, resp)
}

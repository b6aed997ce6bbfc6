package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the role dashboard landing routes. The gate has
// already vetted the role by the time these run; the payload identifies the
// dashboard and echoes the caller so the frontend can render its shell.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) Admin(c echo.Context) error      { return h.page(c, "admin") }
func (h *DashboardHandler) CIO(c echo.Context) error        { return h.page(c, "cio") }
func (h *DashboardHandler) SuperAdmin(c echo.Context) error { return h.page(c, "super-admin") }

// Home serves the site root: the public calendar shell. Signed-in users
// never reach it for "/" because the gate redirects them to their dashboard.
func (h *DashboardHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "calendar"})
}

func (h *DashboardHandler) page(c echo.Context, name string) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"page": name,
		"user": claims.Email,
		"role": string(claims.Role),
	})
}

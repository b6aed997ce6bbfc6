package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/middleware"
	"github.com/campuscal/calendar-system/internal/core/domain"
)

// ctxClaims re-derives the caller's claims inside a privileged handler.
// Presence proves the session middleware verified a signed token; handlers
// never trust the gate alone.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *claims, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// RBAC enforces role-based access control on a route group. It runs inside
// the handler chain even though the gate already vetted the request:
// defense in depth against a misconfigured or bypassed gate. Allowed roles
// and the claim role are both normalized, so the legacy SUPER-ADMIN
// spelling is accepted wherever SUPERADMIN is.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[domain.NormalizeRole(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[domain.NormalizeRole(claims.Role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

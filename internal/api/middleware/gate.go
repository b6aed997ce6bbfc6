package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/metrics"
	"github.com/campuscal/calendar-system/internal/core/domain"
)

// SignInPath is where unauthenticated and under-privileged page requests
// are sent. Page-level denials are always this redirect, never a 403 body,
// so the response does not reveal which roles a path requires.
const SignInPath = "/auth/signin"

// publicPrefixes are reachable without any session, valid or otherwise.
// The site root is handled separately (it renders the public calendar but
// redirects signed-in users to their dashboard).
var publicPrefixes = []string{
	"/auth",
	"/embed",
	"/assets",
	"/health",
	"/metrics",
	"/swagger",
	"/favicon.ico",
}

// protectedPrefixes maps a dashboard path prefix to the roles allowed under
// it. Roles here are canonical; claims are normalized before comparison.
var protectedPrefixes = []struct {
	prefix string
	roles  []domain.Role
}{
	{"/super-admin", []domain.Role{domain.RoleSuperAdmin}},
	{"/admin", []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}},
	{"/cio", []domain.Role{domain.RoleCIO, domain.RoleSuperAdmin}},
}

// Gate is the single request-level chokepoint deciding allow / redirect
// before any handler runs. Evaluation order matters: public allow-list,
// then the site root, then the unauthenticated case, then the prefix role
// table. Paths that match nothing fall through to allow for authenticated
// users; every privileged surface must therefore appear in the table or
// carry its own RBAC guard.
func Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			claims, authed := ClaimsFrom(c)

			// 1. Public allow-list: no auth state consulted at all.
			if isPublicPath(req.Method, path) {
				metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			// 2./3. Site root: signed-in users go to their dashboard, everyone
			// else gets the public calendar.
			if path == "/" {
				if authed {
					if home := domain.LandingPath(claims.Role); home != "/" {
						metrics.GateDecisionsTotal.WithLabelValues("redirect_home").Inc()
						return c.Redirect(http.StatusFound, home)
					}
				}
				metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			// 4. No session at all.
			if !authed {
				metrics.GateDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				if isAPIPath(path) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusFound, SignInPath)
			}

			// 5. Prefix-based role table, first match wins.
			for _, p := range protectedPrefixes {
				if !pathHasPrefix(path, p.prefix) {
					continue
				}
				if !roleAllowed(claims.Role, p.roles) {
					// Deliberately indistinguishable from the unauthenticated
					// case so the response does not leak role requirements.
					metrics.GateDecisionsTotal.WithLabelValues("forbidden").Inc()
					return c.Redirect(http.StatusFound, SignInPath)
				}
				break
			}

			metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

func isPublicPath(method, path string) bool {
	for _, prefix := range publicPrefixes {
		if pathHasPrefix(path, prefix) {
			return true
		}
	}
	// The event listing API is public read-only: GETs pass without a
	// session, mutations fall through to the authenticated branches.
	if pathHasPrefix(path, "/api/events") && (method == http.MethodGet || method == http.MethodHead) {
		return true
	}
	return false
}

func isAPIPath(path string) bool {
	return pathHasPrefix(path, "/api")
}

// pathHasPrefix matches whole path segments, so "/administration" does not
// fall under "/admin".
func pathHasPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	role = domain.NormalizeRole(role)
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

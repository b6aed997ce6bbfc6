package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/metrics"
	"github.com/campuscal/calendar-system/internal/api/middleware"
	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

// SessionRevoker records sign-outs so a still-valid token stops being honored.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthHandler owns the authentication surface: sign-in, sign-out, and
// first-run setup.
type AuthHandler struct {
	authService    ports.AuthService
	accountService ports.AccountService
	revoker        SessionRevoker
	sessionTTL     time.Duration
	secureCookies  bool
}

func NewAuthHandler(authService ports.AuthService, accountService ports.AccountService, revoker SessionRevoker, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
		revoker:        revoker,
		sessionTTL:     sessionTTL,
		secureCookies:  secureCookies,
	}
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	User     *domain.Account `json:"user"`
	Redirect string          `json:"redirect"`
}

type setupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignIn authenticates an account and sets the session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, account, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	h.setSessionCookie(c, token, h.sessionTTL)

	return c.JSON(http.StatusOK, signInResponse{
		User:     account,
		Redirect: domain.LandingPath(account.Role),
	})
}

// SignInPage is the redirect target for unauthenticated page requests.
func (h *AuthHandler) SignInPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "signin"})
}

// SignOut revokes the current session token and clears the cookie. Safe to
// call without a session.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if claims, ok := middleware.ClaimsFrom(c); ok && claims.TokenID != "" {
		ttl := middleware.RemainingValidity(claims, time.Now().UTC())
		if ttl > 0 {
			if err := h.revoker.Revoke(c.Request().Context(), claims.TokenID, ttl); err != nil {
				return err
			}
			metrics.SessionRevocationsTotal.Inc()
		}
	}

	h.setSessionCookie(c, "", -time.Hour)
	return c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

// Setup creates the first account; permanently disabled once any account exists.
//
// @Summary      First-run setup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      setupRequest  true  "Initial super-admin account"
// @Success      201   {object}  domain.Account
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/setup [post]
func (h *AuthHandler) Setup(c echo.Context) error {
	var req setupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	account, err := h.accountService.Setup(c.Request().Context(), ports.CreateAccountInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, account)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

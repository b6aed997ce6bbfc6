package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/metrics"
	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

// AccountHandler handles the user-management surface. All routes except
// ChangePassword sit behind RBAC(SUPERADMIN); each handler still re-derives
// claims via ctxClaims and the service enforces the self-action invariants.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type createAccountRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN CIO SUPERADMIN SUPER-ADMIN"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN CIO SUPERADMIN SUPER-ADMIN"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// List returns all accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create adds a new account.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), ports.CreateAccountInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, account)
}

// UpdateRole changes the role of another account.
//
// @Summary      Update an account role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string             true  "Account ID"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  domain.Account
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/accounts/{id}/role [patch]
func (h *AccountHandler) UpdateRole(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	account, err := h.service.UpdateRole(c.Request().Context(), claims, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("role_update").Inc()
	return c.JSON(http.StatusOK, account)
}

// Delete removes another account.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Param        id  path  string  true  "Account ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword replaces the caller's own password. Open to any
// authenticated role.
//
// @Summary      Change own password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/accounts/password [post]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), claims, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("password_change").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

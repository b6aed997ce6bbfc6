package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campuscal/calendar-system/internal/api/middleware"
	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

type recordingAccountService struct {
	stubAccountService
	updateRoleFn     func(caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error)
	changePasswordFn func(caller domain.Claims, current, next string) error
}

func (s *recordingAccountService) UpdateRole(_ context.Context, caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error) {
	return s.updateRoleFn(caller, targetID, role)
}

func (s *recordingAccountService) ChangePassword(_ context.Context, caller domain.Claims, current, next string) error {
	return s.changePasswordFn(caller, current, next)
}

var _ ports.AccountService = (*recordingAccountService)(nil)

func TestAccountHandler_UpdateRole_PassesCallerClaims(t *testing.T) {
	svc := &recordingAccountService{
		updateRoleFn: func(caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error) {
			if caller.SubjectID != "acc_super" {
				t.Fatalf("expected caller acc_super, got %s", caller.SubjectID)
			}
			if targetID != "acc_2" || role != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %s", targetID, role)
			}
			return &domain.Account{ID: targetID, Role: role}, nil
		},
	}
	h := NewAccountHandler(svc)

	c, rec := newTestContext(t, http.MethodPatch, "/api/accounts/acc_2/role", `{"role":"ADMIN"}`)
	c.SetParamNames("id")
	c.SetParamValues("acc_2")
	middleware.WithClaims(c, &domain.Claims{SubjectID: "acc_super", Role: domain.RoleSuperAdmin})

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_UpdateRole_SelfBlocked(t *testing.T) {
	svc := &recordingAccountService{
		updateRoleFn: func(caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error) {
			return nil, domain.ErrSelfAction
		},
	}
	h := NewAccountHandler(svc)

	c, _ := newTestContext(t, http.MethodPatch, "/api/accounts/acc_super/role", `{"role":"ADMIN"}`)
	c.SetParamNames("id")
	c.SetParamValues("acc_super")
	middleware.WithClaims(c, &domain.Claims{SubjectID: "acc_super", Role: domain.RoleSuperAdmin})

	if err := h.UpdateRole(c); !errors.Is(err, domain.ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
}

func TestAccountHandler_UpdateRole_RejectsUnknownRole(t *testing.T) {
	svc := &recordingAccountService{
		updateRoleFn: func(caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error) {
			t.Fatalf("service must not be called for unknown role")
			return nil, nil
		},
	}
	h := NewAccountHandler(svc)

	c, _ := newTestContext(t, http.MethodPatch, "/api/accounts/acc_2/role", `{"role":"JANITOR"}`)
	c.SetParamNames("id")
	c.SetParamValues("acc_2")
	middleware.WithClaims(c, &domain.Claims{SubjectID: "acc_super", Role: domain.RoleSuperAdmin})

	err := h.UpdateRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 http error, got %v", err)
	}
}

func TestAccountHandler_ChangePassword_RequiresClaims(t *testing.T) {
	h := NewAccountHandler(&recordingAccountService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/accounts/password", `{"current_password":"old","new_password":"newpass123"}`)
	err := h.ChangePassword(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAccountHandler_ChangePassword_Success(t *testing.T) {
	svc := &recordingAccountService{
		changePasswordFn: func(caller domain.Claims, current, next string) error {
			if caller.SubjectID != "acc_1" || current != "oldpass123" || next != "newpass123" {
				t.Fatalf("unexpected args: %s %s %s", caller.SubjectID, current, next)
			}
			return nil
		},
	}
	h := NewAccountHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/accounts/password", `{"current_password":"oldpass123","new_password":"newpass123"}`)
	middleware.WithClaims(c, &domain.Claims{SubjectID: "acc_1", Role: domain.RoleAdmin})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

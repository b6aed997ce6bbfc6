package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

func newAccountService(repo *stubAccountRepo) *AccountService {
	return NewAccountService(repo, zerolog.Nop())
}

func TestAccountService_Setup_FirstRunOnly(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)

	first, err := svc.Setup(context.Background(), ports.CreateAccountInput{
		Email:    "root@campus.edu",
		Name:     "Root",
		Password: "root123456",
	})
	if err != nil {
		t.Fatalf("first setup failed: %v", err)
	}
	if first.Role != domain.RoleSuperAdmin {
		t.Fatalf("first account must be SUPERADMIN, got %s", first.Role)
	}

	_, err = svc.Setup(context.Background(), ports.CreateAccountInput{
		Email:    "other@campus.edu",
		Name:     "Other",
		Password: "other123456",
	})
	if !errors.Is(err, domain.ErrSetupComplete) {
		t.Fatalf("second setup: expected ErrSetupComplete, got %v", err)
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	svc := newAccountService(newStubAccountRepo())

	cases := []ports.CreateAccountInput{
		{Email: "", Name: "X", Password: "longenough", Role: domain.RoleAdmin},
		{Email: "x@campus.edu", Name: "", Password: "longenough", Role: domain.RoleAdmin},
		{Email: "x@campus.edu", Name: "X", Password: "short", Role: domain.RoleAdmin},
		{Email: "x@campus.edu", Name: "X", Password: "longenough", Role: "JANITOR"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestAccountService_Create_HashesPasswordAndNormalizesRole(t *testing.T) {
	svc := newAccountService(newStubAccountRepo())

	account, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Email:    "legacy@campus.edu",
		Name:     "Legacy",
		Password: "secret123",
		Role:     "SUPER-ADMIN",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if account.Role != domain.RoleSuperAdmin {
		t.Fatalf("expected canonical role, got %s", account.Role)
	}
	if account.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	seedAccount(t, repo, "dup@campus.edu", "secret123", domain.RoleAdmin)

	_, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Email:    "dup@campus.edu",
		Name:     "Dup",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_UpdateRole_SelfForbidden(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	me := seedAccount(t, repo, "super@campus.edu", "secret123", domain.RoleSuperAdmin)

	caller := domain.Claims{SubjectID: me.ID, Role: domain.RoleSuperAdmin}
	if _, err := svc.UpdateRole(context.Background(), caller, me.ID, domain.RoleAdmin); !errors.Is(err, domain.ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	if got, _ := repo.FindByID(context.Background(), me.ID); got.Role != domain.RoleSuperAdmin {
		t.Fatalf("role must be unchanged after rejected self-demotion, got %s", got.Role)
	}
}

func TestAccountService_UpdateRole_OtherAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	me := seedAccount(t, repo, "super@campus.edu", "secret123", domain.RoleSuperAdmin)
	other := seedAccount(t, repo, "cio@campus.edu", "secret123", domain.RoleCIO)

	caller := domain.Claims{SubjectID: me.ID, Role: domain.RoleSuperAdmin}
	updated, err := svc.UpdateRole(context.Background(), caller, other.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", updated.Role)
	}
}

func TestAccountService_Delete_SelfForbidden(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	me := seedAccount(t, repo, "super@campus.edu", "secret123", domain.RoleSuperAdmin)

	caller := domain.Claims{SubjectID: me.ID, Role: domain.RoleSuperAdmin}
	if err := svc.Delete(context.Background(), caller, me.ID); !errors.Is(err, domain.ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), me.ID); err != nil {
		t.Fatalf("account must still exist after rejected self-delete")
	}
}

func TestAccountService_Delete_OtherAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	me := seedAccount(t, repo, "super@campus.edu", "secret123", domain.RoleSuperAdmin)
	other := seedAccount(t, repo, "admin@campus.edu", "secret123", domain.RoleAdmin)

	caller := domain.Claims{SubjectID: me.ID, Role: domain.RoleSuperAdmin}
	if err := svc.Delete(context.Background(), caller, other.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), other.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account gone, got %v", err)
	}
}

func TestAccountService_ChangePassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountService(repo)
	me := seedAccount(t, repo, "admin@campus.edu", "oldpass123", domain.RoleAdmin)
	caller := domain.Claims{SubjectID: me.ID, Role: domain.RoleAdmin}

	if err := svc.ChangePassword(context.Background(), caller, "oldpass123", "short"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), caller, "wrongcurrent", "newpass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), caller, "oldpass123", "newpass123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), me.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass123")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.accounts)), nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return copy, nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func seedAccount(t *testing.T, repo *stubAccountRepo, email, password string, role domain.Role) *domain.Account {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	a, err := repo.Create(context.Background(), &domain.Account{
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubAccountRepo()
	seedAccount(t, repo, "cio@example.com", "cio123456", domain.RoleCIO)
	svc := NewAuthService(repo, "secret", time.Hour)

	token, account, err := svc.SignIn(context.Background(), "cio@example.com", "cio123456")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account == nil || account.Role != domain.RoleCIO {
		t.Fatalf("unexpected account: %+v", account)
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if mc["role"] != string(domain.RoleCIO) {
		t.Fatalf("expected role CIO in token, got %v", mc["role"])
	}
	if mc["sub"] != account.ID {
		t.Fatalf("expected sub %s, got %v", account.ID, mc["sub"])
	}
	if jti, _ := mc["jti"].(string); jti == "" {
		t.Fatalf("expected non-empty jti")
	}
}

func TestAuthService_SignIn_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo()
	seedAccount(t, repo, "admin@example.com", "goodpass", domain.RoleAdmin)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, errWrongPass := svc.SignIn(context.Background(), "admin@example.com", "badpass")
	_, _, errNoUser := svc.SignIn(context.Background(), "ghost@example.com", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
}

func TestAuthService_SignIn_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "secret", time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "a@b.c", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Issue_ExpirySetFromTTL(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "secret", 24*time.Hour)
	account := &domain.Account{ID: "acc_1", Email: "x@example.com", Role: domain.RoleAdmin}

	before := time.Now().UTC()
	_, claims, err := svc.Issue(account)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	want := before.Add(24 * time.Hour)
	if claims.ExpiresAt.Before(want.Add(-time.Minute)) || claims.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("expected expiry near %v, got %v", want, claims.ExpiresAt)
	}
}

func TestAuthService_Issue_NormalizesLegacyRole(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "secret", time.Hour)
	account := &domain.Account{ID: "acc_1", Email: "x@example.com", Role: "SUPER-ADMIN"}

	_, claims, err := svc.Issue(account)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if claims.Role != domain.RoleSuperAdmin {
		t.Fatalf("expected canonical SUPERADMIN in claims, got %s", claims.Role)
	}
}

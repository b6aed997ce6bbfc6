package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

const minPasswordLen = 6

// AccountService implements user management and self-service password change.
type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

// Setup creates the very first account. Once any account exists the endpoint
// is permanently disabled and always fails with ErrSetupComplete.
func (s *AccountService) Setup(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("setup: count accounts: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrSetupComplete
	}

	// First account is always the super-admin regardless of payload.
	in.Role = domain.RoleSuperAdmin
	account, err := s.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", account.Email).Msg("first-run setup completed")
	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	if in.Email == "" || in.Name == "" {
		return nil, domain.NewValidationError("email and name are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewValidationError("password must be at least 6 characters")
	}
	role := domain.NormalizeRole(in.Role)
	if !role.IsValid() {
		return nil, domain.NewValidationError("unknown role")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

// UpdateRole changes the target account's role. A caller may never change
// their own role, regardless of privilege.
func (s *AccountService) UpdateRole(ctx context.Context, caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error) {
	if targetID == caller.SubjectID {
		return nil, domain.ErrSelfAction
	}
	role = domain.NormalizeRole(role)
	if !role.IsValid() {
		return nil, domain.NewValidationError("unknown role")
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", targetID).
		Str("role", string(role)).
		Str("changed_by", caller.SubjectID).
		Msg("account role updated")
	return updated, nil
}

// Delete removes the target account. A caller may never delete themselves.
func (s *AccountService) Delete(ctx context.Context, caller domain.Claims, targetID string) error {
	if targetID == caller.SubjectID {
		return domain.ErrSelfAction
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().Str("account_id", targetID).Str("deleted_by", caller.SubjectID).Msg("account deleted")
	return nil
}

// ChangePassword replaces the caller's own password after verifying the
// current one.
func (s *AccountService) ChangePassword(ctx context.Context, caller domain.Claims, current, next string) error {
	if len(next) < minPasswordLen {
		return domain.NewValidationError("password must be at least 6 characters")
	}

	account, err := s.repo.FindByID(ctx, caller.SubjectID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, account.ID, hash)
}

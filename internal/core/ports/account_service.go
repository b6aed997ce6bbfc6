package ports

import (
	"context"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// CreateAccountInput is the DTO for account creation.
type CreateAccountInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// AccountService covers user management (SUPERADMIN surface) plus the
// self-service operations every authenticated account may perform.
type AccountService interface {
	// Setup creates the first account. It succeeds only while the store is
	// empty; once any account exists it always fails with ErrSetupComplete.
	Setup(ctx context.Context, in CreateAccountInput) (*domain.Account, error)

	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, in CreateAccountInput) (*domain.Account, error)

	// UpdateRole changes the role of the target account. The caller may not
	// change their own role.
	UpdateRole(ctx context.Context, caller domain.Claims, targetID string, role domain.Role) (*domain.Account, error)

	// Delete removes the target account. The caller may not delete themselves.
	Delete(ctx context.Context, caller domain.Claims, targetID string) error

	// ChangePassword replaces the caller's own password after verifying the
	// current one.
	ChangePassword(ctx context.Context, caller domain.Claims, current, next string) error
}

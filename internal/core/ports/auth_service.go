package ports

import (
	"context"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// AuthService verifies credentials and mints session tokens.
type AuthService interface {
	// SignIn verifies the email/password pair and, on success, returns a
	// signed session token alongside the account it identifies.
	SignIn(ctx context.Context, email, password string) (string, *domain.Account, error)

	// Issue mints a signed session token for an already-verified account.
	Issue(account *domain.Account) (string, domain.Claims, error)
}

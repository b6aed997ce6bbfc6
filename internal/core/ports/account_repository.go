package ports

import (
	"context"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"
	"time"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// EventInput is the DTO passed from the transport layer to EventService for
// create and update operations.
type EventInput struct {
	Title       string
	Description string
	Department  string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	AllDay      bool
}

// EventService implements calendar event reads and role-gated mutations.
// The read methods back the public calendar and the embed widget; the
// mutation methods are only reachable through role-gated routes and stamp
// the caller onto the event.
type EventService interface {
	List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error)
	Get(ctx context.Context, id string) (*domain.CalendarEvent, error)

	Create(ctx context.Context, caller domain.Claims, in EventInput) (*domain.CalendarEvent, error)
	Update(ctx context.Context, caller domain.Claims, id string, in EventInput) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, caller domain.Claims, id string) error
}

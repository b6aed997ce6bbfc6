package ports

import (
	"context"

	"github.com/campuscal/calendar-system/internal/core/domain"
)

// EventFilter narrows List results. Zero values mean no filtering.
type EventFilter struct {
	Department string
	EventID    string
}

// EventRepository defines the persistence interface for calendar events.
type EventRepository interface {
	FindByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error)
	Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

func (s *eventService) List(ctx context.Context, filter ports.EventFilter) ([]domain.CalendarEvent, error) {
	return s.repo.List(ctx, filter)
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) Create(ctx context.Context, caller domain.Claims, in ports.EventInput) (*domain.CalendarEvent, error) {
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &domain.CalendarEvent{
		Title:       in.Title,
		Description: in.Description,
		Department:  in.Department,
		Location:    in.Location,
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		AllDay:      in.AllDay,
		CreatedBy:   caller.SubjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Str("title", in.Title).Msg("failed to create event")
		return nil, err
	}

	s.log.Info().
		Str("event_id", created.ID).
		Str("department", created.Department).
		Str("created_by", caller.SubjectID).
		Msg("event created")
	return created, nil
}

func (s *eventService) Update(ctx context.Context, caller domain.Claims, id string, in ports.EventInput) (*domain.CalendarEvent, error) {
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Department = in.Department
	existing.Location = in.Location
	existing.StartsAt = in.StartsAt.UTC()
	existing.EndsAt = in.EndsAt.UTC()
	existing.AllDay = in.AllDay
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", id).Str("updated_by", caller.SubjectID).Msg("event updated")
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, caller domain.Claims, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("event_id", id).Str("deleted_by", caller.SubjectID).Msg("event deleted")
	return nil
}

func validateEventInput(in ports.EventInput) error {
	if in.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if in.Department == "" {
		return domain.NewValidationError("department is required")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return domain.NewValidationError("start and end times are required")
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return domain.NewValidationError("start time must be before end time")
	}
	return nil
}

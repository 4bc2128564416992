package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidTimestamp = errors.New("timestamps must be RFC 3339")
	ErrEventOrder       = errors.New("starts_at must be before ends_at")
)

// EventService manages campus events and their calendar export.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, actorID string) (*dto.EventResponse, error)
	List(ctx context.Context) ([]dto.EventResponse, error)
	Delete(ctx context.Context, eventID string) error
	// ExportICS renders all events as an iCalendar feed.
	ExportICS(ctx context.Context) ([]byte, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService creates the event service.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, actorID string) (*dto.EventResponse, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	if !startsAt.Before(endsAt) {
		return nil, ErrEventOrder
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		BaseModel:   model.BaseModel{CreatedBy: &actorID},
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", event.EventID),
		zap.Time("starts_at", event.StartsAt))

	resp := eventResponse(event)
	return &resp, nil
}

func (s *eventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, eventResponse(&events[i]))
	}
	return out, nil
}

func (s *eventService) Delete(ctx context.Context, eventID string) error {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.repo.Event.Delete(ctx, eventID)
}

func (s *eventService) ExportICS(ctx context.Context) ([]byte, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CollegeConnect//Events//EN")

	for i := range events {
		event := &events[i]
		entry := cal.AddEvent(event.EventID)
		entry.SetCreatedTime(event.CreatedAt)
		entry.SetStartAt(event.StartsAt)
		entry.SetEndAt(event.EndsAt)
		entry.SetSummary(event.Title)
		if event.Description != "" {
			entry.SetDescription(event.Description)
		}
		if event.Venue != "" {
			entry.SetLocation(event.Venue)
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventResponse(event *model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.EventID,
		Title:       event.Title,
		Description: event.Description,
		Venue:       event.Venue,
		StartsAt:    event.StartsAt.Format(time.RFC3339),
		EndsAt:      event.EndsAt.Format(time.RFC3339),
	}
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

// CircularRepository is the circulars data-access interface.
type CircularRepository interface {
	Create(ctx context.Context, circular *model.Circular) error
	// ListForAudiences returns circulars whose audience is any of the given values.
	ListForAudiences(ctx context.Context, audiences []string, offset, limit int) ([]model.Circular, int64, error)
}

type circularRepo struct {
	db *gorm.DB
}

// NewCircularRepo creates the GORM-backed CircularRepository.
func NewCircularRepo(db *gorm.DB) CircularRepository {
	return &circularRepo{db: db}
}

func (r *circularRepo) Create(ctx context.Context, circular *model.Circular) error {
	return r.db.WithContext(ctx).Create(circular).Error
}

func (r *circularRepo) ListForAudiences(ctx context.Context, audiences []string, offset, limit int) ([]model.Circular, int64, error) {
	var circulars []model.Circular
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Circular{}).
		Where("audience IN ?", audiences)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&circulars).Error
	return circulars, total, err
}

// ── Event ──

// EventRepository is the events data-access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates the GORM-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.Event{}).Error
}

package usecase

import (
	"context"

	"beacon/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAlertInput carries the data for raising a new alert. Location is
// optional; nil means the unknown-position sentinel.
type CreateAlertInput struct {
	Category entity.AlertCategory
	Location *entity.Position
	Note     string
}

// AlertUsecase enforces the emergency-alert state machine and keeps the
// session history. At most one alert is active at any time; resolved and
// false-alarm are terminal.
type AlertUsecase interface {
	// Create raises a new active alert. It rejects with AlertAlreadyActive
	// while another alert is active.
	Create(ctx context.Context, input *CreateAlertInput) (*entity.Alert, error)

	// Resolve transitions an active alert to resolved.
	Resolve(ctx context.Context, id uuid.UUID) (*entity.Alert, error)

	// MarkFalseAlarm transitions an active alert to false_alarm.
	MarkFalseAlarm(ctx context.Context, id uuid.UUID) (*entity.Alert, error)

	// History returns snapshot copies of every alert of the session,
	// newest first (CreatedAt descending, ties in reverse insertion order).
	History(ctx context.Context) []*entity.Alert

	// Active returns a copy of the currently active alert, or nil.
	Active(ctx context.Context) *entity.Alert

	// RecordNotified appends contact IDs to an alert's notified set as
	// deliveries succeed.
	RecordNotified(ctx context.Context, id uuid.UUID, contactIDs []uuid.UUID) error
}

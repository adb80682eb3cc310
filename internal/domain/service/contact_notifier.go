package service

import (
	"context"

	"beacon/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactNotifier delivers an alert to the emergency contacts.
// It returns the IDs of the contacts that were notified successfully so
// the lifecycle can record them on the alert.
type ContactNotifier interface {
	NotifyContacts(ctx context.Context, alert *entity.Alert, contacts []*entity.EmergencyContact) ([]uuid.UUID, error)
}

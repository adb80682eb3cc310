// Package notification implements the contact notifier seam.
package notification

import (
	"context"
	"log/slog"

	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"

	"github.com/google/uuid"
)

// logNotifier records intended deliveries in the log instead of sending
// anything. Actual delivery (SMS, push) belongs to a backend this service
// does not ship; the notifier seam keeps the integration point in place
// and reports every contact as notified so the lifecycle can record them.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates the logging notifier.
func NewLogNotifier(logger *slog.Logger) service.ContactNotifier {
	return &logNotifier{logger: logger}
}

// NotifyContacts logs one line per contact and returns all contact IDs.
func (n *logNotifier) NotifyContacts(_ context.Context, alert *entity.Alert, contacts []*entity.EmergencyContact) ([]uuid.UUID, error) {
	notified := make([]uuid.UUID, 0, len(contacts))
	for _, contact := range contacts {
		n.logger.Info("notifying emergency contact",
			slog.String("alert_id", alert.ID.String()),
			slog.String("category", string(alert.Category)),
			slog.String("contact", contact.Name),
			slog.Bool("primary", contact.IsPrimary),
		)
		notified = append(notified, contact.ID)
	}

	return notified, nil
}

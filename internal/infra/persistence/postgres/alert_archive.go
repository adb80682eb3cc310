package postgres

import (
	"context"
	"log/slog"

	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"
	"beacon/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type alertArchive struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewAlertArchive creates the gorm-backed archive, or nil when the
// database is not configured.
func NewAlertArchive(db *gorm.DB, logger *slog.Logger) service.AlertArchive {
	if db == nil {
		return nil
	}

	return &alertArchive{db: db, logger: logger}
}

// SaveAlert persists a newly created alert.
func (a *alertArchive) SaveAlert(ctx context.Context, alert *entity.Alert) error {
	if err := a.db.WithContext(ctx).Create(model.FromAlert(alert)).Error; err != nil {
		return errors.Wrap(err, "insert archived alert")
	}

	return nil
}

// UpdateAlert persists the current state of an existing alert.
func (a *alertArchive) UpdateAlert(ctx context.Context, alert *entity.Alert) error {
	row := model.FromAlert(alert)
	result := a.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"status":               row.Status,
			"note":                 row.Note,
			"notified_contact_ids": row.NotifiedContactIDs,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update archived alert")
	}
	if result.RowsAffected == 0 {
		// The alert predates the archive (e.g. DB enabled mid-session).
		return a.SaveAlert(ctx, alert)
	}

	return nil
}

package service

import (
	"context"

	"beacon/internal/domain/entity"
)

// AlertArchive is the optional storage boundary invoked after each alert
// state change. It is strictly best-effort: the in-memory lifecycle is the
// source of truth and archive failures never change its outcome.
type AlertArchive interface {
	// SaveAlert persists a newly created alert.
	SaveAlert(ctx context.Context, alert *entity.Alert) error

	// UpdateAlert persists the current state of an existing alert.
	UpdateAlert(ctx context.Context, alert *entity.Alert) error
}

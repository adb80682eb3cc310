// Package usecase defines the application use-case interfaces and their
// input/output types.
package usecase

import (
	"context"

	"beacon/internal/domain/entity"
)

// LocationStatus is the observable state of the location service.
type LocationStatus struct {
	LastPosition *entity.Position `json:"last_position"` // Most recent good reading, nil when none yet.
	IsTracking   bool             `json:"is_tracking"`   // Whether a continuous subscription is active.
	LastError    string           `json:"last_error"`    // Textual error state, empty when clear.
}

// LocationUsecase is the single source of truth for "where is this device
// right now".
type LocationUsecase interface {
	// CurrentPosition performs a one-shot acquisition, possibly answered
	// from a sufficiently fresh cached reading. A second call while one is
	// pending joins the in-flight request instead of issuing a duplicate.
	CurrentPosition(ctx context.Context) (*entity.Position, error)

	// StartTracking begins a continuous subscription, superseding any
	// existing one. IsTracking reports true from the moment it is called.
	StartTracking(ctx context.Context) error

	// StopTracking cancels the active subscription. Calling it when not
	// tracking is a no-op.
	StopTracking()

	// LastPosition returns the most recent good reading, or nil.
	LastPosition() *entity.Position

	// IsTracking reports whether a subscription is active.
	IsTracking() bool

	// LastError returns the current error state, or nil when clear.
	LastError() error

	// Status returns a consistent snapshot of the three observables.
	Status() LocationStatus
}

package usecase

import (
	"context"
	"time"

	"beacon/internal/domain/entity"
)

// SOSStatus describes the trigger countdown.
type SOSStatus struct {
	Armed     bool          `json:"armed"`
	Category  string        `json:"category,omitempty"`
	Remaining time.Duration `json:"remaining,omitempty"`
}

// SOSUsecase orchestrates the SOS control: it composes the location and
// alert use cases and the contact notifier. Arming starts a short
// countdown so an accidental press can be cancelled; triggering raises the
// alert immediately with the best position available, falling back to the
// unknown sentinel rather than failing.
type SOSUsecase interface {
	// Arm starts (or restarts) the countdown for the given category.
	Arm(ctx context.Context, category entity.AlertCategory, note string) (*SOSStatus, error)

	// Cancel aborts a running countdown. Reports whether one was armed.
	Cancel(ctx context.Context) bool

	// Trigger raises the alert now and notifies the emergency contacts.
	Trigger(ctx context.Context, category entity.AlertCategory, note string) (*entity.Alert, error)

	// Status returns the current countdown state.
	Status(ctx context.Context) *SOSStatus
}

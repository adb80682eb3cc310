// Package service defines the interfaces of the external collaborators the
// use cases depend on: the platform location provider, the contact
// notifier, the alert archive and the QR code generator.
package service

import (
	"context"
	"time"

	"beacon/internal/domain/entity"

	"github.com/pkg/errors"
)

// Sentinel errors a provider reports. The location use case maps them to
// the caller-facing taxonomy; providers never surface anything else.
var (
	// ErrProviderPermissionDenied is returned when the user declined location access
	ErrProviderPermissionDenied = errors.New("location access denied")
	// ErrProviderPositionUnavailable is returned when the provider could not determine a fix
	ErrProviderPositionUnavailable = errors.New("position unavailable")
	// ErrProviderTimeout is returned when acquisition exceeded its bound
	ErrProviderTimeout = errors.New("location request timed out")
)

// AcquireOptions tune a single acquisition or a watch subscription.
type AcquireOptions struct {
	HighAccuracy bool          // Request the best fix the platform can produce.
	Timeout      time.Duration // Bound on a single acquisition.
	MaximumAge   time.Duration // A cached platform fix younger than this is acceptable.
}

// Reading is one delivery from a watch subscription. Exactly one of
// Position and Err is set.
type Reading struct {
	Position *entity.Position
	Err      error
}

// LocationProvider is the platform location boundary. Implementations
// deliver raw coordinate/accuracy/timestamp readings and report failures
// via the sentinel errors above.
type LocationProvider interface {
	// Available reports whether the platform has location capability at all.
	Available() bool

	// CurrentPosition performs a one-shot acquisition. It blocks until the
	// platform responds, the options timeout elapses, or ctx is done.
	CurrentPosition(ctx context.Context, opts AcquireOptions) (*entity.Position, error)

	// Watch starts a continuous subscription delivering readings on its own
	// cadence until ctx is cancelled. The returned channel is closed when
	// the subscription ends.
	Watch(ctx context.Context, opts AcquireOptions) (<-chan Reading, error)
}

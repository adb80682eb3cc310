// Package impl contains the use-case implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"beacon/config"
	"beacon/internal/domain/entity"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/domain/service"
	"beacon/internal/usecase"

	"github.com/pkg/errors"
)

// Reference acquisition bounds, used when the config section is absent.
const (
	defaultOneShotTimeout  = 10 * time.Second
	defaultCacheMaxAge     = 60 * time.Second
	defaultTrackingTimeout = 30 * time.Second
	defaultTrackingMaxAge  = 10 * time.Second
)

// pendingFetch lets callers join an in-flight one-shot acquisition instead
// of issuing a duplicate platform request.
type pendingFetch struct {
	done chan struct{}
	pos  *entity.Position
	err  error
}

func (p *pendingFetch) result() (*entity.Position, error) {
	if p.err != nil {
		return nil, p.err
	}
	pos := *p.pos

	return &pos, nil
}

type locationService struct {
	provider service.LocationProvider
	loc      *config.LocationConfig
	logger   *slog.Logger

	mu          sync.Mutex
	last        *entity.Position
	lastErr     error
	tracking    bool
	pending     *pendingFetch
	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

// NewLocationService creates the location use case. The provider may be
// nil when the platform has no location capability; every acquisition then
// fails with CapabilityUnavailable.
func NewLocationService(provider service.LocationProvider, cfg *config.Config, logger *slog.Logger) usecase.LocationUsecase {
	loc := cfg.Location
	if loc == nil {
		loc = &config.LocationConfig{}
	}
	if loc.OneShotTimeout <= 0 {
		loc.OneShotTimeout = defaultOneShotTimeout
	}
	if loc.CacheMaxAge <= 0 {
		loc.CacheMaxAge = defaultCacheMaxAge
	}
	if loc.TrackingTimeout <= 0 {
		loc.TrackingTimeout = defaultTrackingTimeout
	}
	if loc.TrackingMaxAge <= 0 {
		loc.TrackingMaxAge = defaultTrackingMaxAge
	}

	return &locationService{
		provider: provider,
		loc:      loc,
		logger:   logger,
	}
}

// CurrentPosition performs a one-shot acquisition. A cached reading
// younger than the freshness tolerance answers the call directly; a call
// arriving while another is in flight joins it.
func (s *locationService) CurrentPosition(ctx context.Context) (*entity.Position, error) {
	s.mu.Lock()
	if s.provider == nil || !s.provider.Available() {
		s.lastErr = domainerrors.ErrCapabilityUnavailable
		s.mu.Unlock()

		return nil, domainerrors.ErrCapabilityUnavailable
	}

	if s.last != nil && s.last.Age(time.Now()) <= s.loc.CacheMaxAge {
		pos := *s.last
		s.mu.Unlock()

		return &pos, nil
	}

	if p := s.pending; p != nil {
		s.mu.Unlock()
		select {
		case <-p.done:
			return p.result()
		case <-ctx.Done():
			// The platform request is not cancelled mid-flight; this caller
			// just stops waiting for it.
			return nil, errors.WithStack(ctx.Err())
		}
	}

	p := &pendingFetch{done: make(chan struct{})}
	s.pending = p
	s.mu.Unlock()

	// Deliberately detached from the caller's context: abandoning callers
	// do not abort the platform request, its result still refreshes the cache.
	acquireCtx, cancel := context.WithTimeout(context.Background(), s.loc.OneShotTimeout)
	defer cancel()

	pos, err := s.provider.CurrentPosition(acquireCtx, service.AcquireOptions{
		HighAccuracy: true,
		Timeout:      s.loc.OneShotTimeout,
		MaximumAge:   s.loc.CacheMaxAge,
	})

	s.mu.Lock()
	if err != nil {
		mapped := mapProviderError(err)
		s.lastErr = mapped
		p.err = mapped
	} else {
		s.last = pos
		s.lastErr = nil
		p.pos = pos
	}
	s.pending = nil
	s.mu.Unlock()
	close(p.done)

	return p.result()
}

// StartTracking begins a continuous subscription, cancelling any existing
// one first so two watchers are never live at the same time.
func (s *locationService) StartTracking(ctx context.Context) error {
	s.mu.Lock()
	if s.provider == nil || !s.provider.Available() {
		s.lastErr = domainerrors.ErrCapabilityUnavailable
		s.mu.Unlock()

		return domainerrors.ErrCapabilityUnavailable
	}
	prevCancel, prevDone := s.cancelWatch, s.watchDone
	s.cancelWatch, s.watchDone = nil, nil
	s.tracking = true
	s.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	readings, err := s.provider.Watch(watchCtx, service.AcquireOptions{
		HighAccuracy: true,
		Timeout:      s.loc.TrackingTimeout,
		MaximumAge:   s.loc.TrackingMaxAge,
	})
	if err != nil {
		cancel()
		mapped := mapProviderError(err)
		s.mu.Lock()
		s.lastErr = mapped
		s.tracking = false
		s.mu.Unlock()

		return mapped
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancelWatch = cancel
	s.watchDone = done
	s.mu.Unlock()

	go s.consumeReadings(readings, done)

	return nil
}

// StopTracking cancels the active subscription if any. Idempotent.
func (s *locationService) StopTracking() {
	s.mu.Lock()
	cancel, done := s.cancelWatch, s.watchDone
	s.cancelWatch, s.watchDone = nil, nil
	s.tracking = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// consumeReadings applies subscription deliveries in order. A failed
// reading records the error state but never clears the last good position
// and never stops tracking; a reading older than the current last-known is
// dropped.
func (s *locationService) consumeReadings(readings <-chan service.Reading, done chan struct{}) {
	defer close(done)

	for reading := range readings {
		if reading.Err != nil {
			mapped := mapProviderError(reading.Err)
			s.mu.Lock()
			s.lastErr = mapped
			s.mu.Unlock()
			s.logger.Warn("tracking reading failed", slog.String("error", mapped.Error()))

			continue
		}

		pos := reading.Position
		s.mu.Lock()
		if s.last != nil && pos.CapturedAt.Before(s.last.CapturedAt) {
			s.mu.Unlock()
			s.logger.Debug("discarding stale reading",
				slog.Time("captured_at", pos.CapturedAt),
			)

			continue
		}
		var movedMeters float64
		if s.last != nil {
			movedMeters = s.last.DistanceMeters(*pos)
		}
		s.last = pos
		s.lastErr = nil
		s.mu.Unlock()

		s.logger.Debug("position updated",
			slog.Float64("latitude", pos.Latitude),
			slog.Float64("longitude", pos.Longitude),
			slog.Float64("accuracy_m", pos.AccuracyMeters),
			slog.Float64("moved_m", movedMeters),
		)
	}
}

// LastPosition returns the most recent good reading, or nil.
func (s *locationService) LastPosition() *entity.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	pos := *s.last

	return &pos
}

// IsTracking reports whether a subscription is active.
func (s *locationService) IsTracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tracking
}

// LastError returns the current error state, or nil when clear.
func (s *locationService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// Status returns a consistent snapshot of the observable state.
func (s *locationService) Status() usecase.LocationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := usecase.LocationStatus{IsTracking: s.tracking}
	if s.last != nil {
		pos := *s.last
		status.LastPosition = &pos
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}

	return status
}

// mapProviderError translates provider sentinels into the caller-facing
// taxonomy.
func mapProviderError(err error) error {
	switch {
	case errors.Is(err, service.ErrProviderPermissionDenied):
		return domainerrors.ErrPermissionDenied
	case errors.Is(err, service.ErrProviderTimeout), errors.Is(err, context.DeadlineExceeded):
		return domainerrors.ErrLocationTimeout
	default:
		return domainerrors.ErrPositionUnavailable
	}
}

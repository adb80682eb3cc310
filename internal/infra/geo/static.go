// Package geo provides the platform location provider implementations.
package geo

import (
	"context"
	"time"

	"beacon/config"
	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"
)

const (
	defaultStaticInterval = 5 * time.Second
	defaultStaticAccuracy = 15.0
)

// StaticProvider reports a fixed position. It stands in for a real
// platform provider in development and demo deployments.
type StaticProvider struct {
	latitude  float64
	longitude float64
	accuracy  float64
	interval  time.Duration
}

// NewStaticProvider builds the provider from config.
func NewStaticProvider(cfg *config.StaticProviderConfig) *StaticProvider {
	provider := &StaticProvider{
		interval: defaultStaticInterval,
		accuracy: defaultStaticAccuracy,
	}
	if cfg != nil {
		provider.latitude = cfg.Latitude
		provider.longitude = cfg.Longitude
		if cfg.AccuracyMeters > 0 {
			provider.accuracy = cfg.AccuracyMeters
		}
		if cfg.Interval > 0 {
			provider.interval = cfg.Interval
		}
	}

	return provider
}

// Available always reports true.
func (p *StaticProvider) Available() bool {
	return true
}

// CurrentPosition returns the configured fix stamped with the current time.
func (p *StaticProvider) CurrentPosition(ctx context.Context, _ service.AcquireOptions) (*entity.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return p.reading(), nil
}

// Watch emits the configured fix immediately and then on every interval
// tick until ctx is cancelled.
func (p *StaticProvider) Watch(ctx context.Context, _ service.AcquireOptions) (<-chan service.Reading, error) {
	readings := make(chan service.Reading)

	go func() {
		defer close(readings)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case readings <- service.Reading{Position: p.reading()}:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return readings, nil
}

func (p *StaticProvider) reading() *entity.Position {
	return &entity.Position{
		Latitude:       p.latitude,
		Longitude:      p.longitude,
		AccuracyMeters: p.accuracy,
		CapturedAt:     time.Now(),
	}
}

package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"beacon/config"
	"beacon/internal/domain/entity"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable platform boundary. One-shot acquisitions
// pop results from the fetch script; watches forward readings from source
// until their context ends.
type fakeProvider struct {
	mu         sync.Mutex
	available  bool
	fetches    []fetchResult
	fetchCalls int
	fetchGate  chan struct{} // when set, one-shot calls block until closed
	source     chan service.Reading
	watchErr   error
	watchCalls int
}

type fetchResult struct {
	pos *entity.Position
	err error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		available: true,
		source:    make(chan service.Reading),
	}
}

func (p *fakeProvider) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.available
}

func (p *fakeProvider) CurrentPosition(ctx context.Context, _ service.AcquireOptions) (*entity.Position, error) {
	p.mu.Lock()
	p.fetchCalls++
	gate := p.fetchGate
	var next fetchResult
	if len(p.fetches) > 0 {
		next = p.fetches[0]
		if len(p.fetches) > 1 {
			p.fetches = p.fetches[1:]
		}
	}
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if next.err != nil {
		return nil, next.err
	}
	if next.pos == nil {
		return nil, service.ErrProviderPositionUnavailable
	}
	pos := *next.pos

	return &pos, nil
}

func (p *fakeProvider) Watch(ctx context.Context, _ service.AcquireOptions) (<-chan service.Reading, error) {
	p.mu.Lock()
	p.watchCalls++
	err := p.watchErr
	src := p.source
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make(chan service.Reading)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case reading, ok := <-src:
				if !ok {
					return
				}
				select {
				case out <- reading:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (p *fakeProvider) fetchCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.fetchCalls
}

func fixAt(lat, lon float64, capturedAt time.Time) *entity.Position {
	return &entity.Position{
		Latitude:       lat,
		Longitude:      lon,
		AccuracyMeters: 10,
		CapturedAt:     capturedAt,
	}
}

func newLocationServiceForTest(provider service.LocationProvider) *locationService {
	cfg := &config.Config{
		Location: &config.LocationConfig{
			OneShotTimeout:  time.Second,
			CacheMaxAge:     time.Minute,
			TrackingTimeout: time.Second,
			TrackingMaxAge:  time.Second,
		},
	}

	return NewLocationService(provider, cfg, discardLogger()).(*locationService)
}

func TestLocationService_CurrentPosition_Success(t *testing.T) {
	provider := newFakeProvider()
	provider.fetches = []fetchResult{{pos: fixAt(25.03, 121.56, time.Now())}}
	service := newLocationServiceForTest(provider)

	pos, err := service.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.03, pos.Latitude)
	assert.Equal(t, 121.56, pos.Longitude)

	status := service.Status()
	require.NotNil(t, status.LastPosition)
	assert.Empty(t, status.LastError)
}

func TestLocationService_CurrentPosition_NoProvider(t *testing.T) {
	service := newLocationServiceForTest(nil)

	pos, err := service.CurrentPosition(context.Background())
	assert.Nil(t, pos)
	assert.ErrorIs(t, err, domainerrors.ErrCapabilityUnavailable)
	assert.ErrorIs(t, service.LastError(), domainerrors.ErrCapabilityUnavailable)
}

func TestLocationService_CurrentPosition_ProviderUnavailable(t *testing.T) {
	provider := newFakeProvider()
	provider.available = false
	service := newLocationServiceForTest(provider)

	_, err := service.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrCapabilityUnavailable)
	assert.Zero(t, provider.fetchCount())
}

func TestLocationService_CurrentPosition_FreshCacheSkipsProvider(t *testing.T) {
	provider := newFakeProvider()
	provider.fetches = []fetchResult{{pos: fixAt(25.03, 121.56, time.Now())}}
	service := newLocationServiceForTest(provider)

	first, err := service.CurrentPosition(context.Background())
	require.NoError(t, err)
	second, err := service.CurrentPosition(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.fetchCount())
}

func TestLocationService_CurrentPosition_StaleCacheRefetches(t *testing.T) {
	provider := newFakeProvider()
	provider.fetches = []fetchResult{
		{pos: fixAt(25.03, 121.56, time.Now().Add(-2*time.Minute))}, // already older than the tolerance
		{pos: fixAt(25.04, 121.57, time.Now())},
	}
	service := newLocationServiceForTest(provider)

	_, err := service.CurrentPosition(context.Background())
	require.NoError(t, err)
	second, err := service.CurrentPosition(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25.04, second.Latitude)
	assert.Equal(t, 2, provider.fetchCount())
}

func TestLocationService_CurrentPosition_PermissionDeniedKeepsLastPosition(t *testing.T) {
	provider := newFakeProvider()
	provider.fetches = []fetchResult{
		{pos: fixAt(25.03, 121.56, time.Now().Add(-2 * time.Minute))},
		{err: service.ErrProviderPermissionDenied},
	}
	svc := newLocationServiceForTest(provider)

	_, err := svc.CurrentPosition(context.Background())
	require.NoError(t, err)

	pos, err := svc.CurrentPosition(context.Background())
	assert.Nil(t, pos)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	// The stale-but-known reading survives the failure.
	require.NotNil(t, svc.LastPosition())
	assert.Equal(t, 25.03, svc.LastPosition().Latitude)
	assert.ErrorIs(t, svc.LastError(), domainerrors.ErrPermissionDenied)
}

func TestLocationService_CurrentPosition_TimeoutMapping(t *testing.T) {
	provider := newFakeProvider()
	provider.fetches = []fetchResult{{err: service.ErrProviderTimeout}}
	svc := newLocationServiceForTest(provider)

	_, err := svc.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrLocationTimeout)
}

func TestLocationService_CurrentPosition_ConcurrentCallersShareOneFetch(t *testing.T) {
	provider := newFakeProvider()
	provider.fetchGate = make(chan struct{})
	provider.fetches = []fetchResult{{pos: fixAt(25.03, 121.56, time.Now())}}
	service := newLocationServiceForTest(provider)

	const callers = 5
	results := make(chan error, callers)
	var started sync.WaitGroup
	started.Add(callers)
	for range callers {
		go func() {
			started.Done()
			_, err := service.CurrentPosition(context.Background())
			results <- err
		}()
	}

	started.Wait()
	// Let the joiners reach the pending fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(provider.fetchGate)

	for range callers {
		require.NoError(t, <-results)
	}
	assert.Equal(t, 1, provider.fetchCount())
}

func TestLocationService_Tracking_UpdatesLastPosition(t *testing.T) {
	provider := newFakeProvider()
	service := newLocationServiceForTest(provider)

	require.NoError(t, service.StartTracking(context.Background()))
	assert.True(t, service.IsTracking())

	provider.source <- serviceReading(fixAt(25.03, 121.56, time.Now()))

	require.Eventually(t, func() bool {
		last := service.LastPosition()

		return last != nil && last.Latitude == 25.03
	}, time.Second, 5*time.Millisecond)

	service.StopTracking()
	assert.False(t, service.IsTracking())
}

func TestLocationService_Tracking_FailedReadingKeepsPositionAndTracking(t *testing.T) {
	provider := newFakeProvider()
	svc := newLocationServiceForTest(provider)

	require.NoError(t, svc.StartTracking(context.Background()))
	provider.source <- serviceReading(fixAt(25.03, 121.56, time.Now()))
	require.Eventually(t, func() bool { return svc.LastPosition() != nil }, time.Second, 5*time.Millisecond)

	provider.source <- service.Reading{Err: service.ErrProviderPositionUnavailable}
	require.Eventually(t, func() bool { return svc.LastError() != nil }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, svc.LastError(), domainerrors.ErrPositionUnavailable)
	assert.True(t, svc.IsTracking())
	require.NotNil(t, svc.LastPosition())
	assert.Equal(t, 25.03, svc.LastPosition().Latitude)

	// A later good reading clears the error state again.
	provider.source <- serviceReading(fixAt(25.04, 121.57, time.Now()))
	require.Eventually(t, func() bool { return svc.LastError() == nil }, time.Second, 5*time.Millisecond)

	svc.StopTracking()
}

func TestLocationService_Tracking_DropsStaleReadings(t *testing.T) {
	provider := newFakeProvider()
	service := newLocationServiceForTest(provider)

	require.NoError(t, service.StartTracking(context.Background()))

	now := time.Now()
	provider.source <- serviceReading(fixAt(25.03, 121.56, now))
	require.Eventually(t, func() bool { return service.LastPosition() != nil }, time.Second, 5*time.Millisecond)

	// Older capture timestamp than the current last-known: ignored.
	provider.source <- serviceReading(fixAt(24.00, 120.00, now.Add(-time.Minute)))
	// A fresh reading after it proves the stale one was consumed and dropped.
	provider.source <- serviceReading(fixAt(25.05, 121.58, now.Add(time.Second)))

	require.Eventually(t, func() bool {
		return service.LastPosition().Latitude == 25.05
	}, time.Second, 5*time.Millisecond)

	service.StopTracking()
}

func TestLocationService_StartTracking_SupersedesPreviousWatch(t *testing.T) {
	provider := newFakeProvider()
	service := newLocationServiceForTest(provider)

	require.NoError(t, service.StartTracking(context.Background()))
	require.NoError(t, service.StartTracking(context.Background()))

	assert.True(t, service.IsTracking())
	assert.Equal(t, 2, provider.watchCalls)

	// The surviving watch still delivers.
	provider.source <- serviceReading(fixAt(25.03, 121.56, time.Now()))
	require.Eventually(t, func() bool { return service.LastPosition() != nil }, time.Second, 5*time.Millisecond)

	service.StopTracking()
}

func TestLocationService_StartTracking_WatchError(t *testing.T) {
	provider := newFakeProvider()
	provider.watchErr = service.ErrProviderPermissionDenied
	svc := newLocationServiceForTest(provider)

	err := svc.StartTracking(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	assert.False(t, svc.IsTracking())
}

func TestLocationService_StopTracking_Idempotent(t *testing.T) {
	provider := newFakeProvider()
	service := newLocationServiceForTest(provider)

	service.StopTracking()

	require.NoError(t, service.StartTracking(context.Background()))
	service.StopTracking()
	service.StopTracking()

	assert.False(t, service.IsTracking())
}

func serviceReading(pos *entity.Position) service.Reading {
	return service.Reading{Position: pos}
}

package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"beacon/config"
	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultPollInterval = 15 * time.Second

// RemoteProvider reads positions from a companion-device location bridge
// over HTTP. The bridge is the actual platform boundary when this service
// runs headless: it answers GET requests with the device's latest fix or a
// well-known error code.
type RemoteProvider struct {
	endpoint string
	poll     time.Duration
	client   *http.Client
}

// bridgeResponse is the wire shape of the companion bridge.
type bridgeResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	AccuracyMeters   float64 `json:"accuracy_meters"`
	CapturedAtMillis int64   `json:"captured_at_millis"`
	Error            string  `json:"error,omitempty"`
}

// Bridge error codes, mirroring the platform geolocation taxonomy.
const (
	bridgeErrPermissionDenied    = "permission_denied"
	bridgeErrPositionUnavailable = "position_unavailable"
	bridgeErrTimeout             = "timeout"
)

// NewRemoteProvider builds the provider from config.
func NewRemoteProvider(cfg *config.RemoteProviderConfig) *RemoteProvider {
	provider := &RemoteProvider{
		poll:   defaultPollInterval,
		client: &http.Client{},
	}
	if cfg != nil {
		provider.endpoint = cfg.Endpoint
		if cfg.PollInterval > 0 {
			provider.poll = cfg.PollInterval
		}
	}

	return provider
}

// Available reports whether a bridge endpoint is configured.
func (p *RemoteProvider) Available() bool {
	return p.endpoint != ""
}

// CurrentPosition fetches one fix from the bridge.
func (p *RemoteProvider) CurrentPosition(ctx context.Context, opts service.AcquireOptions) (*entity.Position, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build bridge request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, service.ErrProviderTimeout
		}

		return nil, errors.Wrap(service.ErrProviderPositionUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(service.ErrProviderPositionUnavailable, "bridge returned %d", resp.StatusCode)
	}

	var body bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(service.ErrProviderPositionUnavailable, err.Error())
	}

	if body.Error != "" {
		return nil, mapBridgeError(body.Error)
	}

	capturedAt := time.Now()
	if body.CapturedAtMillis > 0 {
		capturedAt = time.UnixMilli(body.CapturedAtMillis)
	}

	return &entity.Position{
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
		AccuracyMeters: body.AccuracyMeters,
		CapturedAt:     capturedAt,
	}, nil
}

// Watch polls the bridge on its interval, forwarding each outcome as a
// reading until ctx is cancelled.
func (p *RemoteProvider) Watch(ctx context.Context, opts service.AcquireOptions) (<-chan service.Reading, error) {
	readings := make(chan service.Reading)

	go func() {
		defer close(readings)

		ticker := time.NewTicker(p.poll)
		defer ticker.Stop()

		for {
			position, err := p.CurrentPosition(ctx, opts)
			reading := service.Reading{Position: position, Err: err}
			if ctx.Err() != nil {
				return
			}

			select {
			case readings <- reading:
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

func mapBridgeError(code string) error {
	switch code {
	case bridgeErrPermissionDenied:
		return service.ErrProviderPermissionDenied
	case bridgeErrTimeout:
		return service.ErrProviderTimeout
	case bridgeErrPositionUnavailable:
		return service.ErrProviderPositionUnavailable
	default:
		return errors.Wrapf(service.ErrProviderPositionUnavailable, "bridge error %q", code)
	}
}

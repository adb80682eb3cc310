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
)

const defaultCountdown = 5 * time.Second

// sosService is the orchestrator behind the SOS control. It is the only
// place that moves data between the location and alert use cases: it asks
// for a position, hands the result to the lifecycle, and fans the created
// alert out to the contact notifier.
type sosService struct {
	location  usecase.LocationUsecase
	alerts    usecase.AlertUsecase
	contacts  usecase.ContactUsecase
	notifier  service.ContactNotifier
	countdown time.Duration
	logger    *slog.Logger

	mu            sync.Mutex
	timer         *time.Timer
	armedCategory entity.AlertCategory
	armedNote     string
	deadline      time.Time
}

// NewSOSService creates the SOS orchestrator.
func NewSOSService(
	location usecase.LocationUsecase,
	alerts usecase.AlertUsecase,
	contacts usecase.ContactUsecase,
	notifier service.ContactNotifier,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SOSUsecase {
	countdown := defaultCountdown
	if cfg.SOS != nil && cfg.SOS.Countdown > 0 {
		countdown = cfg.SOS.Countdown
	}

	return &sosService{
		location:  location,
		alerts:    alerts,
		contacts:  contacts,
		notifier:  notifier,
		countdown: countdown,
		logger:    logger,
	}
}

// Arm starts the countdown. Arming again restarts it; arming while an
// alert is active is rejected so the control cannot re-trigger.
func (s *sosService) Arm(ctx context.Context, category entity.AlertCategory, note string) (*usecase.SOSStatus, error) {
	if !category.Valid() {
		return nil, domainerrors.ErrInvalidCategory
	}
	if s.alerts.Active(ctx) != nil {
		return nil, domainerrors.ErrAlertAlreadyActive
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.armedCategory = category
	s.armedNote = note
	s.deadline = time.Now().Add(s.countdown)
	s.timer = time.AfterFunc(s.countdown, s.fire)
	status := s.statusLocked()
	s.mu.Unlock()

	s.logger.Info("sos armed",
		slog.String("category", string(category)),
		slog.Duration("countdown", s.countdown),
	)

	return status, nil
}

// Cancel aborts a running countdown. Safe to call when none is armed.
func (s *sosService) Cancel(_ context.Context) bool {
	s.mu.Lock()
	armed := s.timer != nil
	if armed {
		s.timer.Stop()
		s.timer = nil
		s.armedCategory = ""
		s.armedNote = ""
	}
	s.mu.Unlock()

	if armed {
		s.logger.Info("sos countdown cancelled")
	}

	return armed
}

// fire runs when the countdown elapses.
func (s *sosService) fire() {
	s.mu.Lock()
	category, note := s.armedCategory, s.armedNote
	s.timer = nil
	s.armedCategory = ""
	s.armedNote = ""
	s.mu.Unlock()

	if category == "" {
		return
	}
	if _, err := s.Trigger(context.Background(), category, note); err != nil {
		s.logger.Error("sos countdown trigger failed", slog.String("error", err.Error()))
	}
}

// Trigger raises the alert immediately. Position resolution degrades
// gracefully: cached reading, then a fresh one-shot, then the unknown
// sentinel — a failed acquisition never blocks an emergency alert.
func (s *sosService) Trigger(ctx context.Context, category entity.AlertCategory, note string) (*entity.Alert, error) {
	s.Cancel(ctx)

	position := s.location.LastPosition()
	if position == nil {
		fresh, err := s.location.CurrentPosition(ctx)
		if err != nil {
			s.logger.Warn("triggering alert without location", slog.String("error", err.Error()))
			sentinel := entity.UnknownPosition()
			position = &sentinel
		} else {
			position = fresh
		}
	}

	alert, err := s.alerts.Create(ctx, &usecase.CreateAlertInput{
		Category: category,
		Location: position,
		Note:     note,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, alert)

	return alert, nil
}

// notify fans the alert out to the emergency contacts and records the
// successes on the alert. Notification failures are logged, never fatal.
func (s *sosService) notify(ctx context.Context, alert *entity.Alert) {
	if s.notifier == nil {
		return
	}
	contacts := s.contacts.ListContacts(ctx)
	if len(contacts) == 0 {
		return
	}

	notified, err := s.notifier.NotifyContacts(ctx, alert, contacts)
	if err != nil {
		s.logger.Warn("contact notification failed",
			slog.String("alert_id", alert.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	if len(notified) == 0 {
		return
	}
	if err := s.alerts.RecordNotified(ctx, alert.ID, notified); err != nil {
		s.logger.Warn("recording notified contacts failed",
			slog.String("alert_id", alert.ID.String()),
			slog.String("error", err.Error()),
		)

		return
	}
	alert.NotifiedContactIDs = append(alert.NotifiedContactIDs, notified...)
}

// Status returns the current countdown state.
func (s *sosService) Status(_ context.Context) *usecase.SOSStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked()
}

func (s *sosService) statusLocked() *usecase.SOSStatus {
	if s.timer == nil {
		return &usecase.SOSStatus{}
	}

	remaining := time.Until(s.deadline)
	if remaining < 0 {
		remaining = 0
	}

	return &usecase.SOSStatus{
		Armed:     true,
		Category:  string(s.armedCategory),
		Remaining: remaining,
	}
}

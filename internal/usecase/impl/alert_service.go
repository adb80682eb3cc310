package impl

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"beacon/internal/domain/entity"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/domain/service"
	"beacon/internal/usecase"

	"github.com/google/uuid"
)

// alertService owns the alert state machine for the session: an
// append-only history, the at-most-one active alert, and the terminal
// transitions. All state is in-memory; the archive collaborator is a
// best-effort mirror that never influences outcomes.
type alertService struct {
	archive service.AlertArchive
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	alerts []*entity.Alert // newest first
	active *entity.Alert
}

// NewAlertService creates the alert lifecycle use case. archive may be nil.
func NewAlertService(archive service.AlertArchive, logger *slog.Logger) usecase.AlertUsecase {
	return &alertService{
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// Create raises a new active alert. It refuses to create a second active
// alert; the caller must resolve or cancel the current one first.
func (s *alertService) Create(ctx context.Context, input *usecase.CreateAlertInput) (*entity.Alert, error) {
	if !input.Category.Valid() {
		return nil, domainerrors.ErrInvalidCategory
	}

	location := entity.UnknownPosition()
	if input.Location != nil {
		location = *input.Location
	}

	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()

		return nil, domainerrors.ErrAlertAlreadyActive
	}

	alert := &entity.Alert{
		ID:                 uuid.New(),
		Category:           input.Category,
		Location:           location,
		CreatedAt:          s.now(),
		Status:             entity.StatusActive,
		Note:               input.Note,
		NotifiedContactIDs: []uuid.UUID{},
	}
	s.alerts = append([]*entity.Alert{alert}, s.alerts...)
	s.active = alert
	snapshot := alert.Clone()
	s.mu.Unlock()

	s.logger.Info("alert created",
		slog.String("alert_id", snapshot.ID.String()),
		slog.String("category", string(snapshot.Category)),
		slog.Bool("location_known", !snapshot.Location.IsUnknown()),
	)
	s.archiveSave(ctx, snapshot)

	return snapshot, nil
}

// Resolve transitions an active alert to resolved.
func (s *alertService) Resolve(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	return s.transition(ctx, id, entity.StatusResolved)
}

// MarkFalseAlarm transitions an active alert to false_alarm.
func (s *alertService) MarkFalseAlarm(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	return s.transition(ctx, id, entity.StatusFalseAlarm)
}

// transition moves an alert out of active. Unknown ids and terminal alerts
// report typed failures and leave every field untouched.
func (s *alertService) transition(ctx context.Context, id uuid.UUID, target entity.AlertStatus) (*entity.Alert, error) {
	s.mu.Lock()
	alert := s.findLocked(id)
	if alert == nil {
		s.mu.Unlock()

		return nil, domainerrors.ErrAlertNotFound
	}
	if alert.Status != entity.StatusActive {
		s.mu.Unlock()

		return nil, domainerrors.ErrInvalidTransition
	}

	alert.Status = target
	if s.active != nil && s.active.ID == id {
		s.active = nil
	}
	snapshot := alert.Clone()
	s.mu.Unlock()

	s.logger.Info("alert transitioned",
		slog.String("alert_id", snapshot.ID.String()),
		slog.String("status", string(snapshot.Status)),
	)
	s.archiveUpdate(ctx, snapshot)

	return snapshot, nil
}

// History returns snapshot copies of every alert, ordered by CreatedAt
// descending with ties in reverse insertion order.
func (s *alertService) History(_ context.Context) []*entity.Alert {
	s.mu.Lock()
	history := make([]*entity.Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		history = append(history, alert.Clone())
	}
	s.mu.Unlock()

	// The slice is already newest-first by insertion; the stable sort only
	// reorders entries created with out-of-order timestamps while keeping
	// reverse insertion order for ties.
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})

	return history
}

// Active returns a copy of the currently active alert, or nil.
func (s *alertService) Active(_ context.Context) *entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}

	return s.active.Clone()
}

// RecordNotified appends contact IDs to an alert's notified set,
// ignoring duplicates.
func (s *alertService) RecordNotified(ctx context.Context, id uuid.UUID, contactIDs []uuid.UUID) error {
	s.mu.Lock()
	alert := s.findLocked(id)
	if alert == nil {
		s.mu.Unlock()

		return domainerrors.ErrAlertNotFound
	}
	for _, contactID := range contactIDs {
		if !slices.Contains(alert.NotifiedContactIDs, contactID) {
			alert.NotifiedContactIDs = append(alert.NotifiedContactIDs, contactID)
		}
	}
	snapshot := alert.Clone()
	s.mu.Unlock()

	s.archiveUpdate(ctx, snapshot)

	return nil
}

func (s *alertService) findLocked(id uuid.UUID) *entity.Alert {
	for _, alert := range s.alerts {
		if alert.ID == id {
			return alert
		}
	}

	return nil
}

func (s *alertService) archiveSave(ctx context.Context, alert *entity.Alert) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveAlert(ctx, alert); err != nil {
		s.logger.Warn("alert archive save failed",
			slog.String("alert_id", alert.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *alertService) archiveUpdate(ctx context.Context, alert *entity.Alert) {
	if s.archive == nil {
		return
	}
	if err := s.archive.UpdateAlert(ctx, alert); err != nil {
		s.logger.Warn("alert archive update failed",
			slog.String("alert_id", alert.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

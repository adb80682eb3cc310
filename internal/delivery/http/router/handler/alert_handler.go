package handler

import (
	"log/slog"
	"net/http"
	"time"

	"beacon/internal/delivery/http/response"
	"beacon/internal/domain/entity"
	"beacon/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AlertHandlerParams holds dependencies for AlertHandler, injected by Fx.
type AlertHandlerParams struct {
	fx.In

	AlertUC usecase.AlertUsecase
	Logger  *slog.Logger
}

// AlertHandler exposes the alert lifecycle over HTTP.
type AlertHandler struct {
	alertUC usecase.AlertUsecase
	logger  *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler
func NewAlertHandler(params AlertHandlerParams) *AlertHandler {
	return &AlertHandler{
		alertUC: params.AlertUC,
		logger:  params.Logger,
	}
}

// CreateAlertRequest represents the request body for raising an alert.
// Location is optional; omitting it raises the alert with the unknown
// sentinel.
type CreateAlertRequest struct {
	Category string           `json:"category" validate:"required,oneof=general medical fire police"`
	Location *PositionPayload `json:"location,omitempty"`
	Note     string           `json:"note,omitempty"`
}

// PositionPayload is the wire shape of a location snapshot.
type PositionPayload struct {
	Latitude         float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude        float64 `json:"longitude" validate:"min=-180,max=180"`
	AccuracyMeters   float64 `json:"accuracy_meters" validate:"min=0"`
	CapturedAtMillis int64   `json:"captured_at_millis,omitempty"`
}

func (p *PositionPayload) toEntity() *entity.Position {
	capturedAt := time.Now()
	if p.CapturedAtMillis > 0 {
		capturedAt = time.UnixMilli(p.CapturedAtMillis)
	}

	return &entity.Position{
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		AccuracyMeters: p.AccuracyMeters,
		CapturedAt:     capturedAt,
	}
}

// CreateAlert handles raising a new alert.
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid alert input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid alert input")
	}

	input := &usecase.CreateAlertInput{
		Category: entity.AlertCategory(req.Category),
		Note:     req.Note,
	}
	if req.Location != nil {
		input.Location = req.Location.toEntity()
	}

	alert, err := h.alertUC.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, alert, "Alert created")
}

// GetHistory handles retrieving the session's alert history.
func (h *AlertHandler) GetHistory(c echo.Context) error {
	history := h.alertUC.History(c.Request().Context())

	return response.Success(c, http.StatusOK, history, "Alert history retrieved")
}

// GetActive handles retrieving the currently active alert.
func (h *AlertHandler) GetActive(c echo.Context) error {
	alert := h.alertUC.Active(c.Request().Context())
	if alert == nil {
		return response.Success(c, http.StatusOK, nil, "No active alert")
	}

	return response.Success(c, http.StatusOK, alert, "Active alert retrieved")
}

// ResolveAlert handles transitioning an alert to resolved.
func (h *AlertHandler) ResolveAlert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	alert, err := h.alertUC.Resolve(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, alert, "Alert resolved")
}

// MarkFalseAlarm handles transitioning an alert to false_alarm.
func (h *AlertHandler) MarkFalseAlarm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	alert, err := h.alertUC.MarkFalseAlarm(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, alert, "Alert marked as false alarm")
}

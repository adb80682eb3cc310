package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/delivery/http/response"
	"beacon/internal/domain/entity"
	"beacon/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SOSHandlerParams holds dependencies for SOSHandler, injected by Fx.
type SOSHandlerParams struct {
	fx.In

	SOSUC  usecase.SOSUsecase
	Logger *slog.Logger
}

// SOSHandler exposes the SOS control over HTTP.
type SOSHandler struct {
	sosUC  usecase.SOSUsecase
	logger *slog.Logger
}

// NewSOSHandler is the constructor for SOSHandler
func NewSOSHandler(params SOSHandlerParams) *SOSHandler {
	return &SOSHandler{
		sosUC:  params.SOSUC,
		logger: params.Logger,
	}
}

// SOSRequest represents the request body for arming or triggering SOS.
type SOSRequest struct {
	Category string `json:"category" validate:"required,oneof=general medical fire police"`
	Note     string `json:"note,omitempty"`
}

// Arm handles starting the SOS countdown.
func (h *SOSHandler) Arm(c echo.Context) error {
	var req SOSRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid SOS input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid SOS input")
	}

	status, err := h.sosUC.Arm(c.Request().Context(), entity.AlertCategory(req.Category), req.Note)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, status, "SOS armed")
}

// Cancel handles aborting the SOS countdown.
func (h *SOSHandler) Cancel(c echo.Context) error {
	cancelled := h.sosUC.Cancel(c.Request().Context())
	if !cancelled {
		return response.Success(c, http.StatusOK, nil, "No countdown was armed")
	}

	return response.Success(c, http.StatusOK, nil, "SOS countdown cancelled")
}

// Trigger handles raising the alert immediately.
func (h *SOSHandler) Trigger(c echo.Context) error {
	var req SOSRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid SOS input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid SOS input")
	}

	alert, err := h.sosUC.Trigger(c.Request().Context(), entity.AlertCategory(req.Category), req.Note)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, alert, "Alert triggered")
}

// GetStatus handles reading the countdown state.
func (h *SOSHandler) GetStatus(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.sosUC.Status(c.Request().Context()), "SOS status retrieved")
}

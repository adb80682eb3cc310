package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/delivery/http/response"
	"beacon/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler exposes the location service over HTTP.
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// GetStatus handles reading the observable location state.
func (h *LocationHandler) GetStatus(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.locationUC.Status(), "Location status retrieved")
}

// AcquirePosition handles a one-shot acquisition.
func (h *LocationHandler) AcquirePosition(c echo.Context) error {
	position, err := h.locationUC.CurrentPosition(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, position, "Position acquired")
}

// StartTracking handles starting the continuous subscription.
func (h *LocationHandler) StartTracking(c echo.Context) error {
	if err := h.locationUC.StartTracking(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.locationUC.Status(), "Tracking started")
}

// StopTracking handles cancelling the continuous subscription.
func (h *LocationHandler) StopTracking(c echo.Context) error {
	h.locationUC.StopTracking()

	return response.Success(c, http.StatusOK, h.locationUC.Status(), "Tracking stopped")
}

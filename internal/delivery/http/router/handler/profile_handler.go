package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/delivery/http/response"
	"beacon/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler exposes the emergency profile over HTTP.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents the request body for updating the profile.
// Only the provided fields are applied.
type UpdateProfileRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Age            *int      `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	EmergencyID    *string   `json:"emergency_id,omitempty" validate:"omitempty,max=50"`
	BloodType      *string   `json:"blood_type,omitempty" validate:"omitempty,max=10"`
	Allergies      *[]string `json:"allergies,omitempty"`
	Medications    *[]string `json:"medications,omitempty"`
	Conditions     *[]string `json:"conditions,omitempty"`
	EmergencyNotes *string   `json:"emergency_notes,omitempty" validate:"omitempty,max=1000"`
}

// GetProfile handles retrieving the emergency profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.profileUC.GetProfile(c.Request().Context()), "Profile retrieved")
}

// UpdateProfile handles modifying the emergency profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid profile input")
	}

	profile, err := h.profileUC.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		Name:           req.Name,
		Age:            req.Age,
		EmergencyID:    req.EmergencyID,
		BloodType:      req.BloodType,
		Allergies:      req.Allergies,
		Medications:    req.Medications,
		Conditions:     req.Conditions,
		EmergencyNotes: req.EmergencyNotes,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// GetEmergencyCard renders the profile as a QR code PNG for responders.
func (h *ProfileHandler) GetEmergencyCard(c echo.Context) error {
	png, err := h.profileUC.EmergencyCard(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

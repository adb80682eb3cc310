package usecase

import (
	"context"

	"beacon/internal/domain/entity"
)

// UpdateProfileInput represents the input for updating the emergency profile
type UpdateProfileInput struct {
	Name           *string   `json:"name,omitempty"`
	Age            *int      `json:"age,omitempty"`
	EmergencyID    *string   `json:"emergency_id,omitempty"`
	BloodType      *string   `json:"blood_type,omitempty"`
	Allergies      *[]string `json:"allergies,omitempty"`
	Medications    *[]string `json:"medications,omitempty"`
	Conditions     *[]string `json:"conditions,omitempty"`
	EmergencyNotes *string   `json:"emergency_notes,omitempty"`
}

// ProfileUsecase manages the session's emergency profile.
type ProfileUsecase interface {
	GetProfile(ctx context.Context) *entity.EmergencyProfile
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.EmergencyProfile, error)

	// EmergencyCard renders the profile as a PNG QR code for responders.
	EmergencyCard(ctx context.Context) ([]byte, error)
}

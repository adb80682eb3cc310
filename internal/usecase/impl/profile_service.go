package impl

import (
	"context"
	"sync"
	"time"

	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"
	"beacon/internal/usecase"

	"github.com/pkg/errors"
)

// profileService holds the session's single emergency profile.
type profileService struct {
	qrcode service.QRCodeService

	mu      sync.Mutex
	profile *entity.EmergencyProfile
}

// NewProfileService creates the profile use case with an empty profile.
func NewProfileService(qrcode service.QRCodeService) usecase.ProfileUsecase {
	return &profileService{
		qrcode: qrcode,
		profile: &entity.EmergencyProfile{
			Allergies:   []string{},
			Medications: []string{},
			Conditions:  []string{},
		},
	}
}

// GetProfile returns a copy of the current profile.
func (s *profileService) GetProfile(_ context.Context) *entity.EmergencyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile.Clone()
}

// UpdateProfile applies a partial update.
func (s *profileService) UpdateProfile(_ context.Context, input *usecase.UpdateProfileInput) (*entity.EmergencyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Name != nil {
		s.profile.Name = *input.Name
	}
	if input.Age != nil {
		s.profile.Age = *input.Age
	}
	if input.EmergencyID != nil {
		s.profile.EmergencyID = *input.EmergencyID
	}
	if input.BloodType != nil {
		s.profile.BloodType = *input.BloodType
	}
	if input.Allergies != nil {
		s.profile.Allergies = append([]string(nil), (*input.Allergies)...)
	}
	if input.Medications != nil {
		s.profile.Medications = append([]string(nil), (*input.Medications)...)
	}
	if input.Conditions != nil {
		s.profile.Conditions = append([]string(nil), (*input.Conditions)...)
	}
	if input.EmergencyNotes != nil {
		s.profile.EmergencyNotes = *input.EmergencyNotes
	}
	s.profile.UpdatedAt = time.Now()

	return s.profile.Clone(), nil
}

// EmergencyCard renders the profile as a PNG QR code for first responders.
func (s *profileService) EmergencyCard(ctx context.Context) ([]byte, error) {
	if s.qrcode == nil {
		return nil, errors.New("qr code service not configured")
	}

	return s.qrcode.GenerateEmergencyCard(s.GetProfile(ctx))
}

// Package qrcode renders the emergency profile as a scannable card.
package qrcode

import (
	"encoding/json"

	"beacon/internal/domain/entity"
	"beacon/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// emergencyCardPayload is the JSON encoded into the QR code. Kept compact
// so the code stays scannable at card size.
type emergencyCardPayload struct {
	Type           string   `json:"type"`
	Name           string   `json:"name,omitempty"`
	Age            int      `json:"age,omitempty"`
	EmergencyID    string   `json:"emergency_id,omitempty"`
	BloodType      string   `json:"blood_type,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
	Medications    []string `json:"medications,omitempty"`
	Conditions     []string `json:"conditions,omitempty"`
	EmergencyNotes string   `json:"emergency_notes,omitempty"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateEmergencyCard renders the profile as a PNG QR code.
func (s *qrcodeService) GenerateEmergencyCard(profile *entity.EmergencyProfile) ([]byte, error) {
	payload := emergencyCardPayload{
		Type:           "emergency_profile",
		Name:           profile.Name,
		Age:            profile.Age,
		EmergencyID:    profile.EmergencyID,
		BloodType:      profile.BloodType,
		Allergies:      profile.Allergies,
		Medications:    profile.Medications,
		Conditions:     profile.Conditions,
		EmergencyNotes: profile.EmergencyNotes,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal emergency card payload")
	}

	code, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "create QR code")
	}

	pngBytes, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "render QR PNG")
	}

	return pngBytes, nil
}

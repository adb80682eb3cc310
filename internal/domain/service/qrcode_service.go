package service

import (
	"beacon/internal/domain/entity"
)

// QRCodeService generates the scannable emergency card for first responders.
type QRCodeService interface {
	// GenerateEmergencyCard renders the profile as a PNG QR code.
	GenerateEmergencyCard(profile *entity.EmergencyProfile) ([]byte, error)
}

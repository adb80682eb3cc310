// Package model contains the database row shapes for the alert archive.
package model

import (
	"strings"
	"time"

	"beacon/internal/domain/entity"

	"github.com/google/uuid"
)

// Alert is the archived row for a single emergency alert.
type Alert struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category           string    `gorm:"size:16;not null"`
	Latitude           float64   `gorm:"not null"`
	Longitude          float64   `gorm:"not null"`
	AccuracyMeters     float64   `gorm:"not null"`
	CapturedAt         time.Time
	CreatedAt          time.Time `gorm:"not null;index"`
	Status             string    `gorm:"size:16;not null"`
	Note               string
	NotifiedContactIDs string `gorm:"column:notified_contact_ids"` // comma-joined UUIDs
}

// TableName sets the archive table name.
func (Alert) TableName() string {
	return "alerts"
}

// FromAlert converts the domain entity into its row shape.
func FromAlert(alert *entity.Alert) *Alert {
	ids := make([]string, 0, len(alert.NotifiedContactIDs))
	for _, id := range alert.NotifiedContactIDs {
		ids = append(ids, id.String())
	}

	return &Alert{
		ID:                 alert.ID,
		Category:           string(alert.Category),
		Latitude:           alert.Location.Latitude,
		Longitude:          alert.Location.Longitude,
		AccuracyMeters:     alert.Location.AccuracyMeters,
		CapturedAt:         alert.Location.CapturedAt,
		CreatedAt:          alert.CreatedAt,
		Status:             string(alert.Status),
		Note:               alert.Note,
		NotifiedContactIDs: strings.Join(ids, ","),
	}
}

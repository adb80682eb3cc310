package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is a person to be notified when an alert is raised.
type EmergencyContact struct {
	ID           uuid.UUID `json:"id"`           // The unique identifier for the contact.
	Name         string    `json:"name"`         // Display name.
	Phone        string    `json:"phone"`        // Phone number in whatever format the user entered.
	Relationship string    `json:"relationship"` // e.g. "Spouse", "Sibling", "Neighbor".
	IsPrimary    bool      `json:"is_primary"`   // At most one contact is primary at a time.
	CreatedAt    time.Time `json:"created_at"`   // Timestamp of when the contact was added.
	UpdatedAt    time.Time `json:"updated_at"`   // Timestamp of the last modification.
}

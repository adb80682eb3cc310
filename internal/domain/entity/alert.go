package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertCategory classifies the kind of emergency being reported.
type AlertCategory string

const (
	CategoryGeneral AlertCategory = "general"
	CategoryMedical AlertCategory = "medical"
	CategoryFire    AlertCategory = "fire"
	CategoryPolice  AlertCategory = "police"
)

// Valid reports whether the category is one of the enumerated values.
func (c AlertCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryMedical, CategoryFire, CategoryPolice:
		return true
	default:
		return false
	}
}

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	StatusActive     AlertStatus = "active"
	StatusResolved   AlertStatus = "resolved"
	StatusFalseAlarm AlertStatus = "false_alarm"
)

// Terminal reports whether the status permits no further transitions.
func (s AlertStatus) Terminal() bool {
	return s == StatusResolved || s == StatusFalseAlarm
}

// Alert is a single emergency event. The embedded Location is an owned
// snapshot taken at creation time; later position readings never alter it.
type Alert struct {
	ID                 uuid.UUID     `json:"id"`                   // Assigned at creation, stable for the alert's lifetime.
	Category           AlertCategory `json:"category"`             // Kind of emergency.
	Location           Position      `json:"location"`             // Snapshot at creation; may be the unknown sentinel.
	CreatedAt          time.Time     `json:"created_at"`           // Set once at creation.
	Status             AlertStatus   `json:"status"`               // active until resolved or marked a false alarm.
	Note               string        `json:"note,omitempty"`       // Optional free-text message.
	NotifiedContactIDs []uuid.UUID   `json:"notified_contact_ids"` // Contacts successfully notified so far.
}

// Clone returns a deep copy so callers never hold references into the
// lifecycle's internal state.
func (a *Alert) Clone() *Alert {
	cloned := *a
	cloned.NotifiedContactIDs = make([]uuid.UUID, len(a.NotifiedContactIDs))
	copy(cloned.NotifiedContactIDs, a.NotifiedContactIDs)

	return &cloned
}

package entity

import "time"

// EmergencyProfile holds the personal and medical information shown to
// first responders. A session carries exactly one profile.
type EmergencyProfile struct {
	Name           string    `json:"name"`            // Full name.
	Age            int       `json:"age"`             // Age in years, zero when unset.
	EmergencyID    string    `json:"emergency_id"`    // External identifier, e.g. "EMR-2024-001".
	BloodType      string    `json:"blood_type"`      // e.g. "O+".
	Allergies      []string  `json:"allergies"`       // Known allergies.
	Medications    []string  `json:"medications"`     // Current medications with dosage.
	Conditions     []string  `json:"conditions"`      // Pre-existing conditions.
	EmergencyNotes string    `json:"emergency_notes"` // Free-text notes for responders.
	UpdatedAt      time.Time `json:"updated_at"`      // Timestamp of the last modification.
}

// Clone returns a deep copy of the profile.
func (p *EmergencyProfile) Clone() *EmergencyProfile {
	cloned := *p
	cloned.Allergies = append([]string(nil), p.Allergies...)
	cloned.Medications = append([]string(nil), p.Medications...)
	cloned.Conditions = append([]string(nil), p.Conditions...)

	return &cloned
}

// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Position is a point-in-time device location reading.
// A Position is immutable once created; later readings supersede it
// instead of mutating it.
type Position struct {
	Latitude       float64   `json:"latitude"`        // Geographic latitude in degrees, [-90, 90].
	Longitude      float64   `json:"longitude"`       // Geographic longitude in degrees, [-180, 180].
	AccuracyMeters float64   `json:"accuracy_meters"` // Radius of uncertainty around the fix.
	CapturedAt     time.Time `json:"captured_at"`     // When the reading was taken.
}

// UnknownPosition returns the all-zero sentinel used when an alert has to be
// raised without a usable fix.
func UnknownPosition() Position {
	return Position{}
}

// IsUnknown reports whether the position is the all-zero sentinel.
// A real fix at exactly (0, 0) in the Gulf of Guinea is indistinguishable
// from the sentinel, matching the behavior of the consuming clients.
func (p Position) IsUnknown() bool {
	return p.Latitude == 0 && p.Longitude == 0 && p.AccuracyMeters == 0
}

// Point returns the position as an orb lon/lat point.
func (p Position) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// DistanceMeters returns the great-circle distance to another position.
func (p Position) DistanceMeters(other Position) float64 {
	return geo.Distance(p.Point(), other.Point())
}

// Age returns how old the reading is relative to now.
func (p Position) Age(now time.Time) time.Duration {
	return now.Sub(p.CapturedAt)
}

// Package location resolves where the user is: explicit coordinates, a
// geocoded place name, IP geolocation or a static default.
package location

import (
	"fmt"
	"math"
	"time"
)

// NameCustom labels locations built from explicit coordinates.
const NameCustom = "Custom"

// Location is an immutable resolved position.
type Location struct {
	Name      string
	Region    string
	Timezone  string
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinate ranges.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", l.Longitude)
	}
	return nil
}

// Zone returns the frame used to pick the calendar date for sun times.
// A named IANA zone wins; UTC, empty and unknown zones fall back to mean
// solar time for the longitude.
func (l Location) Zone() *time.Location {
	if l.Timezone != "" && l.Timezone != "UTC" {
		if z, err := time.LoadLocation(l.Timezone); err == nil {
			return z
		}
	}
	return SolarZone(l.Longitude)
}

// SolarZone returns a fixed zone offset by round(longitude/15) hours.
func SolarZone(longitude float64) *time.Location {
	hours := int(math.Round(longitude / 15))
	if hours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+03d", hours), hours*3600)
}

// String formats the location for logs and terminal output.
func (l Location) String() string {
	return fmt.Sprintf("%s, %s (%.4f, %.4f)", l.Name, l.Region, l.Latitude, l.Longitude)
}

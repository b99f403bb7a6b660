// Package solar computes sunrise and sunset for a date and coordinates.
package solar

import (
	"log/slog"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Fallback hours (UTC) used when the sun times cannot be computed.
const (
	FallbackSunriseHour = 6
	FallbackSunsetHour  = 18
)

// SunTimes holds sunrise and sunset for a single calendar date.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time

	// Degraded is set when the values are the fixed fallback window.
	Degraded bool
}

// Contains reports whether t falls inside [Sunrise, Sunset]. Both
// boundaries count as daylight.
func (s SunTimes) Contains(t time.Time) bool {
	t = t.In(s.Sunrise.Location())
	return !t.Before(s.Sunrise) && !t.After(s.Sunset)
}

// Fallback returns the 06:00-18:00 UTC window for the calendar date of d.
func Fallback(d time.Time) SunTimes {
	y, m, day := d.Date()
	return SunTimes{
		Sunrise:  time.Date(y, m, day, FallbackSunriseHour, 0, 0, 0, time.UTC),
		Sunset:   time.Date(y, m, day, FallbackSunsetHour, 0, 0, 0, time.UTC),
		Degraded: true,
	}
}

type computeFunc func(lat, lon float64, year int, month time.Month, day int) (time.Time, time.Time)

// Calculator wraps the astronomical algorithm and applies the fallback
// policy. It never returns an error.
type Calculator struct {
	logger  *slog.Logger
	compute computeFunc
}

// New creates a calculator backed by go-sunrise.
func New(logger *slog.Logger) *Calculator {
	return &Calculator{
		logger:  logger,
		compute: sunrise.SunriseSunset,
	}
}

// Compute returns the sun times for the calendar date of date, as seen in
// date's location. Results are expressed in that location.
func (c *Calculator) Compute(lat, lon float64, date time.Time) SunTimes {
	y, m, d := date.Date()

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return c.degraded(lat, lon, date, "coordinates out of range")
	}

	rise, set := c.compute(lat, lon, y, m, d)
	if rise.IsZero() || set.IsZero() {
		return c.degraded(lat, lon, date, "no sunrise or sunset on this date")
	}
	if !rise.Before(set) {
		return c.degraded(lat, lon, date, "sunrise is not before sunset")
	}

	loc := date.Location()
	return SunTimes{
		Sunrise: rise.In(loc),
		Sunset:  set.In(loc),
	}
}

func (c *Calculator) degraded(lat, lon float64, date time.Time, reason string) SunTimes {
	fb := Fallback(date)
	c.logger.Warn("solar computation degraded, using fallback sun times",
		"reason", reason,
		"latitude", lat,
		"longitude", lon,
		"date", date.Format(time.DateOnly),
		"sunrise", fb.Sunrise.Format(time.RFC3339),
		"sunset", fb.Sunset.Format(time.RFC3339),
	)
	return fb
}

// Package daylight answers "is it daylight now?" for a resolved location.
package daylight

import (
	"log/slog"
	"time"

	"github.com/darkawower/sunshift/internal/location"
	"github.com/darkawower/sunshift/internal/solar"
)

// Calculator computes sun times for coordinates and a date.
type Calculator interface {
	Compute(lat, lon float64, date time.Time) solar.SunTimes
}

// Evaluation is the oracle's view of a single instant.
type Evaluation struct {
	Now            time.Time
	Daylight       bool
	SunTimes       solar.SunTimes
	NextTransition time.Time
}

// Oracle combines a fixed location with a solar calculator. The location is
// resolved once; sun times are recomputed on every call.
type Oracle struct {
	loc    location.Location
	zone   *time.Location
	calc   Calculator
	logger *slog.Logger
}

// New creates an Oracle for a resolved location.
func New(loc location.Location, calc Calculator, logger *slog.Logger) *Oracle {
	return &Oracle{
		loc:    loc,
		zone:   loc.Zone(),
		calc:   calc,
		logger: logger,
	}
}

// Location returns the resolved location.
func (o *Oracle) Location() location.Location {
	return o.loc
}

// SunTimes returns sunrise and sunset for the calendar date of now in the
// location's frame.
func (o *Oracle) SunTimes(now time.Time) solar.SunTimes {
	return o.sunTimesOn(now.In(o.zone))
}

// sunTimesOn computes sun times whose sunrise falls on day's calendar date.
// The calculator reads the date as a solar day at the longitude, which is one
// day off in zones far from their solar time (Pacific/Apia, Pacific/Kiritimati).
func (o *Oracle) sunTimesOn(day time.Time) solar.SunTimes {
	st := o.calc.Compute(o.loc.Latitude, o.loc.Longitude, day)
	if st.Degraded {
		return st
	}

	if shift := dayOffset(day, st.Sunrise.In(day.Location())); shift != 0 {
		st = o.calc.Compute(o.loc.Latitude, o.loc.Longitude, day.AddDate(0, 0, -shift))
	}
	return st
}

// dayOffset returns the sign of the calendar-day difference from a to b.
func dayOffset(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	switch {
	case db.After(da):
		return 1
	case db.Before(da):
		return -1
	}
	return 0
}

// IsDaylight reports whether sunrise <= now <= sunset.
func (o *Oracle) IsDaylight(now time.Time) bool {
	return o.Evaluate(now).Daylight
}

// Evaluate computes daylight state and the next transition instant. After
// sunset the next transition is the following day's sunrise.
func (o *Oracle) Evaluate(now time.Time) Evaluation {
	st := o.SunTimes(now)
	local := now.In(st.Sunrise.Location())
	daylight := st.Contains(local)

	o.logger.Debug("daylight evaluation",
		"now", local.Format(time.RFC3339),
		"sunrise", st.Sunrise.Format(time.RFC3339),
		"sunset", st.Sunset.Format(time.RFC3339),
		"daylight", daylight,
	)

	var next time.Time
	switch {
	case daylight:
		next = st.Sunset
	case local.Before(st.Sunrise):
		next = st.Sunrise
	default:
		tomorrow := now.In(o.zone).AddDate(0, 0, 1)
		next = o.sunTimesOn(tomorrow).Sunrise
	}

	return Evaluation{
		Now:            local,
		Daylight:       daylight,
		SunTimes:       st,
		NextTransition: next,
	}
}

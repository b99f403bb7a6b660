package location

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Query carries the user's location hints. Coordinates are used only when
// both are set.
type Query struct {
	Latitude  *float64
	Longitude *float64
	City      string
}

// Resolver runs the resolution chain: explicit coordinates, city geocoding,
// IP geolocation, static default. Resolve always returns a valid Location.
type Resolver struct {
	geocoder Geocoder
	locator  IPLocator
	fallback Location
	timeout  time.Duration
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTimeout overrides the per-step deadline for network lookups.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResolver builds a resolver. Pass Unavailable{} for geocoder and locator
// when networking is disabled.
func NewResolver(geocoder Geocoder, locator IPLocator, fallback Location, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		geocoder: geocoder,
		locator:  locator,
		fallback: fallback,
		timeout:  DefaultTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first location the chain produces.
func (r *Resolver) Resolve(ctx context.Context, q Query) Location {
	if q.Latitude != nil && q.Longitude != nil {
		loc := Location{
			Name:      NameCustom,
			Region:    NameCustom,
			Timezone:  "UTC",
			Latitude:  *q.Latitude,
			Longitude: *q.Longitude,
		}
		err := loc.Validate()
		if err == nil {
			r.logger.Info("using custom coordinates", "latitude", loc.Latitude, "longitude", loc.Longitude)
			return loc
		}
		r.logger.Warn("ignoring invalid custom coordinates", "error", err)
	}

	if city := strings.TrimSpace(q.City); city != "" {
		if loc, ok := r.geocode(ctx, city); ok {
			return loc
		}
		r.logger.Warn("could not find city, trying auto-detection", "city", city)
	}

	if loc, ok := r.autoDetect(ctx); ok {
		return loc
	}

	r.logger.Warn("using default location", "location", r.fallback.String())
	return r.fallback
}

func (r *Resolver) geocode(ctx context.Context, city string) (Location, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	place, err := r.geocoder.Geocode(ctx, city)
	switch {
	case errors.Is(err, ErrUnavailable):
		r.logger.Warn("network lookups disabled, cannot geocode city", "city", city)
		return Location{}, false
	case errors.Is(err, ErrNotFound):
		r.logger.Warn("city not found in geocoding service", "city", city)
		return Location{}, false
	case err != nil:
		r.logger.Warn("error geocoding city", "city", city, "error", err)
		return Location{}, false
	}

	loc := Location{
		Name:      city,
		Region:    place.DisplayName,
		Timezone:  "UTC",
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}
	if err := loc.Validate(); err != nil {
		r.logger.Warn("geocoding returned invalid coordinates", "city", city, "error", err)
		return Location{}, false
	}

	r.logger.Info("found city", "city", city, "display_name", place.DisplayName,
		"latitude", loc.Latitude, "longitude", loc.Longitude)
	return loc, true
}

func (r *Resolver) autoDetect(ctx context.Context) (Location, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	info, err := r.locator.Locate(ctx)
	switch {
	case errors.Is(err, ErrUnavailable):
		r.logger.Debug("network lookups disabled, skipping auto-detection")
		return Location{}, false
	case err != nil:
		r.logger.Warn("could not auto-detect location", "error", err)
		return Location{}, false
	case info.Status != StatusSuccess:
		r.logger.Warn("could not auto-detect location", "status", info.Status, "message", info.Message)
		return Location{}, false
	}

	tz := "UTC"
	if info.Timezone != "" {
		if _, err := time.LoadLocation(info.Timezone); err == nil {
			tz = info.Timezone
		}
	}

	loc := Location{
		Name:      info.City,
		Region:    info.Country,
		Timezone:  tz,
		Latitude:  info.Latitude,
		Longitude: info.Longitude,
	}
	if err := loc.Validate(); err != nil {
		r.logger.Warn("ip geolocation returned invalid coordinates", "error", err)
		return Location{}, false
	}

	r.logger.Info("auto-detected location", "city", info.City, "country", info.Country,
		"timezone", tz, "latitude", loc.Latitude, "longitude", loc.Longitude)
	return loc, true
}

package location

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Place is a geocoding hit.
type Place struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder turns a place name into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Place, error)
}

// Nominatim queries the OpenStreetMap Nominatim search API.
type Nominatim struct {
	*baseClient
}

// NewNominatim creates a Nominatim client for baseURL.
func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		baseClient: newBaseClient(baseURL, userAgent, timeout),
	}
}

// Geocode returns the first search result for place.
func (n *Nominatim) Geocode(ctx context.Context, place string) (Place, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := n.getJSON(ctx, "geocoding", n.baseURL+"?"+params.Encode(), &results); err != nil {
		return Place{}, err
	}

	if len(results) == 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrNotFound, place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return Place{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}

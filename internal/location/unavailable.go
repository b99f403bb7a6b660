package location

import "context"

// Unavailable stands in for both lookup services when networking is off.
type Unavailable struct{}

// Geocode always fails with ErrUnavailable.
func (Unavailable) Geocode(ctx context.Context, place string) (Place, error) {
	return Place{}, ErrUnavailable
}

// Locate always fails with ErrUnavailable.
func (Unavailable) Locate(ctx context.Context) (IPInfo, error) {
	return IPInfo{}, ErrUnavailable
}

var (
	_ Geocoder  = Unavailable{}
	_ IPLocator = Unavailable{}
	_ Geocoder  = (*Nominatim)(nil)
	_ IPLocator = (*IPAPI)(nil)
)

package location

import (
	"context"
	"time"
)

// StatusSuccess is the ip-api status of a successful lookup.
const StatusSuccess = "success"

// IPInfo is the result of an IP geolocation lookup.
type IPInfo struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// IPLocator infers a location from the caller's public IP.
type IPLocator interface {
	Locate(ctx context.Context) (IPInfo, error)
}

// IPAPI queries ip-api.com.
type IPAPI struct {
	*baseClient
}

// NewIPAPI creates an ip-api.com client for baseURL.
func NewIPAPI(baseURL, userAgent string, timeout time.Duration) *IPAPI {
	return &IPAPI{
		baseClient: newBaseClient(baseURL, userAgent, timeout),
	}
}

// Locate returns the service response as-is; callers check Status.
func (p *IPAPI) Locate(ctx context.Context) (IPInfo, error) {
	var info IPInfo
	u := p.baseURL + "?fields=status,message,country,city,lat,lon,timezone"
	if err := p.getJSON(ctx, "ip geolocation", u, &info); err != nil {
		return IPInfo{}, err
	}
	return info, nil
}

package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatim_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Budapest", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "sunshift-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"47.4979","lon":"19.0402","display_name":"Budapest, Hungary"}]`))
	}))
	defer server.Close()

	n := NewNominatim(server.URL, "sunshift-test", time.Second)

	place, err := n.Geocode(context.Background(), "Budapest")
	require.NoError(t, err)
	assert.InDelta(t, 47.4979, place.Latitude, 1e-9)
	assert.InDelta(t, 19.0402, place.Longitude, 1e-9)
	assert.Equal(t, "Budapest, Hungary", place.DisplayName)
}

func TestNominatim_Geocode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "empty result",
			status: http.StatusOK,
			body:   `[]`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   `busy`,
			checkFn: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
				assert.Contains(t, err.Error(), "503")
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{not json`,
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to decode")
			},
		},
		{
			name:   "bad coordinate",
			status: http.StatusOK,
			body:   `[{"lat":"north","lon":"1","display_name":"x"}]`,
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "invalid latitude")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewNominatim(server.URL, "", time.Second).Geocode(context.Background(), "Nowhere")
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestNominatim_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	n := NewNominatim(server.URL, "", 50*time.Millisecond)

	start := time.Now()
	_, err := n.Geocode(context.Background(), "Slow")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestIPAPI_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("fields"), "timezone")
		w.Write([]byte(`{"status":"success","country":"Hungary","city":"Budapest","lat":47.4979,"lon":19.0402,"timezone":"Europe/Budapest"}`))
	}))
	defer server.Close()

	info, err := NewIPAPI(server.URL+"/json/", "", time.Second).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, info.Status)
	assert.Equal(t, "Budapest", info.City)
	assert.Equal(t, "Hungary", info.Country)
	assert.Equal(t, "Europe/Budapest", info.Timezone)
	assert.InDelta(t, 47.4979, info.Latitude, 1e-9)
	assert.InDelta(t, 19.0402, info.Longitude, 1e-9)
}

func TestIPAPI_Locate_Fail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer server.Close()

	info, err := NewIPAPI(server.URL, "", time.Second).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fail", info.Status)
	assert.Equal(t, "private range", info.Message)
}

func TestIPAPI_Locate_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewIPAPI(server.URL, "", time.Second).Locate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestIPAPI_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIPAPI(server.URL, "", time.Second).Locate(ctx)
	require.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	var u Unavailable

	_, err := u.Geocode(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = u.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewBaseClient_DefaultTimeout(t *testing.T) {
	c := newBaseClient("http://example.com", "", 0)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

package geolocate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haaziqcode/species-map-go/internal/models"
)

func TestIPProviderResolvesPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/203.0.113.9", r.URL.Path)
		w.Write([]byte(`{"status":"success","lat":43.6532,"lon":-79.3832}`))
	}))
	defer srv.Close()

	provider := NewHTTPClient(srv.URL, srv.Client()).ForIP("203.0.113.9")
	coord, err := provider.CurrentPosition(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, -79.3832, coord.Lng)
	assert.Equal(t, 43.6532, coord.Lat)
}

func TestIPProviderCachesWithinMaximumAge(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status":"success","lat":45.4215,"lon":-75.6972}`))
	}))
	defer srv.Close()

	provider := NewHTTPClient(srv.URL, srv.Client()).ForIP("203.0.113.9")
	opts := Options{MaximumAge: time.Minute}

	_, err := provider.CurrentPosition(context.Background(), opts)
	require.NoError(t, err)
	_, err = provider.CurrentPosition(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second lookup within MaximumAge is served from cache")
}

func TestIPProviderClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   ErrorCode
	}{
		{"refused", http.StatusForbidden, "", CodePermissionDenied},
		{"server error", http.StatusInternalServerError, "", CodePositionUnavailable},
		{"api failure", http.StatusOK, `{"status":"fail","message":"private range"}`, CodePositionUnavailable},
		{"garbage body", http.StatusOK, `{`, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			provider := NewHTTPClient(srv.URL, srv.Client()).ForIP("203.0.113.9")
			_, err := provider.CurrentPosition(context.Background(), Options{})
			require.Error(t, err)
			assert.Equal(t, tt.want, CodeOf(err))
		})
	}
}

func TestIPProviderTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	provider := NewHTTPClient(srv.URL, srv.Client()).ForIP("203.0.113.9")
	_, err := provider.CurrentPosition(context.Background(), Options{Timeout: 20 * time.Millisecond})
	require.Error(t, err)
	assert.Equal(t, CodeTimeout, CodeOf(err))
}

func TestEmptyIPUnsupported(t *testing.T) {
	provider := NewHTTPClient("http://example.invalid", nil).ForIP("")
	_, err := provider.CurrentPosition(context.Background(), Options{})
	require.Error(t, err)
	assert.Equal(t, CodeUnsupported, CodeOf(err))
}

func TestStaticProvider(t *testing.T) {
	fixed := models.LngLat{Lng: -79.4, Lat: 43.7}
	coord, err := StaticProvider{Coord: fixed}.CurrentPosition(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, fixed, coord)

	_, err = StaticProvider{Err: &Error{Code: CodePermissionDenied}}.CurrentPosition(context.Background(), Options{})
	assert.Equal(t, CodePermissionDenied, CodeOf(err))
}

package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// ipResponse is the subset of an ip-api style JSON payload the provider reads
type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// HTTPClient resolves client IPs against an ip-api compatible endpoint.
// Results are cached per IP; a cached position is served as long as its age
// is within the request's MaximumAge.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
}

// NewHTTPClient creates a client for the given base URL (e.g.
// "http://ip-api.com"). A nil http.Client gets a 5s-timeout default.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  client,
		cache:   gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// ForIP binds the client to one request IP, yielding a Provider
func (c *HTTPClient) ForIP(ip string) Provider {
	return ipProvider{client: c, ip: ip}
}

type cachedPosition struct {
	coord models.LngLat
	at    time.Time
}

type ipProvider struct {
	client *HTTPClient
	ip     string
}

// CurrentPosition resolves the bound IP, honoring MaximumAge via the cache
func (p ipProvider) CurrentPosition(ctx context.Context, opts Options) (models.LngLat, error) {
	if p.ip == "" {
		return models.LngLat{}, &Error{Code: CodeUnsupported, Message: "no client address to geolocate"}
	}

	if opts.MaximumAge > 0 {
		if v, ok := p.client.cache.Get(p.ip); ok {
			cached := v.(cachedPosition)
			if time.Since(cached.at) <= opts.MaximumAge {
				return cached.coord, nil
			}
		}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	coord, err := p.client.lookup(ctx, p.ip)
	if err != nil {
		return models.LngLat{}, err
	}
	p.client.cache.Set(p.ip, cachedPosition{coord: coord, at: time.Now()}, gocache.DefaultExpiration)
	return coord, nil
}

func (c *HTTPClient) lookup(ctx context.Context, ip string) (models.LngLat, error) {
	url := fmt.Sprintf("%s/json/%s", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.LngLat{}, &Error{Code: CodeUnknown, Message: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return models.LngLat{}, &Error{Code: CodeTimeout, Message: "geolocation request timed out"}
		}
		return models.LngLat{}, &Error{Code: CodePositionUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return models.LngLat{}, &Error{Code: CodePermissionDenied, Message: "geolocation endpoint refused the request"}
	}
	if resp.StatusCode != http.StatusOK {
		return models.LngLat{}, &Error{Code: CodePositionUnavailable, Message: fmt.Sprintf("geolocation endpoint returned %d", resp.StatusCode)}
	}

	var r ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.LngLat{}, &Error{Code: CodeUnknown, Message: err.Error()}
	}
	if r.Status != "success" {
		return models.LngLat{}, &Error{Code: CodePositionUnavailable, Message: r.Message}
	}
	return models.LngLat{Lng: r.Lon, Lat: r.Lat}, nil
}

package mapsync

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/spatial"
)

// LocateState is the locate machine's externally visible state
type LocateState int

const (
	LocateIdle LocateState = iota
	LocateLocating
	LocateAwaitingManual
	LocateFlyingTo
)

// String returns the state name
func (s LocateState) String() string {
	switch s {
	case LocateLocating:
		return "locating"
	case LocateAwaitingManual:
		return "awaitingManualInput"
	case LocateFlyingTo:
		return "flyingTo"
	default:
		return "idle"
	}
}

// User-facing remediation messages per failure kind
const (
	MsgPermissionDenied = "Location permission denied. Enable location access in your browser, or enter coordinates manually."
	MsgUnavailable      = "Your position could not be determined. Try again or enter coordinates manually."
	MsgTimeout          = "Locating you took too long. Try again or enter coordinates manually."
	MsgUnknown          = "Something went wrong while locating you. Try again or enter coordinates manually."
	MsgUnsupported      = "Location lookup is not available here."
	MsgNoEligible       = "No species match the current filters, so there is nothing nearby to show."
)

// DefaultLocateTimeout bounds a geolocation request
const DefaultLocateTimeout = 15 * time.Second

// DefaultPositionMaxAge is the acceptable age of a cached position
const DefaultPositionMaxAge = time.Minute

// NearestResult is the outcome of a nearest-species search
type NearestResult struct {
	Species    models.Species `json:"species"`
	DistanceKm float64        `json:"distanceKm"`
}

// RecordSource yields the current filtered record set. The locate machine
// searches only records that pass the active filters.
type RecordSource func() []models.Species

// Locator coordinates asynchronous geolocation, nearest-record search, the
// camera fly-to and the eventual selection, with a manual-entry fallback.
//
//	Idle → Locating → (Found | Failed) → FlyingTo → Arrived → Idle
//	Idle → AwaitingManualInput → Found/Failed
//
// A new locate request supersedes any in-flight one: every request takes a
// monotonically increasing token, and completions carrying a stale token are
// dropped. Failures never touch an existing selection.
type Locator struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	renderer  Renderer
	selection *SelectionController
	records   RecordSource
	envelope  Envelope
	timeout   time.Duration
	maxAge    time.Duration

	state   LocateState
	token   uint64
	message string
	target  *NearestResult
}

// NewLocator creates a locator. A nil clock gets the real clock; a zero
// timeout gets the default.
func NewLocator(r Renderer, sel *SelectionController, records RecordSource, envelope Envelope, clock clockwork.Clock) *Locator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Locator{
		clock:     clock,
		renderer:  r,
		selection: sel,
		records:   records,
		envelope:  envelope,
		timeout:   DefaultLocateTimeout,
		maxAge:    DefaultPositionMaxAge,
	}
}

// SetTimeout overrides the geolocation timeout
func (l *Locator) SetTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeout = d
}

// State returns the current state
func (l *Locator) State() LocateState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Message returns the current user-facing status or remediation message
func (l *Locator) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

// Target returns the pending nearest result while a fly-to is in flight
func (l *Locator) Target() *NearestResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

// Locate starts an asynchronous geolocation request against the provider,
// superseding any request already in flight.
func (l *Locator) Locate(provider geolocate.Provider) {
	l.mu.Lock()
	l.token++
	token := l.token
	l.state = LocateLocating
	l.message = ""
	l.target = nil
	timeout := l.timeout
	maxAge := l.maxAge
	l.mu.Unlock()

	go l.run(token, provider, timeout, maxAge)
}

func (l *Locator) run(token uint64, provider geolocate.Provider, timeout, maxAge time.Duration) {
	type result struct {
		coord models.LngLat
		err   error
	}
	ch := make(chan result, 1)

	go func() {
		coord, err := provider.CurrentPosition(context.Background(), geolocate.Options{
			Timeout:    timeout,
			MaximumAge: maxAge,
		})
		ch <- result{coord: coord, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			l.fail(token, res.err)
			return
		}
		l.found(token, res.coord)
	case <-l.clock.After(timeout):
		l.fail(token, &geolocate.Error{Code: geolocate.CodeTimeout})
	}
}

// EnterManual switches to the manual-entry path, superseding any in-flight
// geolocation.
func (l *Locator) EnterManual() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.token++
	l.state = LocateAwaitingManual
	l.message = ""
}

// SubmitManual validates a manually entered coordinate. Unparsable or
// out-of-envelope input re-enters AwaitingManualInput with an error and never
// triggers a nearest-search.
func (l *Locator) SubmitManual(latStr, lngStr string) error {
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return l.rejectManual("latitude and longitude must be numeric")
	}

	coord := models.LngLat{Lng: lng, Lat: lat}
	if !l.envelope.Contains(coord) {
		return l.rejectManual(fmt.Sprintf(
			"coordinates must fall within the serviced region (lng %.1f to %.1f, lat %.1f to %.1f)",
			l.envelope.MinLng, l.envelope.MaxLng, l.envelope.MinLat, l.envelope.MaxLat))
	}

	l.mu.Lock()
	l.token++
	token := l.token
	l.mu.Unlock()

	l.found(token, coord)
	return nil
}

func (l *Locator) rejectManual(msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = LocateAwaitingManual
	l.message = msg
	return fmt.Errorf("invalid manual location: %s", msg)
}

// fail classifies the error and offers manual entry for every failure kind
// except unsupported, which is terminal. The existing selection is left
// untouched.
func (l *Locator) fail(token uint64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.token {
		return
	}

	switch geolocate.CodeOf(err) {
	case geolocate.CodePermissionDenied:
		l.state = LocateAwaitingManual
		l.message = MsgPermissionDenied
	case geolocate.CodePositionUnavailable:
		l.state = LocateAwaitingManual
		l.message = MsgUnavailable
	case geolocate.CodeTimeout:
		l.state = LocateAwaitingManual
		l.message = MsgTimeout
	case geolocate.CodeUnsupported:
		l.state = LocateIdle
		l.message = MsgUnsupported
	default:
		l.state = LocateAwaitingManual
		l.message = MsgUnknown
	}
}

// found runs the nearest-record search and starts the fly-to. An empty
// filtered set is the distinct no-data outcome, not an error.
func (l *Locator) found(token uint64, coord models.LngLat) {
	l.mu.Lock()
	if token != l.token {
		l.mu.Unlock()
		return
	}

	nearest, km, ok := spatial.Nearest(coord, l.records())
	if !ok {
		l.state = LocateIdle
		l.message = MsgNoEligible
		l.mu.Unlock()
		return
	}

	l.state = LocateFlyingTo
	l.message = ""
	l.target = &NearestResult{Species: nearest, DistanceKm: km}
	targetCoord := *nearest.Coordinates
	l.mu.Unlock()

	l.renderer.FlyTo(targetCoord, flyToZoom, func() {
		l.arrived(token)
	})
}

// arrived is the single rendezvous between the animation and selection
// subsystems. It fires at most once per fly-to; stale or duplicate
// completions are dropped via the token and state checks.
func (l *Locator) arrived(token uint64) {
	l.mu.Lock()
	if token != l.token || l.state != LocateFlyingTo || l.target == nil {
		l.mu.Unlock()
		return
	}
	species := l.target.Species
	l.target = nil
	l.state = LocateIdle
	l.mu.Unlock()

	l.selection.SetDetail([]models.Species{species})
}

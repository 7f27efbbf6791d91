// Package geolocate defines the one-shot geolocation provider contract and
// its classified error taxonomy, plus the concrete providers the server uses.
package geolocate

import (
	"context"
	"errors"
	"time"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// ErrorCode classifies a geolocation failure
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodePermissionDenied
	CodePositionUnavailable
	CodeTimeout
	// CodeUnsupported: the platform cannot geolocate at all. Terminal; the
	// manual-entry fallback is not offered for this code.
	CodeUnsupported
)

// Error is a classified geolocation failure
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Code {
	case CodePermissionDenied:
		return "permission denied"
	case CodePositionUnavailable:
		return "position unavailable"
	case CodeTimeout:
		return "timeout"
	case CodeUnsupported:
		return "geolocation unsupported"
	default:
		return "unknown geolocation error"
	}
}

// CodeOf extracts the classification from an error, defaulting to unknown
func CodeOf(err error) ErrorCode {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeUnknown
}

// Options configures a position request
type Options struct {
	Timeout      time.Duration // bound on the whole lookup
	MaximumAge   time.Duration // acceptable age of a cached result
	HighAccuracy bool
}

// Provider is a one-shot "get current position" source
type Provider interface {
	CurrentPosition(ctx context.Context, opts Options) (models.LngLat, error)
}

// StaticProvider returns a fixed coordinate (or error). Used when the client
// already resolved its own position and just forwards it.
type StaticProvider struct {
	Coord models.LngLat
	Err   error
}

// CurrentPosition returns the fixed result
func (p StaticProvider) CurrentPosition(_ context.Context, _ Options) (models.LngLat, error) {
	if p.Err != nil {
		return models.LngLat{}, p.Err
	}
	return p.Coord, nil
}

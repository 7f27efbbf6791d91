package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/metrics"
	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/service"
	"github.com/haaziqcode/species-map-go/pkg/response"
)

// LocateHandler handles stateless nearest-species lookups: either from
// client-supplied coordinates or by geolocating the request IP.
type LocateHandler struct {
	nearest *service.NearestService
	geo     *geolocate.HTTPClient
	timeout time.Duration
}

// NewLocateHandler creates a new locate handler
func NewLocateHandler(nearest *service.NearestService, geo *geolocate.HTTPClient, timeout time.Duration) *LocateHandler {
	return &LocateHandler{nearest: nearest, geo: geo, timeout: timeout}
}

// GetNearest handles GET /api/v1/nearest?lat=&lng=
func (h *LocateHandler) GetNearest(c *gin.Context) {
	var filter models.NearestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Lat == 0 && filter.Lng == 0 {
		response.BadRequest(c, "lat and lng are required")
		return
	}

	h.respondNearest(c, models.LngLat{Lng: filter.Lng, Lat: filter.Lat}, filter.SpeciesFilter)
}

// Locate handles POST /api/v1/locate: geolocates the request IP, then runs
// the nearest search. Geolocation failures are classified and surfaced with a
// remediation hint, never as a server error.
func (h *LocateHandler) Locate(c *gin.Context) {
	metrics.LocateRequestsTotal.Inc()

	var filter models.SpeciesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	provider := h.geo.ForIP(c.ClientIP())
	coord, err := provider.CurrentPosition(context.Background(), geolocate.Options{
		Timeout:    h.timeout,
		MaximumAge: time.Minute,
	})
	if err != nil {
		code := geolocate.CodeOf(err)
		metrics.LocateFailuresTotal.WithLabelValues(codeLabel(code)).Inc()
		response.Success(c, gin.H{
			"located":     false,
			"errorCode":   codeLabel(code),
			"message":     remediationFor(code),
			"manualEntry": code != geolocate.CodeUnsupported,
		})
		return
	}

	h.respondNearest(c, coord, filter)
}

func (h *LocateHandler) respondNearest(c *gin.Context, coord models.LngLat, filter models.SpeciesFilter) {
	result, err := h.nearest.Nearest(coord, filter)
	if err != nil {
		if errors.Is(err, service.ErrNoEligibleSpecies) {
			metrics.EmptyNearestTotal.Inc()
			response.Empty(c, "No species match the current filters near this location")
			return
		}
		response.InternalError(c, "Failed to search nearby species")
		return
	}

	response.Success(c, gin.H{
		"located":        true,
		"origin":         coord,
		"species":        result.Species,
		"distance":       result.DistanceKm,
		"distanceMeters": result.DistanceM,
	})
}

func codeLabel(code geolocate.ErrorCode) string {
	switch code {
	case geolocate.CodePermissionDenied:
		return "permission_denied"
	case geolocate.CodePositionUnavailable:
		return "position_unavailable"
	case geolocate.CodeTimeout:
		return "timeout"
	case geolocate.CodeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

func remediationFor(code geolocate.ErrorCode) string {
	switch code {
	case geolocate.CodePermissionDenied:
		return "Location permission denied. Enable location access or enter coordinates manually."
	case geolocate.CodePositionUnavailable:
		return "Your position could not be determined. Try again or enter coordinates manually."
	case geolocate.CodeTimeout:
		return "Locating you took too long. Try again or enter coordinates manually."
	case geolocate.CodeUnsupported:
		return "Location lookup is not available for this request."
	default:
		return "Something went wrong while locating you. Try again or enter coordinates manually."
	}
}

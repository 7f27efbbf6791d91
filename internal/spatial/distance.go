package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// DegreeDistanceSq returns the squared planar distance between two coordinates
// in coordinate-degree units. It is the comparison metric for clustering
// thresholds, where only relative distance matters; compare against a squared
// threshold to avoid the sqrt.
func DegreeDistanceSq(a, b models.LngLat) float64 {
	dLng := b.Lng - a.Lng
	dLat := b.Lat - a.Lat
	return dLng*dLng + dLat*dLat
}

// WithinDegrees reports whether two coordinates lie within the given planar
// threshold in degree units.
func WithinDegrees(a, b models.LngLat, threshold float64) bool {
	return DegreeDistanceSq(a, b) < threshold*threshold
}

// HaversineKm calculates the great-circle distance between two points in
// kilometers. This is the user-facing distance for nearest-species search.
func HaversineKm(a, b models.LngLat) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// HaversineMeters calculates the great-circle distance between two points in meters
func HaversineMeters(a, b models.LngLat) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

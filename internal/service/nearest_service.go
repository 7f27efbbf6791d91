package service

import (
	"errors"

	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/spatial"
)

// ErrNoEligibleSpecies signals that no filtered species has coordinates. A
// distinct no-data condition, not a lookup failure.
var ErrNoEligibleSpecies = errors.New("no species with coordinates match the current filters")

// NearestService resolves a coordinate to the closest catalog species
type NearestService struct {
	store SpeciesStore
}

// NewNearestService creates a new nearest service
func NewNearestService(store SpeciesStore) *NearestService {
	return &NearestService{store: store}
}

// NearestResult is a nearest match with its great-circle distance, in both
// kilometers and meters (clients show sub-km distances in meters).
type NearestResult struct {
	Species    models.Species `json:"species"`
	DistanceKm float64        `json:"distanceKm"`
	DistanceM  float64        `json:"distanceMeters"`
}

// Nearest finds the closest species to the coordinate among those passing the
// filter. Ties break to catalog order.
func (s *NearestService) Nearest(coord models.LngLat, filter models.SpeciesFilter) (NearestResult, error) {
	species, err := s.store.List(filter)
	if err != nil {
		return NearestResult{}, err
	}

	sp, km, ok := spatial.Nearest(coord, species)
	if !ok {
		return NearestResult{}, ErrNoEligibleSpecies
	}
	return NearestResult{
		Species:    sp,
		DistanceKm: km,
		DistanceM:  spatial.HaversineMeters(coord, *sp.Coordinates),
	}, nil
}

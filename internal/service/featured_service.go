package service

import (
	"errors"
	"time"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// ErrEmptyCatalog signals that no species exist to feature
var ErrEmptyCatalog = errors.New("species catalog is empty")

// atRiskStatuses are the active-concern classes prioritized for the monthly
// feature.
var atRiskStatuses = map[models.ConservationStatus]bool{
	models.StatusEndangered:     true,
	models.StatusThreatened:     true,
	models.StatusSpecialConcern: true,
}

// FeaturedService picks the species of the month: a month-indexed rotation
// over coordinate-bearing at-risk species, so every client sees the same pick
// for a given month without any stored state.
type FeaturedService struct {
	store SpeciesStore
}

// NewFeaturedService creates a new featured-species service
func NewFeaturedService(store SpeciesStore) *FeaturedService {
	return &FeaturedService{store: store}
}

// SpeciesOfTheMonth returns the current month's featured species
func (s *FeaturedService) SpeciesOfTheMonth(now time.Time) (models.Species, error) {
	return s.pick(int(now.Month()) - 1)
}

// NextSpeciesOfTheMonth returns the following month's pick, for preview
func (s *FeaturedService) NextSpeciesOfTheMonth(now time.Time) (models.Species, error) {
	return s.pick(int(now.Month()) % 12)
}

// pick rotates through the eligible species by zero-based month index. When
// no at-risk species has coordinates it falls back to any coordinate-bearing
// species, then to the first catalog entry.
func (s *FeaturedService) pick(monthIndex int) (models.Species, error) {
	species, err := s.store.List(models.SpeciesFilter{})
	if err != nil {
		return models.Species{}, err
	}
	if len(species) == 0 {
		return models.Species{}, ErrEmptyCatalog
	}

	var eligible, withCoords []models.Species
	for i := range species {
		if !species[i].HasCoordinates() {
			continue
		}
		withCoords = append(withCoords, species[i])
		if atRiskStatuses[species[i].ConservationStatus] {
			eligible = append(eligible, species[i])
		}
	}

	if len(eligible) > 0 {
		return eligible[monthIndex%len(eligible)], nil
	}
	if len(withCoords) > 0 {
		return withCoords[monthIndex%len(withCoords)], nil
	}
	return species[0], nil
}

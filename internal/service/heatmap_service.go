package service

import (
	"time"

	"github.com/haaziqcode/species-map-go/internal/heatmap"
	"github.com/haaziqcode/species-map-go/internal/models"
)

// HeatmapService builds hotspot sets for a filtered time slice
type HeatmapService struct {
	store      SpeciesStore
	aggregator *heatmap.Aggregator
}

// NewHeatmapService creates a new heatmap service
func NewHeatmapService(store SpeciesStore, aggregator *heatmap.Aggregator) *HeatmapService {
	return &HeatmapService{store: store, aggregator: aggregator}
}

// Hotspots loads the filtered species with their sightings for the requested
// month and aggregates them into merged hotspots. A zero month/year defaults
// to the current month.
func (s *HeatmapService) Hotspots(filter models.HeatmapFilter) ([]models.Hotspot, []models.Species, error) {
	month, year := filter.Month, filter.Year
	if month < 1 || month > 12 {
		month = int(time.Now().Month())
	}
	if year == 0 {
		year = time.Now().Year()
	}

	species, err := s.store.List(filter.SpeciesFilter)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.AttachMonthlyData(species, month, year); err != nil {
		return nil, nil, err
	}

	return s.aggregator.BuildHotspots(species, month, year), species, nil
}

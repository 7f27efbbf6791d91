// Package heatmap converts raw species observations into weighted hotspots
// via two-stage greedy clustering: per-species proximity grouping first, then
// a cross-species merge of nearby centroids. Both stages are deterministic
// given input order and O(n²), which is fine for a bounded regional dataset.
package heatmap

import (
	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/spatial"
)

// Config holds the clustering thresholds
type Config struct {
	GroupThresholdDeg   float64 // per-species grouping distance, degree units (~5km)
	MergeThresholdDeg   float64 // cross-species centroid merge distance (~10km)
	WeightNormalization int     // group size that saturates a hotspot's weight
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		GroupThresholdDeg:   0.05,
		MergeThresholdDeg:   0.1,
		WeightNormalization: 20,
	}
}

// Aggregator builds hotspots from species monthly observation data
type Aggregator struct {
	cfg Config
}

// New creates an aggregator with the given config. Zero thresholds fall back
// to the defaults.
func New(cfg Config) *Aggregator {
	def := DefaultConfig()
	if cfg.GroupThresholdDeg <= 0 {
		cfg.GroupThresholdDeg = def.GroupThresholdDeg
	}
	if cfg.MergeThresholdDeg <= 0 {
		cfg.MergeThresholdDeg = def.MergeThresholdDeg
	}
	if cfg.WeightNormalization <= 0 {
		cfg.WeightNormalization = def.WeightNormalization
	}
	return &Aggregator{cfg: cfg}
}

// BuildHotspots aggregates the given species' sightings for one month into
// merged hotspots. A species with no matching-month sightings contributes
// nothing; the result is empty (never nil members) when no species has data.
func (a *Aggregator) BuildHotspots(species []models.Species, month, year int) []models.Hotspot {
	var hotspots []models.Hotspot

	for i := range species {
		sp := species[i]
		md := monthlyDataFor(&sp, month, year)
		if md == nil || md.Sightings == 0 || len(md.Coordinates) == 0 {
			continue
		}

		for _, group := range a.GroupByProximity(md.Coordinates) {
			weight := float64(len(group)) / float64(a.cfg.WeightNormalization)
			if weight > 1 {
				weight = 1
			}
			hotspots = append(hotspots, models.Hotspot{
				Coordinates: Centroid(group),
				Weight:      weight,
				Species:     []models.Species{sp},
				Month:       month,
			})
		}
	}

	return a.MergeNearby(hotspots)
}

// GroupByProximity partitions coordinates into single-link proximity groups.
// Scans in input order: each unprocessed coordinate seeds a group and absorbs
// every later unprocessed coordinate within the group threshold.
func (a *Aggregator) GroupByProximity(coords []models.LngLat) [][]models.LngLat {
	var groups [][]models.LngLat
	processed := make([]bool, len(coords))

	for i, coord := range coords {
		if processed[i] {
			continue
		}
		group := []models.LngLat{coord}
		processed[i] = true

		for j, other := range coords {
			if processed[j] {
				continue
			}
			if spatial.WithinDegrees(coord, other, a.cfg.GroupThresholdDeg) {
				group = append(group, other)
				processed[j] = true
			}
		}
		groups = append(groups, group)
	}

	return groups
}

// MergeNearby merges hotspots whose centroids fall within the merge
// threshold, regardless of originating species. Weights are summed and
// clipped to 1; species lists are concatenated as-is, so a species that
// contributed through several groups appears more than once. Callers wanting
// strict semantics can use Hotspot.UniqueSpecies.
func (a *Aggregator) MergeNearby(hotspots []models.Hotspot) []models.Hotspot {
	var merged []models.Hotspot
	processed := make([]bool, len(hotspots))

	for i, h := range hotspots {
		if processed[i] {
			continue
		}
		out := models.Hotspot{
			Coordinates: h.Coordinates,
			Weight:      h.Weight,
			Species:     append([]models.Species(nil), h.Species...),
			Month:       h.Month,
		}
		processed[i] = true

		for j, other := range hotspots {
			if processed[j] {
				continue
			}
			if spatial.WithinDegrees(h.Coordinates, other.Coordinates, a.cfg.MergeThresholdDeg) {
				out.Weight += other.Weight
				if out.Weight > 1 {
					out.Weight = 1
				}
				out.Species = append(out.Species, other.Species...)
				processed[j] = true
			}
		}
		merged = append(merged, out)
	}

	return merged
}

// Centroid returns the arithmetic mean of the coordinates
func Centroid(coords []models.LngLat) models.LngLat {
	var sumLng, sumLat float64
	for _, c := range coords {
		sumLng += c.Lng
		sumLat += c.Lat
	}
	n := float64(len(coords))
	return models.LngLat{Lng: sumLng / n, Lat: sumLat / n}
}

func monthlyDataFor(sp *models.Species, month, year int) *models.MonthlyData {
	for i := range sp.MonthlyData {
		if sp.MonthlyData[i].Month == month && sp.MonthlyData[i].Year == year {
			return &sp.MonthlyData[i]
		}
	}
	return nil
}

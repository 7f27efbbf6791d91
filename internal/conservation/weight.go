// Package conservation defines the single weighting policy shared by hotspot
// aggregation and the renderer's visual ramps. Both consumers read from the
// tables here so the two can never drift apart.
package conservation

import "github.com/haaziqcode/species-map-go/internal/models"

// severityWeights maps conservation status to a positive severity weight,
// monotonic in concern. Historical classes (extirpated, extinct) rank below
// active-concern classes: they no longer drive field response.
var severityWeights = map[models.ConservationStatus]int{
	models.StatusEndangered:     5,
	models.StatusThreatened:     4,
	models.StatusSpecialConcern: 3,
	models.StatusExtirpated:     2,
	models.StatusExtinct:        1,
}

// defaultWeight is the middle of the scale. Unknown or unclassified records
// still contribute to density, never at zero.
const defaultWeight = 3

// maxWeight is the top of the severity scale
const maxWeight = 5

// Weight returns the integer severity weight for a status. Unknown statuses
// map to the middle default.
func Weight(status models.ConservationStatus) int {
	if w, ok := severityWeights[status]; ok {
		return w
	}
	return defaultWeight
}

// NormalizedWeight returns the severity weight scaled into (0, 1].
func NormalizedWeight(status models.ConservationStatus) float64 {
	return float64(Weight(status)) / float64(maxWeight)
}

// RampStop is one stop of a color ramp keyed by a normalized 0-1 position
type RampStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// HeatColorRamp returns the density color ramp passed through to the
// renderer's heatmap layer.
func HeatColorRamp() []RampStop {
	return []RampStop{
		{0, "rgba(255, 0, 0, 0)"},
		{0.1, "rgba(255, 255, 0, 0.1)"},
		{0.2, "rgba(255, 200, 0, 0.3)"},
		{0.4, "rgba(255, 150, 0, 0.5)"},
		{0.6, "rgba(255, 100, 0, 0.7)"},
		{0.8, "rgba(255, 50, 0, 0.8)"},
		{1, "rgba(255, 0, 0, 1)"},
	}
}

// CircleColorRamp returns the weight-keyed color ramp for the circle layers
// (individual points at close zoom and species pins).
func CircleColorRamp() []RampStop {
	return []RampStop{
		{0, "#FF6B6B"},
		{0.5, "#FF3333"},
		{1, "#CC0000"},
	}
}

package spatial

import "github.com/haaziqcode/species-map-go/internal/models"

// Nearest performs a brute-force nearest search over the given species using
// great-circle distance. Species without coordinates are skipped. Ties break
// to the first-encountered species, so the result is deterministic for a
// given input order. ok is false when no species is eligible.
func Nearest(from models.LngLat, species []models.Species) (nearest models.Species, distanceKm float64, ok bool) {
	best := -1.0
	for i := range species {
		if !species[i].HasCoordinates() {
			continue
		}
		d := HaversineKm(from, *species[i].Coordinates)
		if best < 0 || d < best {
			best = d
			nearest = species[i]
		}
	}
	if best < 0 {
		return models.Species{}, 0, false
	}
	return nearest, best, true
}

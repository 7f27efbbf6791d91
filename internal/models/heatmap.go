package models

// Hotspot is a derived cluster of observations: a centroid coordinate, a
// normalized weight and the species that contributed. Hotspots are recomputed
// wholesale on every aggregation run and carry no identity across runs.
type Hotspot struct {
	Coordinates LngLat    `json:"coordinates"`
	Weight      float64   `json:"weight"` // 0-1
	Species     []Species `json:"species"`
	Month       int       `json:"month,omitempty"` // 1-12, 0 when unfiltered
}

// UniqueSpecies returns the contributing species deduplicated by ID, in first
// contribution order. The Species list itself keeps duplicates when a species
// contributed through multiple merged groups.
func (h *Hotspot) UniqueSpecies() []Species {
	seen := make(map[string]bool, len(h.Species))
	var out []Species
	for _, sp := range h.Species {
		if seen[sp.ID] {
			continue
		}
		seen[sp.ID] = true
		out = append(out, sp)
	}
	return out
}

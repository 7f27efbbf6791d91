package models

// SpeciesFilter represents filter parameters for querying species
type SpeciesFilter struct {
	Type   string `form:"type"`   // all, bird, mammal, reptile, amphibian, fish, plant, insect
	Status string `form:"status"` // all, extinct, extirpated, endangered, threatened, special_concern
	Query  string `form:"q"`      // name search, matches common or scientific name
}

// Matches reports whether the species passes the filter. An empty or "all"
// value leaves that dimension unfiltered.
func (f SpeciesFilter) Matches(s *Species) bool {
	if f.Type != "" && f.Type != "all" && string(s.Type) != f.Type {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(s.ConservationStatus) != f.Status {
		return false
	}
	return true
}

// HeatmapFilter represents filter parameters for hotspot aggregation
type HeatmapFilter struct {
	SpeciesFilter
	Month int `form:"month"` // 1-12
	Year  int `form:"year"`
}

// NearestFilter represents filter parameters for nearest-species search
type NearestFilter struct {
	SpeciesFilter
	Lat float64 `form:"lat"`
	Lng float64 `form:"lng"`
}

package models

// SpeciesType is the broad taxonomic category of a species
type SpeciesType string

const (
	TypeBird      SpeciesType = "bird"
	TypeMammal    SpeciesType = "mammal"
	TypeReptile   SpeciesType = "reptile"
	TypeAmphibian SpeciesType = "amphibian"
	TypeFish      SpeciesType = "fish"
	TypePlant     SpeciesType = "plant"
	TypeInsect    SpeciesType = "insect"
)

// ConservationStatus is the provincial conservation classification of a species
type ConservationStatus string

const (
	StatusExtinct        ConservationStatus = "extinct"
	StatusExtirpated     ConservationStatus = "extirpated"
	StatusEndangered     ConservationStatus = "endangered"
	StatusThreatened     ConservationStatus = "threatened"
	StatusSpecialConcern ConservationStatus = "special_concern"
)

// Species represents a monitored species record
type Species struct {
	ID                    string             `json:"id"`
	CommonName            string             `json:"commonName"`
	ScientificName        string             `json:"scientificName"`
	Image                 string             `json:"image,omitempty"`
	Type                  SpeciesType        `json:"type"`
	ConservationStatus    ConservationStatus `json:"conservationStatus"`
	EstimatedPopulation   string             `json:"estimatedPopulation,omitempty"`
	GeographicRange       string             `json:"geographicRange,omitempty"`
	TimelineToExtinction  string             `json:"timelineToExtinction,omitempty"`
	ReasonForEndangerment []string           `json:"reasonForEndangerment,omitempty"`
	LearnMoreURL          string             `json:"learnMoreUrl,omitempty"`
	Coordinates           *LngLat            `json:"coordinates,omitempty"` // nil when the species has no representative location
	LastSeen              string             `json:"lastSeen,omitempty"`
	MonthlyData           []MonthlyData      `json:"monthlyData,omitempty"`
}

// HasCoordinates reports whether the species is eligible for map placement,
// clustering and nearest-search.
func (s *Species) HasCoordinates() bool {
	return s.Coordinates != nil
}

// MonthlyData aggregates the sightings of a species for one calendar month
type MonthlyData struct {
	Month              int      `json:"month"` // 1-12
	Year               int      `json:"year"`
	Sightings          int      `json:"sightings"`
	Coordinates        []LngLat `json:"coordinates"`
	PopulationEstimate int      `json:"populationEstimate,omitempty"`
}

// Observation is a single geotagged sighting event tied to a species
type Observation struct {
	SpeciesID  string `json:"speciesId"`
	Coordinate LngLat `json:"coordinate"`
	Month      int    `json:"month"` // 1-12, 0 when untagged
	Year       int    `json:"year"`
}

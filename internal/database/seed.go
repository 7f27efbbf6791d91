package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// seedSpecies is the Ontario demo catalog loaded into an empty database
var seedSpecies = []models.Species{
	{
		ID: "1", CommonName: "Woodland Caribou", ScientificName: "Rangifer tarandus caribou",
		Type: models.TypeMammal, ConservationStatus: models.StatusThreatened,
		EstimatedPopulation: "5,000-6,000 individuals", GeographicRange: "Northern Ontario boreal forests",
		TimelineToExtinction:  "Stable with conservation efforts",
		ReasonForEndangerment: []string{"Habitat fragmentation", "Climate change", "Human development"},
		LearnMoreURL:          "https://www.ontario.ca/page/woodland-caribou",
		Coordinates:           &models.LngLat{Lng: -84.5, Lat: 49.7}, LastSeen: "2024-01-15",
	},
	{
		ID: "2", CommonName: "Lake Sturgeon", ScientificName: "Acipenser fulvescens",
		Type: models.TypeFish, ConservationStatus: models.StatusThreatened,
		EstimatedPopulation: "50,000-75,000 individuals", GeographicRange: "Great Lakes and connecting waterways",
		TimelineToExtinction:  "Recovery expected by 2040 with current efforts",
		ReasonForEndangerment: []string{"Overfishing", "Dam construction", "Water pollution"},
		LearnMoreURL:          "https://www.ontario.ca/page/lake-sturgeon",
		Coordinates:           &models.LngLat{Lng: -79.4, Lat: 44.3}, LastSeen: "2024-02-20",
	},
	{
		ID: "3", CommonName: "Blanding's Turtle", ScientificName: "Emydoidea blandingii",
		Type: models.TypeReptile, ConservationStatus: models.StatusThreatened,
		EstimatedPopulation: "8,000-12,000 individuals", GeographicRange: "Southern Ontario wetlands",
		TimelineToExtinction:  "Critical - declining 3% annually",
		ReasonForEndangerment: []string{"Wetland loss", "Road mortality", "Urban development"},
		LearnMoreURL:          "https://www.ontario.ca/page/blandings-turtle",
		Coordinates:           &models.LngLat{Lng: -79.2, Lat: 44.1}, LastSeen: "2024-03-05",
	},
	{
		ID: "4", CommonName: "Eastern Loggerhead Shrike", ScientificName: "Lanius ludovicianus migrans",
		Type: models.TypeBird, ConservationStatus: models.StatusEndangered,
		EstimatedPopulation: "20-30 breeding pairs", GeographicRange: "Extreme southwestern Ontario",
		TimelineToExtinction:  "Critically endangered - immediate action required",
		ReasonForEndangerment: []string{"Habitat loss", "Pesticide use", "Agricultural intensification"},
		LearnMoreURL:          "https://www.ontario.ca/page/eastern-loggerhead-shrike",
		Coordinates:           &models.LngLat{Lng: -82.1, Lat: 42.3}, LastSeen: "2024-01-28",
	},
	{
		ID: "5", CommonName: "American Chestnut", ScientificName: "Castanea dentata",
		Type: models.TypePlant, ConservationStatus: models.StatusEndangered,
		EstimatedPopulation: "Less than 200 mature trees", GeographicRange: "Scattered locations in southern Ontario",
		TimelineToExtinction:  "Research ongoing for blight-resistant varieties",
		ReasonForEndangerment: []string{"Chestnut blight fungus", "Habitat fragmentation"},
		LearnMoreURL:          "https://www.ontario.ca/page/american-chestnut",
		Coordinates:           &models.LngLat{Lng: -80.5, Lat: 43.5}, LastSeen: "2024-02-10",
	},
	{
		ID: "6", CommonName: "Monarch Butterfly", ScientificName: "Danaus plexippus",
		Type: models.TypeInsect, ConservationStatus: models.StatusSpecialConcern,
		EstimatedPopulation: "1-2 million (declining)", GeographicRange: "Throughout Ontario during migration",
		TimelineToExtinction:  "Population declining 80% over 20 years",
		ReasonForEndangerment: []string{"Habitat loss", "Pesticide use", "Climate change"},
		LearnMoreURL:          "https://www.ontario.ca/page/monarch-butterfly",
		Coordinates:           &models.LngLat{Lng: -79.6, Lat: 43.7}, LastSeen: "2024-03-12",
	},
	{
		ID: "7", CommonName: "Jefferson Salamander", ScientificName: "Ambystoma jeffersonianum",
		Type: models.TypeAmphibian, ConservationStatus: models.StatusSpecialConcern,
		EstimatedPopulation: "Unknown - limited surveys", GeographicRange: "Deciduous forests of southern Ontario",
		ReasonForEndangerment: []string{"Forest fragmentation", "Road mortality", "Disease"},
		LearnMoreURL:          "https://www.ontario.ca/page/jefferson-salamander",
		Coordinates:           &models.LngLat{Lng: -79.8, Lat: 43.2}, LastSeen: "2024-02-25",
	},
	{
		ID: "8", CommonName: "Polar Bear", ScientificName: "Ursus maritimus",
		Type: models.TypeMammal, ConservationStatus: models.StatusThreatened,
		EstimatedPopulation: "900-1,000 individuals", GeographicRange: "Hudson Bay and James Bay coasts",
		TimelineToExtinction:  "Vulnerable to rapid climate change",
		ReasonForEndangerment: []string{"Sea ice loss", "Climate change", "Human disturbance"},
		LearnMoreURL:          "https://www.ontario.ca/page/polar-bear",
		Coordinates:           &models.LngLat{Lng: -82.0, Lat: 51.5}, LastSeen: "2024-01-08",
	},
}

// Seed loads the demo catalog and two years of generated monthly observations
// if the species table is empty. Generation is seeded so repeated startups
// produce the same dataset.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM species").Scan(&count); err != nil {
		return fmt.Errorf("failed to count species: %w", err)
	}
	if count > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	return Transaction(func(tx *sql.Tx) error {
		for _, sp := range seedSpecies {
			reasons, err := json.Marshal(sp.ReasonForEndangerment)
			if err != nil {
				return fmt.Errorf("failed to marshal reasons for %s: %w", sp.ID, err)
			}
			_, err = tx.Exec(`
				INSERT INTO species (
					id, common_name, scientific_name, image, type, conservation_status,
					estimated_population, geographic_range, timeline_to_extinction,
					reasons, learn_more_url, lng, lat, last_seen
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sp.ID, sp.CommonName, sp.ScientificName, sp.Image, sp.Type, sp.ConservationStatus,
				sp.EstimatedPopulation, sp.GeographicRange, sp.TimelineToExtinction,
				string(reasons), sp.LearnMoreURL, sp.Coordinates.Lng, sp.Coordinates.Lat, sp.LastSeen,
			)
			if err != nil {
				return fmt.Errorf("failed to insert species %s: %w", sp.ID, err)
			}

			for _, obs := range generateObservations(&sp, now, rng) {
				_, err := tx.Exec(
					"INSERT INTO observations (species_id, lng, lat, month, year) VALUES (?, ?, ?, ?, ?)",
					obs.SpeciesID, obs.Coordinate.Lng, obs.Coordinate.Lat, obs.Month, obs.Year,
				)
				if err != nil {
					return fmt.Errorf("failed to insert observation for %s: %w", sp.ID, err)
				}
			}
		}
		log.Printf("Seeded %d species", len(seedSpecies))
		return nil
	})
}

// generateObservations produces sightings with seasonal patterns by species
// type, scattered around the species' base coordinate, for the last two years
// plus the current one.
func generateObservations(sp *models.Species, now time.Time, rng *rand.Rand) []models.Observation {
	var out []models.Observation
	currentYear := now.Year()
	currentMonth := int(now.Month())

	for year := currentYear - 2; year <= currentYear; year++ {
		for month := 1; month <= 12; month++ {
			if year == currentYear && month > currentMonth {
				continue
			}
			n := sightingsFor(sp.Type, month, rng)
			for i := 0; i < n; i++ {
				out = append(out, models.Observation{
					SpeciesID: sp.ID,
					Coordinate: models.LngLat{
						Lng: sp.Coordinates.Lng + (rng.Float64()-0.5)*0.5,
						Lat: sp.Coordinates.Lat + (rng.Float64()-0.5)*0.5,
					},
					Month: month,
					Year:  year,
				})
			}
		}
	}
	return out
}

func sightingsFor(t models.SpeciesType, month int, rng *rand.Rand) int {
	switch t {
	case models.TypeBird:
		// Higher during spring and fall migration
		if (month >= 3 && month <= 5) || (month >= 9 && month <= 11) {
			return rng.Intn(15) + 5
		}
		return rng.Intn(8) + 1
	case models.TypeMammal:
		if month >= 5 && month <= 9 {
			return rng.Intn(12) + 3
		}
		return rng.Intn(8) + 2
	case models.TypeReptile, models.TypeAmphibian:
		if month >= 4 && month <= 10 {
			return rng.Intn(10) + 2
		}
		return rng.Intn(3)
	case models.TypeInsect:
		if month >= 6 && month <= 8 {
			return rng.Intn(20) + 10
		}
		if month >= 4 && month <= 10 {
			return rng.Intn(8) + 2
		}
		return 0
	default:
		return rng.Intn(8) + 2
	}
}

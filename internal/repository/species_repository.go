package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// ErrNotFound is returned when a species does not exist
var ErrNotFound = errors.New("species not found")

// SpeciesRepository handles database operations for species and observations
type SpeciesRepository struct {
	db *sql.DB
}

// NewSpeciesRepository creates a new species repository
func NewSpeciesRepository(db *sql.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

const speciesColumns = `id, common_name, scientific_name, image, type, conservation_status,
	estimated_population, geographic_range, timeline_to_extinction,
	reasons, learn_more_url, lng, lat, last_seen`

// List retrieves species with filtering, in stable catalog order. Name search
// matches common or scientific name, case-insensitive.
func (r *SpeciesRepository) List(filter models.SpeciesFilter) ([]models.Species, error) {
	query := "SELECT " + speciesColumns + " FROM species"

	var conditions []string
	var args []interface{}

	if filter.Type != "" && filter.Type != "all" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != "" && filter.Status != "all" {
		conditions = append(conditions, "conservation_status = ?")
		args = append(args, filter.Status)
	}
	if filter.Query != "" {
		conditions = append(conditions, "(common_name LIKE ? COLLATE NOCASE OR scientific_name LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Stable order: the feature index depends on it staying deterministic
	// between build and click resolution.
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query species: %w", err)
	}
	defer rows.Close()

	var out []models.Species
	for rows.Next() {
		sp, err := scanSpecies(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating species: %w", err)
	}
	return out, nil
}

// Get retrieves one species by id
func (r *SpeciesRepository) Get(id string) (models.Species, error) {
	row := r.db.QueryRow("SELECT "+speciesColumns+" FROM species WHERE id = ?", id)
	sp, err := scanSpecies(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Species{}, ErrNotFound
	}
	return sp, err
}

// Create inserts a new species, assigning an id when absent
func (r *SpeciesRepository) Create(sp *models.Species) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	reasons, err := json.Marshal(sp.ReasonForEndangerment)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}

	var lng, lat interface{}
	if sp.Coordinates != nil {
		lng, lat = sp.Coordinates.Lng, sp.Coordinates.Lat
	}

	_, err = r.db.Exec(`
		INSERT INTO species (`+speciesColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.CommonName, sp.ScientificName, sp.Image, sp.Type, sp.ConservationStatus,
		sp.EstimatedPopulation, sp.GeographicRange, sp.TimelineToExtinction,
		string(reasons), sp.LearnMoreURL, lng, lat, sp.LastSeen,
	)
	if err != nil {
		return fmt.Errorf("failed to insert species: %w", err)
	}
	return nil
}

// Update replaces a species record
func (r *SpeciesRepository) Update(sp *models.Species) error {
	reasons, err := json.Marshal(sp.ReasonForEndangerment)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}

	var lng, lat interface{}
	if sp.Coordinates != nil {
		lng, lat = sp.Coordinates.Lng, sp.Coordinates.Lat
	}

	res, err := r.db.Exec(`
		UPDATE species SET
			common_name = ?, scientific_name = ?, image = ?, type = ?,
			conservation_status = ?, estimated_population = ?, geographic_range = ?,
			timeline_to_extinction = ?, reasons = ?, learn_more_url = ?,
			lng = ?, lat = ?, last_seen = ?
		WHERE id = ?`,
		sp.CommonName, sp.ScientificName, sp.Image, sp.Type,
		sp.ConservationStatus, sp.EstimatedPopulation, sp.GeographicRange,
		sp.TimelineToExtinction, string(reasons), sp.LearnMoreURL,
		lng, lat, sp.LastSeen, sp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update species: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a species and its observations
func (r *SpeciesRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM species WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete species: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachMonthlyData fills each species' MonthlyData for one month from the
// observations table, preserving observation insertion order within a species.
func (r *SpeciesRepository) AttachMonthlyData(species []models.Species, month, year int) error {
	if len(species) == 0 {
		return nil
	}

	rows, err := r.db.Query(`
		SELECT species_id, lng, lat FROM observations
		WHERE month = ? AND year = ?
		ORDER BY species_id, id`, month, year)
	if err != nil {
		return fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	coords := make(map[string][]models.LngLat)
	for rows.Next() {
		var id string
		var c models.LngLat
		if err := rows.Scan(&id, &c.Lng, &c.Lat); err != nil {
			return fmt.Errorf("failed to scan observation: %w", err)
		}
		coords[id] = append(coords[id], c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating observations: %w", err)
	}

	for i := range species {
		cs := coords[species[i].ID]
		if len(cs) == 0 {
			continue
		}
		species[i].MonthlyData = []models.MonthlyData{{
			Month:       month,
			Year:        year,
			Sightings:   len(cs),
			Coordinates: cs,
		}}
	}
	return nil
}

// AddObservation records a single sighting
func (r *SpeciesRepository) AddObservation(obs models.Observation) error {
	_, err := r.db.Exec(
		"INSERT INTO observations (species_id, lng, lat, month, year) VALUES (?, ?, ?, ?, ?)",
		obs.SpeciesID, obs.Coordinate.Lng, obs.Coordinate.Lat, obs.Month, obs.Year,
	)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecies(row scanner) (models.Species, error) {
	var sp models.Species
	var image, estPop, geoRange, timeline, reasons, learnMore, lastSeen sql.NullString
	var lng, lat sql.NullFloat64

	err := row.Scan(
		&sp.ID, &sp.CommonName, &sp.ScientificName, &image, &sp.Type, &sp.ConservationStatus,
		&estPop, &geoRange, &timeline, &reasons, &learnMore, &lng, &lat, &lastSeen,
	)
	if err != nil {
		return models.Species{}, err
	}

	sp.Image = image.String
	sp.EstimatedPopulation = estPop.String
	sp.GeographicRange = geoRange.String
	sp.TimelineToExtinction = timeline.String
	sp.LearnMoreURL = learnMore.String
	sp.LastSeen = lastSeen.String
	if reasons.Valid && reasons.String != "" {
		if err := json.Unmarshal([]byte(reasons.String), &sp.ReasonForEndangerment); err != nil {
			return models.Species{}, fmt.Errorf("failed to unmarshal reasons for %s: %w", sp.ID, err)
		}
	}
	if lng.Valid && lat.Valid {
		sp.Coordinates = &models.LngLat{Lng: lng.Float64, Lat: lat.Float64}
	}
	return sp, nil
}

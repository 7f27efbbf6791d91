package service

import "github.com/haaziqcode/species-map-go/internal/models"

// SpeciesStore is the catalog access the services need. Satisfied by
// repository.SpeciesRepository; tests substitute a fake.
type SpeciesStore interface {
	List(filter models.SpeciesFilter) ([]models.Species, error)
	Get(id string) (models.Species, error)
	Create(sp *models.Species) error
	Update(sp *models.Species) error
	Delete(id string) error
	AttachMonthlyData(species []models.Species, month, year int) error
	AddObservation(obs models.Observation) error
}

// SpeciesService handles business logic for the species catalog
type SpeciesService struct {
	store SpeciesStore
}

// NewSpeciesService creates a new species service
func NewSpeciesService(store SpeciesStore) *SpeciesService {
	return &SpeciesService{store: store}
}

// List returns the filtered species in stable catalog order
func (s *SpeciesService) List(filter models.SpeciesFilter) ([]models.Species, error) {
	return s.store.List(filter)
}

// Get returns one species by id
func (s *SpeciesService) Get(id string) (models.Species, error) {
	return s.store.Get(id)
}

// Create adds a species to the catalog
func (s *SpeciesService) Create(sp *models.Species) error {
	return s.store.Create(sp)
}

// Update replaces a species
func (s *SpeciesService) Update(sp *models.Species) error {
	return s.store.Update(sp)
}

// Delete removes a species
func (s *SpeciesService) Delete(id string) error {
	return s.store.Delete(id)
}

// AddObservation records a sighting
func (s *SpeciesService) AddObservation(obs models.Observation) error {
	return s.store.AddObservation(obs)
}

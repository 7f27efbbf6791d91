package mapsync

import "github.com/haaziqcode/species-map-go/internal/models"

// Envelope is the bounding box of the serviced region. Manual coordinates
// outside the envelope are rejected before any nearest-search runs.
type Envelope struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// Contains reports whether the coordinate falls inside the envelope
func (e Envelope) Contains(c models.LngLat) bool {
	return c.Lng >= e.MinLng && c.Lng <= e.MaxLng &&
		c.Lat >= e.MinLat && c.Lat <= e.MaxLat
}

// OntarioEnvelope is the default serviced region
func OntarioEnvelope() Envelope {
	return Envelope{MinLng: -95.2, MinLat: 41.7, MaxLng: -74.3, MaxLat: 56.9}
}

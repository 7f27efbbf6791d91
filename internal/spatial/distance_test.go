package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haaziqcode/species-map-go/internal/models"
)

var (
	toronto = models.LngLat{Lng: -79.3832, Lat: 43.6532}
	ottawa  = models.LngLat{Lng: -75.6972, Lat: 45.4215}
)

func TestHaversineKm(t *testing.T) {
	d := HaversineKm(toronto, ottawa)
	// Toronto to Ottawa is ~350 km great-circle
	assert.InDelta(t, 352, d, 15)
	assert.Equal(t, 0.0, HaversineKm(toronto, toronto))
}

func TestHaversineSymmetric(t *testing.T) {
	assert.InDelta(t, HaversineKm(toronto, ottawa), HaversineKm(ottawa, toronto), 1e-9)
}

func TestDegreeDistanceSq(t *testing.T) {
	a := models.LngLat{Lng: 0, Lat: 0}
	b := models.LngLat{Lng: 3, Lat: 4}
	assert.Equal(t, 25.0, DegreeDistanceSq(a, b))
	assert.Equal(t, DegreeDistanceSq(a, b), DegreeDistanceSq(b, a))
}

func TestWithinDegrees(t *testing.T) {
	a := models.LngLat{Lng: 0, Lat: 0}
	b := models.LngLat{Lng: 0.01, Lat: 0.01}
	c := models.LngLat{Lng: 5, Lat: 5}

	assert.True(t, WithinDegrees(a, b, 0.05))
	assert.False(t, WithinDegrees(a, c, 0.05))
}

func coordPtr(lng, lat float64) *models.LngLat {
	return &models.LngLat{Lng: lng, Lat: lat}
}

func TestNearest(t *testing.T) {
	species := []models.Species{
		{ID: "far", Coordinates: coordPtr(-75.7, 45.4)},
		{ID: "none"}, // no coordinates, never eligible
		{ID: "near", Coordinates: coordPtr(-79.4, 43.7)},
	}

	sp, km, ok := Nearest(toronto, species)
	assert.True(t, ok)
	assert.Equal(t, "near", sp.ID)
	assert.Less(t, km, 10.0)
}

func TestNearestTieBreaksToFirst(t *testing.T) {
	species := []models.Species{
		{ID: "a", Coordinates: coordPtr(1, 0)},
		{ID: "b", Coordinates: coordPtr(1, 0)},
	}

	sp, _, ok := Nearest(models.LngLat{}, species)
	assert.True(t, ok)
	assert.Equal(t, "a", sp.ID)
}

func TestNearestEmpty(t *testing.T) {
	_, _, ok := Nearest(toronto, nil)
	assert.False(t, ok)

	_, _, ok = Nearest(toronto, []models.Species{{ID: "none"}})
	assert.False(t, ok)
}

package mapsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// fakeRenderer tracks sources, active layers and fly-to requests. done
// callbacks are parked until the test fires them (or completed immediately
// when autoComplete is set).
type fakeRenderer struct {
	sources      map[string]models.FeatureCollection
	layers       map[string]Layer
	cursor       string
	ops          []string
	flights      []func()
	autoComplete bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		sources: make(map[string]models.FeatureCollection),
		layers:  make(map[string]Layer),
	}
}

func (r *fakeRenderer) AddSource(id string, data models.FeatureCollection) {
	r.sources[id] = data
	r.ops = append(r.ops, "addSource:"+id)
}

func (r *fakeRenderer) SetSourceData(id string, data models.FeatureCollection) {
	r.sources[id] = data
	r.ops = append(r.ops, "setSourceData:"+id)
}

func (r *fakeRenderer) HasSource(id string) bool {
	_, ok := r.sources[id]
	return ok
}

func (r *fakeRenderer) AddLayer(layer Layer) {
	r.layers[layer.ID] = layer
	r.ops = append(r.ops, "addLayer:"+layer.ID)
}

func (r *fakeRenderer) HasLayer(id string) bool {
	_, ok := r.layers[id]
	return ok
}

func (r *fakeRenderer) SetCursor(cursor string) {
	r.cursor = cursor
	r.ops = append(r.ops, "setCursor:"+cursor)
}

func (r *fakeRenderer) RemoveLayer(id string) {
	delete(r.layers, id)
	r.ops = append(r.ops, "removeLayer:"+id)
}

func (r *fakeRenderer) FlyTo(center models.LngLat, zoom float64, done func()) {
	r.ops = append(r.ops, "flyTo")
	if r.autoComplete {
		done()
		return
	}
	r.flights = append(r.flights, done)
}

func coord(lng, lat float64) *models.LngLat {
	return &models.LngLat{Lng: lng, Lat: lat}
}

func testSpecies() []models.Species {
	return []models.Species{
		{ID: "1", CommonName: "Woodland Caribou", ConservationStatus: models.StatusThreatened, Coordinates: coord(-84.5, 49.7)},
		{ID: "2", CommonName: "Lake Sturgeon", ConservationStatus: models.StatusThreatened, Coordinates: coord(-79.4, 44.3)},
		{ID: "3", CommonName: "Polar Bear", ConservationStatus: models.StatusThreatened, Coordinates: coord(-82.0, 51.5)},
	}
}

func testHotspots() []models.Hotspot {
	return []models.Hotspot{
		{Coordinates: models.LngLat{Lng: -80, Lat: 44}, Weight: 0.4, Species: testSpecies()[:2]},
		{Coordinates: models.LngLat{Lng: -84, Lat: 49}, Weight: 0.2, Species: testSpecies()[2:]},
	}
}

func readyStore(r Renderer) *FeatureStore {
	s := NewFeatureStore(r)
	s.HandleMapReady()
	return s
}

func TestUpdateBeforeReadyIsDeferred(t *testing.T) {
	r := newFakeRenderer()
	s := NewFeatureStore(r)

	s.Update(testSpecies(), nil, ModePins)
	assert.Empty(t, r.ops, "no renderer calls before the ready signal")
	assert.Equal(t, 0, s.Index().Len())
}

func TestPendingUpdatesCoalesceToLatest(t *testing.T) {
	r := newFakeRenderer()
	s := NewFeatureStore(r)

	s.Update(testSpecies(), nil, ModePins)
	s.Update(testSpecies()[:1], nil, ModePins)
	s.HandleMapReady()

	// Only the latest pending state was replayed.
	require.True(t, r.HasSource(PinSourceID))
	assert.Len(t, r.sources[PinSourceID].Features, 1)
	assert.Equal(t, 1, s.Index().Len())
}

func TestReadySignalHonoredOnce(t *testing.T) {
	r := newFakeRenderer()
	s := NewFeatureStore(r)

	s.Update(testSpecies(), nil, ModePins)
	s.HandleMapReady()
	opsAfterFirst := len(r.ops)

	s.HandleMapReady()
	assert.Len(t, r.ops, opsAfterFirst, "repeated ready signals are ignored")
}

func TestOrdinalIndexMatchesRenderOrder(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	s.Update(testSpecies(), nil, ModePins)

	entry, ok := s.Index().Resolve(1)
	require.True(t, ok)
	require.Len(t, entry.Species, 1)
	assert.Equal(t, "2", entry.Species[0].ID, "feature id 1 must resolve to the second filtered record")

	_, ok = s.Index().Resolve(3)
	assert.False(t, ok)
	_, ok = s.Index().Resolve(-1)
	assert.False(t, ok)
}

func TestSpeciesWithoutCoordinatesExcluded(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	species := []models.Species{
		{ID: "1", Coordinates: coord(-80, 44)},
		{ID: "nowhere"},
		{ID: "3", Coordinates: coord(-81, 45)},
	}
	s.Update(species, nil, ModePins)

	assert.Len(t, r.sources[PinSourceID].Features, 2)
	require.Equal(t, 2, s.Index().Len())

	entry, ok := s.Index().Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "3", entry.Species[0].ID)
}

func TestIndexVersionBumpsPerRebuild(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	s.Update(testSpecies(), nil, ModePins)
	v1 := s.Index().Version()
	s.Update(testSpecies()[:2], nil, ModePins)
	assert.Greater(t, s.Index().Version(), v1)
}

func TestModeToggleNeverLeavesBothActive(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	s.Update(testSpecies(), testHotspots(), ModePins)
	s.Update(testSpecies(), testHotspots(), ModeHeatmap)

	assert.NotContains(t, r.layers, PinLayerID)
	assert.Contains(t, r.layers, HeatLayerID)
	assert.Contains(t, r.layers, HeatPointLayerID)

	s.Update(testSpecies(), testHotspots(), ModePins)

	// Pins → heatmap → pins: exactly the pins layer active, zero heatmap layers.
	assert.Contains(t, r.layers, PinLayerID)
	assert.NotContains(t, r.layers, HeatLayerID)
	assert.NotContains(t, r.layers, HeatPointLayerID)
	assert.Len(t, r.layers, 1)
}

func TestSameModeDataChangeReplacesInPlace(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	s.Update(testSpecies(), nil, ModePins)
	opsBefore := len(r.ops)

	s.Update(testSpecies()[:2], nil, ModePins)

	newOps := r.ops[opsBefore:]
	require.Len(t, newOps, 1, "data change with unchanged mode is a single in-place replace")
	assert.Equal(t, "setSourceData:"+PinSourceID, newOps[0])
	assert.Len(t, r.sources[PinSourceID].Features, 2)
}

func TestHeatmapFeaturesCarryWeightAndCount(t *testing.T) {
	r := newFakeRenderer()
	s := readyStore(r)

	s.Update(nil, testHotspots(), ModeHeatmap)

	features := r.sources[HeatSourceID].Features
	require.Len(t, features, 2)
	assert.Equal(t, 0.4, features[0].Properties["weight"])
	assert.Equal(t, 2, features[0].Properties["speciesCount"])
	assert.Equal(t, 0, features[0].Properties["id"])
	assert.Equal(t, 1, features[1].Properties["id"])

	entry, ok := s.Index().Resolve(0)
	require.True(t, ok)
	assert.Equal(t, KindHotspot, entry.Kind)
	assert.True(t, entry.NavigateFirst)
}

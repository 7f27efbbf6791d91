package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLngLatMarshalsLongitudeFirst(t *testing.T) {
	data, err := json.Marshal(LngLat{Lng: -79.3832, Lat: 43.6532})
	require.NoError(t, err)
	assert.JSONEq(t, `[-79.3832, 43.6532]`, string(data))
}

func TestLngLatUnmarshal(t *testing.T) {
	var c LngLat
	require.NoError(t, json.Unmarshal([]byte(`[-75.6972, 45.4215]`), &c))
	assert.Equal(t, -75.6972, c.Lng)
	assert.Equal(t, 45.4215, c.Lat)

	assert.Error(t, json.Unmarshal([]byte(`{"lat":1,"lng":2}`), &c), "object form is not accepted")
}

func TestFeatureGeometryUsesCoordinateArray(t *testing.T) {
	f := NewPointFeature(LngLat{Lng: -80, Lat: 44}, map[string]any{"id": 0})
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"coordinates":[-80,44]`)
	assert.Contains(t, string(data), `"type":"Point"`)
}

func TestSpeciesFilterMatches(t *testing.T) {
	sp := Species{Type: TypeMammal, ConservationStatus: StatusThreatened}

	assert.True(t, SpeciesFilter{}.Matches(&sp))
	assert.True(t, SpeciesFilter{Type: "all", Status: "all"}.Matches(&sp))
	assert.True(t, SpeciesFilter{Type: "mammal", Status: "threatened"}.Matches(&sp))
	assert.False(t, SpeciesFilter{Type: "bird"}.Matches(&sp))
	assert.False(t, SpeciesFilter{Status: "endangered"}.Matches(&sp))
}

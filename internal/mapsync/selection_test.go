package mapsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinSelection(t *testing.T) (*fakeRenderer, *SelectionController) {
	t.Helper()
	r := newFakeRenderer()
	s := readyStore(r)
	s.Update(testSpecies(), nil, ModePins)
	return r, NewSelectionController(s, r)
}

func hotspotSelection(t *testing.T) (*fakeRenderer, *SelectionController) {
	t.Helper()
	r := newFakeRenderer()
	s := readyStore(r)
	s.Update(nil, testHotspots(), ModeHeatmap)
	return r, NewSelectionController(s, r)
}

func TestPinClickGoesStraightToDetail(t *testing.T) {
	r, c := pinSelection(t)

	require.True(t, c.HandleFeatureClick(1))
	assert.Equal(t, SelectionDetail, c.Current().Kind)
	require.Len(t, c.Current().Species, 1)
	assert.Equal(t, "2", c.Current().Species[0].ID)
	assert.Empty(t, r.flights, "pin clicks never trigger a fly-to")
}

func TestUnknownFeatureIDDropped(t *testing.T) {
	_, c := pinSelection(t)

	assert.False(t, c.HandleFeatureClick(99))
	assert.Equal(t, SelectionNone, c.Current().Kind)
}

func TestHotspotClickNavigatesFirst(t *testing.T) {
	r, c := hotspotSelection(t)

	require.True(t, c.HandleFeatureClick(0))
	assert.Equal(t, SelectionFlyTo, c.Current().Kind)
	require.NotNil(t, c.Current().Target)
	require.Len(t, r.flights, 1)

	r.flights[0]()
	assert.Equal(t, SelectionDetail, c.Current().Kind)
	assert.Len(t, c.Current().Species, 2)
}

func TestClickDuringPendingFlyToDropped(t *testing.T) {
	r, c := hotspotSelection(t)

	require.True(t, c.HandleFeatureClick(0))
	assert.False(t, c.HandleFeatureClick(1), "second click while a fly-to is pending")
	assert.Len(t, r.flights, 1, "dropped click issues no renderer call")

	r.flights[0]()
	assert.Equal(t, SelectionDetail, c.Current().Kind)
	assert.Equal(t, "1", c.Current().Species[0].ID, "selection belongs to the first click")
}

func TestStaleFlyToCompletionIgnored(t *testing.T) {
	r, c := hotspotSelection(t)

	require.True(t, c.HandleFeatureClick(0))
	done1 := r.flights[0]

	// The user dismisses the pending selection, then clicks the other hotspot.
	c.Clear()
	require.True(t, c.HandleFeatureClick(1))
	done2 := r.flights[1]

	done1()
	assert.Equal(t, SelectionFlyTo, c.Current().Kind, "superseded completion must not promote the selection")

	done2()
	assert.Equal(t, SelectionDetail, c.Current().Kind)
	assert.Equal(t, "3", c.Current().Species[0].ID)
}

func TestClearResetsSelection(t *testing.T) {
	_, c := pinSelection(t)

	require.True(t, c.HandleFeatureClick(0))
	c.Clear()
	assert.Equal(t, Selection{}, c.Current())
}

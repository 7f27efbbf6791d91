package mapsync

import (
	"sync"

	"github.com/haaziqcode/species-map-go/internal/conservation"
	"github.com/haaziqcode/species-map-go/internal/models"
)

// ViewMode selects how the current record set is rendered
type ViewMode int

const (
	ModePins ViewMode = iota
	ModeHeatmap
)

// String returns the mode name
func (m ViewMode) String() string {
	if m == ModeHeatmap {
		return "heatmap"
	}
	return "pins"
}

// ParseViewMode parses a mode name, defaulting to pins
func ParseViewMode(s string) ViewMode {
	if s == "heatmap" {
		return ModeHeatmap
	}
	return ModePins
}

// Source and layer ids. Stable across data updates; only a mode change adds
// or removes layers.
const (
	PinSourceID      = "species-pins"
	HeatSourceID     = "heatmap-data"
	PinLayerID       = "species-pin-layer"
	HeatLayerID      = "heatmap-layer"
	HeatPointLayerID = "heatmap-points"
)

type pendingUpdate struct {
	species  []models.Species
	hotspots []models.Hotspot
	mode     ViewMode
}

// FeatureStore maintains the live renderable feature collection and the
// ordinal feature index derived from the current filtered record set and view
// mode. It is the sole mutator of the render sources and serializes all
// engine updates. Updates requested before the engine has finished
// initializing are coalesced and replayed once, latest state only, when the
// one-shot ready signal fires.
type FeatureStore struct {
	mu       sync.Mutex
	renderer Renderer
	index    *FeatureIndex

	ready      bool
	pending    *pendingUpdate
	activeMode ViewMode
	hasLayers  bool
}

// NewFeatureStore creates a store bound to a renderer
func NewFeatureStore(r Renderer) *FeatureStore {
	return &FeatureStore{
		renderer: r,
		index:    NewFeatureIndex(),
	}
}

// Update rebuilds the render state for the given filtered species, hotspots
// and view mode. Species order must already be the deterministic filtered
// order; the ordinal index mirrors it exactly. Hotspots are only consulted in
// heatmap mode.
func (s *FeatureStore) Update(species []models.Species, hotspots []models.Hotspot, mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		// Coalesce: only the latest pre-ready state is ever rendered.
		s.pending = &pendingUpdate{species: species, hotspots: hotspots, mode: mode}
		return
	}
	s.apply(species, hotspots, mode)
}

// HandleMapReady replays the latest pending update. The engine fires this
// exactly once; repeated signals are ignored.
func (s *FeatureStore) HandleMapReady() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return
	}
	s.ready = true
	if s.pending != nil {
		p := s.pending
		s.pending = nil
		s.apply(p.species, p.hotspots, p.mode)
	}
}

// Index returns the current feature index
func (s *FeatureStore) Index() *FeatureIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Mode returns the active view mode
func (s *FeatureStore) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeMode
}

// apply pushes the new state to the renderer. Caller holds s.mu.
func (s *FeatureStore) apply(species []models.Species, hotspots []models.Hotspot, mode ViewMode) {
	var (
		fc      models.FeatureCollection
		entries []IndexEntry
		source  string
	)
	if mode == ModeHeatmap {
		fc, entries = buildHotspotFeatures(hotspots)
		source = HeatSourceID
	} else {
		fc, entries = buildPinFeatures(species)
		source = PinSourceID
	}

	modeChange := !s.hasLayers || mode != s.activeMode
	if modeChange {
		// Both modes must never be simultaneously active: tear down the
		// opposite mode's layers before adding the new ones.
		if s.hasLayers {
			s.removeLayers(s.activeMode)
		}
		if s.renderer.HasSource(source) {
			s.renderer.SetSourceData(source, fc)
		} else {
			s.renderer.AddSource(source, fc)
		}
		s.addLayers(mode)
	} else {
		// Same mode, new data: replace in place, layer ids stay stable.
		s.renderer.SetSourceData(source, fc)
	}

	s.index.Rebuild(entries)
	s.activeMode = mode
	s.hasLayers = true
}

func (s *FeatureStore) addLayers(mode ViewMode) {
	if mode == ModeHeatmap {
		s.renderer.AddLayer(heatmapLayer())
		s.renderer.AddLayer(heatmapPointLayer())
		return
	}
	s.renderer.AddLayer(pinLayer())
}

func (s *FeatureStore) removeLayers(mode ViewMode) {
	if mode == ModeHeatmap {
		s.renderer.RemoveLayer(HeatLayerID)
		s.renderer.RemoveLayer(HeatPointLayerID)
		return
	}
	s.renderer.RemoveLayer(PinLayerID)
}

// buildPinFeatures builds one feature per coordinate-bearing species, in
// input order. The feature "id" property equals its ordinal.
func buildPinFeatures(species []models.Species) (models.FeatureCollection, []IndexEntry) {
	var features []models.Feature
	var entries []IndexEntry

	for i := range species {
		sp := species[i]
		if !sp.HasCoordinates() {
			continue
		}
		features = append(features, models.NewPointFeature(*sp.Coordinates, map[string]interface{}{
			"id":         len(features),
			"speciesId":  sp.ID,
			"commonName": sp.CommonName,
			"status":     string(sp.ConservationStatus),
			"weight":     conservation.NormalizedWeight(sp.ConservationStatus),
		}))
		entries = append(entries, IndexEntry{
			Kind:       KindSpecies,
			Species:    []models.Species{sp},
			Coordinate: *sp.Coordinates,
		})
	}
	return models.NewFeatureCollection(features), entries
}

// buildHotspotFeatures builds one feature per hotspot, in input order
func buildHotspotFeatures(hotspots []models.Hotspot) (models.FeatureCollection, []IndexEntry) {
	var features []models.Feature
	var entries []IndexEntry

	for i := range hotspots {
		h := hotspots[i]
		features = append(features, models.NewPointFeature(h.Coordinates, map[string]interface{}{
			"id":           len(features),
			"weight":       h.Weight,
			"speciesCount": len(h.Species),
		}))
		entries = append(entries, IndexEntry{
			Kind:          KindHotspot,
			Species:       h.Species,
			Coordinate:    h.Coordinates,
			NavigateFirst: true,
		})
	}
	return models.NewFeatureCollection(features), entries
}

// rampExpression builds an interpolate expression from the shared
// conservation ramp, keyed by the given input expression.
func rampExpression(input interface{}, stops []conservation.RampStop) []interface{} {
	expr := []interface{}{"interpolate", []interface{}{"linear"}, input}
	for _, stop := range stops {
		expr = append(expr, stop.Position, stop.Color)
	}
	return expr
}

func heatmapLayer() Layer {
	return Layer{
		ID:      HeatLayerID,
		Type:    "heatmap",
		Source:  HeatSourceID,
		MaxZoom: 15,
		Paint: map[string]interface{}{
			"heatmap-weight": map[string]interface{}{
				"property": "weight",
				"type":     "exponential",
				"stops":    [][]float64{{0, 0}, {1, 1}},
			},
			"heatmap-intensity": map[string]interface{}{
				"stops": [][]float64{{0, 1}, {15, 3}},
			},
			"heatmap-color":  rampExpression([]interface{}{"heatmap-density"}, conservation.HeatColorRamp()),
			"heatmap-radius": map[string]interface{}{"stops": [][]float64{{0, 20}, {15, 40}}},
			"heatmap-opacity": map[string]interface{}{
				"default": 1,
				"stops":   [][]float64{{14, 1}, {15, 0}},
			},
		},
	}
}

func heatmapPointLayer() Layer {
	return Layer{
		ID:      HeatPointLayerID,
		Type:    "circle",
		Source:  HeatSourceID,
		MinZoom: 14,
		Paint: map[string]interface{}{
			"circle-radius": map[string]interface{}{
				"property": "speciesCount",
				"type":     "exponential",
				"stops":    [][]float64{{1, 8}, {5, 20}},
			},
			"circle-color":        rampExpression([]interface{}{"get", "weight"}, conservation.CircleColorRamp()),
			"circle-stroke-width": 2,
			"circle-stroke-color": "#fff",
			"circle-opacity":      0.8,
		},
	}
}

func pinLayer() Layer {
	return Layer{
		ID:     PinLayerID,
		Type:   "circle",
		Source: PinSourceID,
		Paint: map[string]interface{}{
			"circle-radius":       8,
			"circle-color":        rampExpression([]interface{}{"get", "weight"}, conservation.CircleColorRamp()),
			"circle-stroke-width": 2,
			"circle-stroke-color": "#fff",
			"circle-opacity":      0.9,
		},
	}
}

package mapsync

import (
	"github.com/haaziqcode/species-map-go/internal/models"
)

// flyToZoom is the camera zoom used when navigating to a clicked hotspot or
// a located species.
const flyToZoom = 12

// SelectionKind is the state of the single active selection
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	// SelectionDetail: a record (or hotspot species list) is pending detail display
	SelectionDetail
	// SelectionFlyTo: a fly-to animation must complete before the detail view
	SelectionFlyTo
)

// Selection is the at-most-one active selection
type Selection struct {
	Kind    SelectionKind    `json:"kind"`
	Species []models.Species `json:"species,omitempty"`
	Target  *models.LngLat   `json:"target,omitempty"`
}

// MarshalJSON-friendly kind names
func (k SelectionKind) String() string {
	switch k {
	case SelectionDetail:
		return "detailPending"
	case SelectionFlyTo:
		return "flyToPending"
	default:
		return "none"
	}
}

// SelectionController resolves engine feature clicks against the current
// feature index and owns the selection state machine. Only one click is
// honored at a time: clicks arriving while a fly-to is pending are dropped
// to prevent animation races. Fly-to completions are correlated with a
// monotonically increasing token so a stale completion can never corrupt a
// newer selection.
type SelectionController struct {
	store    *FeatureStore
	renderer Renderer

	current  Selection
	flyToken uint64
}

// NewSelectionController creates a controller over the given store and renderer
func NewSelectionController(store *FeatureStore, r Renderer) *SelectionController {
	return &SelectionController{store: store, renderer: r}
}

// HandleFeatureClick resolves an engine-reported feature id and advances the
// selection state. Returns false when the click was dropped (unknown id, or
// a fly-to already pending).
//
// Not safe for concurrent use on its own; the session serializes access.
func (c *SelectionController) HandleFeatureClick(featureID int) bool {
	if c.current.Kind == SelectionFlyTo {
		return false
	}

	entry, ok := c.store.Index().Resolve(featureID)
	if !ok {
		return false
	}

	if !entry.NavigateFirst {
		// Already arrived: straight to detail.
		c.current = Selection{Kind: SelectionDetail, Species: entry.Species}
		return true
	}

	c.flyToken++
	token := c.flyToken
	target := entry.Coordinate
	species := entry.Species
	c.current = Selection{Kind: SelectionFlyTo, Species: species, Target: &target}

	c.renderer.FlyTo(target, flyToZoom, func() {
		c.completeFlyTo(token, species)
	})
	return true
}

// completeFlyTo is the rendezvous between the animation subsystem and the
// selection subsystem. Stale tokens (a newer fly-to superseded this one) are
// dropped.
func (c *SelectionController) completeFlyTo(token uint64, species []models.Species) {
	if token != c.flyToken {
		return
	}
	c.current = Selection{Kind: SelectionDetail, Species: species}
}

// SetDetail moves directly to a pending-detail selection. Used by the locate
// machine once its own fly-to has arrived.
func (c *SelectionController) SetDetail(species []models.Species) {
	c.current = Selection{Kind: SelectionDetail, Species: species}
}

// Current returns the active selection
func (c *SelectionController) Current() Selection {
	return c.current
}

// Clear resets the selection to none (detail view dismissed)
func (c *SelectionController) Clear() {
	c.current = Selection{}
}

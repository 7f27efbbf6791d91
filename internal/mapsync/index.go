package mapsync

import "github.com/haaziqcode/species-map-go/internal/models"

// EntryKind discriminates what a feature ordinal resolves to
type EntryKind int

const (
	KindSpecies EntryKind = iota
	KindHotspot
)

// IndexEntry maps one render-engine feature ordinal back to domain entities.
// NavigateFirst marks entries that require a camera fly-to before the detail
// view (hotspots); pin entries are "already arrived".
type IndexEntry struct {
	Kind          EntryKind
	Species       []models.Species
	Coordinate    models.LngLat
	NavigateFirst bool
}

// FeatureIndex is the ordinal-to-entity lookup table for the current render
// pass. Feature id i resolves to the entity at position i of the exact
// sequence handed to the renderer. The index is rebuilt atomically (never
// patched) whenever that sequence changes; the version increments per rebuild
// so late events can be checked against the pass they were born in.
//
// Not safe for concurrent use on its own; the feature store serializes all
// access.
type FeatureIndex struct {
	version uint64
	entries []IndexEntry
}

// NewFeatureIndex creates an empty index at version 0
func NewFeatureIndex() *FeatureIndex {
	return &FeatureIndex{}
}

// Rebuild replaces all entries and bumps the version. Returns the new version.
func (idx *FeatureIndex) Rebuild(entries []IndexEntry) uint64 {
	idx.entries = entries
	idx.version++
	return idx.version
}

// Resolve looks up the entry for a feature ordinal
func (idx *FeatureIndex) Resolve(featureID int) (IndexEntry, bool) {
	if featureID < 0 || featureID >= len(idx.entries) {
		return IndexEntry{}, false
	}
	return idx.entries[featureID], true
}

// Version returns the current index version
func (idx *FeatureIndex) Version() uint64 {
	return idx.version
}

// Len returns the number of indexed features
func (idx *FeatureIndex) Len() int {
	return len(idx.entries)
}

package models

// PointGeometry is a GeoJSON point geometry
type PointGeometry struct {
	Type        string `json:"type"` // always "Point"
	Coordinates LngLat `json:"coordinates"`
}

// Feature is a GeoJSON feature handed to the rendering engine. The "id"
// property mirrors the feature's position in the collection and is the
// ordinal the click resolver receives back from the engine.
type Feature struct {
	Type       string                 `json:"type"` // always "Feature"
	Properties map[string]interface{} `json:"properties"`
	Geometry   PointGeometry          `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"` // always "FeatureCollection"
	Features []Feature `json:"features"`
}

// NewPointFeature creates a point feature at the given coordinate
func NewPointFeature(coord LngLat, props map[string]interface{}) Feature {
	return Feature{
		Type:       "Feature",
		Properties: props,
		Geometry: PointGeometry{
			Type:        "Point",
			Coordinates: coord,
		},
	}
}

// NewFeatureCollection wraps features into a collection
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

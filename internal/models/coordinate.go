package models

import (
	"encoding/json"
	"fmt"
)

// LngLat is a geographic coordinate pair. Longitude comes first everywhere:
// the wire format is a two-element [lng, lat] array, matching GeoJSON and the
// rendering engine's coordinate convention.
type LngLat struct {
	Lng float64
	Lat float64
}

// MarshalJSON encodes the coordinate as [lng, lat].
func (c LngLat) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lng, c.Lat})
}

// UnmarshalJSON decodes a [lng, lat] array.
func (c *LngLat) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lng, lat] array: %w", err)
	}
	c.Lng = pair[0]
	c.Lat = pair[1]
	return nil
}

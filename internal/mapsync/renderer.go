package mapsync

import (
	"sync"

	"github.com/haaziqcode/species-map-go/internal/models"
)

// Layer describes a render layer. Paint and layout values are opaque to the
// core and passed straight through to the engine.
type Layer struct {
	ID      string                 `json:"id"`
	Type    string                 `json:"type"` // heatmap, circle, symbol
	Source  string                 `json:"source"`
	MinZoom float64                `json:"minzoom,omitempty"`
	MaxZoom float64                `json:"maxzoom,omitempty"`
	Paint   map[string]interface{} `json:"paint,omitempty"`
	Layout  map[string]interface{} `json:"layout,omitempty"`
}

// Renderer is the capability contract of the external rendering engine. The
// core depends only on these primitives. FlyTo is fire-and-forget; done runs
// exactly once when the camera movement completes.
type Renderer interface {
	AddSource(id string, data models.FeatureCollection)
	SetSourceData(id string, data models.FeatureCollection)
	HasSource(id string) bool
	AddLayer(layer Layer)
	HasLayer(id string) bool
	RemoveLayer(id string)
	SetCursor(cursor string)
	FlyTo(center models.LngLat, zoom float64, done func())
}

// Command op codes for CommandLog
const (
	OpAddSource     = "addSource"
	OpSetSourceData = "setSourceData"
	OpAddLayer      = "addLayer"
	OpRemoveLayer   = "removeLayer"
	OpSetCursor     = "setCursor"
	OpFlyTo         = "flyTo"
)

// Command is one recorded renderer instruction for a thin client to apply
type Command struct {
	Op     string                    `json:"op"`
	Source string                    `json:"source,omitempty"`
	Data   *models.FeatureCollection `json:"data,omitempty"`
	Layer  *Layer                    `json:"layer,omitempty"`
	Cursor string                    `json:"cursor,omitempty"`
	Center *models.LngLat            `json:"center,omitempty"`
	Zoom   float64                   `json:"zoom,omitempty"`
	FlyID  uint64                    `json:"flyId,omitempty"`
}

// CommandLog is a Renderer that records commands instead of drawing. A
// browser-side engine drains the log, applies the commands, and reports
// fly-to completions back by id.
type CommandLog struct {
	mu       sync.Mutex
	commands []Command
	sources  map[string]bool
	layers   map[string]bool
	cursor   string
	nextFly  uint64
	pending  map[uint64]func()
}

// NewCommandLog creates an empty command log
func NewCommandLog() *CommandLog {
	return &CommandLog{
		sources: make(map[string]bool),
		layers:  make(map[string]bool),
		pending: make(map[uint64]func()),
	}
}

// AddSource records an addSource command
func (c *CommandLog) AddSource(id string, data models.FeatureCollection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[id] = true
	c.commands = append(c.commands, Command{Op: OpAddSource, Source: id, Data: &data})
}

// SetSourceData records a setSourceData command
func (c *CommandLog) SetSourceData(id string, data models.FeatureCollection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = append(c.commands, Command{Op: OpSetSourceData, Source: id, Data: &data})
}

// HasSource reports whether a source has been added
func (c *CommandLog) HasSource(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sources[id]
}

// AddLayer records an addLayer command
func (c *CommandLog) AddLayer(layer Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[layer.ID] = true
	c.commands = append(c.commands, Command{Op: OpAddLayer, Layer: &layer})
}

// HasLayer reports whether a layer is currently added
func (c *CommandLog) HasLayer(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layers[id]
}

// RemoveLayer records a removeLayer command
func (c *CommandLog) RemoveLayer(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layers, id)
	c.commands = append(c.commands, Command{Op: OpRemoveLayer, Layer: &Layer{ID: id}})
}

// SetCursor records a setCursor command; repeats of the current cursor are
// coalesced away.
func (c *CommandLog) SetCursor(cursor string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cursor == c.cursor {
		return
	}
	c.cursor = cursor
	c.commands = append(c.commands, Command{Op: OpSetCursor, Cursor: cursor})
}

// FlyTo records a flyTo command and parks done until the client reports the
// movement complete via CompleteFlyTo.
func (c *CommandLog) FlyTo(center models.LngLat, zoom float64, done func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextFly++
	if done != nil {
		c.pending[c.nextFly] = done
	}
	c.commands = append(c.commands, Command{Op: OpFlyTo, Center: &center, Zoom: zoom, FlyID: c.nextFly})
}

// CompleteFlyTo runs the completion callback for the given fly id. Returns
// false for unknown or already-completed ids.
func (c *CommandLog) CompleteFlyTo(flyID uint64) bool {
	c.mu.Lock()
	done, ok := c.pending[flyID]
	if ok {
		delete(c.pending, flyID)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	done()
	return true
}

// Drain returns the recorded commands and clears the log
func (c *CommandLog) Drain() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.commands
	c.commands = nil
	return out
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/mapsync"
	"github.com/haaziqcode/species-map-go/internal/metrics"
	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/service"
	"github.com/haaziqcode/species-map-go/pkg/response"
)

// SessionHandler exposes the map-synchronization core to thin clients. The
// browser runs the rendering engine; it forwards engine events here and
// drains renderer commands to apply. One session per client.
type SessionHandler struct {
	sessions *mapsync.SessionManager
	heat     *service.HeatmapService
	geo      *geolocate.HTTPClient
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *mapsync.SessionManager, heat *service.HeatmapService, geo *geolocate.HTTPClient) *SessionHandler {
	return &SessionHandler{sessions: sessions, heat: heat, geo: geo}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.sessions.Create()
	response.Success(c, gin.H{"sessionId": s.ID})
}

func (h *SessionHandler) session(c *gin.Context) (*mapsync.Session, bool) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "Session not found or expired")
		return nil, false
	}
	return s, true
}

// Ready handles POST /api/v1/session/:id/ready — the engine's one-shot
// initialization-complete signal.
func (h *SessionHandler) Ready(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Ready()
	response.Success(c, nil)
}

type viewRequest struct {
	Mode   string `json:"mode"` // pins or heatmap
	Type   string `json:"type"`
	Status string `json:"status"`
	Query  string `json:"q"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
}

// UpdateView handles POST /api/v1/session/:id/view — filter or mode change
func (h *SessionHandler) UpdateView(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid view payload")
		return
	}

	filter := models.HeatmapFilter{
		SpeciesFilter: models.SpeciesFilter{Type: req.Type, Status: req.Status, Query: req.Query},
		Month:         req.Month,
		Year:          req.Year,
	}
	hotspots, species, err := h.heat.Hotspots(filter)
	if err != nil {
		response.InternalError(c, "Failed to build view state")
		return
	}

	mode := mapsync.ParseViewMode(req.Mode)
	s.UpdateView(species, hotspots, mode)
	response.Success(c, gin.H{
		"mode":     mode.String(),
		"species":  len(species),
		"hotspots": len(hotspots),
	})
}

type clickRequest struct {
	FeatureID *int `json:"featureId" binding:"required"`
}

// Click handles POST /api/v1/session/:id/click — an engine feature click
func (h *SessionHandler) Click(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "featureId is required")
		return
	}

	sel, handled := s.Click(*req.FeatureID)
	if !handled {
		metrics.ClicksDroppedTotal.Inc()
	}
	response.Success(c, gin.H{
		"handled":   handled,
		"selection": selectionView(sel),
	})
}

type hoverRequest struct {
	// FeatureID is absent when the pointer left all features
	FeatureID *int `json:"featureId"`
}

// Hover handles POST /api/v1/session/:id/hover — a pointer-move over the map
func (h *SessionHandler) Hover(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req hoverRequest
	_ = c.ShouldBindJSON(&req) // empty body means the pointer left all features

	s.Hover(req.FeatureID)
	response.Success(c, nil)
}

type locateRequest struct {
	// Browser-resolved position, when the client ran geolocation itself
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	// Browser-reported geolocation failure to classify
	ErrorCode string `json:"errorCode"`
}

// Locate handles POST /api/v1/session/:id/locate. The client either forwards
// its browser-resolved position (or failure), or sends an empty body to fall
// back to IP geolocation.
func (h *SessionHandler) Locate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	metrics.LocateRequestsTotal.Inc()

	var req locateRequest
	_ = c.ShouldBindJSON(&req) // empty body is fine

	var provider geolocate.Provider
	switch {
	case req.ErrorCode != "":
		provider = geolocate.StaticProvider{Err: &geolocate.Error{Code: parseGeoCode(req.ErrorCode)}}
	case req.Lat != nil && req.Lng != nil:
		provider = geolocate.StaticProvider{Coord: models.LngLat{Lng: *req.Lng, Lat: *req.Lat}}
	default:
		provider = h.geo.ForIP(c.ClientIP())
	}

	s.Locate(provider)
	response.Success(c, gin.H{"state": "locating"})
}

// EnterManual handles POST /api/v1/session/:id/manual-entry
func (h *SessionHandler) EnterManual(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.EnterManual()
	response.Success(c, gin.H{"state": mapsync.LocateAwaitingManual.String()})
}

type manualLocationRequest struct {
	Lat string `json:"lat" binding:"required"`
	Lng string `json:"lng" binding:"required"`
}

// SubmitManual handles POST /api/v1/session/:id/manual-location
func (h *SessionHandler) SubmitManual(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req manualLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "lat and lng are required")
		return
	}

	if err := s.SubmitManual(req.Lat, req.Lng); err != nil {
		state, msg, _ := s.LocateStatus()
		// Validation failure: re-prompt with the reason, not an HTTP error.
		response.Success(c, gin.H{
			"accepted": false,
			"state":    state.String(),
			"message":  msg,
		})
		return
	}

	state, msg, target := s.LocateStatus()
	response.Success(c, gin.H{
		"accepted": true,
		"state":    state.String(),
		"message":  msg,
		"target":   target,
	})
}

type flyToCompleteRequest struct {
	FlyID uint64 `json:"flyId" binding:"required"`
}

// CompleteFlyTo handles POST /api/v1/session/:id/flyto-complete — the
// engine's movement-complete signal for a previously issued fly-to command.
func (h *SessionHandler) CompleteFlyTo(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req flyToCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "flyId is required")
		return
	}

	acknowledged := s.CompleteFlyTo(req.FlyID)
	response.Success(c, gin.H{"acknowledged": acknowledged})
}

// Commands handles GET /api/v1/session/:id/commands — drains the pending
// renderer commands for the client to apply in order.
func (h *SessionHandler) Commands(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	cmds := s.Commands()
	if cmds == nil {
		cmds = []mapsync.Command{}
	}
	response.Success(c, gin.H{"commands": cmds})
}

// Selection handles GET /api/v1/session/:id/selection
func (h *SessionHandler) Selection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state, msg, target := s.LocateStatus()
	response.Success(c, gin.H{
		"selection":     selectionView(s.Selection()),
		"locateState":   state.String(),
		"locateMessage": msg,
		"locateTarget":  target,
	})
}

// ClearSelection handles DELETE /api/v1/session/:id/selection
func (h *SessionHandler) ClearSelection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.ClearSelection()
	response.Success(c, nil)
}

func selectionView(sel mapsync.Selection) gin.H {
	return gin.H{
		"kind":    sel.Kind.String(),
		"species": sel.Species,
		"target":  sel.Target,
	}
}

func parseGeoCode(code string) geolocate.ErrorCode {
	switch code {
	case "permission_denied":
		return geolocate.CodePermissionDenied
	case "position_unavailable":
		return geolocate.CodePositionUnavailable
	case "timeout":
		return geolocate.CodeTimeout
	case "unsupported":
		return geolocate.CodeUnsupported
	default:
		return geolocate.CodeUnknown
	}
}

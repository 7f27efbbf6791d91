package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haaziqcode/species-map-go/internal/metrics"
	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/service"
	"github.com/haaziqcode/species-map-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for hotspot aggregation
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetHotspots handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetHotspots(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		response.BadRequest(c, "month must be 1-12")
		return
	}

	start := time.Now()
	hotspots, _, err := h.service.Hotspots(filter)
	if err != nil {
		response.InternalError(c, "Failed to build heatmap")
		return
	}
	metrics.HeatmapBuildDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	response.Success(c, gin.H{
		"data":  hotspots,
		"count": len(hotspots),
	})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haaziqcode/species-map-go/internal/models"
	"github.com/haaziqcode/species-map-go/internal/repository"
	"github.com/haaziqcode/species-map-go/internal/service"
	"github.com/haaziqcode/species-map-go/pkg/response"
)

// SpeciesHandler handles HTTP requests for the species catalog
type SpeciesHandler struct {
	service  *service.SpeciesService
	featured *service.FeaturedService
}

// NewSpeciesHandler creates a new species handler
func NewSpeciesHandler(service *service.SpeciesService, featured *service.FeaturedService) *SpeciesHandler {
	return &SpeciesHandler{service: service, featured: featured}
}

// List handles GET /api/v1/species
func (h *SpeciesHandler) List(c *gin.Context) {
	var filter models.SpeciesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	species, err := h.service.List(filter)
	if err != nil {
		response.InternalError(c, "Failed to list species")
		return
	}

	response.Success(c, gin.H{
		"data":  species,
		"count": len(species),
	})
}

// Get handles GET /api/v1/species/:id
func (h *SpeciesHandler) Get(c *gin.Context) {
	sp, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Species not found")
			return
		}
		response.InternalError(c, "Failed to get species")
		return
	}
	response.Success(c, sp)
}

// Featured handles GET /api/v1/species/featured — the species of the month
// plus the following month's pick for preview.
func (h *SpeciesHandler) Featured(c *gin.Context) {
	now := time.Now()
	current, err := h.featured.SpeciesOfTheMonth(now)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) {
			response.Empty(c, "The species catalog is empty")
			return
		}
		response.InternalError(c, "Failed to pick featured species")
		return
	}
	next, err := h.featured.NextSpeciesOfTheMonth(now)
	if err != nil {
		response.InternalError(c, "Failed to pick featured species")
		return
	}

	response.Success(c, gin.H{
		"month":   now.Month().String(),
		"species": current,
		"next":    next,
	})
}

// Create handles POST /api/v1/species
func (h *SpeciesHandler) Create(c *gin.Context) {
	var sp models.Species
	if err := c.ShouldBindJSON(&sp); err != nil {
		response.BadRequest(c, "Invalid species payload")
		return
	}
	if sp.CommonName == "" || sp.ScientificName == "" {
		response.BadRequest(c, "commonName and scientificName are required")
		return
	}

	if err := h.service.Create(&sp); err != nil {
		response.InternalError(c, "Failed to create species")
		return
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success", Data: sp})
}

// Update handles PUT /api/v1/species/:id
func (h *SpeciesHandler) Update(c *gin.Context) {
	var sp models.Species
	if err := c.ShouldBindJSON(&sp); err != nil {
		response.BadRequest(c, "Invalid species payload")
		return
	}
	sp.ID = c.Param("id")

	if err := h.service.Update(&sp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Species not found")
			return
		}
		response.InternalError(c, "Failed to update species")
		return
	}
	response.Success(c, sp)
}

// Delete handles DELETE /api/v1/species/:id
func (h *SpeciesHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Species not found")
			return
		}
		response.InternalError(c, "Failed to delete species")
		return
	}
	response.Success(c, nil)
}

// AddObservation handles POST /api/v1/species/:id/observations
func (h *SpeciesHandler) AddObservation(c *gin.Context) {
	var obs models.Observation
	if err := c.ShouldBindJSON(&obs); err != nil {
		response.BadRequest(c, "Invalid observation payload")
		return
	}
	obs.SpeciesID = c.Param("id")
	if obs.Month < 1 || obs.Month > 12 {
		response.BadRequest(c, "month must be 1-12")
		return
	}

	if err := h.service.AddObservation(obs); err != nil {
		response.InternalError(c, "Failed to record observation")
		return
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success"})
}

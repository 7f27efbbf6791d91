package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haaziqcode/species-map-go/internal/config"
	"github.com/haaziqcode/species-map-go/internal/handler"
	"github.com/haaziqcode/species-map-go/internal/metrics"
	"github.com/haaziqcode/species-map-go/internal/middleware"
)

// Handlers groups the HTTP handlers the router wires up
type Handlers struct {
	Species *handler.SpeciesHandler
	Heatmap *handler.HeatmapHandler
	Locate  *handler.LocateHandler
	Session *handler.SessionHandler
}

// SetupRouter configures routes and middleware
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS for the browser frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Species Map API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	{
		species := api.Group("/species")
		{
			species.GET("", h.Species.List)
			species.GET("/featured", h.Species.Featured)
			species.GET("/:id", h.Species.Get)

			protected := species.Group("", middleware.RequireAuth(cfg.JWTSecret))
			{
				protected.POST("", h.Species.Create)
				protected.PUT("/:id", h.Species.Update)
				protected.DELETE("/:id", h.Species.Delete)
				protected.POST("/:id/observations", h.Species.AddObservation)
			}
		}

		api.GET("/heatmap", h.Heatmap.GetHotspots)
		api.GET("/nearest", h.Locate.GetNearest)
		api.POST("/locate", h.Locate.Locate)

		session := api.Group("/session")
		{
			session.POST("", h.Session.Create)
			session.POST("/:id/ready", h.Session.Ready)
			session.POST("/:id/view", h.Session.UpdateView)
			session.POST("/:id/click", h.Session.Click)
			session.POST("/:id/hover", h.Session.Hover)
			session.POST("/:id/locate", h.Session.Locate)
			session.POST("/:id/manual-entry", h.Session.EnterManual)
			session.POST("/:id/manual-location", h.Session.SubmitManual)
			session.POST("/:id/flyto-complete", h.Session.CompleteFlyTo)
			session.GET("/:id/commands", h.Session.Commands)
			session.GET("/:id/selection", h.Session.Selection)
			session.DELETE("/:id/selection", h.Session.ClearSelection)
		}
	}

	return r
}

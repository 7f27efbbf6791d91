package main

import (
	"log"

	"github.com/haaziqcode/species-map-go/internal/api"
	"github.com/haaziqcode/species-map-go/internal/config"
	"github.com/haaziqcode/species-map-go/internal/database"
	"github.com/haaziqcode/species-map-go/internal/geolocate"
	"github.com/haaziqcode/species-map-go/internal/handler"
	"github.com/haaziqcode/species-map-go/internal/heatmap"
	"github.com/haaziqcode/species-map-go/internal/mapsync"
	"github.com/haaziqcode/species-map-go/internal/repository"
	"github.com/haaziqcode/species-map-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	repo := repository.NewSpeciesRepository(db)
	speciesService := service.NewSpeciesService(repo)
	featuredService := service.NewFeaturedService(repo)
	heatmapService := service.NewHeatmapService(repo, heatmap.New(heatmap.DefaultConfig()))
	nearestService := service.NewNearestService(repo)

	geoClient := geolocate.NewHTTPClient(cfg.GeoAPIBaseURL, nil)
	sessions := mapsync.NewSessionManager(mapsync.OntarioEnvelope(), cfg.SessionTTL, nil)
	sessions.SetLocateTimeout(cfg.LocateTimeout)

	router := api.SetupRouter(cfg, api.Handlers{
		Species: handler.NewSpeciesHandler(speciesService, featuredService),
		Heatmap: handler.NewHeatmapHandler(heatmapService),
		Locate:  handler.NewLocateHandler(nearestService, geoClient, cfg.LocateTimeout),
		Session: handler.NewSessionHandler(sessions, heatmapService, geoClient),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

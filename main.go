package main

import (
	"time"

	"github.com/ViaggioGiappone/trip-planner-backend/config"
	_ "github.com/ViaggioGiappone/trip-planner-backend/docs"
	"github.com/ViaggioGiappone/trip-planner-backend/handlers"
	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/models"
	"github.com/ViaggioGiappone/trip-planner-backend/router"
	"github.com/ViaggioGiappone/trip-planner-backend/store/supabase"
)

// @title Trip Planner API
// @version 1.0
// @description Single-user travel-planning backend: trip documents, per-city itineraries, cost summaries.
// @BasePath /v1
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tripStore := supabase.NewTripStore(supabase.Config{
		URL:      cfg.Supabase.URL,
		Key:      cfg.Supabase.Key,
		Timeout:  time.Duration(cfg.Supabase.TimeoutSeconds) * time.Second,
		Actor:    cfg.Trip.ModifiedBy,
		Timezone: cfg.Trip.Timezone,
	})

	tripModel := models.NewTripModel(tripStore)
	tripHandler := handlers.NewTripHandler(tripModel)
	healthHandler := handlers.NewHealthHandler(cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		TripHandler:   tripHandler,
		HealthHandler: healthHandler,
		Logger:        log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

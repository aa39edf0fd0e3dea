package router

import (
	"github.com/ViaggioGiappone/trip-planner-backend/config"
	"github.com/ViaggioGiappone/trip-planner-backend/handlers"
	"github.com/ViaggioGiappone/trip-planner-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	TripHandler   *handlers.TripHandler
	HealthHandler *handlers.HealthHandler
	Logger        *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics (no auth, outside the versioned group)
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	{
		v1.GET("/catalog/cities", deps.TripHandler.CatalogHandler)

		tripRoutes := v1.Group("/trips/:id")
		{
			tripRoutes.GET("", deps.TripHandler.GetTripHandler)
			tripRoutes.PUT("", deps.TripHandler.SaveTripHandler)
			tripRoutes.PUT("/pre-departure", deps.TripHandler.SetPreDepartureHandler)
			tripRoutes.PUT("/gallery-link", deps.TripHandler.SetGalleryLinkHandler)
			tripRoutes.PUT("/budget", deps.TripHandler.RecomputeBudgetHandler)
			tripRoutes.GET("/stats", deps.TripHandler.StatisticsHandler)
			tripRoutes.GET("/cities", deps.TripHandler.ActiveCitiesHandler)

			cityRoutes := tripRoutes.Group("/cities/:city")
			{
				cityRoutes.GET("", deps.TripHandler.GetCityHandler)
				cityRoutes.PUT("", deps.TripHandler.SaveCityHandler)
				cityRoutes.GET("/summary", deps.TripHandler.CitySummaryHandler)
				cityRoutes.POST("/categories/:category/items", deps.TripHandler.AddItemsHandler)
				cityRoutes.DELETE("/categories/:category/items/:itemKey", deps.TripHandler.DeleteItemHandler)
			}
		}
	}

	return r
}

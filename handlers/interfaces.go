package handlers

import (
	"context"

	"github.com/ViaggioGiappone/trip-planner-backend/pkg/catalog"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
)

// TripModelInterface defines the trip model methods needed by handlers.
// Implemented by models.TripModel.
type TripModelInterface interface {
	GetTrip(ctx context.Context, tripKey string) *types.TripDocument
	SaveTrip(ctx context.Context, tripKey string, doc *types.TripDocument) error
	GetCity(ctx context.Context, tripKey, cityName string) (*types.CityRecord, error)
	SaveCity(ctx context.Context, tripKey, cityName string, rec *types.CityRecord) error
	AddItineraryItems(ctx context.Context, tripKey, cityName string, cat types.Category, items []types.ItineraryItem) (*types.TripDocument, []string, error)
	DeleteItineraryItem(ctx context.Context, tripKey, cityName string, cat types.Category, itemKey string) (*types.TripDocument, error)
	SetPreDepartureCosts(ctx context.Context, tripKey string, costs types.PreDepartureCosts) (*types.TripDocument, error)
	SetGalleryLink(ctx context.Context, tripKey, link string) (*types.TripDocument, error)
	RecomputeBudget(ctx context.Context, tripKey string, plannedTotal float64) (*types.TripDocument, error)
	CitySummary(ctx context.Context, tripKey, cityName string) ([]types.SummaryRow, error)
	Statistics(ctx context.Context, tripKey string) types.TripStatistics
	ActiveCities(ctx context.Context, tripKey string) []catalog.City
}

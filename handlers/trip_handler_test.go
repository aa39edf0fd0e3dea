package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/ViaggioGiappone/trip-planner-backend/errors"
	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/middleware"
	"github.com/ViaggioGiappone/trip-planner-backend/pkg/catalog"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

// stubTripModel records the last call and returns canned values.
type stubTripModel struct {
	doc   *types.TripDocument
	keys  []string
	rows  []types.SummaryRow
	stats types.TripStatistics
	err   error

	gotTripKey  string
	gotCity     string
	gotCategory types.Category
	gotItemKey  string
	gotItems    []types.ItineraryItem
	gotLink     string
	gotPlanned  float64
}

func (s *stubTripModel) GetTrip(ctx context.Context, tripKey string) *types.TripDocument {
	s.gotTripKey = tripKey
	return s.doc
}

func (s *stubTripModel) SaveTrip(ctx context.Context, tripKey string, doc *types.TripDocument) error {
	s.gotTripKey = tripKey
	return s.err
}

func (s *stubTripModel) GetCity(ctx context.Context, tripKey, cityName string) (*types.CityRecord, error) {
	s.gotTripKey, s.gotCity = tripKey, cityName
	if s.err != nil {
		return nil, s.err
	}
	return types.NewCityRecord(), nil
}

func (s *stubTripModel) SaveCity(ctx context.Context, tripKey, cityName string, rec *types.CityRecord) error {
	s.gotTripKey, s.gotCity = tripKey, cityName
	return s.err
}

func (s *stubTripModel) AddItineraryItems(ctx context.Context, tripKey, cityName string, cat types.Category, items []types.ItineraryItem) (*types.TripDocument, []string, error) {
	s.gotTripKey, s.gotCity, s.gotCategory, s.gotItems = tripKey, cityName, cat, items
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.doc, s.keys, nil
}

func (s *stubTripModel) DeleteItineraryItem(ctx context.Context, tripKey, cityName string, cat types.Category, itemKey string) (*types.TripDocument, error) {
	s.gotTripKey, s.gotCity, s.gotCategory, s.gotItemKey = tripKey, cityName, cat, itemKey
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubTripModel) SetPreDepartureCosts(ctx context.Context, tripKey string, costs types.PreDepartureCosts) (*types.TripDocument, error) {
	s.gotTripKey = tripKey
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubTripModel) SetGalleryLink(ctx context.Context, tripKey, link string) (*types.TripDocument, error) {
	s.gotTripKey, s.gotLink = tripKey, link
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubTripModel) RecomputeBudget(ctx context.Context, tripKey string, plannedTotal float64) (*types.TripDocument, error) {
	s.gotTripKey, s.gotPlanned = tripKey, plannedTotal
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubTripModel) CitySummary(ctx context.Context, tripKey, cityName string) ([]types.SummaryRow, error) {
	s.gotTripKey, s.gotCity = tripKey, cityName
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubTripModel) Statistics(ctx context.Context, tripKey string) types.TripStatistics {
	s.gotTripKey = tripKey
	return s.stats
}

func (s *stubTripModel) ActiveCities(ctx context.Context, tripKey string) []catalog.City {
	s.gotTripKey = tripKey
	return nil
}

func setupTestRouter(model *stubTripModel) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	h := NewTripHandler(model)
	v1 := r.Group("/v1")
	v1.GET("/catalog/cities", h.CatalogHandler)
	trips := v1.Group("/trips/:id")
	trips.GET("", h.GetTripHandler)
	trips.PUT("", h.SaveTripHandler)
	trips.PUT("/pre-departure", h.SetPreDepartureHandler)
	trips.PUT("/gallery-link", h.SetGalleryLinkHandler)
	trips.PUT("/budget", h.RecomputeBudgetHandler)
	trips.GET("/stats", h.StatisticsHandler)
	trips.GET("/cities", h.ActiveCitiesHandler)
	city := trips.Group("/cities/:city")
	city.GET("/summary", h.CitySummaryHandler)
	city.POST("/categories/:category/items", h.AddItemsHandler)
	city.DELETE("/categories/:category/items/:itemKey", h.DeleteItemHandler)
	return r
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetTripHandler(t *testing.T) {
	model := &stubTripModel{doc: types.NewTripDocument(time.Now())}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodGet, "/v1/trips/default_trip", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default_trip", model.gotTripKey)

	var doc types.TripDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, types.SchemaVersion, doc.Meta.SchemaVersion)
}

func TestAddItemsHandler(t *testing.T) {
	model := &stubTripModel{
		doc:  types.NewTripDocument(time.Now()),
		keys: []string{"alloggio_1"},
	}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPost,
		"/v1/trips/default_trip/cities/Tokyo/categories/alloggi/items",
		AddItemsRequest{Items: []types.ItineraryItem{{Name: "Hotel Gracery", Cost: 360}}})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Tokyo", model.gotCity)
	assert.Equal(t, types.CategoryLodging, model.gotCategory)
	require.Len(t, model.gotItems, 1)

	var resp AddItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"alloggio_1"}, resp.Keys)
}

func TestAddItemsHandlerRejectsMissingBody(t *testing.T) {
	model := &stubTripModel{}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPost,
		"/v1/trips/default_trip/cities/Tokyo/categories/alloggi/items",
		map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.ValidationError), resp.Type)
}

func TestAddItemsHandlerMapsUnknownCity(t *testing.T) {
	model := &stubTripModel{err: apperrors.UnknownCity("Atlantis")}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPost,
		"/v1/trips/default_trip/cities/Atlantis/categories/alloggi/items",
		AddItemsRequest{Items: []types.ItineraryItem{{Name: "Hotel", Cost: 1}}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.UnknownCityError), resp.Type)
}

func TestDeleteItemHandler(t *testing.T) {
	model := &stubTripModel{doc: types.NewTripDocument(time.Now())}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodDelete,
		"/v1/trips/default_trip/cities/Kyoto/categories/ristoranti/items/ristorante_2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.CategoryDining, model.gotCategory)
	assert.Equal(t, "ristorante_2", model.gotItemKey)
}

func TestDeleteItemHandlerMapsNotFound(t *testing.T) {
	model := &stubTripModel{err: apperrors.NotFound("itinerary item", "ristorante_9")}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodDelete,
		"/v1/trips/default_trip/cities/Kyoto/categories/ristoranti/items/ristorante_9", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetGalleryLinkHandler(t *testing.T) {
	model := &stubTripModel{doc: types.NewTripDocument(time.Now())}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPut, "/v1/trips/default_trip/gallery-link",
		GalleryLinkRequest{Link: "https://example.com/album"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/album", model.gotLink)
}

func TestRecomputeBudgetHandler(t *testing.T) {
	model := &stubTripModel{doc: types.NewTripDocument(time.Now())}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPut, "/v1/trips/default_trip/budget",
		BudgetRequest{PlannedTotal: 2500})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2500.0, model.gotPlanned)
}

func TestSetPreDepartureHandler(t *testing.T) {
	model := &stubTripModel{doc: types.NewTripDocument(time.Now())}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodPut, "/v1/trips/default_trip/pre-departure",
		types.PreDepartureCosts{Flight: types.FlightCosts{BaseFare: 500}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default_trip", model.gotTripKey)
}

func TestCitySummaryHandler(t *testing.T) {
	model := &stubTripModel{rows: []types.SummaryRow{
		{Category: types.CategoryLodging, Label: "Alloggi", Total: 150},
		{Label: types.TotalRowLabel, Total: 150},
	}}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodGet, "/v1/trips/default_trip/cities/Tokyo/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []types.SummaryRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, types.TotalRowLabel, rows[1].Label)
}

func TestStatisticsHandler(t *testing.T) {
	model := &stubTripModel{stats: types.TripStatistics{ActiveCities: 3, TotalCost: 1200, PreDepartureCost: 650}}
	r := setupTestRouter(model)

	w := performRequest(r, http.MethodGet, "/v1/trips/default_trip/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats types.TripStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.ActiveCities)
	assert.Equal(t, 1200.0, stats.TotalCost)
}

func TestCatalogHandler(t *testing.T) {
	r := setupTestRouter(&stubTripModel{})

	w := performRequest(r, http.MethodGet, "/v1/catalog/cities", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var all []catalog.City
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 24)
}

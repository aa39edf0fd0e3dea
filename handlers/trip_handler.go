package handlers

import (
	"net/http"

	"github.com/ViaggioGiappone/trip-planner-backend/errors"
	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/pkg/catalog"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	model TripModelInterface
}

func NewTripHandler(model TripModelInterface) *TripHandler {
	return &TripHandler{model: model}
}

// AddItemsRequest is the body of the add-items endpoint.
type AddItemsRequest struct {
	Items []types.ItineraryItem `json:"items" binding:"required"`
}

// AddItemsResponse reports the keys assigned to the inserted items along
// with the updated document.
type AddItemsResponse struct {
	Keys []string            `json:"keys"`
	Trip *types.TripDocument `json:"trip"`
}

// GalleryLinkRequest is the body of the gallery-link endpoint.
type GalleryLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// BudgetRequest is the body of the budget recompute endpoint.
type BudgetRequest struct {
	PlannedTotal float64 `json:"planned_total"`
}

// GetTripHandler godoc
// @Summary Get the trip document
// @Description Returns the full trip document for the trip key, or a freshly synthesized empty document when nothing is persisted yet.
// @Tags trips
// @Produce json
// @Param id path string true "Trip key"
// @Success 200 {object} types.TripDocument
// @Router /trips/{id} [get]
func (h *TripHandler) GetTripHandler(c *gin.Context) {
	doc := h.model.GetTrip(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, doc)
}

// SaveTripHandler godoc
// @Summary Replace the trip document
// @Description Full-document upsert. The metadata block is rewritten on save; the submitted one is ignored.
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param request body types.TripDocument true "Trip document"
// @Success 200 {object} types.TripDocument
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id} [put]
func (h *TripHandler) SaveTripHandler(c *gin.Context) {
	log := logger.GetLogger()

	var doc types.TripDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		log.Errorw("Invalid trip document body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	tripKey := c.Param("id")
	if err := h.model.SaveTrip(c.Request.Context(), tripKey, &doc); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, &doc)
}

// GetCityHandler godoc
// @Summary Get the independent per-city record
// @Description Reads the per-city path. Returns the empty city structure when no record exists.
// @Tags cities
// @Produce json
// @Param id path string true "Trip key"
// @Param city path string true "City name"
// @Success 200 {object} types.CityRecord
// @Failure 400 {object} middleware.ErrorResponse
// @Router /trips/{id}/cities/{city} [get]
func (h *TripHandler) GetCityHandler(c *gin.Context) {
	rec, err := h.model.GetCity(c.Request.Context(), c.Param("id"), c.Param("city"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// SaveCityHandler godoc
// @Summary Replace the independent per-city record
// @Description Upsert keyed by (trip, city). Not transactionally linked to the whole-document path.
// @Tags cities
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param city path string true "City name"
// @Param request body types.CityRecord true "City record"
// @Success 200 {object} types.CityRecord
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/cities/{city} [put]
func (h *TripHandler) SaveCityHandler(c *gin.Context) {
	log := logger.GetLogger()

	var rec types.CityRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		log.Errorw("Invalid city record body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	if err := h.model.SaveCity(c.Request.Context(), c.Param("id"), c.Param("city"), &rec); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, &rec)
}

// AddItemsHandler godoc
// @Summary Add itinerary items to a city category
// @Description Appends items to one category, creating the city record on first use with its catalog coordinates. Keys are assigned sequentially and never reused.
// @Tags itinerary
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param city path string true "City name"
// @Param category path string true "Category" Enums(alloggi, ristoranti, negozi, attivita, trasporti)
// @Param request body AddItemsRequest true "Items to add"
// @Success 201 {object} AddItemsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/cities/{city}/categories/{category}/items [post]
func (h *TripHandler) AddItemsHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid add-items body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	doc, keys, err := h.model.AddItineraryItems(
		c.Request.Context(),
		c.Param("id"),
		c.Param("city"),
		types.Category(c.Param("category")),
		req.Items,
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, AddItemsResponse{Keys: keys, Trip: doc})
}

// DeleteItemHandler godoc
// @Summary Delete one itinerary item
// @Description Removes the item; when that empties every category of the city, the city record is removed too before the document is persisted.
// @Tags itinerary
// @Produce json
// @Param id path string true "Trip key"
// @Param city path string true "City name"
// @Param category path string true "Category" Enums(alloggi, ristoranti, negozi, attivita, trasporti)
// @Param itemKey path string true "Item key"
// @Success 200 {object} types.TripDocument
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/cities/{city}/categories/{category}/items/{itemKey} [delete]
func (h *TripHandler) DeleteItemHandler(c *gin.Context) {
	doc, err := h.model.DeleteItineraryItem(
		c.Request.Context(),
		c.Param("id"),
		c.Param("city"),
		types.Category(c.Param("category")),
		c.Param("itemKey"),
	)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SetPreDepartureHandler godoc
// @Summary Replace the pre-departure costs
// @Description Stores the pre-departure block. All derived totals (flight total, yen, incidentals total, grand total) are recomputed server-side.
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param request body types.PreDepartureCosts true "Pre-departure costs"
// @Success 200 {object} types.TripDocument
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/pre-departure [put]
func (h *TripHandler) SetPreDepartureHandler(c *gin.Context) {
	log := logger.GetLogger()

	var costs types.PreDepartureCosts
	if err := c.ShouldBindJSON(&costs); err != nil {
		log.Errorw("Invalid pre-departure body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	doc, err := h.model.SetPreDepartureCosts(c.Request.Context(), c.Param("id"), costs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SetGalleryLinkHandler godoc
// @Summary Set the photo gallery link
// @Description Stores the user-supplied external gallery URL. The link is opaque to the backend.
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param request body GalleryLinkRequest true "Gallery link"
// @Success 200 {object} types.TripDocument
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/gallery-link [put]
func (h *TripHandler) SetGalleryLinkHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req GalleryLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid gallery-link body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	doc, err := h.model.SetGalleryLink(c.Request.Context(), c.Param("id"), req.Link)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RecomputeBudgetHandler godoc
// @Summary Recompute the budget block
// @Description Explicitly recomputes the budget: spend across all categories and cities plus pre-departure costs, per-category breakdown and remainder. Budget is never recomputed implicitly.
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip key"
// @Param request body BudgetRequest true "Planned total"
// @Success 200 {object} types.TripDocument
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trips/{id}/budget [put]
func (h *TripHandler) RecomputeBudgetHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid budget body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	doc, err := h.model.RecomputeBudget(c.Request.Context(), c.Param("id"), req.PlannedTotal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CitySummaryHandler godoc
// @Summary Get the cost summary for one city
// @Description Returns the per-category cost table for the city: one row per category plus the TOTALE row.
// @Tags summaries
// @Produce json
// @Param id path string true "Trip key"
// @Param city path string true "City name"
// @Success 200 {array} types.SummaryRow
// @Failure 404 {object} middleware.ErrorResponse
// @Router /trips/{id}/cities/{city}/summary [get]
func (h *TripHandler) CitySummaryHandler(c *gin.Context) {
	rows, err := h.model.CitySummary(c.Request.Context(), c.Param("id"), c.Param("city"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// StatisticsHandler godoc
// @Summary Get the trip statistics rollup
// @Description Returns the number of cities with active items and their summed cost over lodging, activities and transport, plus the pre-departure total.
// @Tags summaries
// @Produce json
// @Param id path string true "Trip key"
// @Success 200 {object} types.TripStatistics
// @Router /trips/{id}/stats [get]
func (h *TripHandler) StatisticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.model.Statistics(c.Request.Context(), c.Param("id")))
}

// ActiveCitiesHandler godoc
// @Summary List cities with itinerary data
// @Description Returns the cities that currently have at least one itinerary item, with their stored coordinates, for the map view.
// @Tags summaries
// @Produce json
// @Param id path string true "Trip key"
// @Success 200 {array} catalog.City
// @Router /trips/{id}/cities [get]
func (h *TripHandler) ActiveCitiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.model.ActiveCities(c.Request.Context(), c.Param("id")))
}

// CatalogHandler godoc
// @Summary List the static city catalog
// @Description Returns every known city and its coordinates. Read-only; used to populate the map and validate city names.
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.City
// @Router /catalog/cities [get]
func (h *TripHandler) CatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.All())
}

// Package models implements the trip-planning operations over the document
// store: every user interaction is one synchronous load-mutate-save cycle.
// There is no in-memory session document; each call reads the current state,
// mutates an explicit document and persists it.
package models

import (
	"context"

	"github.com/ViaggioGiappone/trip-planner-backend/errors"
	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/pkg/catalog"
	"github.com/ViaggioGiappone/trip-planner-backend/store"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
)

type TripModel struct {
	store store.TripStore
}

func NewTripModel(s store.TripStore) *TripModel {
	return &TripModel{store: s}
}

// GetTrip returns the current document for the trip key, or the empty
// default when nothing is persisted yet.
func (tm *TripModel) GetTrip(ctx context.Context, tripKey string) *types.TripDocument {
	return tm.store.Load(ctx, tripKey)
}

// SaveTrip persists a full document supplied by the caller.
func (tm *TripModel) SaveTrip(ctx context.Context, tripKey string, doc *types.TripDocument) error {
	if doc == nil {
		return errors.ValidationFailed("document required", "request body is empty")
	}
	doc.Normalize()
	if !tm.store.Save(ctx, tripKey, doc) {
		return errors.NewStoreError(nil)
	}
	return nil
}

// GetCity returns the independent per-city record for the trip.
func (tm *TripModel) GetCity(ctx context.Context, tripKey, cityName string) (*types.CityRecord, error) {
	if _, ok := catalog.Lookup(cityName); !ok {
		return nil, errors.UnknownCity(cityName)
	}
	return tm.store.LoadCity(ctx, tripKey, cityName), nil
}

// SaveCity persists the independent per-city record. This path is not
// transactionally linked to the whole-document path.
func (tm *TripModel) SaveCity(ctx context.Context, tripKey, cityName string, rec *types.CityRecord) error {
	if _, ok := catalog.Lookup(cityName); !ok {
		return errors.UnknownCity(cityName)
	}
	if rec == nil {
		return errors.ValidationFailed("city record required", "request body is empty")
	}
	rec.Normalize()
	if !tm.store.SaveCity(ctx, tripKey, cityName, rec) {
		return errors.NewStoreError(nil)
	}
	return nil
}

// AddItineraryItems appends the items to one category of one city, creating
// the city record on first use with its catalog coordinates. Keys are
// assigned sequentially from the highest existing suffix; items without a
// name are skipped unless the category is transport, which accepts nameless
// entries. Returns the updated document and the assigned keys.
func (tm *TripModel) AddItineraryItems(ctx context.Context, tripKey, cityName string, cat types.Category, items []types.ItineraryItem) (*types.TripDocument, []string, error) {
	log := logger.GetLogger()

	if !cat.IsValid() {
		return nil, nil, errors.ValidationFailed("unknown category", string(cat))
	}
	coords, ok := catalog.Lookup(cityName)
	if !ok {
		return nil, nil, errors.UnknownCity(cityName)
	}
	if len(items) == 0 {
		return nil, nil, errors.ValidationFailed("no items to add", "at least one item is required")
	}

	doc := tm.store.Load(ctx, tripKey)
	rec := doc.EnsureCity(cityName, coords)

	keys := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name == "" && cat != types.CategoryTransport {
			log.Debugw("Skipping nameless item", "trip", tripKey, "city", cityName, "category", cat)
			continue
		}
		keys = append(keys, rec.AddItem(cat, item))
	}
	if len(keys) == 0 {
		return nil, nil, errors.ValidationFailed("no items to add", "every item needs a name")
	}

	if !tm.store.Save(ctx, tripKey, doc) {
		return nil, nil, errors.NewStoreError(nil)
	}
	return doc, keys, nil
}

// DeleteItineraryItem removes one item and, when that leaves every category
// of the city empty, removes the city record as well — before the document
// is persisted, so a transient empty record never reaches the store.
func (tm *TripModel) DeleteItineraryItem(ctx context.Context, tripKey, cityName string, cat types.Category, itemKey string) (*types.TripDocument, error) {
	if !cat.IsValid() {
		return nil, errors.ValidationFailed("unknown category", string(cat))
	}

	doc := tm.store.Load(ctx, tripKey)
	rec, ok := doc.Cities[cityName]
	if !ok {
		return nil, errors.CityNotFound(cityName)
	}
	if !rec.RemoveItem(cat, itemKey) {
		return nil, errors.NotFound("itinerary item", itemKey)
	}
	doc.CleanupCity(cityName)

	if !tm.store.Save(ctx, tripKey, doc) {
		return nil, errors.NewStoreError(nil)
	}
	return doc, nil
}

// SetPreDepartureCosts replaces the pre-departure block, recomputing every
// derived total before the document is persisted.
func (tm *TripModel) SetPreDepartureCosts(ctx context.Context, tripKey string, costs types.PreDepartureCosts) (*types.TripDocument, error) {
	costs.Derive()

	doc := tm.store.Load(ctx, tripKey)
	doc.PreDeparture = costs

	if !tm.store.Save(ctx, tripKey, doc) {
		return nil, errors.NewStoreError(nil)
	}
	return doc, nil
}

// SetGalleryLink stores the user-supplied external gallery URL. The link is
// opaque to this core.
func (tm *TripModel) SetGalleryLink(ctx context.Context, tripKey, link string) (*types.TripDocument, error) {
	if link == "" {
		return nil, errors.ValidationFailed("gallery link required", "link must not be empty")
	}

	doc := tm.store.Load(ctx, tripKey)
	doc.GalleryLink = link

	if !tm.store.Save(ctx, tripKey, doc) {
		return nil, errors.NewStoreError(nil)
	}
	return doc, nil
}

// RecomputeBudget is the only operation that touches the budget block: it
// sets the planned total, recomputes the current spend (all five categories
// across every city plus the pre-departure grand total), the per-category
// breakdown and the remainder, then persists. No mutation recomputes the
// budget implicitly.
func (tm *TripModel) RecomputeBudget(ctx context.Context, tripKey string, plannedTotal float64) (*types.TripDocument, error) {
	if plannedTotal < 0 {
		return nil, errors.ValidationFailed("invalid planned total", "planned total must be non-negative")
	}

	doc := tm.store.Load(ctx, tripKey)

	breakdown := make(map[types.Category]float64, 5)
	spend := doc.PreDeparture.GrandTotal
	for _, cat := range types.Categories() {
		total := 0.0
		for _, rec := range doc.Cities {
			total += rec.CategoryTotal(cat)
		}
		breakdown[cat] = total
		spend += total
	}

	doc.Budget = types.Budget{
		PlannedTotal: plannedTotal,
		CurrentSpend: spend,
		Remaining:    plannedTotal - spend,
		ByCategory:   breakdown,
	}

	if !tm.store.Save(ctx, tripKey, doc) {
		return nil, errors.NewStoreError(nil)
	}
	return doc, nil
}

// CitySummary builds the per-category cost table for one city that has
// itinerary data in the document.
func (tm *TripModel) CitySummary(ctx context.Context, tripKey, cityName string) ([]types.SummaryRow, error) {
	doc := tm.store.Load(ctx, tripKey)
	rec, ok := doc.Cities[cityName]
	if !ok {
		return nil, errors.CityNotFound(cityName)
	}
	return rec.CostSummary(), nil
}

// Statistics computes the trip-level rollup for the current document.
func (tm *TripModel) Statistics(ctx context.Context, tripKey string) types.TripStatistics {
	return tm.store.Load(ctx, tripKey).Statistics()
}

// ActiveCities lists the cities that currently have itinerary data, with
// their stored coordinates, for the map view.
func (tm *TripModel) ActiveCities(ctx context.Context, tripKey string) []catalog.City {
	doc := tm.store.Load(ctx, tripKey)
	names := doc.ActiveCityNames()
	active := make([]catalog.City, 0, len(names))
	for _, name := range names {
		active = append(active, catalog.City{
			Name:        name,
			Coordinates: doc.Cities[name].Coordinates,
		})
	}
	return active
}

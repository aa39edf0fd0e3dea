// Package store defines the persistence contract for trip documents.
package store

import (
	"context"

	"github.com/ViaggioGiappone/trip-planner-backend/types"
)

// TripStore is the four-operation boundary between the document core and the
// backing store. Loads never fail: on a backing-store error they log it and
// return the synthesized empty default, so callers cannot distinguish "no
// data yet" from "store unreachable" through this interface alone. Saves
// stamp the metadata block and report whether the write was acknowledged;
// they never panic or propagate an error.
//
// The per-city path is independent of the whole-document path and the two
// are not transactionally linked: a write through one is only guaranteed
// visible through the other after a subsequent full reload. The
// whole-document path is authoritative.
type TripStore interface {
	Load(ctx context.Context, tripKey string) *types.TripDocument
	Save(ctx context.Context, tripKey string, doc *types.TripDocument) bool
	LoadCity(ctx context.Context, tripKey, cityName string) *types.CityRecord
	SaveCity(ctx context.Context, tripKey, cityName string, rec *types.CityRecord) bool
}

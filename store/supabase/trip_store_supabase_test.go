package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func newTestStore(t *testing.T, handler http.HandlerFunc) *TripStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewTripStore(Config{
		URL:      srv.URL + "/",
		Key:      "test-api-key",
		Timeout:  2 * time.Second,
		Actor:    "user",
		Timezone: "Europe/Rome",
	})
	s.now = func() time.Time {
		return time.Date(2026, 4, 12, 10, 0, 0, 0, time.UTC)
	}
	return s
}

func TestLoadReturnsPersistedDocument(t *testing.T) {
	var gotPath, gotQuery, gotKey, gotAuth string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")

		doc := types.NewTripDocument(time.Now())
		doc.EnsureCity("Tokyo", types.Coordinates{Lat: 35.6762, Lon: 139.6503}).
			AddItem(types.CategoryLodging, types.ItineraryItem{Name: "Hotel", Cost: 120})

		_ = json.NewEncoder(w).Encode([]tripRow{{ID: "default_trip", Data: doc}})
	})

	doc := s.Load(context.Background(), "default_trip")
	require.NotNil(t, doc)
	assert.Contains(t, doc.Cities, "Tokyo")
	assert.Equal(t, 120.0, doc.Cities["Tokyo"].Lodging["alloggio_1"].Cost)

	assert.Equal(t, "/rest/v1/trips", gotPath)
	assert.Equal(t, "id=eq.default_trip&select=data", gotQuery)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, "Bearer test-api-key", gotAuth)
}

func TestLoadSynthesizesDefaultWhenMissing(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	doc := s.Load(context.Background(), "default_trip")
	require.NotNil(t, doc)
	assert.Empty(t, doc.Cities)
	assert.Equal(t, "system", doc.Meta.LastModifiedBy)
	// 10:00 UTC is noon in Rome during DST.
	assert.Equal(t, "2026-04-12 12:00:00", doc.Meta.LastModified)
}

func TestLoadSynthesizesDefaultOnServerError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	doc := s.Load(context.Background(), "default_trip")
	require.NotNil(t, doc)
	assert.Empty(t, doc.Cities)
	assert.Equal(t, types.SchemaVersion, doc.Meta.SchemaVersion)
}

func TestSaveUpsertsAndStampsMetadata(t *testing.T) {
	var gotMethod, gotQuery, gotPrefer string
	var gotRow tripRow
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotPrefer = r.Header.Get("Prefer")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotRow))
		w.WriteHeader(http.StatusCreated)
	})

	doc := types.NewTripDocument(time.Now())
	ok := s.Save(context.Background(), "default_trip", doc)
	require.True(t, ok)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "on_conflict=id", gotQuery)
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", gotPrefer)
	assert.Equal(t, "default_trip", gotRow.ID)

	require.NotNil(t, gotRow.Data)
	assert.Equal(t, "2026-04-12 12:00:00", gotRow.Data.Meta.LastModified)
	assert.Equal(t, "user", gotRow.Data.Meta.LastModifiedBy)
	assert.Equal(t, types.SchemaVersion, gotRow.Data.Meta.SchemaVersion)
}

func TestSaveReportsFailure(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	assert.False(t, s.Save(context.Background(), "default_trip", types.NewTripDocument(time.Now())))
	assert.False(t, s.Save(context.Background(), "default_trip", nil))
}

func TestLoadCityDefaultsWhenAbsent(t *testing.T) {
	var gotQuery string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	})

	rec := s.LoadCity(context.Background(), "default_trip", "Kyoto")
	require.NotNil(t, rec)
	assert.Equal(t, types.Coordinates{}, rec.Coordinates)
	for _, cat := range types.Categories() {
		assert.NotNil(t, rec.Items(cat))
	}
	assert.Equal(t, "trip_id=eq.default_trip&city_name=eq.Kyoto&select=data", gotQuery)
}

func TestSaveCityUsesCompositeConflictTarget(t *testing.T) {
	var gotPath, gotQuery string
	var gotRow cityRow
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotRow))
		w.WriteHeader(http.StatusCreated)
	})

	rec := types.NewCityRecord()
	rec.AddItem(types.CategoryDining, types.ItineraryItem{Name: "Ichiran", Cost: 15})

	require.True(t, s.SaveCity(context.Background(), "default_trip", "Kyoto", rec))
	assert.Equal(t, "/rest/v1/cities", gotPath)
	assert.Equal(t, "on_conflict=trip_id%2Ccity_name", gotQuery)
	assert.Equal(t, "default_trip", gotRow.TripID)
	assert.Equal(t, "Kyoto", gotRow.CityName)
	require.NotNil(t, gotRow.Data)
	assert.Equal(t, 15.0, gotRow.Data.Dining["ristorante_1"].Cost)
}

func TestLoadNormalizesSparseDocument(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		// A row persisted by an older writer, missing most mappings.
		_, _ = w.Write([]byte(`[{"id":"default_trip","data":{"dati_citta":{"Nara":{"attivita":{"attivita_1":{"nome":"Todai-ji","costo":8}}}}}}]`))
	})

	doc := s.Load(context.Background(), "default_trip")
	rec := doc.Cities["Nara"]
	require.NotNil(t, rec)
	for _, cat := range types.Categories() {
		assert.NotNil(t, rec.Items(cat))
	}
	assert.NotNil(t, doc.Budget.ByCategory)
	assert.Equal(t, 8.0, rec.Activities["attivita_1"].Cost)
}

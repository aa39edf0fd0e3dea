// Package supabase implements the trip document store against the Supabase
// PostgREST API. Documents live as JSON in the trips table (one row per trip
// key) and in the cities table (one row per trip key and city name).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/ViaggioGiappone/trip-planner-backend/types"
	"go.uber.org/zap"
)

const (
	tripsTable  = "trips"
	citiesTable = "cities"
)

// Config contains the connection settings for the Supabase project.
type Config struct {
	URL     string
	Key     string
	Timeout time.Duration
	// Actor is stamped into meta.ultima_modifica_utente on every save.
	Actor string
	// Timezone is the wall-clock zone of the last-modified stamp.
	Timezone string
}

// TripStore talks to Supabase over its REST API. Every call is one network
// round trip; nothing is cached locally.
type TripStore struct {
	baseURL    string
	apiKey     string
	actor      string
	httpClient *http.Client
	location   *time.Location
	logger     *zap.SugaredLogger

	// now is swappable in tests.
	now func() time.Time
}

// NewTripStore creates a store client for the configured Supabase project.
func NewTripStore(cfg Config) *TripStore {
	log := logger.GetLogger()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	actor := cfg.Actor
	if actor == "" {
		actor = "user"
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warnw("Unknown timezone for metadata stamps, falling back to UTC",
			"timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	return &TripStore{
		baseURL:    trimTrailingSlash(cfg.URL),
		apiKey:     cfg.Key,
		actor:      actor,
		httpClient: &http.Client{Timeout: timeout},
		location:   loc,
		logger:     log,
		now:        time.Now,
	}
}

type tripRow struct {
	ID        string              `json:"id"`
	Data      *types.TripDocument `json:"data"`
	UpdatedAt string              `json:"updated_at,omitempty"`
}

type cityRow struct {
	TripID    string            `json:"trip_id"`
	CityName  string            `json:"city_name"`
	Data      *types.CityRecord `json:"data"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// Load returns the persisted document for the trip key, or the synthesized
// empty default when no row exists or the store is unreachable.
func (s *TripStore) Load(ctx context.Context, tripKey string) *types.TripDocument {
	query := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s&select=data",
		s.baseURL, tripsTable, url.QueryEscape(tripKey))

	var rows []tripRow
	if err := s.getJSON(ctx, query, &rows); err != nil {
		s.logger.Errorw("Failed to load trip document, returning empty default",
			"trip", tripKey, "error", err)
		return types.NewTripDocument(s.stampTime())
	}
	if len(rows) == 0 || rows[0].Data == nil {
		return types.NewTripDocument(s.stampTime())
	}

	doc := rows[0].Data
	doc.Normalize()
	return doc
}

// Save stamps the metadata block and upserts the full document under the
// trip key. It reports whether the write was acknowledged.
func (s *TripStore) Save(ctx context.Context, tripKey string, doc *types.TripDocument) bool {
	if doc == nil {
		return false
	}
	doc.Meta.Stamp(s.stampTime(), s.actor)

	row := tripRow{
		ID:        tripKey,
		Data:      doc,
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.upsert(ctx, tripsTable, "id", row); err != nil {
		s.logger.Errorw("Failed to save trip document", "trip", tripKey, "error", err)
		return false
	}
	return true
}

// LoadCity reads the independent per-city record, or the empty city
// structure (zero coordinates) when absent or on a store error.
func (s *TripStore) LoadCity(ctx context.Context, tripKey, cityName string) *types.CityRecord {
	query := fmt.Sprintf("%s/rest/v1/%s?trip_id=eq.%s&city_name=eq.%s&select=data",
		s.baseURL, citiesTable, url.QueryEscape(tripKey), url.QueryEscape(cityName))

	var rows []cityRow
	if err := s.getJSON(ctx, query, &rows); err != nil {
		s.logger.Errorw("Failed to load city record, returning empty default",
			"trip", tripKey, "city", cityName, "error", err)
		return types.NewCityRecord()
	}
	if len(rows) == 0 || rows[0].Data == nil {
		return types.NewCityRecord()
	}

	rec := rows[0].Data
	rec.Normalize()
	return rec
}

// SaveCity upserts the per-city record keyed by (trip key, city name). This
// path is not transactionally linked to Save.
func (s *TripStore) SaveCity(ctx context.Context, tripKey, cityName string, rec *types.CityRecord) bool {
	if rec == nil {
		return false
	}

	row := cityRow{
		TripID:    tripKey,
		CityName:  cityName,
		Data:      rec,
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.upsert(ctx, citiesTable, "trip_id,city_name", row); err != nil {
		s.logger.Errorw("Failed to save city record",
			"trip", tripKey, "city", cityName, "error", err)
		return false
	}
	return true
}

// stampTime returns the current wall-clock time in the configured zone.
func (s *TripStore) stampTime() time.Time {
	return s.now().In(s.location)
}

func (s *TripStore) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("supabase GET returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// upsert posts a row with merge-duplicates resolution so an existing row for
// the same conflict target is fully replaced.
func (s *TripStore) upsert(ctx context.Context, table, onConflict string, row interface{}) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	postURL := fmt.Sprintf("%s/rest/v1/%s?on_conflict=%s",
		s.baseURL, table, url.QueryEscape(onConflict))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("supabase POST returned status code %d", resp.StatusCode)
	}
	return nil
}

func (s *TripStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func trimTrailingSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

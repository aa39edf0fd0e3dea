package types

import "time"

// SchemaVersion is stamped into the metadata block on every save. Existing
// documents carry it, so it must be preserved even though no migration logic
// reads it yet.
const SchemaVersion = "1.0"

// MetadataTimeLayout is the wall-clock format of meta.ultima_modifica.
const MetadataTimeLayout = "2006-01-02 15:04:05"

// TripDocument is the root record for one trip. The JSON tags are the v1.0
// wire format of the persisted documents and must not change.
type TripDocument struct {
	PreDeparture PreDepartureCosts      `json:"costi_partenza"`
	Cities       map[string]*CityRecord `json:"dati_citta"`
	Budget       Budget                 `json:"budget"`
	GalleryLink  string                 `json:"custom_gallery_link"`
	Meta         Metadata               `json:"meta"`
}

// Metadata is rewritten on every successful save.
type Metadata struct {
	LastModified   string `json:"ultima_modifica"`
	LastModifiedBy string `json:"ultima_modifica_utente"`
	SchemaVersion  string `json:"versione_dati"`
}

// Stamp rewrites the metadata block for a save performed by the given actor.
func (m *Metadata) Stamp(t time.Time, actor string) {
	m.LastModified = t.Format(MetadataTimeLayout)
	m.LastModifiedBy = actor
	m.SchemaVersion = SchemaVersion
}

// Budget is display-only: no mutation in this package touches it. It is
// refreshed only by an explicit recompute operation.
type Budget struct {
	PlannedTotal float64              `json:"totale_pianificato"`
	CurrentSpend float64              `json:"speso_corrente"`
	Remaining    float64              `json:"rimanente"`
	ByCategory   map[Category]float64 `json:"suddivisione_per_categoria"`
}

// Coordinates is a latitude/longitude pair copied from the city catalog.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CityRecord holds the itinerary items for one city, one mapping per
// category. A city record exists in the document iff at least one of the
// five mappings is non-empty.
type CityRecord struct {
	Lodging     map[string]ItineraryItem `json:"alloggi"`
	Dining      map[string]ItineraryItem `json:"ristoranti"`
	Shopping    map[string]ItineraryItem `json:"negozi"`
	Activities  map[string]ItineraryItem `json:"attivita"`
	Transport   map[string]ItineraryItem `json:"trasporti"`
	Coordinates Coordinates              `json:"coordinate"`
}

// NewTripDocument synthesizes the empty default document: no cities, zeroed
// costs, zeroed budget breakdown, metadata stamped by "system".
func NewTripDocument(now time.Time) *TripDocument {
	doc := &TripDocument{
		Cities: make(map[string]*CityRecord),
		Budget: Budget{ByCategory: emptyBreakdown()},
	}
	doc.Meta.Stamp(now, "system")
	return doc
}

// NewCityRecord returns the empty city structure with zero coordinates.
func NewCityRecord() *CityRecord {
	rec := &CityRecord{}
	rec.Normalize()
	return rec
}

func emptyBreakdown() map[Category]float64 {
	b := make(map[Category]float64, 5)
	for _, cat := range Categories() {
		b[cat] = 0
	}
	return b
}

// Normalize fills in mappings that are absent from a loaded document, so
// every read path sees non-nil maps. Absent scalar fields already default to
// zero values on unmarshal.
func (d *TripDocument) Normalize() {
	if d.Cities == nil {
		d.Cities = make(map[string]*CityRecord)
	}
	for _, rec := range d.Cities {
		rec.Normalize()
	}
	if d.Budget.ByCategory == nil {
		d.Budget.ByCategory = emptyBreakdown()
	}
}

// Normalize fills in category mappings that are absent from a loaded record.
func (c *CityRecord) Normalize() {
	for _, cat := range Categories() {
		if m := c.items(cat); *m == nil {
			*m = make(map[string]ItineraryItem)
		}
	}
}

// items returns a pointer to the mapping for the category, or nil for an
// unknown category.
func (c *CityRecord) items(cat Category) *map[string]ItineraryItem {
	switch cat {
	case CategoryLodging:
		return &c.Lodging
	case CategoryDining:
		return &c.Dining
	case CategoryShopping:
		return &c.Shopping
	case CategoryActivities:
		return &c.Activities
	case CategoryTransport:
		return &c.Transport
	default:
		return nil
	}
}

// Items returns the item mapping for the category. The returned map is the
// record's own; callers that mutate it must go through AddItem/RemoveItem to
// keep key assignment and cleanup correct.
func (c *CityRecord) Items(cat Category) map[string]ItineraryItem {
	m := c.items(cat)
	if m == nil {
		return nil
	}
	return *m
}

// IsEmpty reports whether all five category mappings are empty.
func (c *CityRecord) IsEmpty() bool {
	for _, cat := range Categories() {
		if len(c.Items(cat)) > 0 {
			return false
		}
	}
	return true
}

// maxKeySuffix returns the highest numeric suffix among keys of the form
// {singular}_{n} in the category mapping; 0 when none match.
func (c *CityRecord) maxKeySuffix(cat Category) int {
	maxN := 0
	for key := range c.Items(cat) {
		if n, ok := cat.KeySuffix(key); ok && n > maxN {
			maxN = n
		}
	}
	return maxN
}

// NextItemKey returns the key the next item added to the category will
// receive: one past the highest suffix still present, so suffixes freed by
// deleting earlier items are never reused.
func (c *CityRecord) NextItemKey(cat Category) string {
	return cat.ItemKey(c.maxKeySuffix(cat) + 1)
}

// AddItem inserts the item under the next monotone key for the category and
// returns the assigned key.
func (c *CityRecord) AddItem(cat Category, item ItineraryItem) string {
	m := c.items(cat)
	if *m == nil {
		*m = make(map[string]ItineraryItem)
	}
	key := c.NextItemKey(cat)
	(*m)[key] = item
	return key
}

// RemoveItem deletes the item and reports whether it was present. While a
// higher suffix remains, the deleted one stays unused by later additions.
func (c *CityRecord) RemoveItem(cat Category, key string) bool {
	m := c.Items(cat)
	if m == nil {
		return false
	}
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

// EnsureCity returns the record for the city, creating it with the given
// catalog coordinates on first use.
func (d *TripDocument) EnsureCity(name string, coords Coordinates) *CityRecord {
	if d.Cities == nil {
		d.Cities = make(map[string]*CityRecord)
	}
	rec, ok := d.Cities[name]
	if !ok {
		rec = NewCityRecord()
		rec.Coordinates = coords
		d.Cities[name] = rec
	}
	return rec
}

// CleanupCity removes the city record when all of its categories are empty.
// It must run before every persist that follows a deletion: a transient
// empty record is never saved. Reports whether the record was removed.
func (d *TripDocument) CleanupCity(name string) bool {
	rec, ok := d.Cities[name]
	if !ok {
		return false
	}
	if !rec.IsEmpty() {
		return false
	}
	delete(d.Cities, name)
	return true
}

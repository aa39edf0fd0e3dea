package types

import (
	"strconv"
	"strings"
)

// Category identifies one of the five itinerary sections of a city record.
// The string value doubles as the JSON key inside the persisted document.
type Category string

const (
	CategoryLodging    Category = "alloggi"
	CategoryDining     Category = "ristoranti"
	CategoryShopping   Category = "negozi"
	CategoryActivities Category = "attivita"
	CategoryTransport  Category = "trasporti"
)

// categorySingular holds the explicit item-key prefix for each category.
// Keys are generated as {singular}_{n}; the prefix is fixed per category and
// not derived from the plural name.
var categorySingular = map[Category]string{
	CategoryLodging:    "alloggio",
	CategoryDining:     "ristorante",
	CategoryShopping:   "negozio",
	CategoryActivities: "attivita",
	CategoryTransport:  "trasporto",
}

// categoryLabel holds the display label used in cost summaries.
var categoryLabel = map[Category]string{
	CategoryLodging:    "Alloggi",
	CategoryDining:     "Ristoranti",
	CategoryShopping:   "Negozi",
	CategoryActivities: "Attività",
	CategoryTransport:  "Trasporti",
}

// Categories returns the five itinerary categories in display order.
func Categories() []Category {
	return []Category{
		CategoryLodging,
		CategoryDining,
		CategoryShopping,
		CategoryActivities,
		CategoryTransport,
	}
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is one of the five known categories.
func (c Category) IsValid() bool {
	_, ok := categorySingular[c]
	return ok
}

// Singular returns the item-key prefix for the category.
func (c Category) Singular() string {
	return categorySingular[c]
}

// Label returns the display label for the category.
func (c Category) Label() string {
	return categoryLabel[c]
}

// KeySuffix parses the numeric suffix of an item key of the form
// {singular}_{n}. The second return value is false when the key does not
// match that form for this category.
func (c Category) KeySuffix(key string) (int, bool) {
	prefix := c.Singular() + "_"
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(key[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ItemKey builds the item key for the given suffix.
func (c Category) ItemKey(n int) string {
	return c.Singular() + "_" + strconv.Itoa(n)
}

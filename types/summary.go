package types

import "sort"

// SummaryRow is one line of a city cost summary table.
type SummaryRow struct {
	Category Category `json:"category,omitempty"`
	Label    string   `json:"label"`
	Total    float64  `json:"total"`
}

// TotalRowLabel is the label of the closing grand-total row of a summary.
const TotalRowLabel = "TOTALE"

// statisticsCategories are the categories that enter the trip-level cost
// rollup. Dining and shopping are deliberately excluded from this view.
var statisticsCategories = []Category{
	CategoryLodging,
	CategoryActivities,
	CategoryTransport,
}

// TripStatistics is the home-page rollup over cities with active items.
type TripStatistics struct {
	ActiveCities     int     `json:"active_cities"`
	TotalCost        float64 `json:"total_cost"`
	PreDepartureCost float64 `json:"pre_departure_cost"`
}

// CategoryTotal sums the cost field over all items in one category. Items
// with no cost count as zero.
func (c *CityRecord) CategoryTotal(cat Category) float64 {
	total := 0.0
	for _, item := range c.Items(cat) {
		total += item.Cost
	}
	return total
}

// CostSummary builds the per-category cost table for the city: one row per
// category in display order, closed by a TOTALE row summing all five,
// zero-valued categories included.
func (c *CityRecord) CostSummary() []SummaryRow {
	rows := make([]SummaryRow, 0, 6)
	grand := 0.0
	for _, cat := range Categories() {
		total := c.CategoryTotal(cat)
		grand += total
		rows = append(rows, SummaryRow{Category: cat, Label: cat.Label(), Total: total})
	}
	return append(rows, SummaryRow{Label: TotalRowLabel, Total: grand})
}

// ActiveCityNames returns, sorted, the cities that have at least one item in
// any category.
func (d *TripDocument) ActiveCityNames() []string {
	names := make([]string, 0, len(d.Cities))
	for name, rec := range d.Cities {
		if !rec.IsEmpty() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Statistics computes the trip-level rollup: the number of cities with
// active items and their summed cost restricted to lodging, activities and
// transport. Pre-departure cost is carried over as already derived.
func (d *TripDocument) Statistics() TripStatistics {
	stats := TripStatistics{PreDepartureCost: d.PreDeparture.GrandTotal}
	for _, rec := range d.Cities {
		if rec.IsEmpty() {
			continue
		}
		stats.ActiveCities++
		for _, cat := range statisticsCategories {
			stats.TotalCost += rec.CategoryTotal(cat)
		}
	}
	return stats
}

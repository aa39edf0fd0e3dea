// Package catalog holds the static city catalog: the Japanese cities the
// planner knows about and their coordinates. It is read-only; city records
// copy their coordinates from here on first creation.
package catalog

import (
	"sort"

	"github.com/ViaggioGiappone/trip-planner-backend/types"
)

var cities = map[string]types.Coordinates{
	"Tokyo":       {Lat: 35.6762, Lon: 139.6503},
	"Kyoto":       {Lat: 35.0116, Lon: 135.7681},
	"Osaka":       {Lat: 34.6937, Lon: 135.5023},
	"Nara":        {Lat: 34.6851, Lon: 135.8048},
	"Hiroshima":   {Lat: 34.3853, Lon: 132.4553},
	"Sapporo":     {Lat: 43.0618, Lon: 141.3545},
	"Fukuoka":     {Lat: 33.5902, Lon: 130.4017},
	"Kanazawa":    {Lat: 36.5944, Lon: 136.6255},
	"Nagoya":      {Lat: 35.1815, Lon: 136.9066},
	"Kobe":        {Lat: 34.6901, Lon: 135.1955},
	"Takayama":    {Lat: 36.1408, Lon: 137.2520},
	"Hakone":      {Lat: 35.2324, Lon: 139.1069},
	"Nikko":       {Lat: 36.7198, Lon: 139.6982},
	"Kamakura":    {Lat: 35.3192, Lon: 139.5467},
	"Matsumoto":   {Lat: 36.2384, Lon: 137.9720},
	"Kawaguchiko": {Lat: 35.5171, Lon: 138.7510},
	"Himeji":      {Lat: 34.8157, Lon: 134.6854},
	"Ise":         {Lat: 34.4873, Lon: 136.7257},
	"Sendai":      {Lat: 38.2682, Lon: 140.8694},
	"Nagasaki":    {Lat: 32.7503, Lon: 129.8777},
	"Yokohama":    {Lat: 35.4437, Lon: 139.6380},
	"Takeshima":   {Lat: 34.2891, Lon: 133.0182},
	"Miyajima":    {Lat: 34.2971, Lon: 132.3197},
	"Koyasan":     {Lat: 34.2130, Lon: 135.5855},
}

// Lookup returns the coordinates for a city display name.
func Lookup(name string) (types.Coordinates, bool) {
	coords, ok := cities[name]
	return coords, ok
}

// Names returns all known city display names, sorted.
func Names() []string {
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// City pairs a catalog entry with its name, for the map view payload.
type City struct {
	Name        string            `json:"name"`
	Coordinates types.Coordinates `json:"coordinates"`
}

// All returns every catalog entry, sorted by name.
func All() []City {
	all := make([]City, 0, len(cities))
	for _, name := range Names() {
		all = append(all, City{Name: name, Coordinates: cities[name]})
	}
	return all
}

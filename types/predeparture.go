package types

// PreDepartureCosts groups the costs recorded before leaving: the flight
// leg, the travel insurance and the incidental costs. The totale fields are
// derived; Derive is the only writer.
type PreDepartureCosts struct {
	Flight      FlightCosts     `json:"volo"`
	Insurance   InsuranceCosts  `json:"assicurazione"`
	Incidentals IncidentalCosts `json:"altro"`
	GrandTotal  float64         `json:"totale_generale"`
}

// FlightCosts describes the round-trip flight leg. Dates and times are
// free-form strings; nothing in this core parses them.
type FlightCosts struct {
	Origin        string  `json:"partenza,omitempty"`
	Destination   string  `json:"arrivo,omitempty"`
	Duration      string  `json:"durata,omitempty"`
	TimeZone      string  `json:"fuso_orario,omitempty"`
	DepartureDate string  `json:"data_partenza,omitempty"`
	DepartureTime string  `json:"ora_partenza,omitempty"`
	ReturnDate    string  `json:"data_ritorno,omitempty"`
	ReturnTime    string  `json:"ora_ritorno,omitempty"`
	Carrier       string  `json:"compagnia,omitempty"`
	Stops         int     `json:"scali"`
	BaseFare      float64 `json:"costo_base"`
	BaggageFee    float64 `json:"costo_bagagli"`
	Total         float64 `json:"totale"`
}

// InsuranceCosts holds the cover amounts and the premium actually paid.
// Only the premium enters the pre-departure grand total.
type InsuranceCosts struct {
	MedicalCap        float64 `json:"massimale_medico"`
	CancellationCover float64 `json:"ritardo_volo"`
	BaggageCover      float64 `json:"bagaglio_smarrito"`
	LiabilityCover    float64 `json:"annullamento"`
	Premium           float64 `json:"costo"`
}

// IncidentalCosts holds the eSIM and cash-exchange figures. Yen is derived
// (cash × rate). The subtotal counts the SIM cost only: cash, rate and
// commission are recorded but stay out of it.
type IncidentalCosts struct {
	SIMCost      float64 `json:"costo_sim"`
	SIMDataGB    int     `json:"gb_sim"`
	Cash         float64 `json:"contanti"`
	ExchangeRate float64 `json:"tasso_cambio"`
	Commission   float64 `json:"commissioni"`
	Yen          float64 `json:"yen"`
	Total        float64 `json:"totale"`
}

// Derive recomputes every derived total from its inputs:
//
//	flight total      = base fare + baggage fee
//	yen               = cash × exchange rate
//	incidentals total = SIM cost only
//	grand total       = flight total + insurance premium + incidentals total
//
// The yen amount is informational and is not summed into the grand total.
func (p *PreDepartureCosts) Derive() {
	p.Flight.Total = p.Flight.BaseFare + p.Flight.BaggageFee
	p.Incidentals.Yen = p.Incidentals.Cash * p.Incidentals.ExchangeRate
	p.Incidentals.Total = p.Incidentals.SIMCost
	p.GrandTotal = p.Flight.Total + p.Insurance.Premium + p.Incidentals.Total
}

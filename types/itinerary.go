package types

// ItineraryItem is one lodging/dining/shopping/activity/transport entry.
// The attribute set varies by category; this is the union of the fields the
// input forms collect. Every item carries a cost (defaults to 0); a name is
// required for every category except transport.
type ItineraryItem struct {
	Name               string  `json:"nome,omitempty"`
	Type               string  `json:"tipo,omitempty"`
	Address            string  `json:"indirizzo,omitempty"`
	BookingLink        string  `json:"link_booking,omitempty"`
	ConfirmationNumber string  `json:"numero_conferma,omitempty"`
	PinCode            string  `json:"codice_pin,omitempty"`
	CheckInDate        string  `json:"check_in_date,omitempty"`
	CheckInTime        string  `json:"orario_check_in,omitempty"`
	CheckOutDate       string  `json:"check_out_date,omitempty"`
	CheckOutTime       string  `json:"orario_check_out,omitempty"`
	Nights             int     `json:"notti,omitempty"`
	District           string  `json:"quartiere,omitempty"`
	Station            string  `json:"stazione,omitempty"`
	OpeningTime        string  `json:"orario_apertura,omitempty"`
	ClosingTime        string  `json:"orario_chiusura,omitempty"`
	Link               string  `json:"link,omitempty"`
	Reservation        bool    `json:"prenotazione,omitempty"`
	Departure          string  `json:"partenza,omitempty"`
	Arrival            string  `json:"arrivo,omitempty"`
	Duration           string  `json:"durata,omitempty"`
	Cost               float64 `json:"costo"`
	Notes              string  `json:"note,omitempty"`
}

// CostPerNight derives the per-night cost of a lodging item. Nights below 1
// count as 1 so the division never blows up on partially filled items.
func (it ItineraryItem) CostPerNight() float64 {
	nights := it.Nights
	if nights < 1 {
		nights = 1
	}
	return it.Cost / float64(nights)
}

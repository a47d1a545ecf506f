package domain

// NotAvailable marks an optional provider field that was absent from the
// payload. Rendered as-is; never omitted.
const NotAvailable = "Not Available"

type Price struct {
	Currency string
	Amount   float64
}

// FlightOption is one flattened segment extracted from a flight offer.
type FlightOption struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    string
	ArrivalTime      string
	Stops            int

	AirlineCode  string
	AirlineName  string
	AirlineLogo  string
	FlightNumber string
	CabinClass   string
	Duration     string // "Hh Mm"

	DepartureTerminal string
	ArrivalTerminal   string

	Price *Price // nil when neither the offer nor the aggregation priced it
}

// HotelOption is one extracted hotel result. String fields hold NotAvailable
// when the payload lacked them.
type HotelOption struct {
	Name        string
	GrossPrice  string
	Checkin     string
	Checkout    string
	ReviewScore string
}

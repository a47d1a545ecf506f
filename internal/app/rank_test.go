package app

import (
	"fmt"
	"testing"

	"trip_concierge/internal/domain"
)

func flightPayload(offers ...map[string]any) map[string]any {
	list := make([]any, len(offers))
	for i, o := range offers {
		list[i] = o
	}
	return map[string]any{
		"status": true,
		"data":   map[string]any{"flightOffers": list},
	}
}

func segment(from, to string, legs ...map[string]any) map[string]any {
	l := make([]any, len(legs))
	for i, leg := range legs {
		l[i] = leg
	}
	return map[string]any{
		"departureAirport": map[string]any{"code": from},
		"arrivalAirport":   map[string]any{"code": to},
		"departureTime":    "2025-07-10T09:15:00",
		"arrivalTime":      "2025-07-10T21:40:00",
		"legs":             l,
	}
}

func leg(carrier string) map[string]any {
	return map[string]any{
		"carriersData": []any{map[string]any{"code": carrier, "name": carrier + " Air"}},
		"flightInfo":   map[string]any{"flightNumber": 441.0},
		"cabinClass":   "ECONOMY",
		"totalTime":    float64(9*3600 + 25*60),
	}
}

func TestExtractFlights_Basic(t *testing.T) {
	offer := map[string]any{
		"price":    map[string]any{"currencyCode": "USD", "units": 523.0, "nanos": 500000000.0},
		"segments": []any{segment("JFK", "CDG", leg("AF"), leg("AF"))},
	}
	got := ExtractFlights(flightPayload(offer))
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	f := got[0]
	if f.DepartureAirport != "JFK" || f.ArrivalAirport != "CDG" {
		t.Fatalf("route: %+v", f)
	}
	if f.Stops != 1 {
		t.Fatalf("stops = %d, want 1 (two legs)", f.Stops)
	}
	if f.AirlineCode != "AF" || f.AirlineName != "AF Air" || f.FlightNumber != "441" {
		t.Fatalf("airline: %+v", f)
	}
	if f.Duration != "9h 25m" {
		t.Fatalf("duration = %q", f.Duration)
	}
	if f.Price == nil || f.Price.Amount != 523.5 || f.Price.Currency != "USD" {
		t.Fatalf("price: %+v", f.Price)
	}
}

func TestExtractFlights_AggregationPriceFallback(t *testing.T) {
	offer := map[string]any{"segments": []any{segment("JFK", "CDG", leg("BA"))}}
	raw := flightPayload(offer)
	raw["data"].(map[string]any)["aggregation"] = map[string]any{
		"airlines": []any{
			map[string]any{"iataCode": "AF", "minPrice": map[string]any{"units": 100.0}},
			map[string]any{"iataCode": "BA", "minPrice": map[string]any{"units": 450.0, "currencyCode": "USD"}},
		},
	}
	got := ExtractFlights(raw)
	if len(got) != 1 || got[0].Price == nil {
		t.Fatalf("got %+v", got)
	}
	if got[0].Price.Amount != 450 {
		t.Fatalf("fallback price = %v, want BA minPrice", got[0].Price.Amount)
	}
}

func TestExtractFlights_OfferCap(t *testing.T) {
	var offers []map[string]any
	for i := 0; i < 9; i++ {
		offers = append(offers, map[string]any{
			"segments": []any{segment(fmt.Sprintf("A%d", i), "CDG")},
		})
	}
	got := ExtractFlights(flightPayload(offers...))
	if len(got) != maxFlightOffers {
		t.Fatalf("got %d records, want %d", len(got), maxFlightOffers)
	}
}

func TestExtractFlights_MissingOffersKey(t *testing.T) {
	raw := map[string]any{"status": true, "data": map[string]any{}}
	if got := ExtractFlights(raw); len(got) != 0 {
		t.Fatalf("want empty, got %+v", got)
	}
	if got := ExtractFlights(nil); len(got) != 0 {
		t.Fatalf("nil payload: got %+v", got)
	}
}

func TestExtractFlights_NoLegs(t *testing.T) {
	offer := map[string]any{"segments": []any{segment("JFK", "CDG")}}
	got := ExtractFlights(flightPayload(offer))
	if len(got) != 1 {
		t.Fatalf("got %d", len(got))
	}
	if got[0].Stops != 0 {
		t.Fatalf("absent legs must clamp stops to 0, got %d", got[0].Stops)
	}
}

func hotelPayload(n int) map[string]any {
	var results []any
	for i := 0; i < n; i++ {
		results = append(results, map[string]any{
			"name": fmt.Sprintf("Hotel %d", i),
			"priceBreakdown": map[string]any{
				"grossPrice": map[string]any{"value": 120.0 + float64(i)},
			},
			"reviewScore": 8.4,
		})
	}
	return map[string]any{"results": results}
}

func TestExtractHotels_CapAndFields(t *testing.T) {
	got := ExtractHotels(hotelPayload(12))
	if len(got) != maxHotelResults {
		t.Fatalf("got %d, want %d", len(got), maxHotelResults)
	}
	if got[0].Name != "Hotel 0" || got[0].GrossPrice != "120.00" || got[0].ReviewScore != "8.4" {
		t.Fatalf("first: %+v", got[0])
	}
}

func TestExtractHotels_MissingFieldsMarked(t *testing.T) {
	raw := map[string]any{"results": []any{map[string]any{"name": "Bare Inn"}}}
	got := ExtractHotels(raw)
	if len(got) != 1 {
		t.Fatalf("got %d", len(got))
	}
	h := got[0]
	if h.GrossPrice != domain.NotAvailable || h.Checkin != domain.NotAvailable ||
		h.Checkout != domain.NotAvailable || h.ReviewScore != domain.NotAvailable {
		t.Fatalf("missing fields must carry the marker: %+v", h)
	}
}

package app

import (
	"fmt"
	"strconv"
	"strings"

	"trip_concierge/internal/domain"
)

// Extraction caps. Providers return dozens of offers; only the head is ever
// shown, so the rest is not worth flattening.
const (
	maxFlightOffers = 5
	maxHotelResults = 8
)

/********** tiny helpers: safe nested lookup on raw payloads **********/

// lookupAny walks a dot path through nested maps, nil on any miss.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return s
	}
	return ""
}

func lookupList(m map[string]any, path string) []any {
	if l, ok := lookupAny(m, path).([]any); ok {
		return l
	}
	return nil
}

func lookupMap(m map[string]any, path string) map[string]any {
	if mm, ok := lookupAny(m, path).(map[string]any); ok {
		return mm
	}
	return nil
}

// lookupFloat reads a number at path; JSON numbers decode as float64.
func lookupFloat(m map[string]any, path string) (float64, bool) {
	switch v := lookupAny(m, path).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// decodePrice reads the provider's units+nanos money shape.
func decodePrice(m map[string]any) *domain.Price {
	if m == nil {
		return nil
	}
	units, ok := lookupFloat(m, "units")
	if !ok {
		return nil
	}
	nanos, _ := lookupFloat(m, "nanos")
	cur := lookupStr(m, "currencyCode")
	if cur == "" {
		cur = domain.CurrencyCode
	}
	return &domain.Price{Currency: cur, Amount: units + nanos/1_000_000_000}
}

/********** flight extraction **********/

// ExtractFlights flattens a raw flight payload into one record per segment,
// capped at the first maxFlightOffers offers. Every nested key is optional;
// absent data degrades to zero values, never to an error. A payload without
// data.flightOffers yields an empty slice.
func ExtractFlights(raw map[string]any) []domain.FlightOption {
	var out []domain.FlightOption
	if raw == nil {
		return out
	}
	offers := lookupList(raw, "data.flightOffers")
	if len(offers) > maxFlightOffers {
		offers = offers[:maxFlightOffers]
	}
	for _, o := range offers {
		offer, ok := o.(map[string]any)
		if !ok {
			continue
		}
		offerPrice := decodePrice(lookupMap(offer, "price"))

		for _, s := range lookupList(offer, "segments") {
			seg, ok := s.(map[string]any)
			if !ok {
				continue
			}
			fo := domain.FlightOption{
				DepartureAirport: lookupStr(seg, "departureAirport.code"),
				ArrivalAirport:   lookupStr(seg, "arrivalAirport.code"),
				DepartureTime:    lookupStr(seg, "departureTime"),
				ArrivalTime:      lookupStr(seg, "arrivalTime"),
			}
			legs := lookupList(seg, "legs")
			if n := len(legs) - 1; n > 0 {
				fo.Stops = n
			}
			if len(legs) > 0 {
				if leg, ok := legs[0].(map[string]any); ok {
					if carriers := lookupList(leg, "carriersData"); len(carriers) > 0 {
						if c, ok := carriers[0].(map[string]any); ok {
							fo.AirlineCode = lookupStr(c, "code")
							fo.AirlineName = lookupStr(c, "name")
							fo.AirlineLogo = lookupStr(c, "logo")
						}
					}
					if fn, ok := lookupFloat(leg, "flightInfo.flightNumber"); ok {
						fo.FlightNumber = strconv.Itoa(int(fn))
					} else if fn := lookupStr(leg, "flightInfo.flightNumber"); fn != "" {
						fo.FlightNumber = fn
					}
					fo.CabinClass = lookupStr(leg, "cabinClass")
					if secs, ok := lookupFloat(leg, "totalTime"); ok {
						fo.Duration = formatDuration(int(secs))
					}
					fo.DepartureTerminal = lookupStr(leg, "departureTerminal")
					fo.ArrivalTerminal = lookupStr(leg, "arrivalTerminal")
				}
			}

			switch {
			case offerPrice != nil:
				fo.Price = offerPrice
			case fo.AirlineCode != "":
				// Fall back to the airline's minimum in the aggregation
				// block, first match wins.
				fo.Price = aggregationPrice(raw, fo.AirlineCode)
			}
			out = append(out, fo)
		}
	}
	return out
}

func aggregationPrice(raw map[string]any, airlineCode string) *domain.Price {
	for _, a := range lookupList(raw, "data.aggregation.airlines") {
		airline, ok := a.(map[string]any)
		if !ok || lookupStr(airline, "iataCode") != airlineCode {
			continue
		}
		if p := decodePrice(lookupMap(airline, "minPrice")); p != nil {
			return p
		}
	}
	return nil
}

// formatDuration renders total seconds as "Hh Mm".
func formatDuration(totalSeconds int) string {
	totalMinutes := totalSeconds / 60
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

/********** hotel extraction **********/

// ExtractHotels reads the flat hotel result list, capped at the first
// maxHotelResults entries. Missing optional fields carry the NotAvailable
// marker rather than being omitted.
func ExtractHotels(raw map[string]any) []domain.HotelOption {
	var out []domain.HotelOption
	if raw == nil {
		return out
	}
	results := lookupList(raw, "results")
	if len(results) > maxHotelResults {
		results = results[:maxHotelResults]
	}
	for _, r := range results {
		h, ok := r.(map[string]any)
		if !ok {
			continue
		}
		ho := domain.HotelOption{
			Name:        domain.NotAvailable,
			GrossPrice:  domain.NotAvailable,
			Checkin:     domain.NotAvailable,
			Checkout:    domain.NotAvailable,
			ReviewScore: domain.NotAvailable,
		}
		if name := lookupStr(h, "name"); name != "" {
			ho.Name = name
		}
		if v, ok := lookupFloat(h, "priceBreakdown.grossPrice.value"); ok {
			ho.GrossPrice = strconv.FormatFloat(v, 'f', 2, 64)
		}
		if s := lookupStr(h, "checkin"); s != "" {
			ho.Checkin = s
		}
		if s := lookupStr(h, "checkout"); s != "" {
			ho.Checkout = s
		}
		if v, ok := lookupFloat(h, "reviewScore"); ok {
			ho.ReviewScore = strconv.FormatFloat(v, 'f', 1, 64)
		}
		out = append(out, ho)
	}
	return out
}

package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"trip_concierge/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Models are inconsistent about key casing; every profile field accepts the
// snake_case and camelCase spellings seen in practice.
var fieldAliases = map[string][]string{
	"origin":        {"origin", "from", "origin_airport"},
	"destination":   {"destination", "to", "destination_airport"},
	"depart_date":   {"depart_date", "departDate", "departure_date"},
	"return_date":   {"return_date", "returnDate"},
	"adults":        {"adults", "adults_number", "adult_count"},
	"children":      {"children", "children_number", "child_count"},
	"children_ages": {"children_ages", "childrenAges"},
	"cabin_class":   {"cabin_class", "cabinClass", "class"},
	"sort":          {"sort", "sort_preference", "sortPreference"},
	"room_number":   {"room_number", "roomNumber", "rooms"},
	"latitude":      {"destination_latitude", "latitude", "lat"},
	"longitude":     {"destination_longitude", "longitude", "lon", "lng"},
}

// dateFormats are tried in order; first successful parse wins. DD/MM is
// preferred over MM/DD for ambiguous slash dates.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

/********** coercers **********/

// CoerceAirportCode uppercases, trims, and appends the provider's ".AIRPORT"
// suffix when absent. Empty input passes through as nil.
func CoerceAirportCode(raw string) *string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, ".AIRPORT") {
		s += ".AIRPORT"
	}
	return &s
}

// CoerceDate canonicalizes any recognized date format to YYYY-MM-DD.
// Unrecognized input yields nil, never an error.
func CoerceDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			out := t.Format("2006-01-02")
			return &out
		}
	}
	return nil
}

// CoerceChildrenAges canonicalizes a list or CSV string of ages to CSV.
// Non-numeric and negative entries are dropped.
func CoerceChildrenAges(v any) string {
	var parts []string
	switch ages := v.(type) {
	case string:
		parts = strings.Split(ages, ",")
	case []any:
		for _, a := range ages {
			if n, ok := asInt(a); ok {
				parts = append(parts, strconv.Itoa(n))
			}
		}
	default:
		if n, ok := asInt(v); ok {
			parts = []string{strconv.Itoa(n)}
		}
	}
	var out []string
	for _, p := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && n >= 0 {
			out = append(out, strconv.Itoa(n))
		}
	}
	return strings.Join(out, ",")
}

// CoerceEnum returns raw when it is a member of allowed, else def.
// Membership is case-sensitive; providers reject lowercase variants.
func CoerceEnum(raw string, allowed []string, def string) string {
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	return def
}

/********** flexible value helpers **********/

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt accepts float64 (JSON numbers), int, and numeric strings.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// asFloat accepts float64, int, and strings with either decimal separator.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", "."))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// fieldValue resolves the first alias present in fields for a canonical key.
func fieldValue(fields map[string]any, key string) (any, bool) {
	for _, alias := range fieldAliases[key] {
		if v, ok := fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

/********** merge **********/

// MergeFields normalizes each recognized field of a model-extracted mapping
// and writes it into the profile, last write wins. Unparseable values leave
// the stored field untouched so a later turn can re-ask.
func MergeFields(p *domain.TravelProfile, fields map[string]any) {
	if v, ok := fieldValue(fields, "origin"); ok {
		if s, ok := asString(v); ok {
			if code := CoerceAirportCode(s); code != nil {
				p.Origin = code
			}
		}
	}
	if v, ok := fieldValue(fields, "destination"); ok {
		if s, ok := asString(v); ok {
			if code := CoerceAirportCode(s); code != nil {
				p.Destination = code
			}
		}
	}
	if v, ok := fieldValue(fields, "depart_date"); ok {
		if s, ok := asString(v); ok {
			if d := CoerceDate(s); d != nil {
				p.DepartDate = d
			}
		}
	}
	if v, ok := fieldValue(fields, "return_date"); ok {
		if s, ok := asString(v); ok {
			if d := CoerceDate(s); d != nil {
				p.ReturnDate = d
			}
		}
	}
	if v, ok := fieldValue(fields, "adults"); ok {
		if n, ok := asInt(v); ok && n > 0 {
			p.Adults = n
		}
	}
	if v, ok := fieldValue(fields, "children"); ok {
		if n, ok := asInt(v); ok && n >= 0 {
			p.Children = n
		}
	}
	if v, ok := fieldValue(fields, "children_ages"); ok {
		if csv := CoerceChildrenAges(v); csv != "" {
			p.ChildrenAges = csv
		}
	}
	if v, ok := fieldValue(fields, "cabin_class"); ok {
		if s, ok := asString(v); ok {
			p.CabinClass = CoerceEnum(strings.ToUpper(strings.TrimSpace(s)), domain.CabinClasses, domain.CabinEconomy)
		}
	}
	if v, ok := fieldValue(fields, "sort"); ok {
		if s, ok := asString(v); ok {
			p.SortPref = CoerceEnum(strings.ToUpper(strings.TrimSpace(s)), domain.SortPreferences, domain.SortBest)
		}
	}
	if v, ok := fieldValue(fields, "room_number"); ok {
		if n, ok := asInt(v); ok && n > 0 {
			p.RoomNumber = n
		}
	}
	if v, ok := fieldValue(fields, "latitude"); ok {
		if f, ok := asFloat(v); ok {
			p.DestinationLat = &f
		}
	}
	if v, ok := fieldValue(fields, "longitude"); ok {
		if f, ok := asFloat(v); ok {
			p.DestinationLon = &f
		}
	}

	// Round trips must not end before they start; drop a violating return
	// date so the conversation re-asks.
	if p.DepartDate != nil && p.ReturnDate != nil && *p.ReturnDate < *p.DepartDate {
		log.Debug().Str("depart", *p.DepartDate).Str("return", *p.ReturnDate).
			Msg("return date precedes departure, dropped")
		p.ReturnDate = nil
	}
}

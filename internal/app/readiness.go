package app

import "trip_concierge/internal/domain"

// IsReady reports whether the profile carries the required field set:
// origin, destination, and both travel dates. Passenger counts, cabin and
// sort carry defaults and never block a search.
func IsReady(p *domain.TravelProfile) bool {
	return p.Origin != nil && p.Destination != nil &&
		p.DepartDate != nil && p.ReturnDate != nil
}

// BuildFlightParams maps the profile 1:1 onto the flight provider's shape.
// Only call once IsReady holds.
func BuildFlightParams(p *domain.TravelProfile) domain.FlightSearchParams {
	return domain.FlightSearchParams{
		FromID:       *p.Origin,
		ToID:         *p.Destination,
		DepartDate:   *p.DepartDate,
		ReturnDate:   *p.ReturnDate,
		PageNo:       1,
		Adults:       p.Adults,
		Children:     p.Children,
		Sort:         p.SortPref,
		CabinClass:   p.CabinClass,
		CurrencyCode: domain.CurrencyCode,
	}
}

// BuildHotelParams maps travel dates onto checkin/checkout and attaches the
// provider's fixed constants. Returns false when destination coordinates are
// still unresolved; the hotel search must then be skipped.
//
// ChildrenNumber is forced to at least 1 and ChildrenAges to "0": the hotel
// provider rejects a zero children count. This is a compatibility workaround,
// not a statement about the party actually travelling.
func BuildHotelParams(p *domain.TravelProfile) (domain.HotelSearchParams, bool) {
	if p.DestinationLat == nil || p.DestinationLon == nil {
		return domain.HotelSearchParams{}, false
	}
	children := p.Children
	if children < 1 {
		children = 1
	}
	return domain.HotelSearchParams{
		Latitude:       *p.DestinationLat,
		Longitude:      *p.DestinationLon,
		CheckinDate:    *p.DepartDate,
		CheckoutDate:   *p.ReturnDate,
		RoomNumber:     p.RoomNumber,
		AdultsNumber:   p.Adults,
		ChildrenNumber: children,
		ChildrenAges:   "0",

		CategoriesFilterIDs: domain.HotelCategoryFilter,
		PageNumber:          0,
		Units:               domain.HotelUnits,
		Locale:              domain.HotelLocale,
		IncludeAdjacency:    true,
		OrderBy:             domain.HotelOrderBy,
		FilterByCurrency:    domain.CurrencyCode,
	}, true
}

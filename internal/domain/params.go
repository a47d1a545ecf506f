package domain

// Fixed provider constants. The parameter builders attach these; callers
// never supply them.
const (
	CurrencyCode        = "USD"
	HotelCategoryFilter = "class::2,class::4,free_cancellation::1"
	HotelUnits          = "metric"
	HotelLocale         = "en-gb"
	HotelOrderBy        = "popularity"
)

// FlightSearchParams is the exact parameter shape of the flight provider.
type FlightSearchParams struct {
	FromID       string
	ToID         string
	DepartDate   string
	ReturnDate   string
	PageNo       int
	Adults       int
	Children     int
	Sort         string
	CabinClass   string
	CurrencyCode string
}

// HotelSearchParams is the exact parameter shape of the hotel provider,
// fixed constants included.
type HotelSearchParams struct {
	Latitude       float64
	Longitude      float64
	CheckinDate    string
	CheckoutDate   string
	RoomNumber     int
	AdultsNumber   int
	ChildrenNumber int
	ChildrenAges   string

	CategoriesFilterIDs string
	PageNumber          int
	Units               string
	Locale              string
	IncludeAdjacency    bool
	OrderBy             string
	FilterByCurrency    string
}

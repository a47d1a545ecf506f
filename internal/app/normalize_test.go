package app

import (
	"testing"

	"trip_concierge/internal/domain"
)

func TestCoerceDate_AllFormatsCanonical(t *testing.T) {
	cases := []string{
		"2025-07-10",
		"10/07/2025",
		"July 10, 2025",
		"Jul 10, 2025",
	}
	for _, in := range cases {
		got := CoerceDate(in)
		if got == nil || *got != "2025-07-10" {
			t.Fatalf("CoerceDate(%q) = %v, want 2025-07-10", in, got)
		}
	}
}

func TestCoerceDate_MMDDFallback(t *testing.T) {
	// day > 12 rules out DD/MM, so the MM/DD pattern must catch it
	got := CoerceDate("07/22/2025")
	if got == nil || *got != "2025-07-22" {
		t.Fatalf("got %v, want 2025-07-22", got)
	}
}

func TestCoerceDate_Unrecognized(t *testing.T) {
	for _, in := range []string{"next tuesday", "2025/07/10", "10-07-2025", ""} {
		if got := CoerceDate(in); got != nil {
			t.Fatalf("CoerceDate(%q) = %q, want nil", in, *got)
		}
	}
}

func TestCoerceAirportCode(t *testing.T) {
	cases := map[string]string{
		"jfk":         "JFK.AIRPORT",
		" CDG ":       "CDG.AIRPORT",
		"LAX.AIRPORT": "LAX.AIRPORT", // idempotent
		"lhr.airport": "LHR.AIRPORT",
	}
	for in, want := range cases {
		got := CoerceAirportCode(in)
		if got == nil || *got != want {
			t.Fatalf("CoerceAirportCode(%q) = %v, want %q", in, got, want)
		}
	}
	if got := CoerceAirportCode("  "); got != nil {
		t.Fatalf("empty input should pass through as nil, got %q", *got)
	}
}

func TestCoerceChildrenAges(t *testing.T) {
	if got := CoerceChildrenAges("5, 8 ,11"); got != "5,8,11" {
		t.Fatalf("CSV input: got %q", got)
	}
	if got := CoerceChildrenAges([]any{5.0, 8.0}); got != "5,8" {
		t.Fatalf("list input: got %q", got)
	}
	if got := CoerceChildrenAges("five,-2,7"); got != "7" {
		t.Fatalf("junk entries should be dropped: got %q", got)
	}
}

func TestCoerceEnum_CaseSensitive(t *testing.T) {
	if got := CoerceEnum("BUSINESS", domain.CabinClasses, domain.CabinEconomy); got != "BUSINESS" {
		t.Fatalf("got %q", got)
	}
	if got := CoerceEnum("business", domain.CabinClasses, domain.CabinEconomy); got != domain.CabinEconomy {
		t.Fatalf("lowercase member must fall back to default, got %q", got)
	}
}

func TestMergeFields_LastWriteWins(t *testing.T) {
	p := domain.NewTravelProfile()
	MergeFields(p, map[string]any{"adults": 1.0})
	MergeFields(p, map[string]any{"adults": 2.0})
	if p.Adults != 2 {
		t.Fatalf("adults = %d, want 2", p.Adults)
	}
	MergeFields(p, map[string]any{})
	if p.Adults != 2 {
		t.Fatalf("empty merge must not clear fields, adults = %d", p.Adults)
	}
}

func TestMergeFields_NormalizesValues(t *testing.T) {
	p := domain.NewTravelProfile()
	MergeFields(p, map[string]any{
		"origin":      "jfk",
		"destination": "CDG",
		"depart_date": "July 10, 2025",
		"return_date": "2025-07-17",
		"cabin_class": "business",
		"latitude":    48.8566,
		"longitude":   2.3522,
	})
	if p.Origin == nil || *p.Origin != "JFK.AIRPORT" {
		t.Fatalf("origin = %v", p.Origin)
	}
	if p.Destination == nil || *p.Destination != "CDG.AIRPORT" {
		t.Fatalf("destination = %v", p.Destination)
	}
	if p.DepartDate == nil || *p.DepartDate != "2025-07-10" {
		t.Fatalf("depart = %v", p.DepartDate)
	}
	if p.CabinClass != domain.CabinBusiness {
		t.Fatalf("cabin = %q", p.CabinClass)
	}
	if p.DestinationLat == nil || *p.DestinationLat != 48.8566 {
		t.Fatalf("lat = %v", p.DestinationLat)
	}
}

func TestMergeFields_UnparseableLeavesStored(t *testing.T) {
	p := domain.NewTravelProfile()
	MergeFields(p, map[string]any{"depart_date": "2025-07-10"})
	MergeFields(p, map[string]any{"depart_date": "sometime soon"})
	if p.DepartDate == nil || *p.DepartDate != "2025-07-10" {
		t.Fatalf("unparseable merge must not clobber, got %v", p.DepartDate)
	}
}

func TestMergeFields_ReturnBeforeDepartDropped(t *testing.T) {
	p := domain.NewTravelProfile()
	MergeFields(p, map[string]any{
		"depart_date": "2025-07-17",
		"return_date": "2025-07-10",
	})
	if p.ReturnDate != nil {
		t.Fatalf("return before depart must be dropped, got %q", *p.ReturnDate)
	}
	if p.DepartDate == nil || *p.DepartDate != "2025-07-17" {
		t.Fatalf("depart = %v", p.DepartDate)
	}
}

func TestMergeFields_AliasKeys(t *testing.T) {
	p := domain.NewTravelProfile()
	MergeFields(p, map[string]any{
		"departDate":            "2025-07-10",
		"destination_latitude":  40.77,
		"destination_longitude": -73.97,
	})
	if p.DepartDate == nil || *p.DepartDate != "2025-07-10" {
		t.Fatalf("camelCase alias not applied: %v", p.DepartDate)
	}
	if p.DestinationLon == nil || *p.DestinationLon != -73.97 {
		t.Fatalf("longitude alias not applied: %v", p.DestinationLon)
	}
}

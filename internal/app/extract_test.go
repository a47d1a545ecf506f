package app

import "testing"

func TestExtractTravelData_StripsBlock(t *testing.T) {
	text := "Great, Paris it is!\n<travel_data>{\"destination\": \"CDG\", \"adults\": 2}</travel_data>\nWhen would you like to fly?"
	cleaned, fields := ExtractTravelData(text)
	if fields == nil {
		t.Fatal("expected fields")
	}
	if fields["destination"] != "CDG" {
		t.Fatalf("destination = %v", fields["destination"])
	}
	if adults, ok := fields["adults"].(float64); !ok || adults != 2 {
		t.Fatalf("adults = %v", fields["adults"])
	}
	if cleaned != "Great, Paris it is!\n\nWhen would you like to fly?" {
		t.Fatalf("cleaned = %q", cleaned)
	}
}

func TestExtractTravelData_NoBlock(t *testing.T) {
	cleaned, fields := ExtractTravelData("just chatting")
	if fields != nil || cleaned != "just chatting" {
		t.Fatalf("got %q, %v", cleaned, fields)
	}
}

func TestExtractTravelData_MalformedJSON(t *testing.T) {
	text := "reply <travel_data>{not json}</travel_data> tail"
	cleaned, fields := ExtractTravelData(text)
	if fields != nil {
		t.Fatalf("malformed block must yield nil fields, got %v", fields)
	}
	if cleaned != text {
		t.Fatalf("malformed block must leave text untouched, got %q", cleaned)
	}
}

func TestExtractTravelData_MissingEndMarker(t *testing.T) {
	text := "reply <travel_data>{\"adults\": 2}"
	cleaned, fields := ExtractTravelData(text)
	if fields != nil || cleaned != text {
		t.Fatalf("got %q, %v", cleaned, fields)
	}
}

func TestExtractTravelData_ObserverOutcomes(t *testing.T) {
	var seen []string
	SetExtractionObserver(func(result string) { seen = append(seen, result) })
	defer SetExtractionObserver(func(string) {})

	ExtractTravelData("plain chatter")
	ExtractTravelData("a <travel_data>{\"adults\": 1}</travel_data> b")
	ExtractTravelData("a <travel_data>{oops}</travel_data> b")
	ExtractTravelData("a <travel_data>{\"adults\": 1}")

	want := []string{"ok", "bad_json", "unterminated"}
	if len(seen) != len(want) {
		t.Fatalf("observed %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("observed %v, want %v", seen, want)
		}
	}
}

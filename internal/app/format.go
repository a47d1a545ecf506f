package app

import (
	"fmt"
	"strings"

	"trip_concierge/internal/domain"
)

// maxDisplayed caps each section of the summary regardless of how many
// options were extracted.
const maxDisplayed = 3

// Fixed user-facing notices.
const (
	MsgSearching = "🔍 Searching for the best travel options..."
	MsgTrouble   = "I'm having trouble processing your request. Please try again later."
	MsgNoMatches = "I couldn't find any matching flights or hotels. " +
		"Try different dates or locations."
	MsgMissingCoords = "I couldn't pin down your destination's coordinates yet, " +
		"so I skipped the hotel search. Tell me more about where you're staying."
	MsgHotelWarning = "⚠️ The hotel search didn't go through, but here are your flights."
)

// FormatSearchError renders the apology for a failed flight search, carrying
// the raw error text.
func FormatSearchError(err error) string {
	return fmt.Sprintf("I apologize, but I encountered an error searching for travel options: %v", err)
}

// FormatSummary renders the fixed two-section summary: up to maxDisplayed
// flights then up to maxDisplayed hotels. When both sections are empty a
// single no-matches message is rendered instead.
func FormatSummary(flights []domain.FlightOption, hotels []domain.HotelOption) string {
	if len(flights) == 0 && len(hotels) == 0 {
		return MsgNoMatches
	}

	var b strings.Builder
	b.WriteString("Here are the best travel options I found:\n\n")

	if len(flights) > 0 {
		b.WriteString("🛫 **Best Flight Options:**\n")
		for i, f := range flights {
			if i == maxDisplayed {
				break
			}
			writeFlight(&b, i+1, f)
		}
	}

	if len(hotels) > 0 {
		b.WriteString("\n🏨 **Best Hotel Options:**\n")
		for i, h := range hotels {
			if i == maxDisplayed {
				break
			}
			writeHotel(&b, i+1, h)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeFlight(b *strings.Builder, n int, f domain.FlightOption) {
	airline := f.AirlineName
	if airline == "" {
		airline = "Airline"
	}
	fmt.Fprintf(b, "%d. %s Flight %s\n", n, airline, f.FlightNumber)
	fmt.Fprintf(b, "   • %s → %s\n", f.DepartureAirport, f.ArrivalAirport)
	fmt.Fprintf(b, "   • Departure: %s\n", f.DepartureTime)
	if f.Duration != "" {
		fmt.Fprintf(b, "   • Duration: %s\n", f.Duration)
	}
	fmt.Fprintf(b, "   • Stops: %d\n", f.Stops)
	if f.Price != nil {
		fmt.Fprintf(b, "   • Price: $%.2f %s\n", f.Price.Amount, f.Price.Currency)
	}
	b.WriteString("\n")
}

func writeHotel(b *strings.Builder, n int, h domain.HotelOption) {
	fmt.Fprintf(b, "%d. %s\n", n, h.Name)
	fmt.Fprintf(b, "   • Price: $%s per night\n", h.GrossPrice)
	if h.ReviewScore != domain.NotAvailable {
		fmt.Fprintf(b, "   • Rating: %s/10\n", h.ReviewScore)
	}
	b.WriteString("\n")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"trip_concierge/internal/domain"
)

const systemPrompt = `You are a helpful flight and hotel booking assistant. Follow these steps:
1. Gather all necessary information through conversation:
   - Origin and destination locations
   - Travel dates (departure and return)
   - Number of adults and children
   - Cabin class preference
   - Any specific preferences for hotels
2. Estimate the latitude and longitude of the destination city once it is known.
3. Ask for missing information politely and keep context across turns.

Whenever the user provides trip details, append a machine-readable block to
your reply in exactly this form:
<travel_data>{"origin": "JFK", "destination": "CDG", "depart_date": "2025-07-10", "return_date": "2025-07-17", "adults": 2, "children": 0, "cabin_class": "ECONOMY", "destination_latitude": 48.8566, "destination_longitude": 2.3522}</travel_data>
Include only the keys the user actually provided or that you can estimate.`

// Travel keywords that open a session for a user who doesn't have an active
// one. Messages without them from disengaged users are left alone.
var travelKeywords = []string{
	"flight", "flights", "fly", "flying", "airline", "airport",
	"travel", "hotel", "booking",
}

// ErrNotTravelRelated marks an utterance from a disengaged user that never
// mentioned travel; the transport drops it without a reply.
var ErrNotTravelRelated = errors.New("message not travel related")

// Engine drives one conversation turn end to end: prompt assembly, model
// call, field extraction and merge, and, once the profile is ready, the two
// sequential provider searches.
type Engine struct {
	model    domain.ChatModel
	flights  domain.FlightSearcher
	hotels   domain.HotelSearcher
	sessions domain.SessionStore
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewEngine(m domain.ChatModel, f domain.FlightSearcher, h domain.HotelSearcher,
	s domain.SessionStore, c domain.Cache, cacheTTL time.Duration) *Engine {
	return &Engine{model: m, flights: f, hotels: h, sessions: s, cache: c, cacheTTL: cacheTTL}
}

// HandleMessage processes one inbound utterance and returns the reply text.
// A model failure is returned as an error; the transport maps it to the
// fixed trouble-processing message. Each turn runs to completion; there is
// no retry and no cancellation beyond ctx.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	if sess, ok := e.sessions.Get(userID); !ok || !sess.Active {
		if !mentionsTravel(text) {
			return "", ErrNotTravelRelated
		}
	}

	sess := e.sessions.GetOrCreate(userID)
	sess.Active = true
	sess.LastSeen = time.Now()

	turnID := uuid.NewString()
	log.Info().Str("turn", turnID).Str("user", userID).Msg("processing utterance")

	msgs := e.buildMessages(sess, text)
	assistantText, err := e.model.Complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("model completion: %w", err)
	}

	cleaned, fields := ExtractTravelData(assistantText)
	if fields != nil {
		MergeFields(sess.Profile, fields)
		log.Debug().Str("turn", turnID).Int("fields", len(fields)).Msg("profile updated")
	}

	sess.AppendTurns(
		domain.Turn{Role: "user", Content: text},
		domain.Turn{Role: "assistant", Content: cleaned},
	)

	if IsReady(sess.Profile) {
		return e.runSearches(ctx, userID, sess.Profile), nil
	}
	return cleaned, nil
}

// buildMessages assembles the model input: system instruction, the optional
// known-fields summary, the trailing history window, and the new utterance.
func (e *Engine) buildMessages(sess *domain.Session, text string) []domain.ChatMessage {
	msgs := []domain.ChatMessage{{Role: "system", Content: systemPrompt}}
	if summary := knownFieldsSummary(sess.Profile); summary != "" {
		msgs = append(msgs, domain.ChatMessage{Role: "system", Content: summary})
	}
	for _, t := range sess.History {
		msgs = append(msgs, domain.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return append(msgs, domain.ChatMessage{Role: "user", Content: text})
}

// knownFieldsSummary renders the non-null profile fields, or "" when nothing
// is known yet.
func knownFieldsSummary(p *domain.TravelProfile) string {
	var parts []string
	add := func(k string, v *string) {
		if v != nil {
			parts = append(parts, k+"="+*v)
		}
	}
	add("origin", p.Origin)
	add("destination", p.Destination)
	add("depart_date", p.DepartDate)
	add("return_date", p.ReturnDate)
	if p.DestinationLat != nil && p.DestinationLon != nil {
		parts = append(parts, fmt.Sprintf("destination_coords=%.4f,%.4f", *p.DestinationLat, *p.DestinationLon))
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts,
		fmt.Sprintf("adults=%d", p.Adults),
		fmt.Sprintf("children=%d", p.Children),
		"cabin_class="+p.CabinClass,
	)
	return "Known trip details so far: " + strings.Join(parts, ", ")
}

// runSearches performs the flight search, then the hotel search, strictly in
// that order. Flight failure aborts the turn's search with an apology; hotel
// failure only downgrades the reply to flight results plus a warning.
func (e *Engine) runSearches(ctx context.Context, userID string, p *domain.TravelProfile) string {
	// A repeat ready turn within the cache TTL renders the stored results
	// instead of hitting the providers again.
	var cachedFlights []domain.FlightOption
	if hit, err := e.cache.Get(ctx, flightCacheKey(userID), &cachedFlights); err == nil && hit {
		var cachedHotels []domain.HotelOption
		_, _ = e.cache.Get(ctx, hotelCacheKey(userID), &cachedHotels)
		log.Info().Str("user", userID).Msg("serving cached search results")
		return FormatSummary(cachedFlights, cachedHotels)
	}

	fp := BuildFlightParams(p)
	rawFlights, err := e.searchFlightsShared(ctx, fp)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("flight search failed")
		return FormatSearchError(err)
	}
	flights := ExtractFlights(rawFlights)
	_ = e.cache.Set(ctx, flightCacheKey(userID), flights, int(e.cacheTTL.Seconds()))

	hp, ok := BuildHotelParams(p)
	if !ok {
		log.Info().Str("user", userID).Msg("hotel search skipped, coordinates unresolved")
		return joinSections(MsgSearching, FormatSummary(flights, nil), MsgMissingCoords)
	}

	rawHotels, err := e.searchHotelsShared(ctx, hp)
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("hotel search failed")
		return joinSections(MsgSearching, FormatSummary(flights, nil), MsgHotelWarning)
	}
	hotels := ExtractHotels(rawHotels)
	_ = e.cache.Set(ctx, hotelCacheKey(userID), hotels, int(e.cacheTTL.Seconds()))

	return joinSections(MsgSearching, FormatSummary(flights, hotels))
}

// Identical concurrent queries collapse onto one provider call.

func (e *Engine) searchFlightsShared(ctx context.Context, p domain.FlightSearchParams) (map[string]any, error) {
	key := strings.Join([]string{"f", p.FromID, p.ToID, p.DepartDate, p.ReturnDate,
		fmt.Sprint(p.Adults), fmt.Sprint(p.Children), p.Sort, p.CabinClass}, "|")
	v, err, _ := e.sf.Do(key, func() (any, error) {
		return e.flights.SearchFlights(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func (e *Engine) searchHotelsShared(ctx context.Context, p domain.HotelSearchParams) (map[string]any, error) {
	key := strings.Join([]string{"h", fmt.Sprint(p.Latitude), fmt.Sprint(p.Longitude),
		p.CheckinDate, p.CheckoutDate, fmt.Sprint(p.AdultsNumber), fmt.Sprint(p.RoomNumber)}, "|")
	v, err, _ := e.sf.Do(key, func() (any, error) {
		return e.hotels.SearchHotels(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// Reset wipes the user's session and discards any cached search results.
// Safe to call for users that never spoke; resetting twice is a no-op.
func (e *Engine) Reset(ctx context.Context, userID string) {
	e.sessions.Reset(userID)
	_ = e.cache.Del(ctx, flightCacheKey(userID))
	_ = e.cache.Del(ctx, hotelCacheKey(userID))
	log.Info().Str("user", userID).Msg("session reset")
}

func flightCacheKey(userID string) string { return "flights:" + userID }
func hotelCacheKey(userID string) string  { return "hotels:" + userID }

func joinSections(sections ...string) string {
	return strings.Join(sections, "\n\n")
}

func mentionsTravel(text string) bool {
	low := strings.ToLower(text)
	for _, kw := range travelKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// HelpText is the static usage message for the help command.
const HelpText = `**Travel Assistant Help**

I can help you find the best flights and hotels based on your preferences.

1. Simply ask me in natural language, for example:
   - "Find me flights from NYC to LAX next week"
   - "What are the cheapest flights from Chicago to London in December?"

2. I'll ask follow-up questions if I need more details about:
   - Departure and return dates
   - Number of passengers
   - Class preference (economy, business, first)
   - Whether you want the cheapest or fastest options

3. Useful commands:
   - reset - start a new trip search
   - help - show this message

Just tell me where you want to go, and I'll do my best to find great options for you!`

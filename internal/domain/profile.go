package domain

import "time"

// Cabin classes accepted by the flight provider.
const (
	CabinEconomy  = "ECONOMY"
	CabinBusiness = "BUSINESS"
	CabinFirst    = "FIRST"
)

// Sort preferences accepted by the flight provider.
const (
	SortBest     = "BEST"
	SortPrice    = "PRICE"
	SortDuration = "DURATION"
)

var (
	CabinClasses    = []string{CabinEconomy, CabinBusiness, CabinFirst}
	SortPreferences = []string{SortBest, SortPrice, SortDuration}
)

// TravelProfile is the accumulated, mutable record of one user's in-progress
// trip search. Pointer fields are nil until the conversation resolves them;
// value fields carry provider defaults from the start.
type TravelProfile struct {
	Origin      *string // canonical "XXX.AIRPORT"
	Destination *string
	DepartDate  *string // ISO YYYY-MM-DD
	ReturnDate  *string

	Adults       int
	Children     int
	ChildrenAges string // CSV of non-negative ages, best-effort length == Children

	CabinClass string
	SortPref   string
	RoomNumber int

	// Estimated by the model from the destination city; hotel search is
	// skipped while either is nil.
	DestinationLat *float64
	DestinationLon *float64
}

// NewTravelProfile returns a profile with all provider defaults applied and
// every conversational field unresolved.
func NewTravelProfile() *TravelProfile {
	return &TravelProfile{
		Adults:     1,
		Children:   0,
		CabinClass: CabinEconomy,
		SortPref:   SortBest,
		RoomNumber: 1,
	}
}

// Turn is one role-tagged entry of a conversation.
type Turn struct {
	Role    string // "user" | "assistant"
	Content string
}

// MaxHistory is the number of exchanges kept per user; the stored window is
// capped at 2*MaxHistory turns, oldest dropped first.
const MaxHistory = 10

// Session owns everything the process keeps for one user: the profile, the
// conversation window, and advisory activity state for the idle sweeper.
type Session struct {
	UserID   string
	Profile  *TravelProfile
	History  []Turn
	Active   bool
	LastSeen time.Time
}

// AppendTurns appends turns and truncates the window to 2*MaxHistory.
func (s *Session) AppendTurns(turns ...Turn) {
	s.History = append(s.History, turns...)
	if max := 2 * MaxHistory; len(s.History) > max {
		s.History = s.History[len(s.History)-max:]
	}
}

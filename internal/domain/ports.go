package domain

import (
	"context"
	"time"
)

// ChatMessage is one message of a chat-completion request.
type ChatMessage struct {
	Role    string `json:"role"` // system|user|assistant
	Content string `json:"content"`
}

// ChatModel is the language-model capability. Complete returns the raw
// assistant text, which may embed a delimited travel-data block.
type ChatModel interface {
	Complete(ctx context.Context, msgs []ChatMessage) (string, error)
}

// FlightSearcher and HotelSearcher are the two provider capabilities. They
// return the raw decoded payload; extraction is the ranker's job.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, p FlightSearchParams) (map[string]any, error)
}

type HotelSearcher interface {
	SearchHotels(ctx context.Context, p HotelSearchParams) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SessionStore keys sessions by user id. Implementations guard the arena;
// a returned *Session is mutated only within that user's own turn.
type SessionStore interface {
	GetOrCreate(userID string) *Session
	Get(userID string) (*Session, bool)
	Reset(userID string) *Session
	Sweep(idleFor time.Duration) int
}

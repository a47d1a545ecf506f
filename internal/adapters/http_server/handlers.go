package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"trip_concierge/internal/app"
)

// Reply chunking bounds: anything over maxReplyLen is split into chunks of
// at most chunkLen characters, sent in order.
const (
	maxReplyLen = 2000
	chunkLen    = 1900
)

type Handlers struct{ E *app.Engine }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type chatResponse struct {
	Replies []string `json:"replies"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/chat", h.chat)
	s.mux.Post("/v1/reset", h.reset)
	s.mux.Get("/v1/help", h.help)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeReplies(w http.ResponseWriter, replies []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(chatResponse{Replies: replies}); err != nil {
		log.Error().Err(err).Msg("write chat response failed")
	}
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with user_id and text")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Text) == "" {
		writeProblem(w, http.StatusBadRequest, "Missing field", "user_id and text are required")
		return
	}

	reply, err := h.E.HandleMessage(r.Context(), req.UserID, req.Text)
	switch {
	case errors.Is(err, app.ErrNotTravelRelated):
		// disengaged user, non-travel message: nothing to say
		writeReplies(w, []string{})
	case err != nil:
		log.Error().Err(err).Str("user", req.UserID).Msg("turn failed")
		writeReplies(w, []string{app.MsgTrouble})
	default:
		writeReplies(w, chunkReply(reply))
	}
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with user_id")
		return
	}
	h.E.Reset(r.Context(), req.UserID)
	writeReplies(w, []string{"Your trip search has been reset. Ask me any travel question to start a new search."})
}

func (h *Handlers) help(w http.ResponseWriter, r *http.Request) {
	writeReplies(w, chunkReply(app.HelpText))
}

// chunkReply splits a long reply into ordered chunks under the transport's
// message-length limit. Cuts land on rune boundaries so multibyte characters
// never straddle two chunks.
func chunkReply(s string) []string {
	if len(s) <= maxReplyLen {
		return []string{s}
	}
	var out []string
	for len(s) > chunkLen {
		cut := chunkLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	return append(out, s)
}

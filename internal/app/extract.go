package app

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// Delimiters of the structured-data block the model is instructed to embed.
const (
	travelDataStart = "<travel_data>"
	travelDataEnd   = "</travel_data>"
)

// observeExtraction reports block outcomes (ok|bad_json|unterminated) to
// whatever sink the composition root wires in. No-op by default so the
// package stays free of adapter imports.
var observeExtraction = func(result string) {}

// SetExtractionObserver installs the extraction-outcome sink. Call once at
// startup, before traffic.
func SetExtractionObserver(fn func(result string)) {
	if fn != nil {
		observeExtraction = fn
	}
}

// ExtractTravelData scans assistant text for a delimited travel-data block.
// On success it returns the text with the block removed plus the decoded
// field mapping. A malformed block is best-effort enrichment that failed:
// it is counted and logged, the text is returned untouched, and the turn
// proceeds as plain conversation.
func ExtractTravelData(text string) (string, map[string]any) {
	start := strings.Index(text, travelDataStart)
	if start < 0 {
		return text, nil
	}
	rest := text[start+len(travelDataStart):]
	end := strings.Index(rest, travelDataEnd)
	if end < 0 {
		observeExtraction("unterminated")
		log.Warn().Msg("travel_data block missing end marker")
		return text, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(rest[:end]), &fields); err != nil {
		observeExtraction("bad_json")
		log.Warn().Err(err).Msg("travel_data block decode failed")
		return text, nil
	}

	cleaned := text[:start] + rest[end+len(travelDataEnd):]
	observeExtraction("ok")
	return strings.TrimSpace(cleaned), fields
}

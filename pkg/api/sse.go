package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yourusername/sbgengine/pkg/engine"
)

// SelfPlaySSE streams a self-play run as Server-Sent Events: one "turn"
// event per turn, then "result" and "done".
// GET /api/selfplay/stream?games=...&turns=...&seed=...&workers=...
func (h *Handlers) SelfPlaySSE(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	query := r.URL.Query()
	opts, rerr := selfPlayOptions(SelfPlayRequest{
		Games:   parseIntParam(query.Get("games"), 1),
		Turns:   parseIntParam(query.Get("turns"), 100),
		Seed:    int64(parseIntParam(query.Get("seed"), 0)),
		Workers: parseIntParam(query.Get("workers"), 0),
	})
	if rerr != nil {
		writeSSEError(w, rerr.msg)
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeSSEError(w, "server busy")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	// Observer calls are serialised, so writes never interleave.
	observer := func(rec engine.TurnRecord) error {
		writeSSEEvent(w, "turn", TurnToResponse(rec))
		flusher.Flush()
		return r.Context().Err()
	}

	result, err := h.engine.SelfPlay(r.Context(), opts, observer)
	if err != nil {
		writeSSEError(w, "self-play failed: "+err.Error())
		return
	}

	writeSSEEvent(w, "result", SelfPlayToResponse(result))
	flusher.Flush()

	// Send done event to signal completion
	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}
	return val
}

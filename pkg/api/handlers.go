package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yourusername/sbgengine/pkg/engine"
)

// Self-play limits for a single request.
const (
	MaxSelfPlayGames = 1000
	MaxSelfPlayTurns = 10000
)

// Handlers holds the HTTP handlers and engine reference.
type Handlers struct {
	engine  *engine.Engine
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(e *engine.Engine, version string) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(e *engine.Engine, version string, pool *WorkerPool) *Handlers {
	return &Handlers{
		engine:  e,
		version: version,
		pool:    pool,
	}
}

// requestError is a client-facing failure shared by the HTTP and WebSocket paths.
type requestError struct {
	status int
	msg    string
	code   string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(code, format string, args ...interface{}) *requestError {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...), code: code}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

func writeRequestError(w http.ResponseWriter, err *requestError) {
	writeError(w, err.status, err.msg, err.code)
}

// parseBoard decodes a position ID; empty means the starting position.
func parseBoard(posID string) (*engine.Board, *requestError) {
	if posID == "" {
		return engine.NewGame(), nil
	}
	board, err := engine.BoardFromPositionID(posID)
	if err != nil {
		return nil, badRequest("INVALID_POSITION", "invalid position ID: %v", err)
	}
	return board, nil
}

func parseSide(s string) (engine.Side, *requestError) {
	side, err := engine.ParseSide(s)
	if err != nil {
		return engine.NoSide, badRequest("INVALID_SIDE", "%v", err)
	}
	return side, nil
}

func parseDice(dice [2]int) (engine.Roll, *requestError) {
	roll := engine.Roll(dice)
	if !roll.Valid() {
		return roll, badRequest("INVALID_DICE", "dice must be 1-%d", engine.MaxDie)
	}
	return roll, nil
}

func (h *Handlers) legalPlays(req PlaysRequest) (*PlaysResponse, *requestError) {
	board, rerr := parseBoard(req.Position)
	if rerr != nil {
		return nil, rerr
	}
	side, rerr := parseSide(req.Side)
	if rerr != nil {
		return nil, rerr
	}
	roll, rerr := parseDice(req.Dice)
	if rerr != nil {
		return nil, rerr
	}

	plays := h.engine.LegalPlays(board, side, roll)
	n := len(plays)
	if req.Limit > 0 && req.Limit < n {
		n = req.Limit
	}

	resp := &PlaysResponse{
		Plays:    make([]PlayResponse, 0, n),
		NumLegal: len(plays),
		Forfeit:  len(plays) == 0,
		Side:     side.String(),
		Dice:     req.Dice,
		Position: board.PositionID(),
	}
	for _, p := range plays[:n] {
		after := *board
		res, err := after.ApplyPlay(side, p)
		if err != nil {
			return nil, &requestError{status: http.StatusInternalServerError, msg: err.Error(), code: "INTERNAL"}
		}
		resp.Plays = append(resp.Plays, PlayResponse{
			Play:     p.String(),
			Position: after.PositionID(),
			Hits:     res.Hits,
		})
	}
	return resp, nil
}

func (h *Handlers) applyPlay(req ApplyRequest) (*ApplyResponse, *requestError) {
	board, rerr := parseBoard(req.Position)
	if rerr != nil {
		return nil, rerr
	}
	side, rerr := parseSide(req.Side)
	if rerr != nil {
		return nil, rerr
	}
	play, err := engine.ParsePlay(req.Play)
	if err != nil {
		return nil, badRequest("INVALID_PLAY", "%v", err)
	}

	if req.Dice != [2]int{} {
		roll, rerr := parseDice(req.Dice)
		if rerr != nil {
			return nil, rerr
		}
		legal := false
		for _, p := range h.engine.LegalPlays(board, side, roll) {
			if p.Equivalent(play) {
				play = p
				legal = true
				break
			}
		}
		if !legal {
			return nil, badRequest("ILLEGAL_PLAY", "%s is not a legal play for %s with %s", play, side, roll)
		}
	}

	res, err := board.ApplyPlay(side, play)
	if err != nil {
		return nil, badRequest("ILLEGAL_PLAY", "%v", err)
	}
	return ApplyToResponse(board, play, res), nil
}

// selfPlayOptions validates a self-play request.
func selfPlayOptions(req SelfPlayRequest) (engine.SelfPlayOptions, *requestError) {
	opts := engine.DefaultSelfPlayOptions()
	if req.Games > 0 {
		opts.Games = req.Games
	}
	if req.Turns > 0 {
		opts.Turns = req.Turns
	}
	opts.Seed = req.Seed
	opts.Workers = req.Workers

	if opts.Games > MaxSelfPlayGames {
		return opts, badRequest("INVALID_SELFPLAY", "games must be at most %d", MaxSelfPlayGames)
	}
	if opts.Turns > MaxSelfPlayTurns {
		return opts, badRequest("INVALID_SELFPLAY", "turns must be at most %d", MaxSelfPlayTurns)
	}
	return opts, nil
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Ready:   h.engine != nil,
	}

	// Include pool stats if available
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	if h.engine != nil {
		lookups, hits, adds := h.engine.CacheStats()
		resp.Cache = &CacheStats{Lookups: lookups, Hits: hits, Adds: adds}
	}

	writeJSON(w, http.StatusOK, resp)
}

// NewGame handles GET /api/newgame
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	board := engine.NewGame()
	writeJSON(w, http.StatusOK, NewGameResponse{
		Position: board.PositionID(),
		Board:    board.String(),
	})
}

// Plays handles POST /api/plays
func (h *Handlers) Plays(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireFast(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseFast()
	}

	var req PlaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	resp, rerr := h.legalPlays(req)
	if rerr != nil {
		writeRequestError(w, rerr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Apply handles POST /api/apply
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireFast(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseFast()
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	resp, rerr := h.applyPlay(req)
	if rerr != nil {
		writeRequestError(w, rerr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelfPlay handles POST /api/selfplay
func (h *Handlers) SelfPlay(w http.ResponseWriter, r *http.Request) {
	// Self-play is slow, use the slow pool
	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	var req SelfPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	opts, rerr := selfPlayOptions(req)
	if rerr != nil {
		writeRequestError(w, rerr)
		return
	}

	result, err := h.engine.SelfPlay(r.Context(), opts, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "self-play failed: "+err.Error(), "SELFPLAY_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, SelfPlayToResponse(result))
}

// Package api provides the HTTP/JSON and WebSocket API for the engine.
package api

import "github.com/yourusername/sbgengine/pkg/engine"

// ============================================================================
// Request Types
// ============================================================================

// PlaysRequest is the request body for listing legal plays.
type PlaysRequest struct {
	Position string `json:"position"` // Position ID (empty = starting position)
	Side     string `json:"side"`     // "white" or "black"
	Dice     [2]int `json:"dice"`     // Dice roll [die1, die2], each 1-3
	Limit    int    `json:"limit,omitempty"`
}

// ApplyRequest is the request body for applying a play.
type ApplyRequest struct {
	Position string `json:"position"`       // Position ID (empty = starting position)
	Side     string `json:"side"`           // "white" or "black"
	Play     string `json:"play"`           // e.g. "8/5 2/1"
	Dice     [2]int `json:"dice,omitempty"` // When set, the play must be legal for this roll
}

// SelfPlayRequest is the request body for a self-play run.
type SelfPlayRequest struct {
	Games   int   `json:"games,omitempty"`
	Turns   int   `json:"turns,omitempty"`
	Seed    int64 `json:"seed,omitempty"`
	Workers int   `json:"workers,omitempty"`
}

// ============================================================================
// Response Types
// ============================================================================

// PlayResponse is a single legal play.
type PlayResponse struct {
	Play     string `json:"play"`     // Move notation
	Position string `json:"position"` // Position ID after the play
	Hits     int    `json:"hits"`
}

// PlaysResponse is the response for legal plays.
type PlaysResponse struct {
	Plays    []PlayResponse `json:"plays"`
	NumLegal int            `json:"num_legal"`
	Forfeit  bool           `json:"forfeit"` // No legal play; the turn passes
	Side     string         `json:"side"`
	Dice     [2]int         `json:"dice"`
	Position string         `json:"position"`
}

// ReentryResponse describes a knocked checker returning to the board.
type ReentryResponse struct {
	Side      string `json:"side"`
	Point     int    `json:"point"`
	Displaced bool   `json:"displaced"`
}

// ApplyResponse is the response for an applied play.
type ApplyResponse struct {
	Position  string            `json:"position"` // Position ID after the play
	Board     string            `json:"board"`    // Human-readable board
	Play      string            `json:"play"`
	Hits      int               `json:"hits"`
	Reentries []ReentryResponse `json:"reentries"`
}

// NewGameResponse is the response for the starting position.
type NewGameResponse struct {
	Position string `json:"position"`
	Board    string `json:"board"`
}

// SelfPlayResponse summarises a self-play run.
type SelfPlayResponse struct {
	Seed          int64    `json:"seed"`
	Games         int      `json:"games"`
	Turns         int      `json:"turns"`
	Forfeits      int      `json:"forfeits"`
	Hits          int      `json:"hits"`
	Reentries     int      `json:"reentries"`
	MaxPlays      int      `json:"max_plays"`
	MeanPlays     float64  `json:"mean_plays"`
	StdDevPlays   float64  `json:"stddev_plays"`
	FinalPosition []string `json:"final_positions"`
}

// TurnResponse is one self-play turn, streamed over SSE.
type TurnResponse struct {
	Game     int    `json:"game"`
	Turn     int    `json:"turn"`
	Side     string `json:"side"`
	Dice     [2]int `json:"dice"`
	Play     string `json:"play"` // Empty when forfeited
	NumLegal int    `json:"num_legal"`
	Hits     int    `json:"hits"`
	Position string `json:"position"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error   string `json:"error"`             // Error message
	Code    string `json:"code,omitempty"`    // Error code
	Details string `json:"details,omitempty"` // Additional details
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string      `json:"status"`          // "ok" or "error"
	Version string      `json:"version"`         // Engine version
	Ready   bool        `json:"ready"`           // Whether an engine is attached
	Pool    *PoolStats  `json:"pool,omitempty"`  // Worker pool statistics
	Cache   *CacheStats `json:"cache,omitempty"` // Play cache statistics
}

// CacheStats reports play cache usage.
type CacheStats struct {
	Lookups uint64 `json:"lookups"`
	Hits    uint64 `json:"hits"`
	Adds    uint64 `json:"adds"`
}

// ============================================================================
// Helper Functions
// ============================================================================

// ApplyToResponse converts an applied play to an API response.
func ApplyToResponse(board *engine.Board, play engine.Play, res engine.PlayResult) *ApplyResponse {
	reentries := make([]ReentryResponse, len(res.Reentries))
	for i, r := range res.Reentries {
		reentries[i] = ReentryResponse{
			Side:      r.Side.String(),
			Point:     r.Move.To,
			Displaced: r.Displaced,
		}
	}
	return &ApplyResponse{
		Position:  board.PositionID(),
		Board:     board.String(),
		Play:      play.String(),
		Hits:      res.Hits,
		Reentries: reentries,
	}
}

// SelfPlayToResponse converts a self-play result to an API response.
func SelfPlayToResponse(res *engine.SelfPlayResult) *SelfPlayResponse {
	return &SelfPlayResponse{
		Seed:          res.Seed,
		Games:         res.Games,
		Turns:         res.Turns,
		Forfeits:      res.Forfeits,
		Hits:          res.Hits,
		Reentries:     res.Reentries,
		MaxPlays:      res.MaxPlays,
		MeanPlays:     res.MeanPlays,
		StdDevPlays:   res.StdDevPlays,
		FinalPosition: res.FinalPosition,
	}
}

// TurnToResponse converts a self-play turn record to an API response.
func TurnToResponse(rec engine.TurnRecord) TurnResponse {
	return TurnResponse{
		Game:     rec.Game,
		Turn:     rec.Turn,
		Side:     rec.Side.String(),
		Dice:     [2]int(rec.Roll),
		Play:     rec.Play.String(),
		NumLegal: rec.NumPlays,
		Hits:     rec.Result.Hits,
		Position: rec.Position,
	}
}

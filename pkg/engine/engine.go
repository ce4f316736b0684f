package engine

import "fmt"

// Engine wraps the play composers with a shared cache. It is safe for
// concurrent use; boards passed to it are never retained.
type Engine struct {
	cache *PlayCache
}

// EngineOptions configures the engine
type EngineOptions struct {
	CacheSize    uint32 // Play cache size (0 = default)
	DisableCache bool
}

// NewEngine creates a new engine with the given options
func NewEngine(opts EngineOptions) (*Engine, error) {
	e := &Engine{}
	if opts.DisableCache {
		return e, nil
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > MaxCacheSize {
		return nil, fmt.Errorf("cache size %d exceeds %d", size, MaxCacheSize)
	}
	e.cache = NewPlayCache(size)
	return e, nil
}

// LegalPlays returns the legal plays for side and roll on board, using the
// cache when enabled. The returned plays are owned by the caller.
func (e *Engine) LegalPlays(board *Board, side Side, roll Roll) []Play {
	if e.cache == nil || !roll.Valid() {
		return board.LegalPlays(side, roll)
	}

	key := board.Key()
	ctx := MakePlayContext(side, roll)
	if plays, ok := e.cache.Lookup(key, ctx); ok {
		return plays
	}

	plays := board.LegalPlays(side, roll)
	if plays != nil {
		e.cache.Add(key, ctx, plays)
	}
	return plays
}

// CacheStats returns lookups, hits and adds of the play cache.
func (e *Engine) CacheStats() (lookups, hits, adds uint64) {
	if e.cache == nil {
		return 0, 0, 0
	}
	return e.cache.Stats()
}

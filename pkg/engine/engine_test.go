package engine

import (
	"context"
	"errors"
	"testing"
)

func TestPositionIDRoundTrip(t *testing.T) {
	board := NewGame()
	id := board.PositionID()
	if id != "IADQACYABA" {
		t.Errorf("starting position ID = %q, want IADQACYABA", id)
	}

	decoded, err := BoardFromPositionID(id)
	if err != nil {
		t.Fatalf("BoardFromPositionID(%q): %v", id, err)
	}
	if !EqualBoards(board, decoded) {
		t.Errorf("round trip mismatch: %s vs %s", board, decoded)
	}
	if got := decoded.Positions(White); len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 8 {
		t.Errorf("decoded White positions = %v, want [2 5 8]", got)
	}

	if _, err := BoardFromPositionID("short"); err == nil {
		t.Error("Expected an error for a malformed position ID")
	}
}

func TestBoardKeyDistinguishesSides(t *testing.T) {
	a := buildBoard(t, placement{0, White, 1})
	b := buildBoard(t, placement{0, Black, 1})
	if a.Key() == b.Key() {
		t.Error("boards with different owners share a key")
	}
}

func TestNewEngineOptions(t *testing.T) {
	if _, err := NewEngine(EngineOptions{CacheSize: MaxCacheSize + 1}); err == nil {
		t.Error("Expected an error for an oversized cache")
	}

	e, err := NewEngine(EngineOptions{DisableCache: true})
	if err != nil {
		t.Fatal(err)
	}
	board := NewGame()
	if got := e.LegalPlays(board, White, Roll{3, 1}); len(got) != 5 {
		t.Errorf("uncached engine returned %d plays, want 5", len(got))
	}
	if lookups, _, _ := e.CacheStats(); lookups != 0 {
		t.Errorf("disabled cache recorded %d lookups", lookups)
	}
}

func TestEngineCache(t *testing.T) {
	e, err := NewEngine(EngineOptions{CacheSize: 1024})
	if err != nil {
		t.Fatal(err)
	}
	board := NewGame()
	roll := Roll{2, 1}

	first := e.LegalPlays(board, Black, roll)
	second := e.LegalPlays(board, Black, roll)

	lookups, hits, adds := e.CacheStats()
	if lookups != 2 || hits != 1 || adds != 1 {
		t.Errorf("stats = %d lookups, %d hits, %d adds; want 2, 1, 1", lookups, hits, adds)
	}
	if len(first) != len(second) {
		t.Fatalf("cached result has %d plays, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("play %d: %s vs %s", i, first[i], second[i])
		}
	}

	// Mutating a returned play must not leak into the cache.
	second[0][0] = Move{From: 7, To: 7}
	third := e.LegalPlays(board, Black, roll)
	if third[0].String() != first[0].String() {
		t.Errorf("cache entry was mutated through a returned play: %s", third[0])
	}

	// Same position, other side: a different context.
	white := e.LegalPlays(board, White, roll)
	if len(white) == 0 {
		t.Fatal("Expected White plays")
	}
	if _, hits2, _ := e.CacheStats(); hits2 != 2 {
		t.Errorf("hits = %d after a lookup for a new context, want 2", hits2)
	}
}

func TestPlayCacheFlush(t *testing.T) {
	c := NewPlayCache(100)
	if c.size != 128 {
		t.Errorf("size = %d, want 128", c.size)
	}

	board := NewGame()
	key := board.Key()
	ctx := MakePlayContext(White, Roll{1, 1})
	c.Add(key, ctx, board.LegalPlays(White, Roll{1, 1}))

	if _, ok := c.Lookup(key, ctx); !ok {
		t.Fatal("Expected a cache hit")
	}
	if _, ok := c.Lookup(key, MakePlayContext(Black, Roll{1, 1})); ok {
		t.Error("Lookup hit with the wrong side")
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate = %v, want 50", rate)
	}

	c.Flush()
	if _, ok := c.Lookup(key, ctx); ok {
		t.Error("Expected a miss after Flush")
	}
}

func TestSelfPlay(t *testing.T) {
	e, err := NewEngine(EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	opts := SelfPlayOptions{Games: 4, Turns: 50, Seed: 7, Workers: 2}

	var observed int
	res, err := e.SelfPlay(context.Background(), opts, func(rec TurnRecord) error {
		observed++
		if rec.Play == nil && rec.NumPlays != 0 {
			t.Errorf("game %d turn %d: forfeited with %d plays available", rec.Game, rec.Turn, rec.NumPlays)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("SelfPlay: %v", err)
	}

	if res.Turns != 200 || observed != 200 {
		t.Errorf("turns = %d, observed = %d; want 200", res.Turns, observed)
	}
	if res.Games != 4 || len(res.FinalPosition) != 4 {
		t.Errorf("games = %d with %d final positions", res.Games, len(res.FinalPosition))
	}
	if res.MeanPlays <= 0 || res.MaxPlays < int(res.MeanPlays) {
		t.Errorf("implausible play statistics: mean %.2f, max %d", res.MeanPlays, res.MaxPlays)
	}
	if res.Reentries < res.Hits {
		t.Errorf("%d hits but only %d re-entries", res.Hits, res.Reentries)
	}

	for i, id := range res.FinalPosition {
		board, err := BoardFromPositionID(id)
		if err != nil {
			t.Errorf("game %d: %v", i, err)
			continue
		}
		if err := board.Validate(); err != nil {
			t.Errorf("game %d final position %s: %v", i, id, err)
		}
	}

	again, err := e.SelfPlay(context.Background(), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.FinalPosition {
		if res.FinalPosition[i] != again.FinalPosition[i] {
			t.Errorf("game %d is not reproducible from seed %d", i, opts.Seed)
		}
	}
}

func TestSelfPlayObserverError(t *testing.T) {
	e, err := NewEngine(EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}

	stop := errors.New("stop")
	_, err = e.SelfPlay(context.Background(), SelfPlayOptions{Games: 2, Turns: 10, Seed: 1}, func(rec TurnRecord) error {
		if rec.Turn == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("SelfPlay error = %v, want %v", err, stop)
	}
}

func TestSelfPlayCancelled(t *testing.T) {
	e, err := NewEngine(EngineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.SelfPlay(ctx, SelfPlayOptions{Games: 1, Turns: 10, Seed: 1}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("SelfPlay error = %v, want context.Canceled", err)
	}
}

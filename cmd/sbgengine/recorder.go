package main

import (
	"context"
	"fmt"

	"github.com/yourusername/sbgengine/internal/journal"
	"github.com/yourusername/sbgengine/pkg/engine"
)

// recorder writes self-play turns to the journal, one transaction per game.
// Its Observe method relies on the engine serialising observer calls.
type recorder struct {
	ctx     context.Context
	store   *journal.Store
	seed    int64
	gameIDs map[int]string
	pending map[int][]journal.Turn
}

func newRecorder(ctx context.Context, store *journal.Store, seed int64) *recorder {
	return &recorder{
		ctx:     ctx,
		store:   store,
		seed:    seed,
		gameIDs: make(map[int]string),
		pending: make(map[int][]journal.Turn),
	}
}

// Observe records one turn, creating the game on its first turn.
func (r *recorder) Observe(rec engine.TurnRecord) error {
	id, ok := r.gameIDs[rec.Game]
	if !ok {
		game, err := r.store.CreateGame(r.ctx, journal.Game{
			Seed:      r.seed,
			FirstSide: rec.Side.String(),
		})
		if err != nil {
			return fmt.Errorf("record game %d: %w", rec.Game, err)
		}
		id = game.ID
		r.gameIDs[rec.Game] = id
	}

	r.pending[rec.Game] = append(r.pending[rec.Game], journal.Turn{
		GameID:   id,
		Number:   rec.Turn,
		Side:     rec.Side.String(),
		Roll:     rec.Roll.String(),
		Play:     rec.Play.String(),
		Position: rec.Position,
		Hits:     rec.Result.Hits,
	})

	if rec.Last {
		turns := r.pending[rec.Game]
		delete(r.pending, rec.Game)
		if err := r.store.AppendTurns(r.ctx, turns); err != nil {
			return fmt.Errorf("record turns of game %d: %w", rec.Game, err)
		}
	}
	return nil
}

// GameIDs returns the journal IDs of the recorded games, by game index.
func (r *recorder) GameIDs() map[int]string {
	return r.gameIDs
}

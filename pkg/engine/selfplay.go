package engine

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// SelfPlayOptions controls random self-play
type SelfPlayOptions struct {
	Games   int   // Number of games to play (default 1)
	Turns   int   // Turns per game; the variant has no bear-off, so games are bounded by turns (default 100)
	Seed    int64 // RNG seed (0 = random)
	Workers int   // Number of parallel workers (0 = GOMAXPROCS, capped at Games)
}

// DefaultSelfPlayOptions returns sensible defaults
func DefaultSelfPlayOptions() SelfPlayOptions {
	return SelfPlayOptions{
		Games:   1,
		Turns:   100,
		Seed:    0,
		Workers: 0,
	}
}

// TurnRecord describes one turn of a self-play game.
type TurnRecord struct {
	Game int
	Turn int
	Side Side
	Roll Roll

	// NumPlays is the number of legal plays that were available.
	NumPlays int
	// Play is nil when the turn was forfeited.
	Play   Play
	Result PlayResult

	// Position is the position ID after the turn.
	Position string
	// Last is set on the final turn of the game.
	Last bool
}

// TurnObserver is called after every turn. Calls are serialised across
// workers. Returning an error stops the run.
type TurnObserver func(rec TurnRecord) error

// SelfPlayResult aggregates a self-play run.
type SelfPlayResult struct {
	Seed      int64
	Games     int
	Turns     int
	Forfeits  int
	Hits      int
	Reentries int

	// Legal plays per turn
	MaxPlays    int
	MeanPlays   float64
	StdDevPlays float64

	FinalPosition []string // Position ID at the end of each game
}

type selfPlayPartial struct {
	turns      int
	forfeits   int
	hits       int
	reentries  int
	maxPlays   int
	playCounts []float64
}

// SelfPlay plays random games: each turn rolls two dice, picks a legal play
// uniformly at random (forfeiting when there is none) and applies it.
// Every game owns its board; workers share only the engine's cache.
func (e *Engine) SelfPlay(ctx context.Context, opts SelfPlayOptions, observer TurnObserver) (*SelfPlayResult, error) {
	if opts.Games <= 0 {
		opts.Games = 1
	}
	if opts.Turns <= 0 {
		opts.Turns = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Games {
		opts.Workers = opts.Games
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}

	var observeMu sync.Mutex
	observe := func(rec TurnRecord) error {
		if observer == nil {
			return nil
		}
		observeMu.Lock()
		defer observeMu.Unlock()
		return observer(rec)
	}

	finals := make([]string, opts.Games)
	partials := make([]selfPlayPartial, opts.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		w := w
		workerSeed := opts.Seed + int64(w)*1000000
		g.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed))
			for game := w; game < opts.Games; game += opts.Workers {
				final, err := e.playGame(gctx, rng, game, opts.Turns, &partials[w], observe)
				if err != nil {
					return err
				}
				finals[game] = final
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &SelfPlayResult{
		Seed:          opts.Seed,
		Games:         opts.Games,
		FinalPosition: finals,
	}
	var counts []float64
	for _, p := range partials {
		res.Turns += p.turns
		res.Forfeits += p.forfeits
		res.Hits += p.hits
		res.Reentries += p.reentries
		if p.maxPlays > res.MaxPlays {
			res.MaxPlays = p.maxPlays
		}
		counts = append(counts, p.playCounts...)
	}
	if len(counts) > 0 {
		res.MeanPlays = stat.Mean(counts, nil)
	}
	if len(counts) > 1 {
		res.StdDevPlays = stat.StdDev(counts, nil)
	}
	return res, nil
}

func (e *Engine) playGame(ctx context.Context, rng *rand.Rand, game, turns int, acc *selfPlayPartial, observe TurnObserver) (string, error) {
	board := NewGame()
	side := Side(rng.Intn(NumSides))

	for turn := 0; turn < turns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		roll := Roll{rng.Intn(MaxDie) + 1, rng.Intn(MaxDie) + 1}
		plays := e.LegalPlays(board, side, roll)

		rec := TurnRecord{
			Game:     game,
			Turn:     turn,
			Side:     side,
			Roll:     roll,
			NumPlays: len(plays),
			Last:     turn == turns-1,
		}
		acc.turns++
		acc.playCounts = append(acc.playCounts, float64(len(plays)))
		if len(plays) > acc.maxPlays {
			acc.maxPlays = len(plays)
		}

		if len(plays) == 0 {
			acc.forfeits++
		} else {
			play := plays[rng.Intn(len(plays))]
			result, err := board.ApplyPlay(side, play)
			if err != nil {
				return "", fmt.Errorf("game %d turn %d: %w", game, turn, err)
			}
			rec.Play = play
			rec.Result = result
			acc.hits += result.Hits
			acc.reentries += len(result.Reentries)
		}

		rec.Position = board.PositionID()
		if err := observe(rec); err != nil {
			return "", fmt.Errorf("observe game %d turn %d: %w", game, turn, err)
		}
		side = side.Opponent()
	}

	return board.PositionID(), nil
}

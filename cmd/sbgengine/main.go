// sbgengine - legal-play engine for a simplified two-player backgammon variant
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yourusername/sbgengine/internal/journal"
	"github.com/yourusername/sbgengine/pkg/engine"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "plays":
		cmdPlays(args)
	case "apply":
		cmdApply(args)
	case "selfplay":
		cmdSelfPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sbgengine - Simplified Backgammon Engine

Usage: sbgengine <command> [options]

Commands:
  plays     List the legal plays for a roll
  apply     Apply a play and show the resulting position
  selfplay  Play random games and report statistics

Use "sbgengine <command> -h" for command-specific help.

Board:
  Points 0-8, three checkers per point at most, dice 1-3.
  White moves toward 0, Black toward 8.
  Positions are given as 10-character position IDs; omit for the
  starting position.`)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func parsePosition(posStr string) (*engine.Board, error) {
	if posStr == "" {
		return engine.NewGame(), nil
	}
	board, err := engine.BoardFromPositionID(strings.TrimSpace(posStr))
	if err != nil {
		return nil, fmt.Errorf("invalid position ID: %w", err)
	}
	return board, nil
}

func createEngine() (*engine.Engine, error) {
	e, err := engine.NewEngine(engine.EngineOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return e, nil
}

func cmdPlays(args []string) {
	fs := flag.NewFlagSet("plays", flag.ExitOnError)
	posFlag := fs.String("position", "", "Position ID (default: starting position)")
	posShort := fs.String("p", "", "Position ID (short form)")
	sideFlag := fs.String("side", "white", "Side to move (white or black)")
	diceFlag := fs.String("dice", "", "Dice roll (e.g., 3,1 or 3-1)")
	diceShort := fs.String("d", "", "Dice roll (short form)")
	limit := fs.Int("n", 0, "Number of plays to show (0 = all)")
	fs.Parse(args)

	pos := *posFlag
	if pos == "" {
		pos = *posShort
	}
	dice := *diceFlag
	if dice == "" {
		dice = *diceShort
	}
	if dice == "" {
		fmt.Fprintln(os.Stderr, "Error: dice required")
		fmt.Fprintln(os.Stderr, "Usage: sbgengine plays [-position <positionID>] -side <side> -dice <roll>")
		os.Exit(1)
	}

	board, err := parsePosition(pos)
	if err != nil {
		fatalf("%v", err)
	}
	side, err := engine.ParseSide(*sideFlag)
	if err != nil {
		fatalf("%v", err)
	}
	roll, err := engine.ParseRoll(dice)
	if err != nil {
		fatalf("%v", err)
	}

	e, err := createEngine()
	if err != nil {
		fatalf("%v", err)
	}

	plays := e.LegalPlays(board, side, roll)
	if len(plays) == 0 {
		fmt.Println("No legal plays (turn forfeited)")
		return
	}

	n := len(plays)
	if *limit > 0 && *limit < n {
		n = *limit
	}
	fmt.Printf("%d legal plays for %s, roll %s:\n", len(plays), side, roll)
	for i, p := range plays[:n] {
		after := *board
		if _, err := after.ApplyPlay(side, p); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("  %2d. %-20s  -> %s\n", i+1, p, after.PositionID())
	}
}

func cmdApply(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	posFlag := fs.String("position", "", "Position ID (default: starting position)")
	posShort := fs.String("p", "", "Position ID (short form)")
	sideFlag := fs.String("side", "white", "Side to move (white or black)")
	playFlag := fs.String("play", "", `Play to apply (e.g., "8/5 2/1")`)
	diceFlag := fs.String("dice", "", "Dice roll; when given the play must be legal for it")
	fs.Parse(args)

	pos := *posFlag
	if pos == "" {
		pos = *posShort
	}
	if *playFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: play required")
		fmt.Fprintln(os.Stderr, `Usage: sbgengine apply [-position <positionID>] -side <side> -play "8/5 2/1" [-dice <roll>]`)
		os.Exit(1)
	}

	board, err := parsePosition(pos)
	if err != nil {
		fatalf("%v", err)
	}
	side, err := engine.ParseSide(*sideFlag)
	if err != nil {
		fatalf("%v", err)
	}
	play, err := engine.ParsePlay(*playFlag)
	if err != nil {
		fatalf("%v", err)
	}

	if *diceFlag != "" {
		roll, err := engine.ParseRoll(*diceFlag)
		if err != nil {
			fatalf("%v", err)
		}
		e, err := createEngine()
		if err != nil {
			fatalf("%v", err)
		}
		legal := false
		for _, p := range e.LegalPlays(board, side, roll) {
			if p.Equivalent(play) {
				play, legal = p, true
				break
			}
		}
		if !legal {
			fatalf("%s is not a legal play for %s with %s", play, side, roll)
		}
	}

	res, err := board.ApplyPlay(side, play)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Position: %s\n", board.PositionID())
	fmt.Printf("Board:    %s\n", board)
	if res.Hits > 0 {
		fmt.Printf("Hits:     %d\n", res.Hits)
	}
	for _, r := range res.Reentries {
		suffix := ""
		if r.Displaced {
			suffix = " (displacing a blot)"
		}
		fmt.Printf("  %s re-enters %s%s\n", r.Side, r.Move, suffix)
	}
}

func cmdSelfPlay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", 1, "Number of games to play")
	turns := fs.Int("turns", 100, "Turns per game")
	workers := fs.Int("workers", 0, "Number of worker goroutines (0 = auto)")
	seed := fs.Int64("seed", 0, "Random seed (0 = random)")
	dbPath := fs.String("db", "", "Record games in this SQLite journal")
	verbose := fs.Bool("v", false, "Print every turn")
	fs.Parse(args)

	cfg := selfPlayConfig{
		opts: engine.SelfPlayOptions{
			Games:   *games,
			Turns:   *turns,
			Seed:    *seed,
			Workers: *workers,
		},
		dbPath:  *dbPath,
		verbose: *verbose,
	}
	if err := runSelfPlay(context.Background(), os.Stdout, cfg); err != nil {
		fatalf("%v", err)
	}
}

type selfPlayConfig struct {
	opts    engine.SelfPlayOptions
	dbPath  string
	verbose bool
}

// runSelfPlay plays the games, journaling them when dbPath is set, and
// prints a summary to w.
func runSelfPlay(ctx context.Context, w io.Writer, cfg selfPlayConfig) error {
	e, err := createEngine()
	if err != nil {
		return err
	}
	opts := cfg.opts

	var observers []engine.TurnObserver
	if cfg.verbose {
		observers = append(observers, func(rec engine.TurnRecord) error {
			play := rec.Play.String()
			if rec.Play == nil {
				play = "(forfeit)"
			}
			fmt.Fprintf(w, "game %d turn %3d %-5s %s  %-20s %s\n", rec.Game, rec.Turn, rec.Side, rec.Roll, play, rec.Position)
			return nil
		})
	}

	var rec *recorder
	if cfg.dbPath != "" {
		store, err := journal.Open(cfg.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if opts.Seed == 0 {
			opts.Seed = time.Now().UnixNano()
		}
		rec = newRecorder(ctx, store, opts.Seed)
		observers = append(observers, rec.Observe)
	}

	start := time.Now()
	result, err := e.SelfPlay(ctx, opts, chainObservers(observers))
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("self-play failed: %w", err)
	}

	fmt.Fprintf(w, "Self-play (%d games, %d turns, %.2fs, seed %d):\n", result.Games, result.Turns, elapsed.Seconds(), result.Seed)
	fmt.Fprintf(w, "  Forfeits:    %d\n", result.Forfeits)
	fmt.Fprintf(w, "  Hits:        %d\n", result.Hits)
	fmt.Fprintf(w, "  Re-entries:  %d\n", result.Reentries)
	fmt.Fprintf(w, "  Legal plays: mean %.2f, stddev %.2f, max %d\n", result.MeanPlays, result.StdDevPlays, result.MaxPlays)
	lookups, hits, _ := e.CacheStats()
	if lookups > 0 {
		fmt.Fprintf(w, "  Cache:       %d lookups, %.1f%% hits\n", lookups, float64(hits)/float64(lookups)*100)
	}
	if rec != nil {
		fmt.Fprintf(w, "  Journal:     %d games recorded in %s\n", len(rec.GameIDs()), cfg.dbPath)
	}
	return nil
}

func chainObservers(observers []engine.TurnObserver) engine.TurnObserver {
	if len(observers) == 0 {
		return nil
	}
	return func(rec engine.TurnRecord) error {
		for _, o := range observers {
			if err := o(rec); err != nil {
				return err
			}
		}
		return nil
	}
}

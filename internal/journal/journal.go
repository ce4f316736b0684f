// Package journal records self-play games and their turns in SQLite.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sbgengine/internal/journal/migrations"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a game does not exist.
var ErrNotFound = errors.New("not found")

// Game is one recorded game.
type Game struct {
	ID        string
	Seed      int64
	FirstSide string
	CreatedAt time.Time
}

// Turn is one recorded turn. Play is empty when the turn was forfeited.
type Turn struct {
	GameID   string
	Number   int
	Side     string
	Roll     string
	Play     string
	Position string // Position ID after the turn
	Hits     int
}

// Store is a SQLite-backed game journal.
type Store struct {
	db *sql.DB
}

// Open opens the journal at path, creating it and applying migrations as
// needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateGame records a new game. An empty ID is replaced with a fresh UUID
// and a zero CreatedAt with the current time; the stored game is returned.
func (s *Store) CreateGame(ctx context.Context, game Game) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	if strings.TrimSpace(game.ID) == "" {
		game.ID = uuid.NewString()
	}
	if game.FirstSide == "" {
		return Game{}, fmt.Errorf("first side is required")
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now()
	}
	game.CreatedAt = game.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO games (id, seed, first_side, created_at) VALUES (?, ?, ?, ?)
`, game.ID, game.Seed, game.FirstSide, game.CreatedAt.UnixMilli())
	if err != nil {
		return Game{}, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

// GetGame returns the game with id, or ErrNotFound.
func (s *Store) GetGame(ctx context.Context, id string) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}

	var game Game
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
SELECT id, seed, first_side, created_at FROM games WHERE id = ?
`, id).Scan(&game.ID, &game.Seed, &game.FirstSide, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, ErrNotFound
	}
	if err != nil {
		return Game{}, fmt.Errorf("get game %s: %w", id, err)
	}
	game.CreatedAt = time.UnixMilli(createdAt).UTC()
	return game, nil
}

// AppendTurn records a single turn.
func (s *Store) AppendTurn(ctx context.Context, turn Turn) error {
	return s.AppendTurns(ctx, []Turn{turn})
}

// AppendTurns records turns in one transaction.
func (s *Store) AppendTurns(ctx context.Context, turns []Turn) error {
	if len(turns) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO turns (game_id, number, side, roll, play, position, hits)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range turns {
		if t.GameID == "" {
			return fmt.Errorf("turn %d: game id is required", t.Number)
		}
		if _, err := stmt.ExecContext(ctx, t.GameID, t.Number, t.Side, t.Roll, t.Play, t.Position, t.Hits); err != nil {
			return fmt.Errorf("append turn %d of %s: %w", t.Number, t.GameID, err)
		}
	}
	return tx.Commit()
}

// ListTurns returns the turns of a game in order.
func (s *Store) ListTurns(ctx context.Context, gameID string) ([]Turn, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT game_id, number, side, roll, play, position, hits
FROM turns
WHERE game_id = ?
ORDER BY number
`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.GameID, &t.Number, &t.Side, &t.Roll, &t.Play, &t.Position, &t.Hits); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}
	return turns, nil
}

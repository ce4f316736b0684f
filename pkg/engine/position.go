// Package engine provides the public API for the simplified backgammon engine.
package engine

import (
	"fmt"
	"strings"
)

const (
	NumPoints       = 10 // Points 0-8 are on the board, 9 is the transit point
	Transit         = 9  // Holds checkers knocked during a play until they re-enter
	MaxStack        = 3  // Maximum checkers on an on-board point
	CheckersPerSide = 6
	MaxDie          = 3 // Dice show 1-3 in this variant
	MaxPlayMoves    = 4
	NumSides        = 2
)

// Side identifies one of the two players.
type Side int8

const (
	White Side = iota
	Black

	NoSide Side = -1
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Opponent returns the other side.
func Opponent(s Side) Side {
	return s.Opponent()
}

// Direction is the sign applied to die values when the side moves.
// Black moves toward higher point indices, White toward lower ones.
func (s Side) Direction() int {
	if s == White {
		return -1
	}
	return 1
}

// HomeRange returns the three points forming the side's home range.
func (s Side) HomeRange() [3]int {
	if s == White {
		return [3]int{6, 7, 8}
	}
	return [3]int{0, 1, 2}
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// ParseSide parses "white"/"w" or "black"/"b" (case insensitive).
func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "white", "w", "o":
		return White, nil
	case "black", "b", "x":
		return Black, nil
	}
	return NoSide, fmt.Errorf("unknown side %q", str)
}

// Point is a single point on the board.
// Owner is only meaningful when Count > 0.
type Point struct {
	Count uint8
	Owner Side
}

// OwnedBy reports whether the point holds at least one checker of side s.
func (p Point) OwnedBy(s Side) bool {
	return p.Count > 0 && p.Owner == s
}

// Board is the full game state. It is a value type: copying a Board
// produces an independent snapshot.
type Board struct {
	Points [NumPoints]Point

	// occupied caches the on-board points held by each side as a bitset.
	// Recomputed after every applied play, never a source of truth.
	occupied [NumSides]uint16
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	for i := range b.Points {
		b.Points[i].Owner = NoSide
	}
	return b
}

// NewGame returns the fixed initial layout: six checkers per side on three
// points each, mirrored.
func NewGame() *Board {
	b := NewBoard()
	layout := []struct {
		point int
		side  Side
		n     int
	}{
		{0, Black, 1},
		{3, Black, 2},
		{6, Black, 3},
		{2, White, 3},
		{5, White, 2},
		{8, White, 1},
	}
	for _, l := range layout {
		if err := b.Place(l.point, l.side, l.n); err != nil {
			panic(fmt.Sprintf("initial layout: %v", err))
		}
	}
	return b
}

// Place stacks n checkers of side on point. It is meant for building
// positions (fixtures, decoded position IDs) and goes through the same
// checker mutators as play execution.
func (b *Board) Place(point int, side Side, n int) error {
	if side != White && side != Black {
		return fmt.Errorf("place on %d: invalid side %v", point, side)
	}
	for i := 0; i < n; i++ {
		if err := b.addChecker(point, side); err != nil {
			return err
		}
	}
	b.refreshPositions()
	return nil
}

// refreshPositions recomputes the occupied-points cache from scratch.
func (b *Board) refreshPositions() {
	b.occupied = [NumSides]uint16{}
	for i := 0; i < Transit; i++ {
		p := b.Points[i]
		if p.Count > 0 && (p.Owner == White || p.Owner == Black) {
			b.occupied[p.Owner] |= 1 << uint(i)
		}
	}
}

// Positions returns the on-board points currently occupied by side, in
// ascending order.
func (b *Board) Positions(side Side) []int {
	if side != White && side != Black {
		return nil
	}
	var positions []int
	mask := b.occupied[side]
	for i := 0; i < Transit; i++ {
		if mask&(1<<uint(i)) != 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// CheckerCount returns the number of checkers side has on the board,
// including the transit point.
func (b *Board) CheckerCount(side Side) int {
	n := 0
	for _, p := range b.Points {
		if p.OwnedBy(side) {
			n += int(p.Count)
		}
	}
	return n
}

// Validate checks the resting-state invariants: every on-board point holds
// 0-3 checkers of a single side, the transit point is empty and each side
// has exactly CheckersPerSide checkers.
func (b *Board) Validate() error {
	for i, p := range b.Points {
		if p.Count == 0 {
			continue
		}
		if p.Owner != White && p.Owner != Black {
			return fmt.Errorf("point %d: %d checkers without an owner", i, p.Count)
		}
		if i == Transit {
			return fmt.Errorf("transit point holds %d %s checkers", p.Count, p.Owner)
		}
		if p.Count > MaxStack {
			return fmt.Errorf("point %d: %d checkers exceeds stack limit", i, p.Count)
		}
	}
	for _, side := range []Side{White, Black} {
		if n := b.CheckerCount(side); n != CheckersPerSide {
			return fmt.Errorf("%s has %d checkers, want %d", side, n, CheckersPerSide)
		}
	}
	return nil
}

// EqualBoards returns true if two boards hold the same checkers.
func EqualBoards(b1, b2 *Board) bool {
	for i := 0; i < NumPoints; i++ {
		p1, p2 := b1.Points[i], b2.Points[i]
		if p1.Count != p2.Count {
			return false
		}
		if p1.Count > 0 && p1.Owner != p2.Owner {
			return false
		}
	}
	return true
}

// String renders the board as point:side+count pairs, e.g. "0:b1 2:w3".
func (b *Board) String() string {
	var parts []string
	for i, p := range b.Points {
		if p.Count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%c%d", i, p.Owner.String()[0], p.Count))
	}
	return strings.Join(parts, " ")
}

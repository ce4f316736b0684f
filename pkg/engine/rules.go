package engine

import (
	"errors"
	"fmt"
)

var (
	ErrPointFull  = errors.New("point is full")
	ErrPointEmpty = errors.New("point is empty")
	ErrPointOwned = errors.New("point is held by the other side")
)

// InvariantError reports a checker mutation that would corrupt the board.
// It always signals a defect in whatever produced the move, never a game
// condition to recover from.
type InvariantError struct {
	Op    string // "add" or "remove"
	Point int
	Side  Side
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s %s checker at %d: %v", e.Op, e.Side, e.Point, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsValid reports whether side may land a checker on target: the point is
// on the board and either holds fewer than two checkers (empty, a blot of
// either side) or fewer than three of side's own.
func (b *Board) IsValid(side Side, target int) bool {
	if target < 0 || target >= Transit {
		return false
	}
	p := b.Points[target]
	return p.Count < 2 || (p.Count < MaxStack && p.Owner == side)
}

// isHit reports whether landing on target knocks an opposing blot.
func (b *Board) isHit(side Side, target int) bool {
	p := b.Points[target]
	return p.Count == 1 && p.Owner == side.Opponent()
}

func capacity(point int) uint8 {
	if point == Transit {
		return CheckersPerSide
	}
	return MaxStack
}

// addChecker stacks one checker of side on point.
func (b *Board) addChecker(point int, side Side) error {
	if point < 0 || point >= NumPoints {
		return &InvariantError{Op: "add", Point: point, Side: side, Err: errors.New("point out of range")}
	}
	p := &b.Points[point]
	if p.Count > 0 && p.Owner != side {
		return &InvariantError{Op: "add", Point: point, Side: side, Err: ErrPointOwned}
	}
	if p.Count >= capacity(point) {
		return &InvariantError{Op: "add", Point: point, Side: side, Err: ErrPointFull}
	}
	p.Count++
	p.Owner = side
	return nil
}

// removeChecker lifts one checker of side off point.
func (b *Board) removeChecker(point int, side Side) error {
	if point < 0 || point >= NumPoints {
		return &InvariantError{Op: "remove", Point: point, Side: side, Err: errors.New("point out of range")}
	}
	p := &b.Points[point]
	if p.Count == 0 {
		return &InvariantError{Op: "remove", Point: point, Side: side, Err: ErrPointEmpty}
	}
	if p.Owner != side {
		return &InvariantError{Op: "remove", Point: point, Side: side, Err: ErrPointOwned}
	}
	p.Count--
	if p.Count == 0 {
		p.Owner = NoSide
	}
	return nil
}

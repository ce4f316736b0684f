package engine

import (
	"errors"
	"fmt"
)

// MaxReentryDepth bounds chained displacements during re-entry. With six
// checkers per side a chain cannot legitimately get this long.
const MaxReentryDepth = 2 * CheckersPerSide

var (
	// ErrNoReentrySpot is returned when a knocked checker has no legal
	// point to re-enter on.
	ErrNoReentrySpot = errors.New("no available re-entry spot")

	// ErrReentryLoop is returned when chained displacements exceed
	// MaxReentryDepth.
	ErrReentryLoop = errors.New("re-entry chain does not terminate")
)

// Reentry records one knocked checker returning to the board.
type Reentry struct {
	Side      Side
	Move      Move // Always from Transit
	Displaced bool // The spot held an opposing blot that was knocked in turn
}

// reentryOrder returns the points scanned, in order, when side re-enters.
// The scan starts at the far end of the side's home range and sweeps toward
// the opponent's home.
func reentryOrder(side Side) [Transit]int {
	var order [Transit]int
	for i := range order {
		if side == White {
			order[i] = Transit - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

// FindAvailableSpot returns the first point in side's re-entry order that
// side may occupy. The second result is false when the board is saturated.
func (b *Board) FindAvailableSpot(side Side) (int, bool) {
	for _, spot := range reentryOrder(side) {
		if b.IsValid(side, spot) {
			return spot, true
		}
	}
	return 0, false
}

// moveKnockedChecker places one checker of side, already lifted off the
// transit point, on its available spot. A blot found there is displaced:
// side's checker takes the point, then the displaced checker re-enters
// through the same procedure.
func (b *Board) moveKnockedChecker(side Side, depth int, res *PlayResult) error {
	if depth > MaxReentryDepth {
		return fmt.Errorf("%w: depth %d", ErrReentryLoop, depth)
	}

	spot, ok := b.FindAvailableSpot(side)
	if !ok {
		return fmt.Errorf("%w for %s", ErrNoReentrySpot, side)
	}

	displaced := b.isHit(side, spot)
	if displaced {
		if err := b.removeChecker(spot, side.Opponent()); err != nil {
			return err
		}
	}
	if err := b.addChecker(spot, side); err != nil {
		return err
	}
	res.Reentries = append(res.Reentries, Reentry{
		Side:      side,
		Move:      Move{From: Transit, To: spot},
		Displaced: displaced,
	})

	if displaced {
		return b.moveKnockedChecker(side.Opponent(), depth+1, res)
	}
	return nil
}

package engine

import "fmt"

// PlayResult describes the side effects of an applied play.
type PlayResult struct {
	Hits      int       // Opposing blots knocked by the play's own moves
	Reentries []Reentry // Re-entries in the order they happened, chained ones included
}

// ApplyPlay applies play for side. Blots hit along the way go to the
// transit point and re-enter once all moves are made.
//
// The play runs against a snapshot; b is only updated when every move and
// re-entry succeeds. An error is either an *InvariantError (the play was not
// legal for this board) or a re-entry failure.
func (b *Board) ApplyPlay(side Side, play Play) (PlayResult, error) {
	var res PlayResult
	if len(play) == 0 {
		return res, nil
	}
	if side != White && side != Black {
		return res, fmt.Errorf("apply play: invalid side %v", side)
	}

	next := *b
	if err := next.executePlay(side, play, &res); err != nil {
		return PlayResult{}, fmt.Errorf("apply %s for %s: %w", play, side, err)
	}
	next.refreshPositions()
	*b = next
	return res, nil
}

func (b *Board) executePlay(side Side, play Play, res *PlayResult) error {
	opp := side.Opponent()
	knocked := 0

	for _, m := range play {
		if m.To < 0 || m.To >= Transit {
			return fmt.Errorf("%w: target of %s", ErrInvalidMove, m)
		}
		if b.isHit(side, m.To) {
			if err := b.removeChecker(m.To, opp); err != nil {
				return err
			}
			if err := b.addChecker(Transit, opp); err != nil {
				return err
			}
			knocked++
		}
		if err := b.removeChecker(m.From, side); err != nil {
			return err
		}
		if err := b.addChecker(m.To, side); err != nil {
			return err
		}
	}
	res.Hits += knocked

	for i := 0; i < knocked; i++ {
		if err := b.removeChecker(Transit, opp); err != nil {
			return err
		}
		if err := b.moveKnockedChecker(opp, 0, res); err != nil {
			return err
		}
	}
	return nil
}

// step applies a single move without resolving re-entries, for use while
// composing plays. It reports false if the move is not legal on b.
func (b Board) step(side Side, m Move) (Board, bool) {
	if m.From < 0 || m.From >= Transit {
		return b, false
	}
	if !b.Points[m.From].OwnedBy(side) || !b.IsValid(side, m.To) {
		return b, false
	}
	if b.isHit(side, m.To) {
		if b.removeChecker(m.To, side.Opponent()) != nil || b.addChecker(Transit, side.Opponent()) != nil {
			return b, false
		}
	}
	if b.removeChecker(m.From, side) != nil || b.addChecker(m.To, side) != nil {
		return b, false
	}
	b.refreshPositions()
	return b, true
}

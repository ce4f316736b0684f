package engine

import "sort"

// playSet collects plays, dropping any whose canonical key was already seen.
// The first order added for a key is kept, so stored plays stay applicable
// in sequence.
type playSet struct {
	seen  map[playKey]struct{}
	plays []Play
}

func newPlaySet() *playSet {
	return &playSet{seen: make(map[playKey]struct{})}
}

func (s *playSet) add(p Play) bool {
	k := p.key()
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.plays = append(s.plays, p)
	return true
}

func (s *playSet) addAll(plays []Play) {
	for _, p := range plays {
		s.add(p)
	}
}

// sorted returns the plays longest first, then by canonical key.
func (s *playSet) sorted() []Play {
	out := make([]Play, len(s.plays))
	copy(out, s.plays)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return lessKey(out[i].key(), out[j].key())
	})
	return out
}

// afterPlay returns the board after the moves of p, without re-entries.
func (b *Board) afterPlay(side Side, p Play) (Board, bool) {
	cur := *b
	for _, m := range p {
		next, ok := cur.step(side, m)
		if !ok {
			return cur, false
		}
		cur = next
	}
	return cur, true
}

// singleMoves returns (s, s+r) for every point s held by side whose target
// validates. Called on the board after earlier moves, the held points
// include every landing point, which is how chains continue.
func (b *Board) singleMoves(side Side, r int) []Move {
	d := side.Direction() * r
	var moves []Move
	for _, s := range b.Positions(side) {
		if b.IsValid(side, s+d) {
			moves = append(moves, Move{From: s, To: s + d})
		}
	}
	return moves
}

// extendPlays appends one move of r to each play in every legal way: the
// chain's last checker moving on, another held point moving, or the same
// point moving again while it still has a checker. Each extension is checked
// against the board as it stands after the play's earlier moves.
func (b *Board) extendPlays(side Side, r int, plays []Play) []Play {
	out := newPlaySet()
	for _, p := range plays {
		if len(p) == 0 || len(p) >= MaxPlayMoves {
			continue
		}
		after, ok := b.afterPlay(side, p)
		if !ok {
			continue
		}
		for _, m := range after.singleMoves(side, r) {
			if _, ok := after.step(side, m); !ok {
				continue
			}
			next := make(Play, len(p), len(p)+1)
			copy(next, p)
			out.add(append(next, m))
		}
	}
	return out.plays
}

func wrapMoves(moves []Move) []Play {
	plays := make([]Play, len(moves))
	for i, m := range moves {
		plays[i] = Play{m}
	}
	return plays
}

// doubleMoves builds two-move chains of r from a set of single moves.
func (b *Board) doubleMoves(side Side, r int, singles []Move) []Play {
	return b.extendPlays(side, r, wrapMoves(singles))
}

// tripleMoves extends two-move chains by a third move of r.
func (b *Board) tripleMoves(side Side, r int, doubles []Play) []Play {
	return b.extendPlays(side, r, doubles)
}

// normalPlays composes plays for a non-double roll: one checker moving by
// both dice (in either order) or two moves of one die each. When no
// two-move play exists the larger die alone is played if possible, else
// the smaller one.
func (b *Board) normalPlays(side Side, roll Roll) []Play {
	set := newPlaySet()
	for _, order := range [2][2]int{{roll[0], roll[1]}, {roll[1], roll[0]}} {
		first := b.singleMoves(side, order[0])
		set.addAll(b.extendPlays(side, order[1], wrapMoves(first)))
	}

	if len(set.plays) == 0 {
		hi, lo := roll[0], roll[1]
		if lo > hi {
			hi, lo = lo, hi
		}
		singles := b.singleMoves(side, hi)
		if len(singles) == 0 {
			singles = b.singleMoves(side, lo)
		}
		set.addAll(wrapMoves(singles))
	}
	return set.sorted()
}

// doublePlays composes plays for a double roll: up to four moves of the
// same value. Plays using fewer than four moves are listed alongside the
// full ones.
func (b *Board) doublePlays(side Side, roll Roll) []Play {
	r := roll[0]
	set := newPlaySet()

	singles := b.singleMoves(side, r)
	set.addAll(wrapMoves(singles))

	doubles := b.doubleMoves(side, r, singles)
	set.addAll(doubles)

	triples := b.tripleMoves(side, r, doubles)
	set.addAll(triples)

	set.addAll(b.extendPlays(side, r, triples))
	return set.sorted()
}

// LegalPlays returns every distinct play side can make with roll, longest
// first. An empty result means the turn is forfeited; an invalid roll or
// side yields nil.
func (b *Board) LegalPlays(side Side, roll Roll) []Play {
	if !roll.Valid() || (side != White && side != Black) {
		return nil
	}
	if roll.IsDouble() {
		return b.doublePlays(side, roll)
	}
	return b.normalPlays(side, roll)
}

package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Move relocates one checker from From to To.
type Move struct {
	From int
	To   int
}

func (m Move) String() string {
	return pointName(m.From) + "/" + pointName(m.To)
}

func pointName(p int) string {
	if p == Transit {
		return "bar"
	}
	return strconv.Itoa(p)
}

// Play is everything a single roll permits: one to four moves, applied in order.
type Play []Move

func (p Play) String() string {
	parts := make([]string, len(p))
	for i, m := range p {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy of the play.
func (p Play) Clone() Play {
	if p == nil {
		return nil
	}
	out := make(Play, len(p))
	copy(out, p)
	return out
}

// playKey is the canonical, order-independent identity of a play:
// its moves sorted by source then target.
type playKey struct {
	n     int
	moves [MaxPlayMoves]Move
}

// Equivalent reports whether p and q make the same moves, in any order.
func (p Play) Equivalent(q Play) bool {
	if len(p) != len(q) || len(p) > MaxPlayMoves {
		return false
	}
	return p.key() == q.key()
}

func (p Play) key() playKey {
	var k playKey
	k.n = len(p)
	copy(k.moves[:], p)
	sorted := k.moves[:k.n]
	sort.Slice(sorted, func(i, j int) bool {
		return lessMove(sorted[i], sorted[j])
	})
	return k
}

func lessMove(a, b Move) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}

func lessKey(a, b playKey) bool {
	for i := 0; i < a.n && i < b.n; i++ {
		if a.moves[i] != b.moves[i] {
			return lessMove(a.moves[i], b.moves[i])
		}
	}
	return a.n < b.n
}

// ErrInvalidMove is returned when move notation cannot be parsed.
var ErrInvalidMove = errors.New("invalid move notation")

// ParsePlay parses notation such as "5/2 2/1" or "bar/4".
func ParsePlay(s string) (Play, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > MaxPlayMoves {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	play := make(Play, 0, len(fields))
	for _, f := range fields {
		from, to, ok := strings.Cut(f, "/")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMove, f)
		}
		src, err := parsePoint(from)
		if err != nil {
			return nil, err
		}
		dst, err := parsePoint(to)
		if err != nil {
			return nil, err
		}
		play = append(play, Move{From: src, To: dst})
	}
	return play, nil
}

func parsePoint(s string) (int, error) {
	if s == "bar" {
		return Transit, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p >= NumPoints {
		return 0, fmt.Errorf("%w: point %q", ErrInvalidMove, s)
	}
	return p, nil
}

// Roll holds the two die values, each 1-MaxDie. Direction comes from the
// moving side, not from the sign of the values.
type Roll [2]int

// Valid reports whether both dice are in range.
func (r Roll) Valid() bool {
	return r[0] >= 1 && r[0] <= MaxDie && r[1] >= 1 && r[1] <= MaxDie
}

// IsDouble reports whether both dice show the same value.
func (r Roll) IsDouble() bool {
	return r[0] == r[1]
}

func (r Roll) String() string {
	return fmt.Sprintf("%d-%d", r[0], r[1])
}

// ParseRoll parses dice in the form "3-1" or "3,1".
func ParseRoll(s string) (Roll, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		parts = strings.Split(s, "-")
	}
	if len(parts) != 2 {
		return Roll{}, fmt.Errorf("dice should be in format '3,1' or '3-1'")
	}

	d1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	r := Roll{d1, d2}
	if err1 != nil || err2 != nil || !r.Valid() {
		return Roll{}, fmt.Errorf("dice values must be 1-%d", MaxDie)
	}
	return r, nil
}

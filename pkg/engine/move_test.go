package engine

import (
	"errors"
	"sort"
	"testing"
)

type placement struct {
	point int
	side  Side
	n     int
}

// buildBoard returns a board holding exactly the given checkers.
func buildBoard(t *testing.T, placements ...placement) *Board {
	t.Helper()
	b := NewBoard()
	for _, p := range placements {
		if err := b.Place(p.point, p.side, p.n); err != nil {
			t.Fatalf("place %d %s x%d: %v", p.point, p.side, p.n, err)
		}
	}
	return b
}

func playStrings(plays []Play) []string {
	out := make([]string, len(plays))
	for i, p := range plays {
		out[i] = p.String()
	}
	sort.Strings(out)
	return out
}

// containsPlay reports whether plays holds s in any move order.
func containsPlay(plays []Play, s string) bool {
	want, err := ParsePlay(s)
	if err != nil {
		return false
	}
	for _, p := range plays {
		if p.key() == want.key() {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assertSound replays every play step by step, checking that each target
// validates at the moment its move is taken.
func assertSound(t *testing.T, b *Board, side Side, plays []Play) {
	t.Helper()
	for _, p := range plays {
		cur := *b
		for i, m := range p {
			if !cur.IsValid(side, m.To) {
				t.Errorf("play %q: move %d (%s) targets an invalid point", p, i, m)
				break
			}
			next, ok := cur.step(side, m)
			if !ok {
				t.Errorf("play %q: move %d (%s) is not applicable", p, i, m)
				break
			}
			cur = next
		}
	}
}

func TestGenerateMovesStartingPosition31White(t *testing.T) {
	board := NewGame()
	plays := board.LegalPlays(White, Roll{3, 1})

	want := []string{"2/1 5/2", "5/4 4/1", "8/5 2/1", "8/5 5/4", "8/7 7/4"}
	sort.Strings(want)
	if got := playStrings(plays); !equalStrings(got, want) {
		t.Errorf("White 3-1 plays = %v, want %v", got, want)
	}

	for i, p := range plays {
		if len(p) != 2 {
			t.Errorf("Play %d doesn't use both dice: %s", i, p)
		}
	}
	assertSound(t, board, White, plays)
}

func TestGenerateMovesStartingPosition31Black(t *testing.T) {
	board := NewGame()
	plays := board.LegalPlays(Black, Roll{3, 1})

	want := []string{"0/1 1/4", "0/3 3/4", "0/3 6/7", "3/4 4/7", "6/7 3/6"}
	sort.Strings(want)
	if got := playStrings(plays); !equalStrings(got, want) {
		t.Errorf("Black 3-1 plays = %v, want %v", got, want)
	}
	assertSound(t, board, Black, plays)
}

func TestInitialRollKeepsInvariants(t *testing.T) {
	board := NewGame()
	plays := board.LegalPlays(White, Roll{3, 1})
	if len(plays) == 0 {
		t.Fatal("Expected at least one legal play for 3-1 from the initial layout")
	}

	for _, p := range plays {
		b := *board
		if _, err := b.ApplyPlay(White, p); err != nil {
			t.Errorf("ApplyPlay(%s): %v", p, err)
			continue
		}
		if err := b.Validate(); err != nil {
			t.Errorf("after %s: %v", p, err)
		}
	}
}

func TestDoubleRollStartingPosition(t *testing.T) {
	board := NewGame()

	for _, side := range []Side{White, Black} {
		for r := 1; r <= MaxDie; r++ {
			roll := Roll{r, r}
			plays := board.LegalPlays(side, roll)
			if len(plays) == 0 {
				t.Errorf("%s %s: expected legal plays", side, roll)
				continue
			}

			longest := 0
			seen := make(map[playKey]bool)
			for _, p := range plays {
				if len(p) > MaxPlayMoves {
					t.Errorf("%s %s: play %s has more than four moves", side, roll, p)
				}
				if len(p) > longest {
					longest = len(p)
				}
				if seen[p.key()] {
					t.Errorf("%s %s: duplicate play %s", side, roll, p)
				}
				seen[p.key()] = true
				for _, m := range p {
					if d := (m.To - m.From) * side.Direction(); d != r {
						t.Errorf("%s %s: move %s does not travel %d", side, roll, m, r)
					}
				}
			}
			if len(plays[0]) != longest {
				t.Errorf("%s %s: plays not sorted longest first", side, roll)
			}
			assertSound(t, board, side, plays)
			t.Logf("%s %s: %d plays, longest uses %d moves", side, roll, len(plays), longest)
		}
	}
}

func TestDoubleRollUsesFourMoves(t *testing.T) {
	board := NewGame()
	plays := board.LegalPlays(Black, Roll{1, 1})

	if len(plays) == 0 || len(plays[0]) != MaxPlayMoves {
		t.Fatalf("Black 1-1 should lead with a four-move play, got %v", playStrings(plays))
	}
	if !containsPlay(plays, "6/7 6/7 6/7 3/4") {
		t.Errorf("missing 6/7 6/7 6/7 3/4 in %v", playStrings(plays))
	}
	for _, p := range plays {
		if p.String() == "0/1 0/1" {
			t.Errorf("point 0 holds one checker and cannot move twice: %s", p)
		}
	}
}

func TestFallbackLargerDie(t *testing.T) {
	// White's only mobile checker is on 5; 2 is blocked so neither
	// 5/4 4/2 nor 5/3 3/2 exists.
	board := buildBoard(t,
		placement{0, White, 3}, placement{1, White, 2}, placement{5, White, 1},
		placement{2, Black, 2}, placement{6, Black, 3}, placement{8, Black, 1},
	)

	plays := board.LegalPlays(White, Roll{1, 2})
	if got := playStrings(plays); !equalStrings(got, []string{"5/3"}) {
		t.Errorf("plays = %v, want [5/3]", got)
	}
}

func TestFallbackSmallerDie(t *testing.T) {
	board := buildBoard(t,
		placement{0, White, 3}, placement{1, White, 2}, placement{5, White, 1},
		placement{2, Black, 2}, placement{3, Black, 2}, placement{7, Black, 2},
	)

	plays := board.LegalPlays(White, Roll{2, 1})
	if got := playStrings(plays); !equalStrings(got, []string{"5/4"}) {
		t.Errorf("plays = %v, want [5/4]", got)
	}
}

func TestDoubleRollBlockedCombinations(t *testing.T) {
	// Point 2 is White's only landing spot for 3-3 and nothing can move on from it.
	board := buildBoard(t,
		placement{0, White, 3}, placement{1, White, 2}, placement{5, White, 1},
		placement{4, Black, 2}, placement{6, Black, 3}, placement{8, Black, 1},
	)

	plays := board.LegalPlays(White, Roll{3, 3})
	if got := playStrings(plays); !equalStrings(got, []string{"5/2"}) {
		t.Errorf("plays = %v, want [5/2]", got)
	}
}

func TestNoLegalPlays(t *testing.T) {
	board := buildBoard(t,
		placement{0, White, 3}, placement{1, White, 3},
		placement{4, Black, 3}, placement{6, Black, 3},
	)

	plays := board.LegalPlays(White, Roll{2, 1})
	if plays == nil || len(plays) != 0 {
		t.Errorf("Expected an empty, non-nil play set, got %v", plays)
	}
}

func TestLegalPlaysInvalidInput(t *testing.T) {
	board := NewGame()
	if plays := board.LegalPlays(White, Roll{0, 1}); plays != nil {
		t.Errorf("Expected nil for an invalid roll, got %v", plays)
	}
	if plays := board.LegalPlays(White, Roll{4, 1}); plays != nil {
		t.Errorf("Expected nil for an out of range die, got %v", plays)
	}
	if plays := board.LegalPlays(NoSide, Roll{2, 1}); plays != nil {
		t.Errorf("Expected nil for NoSide, got %v", plays)
	}
}

func TestLegalPlaysDeterministic(t *testing.T) {
	board := NewGame()
	for d1 := 1; d1 <= MaxDie; d1++ {
		for d2 := 1; d2 <= MaxDie; d2++ {
			roll := Roll{d1, d2}
			first := board.LegalPlays(Black, roll)
			second := board.LegalPlays(Black, roll)
			if len(first) != len(second) {
				t.Fatalf("%s: %d plays then %d", roll, len(first), len(second))
			}
			for i := range first {
				if first[i].String() != second[i].String() {
					t.Errorf("%s: play %d differs: %s vs %s", roll, i, first[i], second[i])
				}
			}
		}
	}
}

func TestSingleMoves(t *testing.T) {
	board := NewGame()

	if got := playStrings(wrapMoves(board.singleMoves(Black, 2))); !equalStrings(got, []string{"6/8"}) {
		t.Errorf("singleMoves(Black, 2) = %v, want [6/8]", got)
	}
	if got := board.singleMoves(Black, 1); len(got) != 3 {
		t.Errorf("singleMoves(Black, 1) = %v, want one move per held point", got)
	}

	// After 6/7 the landing point is held and moves on like any other.
	after, ok := board.afterPlay(Black, Play{{From: 6, To: 7}})
	if !ok {
		t.Fatal("6/7 not playable from the start")
	}
	got := playStrings(wrapMoves(after.singleMoves(Black, 1)))
	if !equalStrings(got, []string{"0/1", "3/4", "6/7", "7/8"}) {
		t.Errorf("singleMoves after 6/7 = %v, want [0/1 3/4 6/7 7/8]", got)
	}
}

func TestDoubleAndTripleMoves(t *testing.T) {
	board := NewGame()
	singles := board.singleMoves(Black, 1)
	doubles := board.doubleMoves(Black, 1, singles)

	for _, want := range []string{"6/7 6/7", "6/7 7/8", "3/4 3/4", "0/1 3/4"} {
		if !containsPlay(doubles, want) {
			t.Errorf("doubleMoves missing %q in %v", want, playStrings(doubles))
		}
	}
	for _, bad := range []string{"0/1 0/1", "0/1 1/2", "3/4 4/5"} {
		if containsPlay(doubles, bad) {
			t.Errorf("doubleMoves should not contain %q", bad)
		}
	}

	triples := board.tripleMoves(Black, 1, doubles)
	if !containsPlay(triples, "6/7 6/7 6/7") {
		t.Errorf("tripleMoves missing 6/7 6/7 6/7")
	}
	for _, p := range triples {
		if len(p) != 3 {
			t.Errorf("tripleMoves produced %d moves: %s", len(p), p)
		}
		if p.String() == "3/4 3/4 3/4" {
			t.Errorf("point 3 holds two checkers and cannot move three times")
		}
	}
	assertSound(t, board, Black, triples)
}

func TestParsePlay(t *testing.T) {
	tests := []struct {
		in      string
		want    Play
		wantErr bool
	}{
		{in: "5/2 2/1", want: Play{{5, 2}, {2, 1}}},
		{in: "bar/4", want: Play{{Transit, 4}}},
		{in: "", wantErr: true},
		{in: "5-2", wantErr: true},
		{in: "5/10", wantErr: true},
		{in: "1/2 2/3 3/4 4/5 5/6", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePlay(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidMove) {
					t.Errorf("ParsePlay(%q) error = %v, want ErrInvalidMove", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlay(%q): %v", tc.in, err)
			}
			if got.String() != tc.want.String() {
				t.Errorf("ParsePlay(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRoll(t *testing.T) {
	if r, err := ParseRoll("3-1"); err != nil || r != (Roll{3, 1}) {
		t.Errorf("ParseRoll(3-1) = %v, %v", r, err)
	}
	if r, err := ParseRoll("2,2"); err != nil || !r.IsDouble() {
		t.Errorf("ParseRoll(2,2) = %v, %v", r, err)
	}
	for _, bad := range []string{"4-1", "0,1", "x-1", "3"} {
		if _, err := ParseRoll(bad); err == nil {
			t.Errorf("ParseRoll(%q) should fail", bad)
		}
	}
}

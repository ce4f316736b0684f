package engine

import (
	"reflect"
	"testing"
)

func TestNewGameLayout(t *testing.T) {
	b := NewGame()

	if err := b.Validate(); err != nil {
		t.Fatalf("starting position invalid: %v", err)
	}
	if got, want := b.String(), "0:b1 2:w3 3:b2 5:w2 6:b3 8:w1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := b.Positions(White); !reflect.DeepEqual(got, []int{2, 5, 8}) {
		t.Errorf("White positions = %v", got)
	}
	if got := b.Positions(Black); !reflect.DeepEqual(got, []int{0, 3, 6}) {
		t.Errorf("Black positions = %v", got)
	}
	if got := b.Positions(NoSide); got != nil {
		t.Errorf("NoSide positions = %v, want nil", got)
	}
}

func TestPlaceRejects(t *testing.T) {
	b := NewBoard()
	if err := b.Place(4, NoSide, 1); err == nil {
		t.Error("expected error placing for NoSide")
	}
	if err := b.Place(4, White, 4); err == nil {
		t.Error("expected error stacking four checkers")
	}
	b = NewBoard()
	if err := b.Place(4, White, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Place(4, Black, 1); err == nil {
		t.Error("expected error placing on an opposing checker")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Board
		wantErr bool
	}{
		{"start", NewGame, false},
		{"empty", NewBoard, true},
		{"missing checker", func() *Board {
			b := NewGame()
			b.Points[8] = Point{Owner: NoSide}
			return b
		}, true},
		{"checker in transit", func() *Board {
			b := NewGame()
			b.Points[8] = Point{Owner: NoSide}
			b.Points[Transit] = Point{Count: 1, Owner: White}
			return b
		}, true},
		{"overfull point", func() *Board {
			b := NewGame()
			b.Points[2].Count = 4
			b.Points[5].Count = 1
			return b
		}, true},
		{"ownerless checkers", func() *Board {
			b := NewGame()
			b.Points[4] = Point{Count: 1, Owner: NoSide}
			return b
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"white", White, false},
		{" W ", White, false},
		{"Black", Black, false},
		{"b", Black, false},
		{"red", NoSide, true},
		{"", NoSide, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseSide(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSideHelpers(t *testing.T) {
	if White.Opponent() != Black || Opponent(Black) != White {
		t.Error("Opponent mismatch")
	}
	if White.Direction() != -1 || Black.Direction() != 1 {
		t.Error("Direction mismatch")
	}
	if White.HomeRange() != [3]int{6, 7, 8} || Black.HomeRange() != [3]int{0, 1, 2} {
		t.Error("HomeRange mismatch")
	}
}

func TestEqualBoards(t *testing.T) {
	a, b := NewGame(), NewGame()
	if !EqualBoards(a, b) {
		t.Error("two starting positions differ")
	}
	if _, err := b.ApplyPlay(White, Play{{From: 8, To: 7}}); err != nil {
		t.Fatal(err)
	}
	if EqualBoards(a, b) {
		t.Error("boards equal after a move")
	}
}

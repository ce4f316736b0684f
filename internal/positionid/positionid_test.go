package positionid

import (
	"errors"
	"testing"
)

// Initial layout of the simplified game:
// Black: 1 on point 0, 2 on point 3, 3 on point 6
// White: 3 on point 2, 2 on point 5, 1 on point 8
func startingBoard() Board {
	var board Board
	board[1][0] = 1
	board[1][3] = 2
	board[1][6] = 3

	board[0][2] = 3
	board[0][5] = 2
	board[0][8] = 1

	return board
}

// Each point is one character: white count + 8 * black count.
const startingPositionID = "IADQACYABA"

func TestPositionIDStartingPosition(t *testing.T) {
	board := startingBoard()
	posID := PositionID(board)

	if posID != startingPositionID {
		t.Errorf("PositionID mismatch: got %s, want %s", posID, startingPositionID)
	}
}

func TestPositionIDRoundTrip(t *testing.T) {
	board := startingBoard()

	decoded, err := BoardFromPositionID(PositionID(board))
	if err != nil {
		t.Fatalf("BoardFromPositionID: %v", err)
	}
	if !EqualBoards(board, decoded) {
		t.Errorf("Position ID round-trip failed")
		t.Errorf("Original: %v", board)
		t.Errorf("Result:   %v", decoded)
	}
}

func TestPositionKeyRoundTrip(t *testing.T) {
	board := startingBoard()
	board[1][9] = 2 // checkers in transit survive the key too

	key := MakePositionKey(board)
	board2 := BoardFromKey(key)

	if !EqualBoards(board, board2) {
		t.Errorf("PositionKey round-trip failed")
		t.Errorf("Original: %v", board)
		t.Errorf("Result:   %v", board2)
	}
	if PositionIDFromKey(key) != PositionID(board) {
		t.Errorf("PositionIDFromKey = %s, want %s", PositionIDFromKey(key), PositionID(board))
	}
}

func TestPositionKeyDistinguishesSides(t *testing.T) {
	var white, black Board
	white[0][4] = 1
	black[1][4] = 1

	if EqualKeys(MakePositionKey(white), MakePositionKey(black)) {
		t.Error("keys for a white and a black blot on the same point should differ")
	}
}

func TestBoardFromPositionIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		posID string
	}{
		{"empty", ""},
		{"too short", "IADQACYAB"},
		{"too long", "IADQACYABAA"},
		{"bad character", "IADQACYAB!"},
		{"mixed point", "JADQACYABA"},       // 'J' = 1 white + 1 black
		{"overstacked", "EADQACYABA"},       // 'E' = 4 white on point 0
		{"too many checkers", "DDDQACYABA"}, // 9 white checkers
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BoardFromPositionID(tc.posID)
			if !errors.Is(err, ErrInvalidPositionID) {
				t.Errorf("BoardFromPositionID(%q) error = %v, want ErrInvalidPositionID", tc.posID, err)
			}
		})
	}
}

func TestCheckPositionAllowsTransit(t *testing.T) {
	board := startingBoard()
	board[1][3] = 1
	board[1][9] = 1

	if !CheckPosition(board) {
		t.Error("a checker in transit should be a valid position")
	}
}

package engine

import (
	"fmt"

	"github.com/yourusername/sbgengine/internal/positionid"
)

func (b *Board) positionBoard() positionid.Board {
	var pb positionid.Board
	for i, p := range b.Points {
		if p.OwnedBy(White) {
			pb[0][i] = p.Count
		} else if p.OwnedBy(Black) {
			pb[1][i] = p.Count
		}
	}
	return pb
}

// PositionID returns the board's base64 position ID.
func (b *Board) PositionID() string {
	return positionid.PositionID(b.positionBoard())
}

// Key returns the compact position key used for caching.
func (b *Board) Key() positionid.PositionKey {
	return positionid.MakePositionKey(b.positionBoard())
}

// BoardFromPositionID decodes a position ID into a board.
func BoardFromPositionID(posID string) (*Board, error) {
	pb, err := positionid.BoardFromPositionID(posID)
	if err != nil {
		return nil, err
	}

	b := NewBoard()
	for i := 0; i < NumPoints; i++ {
		for side, n := range [2]uint8{pb[0][i], pb[1][i]} {
			if n == 0 {
				continue
			}
			if err := b.Place(i, Side(side), int(n)); err != nil {
				return nil, fmt.Errorf("decode position %s: %w", posID, err)
			}
		}
	}
	return b, nil
}

// Package positionid implements position encoding/decoding for the
// simplified ten-point board.
//
// A position ID is a 10-character base64 string, one character per point.
// Each character packs the white count in its low three bits and the black
// count in its high three bits, so a point is decoded independently of the
// others and mixed occupancy is detectable.
package positionid

import (
	"errors"
)

const (
	// PositionIDLength is the length of a position ID string
	PositionIDLength = 10
	// NumPoints is the number of points, including the transit point
	NumPoints = 10
	// TransitPoint holds knocked checkers between moves
	TransitPoint = 9
	// MaxCheckers is the number of checkers each side plays with
	MaxCheckers = 6
	// MaxStack is the most checkers an on-board point can hold
	MaxStack = 3
)

// Base64 alphabet used for position ID encoding
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Board holds checker counts as [side][point], side 0 = white, 1 = black.
type Board [2][NumPoints]uint8

// PositionKey is a compact binary representation of a board position
// (4 bits per side per point).
type PositionKey struct {
	Data [3]uint32
}

// MakePositionKey creates a compact key from a board position
func MakePositionKey(board Board) PositionKey {
	var key PositionKey

	for side := 0; side < 2; side++ {
		for j := 0; j < 8; j++ {
			key.Data[side] |= uint32(board[side][j]&0x0f) << (4 * j)
		}
	}
	key.Data[2] = uint32(board[0][8]&0x0f) + (uint32(board[0][9]&0x0f) << 4) +
		(uint32(board[1][8]&0x0f) << 8) + (uint32(board[1][9]&0x0f) << 12)

	return key
}

// BoardFromKey reconstructs a board from a position key
func BoardFromKey(key PositionKey) Board {
	var board Board

	for side := 0; side < 2; side++ {
		for j := 0; j < 8; j++ {
			board[side][j] = uint8((key.Data[side] >> (4 * j)) & 0x0f)
		}
	}
	board[0][8] = uint8(key.Data[2] & 0x0f)
	board[0][9] = uint8((key.Data[2] >> 4) & 0x0f)
	board[1][8] = uint8((key.Data[2] >> 8) & 0x0f)
	board[1][9] = uint8((key.Data[2] >> 12) & 0x0f)

	return board
}

// PositionID generates a base64 position ID string from a board.
// Counts above 7 cannot be represented; use CheckPosition first.
func PositionID(board Board) string {
	result := make([]byte, PositionIDLength)
	for i := 0; i < NumPoints; i++ {
		result[i] = base64Chars[(board[0][i]&0x07)|(board[1][i]&0x07)<<3]
	}
	return string(result)
}

// PositionIDFromKey generates a base64 position ID string from a position key
func PositionIDFromKey(key PositionKey) string {
	return PositionID(BoardFromKey(key))
}

// base64Decode decodes a base64 character to its value
func base64Decode(ch byte) uint8 {
	if ch >= 'A' && ch <= 'Z' {
		return ch - 'A'
	}
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 26
	}
	if ch >= '0' && ch <= '9' {
		return ch - '0' + 52
	}
	if ch == '+' {
		return 62
	}
	if ch == '/' {
		return 63
	}
	return 255
}

// ErrInvalidPositionID is returned when a position ID is invalid
var ErrInvalidPositionID = errors.New("invalid position ID")

// BoardFromPositionID decodes a base64 position ID string to a board
func BoardFromPositionID(posID string) (Board, error) {
	var board Board

	if len(posID) != PositionIDLength {
		return board, ErrInvalidPositionID
	}

	for i := 0; i < PositionIDLength; i++ {
		v := base64Decode(posID[i])
		if v == 255 {
			return board, ErrInvalidPositionID
		}
		board[0][i] = v & 0x07
		board[1][i] = v >> 3
	}

	if !CheckPosition(board) {
		return board, ErrInvalidPositionID
	}

	return board, nil
}

// CheckPosition validates that a board position is legal
func CheckPosition(board Board) bool {
	var ac [2]uint32

	for i := 0; i < NumPoints; i++ {
		// Both players on the same point
		if board[0][i] > 0 && board[1][i] > 0 {
			return false
		}
		if i != TransitPoint && (board[0][i] > MaxStack || board[1][i] > MaxStack) {
			return false
		}
		ac[0] += uint32(board[0][i])
		ac[1] += uint32(board[1][i])
	}

	return ac[0] <= MaxCheckers && ac[1] <= MaxCheckers
}

// EqualBoards returns true if two boards are identical
func EqualBoards(b1, b2 Board) bool {
	return b1 == b2
}

// EqualKeys returns true if two position keys are identical
func EqualKeys(k1, k2 PositionKey) bool {
	return k1.Data == k2.Data
}

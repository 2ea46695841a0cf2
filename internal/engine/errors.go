package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrIllegalMove     = errors.New("illegal move")
	ErrDesync          = errors.New("piece and board out of sync")
	ErrNothingToUndo   = errors.New("no move to undo")
	ErrInvalidPosition = errors.New("invalid position")
)

// OutOfBoundsError reports a coordinate outside [0,63].
type OutOfBoundsError struct {
	Coordinate int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("coordinate %d out of bounds [0,63]", e.Coordinate)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// IllegalMoveError reports a move that is not in the legal move list of the
// board it was submitted to.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
	}
	return fmt.Sprintf("illegal move %s", e.Move)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// DesyncError reports a piece whose recorded position disagrees with the
// tile it was found on (or looked up at).
type DesyncError struct {
	Piece Piece
	Tile  Tile
}

func (e *DesyncError) Error() string {
	if occupant, ok := e.Tile.Piece(); ok {
		return fmt.Sprintf("%s recorded at %s but tile %s holds %s", e.Piece, e.Piece.Position, e.Tile.Coordinate(), occupant)
	}
	return fmt.Sprintf("%s recorded at %s but tile %s is empty", e.Piece, e.Piece.Position, e.Tile.Coordinate())
}

func (e *DesyncError) Is(target error) bool {
	return target == ErrDesync
}

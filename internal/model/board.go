package model

import (
	"fmt"

	"github.com/benbeisheim/chesscore/internal/engine"
)

// Position is the client's view of a square: X is the file, Y counts rows
// from Black's back rank, so a8 is {0,0} and h1 is {7,7}.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionOf(c engine.Coordinate) Position {
	return Position{X: c.File(), Y: 7 - c.Rank()}
}

func (p Position) coordinate() (engine.Coordinate, error) {
	if !boundaryCheck(p) {
		return engine.NoCoordinate, fmt.Errorf("%w: x=%d y=%d", engine.ErrOutOfBounds, p.X, p.Y)
	}
	return engine.CoordinateAt(p.X, 7-p.Y), nil
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

type Piece struct {
	Type     engine.PieceKind `json:"type"`
	Color    PlayerColor      `json:"color"`
	Position Position         `json:"position"`
	HasMoved bool             `json:"hasMoved"`
}

func pieceOf(p engine.Piece) Piece {
	return Piece{
		Type:     p.Kind,
		Color:    colorOf(p.Alliance),
		Position: positionOf(p.Position),
		HasMoved: p.HasMoved,
	}
}

type BoardState struct {
	Board             [][]*Piece            `json:"board"`
	BlackKingPosition Position              `json:"blackKingPosition"`
	WhiteKingPosition Position              `json:"whiteKingPosition"`
	CastlingRights    engine.CastlingRights `json:"castlingRights"`
	HalfmoveClock     int                   `json:"halfmoveClock"`
	FullmoveNumber    int                   `json:"fullmoveNumber"`
}

// newBoardState renders b row by row, Black's back rank first.
func newBoardState(b *engine.Board) *BoardState {
	state := &BoardState{
		Board:             make([][]*Piece, 8),
		BlackKingPosition: positionOf(b.KingCoordinate(engine.Black)),
		WhiteKingPosition: positionOf(b.KingCoordinate(engine.White)),
		CastlingRights:    b.CastlingRights(),
		HalfmoveClock:     b.HalfmoveClock(),
		FullmoveNumber:    b.FullmoveNumber(),
	}
	for y := 0; y < 8; y++ {
		state.Board[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			c, _ := Position{X: x, Y: y}.coordinate()
			if p, ok := b.PieceAt(c); ok {
				piece := pieceOf(p)
				state.Board[y][x] = &piece
			}
		}
	}
	return state
}

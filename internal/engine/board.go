package engine

import (
	"fmt"
	"strings"
)

// Board is one position. A Board is never changed once built: ApplyMove and
// UndoMove return new boards, so a *Board may be read from several goroutines.
type Board struct {
	tiles           [TileCount]Tile
	sideToMove      Alliance
	castling        CastlingRights
	enPassantTarget Coordinate
	halfmoveClock   int
	fullmoveNumber  int
	kings           [2]Coordinate

	// undo describes the move that produced this board, nil at the root.
	undo *undoRecord
}

// undoRecord holds what a Move alone cannot restore. Records are immutable
// and shared between a board and its clones.
type undoRecord struct {
	move            Move
	castling        CastlingRights
	enPassantTarget Coordinate
	halfmoveClock   int
	fullmoveNumber  int
	prev            *undoRecord
}

var backRankKinds = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialPosition returns the standard starting layout with White to move.
func InitialPosition() *Board {
	builder := NewBuilder()
	for file, kind := range backRankKinds {
		builder.Place(NewPiece(kind, White, CoordinateAt(file, White.BackRank())))
		builder.Place(NewPiece(Pawn, White, CoordinateAt(file, White.PawnHomeRank())))
		builder.Place(NewPiece(Pawn, Black, CoordinateAt(file, Black.PawnHomeRank())))
		builder.Place(NewPiece(kind, Black, CoordinateAt(file, Black.BackRank())))
	}
	board, err := builder.Build()
	if err != nil {
		panic(err)
	}
	return board
}

func (b *Board) TileAt(c Coordinate) (Tile, error) {
	if !c.IsValid() {
		return Tile{}, &OutOfBoundsError{Coordinate: int(c)}
	}
	return b.tiles[c], nil
}

// PieceAt is TileAt for callers that only care about the occupant.
func (b *Board) PieceAt(c Coordinate) (Piece, bool) {
	if !c.IsValid() {
		return Piece{}, false
	}
	return b.tiles[c].Piece()
}

func (b *Board) SideToMove() Alliance {
	return b.sideToMove
}

func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// EnPassantTarget is the square a pawn passed over on the previous ply, if
// that ply was a two-square advance.
func (b *Board) EnPassantTarget() (Coordinate, bool) {
	return b.enPassantTarget, b.enPassantTarget != NoCoordinate
}

func (b *Board) HalfmoveClock() int {
	return b.halfmoveClock
}

func (b *Board) FullmoveNumber() int {
	return b.fullmoveNumber
}

func (b *Board) KingCoordinate(a Alliance) Coordinate {
	return b.kings[a]
}

// Pieces lists a side's pieces in coordinate order.
func (b *Board) Pieces(a Alliance) []Piece {
	pieces := make([]Piece, 0, 16)
	for _, tile := range b.tiles {
		if tile.occupied && tile.piece.Alliance == a {
			pieces = append(pieces, tile.piece)
		}
	}
	return pieces
}

// LastMove is the move that produced this board.
func (b *Board) LastMove() (Move, bool) {
	if b.undo == nil {
		return Move{}, false
	}
	return b.undo.move, true
}

// Clone returns an independent copy. The tile array is copied; undo records
// are immutable and shared.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Equal compares positions: tiles, side to move, castling rights, en-passant
// target and move counters. History is ignored.
func (b *Board) Equal(other *Board) bool {
	return b.tiles == other.tiles &&
		b.sideToMove == other.sideToMove &&
		b.castling == other.castling &&
		b.enPassantTarget == other.enPassantTarget &&
		b.halfmoveClock == other.halfmoveClock &&
		b.fullmoveNumber == other.fullmoveNumber
}

// Validate checks that every piece records the coordinate of the tile that
// holds it.
func (b *Board) Validate() error {
	for i, tile := range b.tiles {
		if tile.coordinate != Coordinate(i) {
			return &DesyncError{Piece: tile.piece, Tile: tile}
		}
		if tile.occupied && tile.piece.Position != tile.coordinate {
			return &DesyncError{Piece: tile.piece, Tile: tile}
		}
	}
	return nil
}

// resync checks p against the tile it claims to stand on. Debug builds panic
// on a mismatch; release builds trust the board.
func (b *Board) resync(p Piece) (Piece, bool) {
	if p.Position.IsValid() {
		tile := b.tiles[p.Position]
		if tile.occupied && tile.piece == p {
			return p, true
		}
		if debugChecks {
			panic(&DesyncError{Piece: p, Tile: tile})
		}
		return tile.piece, tile.occupied
	}
	if debugChecks {
		panic(&DesyncError{Piece: p, Tile: Tile{coordinate: p.Position}})
	}
	return Piece{}, false
}

// enPassantVictim returns the pawn an en-passant capture by p onto target
// would remove.
func (b *Board) enPassantVictim(p Piece, target Coordinate) (Piece, bool) {
	tile := b.tiles[CoordinateAt(target.File(), p.Position.Rank())]
	if !tile.occupied || tile.piece.Kind != Pawn || tile.piece.Alliance == p.Alliance {
		return Piece{}, false
	}
	return tile.piece, true
}

func (b *Board) filesEmpty(rank int, files []int) bool {
	for _, file := range files {
		if b.tiles[CoordinateAt(file, rank)].occupied {
			return false
		}
	}
	return true
}

func (b *Board) filesAttacked(rank int, files []int, by Alliance) bool {
	for _, file := range files {
		if b.IsAttacked(CoordinateAt(file, rank), by) {
			return true
		}
	}
	return false
}

// String draws the board with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.tiles[CoordinateAt(file, rank)].String())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move, castling %s, en passant %s\n", b.sideToMove, b.castling, b.enPassantTarget)
	return sb.String()
}

package engine

import "fmt"

// Builder assembles arbitrary positions. The zero castling rights are "all",
// trimmed at Build time to what the placed kings and rooks still allow.
type Builder struct {
	tiles           [TileCount]Tile
	sideToMove      Alliance
	castling        CastlingRights
	enPassantTarget Coordinate
	halfmoveClock   int
	fullmoveNumber  int
	err             error
}

func NewBuilder() *Builder {
	return &Builder{
		tiles:           emptyTiles,
		sideToMove:      White,
		castling:        AllCastlingRights,
		enPassantTarget: NoCoordinate,
		fullmoveNumber:  1,
	}
}

// Place puts p on p.Position, replacing any occupant.
func (bl *Builder) Place(p Piece) *Builder {
	tile, err := NewTile(p.Position, &p)
	if err != nil {
		bl.fail(err)
		return bl
	}
	bl.tiles[p.Position] = tile
	return bl
}

func (bl *Builder) SetSideToMove(a Alliance) *Builder {
	bl.sideToMove = a
	return bl
}

func (bl *Builder) SetCastlingRights(rights CastlingRights) *Builder {
	bl.castling = rights
	return bl
}

func (bl *Builder) SetEnPassantTarget(c Coordinate) *Builder {
	if c != NoCoordinate && !c.IsValid() {
		bl.fail(&OutOfBoundsError{Coordinate: int(c)})
		return bl
	}
	bl.enPassantTarget = c
	return bl
}

func (bl *Builder) SetHalfmoveClock(n int) *Builder {
	bl.halfmoveClock = n
	return bl
}

func (bl *Builder) SetFullmoveNumber(n int) *Builder {
	bl.fullmoveNumber = n
	return bl
}

func (bl *Builder) fail(err error) {
	if bl.err == nil {
		bl.err = err
	}
}

// Build validates the layout. Each side needs exactly one king, and an
// en-passant target must sit behind a pawn of the side that just moved.
func (bl *Builder) Build() (*Board, error) {
	if bl.err != nil {
		return nil, bl.err
	}
	b := &Board{
		tiles:           bl.tiles,
		sideToMove:      bl.sideToMove,
		castling:        bl.castling,
		enPassantTarget: bl.enPassantTarget,
		halfmoveClock:   bl.halfmoveClock,
		fullmoveNumber:  bl.fullmoveNumber,
		kings:           [2]Coordinate{NoCoordinate, NoCoordinate},
	}
	for _, tile := range b.tiles {
		if !tile.occupied || tile.piece.Kind != King {
			continue
		}
		if b.kings[tile.piece.Alliance] != NoCoordinate {
			return nil, fmt.Errorf("%w: more than one %s king", ErrInvalidPosition, tile.piece.Alliance)
		}
		b.kings[tile.piece.Alliance] = tile.coordinate
	}
	for _, a := range [...]Alliance{White, Black} {
		if b.kings[a] == NoCoordinate {
			return nil, fmt.Errorf("%w: no %s king", ErrInvalidPosition, a)
		}
	}
	if target, ok := b.EnPassantTarget(); ok {
		mover := b.sideToMove.Opponent()
		if target.Rank() != mover.PawnHomeRank()+mover.Direction() {
			return nil, fmt.Errorf("%w: en-passant target %s on wrong rank", ErrInvalidPosition, target)
		}
		pawnAt, _ := target.offset(0, mover.Direction())
		if p, ok := b.tiles[pawnAt].Piece(); !ok || p.Kind != Pawn || p.Alliance != mover {
			return nil, fmt.Errorf("%w: no %s pawn in front of en-passant target %s", ErrInvalidPosition, mover, target)
		}
	}
	if b.IsInCheck(b.sideToMove.Opponent()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidPosition, b.sideToMove.Opponent())
	}
	b.trimCastlingRights()
	return b, nil
}

// trimCastlingRights drops rights whose king or rook is missing or has moved.
func (b *Board) trimCastlingRights() {
	for _, a := range [...]Alliance{White, Black} {
		king, ok := b.tiles[kingHome(a)].Piece()
		kingReady := ok && king.Kind == King && king.Alliance == a && !king.HasMoved
		for _, side := range [...]castleSide{kingSide, queenSide} {
			rook, ok := b.tiles[CoordinateAt(castlePaths[side].rookFrom, a.BackRank())].Piece()
			rookReady := ok && rook.Kind == Rook && rook.Alliance == a && !rook.HasMoved
			if !kingReady || !rookReady {
				b.castling.clear(a, side)
			}
		}
	}
}

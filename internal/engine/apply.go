package engine

// ApplyMove plays m for the side to move and returns the resulting board. m
// must be one of b.LegalMoves(b.SideToMove()); anything else is rejected
// before b is touched.
func (b *Board) ApplyMove(m Move) (*Board, error) {
	if m.Piece.Alliance != b.sideToMove {
		return nil, &IllegalMoveError{Move: m, Reason: "not " + m.Piece.Alliance.String() + "'s turn"}
	}
	if !b.isLegal(m) {
		return nil, &IllegalMoveError{Move: m}
	}
	next := b.play(m)
	next.undo = &undoRecord{
		move:            m,
		castling:        b.castling,
		enPassantTarget: b.enPassantTarget,
		halfmoveClock:   b.halfmoveClock,
		fullmoveNumber:  b.fullmoveNumber,
		prev:            b.undo,
	}
	return &next, nil
}

func (b *Board) isLegal(m Move) bool {
	for _, legal := range b.LegalMoves(b.sideToMove) {
		if legal == m {
			return true
		}
	}
	return false
}

// FindMove looks up the legal move from -> to for the side to move.
// promotion selects the piece for promoting moves and must be NoPiece
// otherwise.
func (b *Board) FindMove(from, to Coordinate, promotion PieceKind) (Move, error) {
	for _, m := range b.LegalMoves(b.sideToMove) {
		if m.From == from && m.To == to && m.Promotion == promotion {
			return m, nil
		}
	}
	piece, _ := b.PieceAt(from)
	return Move{}, &IllegalMoveError{
		Move:   Move{Piece: piece, From: from, To: to, Promotion: promotion},
		Reason: "no such legal move",
	}
}

// play performs m without any legality check and without recording history.
func (b *Board) play(m Move) Board {
	next := *b
	next.undo = nil
	mover := m.Piece.Alliance

	moved := m.Piece
	moved.HasMoved = true
	if m.Kind == Promotion {
		moved.Kind = m.Promotion
	}
	next.tiles[m.From] = emptyTiles[m.From]
	if m.Kind == EnPassant {
		at := m.capturedAt()
		next.tiles[at] = emptyTiles[at]
	}
	next.tiles[m.To] = occupiedTile(m.To, moved)

	if m.Kind == Castle {
		rookFrom, rookTo := m.RookTransit()
		rook := next.tiles[rookFrom].piece
		rook.HasMoved = true
		next.tiles[rookFrom] = emptyTiles[rookFrom]
		next.tiles[rookTo] = occupiedTile(rookTo, rook)
	}
	if moved.Kind == King {
		next.kings[mover] = m.To
	}

	next.castling.touch(m.From)
	next.castling.touch(m.To)

	next.enPassantTarget = NoCoordinate
	if m.Kind == PawnJump {
		next.enPassantTarget = CoordinateAt(m.From.File(), m.From.Rank()+mover.Direction())
	}

	if m.Piece.Kind == Pawn || m.IsCapture() {
		next.halfmoveClock = 0
	} else {
		next.halfmoveClock++
	}
	if mover == Black {
		next.fullmoveNumber++
	}
	next.sideToMove = mover.Opponent()
	return next
}

// UndoMove reverses the move that produced b. The result is Equal to the
// board that move was applied to.
func (b *Board) UndoMove() (*Board, error) {
	rec := b.undo
	if rec == nil {
		return nil, ErrNothingToUndo
	}
	m := rec.move
	prev := *b
	prev.tiles[m.To] = emptyTiles[m.To]
	prev.tiles[m.From] = occupiedTile(m.From, m.Piece)
	if m.IsCapture() {
		at := m.capturedAt()
		prev.tiles[at] = occupiedTile(at, m.Captured)
	}
	if m.Kind == Castle {
		rookFrom, rookTo := m.RookTransit()
		rook := prev.tiles[rookTo].piece
		// castling requires an unmoved rook
		rook.HasMoved = false
		prev.tiles[rookTo] = emptyTiles[rookTo]
		prev.tiles[rookFrom] = occupiedTile(rookFrom, rook)
	}
	if m.Piece.Kind == King {
		prev.kings[m.Piece.Alliance] = m.From
	}
	prev.sideToMove = m.Piece.Alliance
	prev.castling = rec.castling
	prev.enPassantTarget = rec.enPassantTarget
	prev.halfmoveClock = rec.halfmoveClock
	prev.fullmoveNumber = rec.fullmoveNumber
	prev.undo = rec.prev
	return &prev, nil
}

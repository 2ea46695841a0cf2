package engine

type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	}
	return "ongoing"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsAttacked reports whether any piece of side by could capture on c. It looks
// outward from c the way each piece kind attacks, so castling never enters
// into it.
func (b *Board) IsAttacked(c Coordinate, by Alliance) bool {
	if !c.IsValid() {
		return false
	}
	if b.rayAttacked(c, by, rookDirs, Rook) || b.rayAttacked(c, by, bishopDirs, Bishop) {
		return true
	}
	if b.leaperAttacked(c, by, knightDirs, Knight) || b.leaperAttacked(c, by, kingDirs, King) {
		return true
	}
	// a pawn of side by attacking c stands one rank behind it
	for _, df := range [...]int{-1, 1} {
		from, ok := c.offset(df, -by.Direction())
		if ok && b.holds(from, by, Pawn) {
			return true
		}
	}
	return false
}

func (b *Board) rayAttacked(c Coordinate, by Alliance, dirs []direction, slider PieceKind) bool {
	for _, dir := range dirs {
		target, ok := c.offset(dir.df, dir.dr)
		for ok {
			tile := b.tiles[target]
			if tile.occupied {
				p := tile.piece
				if p.Alliance == by && (p.Kind == slider || p.Kind == Queen) {
					return true
				}
				break
			}
			target, ok = target.offset(dir.df, dir.dr)
		}
	}
	return false
}

func (b *Board) leaperAttacked(c Coordinate, by Alliance, dirs []direction, kind PieceKind) bool {
	for _, dir := range dirs {
		from, ok := c.offset(dir.df, dir.dr)
		if ok && b.holds(from, by, kind) {
			return true
		}
	}
	return false
}

func (b *Board) holds(c Coordinate, a Alliance, kind PieceKind) bool {
	tile := b.tiles[c]
	return tile.occupied && tile.piece.Alliance == a && tile.piece.Kind == kind
}

// CandidateMoves unions the candidate moves of every piece of side a.
func (b *Board) CandidateMoves(a Alliance) []Move {
	moves := make([]Move, 0, 48)
	for _, tile := range b.tiles {
		if tile.occupied && tile.piece.Alliance == a {
			moves = append(moves, tile.piece.CandidateMoves(b)...)
		}
	}
	return moves
}

// LegalMoves returns the candidate moves of side a that do not leave a's king
// attacked. Each candidate is played on a scratch copy and checked there,
// which covers pins, discovered checks and en-passant along the king's rank.
func (b *Board) LegalMoves(a Alliance) []Move {
	return b.filterLegalMoves(a, b.CandidateMoves(a))
}

func (b *Board) filterLegalMoves(a Alliance, candidates []Move) []Move {
	legal := candidates[:0]
	for _, m := range candidates {
		scratch := b.play(m)
		if !scratch.IsAttacked(scratch.kings[a], a.Opponent()) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (b *Board) hasLegalMove(a Alliance) bool {
	for _, tile := range b.tiles {
		if !tile.occupied || tile.piece.Alliance != a {
			continue
		}
		if len(b.filterLegalMoves(a, tile.piece.CandidateMoves(b))) > 0 {
			return true
		}
	}
	return false
}

func (b *Board) IsInCheck(a Alliance) bool {
	return b.IsAttacked(b.kings[a], a.Opponent())
}

func (b *Board) IsCheckmate(a Alliance) bool {
	return b.IsInCheck(a) && !b.hasLegalMove(a)
}

func (b *Board) IsStalemate(a Alliance) bool {
	return !b.IsInCheck(a) && !b.hasLegalMove(a)
}

// Status classifies the position for the side to move. Mate and stalemate
// take precedence over the fifty-move rule.
func (b *Board) Status() Status {
	a := b.sideToMove
	if !b.hasLegalMove(a) {
		if b.IsInCheck(a) {
			return Checkmate
		}
		return Stalemate
	}
	if b.halfmoveClock >= 100 {
		return FiftyMoveDraw
	}
	return Ongoing
}

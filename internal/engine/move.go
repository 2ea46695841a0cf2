package engine

import "strings"

type MoveKind uint8

const (
	Normal MoveKind = iota
	Capture
	// PawnJump is the two-square advance from the home rank. It opens the
	// en-passant window for one ply.
	PawnJump
	Castle
	EnPassant
	// Promotion covers both quiet and capturing promotions; Captured tells them
	// apart.
	Promotion
)

func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Capture:
		return "capture"
	case PawnJump:
		return "pawn-jump"
	case Castle:
		return "castle"
	case EnPassant:
		return "en-passant"
	case Promotion:
		return "promotion"
	}
	return "unknown"
}

// Move is a fact about one transition on the board it was generated from.
// Moves are comparable with ==.
type Move struct {
	Piece     Piece
	From      Coordinate
	To        Coordinate
	Kind      MoveKind
	Captured  Piece
	Promotion PieceKind
}

func (m Move) IsCapture() bool {
	return !m.Captured.IsZero()
}

func (m Move) IsPromotion() bool {
	return m.Kind == Promotion
}

func (m Move) IsCastle() bool {
	return m.Kind == Castle
}

// String is the long algebraic form used by UCI, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPiece {
		s += strings.ToLower(m.Promotion.Notation())
	}
	return s
}

// capturedAt is where the captured piece stood, which differs from To only for
// en passant.
func (m Move) capturedAt() Coordinate {
	if m.Kind == EnPassant {
		return CoordinateAt(m.To.File(), m.From.Rank())
	}
	return m.To
}

// RookTransit returns the rook's origin and destination for a castle. It is
// only meaningful when m.IsCastle().
func (m Move) RookTransit() (Coordinate, Coordinate) {
	path := castlePaths[castleSideOf(m.To)]
	rank := m.From.Rank()
	return CoordinateAt(path.rookFrom, rank), CoordinateAt(path.rookTo, rank)
}

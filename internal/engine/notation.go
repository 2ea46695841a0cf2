package engine

import "strings"

// Notation renders a legal move of the side to move in standard algebraic
// notation, e.g. "Nbd7", "exd6", "e8=Q+", "O-O-O#".
func (b *Board) Notation(m Move) (string, error) {
	legal := b.LegalMoves(b.sideToMove)
	found := false
	for _, l := range legal {
		if l == m {
			found = true
			break
		}
	}
	if !found {
		return "", &IllegalMoveError{Move: m}
	}

	var sb strings.Builder
	switch {
	case m.Kind == Castle && castleSideOf(m.To) == kingSide:
		sb.WriteString("O-O")
	case m.Kind == Castle:
		sb.WriteString("O-O-O")
	case m.Piece.Kind == Pawn:
		if m.IsCapture() {
			sb.WriteByte(byte('a' + m.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Kind == Promotion {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.Notation())
		}
	default:
		sb.WriteString(m.Piece.Kind.Notation())
		sb.WriteString(disambiguate(m, legal))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	next := b.play(m)
	if opponent := next.sideToMove; next.IsInCheck(opponent) {
		if next.hasLegalMove(opponent) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String(), nil
}

// disambiguate returns the origin file, rank or square needed to tell m apart
// from other legal moves of the same piece kind to the same square.
func disambiguate(m Move, legal []Move) string {
	var rivals, sameFile, sameRank bool
	for _, other := range legal {
		if other.Piece.Kind != m.Piece.Kind || other.To != m.To || other.From == m.From {
			continue
		}
		rivals = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !rivals:
		return ""
	case !sameFile:
		return m.From.String()[:1]
	case !sameRank:
		return m.From.String()[1:]
	}
	return m.From.String()
}

package model

import "github.com/benbeisheim/chesscore/internal/engine"

// WSMove is a move request from a client. Promotion is required only when a
// pawn reaches the last rank.
type WSMove struct {
	From      Position         `json:"from"`
	To        Position         `json:"to"`
	Promotion engine.PieceKind `json:"promotion"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece          Piece            `json:"piece"`
	From           Position         `json:"from"`
	To             Position         `json:"to"`
	CapturedPiece  *Piece           `json:"capturedPiece"`
	CastleRookMove *CastleRookMove  `json:"castleRookMove"`
	Promotion      engine.PieceKind `json:"promotion"`
	Notation       string           `json:"notation"`
}

// Move pairs White's ply with Black's reply, which is nil until played.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type LegalMove struct {
	From      Position         `json:"from"`
	To        Position         `json:"to"`
	Promotion engine.PieceKind `json:"promotion,omitempty"`
	Notation  string           `json:"notation"`
}

func makePly(m engine.Move, notation string) Ply {
	ply := Ply{
		Piece:     pieceOf(m.Piece),
		From:      positionOf(m.From),
		To:        positionOf(m.To),
		Promotion: m.Promotion,
		Notation:  notation,
	}
	if m.IsCapture() {
		captured := pieceOf(m.Captured)
		ply.CapturedPiece = &captured
	}
	if m.IsCastle() {
		rookFrom, rookTo := m.RookTransit()
		ply.CastleRookMove = &CastleRookMove{From: positionOf(rookFrom), To: positionOf(rookTo)}
	}
	return ply
}

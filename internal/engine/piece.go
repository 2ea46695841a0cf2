package engine

import (
	"fmt"
	"strings"
)

type PieceKind uint8

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionKinds lists the pieces a pawn may promote to, strongest first.
var PromotionKinds = [...]PieceKind{Queen, Rook, Bishop, Knight}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// Notation is the algebraic letter of the piece. Pawns have none.
func (k PieceKind) Notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func ParsePieceKind(s string) (PieceKind, error) {
	switch strings.ToLower(s) {
	case "":
		return NoPiece, nil
	case "pawn", "p":
		return Pawn, nil
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "rook", "r":
		return Rook, nil
	case "queen", "q":
		return Queen, nil
	case "king", "k":
		return King, nil
	}
	return NoPiece, fmt.Errorf("unknown piece kind %q", s)
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Piece is stored by value inside its Tile. HasMoved only matters for kings
// and rooks, where it gates castling.
type Piece struct {
	Kind     PieceKind  `json:"type"`
	Alliance Alliance   `json:"color"`
	Position Coordinate `json:"position"`
	HasMoved bool       `json:"hasMoved"`
}

func NewPiece(kind PieceKind, alliance Alliance, position Coordinate) Piece {
	return Piece{Kind: kind, Alliance: alliance, Position: position}
}

func (p Piece) IsZero() bool {
	return p.Kind == NoPiece
}

func (p Piece) String() string {
	if p.IsZero() {
		return "none"
	}
	return p.Alliance.String() + " " + p.Kind.String()
}

// symbol is the diagram letter: upper case for White.
func (p Piece) symbol() string {
	letter := p.Kind.Notation()
	if p.Kind == Pawn {
		letter = "P"
	}
	if p.Alliance == Black {
		return strings.ToLower(letter)
	}
	return letter
}

type direction struct {
	df, dr int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// CandidateMoves returns the moves the piece could make on b by geometry
// alone. Whether a move leaves the mover's king in check is the Board's
// concern.
func (p Piece) CandidateMoves(b *Board) []Move {
	p, ok := b.resync(p)
	if !ok {
		return nil
	}
	switch p.Kind {
	case Pawn:
		return pawnMoves(b, p)
	case Knight:
		return leaperMoves(b, p, knightDirs)
	case Bishop:
		return sliderMoves(b, p, bishopDirs)
	case Rook:
		return sliderMoves(b, p, rookDirs)
	case Queen:
		return sliderMoves(b, p, queenDirs)
	case King:
		return append(leaperMoves(b, p, kingDirs), castleMoves(b, p)...)
	}
	return nil
}

// stepTo builds the move of p onto target, or reports false when target is
// held by p's own side.
func stepTo(b *Board, p Piece, target Coordinate) (Move, bool) {
	tile := b.tiles[target]
	if !tile.occupied {
		return Move{Piece: p, From: p.Position, To: target, Kind: Normal}, true
	}
	if tile.piece.Alliance == p.Alliance {
		return Move{}, false
	}
	return Move{Piece: p, From: p.Position, To: target, Kind: Capture, Captured: tile.piece}, true
}

func leaperMoves(b *Board, p Piece, dirs []direction) []Move {
	moves := make([]Move, 0, len(dirs))
	for _, dir := range dirs {
		target, ok := p.Position.offset(dir.df, dir.dr)
		if !ok {
			continue
		}
		if move, ok := stepTo(b, p, target); ok {
			moves = append(moves, move)
		}
	}
	return moves
}

func sliderMoves(b *Board, p Piece, dirs []direction) []Move {
	moves := make([]Move, 0, 14)
	for _, dir := range dirs {
		target, ok := p.Position.offset(dir.df, dir.dr)
		for ok {
			move, free := stepTo(b, p, target)
			if !free {
				break
			}
			moves = append(moves, move)
			if move.Kind == Capture {
				break
			}
			target, ok = target.offset(dir.df, dir.dr)
		}
	}
	return moves
}

func pawnMoves(b *Board, p Piece) []Move {
	moves := make([]Move, 0, 4)
	forward := p.Alliance.Direction()

	// pushes
	if one, ok := p.Position.offset(0, forward); ok && !b.tiles[one].occupied {
		moves = appendPawnMove(moves, p, Move{Piece: p, From: p.Position, To: one, Kind: Normal})
		if p.Position.Rank() == p.Alliance.PawnHomeRank() {
			if two, ok := one.offset(0, forward); ok && !b.tiles[two].occupied {
				moves = append(moves, Move{Piece: p, From: p.Position, To: two, Kind: PawnJump})
			}
		}
	}

	// captures
	for _, df := range [...]int{-1, 1} {
		target, ok := p.Position.offset(df, forward)
		if !ok {
			continue
		}
		tile := b.tiles[target]
		switch {
		case tile.occupied && tile.piece.Alliance != p.Alliance:
			moves = appendPawnMove(moves, p, Move{Piece: p, From: p.Position, To: target, Kind: Capture, Captured: tile.piece})
		case !tile.occupied && target == b.enPassantTarget && p.Alliance == b.sideToMove:
			victim, ok := b.enPassantVictim(p, target)
			if ok {
				moves = append(moves, Move{Piece: p, From: p.Position, To: target, Kind: EnPassant, Captured: victim})
			}
		}
	}
	return moves
}

// appendPawnMove expands a move onto the promotion rank into one move per
// promotion choice.
func appendPawnMove(moves []Move, p Piece, move Move) []Move {
	if move.To.Rank() != p.Alliance.PromotionRank() {
		return append(moves, move)
	}
	for _, kind := range PromotionKinds {
		promo := move
		promo.Kind = Promotion
		promo.Promotion = kind
		moves = append(moves, promo)
	}
	return moves
}

// castleMoves checks both castling candidates for an unmoved king on its home
// square.
func castleMoves(b *Board, king Piece) []Move {
	if king.HasMoved || king.Position != kingHome(king.Alliance) {
		return nil
	}
	var moves []Move
	for _, side := range [...]castleSide{kingSide, queenSide} {
		if !b.castling.has(king.Alliance, side) {
			continue
		}
		path := castlePaths[side]
		rank := king.Alliance.BackRank()
		rookTile := b.tiles[CoordinateAt(path.rookFrom, rank)]
		if !rookTile.occupied || rookTile.piece.Kind != Rook || rookTile.piece.Alliance != king.Alliance || rookTile.piece.HasMoved {
			continue
		}
		if !b.filesEmpty(rank, path.empty) {
			continue
		}
		if b.IsInCheck(king.Alliance) || b.filesAttacked(rank, path.safe, king.Alliance.Opponent()) {
			continue
		}
		moves = append(moves, Move{Piece: king, From: king.Position, To: CoordinateAt(path.kingTo, rank), Kind: Castle})
	}
	return moves
}

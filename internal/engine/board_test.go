package engine

import (
	"errors"
	"testing"
)

func TestInitialPositionLegalMoves(t *testing.T) {
	b := InitialPosition()
	if b.SideToMove() != White {
		t.Fatalf("white should move first")
	}
	if b.CastlingRights() != AllCastlingRights {
		t.Fatalf("expected all castling rights, got %s", b.CastlingRights())
	}
	for _, a := range []Alliance{White, Black} {
		pieces := b.Pieces(a)
		if len(pieces) != 16 {
			t.Fatalf("expected 16 %s pieces, got %d", a, len(pieces))
		}
		for _, p := range pieces {
			if p.HasMoved || p.Alliance != a {
				t.Fatalf("unexpected piece %+v", p)
			}
		}
	}
	moves := b.LegalMoves(White)
	if len(moves) != 20 {
		t.Fatalf("expected 20 legal moves, got %d: %v", len(moves), uciList(moves))
	}
	var pawns, knights int
	for _, m := range moves {
		switch m.Piece.Kind {
		case Pawn:
			pawns++
		case Knight:
			knights++
		}
	}
	if pawns != 16 || knights != 4 {
		t.Fatalf("expected 16 pawn and 4 knight moves, got %d and %d", pawns, knights)
	}
	if got := len(b.LegalMoves(Black)); got != 20 {
		t.Fatalf("expected 20 black moves in the initial layout, got %d", got)
	}
}

func TestQueenH4BlockedThenOpen(t *testing.T) {
	b := playLine(t, InitialPosition(), "e2e4")
	if hasUCI(b.LegalMoves(Black), "d8h4") {
		t.Fatalf("Qh4 should be blocked by the e7 pawn")
	}

	b = playLine(t, b, "e7e5", "g1f3")
	moves := b.LegalMoves(Black)
	if len(moves) != 29 {
		t.Fatalf("expected 29 black moves after 1.e4 e5 2.Nf3, got %d: %v", len(moves), uciList(moves))
	}
	if !hasUCI(moves, "d8h4") {
		t.Fatalf("d8-h4 diagonal is open after ...e5, Qh4 should be legal")
	}
}

func TestFoolsMate(t *testing.T) {
	b := playLine(t, InitialPosition(), "f2f3", "e7e5", "g2g4", "d8h4")
	if !b.IsInCheck(White) {
		t.Fatalf("white should be in check")
	}
	if !b.IsCheckmate(White) {
		t.Fatalf("expected checkmate\n%s", b)
	}
	if b.IsStalemate(White) {
		t.Fatalf("checkmate is not stalemate")
	}
	if moves := b.LegalMoves(White); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", uciList(moves))
	}
	if b.Status() != Checkmate {
		t.Fatalf("expected status checkmate, got %s", b.Status())
	}
}

func TestStalemate(t *testing.T) {
	b := diagram(t, Black,
		"k.......",
		"........",
		".QK.....",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	if b.IsInCheck(Black) {
		t.Fatalf("black is not in check")
	}
	if !b.IsStalemate(Black) {
		t.Fatalf("expected stalemate, legal moves %v", uciList(b.LegalMoves(Black)))
	}
	if b.IsCheckmate(Black) {
		t.Fatalf("stalemate is not checkmate")
	}
	if b.Status() != Stalemate {
		t.Fatalf("expected status stalemate, got %s", b.Status())
	}
}

func TestPinnedPieceCannotLeaveTheLine(t *testing.T) {
	b := diagram(t, White,
		"k...r...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....N...",
		"....K...",
	)
	for _, m := range b.LegalMoves(White) {
		if m.Piece.Kind == Knight {
			t.Fatalf("pinned knight moved: %s", m)
		}
	}
	knight, _ := b.PieceAt(sq(t, "e2"))
	if len(knight.CandidateMoves(b)) == 0 {
		t.Fatalf("candidates are geometric and should still list knight moves")
	}
}

func TestDiscoveredCheckIsDetected(t *testing.T) {
	b := diagram(t, White,
		"....k...",
		"........",
		"........",
		"........",
		"....N...",
		"........",
		"........",
		"....R.K.",
	)
	if b.IsInCheck(Black) {
		t.Fatalf("knight blocks the file")
	}
	b = playLine(t, b, "e4f6")
	if !b.IsInCheck(Black) {
		t.Fatalf("moving the knight should discover check from the rook")
	}
	for _, m := range b.LegalMoves(Black) {
		next, err := b.ApplyMove(m)
		if err != nil {
			t.Fatal(err)
		}
		if next.IsInCheck(Black) {
			t.Fatalf("%s leaves black in check", m)
		}
	}
}

func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	positions := map[string]*Board{
		"initial":  InitialPosition(),
		"kiwipete": kiwipete(t),
		"position3": diagram(t, White,
			"........",
			"..p.....",
			"...p....",
			"KP.....r",
			".R...p.k",
			"........",
			"....P.P.",
			"........",
		),
	}
	for name, b := range positions {
		for _, a := range []Alliance{White, Black} {
			for _, m := range b.LegalMoves(a) {
				next := b.play(m)
				if next.IsAttacked(next.KingCoordinate(a), a.Opponent()) {
					t.Fatalf("%s: %s %s leaves the king attacked", name, a, m)
				}
			}
		}
	}
}

func TestBuilderRejectsBadPositions(t *testing.T) {
	if _, err := NewBuilder().Place(NewPiece(King, White, 4)).Build(); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("missing black king: expected ErrInvalidPosition, got %v", err)
	}
	_, err := NewBuilder().
		Place(NewPiece(King, White, 4)).
		Place(NewPiece(King, White, 5)).
		Place(NewPiece(King, Black, 60)).
		Build()
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("two white kings: expected ErrInvalidPosition, got %v", err)
	}
	_, err = NewBuilder().Place(NewPiece(Rook, White, 64)).Build()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("piece off the board: expected ErrOutOfBounds, got %v", err)
	}
	_, err = NewBuilder().
		Place(NewPiece(King, White, 4)).
		Place(NewPiece(King, Black, 60)).
		SetSideToMove(Black).
		SetEnPassantTarget(sq(t, "e3")).
		Build()
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("en-passant target without pawn: expected ErrInvalidPosition, got %v", err)
	}
	_, err = NewBuilder().
		Place(NewPiece(King, Black, sq(t, "e8"))).
		Place(NewPiece(Rook, White, sq(t, "e1"))).
		Place(NewPiece(King, White, sq(t, "f1"))).
		Build()
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("black in check with white to move: expected ErrInvalidPosition, got %v", err)
	}
}

func TestBuilderTrimsCastlingRights(t *testing.T) {
	b := diagram(t, White,
		"r...k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K..R",
	)
	want := CastlingRights{WhiteKingSide: true, BlackQueenSide: true}
	if got := b.CastlingRights(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestTileAtBounds(t *testing.T) {
	b := InitialPosition()
	if _, err := b.TileAt(64); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	tile, err := b.TileAt(sq(t, "d8"))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := tile.Piece()
	if !ok || p.Kind != Queen || p.Alliance != Black {
		t.Fatalf("expected black queen on d8, got %v", p)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := InitialPosition()
	clone := b.Clone()
	if !clone.Equal(b) {
		t.Fatalf("clone differs from original")
	}
	clone.tiles[sq(t, "e2")] = emptyTiles[sq(t, "e2")]
	if _, ok := b.PieceAt(sq(t, "e2")); !ok {
		t.Fatalf("changing the clone changed the original")
	}
	if clone.Equal(b) {
		t.Fatalf("Equal should see the difference")
	}
}

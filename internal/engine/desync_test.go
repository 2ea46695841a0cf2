package engine

import (
	"errors"
	"testing"
)

func TestValidateReportsDesync(t *testing.T) {
	b := InitialPosition()
	if err := b.Validate(); err != nil {
		t.Fatalf("initial position: %v", err)
	}
	corrupt := b.Clone()
	e2 := sq(t, "e2")
	corrupt.tiles[e2].piece.Position = sq(t, "e4")
	err := corrupt.Validate()
	if !errors.Is(err, ErrDesync) {
		t.Fatalf("expected ErrDesync, got %v", err)
	}
	var desync *DesyncError
	if !errors.As(err, &desync) || desync.Tile.Coordinate() != e2 {
		t.Fatalf("expected desync on e2, got %v", err)
	}
}

func TestCandidateMovesWithStalePiece(t *testing.T) {
	b := InitialPosition()
	pawn, _ := b.PieceAt(sq(t, "e2"))
	stale := pawn
	stale.Position = sq(t, "e4")

	if debugChecks {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrDesync) {
				t.Fatalf("expected a DesyncError panic, got %v", r)
			}
		}()
		stale.CandidateMoves(b)
		t.Fatalf("expected panic")
	}

	// the board is trusted: e4 is empty, so there is nothing to move
	if moves := stale.CandidateMoves(b); len(moves) != 0 {
		t.Fatalf("expected no moves for a piece on an empty tile, got %v", uciList(moves))
	}

	// same tile, stale flags: the tile's piece wins
	flagged := pawn
	flagged.HasMoved = true
	got := uciList(flagged.CandidateMoves(b))
	want := uciList(pawn.CandidateMoves(b))
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

package engine

import (
	"sort"
	"testing"
)

// diagram builds a board from eight rows, rank 8 first. Upper case is White,
// "." is an empty square.
func diagram(t *testing.T, side Alliance, rows ...string) *Board {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("diagram needs 8 rows, got %d", len(rows))
	}
	builder := NewBuilder().SetSideToMove(side)
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d %q is not 8 squares", i, row)
		}
		rank := 7 - i
		for file, ch := range row {
			if ch == '.' {
				continue
			}
			kind, err := ParsePieceKind(string(ch))
			if err != nil {
				t.Fatalf("row %d: %v", i, err)
			}
			alliance := White
			if ch >= 'a' && ch <= 'z' {
				alliance = Black
			}
			builder.Place(NewPiece(kind, alliance, CoordinateAt(file, rank)))
		}
	}
	b, err := builder.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return b
}

func sq(t *testing.T, s string) Coordinate {
	t.Helper()
	c, err := ParseCoordinate(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// findUCI returns the legal move written in long algebraic form.
func findUCI(t *testing.T, b *Board, uci string) Move {
	t.Helper()
	if len(uci) < 4 {
		t.Fatalf("bad move %q", uci)
	}
	promo := NoPiece
	if len(uci) == 5 {
		var err error
		if promo, err = ParsePieceKind(uci[4:]); err != nil {
			t.Fatal(err)
		}
	}
	m, err := b.FindMove(sq(t, uci[:2]), sq(t, uci[2:4]), promo)
	if err != nil {
		t.Fatalf("%s: %v\n%s", uci, err, b)
	}
	return m
}

// playLine applies the moves in order and returns the final board.
func playLine(t *testing.T, b *Board, line ...string) *Board {
	t.Helper()
	for _, uci := range line {
		next, err := b.ApplyMove(findUCI(t, b, uci))
		if err != nil {
			t.Fatalf("apply %s: %v", uci, err)
		}
		b = next
	}
	return b
}

func uciList(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func hasUCI(moves []Move, uci string) bool {
	for _, m := range moves {
		if m.String() == uci {
			return true
		}
	}
	return false
}

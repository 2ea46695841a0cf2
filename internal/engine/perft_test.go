package engine

import "testing"

func kiwipete(t *testing.T) *Board {
	t.Helper()
	return diagram(t, White,
		"r...k..r",
		"p.ppqpb.",
		"bn..pnp.",
		"...PN...",
		".p..P...",
		"..N..Q.p",
		"PPPBBPPP",
		"R...K..R",
	)
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		board func(t *testing.T) *Board
		want  []uint64
	}{
		{
			name:  "Initial",
			board: func(*testing.T) *Board { return InitialPosition() },
			want:  []uint64{20, 400, 8902},
		},
		{
			name:  "Kiwipete",
			board: kiwipete,
			want:  []uint64{48, 2039},
		},
		{
			name: "Position3",
			board: func(t *testing.T) *Board {
				return diagram(t, White,
					"........",
					"..p.....",
					"...p....",
					"KP.....r",
					".R...p.k",
					"........",
					"....P.P.",
					"........",
				)
			},
			want: []uint64{14, 191, 2812},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := tt.board(t)
			for i, want := range tt.want {
				depth := i + 1
				if depth == 3 && testing.Short() {
					continue
				}
				if got := Perft(b, depth); got != want {
					t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := kiwipete(t)
	div := PerftDivide(b, 2)
	if len(div) != 48 {
		t.Fatalf("expected 48 root moves, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide sums to %d, want 2039", sum)
	}
}

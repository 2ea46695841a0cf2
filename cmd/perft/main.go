package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chesscore/internal/engine"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	moves := flag.String("moves", "", "Space-separated moves in long algebraic form (e2e4 e7e5) played from the initial position first")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board := engine.InitialPosition()
	for _, s := range strings.Fields(*moves) {
		next, err := playUCI(board, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "move %q: %v\n", s, err)
			os.Exit(2)
		}
		board = next
	}

	if *divide {
		div := engine.PerftDivide(board, *depth)
		counts := make(map[string]uint64, len(div))
		var sum uint64
		for m, n := range div {
			counts[m.String()] = n
			sum += n
		}
		keys := maps.Keys(counts)
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := engine.Perft(board, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes)
	if secs := elapsed.Seconds(); secs > 0 {
		nps /= secs
	}
	fmt.Printf("depth=%d nodes=%d time=%s nps=%.0f\n", *depth, nodes, elapsed.Round(time.Millisecond), nps)
}

// playUCI applies a move such as "e2e4" or "e7e8q" to b.
func playUCI(b *engine.Board, s string) (*engine.Board, error) {
	if len(s) != 4 && len(s) != 5 {
		return nil, fmt.Errorf("expected 4 or 5 characters")
	}
	from, err := engine.ParseCoordinate(s[:2])
	if err != nil {
		return nil, err
	}
	to, err := engine.ParseCoordinate(s[2:4])
	if err != nil {
		return nil, err
	}
	promotion, err := engine.ParsePieceKind(s[4:])
	if err != nil {
		return nil, err
	}
	m, err := b.FindMove(from, to, promotion)
	if err != nil {
		return nil, err
	}
	return b.ApplyMove(m)
}

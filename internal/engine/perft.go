package engine

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves(b.sideToMove)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := b.play(m)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// PerftDivide splits the perft count by root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	div := make(map[Move]uint64)
	if depth <= 0 {
		return div
	}
	for _, m := range b.LegalMoves(b.sideToMove) {
		next := b.play(m)
		div[m] = Perft(&next, depth-1)
	}
	return div
}

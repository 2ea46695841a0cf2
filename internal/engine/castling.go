package engine

// CastlingRights records which castles each side may still perform. A right
// is lost for good once the king or the matching rook leaves home.
type CastlingRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

var AllCastlingRights = CastlingRights{true, true, true, true}

type castleSide uint8

const (
	kingSide castleSide = iota
	queenSide
)

// castlePath lists, by file, the squares involved in one castle.
type castlePath struct {
	rookFrom, rookTo, kingTo int
	empty                    []int
	safe                     []int
}

var castlePaths = [...]castlePath{
	kingSide:  {rookFrom: 7, rookTo: 5, kingTo: 6, empty: []int{5, 6}, safe: []int{5, 6}},
	queenSide: {rookFrom: 0, rookTo: 3, kingTo: 2, empty: []int{1, 2, 3}, safe: []int{2, 3}},
}

func kingHome(a Alliance) Coordinate {
	return CoordinateAt(4, a.BackRank())
}

func (r CastlingRights) has(a Alliance, side castleSide) bool {
	switch {
	case a == White && side == kingSide:
		return r.WhiteKingSide
	case a == White:
		return r.WhiteQueenSide
	case side == kingSide:
		return r.BlackKingSide
	default:
		return r.BlackQueenSide
	}
}

func (r *CastlingRights) clear(a Alliance, side castleSide) {
	switch {
	case a == White && side == kingSide:
		r.WhiteKingSide = false
	case a == White:
		r.WhiteQueenSide = false
	case side == kingSide:
		r.BlackKingSide = false
	default:
		r.BlackQueenSide = false
	}
}

// touch drops every right that depends on a piece standing on c. It is called
// for both the origin and the destination of a move, which covers king moves,
// rook moves and rook captures alike.
func (r *CastlingRights) touch(c Coordinate) {
	for _, a := range [...]Alliance{White, Black} {
		rank := a.BackRank()
		switch c {
		case kingHome(a):
			r.clear(a, kingSide)
			r.clear(a, queenSide)
		case CoordinateAt(castlePaths[kingSide].rookFrom, rank):
			r.clear(a, kingSide)
		case CoordinateAt(castlePaths[queenSide].rookFrom, rank):
			r.clear(a, queenSide)
		}
	}
}

func (r CastlingRights) String() string {
	s := ""
	if r.WhiteKingSide {
		s += "K"
	}
	if r.WhiteQueenSide {
		s += "Q"
	}
	if r.BlackKingSide {
		s += "k"
	}
	if r.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// castleSideOf reports which castle a king move from its home square to to
// performs.
func castleSideOf(to Coordinate) castleSide {
	if to.File() == castlePaths[kingSide].kingTo {
		return kingSide
	}
	return queenSide
}

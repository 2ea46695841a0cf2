package engine

// Tile is one square of a board. Its occupancy is fixed when it is built.
type Tile struct {
	coordinate Coordinate
	occupied   bool
	piece      Piece
}

// emptyTiles is built once and only ever copied out.
var emptyTiles = func() [TileCount]Tile {
	var tiles [TileCount]Tile
	for i := range tiles {
		tiles[i] = Tile{coordinate: Coordinate(i)}
	}
	return tiles
}()

// NewTile builds the tile at coordinate holding piece, or the cached empty
// tile when piece is nil. The piece's Position is set to coordinate.
func NewTile(coordinate Coordinate, piece *Piece) (Tile, error) {
	if !coordinate.IsValid() {
		return Tile{}, &OutOfBoundsError{Coordinate: int(coordinate)}
	}
	if piece == nil || piece.IsZero() {
		return emptyTiles[coordinate], nil
	}
	return occupiedTile(coordinate, *piece), nil
}

func occupiedTile(coordinate Coordinate, piece Piece) Tile {
	piece.Position = coordinate
	return Tile{coordinate: coordinate, occupied: true, piece: piece}
}

func (t Tile) Coordinate() Coordinate {
	return t.coordinate
}

func (t Tile) IsOccupied() bool {
	return t.occupied
}

func (t Tile) Piece() (Piece, bool) {
	return t.piece, t.occupied
}

func (t Tile) String() string {
	if !t.occupied {
		return "-"
	}
	return t.piece.symbol()
}

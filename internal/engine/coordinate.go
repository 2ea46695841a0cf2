package engine

import "fmt"

// Coordinate indexes one of the 64 tiles. a1 is 0, h1 is 7 and h8 is 63.
type Coordinate int

const (
	TileCount = 64

	NoCoordinate Coordinate = -1
)

func CoordinateAt(file, rank int) Coordinate {
	if !onBoard(file, rank) {
		return NoCoordinate
	}
	return Coordinate(rank*8 + file)
}

func (c Coordinate) IsValid() bool {
	return c >= 0 && c < TileCount
}

func (c Coordinate) File() int {
	return int(c) % 8
}

func (c Coordinate) Rank() int {
	return int(c) / 8
}

// offset returns the coordinate df files and dr ranks away, or false when
// that leaves the board.
func (c Coordinate) offset(df, dr int) (Coordinate, bool) {
	file, rank := c.File()+df, c.Rank()+dr
	if !onBoard(file, rank) {
		return NoCoordinate, false
	}
	return Coordinate(rank*8 + file), true
}

func (c Coordinate) String() string {
	if !c.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+c.File(), c.Rank()+1)
}

func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoCoordinate, fmt.Errorf("invalid square %q", s)
	}
	return CoordinateAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Coordinate) UnmarshalText(text []byte) error {
	if string(text) == "-" || len(text) == 0 {
		*c = NoCoordinate
		return nil
	}
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

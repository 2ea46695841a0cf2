package engine

import "fmt"

// Alliance is the side a piece or a move belongs to.
type Alliance uint8

const (
	White Alliance = iota
	Black
)

func (a Alliance) Opponent() Alliance {
	if a == White {
		return Black
	}
	return White
}

// Direction is the rank delta of a pawn advance.
func (a Alliance) Direction() int {
	if a == White {
		return 1
	}
	return -1
}

func (a Alliance) PawnHomeRank() int {
	if a == White {
		return 1
	}
	return 6
}

func (a Alliance) PromotionRank() int {
	if a == White {
		return 7
	}
	return 0
}

// BackRank is the rank the king and rooks start on.
func (a Alliance) BackRank() int {
	if a == White {
		return 0
	}
	return 7
}

func (a Alliance) String() string {
	switch a {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Alliance(%d)", uint8(a))
}

func ParseAlliance(s string) (Alliance, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown alliance %q", s)
}

func (a Alliance) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Alliance) UnmarshalText(text []byte) error {
	parsed, err := ParseAlliance(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

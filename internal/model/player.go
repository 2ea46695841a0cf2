package model

import "github.com/benbeisheim/chesscore/internal/engine"

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    PlayerColor `json:"color"`
	TimeLeft int         `json:"timeLeft"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(a engine.Alliance) PlayerColor {
	if a == engine.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (c PlayerColor) alliance() engine.Alliance {
	if c == PlayerColorBlack {
		return engine.Black
	}
	return engine.White
}

package model

import "errors"

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotInGame     = errors.New("player not in game")
	ErrGameOver      = errors.New("game is over")
	ErrAlreadyQueued = errors.New("player already in queue")
	ErrUnauthorized  = errors.New("not authorized to join this game")
)

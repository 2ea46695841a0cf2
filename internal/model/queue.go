package model

import (
	"sync"
	"time"
)

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// MatchFoundEvent is sent to each of the two players paired by matchmaking.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		Player:   player,
		JoinedAt: time.Now(),
	})
	return nil
}

// RemovePlayer drops a waiting player and reports whether they were queued.
func (q *Queue) RemovePlayer(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetNextPair pops the two players who have been waiting longest. ok is false
// when fewer than two are queued.
func (q *Queue) GetNextPair() (QueuedPlayer, QueuedPlayer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	first, second := q.players[0], q.players[1]
	q.players = q.players[2:]

	return first, second, true
}

// Position is the 1-based place of playerID in the queue.
func (q *Queue) Position(playerID string) (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			return i + 1, true
		}
	}
	return 0, false
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}

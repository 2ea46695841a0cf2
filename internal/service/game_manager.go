// service/game_manager.go
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type Config struct {
	// ClockTime is each side's initial time.
	ClockTime time.Duration
	// MatchmakingInterval is how often the queue is checked for pairs.
	MatchmakingInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		ClockTime:           10 * time.Minute,
		MatchmakingInterval: time.Second,
	}
}

type GameManager struct {
	cfg              Config
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	matches          map[string]model.MatchFoundEvent // playerID -> last match
	mu               sync.RWMutex
}

// NewGameManager starts the matchmaking loop, which runs until ctx is done.
func NewGameManager(ctx context.Context, cfg Config) *GameManager {
	gm := &GameManager{
		cfg:              cfg,
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		matches:          make(map[string]model.MatchFoundEvent),
	}

	go gm.processMatchmaking(ctx)

	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// A newer registration replaces the old one; closing tells the old
	// listener to give up.
	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel removes ch if it is still the registered
// channel. The manager closes channels it removes itself; the listener only
// stops reading.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) processMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(gm.cfg.MatchmakingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair pairs the two longest-waiting players into a new game and
// notifies them. It reports whether a pair was made.
func (gm *GameManager) matchNextPair() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	first, second, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID, gm.cfg.ClockTime)
	for _, queued := range []model.QueuedPlayer{first, second} {
		player := queued.Player
		color, err := game.AddPlayer(player.ID)
		if err != nil {
			log.Printf("matchmaking: add %s to game %s: %v", player.ID, gameID, err)
			return true
		}
		event := model.MatchFoundEvent{GameID: gameID, Color: color}
		gm.matches[player.ID] = event
		gm.notifyMatch(player.ID, event)
	}
	gm.games[gameID] = game
	log.Printf("matchmaking: game %s created for %s (waited %s) and %s (waited %s)",
		gameID, first.Player.ID, time.Since(first.JoinedAt).Round(time.Millisecond),
		second.Player.ID, time.Since(second.JoinedAt).Round(time.Millisecond))
	return true
}

// notifyMatch sends event on the player's channel, if any, and retires the
// channel. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
		log.Printf("matchmaking: listener for %s is not ready, event dropped", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, gm.cfg.ClockTime)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matches, playerID)
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.RemovePlayer(playerID)
}

// QueuePosition is the player's 1-based place in the matchmaking queue.
func (gm *GameManager) QueuePosition(playerID string) (int, bool) {
	return gm.queue.Position(playerID)
}

// MatchFor returns the last match made for playerID, for clients that poll
// instead of listening on a websocket.
func (gm *GameManager) MatchFor(playerID string) (model.MatchFoundEvent, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	event, ok := gm.matches[playerID]
	return event, ok
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Undo(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(conn, msg)
}

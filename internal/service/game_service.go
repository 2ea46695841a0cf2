package service

import (
	"fmt"

	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) QueuePosition(playerID string) (int, bool) {
	return gs.gameManager.QueuePosition(playerID)
}

func (gs *GameService) MatchFor(playerID string) (model.MatchFoundEvent, bool) {
	return gs.gameManager.MatchFor(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string) ([]model.LegalMove, error) {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return nil, err
	}
	return state.LegalMoves, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) Undo(gameID string, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, msg ws.Message) error {
	return gs.gameManager.Send(gameID, conn, msg)
}

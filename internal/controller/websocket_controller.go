package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/service"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs for the lifetime of a game socket. Moves, undos and
// resignations come in; state goes out through the game's broadcast.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: register connection for %s: %v", gameID, playerID, err)
		c.WriteJSON(errorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("game %s: parse message from %s: %v", gameID, playerID, err)
			wsc.sendError(gameID, c, err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(gameID, c, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeUndo:
		return wsc.gameService.Undo(gameID, playerID)
	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID string, c *websocket.Conn, err error) {
	if err := wsc.gameService.Send(gameID, c, errorMessage(err)); err != nil {
		log.Printf("game %s: send error: %v", gameID, err)
	}
}

func errorMessage(err error) ws.Message {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	return ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}
}

// HandleMatchmaking queues the player and holds the socket open until a
// match is found or the client goes away.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	matches := make(chan model.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, matches)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, matches)

	// A reconnecting player keeps their place in the queue.
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		log.Printf("matchmaking: join %s: %v", playerID, err)
		c.WriteJSON(errorMessage(err))
		return
	}

	// The client sends nothing; a read error means it disconnected.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-matches:
		if !ok {
			// replaced by a newer matchmaking socket for the same player
			return
		}
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("matchmaking: marshal event for %s: %v", playerID, err)
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: payload}); err != nil {
			log.Printf("matchmaking: notify %s: %v", playerID, err)
		}
	case <-closed:
		log.Printf("matchmaking: %s disconnected", playerID)
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

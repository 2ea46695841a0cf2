package controller

import (
	"errors"

	"github.com/benbeisheim/chesscore/internal/engine"
	"github.com/benbeisheim/chesscore/internal/model"
	"github.com/benbeisheim/chesscore/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps service and model errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case model.IsMoveError(err):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, engine.ErrNothingToUndo):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves lists the moves available to the side to move.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body: " + err.Error(),
		})
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	if err := gc.gameService.Undo(c.Params("gameId"), c.Locals("playerID").(string)); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	if err := gc.gameService.Resign(c.Params("gameId"), c.Locals("playerID").(string)); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// MatchmakingStatus lets clients without a matchmaking socket poll for their
// game.
func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	if position, queued := gc.gameService.QueuePosition(playerID); queued {
		return c.JSON(fiber.Map{
			"status":   "queued",
			"position": position,
		})
	}
	event, ok := gc.gameService.MatchFor(playerID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player is not in matchmaking",
		})
	}
	return c.JSON(fiber.Map{
		"status": "matched",
		"gameId": event.GameID,
		"color":  event.Color,
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.gameService.LeaveMatchmaking(c.Locals("playerID").(string))
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

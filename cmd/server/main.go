package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/chesscore/internal/controller"
	"github.com/benbeisheim/chesscore/internal/middleware"
	"github.com/benbeisheim/chesscore/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func main() {
	defaults := service.DefaultConfig()
	addr := flag.String("addr", ":3000", "listen address")
	origins := flag.String("origins", "http://localhost:5173", "comma-separated allowed origins")
	clockTime := flag.Duration("clock", defaults.ClockTime, "time per side")
	interval := flag.Duration("matchmaking-interval", defaults.MatchmakingInterval, "how often the matchmaking queue is drained")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	gameManager := service.NewGameManager(ctx, service.Config{
		ClockTime:           *clockTime,
		MatchmakingInterval: *interval,
	})
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         strings.Split(*origins, ","),
	}
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/status", gameController.MatchmakingStatus)
	gameRoutes.Post("/matchmaking/leave", gameController.LeaveMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Post("/:gameId/resign", gameController.Resign)

	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chesscore/internal/model"
)

func newTestManager(t *testing.T) *GameManager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewGameManager(ctx, Config{ClockTime: time.Minute, MatchmakingInterval: 10 * time.Millisecond})
}

func TestCreateAndJoinGame(t *testing.T) {
	gs := NewGameService(newTestManager(t))
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	if color, err := gs.JoinGame(gameID, "alice"); err != nil || color != model.PlayerColorWhite {
		t.Fatalf("alice: %v %v", color, err)
	}
	if color, err := gs.JoinGame(gameID, "bob"); err != nil || color != model.PlayerColorBlack {
		t.Fatalf("bob: %v %v", color, err)
	}
	moves, err := gs.LegalMoves(gameID)
	if err != nil || len(moves) != 20 {
		t.Fatalf("expected 20 legal moves, got %d (%v)", len(moves), err)
	}

	move := model.WSMove{From: model.Position{X: 4, Y: 6}, To: model.Position{X: 4, Y: 4}}
	if err := gs.HandleMove(gameID, "alice", move); err != nil {
		t.Fatal(err)
	}
	state, err := gs.GetGameState(gameID)
	if err != nil || state.ToMove != model.PlayerColorBlack {
		t.Fatalf("expected black to move, got %v (%v)", state.ToMove, err)
	}
	if err := gs.Undo(gameID, "bob"); err != nil {
		t.Fatal(err)
	}

	if _, err := gs.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := gs.HandleMove("missing", "alice", move); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestCreateGameTwice(t *testing.T) {
	gm := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatal(err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Fatalf("expected ErrGameExists, got %v", err)
	}
}

func TestMatchmakingPairsPlayers(t *testing.T) {
	gm := newTestManager(t)
	chA := make(chan model.MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("a", chA)

	if err := gm.JoinMatchmaking("a"); err != nil {
		t.Fatal(err)
	}
	if err := gm.JoinMatchmaking("b"); err != nil {
		t.Fatal(err)
	}

	var event model.MatchFoundEvent
	select {
	case ev, ok := <-chA:
		if !ok {
			t.Fatalf("channel closed without an event")
		}
		event = ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no match within 2s")
	}
	if event.Color != model.PlayerColorWhite || event.GameID == "" {
		t.Fatalf("unexpected event %+v", event)
	}

	polled, ok := gm.MatchFor("b")
	if !ok || polled.GameID != event.GameID || polled.Color != model.PlayerColorBlack {
		t.Fatalf("b should be able to poll the match, got %+v %v", polled, ok)
	}
	game, err := gm.GetGame(event.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if !game.IsPlayerInGame("a") || !game.IsPlayerInGame("b") {
		t.Fatalf("both players should be seated")
	}
}

func TestReRegisterClosesOldChannel(t *testing.T) {
	gm := newTestManager(t)
	old := make(chan model.MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("a", old)
	gm.RegisterMatchmakingChannel("a", make(chan model.MatchFoundEvent, 1))
	if _, ok := <-old; ok {
		t.Fatalf("old channel should be closed")
	}
}

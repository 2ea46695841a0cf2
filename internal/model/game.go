package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chesscore/internal/engine"
	"github.com/benbeisheim/chesscore/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// stateWriter is the part of a websocket connection a game writes to.
type stateWriter interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game. Updates go through pending: at most
// one drain goroutine runs per game and it always sends the newest state, so
// a client never receives an older state after a newer one.
type GameConnections struct {
	connections map[string]stateWriter // playerID -> connection
	mu          sync.Mutex

	queueMu  sync.Mutex
	pending  *GameState
	draining bool
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	history     []Move
	players     Players
	resolve     *string
	sound       string
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the snapshot sent to clients. It is rebuilt after every change
// and never modified in place, so a copy can be marshalled without the lock.
type GameState struct {
	Seq             uint64         `json:"seq"`
	Sound           string         `json:"sound"`
	Board           *BoardState    `json:"boardState"`
	ToMove          PlayerColor    `json:"toMove"`
	MoveHistory     []Move         `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	IsCheck         bool           `json:"isCheck"`
	LegalMoves      []LegalMove    `json:"legalMoves"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	Resolve         *string        `json:"resolve"`
	Players         Players        `json:"players"`
	LastMove        *SimpleMove    `json:"lastMove"`
}

// CapturedPieces lists, per side, the enemy pieces that side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, clock time.Duration) *Game {
	g := &Game{
		ID:          id,
		board:       engine.InitialPosition(),
		history:     make([]Move, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
	g.players.White.TimeLeft = tenths(clock)
	g.players.Black.TimeLeft = tenths(clock)
	g.refreshState()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]stateWriter),
	}
}

func tenths(d time.Duration) int {
	return int(d.Milliseconds() / 100)
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.isPlayerInGame(playerID) {
		return g.colorOfPlayer(playerID), nil
	}
	if g.players.White.ID == "" {
		g.players.White.ID = playerID
		g.players.White.Color = PlayerColorWhite
		g.refreshState()
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black.ID = playerID
		g.players.Black.Color = PlayerColorBlack
		g.refreshState()
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// Board returns the current position. Boards are immutable, so the caller may
// keep it after the lock is released.
func (g *Game) Board() *engine.Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) colorOfPlayer(playerID string) PlayerColor {
	if g.players.White.ID == playerID {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove validates and plays a move for playerID. Illegal moves come back
// as *engine.IllegalMoveError and leave the game untouched.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkTurn(playerID); err != nil {
		return err
	}
	if g.clock(g.board.SideToMove()).Flagged() {
		g.setResolve(string(colorOf(g.board.SideToMove())) + " lost on time")
		g.whiteClock.Stop()
		g.blackClock.Stop()
		g.refreshState()
		g.publish(g.state)
		return ErrGameOver
	}
	from, err := move.From.coordinate()
	if err != nil {
		return err
	}
	to, err := move.To.coordinate()
	if err != nil {
		return err
	}
	m, err := g.board.FindMove(from, to, move.Promotion)
	if err != nil {
		return err
	}
	notation, err := g.board.Notation(m)
	if err != nil {
		return err
	}
	next, err := g.board.ApplyMove(m)
	if err != nil {
		return err
	}

	// Stop current player's clock, start the opponent's
	mover := g.board.SideToMove()
	g.clock(mover).Stop()
	g.clock(mover.Opponent()).Start()

	g.board = next
	g.recordPly(mover, makePly(m, notation))

	g.sound = "move"
	if m.IsCapture() {
		g.sound = "capture"
	}
	if next.IsInCheck(next.SideToMove()) {
		g.sound = "check"
	}
	switch next.Status() {
	case engine.Checkmate, engine.Stalemate, engine.FiftyMoveDraw:
		g.setResolve(next.Status().String())
		g.whiteClock.Stop()
		g.blackClock.Stop()
	}
	g.refreshState()

	g.publish(g.state)
	return nil
}

// Undo takes back the last ply. Either player may ask for it while the game
// is running or after it ended by position.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	prev, err := g.board.UndoMove()
	if err != nil {
		return err
	}
	g.clock(g.board.SideToMove()).Stop()
	g.board = prev
	g.clock(prev.SideToMove()).Start()

	last := len(g.history) - 1
	if g.history[last].BlackPly != nil {
		g.history[last].BlackPly = nil
	} else {
		g.history = g.history[:last]
	}
	g.resolve = nil
	g.sound = "move"
	g.refreshState()

	g.publish(g.state)
	return nil
}

// Resign ends the game in favour of playerID's opponent.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if g.resolve != nil {
		return ErrGameOver
	}
	g.setResolve(string(g.colorOfPlayer(playerID)) + " resigned")
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.refreshState()

	g.publish(g.state)
	return nil
}

func (g *Game) checkTurn(playerID string) error {
	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if g.resolve != nil {
		return ErrGameOver
	}
	if g.colorOfPlayer(playerID).alliance() != g.board.SideToMove() {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) clock(a engine.Alliance) *Clock {
	if a == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) setResolve(result string) {
	g.resolve = &result
}

func (g *Game) recordPly(mover engine.Alliance, ply Ply) {
	if mover == engine.White || len(g.history) == 0 {
		entry := Move{}
		if mover == engine.White {
			entry.WhitePly = &ply
		} else {
			entry.BlackPly = &ply
		}
		g.history = append(g.history, entry)
		return
	}
	g.history[len(g.history)-1].BlackPly = &ply
}

// refreshState rebuilds g.state from the board and history. Everything it
// stores is freshly allocated.
func (g *Game) refreshState() {
	b := g.board
	side := b.SideToMove()

	legal := b.LegalMoves(side)
	moves := make([]LegalMove, 0, len(legal))
	for _, m := range legal {
		notation, err := b.Notation(m)
		if err != nil {
			log.Printf("game %s: notation for %s: %v", g.ID, m, err)
		}
		moves = append(moves, LegalMove{
			From:      positionOf(m.From),
			To:        positionOf(m.To),
			Promotion: m.Promotion,
			Notation:  notation,
		})
	}

	history := make([]Move, len(g.history))
	captured := CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)}
	for i, entry := range g.history {
		history[i] = Move{WhitePly: clonePly(entry.WhitePly), BlackPly: clonePly(entry.BlackPly)}
		if entry.WhitePly != nil && entry.WhitePly.CapturedPiece != nil {
			captured.White = append(captured.White, *entry.WhitePly.CapturedPiece)
		}
		if entry.BlackPly != nil && entry.BlackPly.CapturedPiece != nil {
			captured.Black = append(captured.Black, *entry.BlackPly.CapturedPiece)
		}
	}

	var ep *Position
	if target, ok := b.EnPassantTarget(); ok {
		p := positionOf(target)
		ep = &p
	}
	var last *SimpleMove
	if m, ok := b.LastMove(); ok {
		last = &SimpleMove{From: positionOf(m.From), To: positionOf(m.To)}
	}

	players := g.players
	players.White.TimeLeft = tenths(g.whiteClock.Remaining())
	players.Black.TimeLeft = tenths(g.blackClock.Remaining())

	g.state = GameState{
		Seq:             g.state.Seq + 1,
		Sound:           g.sound,
		Board:           newBoardState(b),
		ToMove:          colorOf(side),
		MoveHistory:     history,
		CapturedPieces:  captured,
		IsCheck:         b.IsInCheck(side),
		LegalMoves:      moves,
		EnPassantTarget: ep,
		Resolve:         g.resolve,
		Players:         players,
		LastMove:        last,
	}
}

func clonePly(p *Ply) *Ply {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	log.Printf("game %s: registering connection %p for player %s", g.ID, conn, playerID)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) && !g.canSpectate() {
		return ErrUnauthorized
	}
	if !g.addConnection(playerID, conn) {
		// keep the existing connection and turn the new one away
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	// Published under g.mu so it cannot overtake a newer state.
	g.publish(g.state)
	return nil
}

// addConnection stores w unless playerID already has a connection.
func (g *Game) addConnection(playerID string, w stateWriter) bool {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		return false
	}
	g.connections.connections[playerID] = w
	return true
}

func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only unregister if this is still the current connection
	if current, exists := g.connections.connections[playerID]; exists && current == stateWriter(conn) {
		log.Printf("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// publish queues state for broadcast. Callers hold g.mu, which orders the
// states handed in.
func (g *Game) publish(state GameState) {
	c := g.connections
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	c.pending = &state
	if c.draining {
		return
	}
	c.draining = true
	go g.drain()
}

func (g *Game) drain() {
	c := g.connections
	for {
		c.queueMu.Lock()
		state := c.pending
		c.pending = nil
		if state == nil {
			c.draining = false
			c.queueMu.Unlock()
			return
		}
		c.queueMu.Unlock()

		g.broadcastState(*state)
	}
}

// broadcastState sends state to every connection. Writes are serialized by
// the connections lock; connections that fail are dropped.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to player %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

// Send writes msg to a single connection. It shares the lock used by
// broadcastState so the two never write to a connection at the same time.
func (g *Game) Send(conn *websocket.Conn, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return conn.WriteJSON(msg)
}

// IsMoveError reports whether err was caused by the submitted move itself
// rather than by the game's condition.
func IsMoveError(err error) bool {
	return errors.Is(err, engine.ErrIllegalMove) || errors.Is(err, engine.ErrOutOfBounds)
}

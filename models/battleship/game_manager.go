package battleship

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type GameManager interface {
	CreateGame(hostSessionId string) (string, error)
	JoinGame(gameUuid, sessionId string) (PlayerID, error)
	LeaveGame(gameUuid, sessionId string)
	FetchSessionId(gameUuid string, player PlayerID) (string, error)
	Do(ctx context.Context, gameUuid string, fn func(*Game) error) error
	TerminateGame(gameUuid string)
}

type gameOp struct {
	fn    func(*Game) error
	errCh chan error
}

// gameRoom runs every operation on its game from a single
// goroutine so the engine never sees concurrent callers.
type gameRoom struct {
	game     *Game
	sessions [2]string
	ops      chan gameOp
	done     chan struct{}
}

func newGameRoom(game *Game) *gameRoom {
	return &gameRoom{
		game: game,
		ops:  make(chan gameOp),
		done: make(chan struct{}),
	}
}

func (r *gameRoom) run() {
	for {
		select {
		case op := <-r.ops:
			op.errCh <- op.fn(r.game)
		case <-r.done:
			return
		}
	}
}

type BattleshipGameManager struct {
	rooms map[string]*gameRoom
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		rooms: make(map[string]*gameRoom, 10),
	}
}

func (bgm *BattleshipGameManager) CreateGame(hostSessionId string) (string, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	gameUuid := uuid.NewString()[:6]
	for {
		if _, prs := bgm.rooms[gameUuid]; !prs {
			break
		}
		gameUuid = uuid.NewString()[:6]
	}

	room := newGameRoom(NewGame(gameUuid))
	room.sessions[PlayerOne-1] = hostSessionId
	bgm.rooms[gameUuid] = room
	go room.run()

	log.Printf("game created: %s\n", gameUuid)
	return gameUuid, nil
}

func (bgm *BattleshipGameManager) JoinGame(gameUuid, sessionId string) (PlayerID, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	room, prs := bgm.rooms[gameUuid]
	if !prs {
		return PlayerNone, cerr.ErrGameNotExists(gameUuid)
	}
	if room.sessions[PlayerTwo-1] != "" {
		return PlayerNone, cerr.ErrGameIsFull(gameUuid)
	}

	room.sessions[PlayerTwo-1] = sessionId
	return PlayerTwo, nil
}

// LeaveGame ends the game when sessionId holds one of its seats.
// A game is never handed over to another session.
func (bgm *BattleshipGameManager) LeaveGame(gameUuid, sessionId string) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	room, prs := bgm.rooms[gameUuid]
	if !prs {
		return
	}

	for _, seated := range room.sessions {
		if seated == sessionId {
			bgm.deleteRoom(gameUuid, room)
			return
		}
	}
}

func (bgm *BattleshipGameManager) FetchSessionId(gameUuid string, player PlayerID) (string, error) {
	if !player.IsValid() {
		return "", cerr.ErrInvalidPlayer(uint8(player))
	}

	bgm.mu.RLock()
	defer bgm.mu.RUnlock()

	room, prs := bgm.rooms[gameUuid]
	if !prs {
		return "", cerr.ErrGameNotExists(gameUuid)
	}

	sessionId := room.sessions[player-1]
	if sessionId == "" {
		return "", cerr.ErrSessionNotFound("player " + player.String())
	}
	return sessionId, nil
}

// Do runs fn on the game from the game's own goroutine and
// waits for it to return. ctx only bounds the wait until the
// game picks fn up.
func (bgm *BattleshipGameManager) Do(ctx context.Context, gameUuid string, fn func(*Game) error) error {
	room, err := bgm.fetchRoom(gameUuid)
	if err != nil {
		return err
	}

	op := gameOp{fn: fn, errCh: make(chan error, 1)}
	select {
	case room.ops <- op:
	case <-room.done:
		return cerr.ErrGameNotExists(gameUuid)
	case <-ctx.Done():
		return ctx.Err()
	}

	// once handed over the operation commits, so its outcome
	// must reach the caller
	return <-op.errCh
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	room, prs := bgm.rooms[gameUuid]
	if !prs {
		return
	}
	bgm.deleteRoom(gameUuid, room)
}

// Number of games currently held
func (bgm *BattleshipGameManager) Len() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.rooms)
}

func (bgm *BattleshipGameManager) fetchRoom(gameUuid string) (*gameRoom, error) {
	bgm.mu.RLock()
	room, prs := bgm.rooms[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	return room, nil
}

// caller holds bgm.mu
func (bgm *BattleshipGameManager) deleteRoom(gameUuid string, room *gameRoom) {
	delete(bgm.rooms, gameUuid)
	close(room.done)
	log.Printf("game terminated: %s\n", gameUuid)
}

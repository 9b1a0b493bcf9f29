package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseInProgress
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseInProgress:
		return "InProgress"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState is the whole state machine. CurrentPlayer is the
// player in setup or holding the turn; Winner is only set in
// PhaseGameOver.
type GameState struct {
	Phase         Phase    `json:"phase"`
	CurrentPlayer PlayerID `json:"current_player"`
	Winner        PlayerID `json:"winner"`
}

func (s GameState) String() string {
	if s.Phase == PhaseGameOver {
		return fmt.Sprintf("%s(%d)", s.Phase, s.Winner)
	}
	return fmt.Sprintf("%s(%d)", s.Phase, s.CurrentPlayer)
}

type ResultKind uint8

const (
	ResultPlaced ResultKind = iota
	ResultRotated
	ResultReset
	ResultMiss
	ResultHit
	ResultSunk
	ResultWin
)

func (k ResultKind) String() string {
	switch k {
	case ResultPlaced:
		return "Placed"
	case ResultRotated:
		return "Rotated"
	case ResultReset:
		return "Reset"
	case ResultMiss:
		return "Miss"
	case ResultHit:
		return "Hit"
	case ResultSunk:
		return "Sunk"
	case ResultWin:
		return "Win"
	default:
		return "Unknown"
	}
}

func resultKindOf(outcome ShotOutcome) ResultKind {
	switch outcome {
	case ShotHit:
		return ResultHit
	case ShotSunk:
		return ResultSunk
	case ShotWin:
		return ResultWin
	default:
		return ResultMiss
	}
}

// Result is returned by every mutating operation of a Game.
// State is the state after the operation.
type Result struct {
	Kind   ResultKind
	Player PlayerID
	State  GameState
	Cells  []Coordinates

	Ship        ShipKind
	Orientation Orientation

	SunkShip      string
	SunkShipCells []Coordinates
}

// Game is not safe for concurrent use. Callers serialize
// access, see BattleshipGameManager.
type Game struct {
	uuid    string
	state   GameState
	players [2]*Player

	// player waiting for an answer to a new game call
	newGameCaller PlayerID
}

func NewGame(uuid string) *Game {
	g := &Game{uuid: uuid}
	g.StartNewGame()
	return g
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) IsFinished() bool {
	return g.state.Phase == PhaseGameOver
}

// StartNewGame discards both boards and goes back to Setup(1).
func (g *Game) StartNewGame() {
	g.players = [2]*Player{NewPlayer(PlayerOne), NewPlayer(PlayerTwo)}
	g.state = GameState{Phase: PhaseSetup, CurrentPlayer: PlayerOne}
	g.newGameCaller = PlayerNone
}

// CallNewGame asks the opponent of player for a new game. Only
// one call can be pending at a time.
func (g *Game) CallNewGame(player PlayerID) error {
	if !player.IsValid() {
		return cerr.ErrInvalidPlayer(uint8(player))
	}
	if g.newGameCaller != PlayerNone {
		return cerr.ErrNewGameAlreadyCalled(uint8(g.newGameCaller))
	}
	g.newGameCaller = player
	return nil
}

func (g *Game) NewGameCaller() PlayerID {
	return g.newGameCaller
}

func (g *Game) checkNewGameAnswer(player PlayerID) error {
	if !player.IsValid() {
		return cerr.ErrInvalidPlayer(uint8(player))
	}
	if g.newGameCaller == PlayerNone || g.newGameCaller == player {
		return cerr.ErrNoNewGameCall(uint8(player))
	}
	return nil
}

// AcceptNewGame starts a new game if the opponent of player
// called for one.
func (g *Game) AcceptNewGame(player PlayerID) (GameState, error) {
	if err := g.checkNewGameAnswer(player); err != nil {
		return g.state, err
	}
	g.StartNewGame()
	return g.state, nil
}

func (g *Game) RejectNewGame(player PlayerID) error {
	if err := g.checkNewGameAnswer(player); err != nil {
		return err
	}
	g.newGameCaller = PlayerNone
	return nil
}

func (g *Game) Player(id PlayerID) (*Player, error) {
	if !id.IsValid() {
		return nil, cerr.ErrInvalidPlayer(uint8(id))
	}
	return g.players[id-1], nil
}

func (g *Game) Board(id PlayerID) (*Board, error) {
	player, err := g.Player(id)
	if err != nil {
		return nil, err
	}
	return player.board, nil
}

func (g *Game) OpponentBoard(id PlayerID) (*Board, error) {
	return g.Board(id.Other())
}

func (g *Game) checkPlacementAllowed(player PlayerID) error {
	if !player.IsValid() {
		return cerr.ErrInvalidPlayer(uint8(player))
	}

	switch g.state.Phase {
	case PhaseGameOver:
		return cerr.ErrGameOver(uint8(g.state.Winner))
	case PhaseInProgress:
		return cerr.ErrPlacementPhaseClosed(uint8(player))
	}

	// Player one commits first, so a lower id than the
	// one in setup has already finished.
	if player < g.state.CurrentPlayer {
		return cerr.ErrPlacementPhaseClosed(uint8(player))
	}
	if player != g.state.CurrentPlayer {
		return cerr.ErrNotTurnForPlayer(uint8(player))
	}
	return nil
}

// IsPlacementValid reports whether coords could be placed on the
// board of player right now, ignoring the phase.
func (g *Game) IsPlacementValid(player PlayerID, coords []Coordinates) bool {
	board, err := g.Board(player)
	if err != nil {
		return false
	}
	return board.IsPlacementValid(coords)
}

func (g *Game) PlaceShip(player PlayerID, kind ShipKind, anchor Coordinates, orientation Orientation) (Result, error) {
	if err := g.checkPlacementAllowed(player); err != nil {
		return Result{}, err
	}
	if !kind.IsValid() {
		return Result{}, cerr.ErrUnknownShipKind(kind.Name())
	}

	board := g.players[player-1].board
	coords, err := board.PlaceShip(kind, anchor, orientation)
	if err != nil {
		return Result{}, err
	}

	if board.IsReady() {
		if player == PlayerOne {
			g.state = GameState{Phase: PhaseSetup, CurrentPlayer: PlayerTwo}
		} else {
			g.state = GameState{Phase: PhaseInProgress, CurrentPlayer: PlayerOne}
		}
	}

	return Result{
		Kind:        ResultPlaced,
		Player:      player,
		State:       g.state,
		Cells:       coords,
		Ship:        kind,
		Orientation: orientation,
	}, nil
}

func (g *Game) RotateShip(player PlayerID, kind ShipKind) (Result, error) {
	if err := g.checkPlacementAllowed(player); err != nil {
		return Result{}, err
	}

	ship, prs := g.players[player-1].board.Ship(kind)
	if !prs {
		return Result{}, cerr.ErrUnknownShipKind(kind.Name())
	}
	if err := ship.Rotate(); err != nil {
		return Result{}, err
	}

	return Result{
		Kind:        ResultRotated,
		Player:      player,
		State:       g.state,
		Ship:        kind,
		Orientation: ship.orientation,
	}, nil
}

// ResetPlayerPlacement lets the player in setup start over.
// Cells holds the cells that were cleared.
func (g *Game) ResetPlayerPlacement(player PlayerID) (Result, error) {
	if err := g.checkPlacementAllowed(player); err != nil {
		return Result{}, err
	}

	board := g.players[player-1].board
	cleared := make([]Coordinates, 0, len(board.shipIndex))
	for _, ship := range board.fleet {
		cleared = append(cleared, ship.coordinates...)
	}
	board.ResetPlacement()

	return Result{
		Kind:   ResultReset,
		Player: player,
		State:  g.state,
		Cells:  cleared,
	}, nil
}

// FireShot fires as player at the opponent's board. The turn
// passes to the opponent only on a miss.
func (g *Game) FireShot(player PlayerID, c Coordinates) (Result, error) {
	if !player.IsValid() {
		return Result{}, cerr.ErrInvalidPlayer(uint8(player))
	}

	switch g.state.Phase {
	case PhaseGameOver:
		return Result{}, cerr.ErrGameOver(uint8(g.state.Winner))
	case PhaseSetup:
		return Result{}, cerr.ErrGameNotInProgress(g.state.String())
	}
	if player != g.state.CurrentPlayer {
		return Result{}, cerr.ErrNotTurnForPlayer(uint8(player))
	}

	defender := g.players[player.Other()-1].board
	shot, err := defender.ReceiveShot(c)
	if err != nil {
		return Result{}, err
	}

	switch shot.Outcome {
	case ShotMiss:
		g.state.CurrentPlayer = player.Other()
	case ShotWin:
		g.state = GameState{Phase: PhaseGameOver, Winner: player}
	}

	return Result{
		Kind:          resultKindOf(shot.Outcome),
		Player:        player,
		State:         g.state,
		Cells:         []Coordinates{c},
		SunkShip:      shot.SunkShip,
		SunkShipCells: shot.SunkShipCoordinates,
	}, nil
}

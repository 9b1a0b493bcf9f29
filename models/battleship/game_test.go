package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// setupGame places both fleets with ship i of the catalog
// horizontally on row i.
func setupGame(t *testing.T) *Game {
	t.Helper()
	game := NewGame("test")
	for _, player := range []PlayerID{PlayerOne, PlayerTwo} {
		for i, kind := range FleetCatalog() {
			if _, err := game.PlaceShip(player, kind, NewCoordinates(0, i), OrientationHorizontal); err != nil {
				t.Fatalf("failed to place %s for player %d: %v", kind, player, err)
			}
		}
	}
	return game
}

func TestGameSetupTransitions(t *testing.T) {
	game := NewGame("setup")
	if game.State() != (GameState{Phase: PhaseSetup, CurrentPlayer: PlayerOne}) {
		t.Fatalf("expected state: Setup(1)\t got: %s", game.State())
	}

	if _, err := game.FireShot(PlayerOne, NewCoordinates(0, 0)); !errors.Is(err, cerr.ErrNotInProgress) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNotInProgress, err)
	}
	if _, err := game.PlaceShip(PlayerTwo, ShipCarrier, NewCoordinates(0, 0), OrientationHorizontal); !errors.Is(err, cerr.ErrNotYourTurn) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNotYourTurn, err)
	}

	catalog := FleetCatalog()
	for i, kind := range catalog {
		result, err := game.PlaceShip(PlayerOne, kind, NewCoordinates(i*2, 0), OrientationVertical)
		if err != nil {
			t.Fatal(err)
		}
		if result.Kind != ResultPlaced || len(result.Cells) != kind.Length() {
			t.Fatalf("unexpected result for %s: %+v", kind, result)
		}

		expectedPlayer := PlayerOne
		if i == len(catalog)-1 {
			expectedPlayer = PlayerTwo
		}
		if result.State.Phase != PhaseSetup || result.State.CurrentPlayer != expectedPlayer {
			t.Fatalf("expected state: Setup(%d)\t got: %s", expectedPlayer, result.State)
		}
	}

	// player one committed; only player two may place now
	if _, err := game.ResetPlayerPlacement(PlayerOne); !errors.Is(err, cerr.ErrPlacementClosed) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrPlacementClosed, err)
	}
	if _, err := game.RotateShip(PlayerOne, ShipCarrier); !errors.Is(err, cerr.ErrPlacementClosed) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrPlacementClosed, err)
	}

	// player two redoes part of the setup before committing
	if _, err := game.PlaceShip(PlayerTwo, ShipCarrier, NewCoordinates(0, 0), OrientationHorizontal); err != nil {
		t.Fatal(err)
	}
	result, err := game.ResetPlayerPlacement(PlayerTwo)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != ResultReset || len(result.Cells) != ShipCarrier.Length() {
		t.Fatalf("unexpected reset result: %+v", result)
	}

	for i, kind := range catalog {
		result, err = game.PlaceShip(PlayerTwo, kind, NewCoordinates(0, i), OrientationHorizontal)
		if err != nil {
			t.Fatal(err)
		}
	}
	if result.State != (GameState{Phase: PhaseInProgress, CurrentPlayer: PlayerOne}) {
		t.Fatalf("expected state: InProgress(1)\t got: %s", result.State)
	}

	if _, err := game.PlaceShip(PlayerTwo, ShipCarrier, NewCoordinates(5, 5), OrientationHorizontal); !errors.Is(err, cerr.ErrPlacementClosed) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrPlacementClosed, err)
	}
}

func TestGameFleetCompleteness(t *testing.T) {
	game := setupGame(t)
	if game.State().Phase != PhaseInProgress {
		t.Fatalf("expected phase: %s\t got: %s", PhaseInProgress, game.State().Phase)
	}

	for _, player := range []PlayerID{PlayerOne, PlayerTwo} {
		board, err := game.Board(player)
		if err != nil {
			t.Fatal(err)
		}

		lengths := map[int]int{}
		seen := map[Coordinates]bool{}
		for _, ship := range board.Fleet() {
			lengths[ship.Length()]++
			for _, c := range ship.Coordinates() {
				if seen[c] {
					t.Fatalf("cell %v shared by two ships", c)
				}
				seen[c] = true
			}
		}
		if len(board.Fleet()) != FleetSize || lengths[5] != 1 || lengths[4] != 1 || lengths[3] != 2 || lengths[2] != 1 {
			t.Fatalf("unexpected fleet for player %d: %v", player, lengths)
		}
	}
}

func TestGameTurnRetention(t *testing.T) {
	game := setupGame(t)

	tests := []struct {
		name           string
		player         PlayerID
		coords         Coordinates
		expectedKind   ResultKind
		expectedPlayer PlayerID
		expectedErr    error
	}{
		{name: "miss passes turn", player: PlayerOne, coords: NewCoordinates(5, 5), expectedKind: ResultMiss, expectedPlayer: PlayerTwo},
		{name: "player one out of turn", player: PlayerOne, coords: NewCoordinates(0, 0), expectedErr: cerr.ErrNotYourTurn, expectedPlayer: PlayerTwo},
		{name: "hit keeps turn", player: PlayerTwo, coords: NewCoordinates(0, 4), expectedKind: ResultHit, expectedPlayer: PlayerTwo},
		{name: "sunk keeps turn", player: PlayerTwo, coords: NewCoordinates(1, 4), expectedKind: ResultSunk, expectedPlayer: PlayerTwo},
		{name: "already shot keeps state", player: PlayerTwo, coords: NewCoordinates(1, 4), expectedErr: cerr.ErrAlreadyShot, expectedPlayer: PlayerTwo},
		{name: "out of bound keeps state", player: PlayerTwo, coords: NewCoordinates(10, 10), expectedErr: cerr.ErrInvalidCoordinates, expectedPlayer: PlayerTwo},
		{name: "miss passes turn back", player: PlayerTwo, coords: NewCoordinates(9, 9), expectedKind: ResultMiss, expectedPlayer: PlayerOne},
		{name: "invalid player", player: PlayerNone, coords: NewCoordinates(0, 0), expectedErr: cerr.ErrInvalidInput, expectedPlayer: PlayerOne},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := game.FireShot(test.player, test.coords)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected error: %v\t got: %v", test.expectedErr, err)
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				if result.Kind != test.expectedKind {
					t.Fatalf("expected result: %s\t got: %s", test.expectedKind, result.Kind)
				}
			}

			if game.State().CurrentPlayer != test.expectedPlayer {
				t.Fatalf("expected current player: %d\t got: %d", test.expectedPlayer, game.State().CurrentPlayer)
			}
		})
	}
}

func TestGameWin(t *testing.T) {
	game := setupGame(t)

	defender, err := game.OpponentBoard(PlayerOne)
	if err != nil {
		t.Fatal(err)
	}

	var result Result
	for _, ship := range defender.Fleet() {
		for _, c := range ship.Coordinates() {
			result, err = game.FireShot(PlayerOne, c)
			if err != nil {
				t.Fatal(err)
			}
			if result.Kind == ResultMiss {
				t.Fatalf("unexpected miss at %v", c)
			}
		}
	}

	if result.Kind != ResultWin || result.SunkShip != "Destroyer" {
		t.Fatalf("expected result: Win(Destroyer)\t got: %s(%s)", result.Kind, result.SunkShip)
	}
	expected := GameState{Phase: PhaseGameOver, Winner: PlayerOne}
	if game.State() != expected || !game.IsFinished() {
		t.Fatalf("expected state: %s\t got: %s", expected, game.State())
	}

	player, _ := game.Player(PlayerTwo)
	if !player.IsLoser() {
		t.Fatal("expected player two to have lost")
	}

	// terminal for every mutating operation
	if _, err := game.FireShot(PlayerOne, NewCoordinates(9, 9)); !errors.Is(err, cerr.ErrGameAlreadyOver) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameAlreadyOver, err)
	}
	if _, err := game.FireShot(PlayerTwo, NewCoordinates(9, 9)); !errors.Is(err, cerr.ErrGameAlreadyOver) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameAlreadyOver, err)
	}
	if _, err := game.PlaceShip(PlayerOne, ShipCarrier, NewCoordinates(0, 9), OrientationHorizontal); !errors.Is(err, cerr.ErrGameAlreadyOver) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameAlreadyOver, err)
	}
	if _, err := game.RotateShip(PlayerTwo, ShipCarrier); !errors.Is(err, cerr.ErrGameAlreadyOver) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameAlreadyOver, err)
	}
	if _, err := game.ResetPlayerPlacement(PlayerOne); !errors.Is(err, cerr.ErrGameAlreadyOver) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameAlreadyOver, err)
	}
	if game.State() != expected {
		t.Fatalf("expected state: %s\t got: %s", expected, game.State())
	}

	game.StartNewGame()
	if game.State() != (GameState{Phase: PhaseSetup, CurrentPlayer: PlayerOne}) {
		t.Fatalf("expected state: Setup(1)\t got: %s", game.State())
	}
	board, _ := game.Board(PlayerOne)
	if board.IsReady() {
		t.Fatal("new game kept the old fleet")
	}
}

func TestGameRotateAndPreview(t *testing.T) {
	game := NewGame("rotate")

	result, err := game.RotateShip(PlayerOne, ShipBattleship)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != ResultRotated || result.Orientation != OrientationVertical {
		t.Fatalf("unexpected rotate result: %+v", result)
	}

	coords := ShipCoordinates(NewCoordinates(9, 0), ShipBattleship.Length(), result.Orientation)
	if !game.IsPlacementValid(PlayerOne, coords) {
		t.Fatal("expected vertical battleship at the right edge to be valid")
	}
	if _, err := game.PlaceShip(PlayerOne, ShipBattleship, NewCoordinates(9, 0), result.Orientation); err != nil {
		t.Fatal(err)
	}
	if game.IsPlacementValid(PlayerOne, coords) {
		t.Fatal("expected placed cells to be invalid")
	}
	if !game.IsPlacementValid(PlayerTwo, coords) {
		t.Fatal("boards of the two players must be independent")
	}
	if _, err := game.RotateShip(PlayerOne, ShipBattleship); !errors.Is(err, cerr.ErrAlreadyPlaced) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrAlreadyPlaced, err)
	}
}

func TestGameNewGameCall(t *testing.T) {
	game := setupGame(t)
	if _, err := game.FireShot(PlayerOne, NewCoordinates(0, 0)); err != nil {
		t.Fatal(err)
	}
	inProgress := game.State()

	// answering without a pending call changes nothing
	if _, err := game.AcceptNewGame(PlayerTwo); !errors.Is(err, cerr.ErrInvalidInput) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrInvalidInput, err)
	}
	if err := game.RejectNewGame(PlayerTwo); !errors.Is(err, cerr.ErrInvalidInput) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrInvalidInput, err)
	}
	if game.State() != inProgress {
		t.Fatalf("expected state: %s\t got: %s", inProgress, game.State())
	}

	if err := game.CallNewGame(PlayerOne); err != nil {
		t.Fatal(err)
	}
	if err := game.CallNewGame(PlayerTwo); !errors.Is(err, cerr.ErrInvalidInput) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrInvalidInput, err)
	}
	if _, err := game.AcceptNewGame(PlayerOne); !errors.Is(err, cerr.ErrInvalidInput) {
		t.Fatalf("expected caller not to accept own call\t got: %v", err)
	}

	if err := game.RejectNewGame(PlayerTwo); err != nil {
		t.Fatal(err)
	}
	if game.NewGameCaller() != PlayerNone {
		t.Fatalf("expected no pending call\t got: %s", game.NewGameCaller())
	}
	if board, _ := game.Board(PlayerTwo); !board.IsShot(NewCoordinates(0, 0)) {
		t.Fatal("expected board to survive a rejected call")
	}

	if err := game.CallNewGame(PlayerTwo); err != nil {
		t.Fatal(err)
	}
	state, err := game.AcceptNewGame(PlayerOne)
	if err != nil {
		t.Fatal(err)
	}
	if state != (GameState{Phase: PhaseSetup, CurrentPlayer: PlayerOne}) {
		t.Fatalf("expected state: Setup(1)\t got: %s", state)
	}
	if game.NewGameCaller() != PlayerNone {
		t.Fatalf("expected call to be cleared\t got: %s", game.NewGameCaller())
	}
}

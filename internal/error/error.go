package error

import (
	"errors"
	"fmt"
)

// Error kinds of the game engine. Every error returned by
// the engine wraps exactly one of these.
var (
	ErrInvalidPlacement   = errors.New("invalid placement")
	ErrOverlap            = errors.New("overlap")
	ErrAlreadyPlaced      = errors.New("already placed")
	ErrAlreadyShot        = errors.New("already shot")
	ErrNotInProgress      = errors.New("not in progress")
	ErrPlacementClosed    = errors.New("placement closed")
	ErrGameAlreadyOver    = errors.New("game already over")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrInvalidShipKind    = errors.New("invalid ship kind")
)

// Server side kinds
var (
	ErrNotFound     = errors.New("not found")
	ErrGameFull     = errors.New("game full")
	ErrInvalidInput = errors.New("invalid input")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidPlacement, "InvalidPlacement"},
	{ErrOverlap, "Overlap"},
	{ErrAlreadyPlaced, "AlreadyPlaced"},
	{ErrAlreadyShot, "AlreadyShot"},
	{ErrNotInProgress, "NotInProgress"},
	{ErrPlacementClosed, "PlacementClosed"},
	{ErrGameAlreadyOver, "GameAlreadyOver"},
	{ErrInvalidCoordinates, "InvalidCoordinates"},
	{ErrNotYourTurn, "NotYourTurn"},
	{ErrInvalidShipKind, "InvalidShipKind"},
	{ErrNotFound, "NotFound"},
	{ErrGameFull, "GameFull"},
	{ErrInvalidInput, "InvalidInput"},
}

// KindOf returns the name of the kind err wraps, or "Unknown".
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}

func ErrPlacementOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w: ship would leave the grid\tx: %d\ty: %d", ErrInvalidPlacement, x, y)
}

func ErrInvalidOrientation(orientation uint8) error {
	return fmt.Errorf("%w: unknown orientation %d", ErrInvalidPlacement, orientation)
}

func ErrPlacementOverlap(x, y int) error {
	return fmt.Errorf("%w: position already taken by another ship\tx: %d\ty: %d", ErrOverlap, x, y)
}

func ErrShipAlreadyPlaced(name string) error {
	return fmt.Errorf("%w: ship %s is already on the grid", ErrAlreadyPlaced, name)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w: incoming x or y is out of game grid bound\tx: %d\ty: %d", ErrInvalidCoordinates, x, y)
}

func ErrDefenceGridPositionAlreadyHit(x, y int) error {
	return fmt.Errorf("%w: this position is already hit by the attacker in previous rounds\tx: %d\ty: %d", ErrAlreadyShot, x, y)
}

func ErrGameNotInProgress(phase string) error {
	return fmt.Errorf("%w: cannot attack during %s", ErrNotInProgress, phase)
}

func ErrPlacementPhaseClosed(player uint8) error {
	return fmt.Errorf("%w: setup of player %d is already committed", ErrPlacementClosed, player)
}

func ErrGameOver(winner uint8) error {
	return fmt.Errorf("%w: player %d won the game", ErrGameAlreadyOver, winner)
}

func ErrNotTurnForPlayer(player uint8) error {
	return fmt.Errorf("%w: player %d cannot act now", ErrNotYourTurn, player)
}

func ErrUnknownShipKind(kind string) error {
	return fmt.Errorf("%w: %q", ErrInvalidShipKind, kind)
}

func ErrInvalidPlayer(player uint8) error {
	return fmt.Errorf("%w: player must be 1 or 2, got %d", ErrInvalidInput, player)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid does not exist, uuid: %s", ErrNotFound, gameUuid)
}

func ErrGameIsFull(gameUuid string) error {
	return fmt.Errorf("%w: game already has two players, uuid: %s", ErrGameFull, gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w: session with this id does not exist, id: %s", ErrNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("%w: session is nil, id: %s", ErrNotFound, sessionId)
}

func ErrNoGameForSession(sessionId string) error {
	return fmt.Errorf("%w: session is not part of any game, id: %s", ErrInvalidInput, sessionId)
}

func ErrGameManagerClosed() error {
	return fmt.Errorf("game manager is closed")
}

func ErrSessionAlreadyInGame(sessionId, gameUuid string) error {
	return fmt.Errorf("%w: session %s is already in game %s", ErrInvalidInput, sessionId, gameUuid)
}

func ErrInvalidRequestPayload(err error) error {
	return fmt.Errorf("%w: could not decode request payload: %v", ErrInvalidInput, err)
}

func ErrNoOtherPlayer(gameUuid string) error {
	return fmt.Errorf("%w: no other player in game, uuid: %s", ErrNotFound, gameUuid)
}

func ErrNewGameAlreadyCalled(caller uint8) error {
	return fmt.Errorf("%w: player %d already called for a new game", ErrInvalidInput, caller)
}

func ErrNoNewGameCall(player uint8) error {
	return fmt.Errorf("%w: no new game call from the opponent of player %d", ErrInvalidInput, player)
}

func ErrSessionNotReconnecting(sessionId string) error {
	return fmt.Errorf("%w: session is not waiting for a reconnection, id: %s", ErrInvalidInput, sessionId)
}

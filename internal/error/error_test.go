package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err      error
		expected string
		sentinel error
	}{
		{err: ErrPlacementOutOfGridBound(9, 9), expected: "InvalidPlacement", sentinel: ErrInvalidPlacement},
		{err: ErrInvalidOrientation(7), expected: "InvalidPlacement", sentinel: ErrInvalidPlacement},
		{err: ErrPlacementOverlap(1, 1), expected: "Overlap", sentinel: ErrOverlap},
		{err: ErrShipAlreadyPlaced("Carrier"), expected: "AlreadyPlaced", sentinel: ErrAlreadyPlaced},
		{err: ErrDefenceGridPositionAlreadyHit(3, 4), expected: "AlreadyShot", sentinel: ErrAlreadyShot},
		{err: ErrGameNotInProgress("Setup(1)"), expected: "NotInProgress", sentinel: ErrNotInProgress},
		{err: ErrPlacementPhaseClosed(1), expected: "PlacementClosed", sentinel: ErrPlacementClosed},
		{err: ErrGameOver(2), expected: "GameAlreadyOver", sentinel: ErrGameAlreadyOver},
		{err: ErrXorYOutOfGridBound(-1, 0), expected: "InvalidCoordinates", sentinel: ErrInvalidCoordinates},
		{err: ErrNotTurnForPlayer(2), expected: "NotYourTurn", sentinel: ErrNotYourTurn},
		{err: ErrUnknownShipKind("Frigate"), expected: "InvalidShipKind", sentinel: ErrInvalidShipKind},
		{err: ErrGameIsFull("abc123"), expected: "GameFull", sentinel: ErrGameFull},
		{err: ErrSessionNotFound("id"), expected: "NotFound", sentinel: ErrNotFound},
		{err: ErrInvalidPlayer(3), expected: "InvalidInput", sentinel: ErrInvalidInput},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			if !errors.Is(test.err, test.sentinel) {
				t.Fatalf("expected %v to wrap %v", test.err, test.sentinel)
			}

			// wrapping again keeps the kind
			wrapped := fmt.Errorf("handling request: %w", test.err)
			if kind := KindOf(wrapped); kind != test.expected {
				t.Fatalf("expected kind: %s\t got: %s", test.expected, kind)
			}
		})
	}

	if kind := KindOf(errors.New("boom")); kind != "Unknown" {
		t.Fatalf("expected kind: Unknown\t got: %s", kind)
	}
}

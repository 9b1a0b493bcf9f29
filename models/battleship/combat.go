package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type ShotOutcome uint8

const (
	ShotMiss ShotOutcome = iota
	ShotHit
	ShotSunk
	ShotWin
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotMiss:
		return "Miss"
	case ShotHit:
		return "Hit"
	case ShotSunk:
		return "Sunk"
	case ShotWin:
		return "Win"
	default:
		return "Unknown"
	}
}

type ShotResult struct {
	Coordinates Coordinates
	Outcome     ShotOutcome

	// Set for Sunk and Win
	SunkShip            string
	SunkShipCoordinates []Coordinates
}

// ReceiveShot resolves an incoming shot against this board's fleet.
// A rejected shot leaves the board untouched.
func (b *Board) ReceiveShot(c Coordinates) (ShotResult, error) {
	if !c.IsInBound() {
		return ShotResult{}, cerr.ErrXorYOutOfGridBound(c.X, c.Y)
	}
	if b.shotsReceived.At(c) {
		return ShotResult{}, cerr.ErrDefenceGridPositionAlreadyHit(c.X, c.Y)
	}

	b.shotsReceived.Set(c, true)
	result := ShotResult{Coordinates: c, Outcome: ShotMiss}

	ship, prs := b.shipIndex[c]
	if !prs || !ship.TryHit(c) {
		return result, nil
	}

	result.Outcome = ShotHit
	if !ship.IsSunk() {
		return result, nil
	}

	result.Outcome = ShotSunk
	result.SunkShip = ship.Name()
	result.SunkShipCoordinates = ship.Coordinates()

	if b.IsFleetSunk() {
		result.Outcome = ShotWin
	}
	return result, nil
}

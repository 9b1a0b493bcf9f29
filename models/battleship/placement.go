package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// ShipCoordinates computes the cells a ship of length covers
// starting at anchor. Horizontal grows x, vertical grows y.
func ShipCoordinates(anchor Coordinates, length int, orientation Orientation) []Coordinates {
	coords := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationVertical {
			coords[i] = NewCoordinates(anchor.X, anchor.Y+i)
		} else {
			coords[i] = NewCoordinates(anchor.X+i, anchor.Y)
		}
	}
	return coords
}

// Bounds are checked for every cell before any overlap.
func (b *Board) validatePlacement(coords []Coordinates) error {
	for _, c := range coords {
		if !c.IsInBound() {
			return cerr.ErrPlacementOutOfGridBound(c.X, c.Y)
		}
	}

	for _, c := range coords {
		if b.occupancy.At(c) {
			return cerr.ErrPlacementOverlap(c.X, c.Y)
		}
	}
	return nil
}

// IsPlacementValid is the preview form of PlaceShip's checks.
func (b *Board) IsPlacementValid(coords []Coordinates) bool {
	if len(coords) == 0 {
		return false
	}
	return b.validatePlacement(coords) == nil
}

// PlaceShip commits the ship of kind at anchor. Nothing on the
// board changes unless every check passes.
func (b *Board) PlaceShip(kind ShipKind, anchor Coordinates, orientation Orientation) ([]Coordinates, error) {
	ship, prs := b.Ship(kind)
	if !prs {
		return nil, cerr.ErrUnknownShipKind(kind.Name())
	}
	if !orientation.IsValid() {
		return nil, cerr.ErrInvalidOrientation(uint8(orientation))
	}
	if ship.isPlaced {
		return nil, cerr.ErrShipAlreadyPlaced(ship.Name())
	}

	coords := ShipCoordinates(anchor, ship.Length(), orientation)
	if err := b.validatePlacement(coords); err != nil {
		return nil, err
	}

	ship.commit(coords, orientation)
	for _, c := range coords {
		b.occupancy.Set(c, true)
		b.shipIndex[c] = ship
	}

	return ship.Coordinates(), nil
}

// ResetPlacement takes every ship off the board.
func (b *Board) ResetPlacement() {
	b.occupancy.Clear()
	clear(b.shipIndex)
	for _, ship := range b.fleet {
		ship.reset()
	}
}

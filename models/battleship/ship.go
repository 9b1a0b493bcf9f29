package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "Horizontal"
	case OrientationVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

func (o Orientation) IsValid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Ship keeps one hit flag per segment. coordinates stays
// nil until the ship is committed to a board.
type Ship struct {
	kind        ShipKind
	orientation Orientation
	coordinates []Coordinates
	hits        []bool
	isPlaced    bool
}

func NewShip(kind ShipKind) *Ship {
	return &Ship{
		kind:        kind,
		orientation: OrientationHorizontal,
		hits:        make([]bool, kind.Length()),
	}
}

func (sh *Ship) Kind() ShipKind {
	return sh.kind
}

func (sh *Ship) Name() string {
	return sh.kind.Name()
}

func (sh *Ship) Length() int {
	return sh.kind.Length()
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) IsPlaced() bool {
	return sh.isPlaced
}

func (sh *Ship) Coordinates() []Coordinates {
	if sh.coordinates == nil {
		return nil
	}
	coords := make([]Coordinates, len(sh.coordinates))
	copy(coords, sh.coordinates)
	return coords
}

func (sh *Ship) Hits() []bool {
	hits := make([]bool, len(sh.hits))
	copy(hits, sh.hits)
	return hits
}

func (sh *Ship) HitCount() int {
	n := 0
	for _, hit := range sh.hits {
		if hit {
			n++
		}
	}
	return n
}

func (sh *Ship) IsSunk() bool {
	return sh.isPlaced && sh.HitCount() == sh.Length()
}

// Rotate toggles the orientation of a ship that is not
// on the grid yet.
func (sh *Ship) Rotate() error {
	if sh.isPlaced {
		return cerr.ErrShipAlreadyPlaced(sh.Name())
	}

	if sh.orientation == OrientationHorizontal {
		sh.orientation = OrientationVertical
	} else {
		sh.orientation = OrientationHorizontal
	}
	return nil
}

// TryHit marks the segment at c as hit. Hitting the
// same segment twice is harmless.
func (sh *Ship) TryHit(c Coordinates) bool {
	for i, coord := range sh.coordinates {
		if coord == c {
			sh.hits[i] = true
			return true
		}
	}
	return false
}

func (sh *Ship) commit(coords []Coordinates, orientation Orientation) {
	sh.coordinates = coords
	sh.orientation = orientation
	sh.hits = make([]bool, len(coords))
	sh.isPlaced = true
}

func (sh *Ship) reset() {
	sh.coordinates = nil
	sh.hits = make([]bool, sh.Length())
	sh.isPlaced = false
}

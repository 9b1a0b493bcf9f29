package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

func TestFleetCatalog(t *testing.T) {
	expected := map[string]int{"Carrier": 5, "Battleship": 4, "Cruiser": 3, "Submarine": 3, "Destroyer": 2}

	catalog := FleetCatalog()
	if len(catalog) != FleetSize {
		t.Fatalf("expected fleet size: %d\t got: %d", FleetSize, len(catalog))
	}
	for _, kind := range catalog {
		length, prs := expected[kind.Name()]
		if !prs {
			t.Fatalf("unexpected ship in catalog: %s", kind.Name())
		}
		if kind.Length() != length {
			t.Fatalf("expected length of %s: %d\t got: %d", kind.Name(), length, kind.Length())
		}
	}

	kind, err := ParseShipKind(" submarine")
	if err != nil || kind != ShipSubmarine {
		t.Fatalf("expected submarine\t got: %s (%v)", kind, err)
	}
	if _, err := ParseShipKind("rowboat"); !errors.Is(err, cerr.ErrInvalidShipKind) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrInvalidShipKind, err)
	}
}

func TestShipRotate(t *testing.T) {
	ship := NewShip(ShipCruiser)
	if ship.Orientation() != OrientationHorizontal {
		t.Fatalf("expected orientation: %s\t got: %s", OrientationHorizontal, ship.Orientation())
	}

	if err := ship.Rotate(); err != nil {
		t.Fatal(err)
	}
	if ship.Orientation() != OrientationVertical {
		t.Fatalf("expected orientation: %s\t got: %s", OrientationVertical, ship.Orientation())
	}

	if err := ship.Rotate(); err != nil {
		t.Fatal(err)
	}
	if ship.Orientation() != OrientationHorizontal {
		t.Fatalf("expected orientation: %s\t got: %s", OrientationHorizontal, ship.Orientation())
	}

	ship.commit(ShipCoordinates(NewCoordinates(0, 0), ship.Length(), OrientationHorizontal), OrientationHorizontal)
	if err := ship.Rotate(); !errors.Is(err, cerr.ErrAlreadyPlaced) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrAlreadyPlaced, err)
	}
	if ship.Orientation() != OrientationHorizontal {
		t.Fatal("rotate of a placed ship changed its orientation")
	}
}

func TestShipTryHit(t *testing.T) {
	ship := NewShip(ShipDestroyer)
	if len(ship.Hits()) != ship.Length() {
		t.Fatalf("expected hits length: %d\t got: %d", ship.Length(), len(ship.Hits()))
	}
	if ship.TryHit(NewCoordinates(0, 0)) {
		t.Fatal("unplaced ship must not be hit")
	}

	ship.commit(ShipCoordinates(NewCoordinates(3, 3), ship.Length(), OrientationVertical), OrientationVertical)

	tests := []struct {
		name          string
		coords        Coordinates
		expectedHit   bool
		expectedCount int
		expectedSunk  bool
	}{
		{name: "miss next to ship", coords: NewCoordinates(4, 3), expectedHit: false, expectedCount: 0},
		{name: "first segment", coords: NewCoordinates(3, 3), expectedHit: true, expectedCount: 1},
		{name: "first segment again", coords: NewCoordinates(3, 3), expectedHit: true, expectedCount: 1},
		{name: "second segment sinks", coords: NewCoordinates(3, 4), expectedHit: true, expectedCount: 2, expectedSunk: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if hit := ship.TryHit(test.coords); hit != test.expectedHit {
				t.Fatalf("expected hit: %t\t got: %t", test.expectedHit, hit)
			}
			if ship.HitCount() != test.expectedCount {
				t.Fatalf("expected hit count: %d\t got: %d", test.expectedCount, ship.HitCount())
			}
			if ship.IsSunk() != test.expectedSunk {
				t.Fatalf("expected sunk: %t\t got: %t", test.expectedSunk, ship.IsSunk())
			}
		})
	}
}

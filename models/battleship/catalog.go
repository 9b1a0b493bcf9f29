package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type ShipKind uint8

const (
	ShipCarrier ShipKind = iota
	ShipBattleship
	ShipCruiser
	ShipSubmarine
	ShipDestroyer
)

// Number of ships every player has to place
const FleetSize = 5

var shipLengths = [FleetSize]int{5, 4, 3, 3, 2}
var shipNames = [FleetSize]string{"Carrier", "Battleship", "Cruiser", "Submarine", "Destroyer"}

func (k ShipKind) IsValid() bool {
	return k <= ShipDestroyer
}

func (k ShipKind) Length() int {
	if !k.IsValid() {
		return 0
	}
	return shipLengths[k]
}

func (k ShipKind) Name() string {
	if !k.IsValid() {
		return "Unknown"
	}
	return shipNames[k]
}

func (k ShipKind) String() string {
	return k.Name()
}

// FleetCatalog returns the kinds of the fleet in catalog order.
func FleetCatalog() []ShipKind {
	return []ShipKind{ShipCarrier, ShipBattleship, ShipCruiser, ShipSubmarine, ShipDestroyer}
}

// ParseShipKind maps a catalog name, case insensitive, to its kind.
func ParseShipKind(name string) (ShipKind, error) {
	for _, kind := range FleetCatalog() {
		if strings.EqualFold(kind.Name(), strings.TrimSpace(name)) {
			return kind, nil
		}
	}
	return 0, cerr.ErrUnknownShipKind(name)
}

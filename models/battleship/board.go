package battleship

// Board is the private grid of one player. shipIndex mirrors
// occupancy and answers which ship sits on a cell.
type Board struct {
	occupancy     Grid
	shotsReceived Grid
	fleet         []*Ship
	shipIndex     map[Coordinates]*Ship
}

func NewBoard() *Board {
	catalog := FleetCatalog()
	fleet := make([]*Ship, 0, len(catalog))
	for _, kind := range catalog {
		fleet = append(fleet, NewShip(kind))
	}

	return &Board{
		fleet:     fleet,
		shipIndex: make(map[Coordinates]*Ship, 17),
	}
}

// Fleet returns the ships in catalog order.
func (b *Board) Fleet() []*Ship {
	fleet := make([]*Ship, len(b.fleet))
	copy(fleet, b.fleet)
	return fleet
}

func (b *Board) Ship(kind ShipKind) (*Ship, bool) {
	for _, ship := range b.fleet {
		if ship.kind == kind {
			return ship, true
		}
	}
	return nil, false
}

func (b *Board) ShipAt(c Coordinates) (*Ship, bool) {
	ship, prs := b.shipIndex[c]
	return ship, prs
}

func (b *Board) IsOccupied(c Coordinates) bool {
	return b.occupancy.At(c)
}

func (b *Board) IsShot(c Coordinates) bool {
	return b.shotsReceived.At(c)
}

func (b *Board) Occupancy() Grid {
	return b.occupancy
}

func (b *Board) ShotsReceived() Grid {
	return b.shotsReceived
}

// IsReady reports whether the whole fleet is on the grid.
func (b *Board) IsReady() bool {
	for _, ship := range b.fleet {
		if !ship.isPlaced {
			return false
		}
	}
	return true
}

func (b *Board) IsFleetSunk() bool {
	for _, ship := range b.fleet {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

func (b *Board) SunkenShips() int {
	n := 0
	for _, ship := range b.fleet {
		if ship.IsSunk() {
			n++
		}
	}
	return n
}

type ShipStatus struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Hits     int    `json:"hits"`
	IsSunk   bool   `json:"is_sunk"`
	IsPlaced bool   `json:"is_placed"`
}

func (b *Board) FleetStatus() []ShipStatus {
	status := make([]ShipStatus, 0, len(b.fleet))
	for _, ship := range b.fleet {
		status = append(status, ShipStatus{
			Name:     ship.Name(),
			Length:   ship.Length(),
			Hits:     ship.HitCount(),
			IsSunk:   ship.IsSunk(),
			IsPlaced: ship.isPlaced,
		})
	}
	return status
}

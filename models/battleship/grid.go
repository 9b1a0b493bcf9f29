package battleship

const GridSize = 10

const (
	ValidLowerBound = 0
	ValidUpperBound = GridSize - 1
)

// Zero based; X is the column (A-J), Y is the row (1-10).
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) IsInBound() bool {
	return c.X >= ValidLowerBound && c.X <= ValidUpperBound &&
		c.Y >= ValidLowerBound && c.Y <= ValidUpperBound
}

// Grid is indexed [x][y]. Accessors ignore out of bound
// coordinates instead of panicking.
type Grid [GridSize][GridSize]bool

func (g *Grid) At(c Coordinates) bool {
	if !c.IsInBound() {
		return false
	}
	return g[c.X][c.Y]
}

func (g *Grid) Set(c Coordinates, v bool) {
	if !c.IsInBound() {
		return
	}
	g[c.X][c.Y] = v
}

func (g *Grid) Clear() {
	*g = Grid{}
}

// Count returns the number of true cells.
func (g *Grid) Count() int {
	n := 0
	for x := range g {
		for y := range g[x] {
			if g[x][y] {
				n++
			}
		}
	}
	return n
}

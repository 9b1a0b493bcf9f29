package battleship

type PlayerID uint8

const (
	PlayerNone PlayerID = iota
	PlayerOne
	PlayerTwo
)

func (p PlayerID) IsValid() bool {
	return p == PlayerOne || p == PlayerTwo
}

func (p PlayerID) Other() PlayerID {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return PlayerNone
	}
}

// Player owns exactly one board; everything mutable about
// a player lives in that board and its fleet.
type Player struct {
	id    PlayerID
	board *Board
}

func NewPlayer(id PlayerID) *Player {
	return &Player{
		id:    id,
		board: NewBoard(),
	}
}

func (p *Player) ID() PlayerID {
	return p.id
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) IsReady() bool {
	return p.board.IsReady()
}

func (p *Player) IsLoser() bool {
	return p.board.IsFleetSunk()
}

func (p PlayerID) String() string {
	switch p {
	case PlayerOne:
		return "1"
	case PlayerTwo:
		return "2"
	default:
		return "none"
	}
}

package connection

import (
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string      `json:"game_uuid"`
	Player   mb.PlayerID `json:"player"`
}

type RespJoinGame struct {
	GameUuid string      `json:"game_uuid"`
	Player   mb.PlayerID `json:"player"`
}

type RespGameState struct {
	State  mb.GameState `json:"state"`
	IsTurn bool         `json:"is_turn"`
}

type RespPlacement struct {
	Ship        string           `json:"ship"`
	Orientation mb.Orientation   `json:"orientation"`
	Cells       []mb.Coordinates `json:"cells,omitempty"`
	State       mb.GameState     `json:"state"`
	IsReady     bool             `json:"is_ready"`
}

type RespAttack struct {
	X                         int              `json:"x"`
	Y                         int              `json:"y"`
	Result                    string           `json:"result"`
	IsTurn                    bool             `json:"is_turn"`
	SunkShip                  string           `json:"sunk_ship,omitempty"`
	SunkenShipsPlayerOne      int              `json:"sunken_ships_player_one"`
	SunkenShipsPlayerTwo      int              `json:"sunken_ships_player_two"`
	DefenderSunkenShipsCoords []mb.Coordinates `json:"defender_sunken_ships_coords,omitempty"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespFleetStatus struct {
	Fleet               []mb.ShipStatus `json:"fleet"`
	OpponentSunkenShips []string        `json:"opponent_sunken_ships"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

package connection

import (
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

type ReqJoinGame struct {
	GameUuid string `json:"game_uuid"`
}

type ReqPlaceShip struct {
	Ship        string         `json:"ship"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Orientation mb.Orientation `json:"orientation"`
}

type ReqRotateShip struct {
	Ship string `json:"ship"`
}

type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}

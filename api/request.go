package api

import (
	"context"
	"encoding/json"
	"log"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

// Every incoming request carries its raw payload. Handlers decode
// what they need and always return a message to send back, with
// the error set when the request failed.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
	}

	var r Request
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return r
}

func decodePayload[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg.Payload, cerr.ErrInvalidRequestPayload(err)
	}
	return msg.Payload, nil
}

func sessionGame(session *mc.Session) (string, mb.PlayerID, error) {
	gameUuid := session.GameUuid()
	if gameUuid == "" {
		return "", mb.PlayerNone, cerr.ErrNoGameForSession(session.Id())
	}
	return gameUuid, session.Player(), nil
}

func (r Request) HandleCreateGame(gm mb.GameManager, session *mc.Session) mc.Message[mc.RespCreateGame] {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	if gameUuid := session.GameUuid(); gameUuid != "" {
		resp.AddErr(cerr.ErrSessionAlreadyInGame(session.Id(), gameUuid))
		return resp
	}

	gameUuid, err := gm.CreateGame(session.Id())
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	session.SetGame(gameUuid, mb.PlayerOne)

	resp.AddPayload(mc.RespCreateGame{GameUuid: gameUuid, Player: mb.PlayerOne})
	return resp
}

func (r Request) HandleJoinGame(gm mb.GameManager, session *mc.Session) mc.Message[mc.RespJoinGame] {
	resp := mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame)

	req, err := decodePayload[mc.ReqJoinGame](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	if gameUuid := session.GameUuid(); gameUuid != "" {
		resp.AddErr(cerr.ErrSessionAlreadyInGame(session.Id(), gameUuid))
		return resp
	}

	player, err := gm.JoinGame(req.GameUuid, session.Id())
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	session.SetGame(req.GameUuid, player)

	resp.AddPayload(mc.RespJoinGame{GameUuid: req.GameUuid, Player: player})
	return resp
}

// The returned result is only meaningful when the message has
// no error.
func (r Request) HandlePlaceShip(ctx context.Context, gm mb.GameManager, session *mc.Session) (mc.Message[mc.RespPlacement], mb.Result) {
	resp := mc.NewMessage[mc.RespPlacement](mc.CodePlaceShip)

	req, err := decodePayload[mc.ReqPlaceShip](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}
	kind, err := mb.ParseShipKind(req.Ship)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}
	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}

	var (
		result  mb.Result
		isReady bool
	)
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		res, err := g.PlaceShip(player, kind, mb.NewCoordinates(req.X, req.Y), req.Orientation)
		if err != nil {
			return err
		}
		board, err := g.Board(player)
		if err != nil {
			return err
		}
		result, isReady = res, board.IsReady()
		return nil
	})
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}

	resp.AddPayload(mc.RespPlacement{
		Ship:        kind.Name(),
		Orientation: result.Orientation,
		Cells:       result.Cells,
		State:       result.State,
		IsReady:     isReady,
	})
	return resp, result
}

func (r Request) HandleRotateShip(ctx context.Context, gm mb.GameManager, session *mc.Session) mc.Message[mc.RespPlacement] {
	resp := mc.NewMessage[mc.RespPlacement](mc.CodeRotateShip)

	req, err := decodePayload[mc.ReqRotateShip](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	kind, err := mb.ParseShipKind(req.Ship)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	var result mb.Result
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		res, err := g.RotateShip(player, kind)
		result = res
		return err
	})
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	resp.AddPayload(mc.RespPlacement{
		Ship:        kind.Name(),
		Orientation: result.Orientation,
		State:       result.State,
	})
	return resp
}

func (r Request) HandleResetPlacement(ctx context.Context, gm mb.GameManager, session *mc.Session) mc.Message[mc.RespPlacement] {
	resp := mc.NewMessage[mc.RespPlacement](mc.CodeResetPlacement)

	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	var result mb.Result
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		res, err := g.ResetPlayerPlacement(player)
		result = res
		return err
	})
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	resp.AddPayload(mc.RespPlacement{Cells: result.Cells, State: result.State})
	return resp
}

// HandleAttack returns the response of the attacker. IsTurn is set
// from the attacker's point of view.
func (r Request) HandleAttack(ctx context.Context, gm mb.GameManager, session *mc.Session) (mc.Message[mc.RespAttack], mb.Result) {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	req, err := decodePayload[mc.ReqAttack](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}
	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}

	var (
		result       mb.Result
		sunkenShips1 int
		sunkenShips2 int
	)
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		res, err := g.FireShot(player, mb.NewCoordinates(req.X, req.Y))
		if err != nil {
			return err
		}
		boardOne, err := g.Board(mb.PlayerOne)
		if err != nil {
			return err
		}
		boardTwo, err := g.Board(mb.PlayerTwo)
		if err != nil {
			return err
		}
		result, sunkenShips1, sunkenShips2 = res, boardOne.SunkenShips(), boardTwo.SunkenShips()
		return nil
	})
	if err != nil {
		resp.AddErr(err)
		return resp, mb.Result{}
	}

	resp.AddPayload(mc.RespAttack{
		X:                         req.X,
		Y:                         req.Y,
		Result:                    result.Kind.String(),
		IsTurn:                    isTurn(result.State, player),
		SunkShip:                  result.SunkShip,
		SunkenShipsPlayerOne:      sunkenShips1,
		SunkenShipsPlayerTwo:      sunkenShips2,
		DefenderSunkenShipsCoords: result.SunkShipCells,
	})
	return resp, result
}

func (r Request) HandleFleetStatus(ctx context.Context, gm mb.GameManager, session *mc.Session) mc.Message[mc.RespFleetStatus] {
	resp := mc.NewMessage[mc.RespFleetStatus](mc.CodeFleetStatus)

	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	var status mc.RespFleetStatus
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		own, err := g.Board(player)
		if err != nil {
			return err
		}
		opponent, err := g.OpponentBoard(player)
		if err != nil {
			return err
		}

		status.Fleet = own.FleetStatus()
		status.OpponentSunkenShips = make([]string, 0, mb.FleetSize)
		for _, ship := range opponent.Fleet() {
			if ship.IsSunk() {
				status.OpponentSunkenShips = append(status.OpponentSunkenShips, ship.Name())
			}
		}
		return nil
	})
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	resp.AddPayload(status)
	return resp
}

func (r Request) HandleNewGameCall(ctx context.Context, gm mb.GameManager, session *mc.Session) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeNewGameCall)

	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	if err := gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		return g.CallNewGame(player)
	}); err != nil {
		resp.AddErr(err)
	}
	return resp
}

func (r Request) HandleRejectNewGameCall(ctx context.Context, gm mb.GameManager, session *mc.Session) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeNewGameCallRejected)

	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	if err := gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		return g.RejectNewGame(player)
	}); err != nil {
		resp.AddErr(err)
	}
	return resp
}

// HandleNewGame restarts the game of the session with fresh boards,
// provided the other player called for it.
func (r Request) HandleNewGame(ctx context.Context, gm mb.GameManager, session *mc.Session) (mc.Message[mc.RespGameState], mb.GameState) {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeNewGame)

	gameUuid, player, err := sessionGame(session)
	if err != nil {
		resp.AddErr(err)
		return resp, mb.GameState{}
	}

	var state mb.GameState
	err = gm.Do(ctx, gameUuid, func(g *mb.Game) error {
		st, err := g.AcceptNewGame(player)
		state = st
		return err
	})
	if err != nil {
		resp.AddErr(err)
		return resp, mb.GameState{}
	}

	resp.AddPayload(mc.RespGameState{State: state, IsTurn: isTurn(state, player)})
	return resp, state
}

// isTurn reports whether player is the one expected to act in state.
func isTurn(state mb.GameState, player mb.PlayerID) bool {
	return state.Phase != mb.PhaseGameOver && state.CurrentPlayer == player
}

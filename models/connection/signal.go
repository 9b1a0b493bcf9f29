package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeJoinGame

	// Sent to both players once the second player joins;
	// player one starts placing ships
	CodeSelectGrid

	CodePlaceShip
	CodeRotateShip
	CodeResetPlacement

	// Player one committed the fleet, player two places now
	CodeSetupTurn
	CodeStartGame
	CodeAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeOtherPlayerDisconnected
	CodeOtherPlayerReconnected
	CodeOtherPlayerGracePeriod

	// Ask the other player for a new game on the same session
	CodeNewGameCall
	CodeNewGameCallAccepted
	CodeNewGameCallRejected
	CodeNewGame

	// Players can send template texts and emojis to each other
	CodePlayerInteraction

	// Ship by ship hits of own fleet plus sunk ships of the opponent
	CodeFleetStatus
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}

package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-engine/db/sqlc"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"

	// upper bound for one engine operation, queueing included
	gameOpTimeout = time.Second * 5
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Analytics counts server events per server address.
// *sqlc.AnalyticsManager satisfies it.
type Analytics interface {
	IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error
	IncrementGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) error
	IncrementNewGameCallsCount(ctx context.Context, serverIpNet pqtype.Inet) error
}

type noopAnalytics struct{}

func (noopAnalytics) IncrementGamesCreatedCount(context.Context, pqtype.Inet) error  { return nil }
func (noopAnalytics) IncrementGamesFinishedCount(context.Context, pqtype.Inet) error { return nil }
func (noopAnalytics) IncrementNewGameCallsCount(context.Context, pqtype.Inet) error  { return nil }

var _ Analytics = (*sqlc.AnalyticsManager)(nil)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      Analytics
}

// A nil analytics disables analytics.
func NewRequestProcessor(sessionManager mc.SessionManager, gameManager mb.GameManager, analytics Analytics) RequestProcessor {
	if analytics == nil {
		analytics = noopAnalytics{}
	}
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	if sessionIdQuery == "" {
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
		return
	}

	// The session loop of this id keeps running on the new connection
	if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
		log.Println(err)
		resp := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
		resp.AddErr(err)
		_ = conn.WriteJSON(resp)
		_ = conn.Close()
	}
}

// serverIpNet keys analytics rows by the address the client
// connected to.
func serverIpNet(addr net.Addr) pqtype.Inet {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return pqtype.Inet{}
	}

	ip, bits := tcpAddr.IP, 128
	if ipv4 := ip.To4(); ipv4 != nil {
		ip, bits = ipv4, 32
	}
	return pqtype.Inet{
		IPNet: net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)},
		Valid: true,
	}
}

// Analytics failures are logged and never stop the game.
func recordAnalytics(inc func(context.Context, pqtype.Inet) error, serverIp pqtype.Inet) {
	if !serverIp.Valid {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := inc(ctx, serverIp); err != nil {
		log.Println("analytics:", err)
	}
}

// otherSessionId is empty until a second player is in the game.
func (rp RequestProcessor) otherSessionId(session *mc.Session) string {
	gameUuid := session.GameUuid()
	if gameUuid == "" {
		return ""
	}
	sessionId, err := rp.gameManager.FetchSessionId(gameUuid, session.Player().Other())
	if err != nil {
		return ""
	}
	return sessionId
}

// notifyOther forwards msg to the other player if there is one. A
// failing other connection is not a reason to drop this session.
func (rp RequestProcessor) notifyOther(session *mc.Session, msg interface{}, msgType uint8) {
	receiverSessionId := rp.otherSessionId(session)
	if receiverSessionId == "" {
		return
	}
	if err := rp.sessionManager.Communicate(session.Id(), receiverSessionId, msg, msgType); err != nil {
		log.Printf("failed to notify session %s: %s\n", receiverSessionId, err)
	}
}

func (rp RequestProcessor) write(session *mc.Session, msg interface{}) error {
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON, rp.otherSessionId(session))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if gameUuid := session.GameUuid(); gameUuid != "" {
			otherSessionId := rp.otherSessionId(session)
			rp.gameManager.LeaveGame(gameUuid, sessionId)

			// The game is gone, the other player is free to create or join again
			if otherSession, err := rp.sessionManager.FindSession(otherSessionId); err == nil {
				otherSession.SetGame("", mb.PlayerNone)
				if err := rp.sessionManager.Communicate(sessionId, otherSessionId, mc.NewMessage[mc.NoPayload](mc.CodeOtherPlayerDisconnected), mc.MessageTypeJSON); err != nil {
					log.Printf("failed to notify session %s: %s\n", otherSessionId, err)
				}
			}
		}
		_ = session.Conn().Close()
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.write(session, resp); err != nil {
		return
	}

	serverIp := serverIpNet(session.Conn().LocalAddr())

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session, rp.otherSessionId(session))
		if err != nil {
			// Retries are already done at this point; the
			// connection could not be recovered
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil || code == mc.CodeSignalAbsent {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err := rp.write(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		ctx, cancel := context.WithTimeout(context.Background(), gameOpTimeout)
		err = rp.handleSignal(ctx, session, code, payload, serverIp)
		cancel()
		if err != nil {
			break sessionLoop
		}
	}
}

// handleSignal processes one request. A returned error means the
// connection of session is not usable anymore.
func (rp RequestProcessor) handleSignal(ctx context.Context, session *mc.Session, code uint8, payload []byte, serverIp pqtype.Inet) error {
	req := NewRequest(payload)

	switch code {
	case mc.CodeCreateGame:
		respMsg := req.HandleCreateGame(rp.gameManager, session)
		if respMsg.Error == nil {
			recordAnalytics(rp.analytics.IncrementGamesCreatedCount, serverIp)
		}
		return rp.write(session, respMsg)

	// Once the second player is in, both are told to start
	// selecting their grids. Player one places first.
	case mc.CodeJoinGame:
		respMsg := req.HandleJoinGame(rp.gameManager, session)
		if err := rp.write(session, respMsg); err != nil {
			return err
		}
		if respMsg.Error != nil {
			return nil
		}

		// the host may have started placing before anyone joined
		var state mb.GameState
		if err := rp.gameManager.Do(ctx, session.GameUuid(), func(g *mb.Game) error {
			state = g.State()
			return nil
		}); err != nil {
			log.Println(err)
			return nil
		}

		selectGrid := mc.NewMessage[mc.RespGameState](mc.CodeSelectGrid)
		selectGrid.AddPayload(mc.RespGameState{State: state, IsTurn: isTurn(state, session.Player())})
		if err := rp.write(session, selectGrid); err != nil {
			return err
		}
		selectGrid.Payload.IsTurn = isTurn(state, session.Player().Other())
		rp.notifyOther(session, selectGrid, mc.MessageTypeJSON)
		return nil

	case mc.CodePlaceShip:
		respMsg, result := req.HandlePlaceShip(ctx, rp.gameManager, session)
		if err := rp.write(session, respMsg); err != nil {
			return err
		}
		if respMsg.Error != nil || !respMsg.Payload.IsReady {
			return nil
		}

		switch result.State.Phase {
		// player one committed the fleet
		case mb.PhaseSetup:
			setupTurn := mc.NewMessage[mc.RespGameState](mc.CodeSetupTurn)
			setupTurn.AddPayload(mc.RespGameState{State: result.State, IsTurn: true})
			rp.notifyOther(session, setupTurn, mc.MessageTypeJSON)

		case mb.PhaseInProgress:
			startGame := mc.NewMessage[mc.RespGameState](mc.CodeStartGame)
			startGame.AddPayload(mc.RespGameState{State: result.State, IsTurn: isTurn(result.State, result.Player)})
			if err := rp.write(session, startGame); err != nil {
				return err
			}
			startGame.Payload.IsTurn = isTurn(result.State, result.Player.Other())
			rp.notifyOther(session, startGame, mc.MessageTypeJSON)
		}
		return nil

	case mc.CodeRotateShip:
		return rp.write(session, req.HandleRotateShip(ctx, rp.gameManager, session))

	case mc.CodeResetPlacement:
		return rp.write(session, req.HandleResetPlacement(ctx, rp.gameManager, session))

	// The defender gets the same shot with its own turn flag.
	// A winning shot ends the game for both.
	case mc.CodeAttack:
		respMsg, result := req.HandleAttack(ctx, rp.gameManager, session)
		if err := rp.write(session, respMsg); err != nil {
			return err
		}
		if respMsg.Error != nil {
			return nil
		}

		defenderMsg := respMsg
		defenderMsg.Payload.IsTurn = isTurn(result.State, result.Player.Other())
		rp.notifyOther(session, defenderMsg, mc.MessageTypeJSON)

		if result.Kind != mb.ResultWin {
			return nil
		}
		recordAnalytics(rp.analytics.IncrementGamesFinishedCount, serverIp)

		endGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
		endGame.AddPayload(mc.RespEndGame{PlayerMatchStatus: mc.PlayerMatchStatusWon})
		if err := rp.write(session, endGame); err != nil {
			return err
		}
		endGame.Payload.PlayerMatchStatus = mc.PlayerMatchStatusLost
		rp.notifyOther(session, endGame, mc.MessageTypeJSON)
		return nil

	case mc.CodeFleetStatus:
		return rp.write(session, req.HandleFleetStatus(ctx, rp.gameManager, session))

	// Ask the other player for a new game. The game is restarted
	// only when they accept the pending call.
	case mc.CodeNewGameCall:
		if rp.otherSessionId(session) == "" {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeNewGameCall)
			msg.AddErr(cerr.ErrNoOtherPlayer(session.GameUuid()))
			return rp.write(session, msg)
		}
		respMsg := req.HandleNewGameCall(ctx, rp.gameManager, session)
		if respMsg.Error != nil {
			return rp.write(session, respMsg)
		}
		recordAnalytics(rp.analytics.IncrementNewGameCallsCount, serverIp)
		rp.notifyOther(session, respMsg, mc.MessageTypeJSON)
		return nil

	case mc.CodeNewGameCallAccepted:
		respMsg, state := req.HandleNewGame(ctx, rp.gameManager, session)
		if err := rp.write(session, respMsg); err != nil {
			return err
		}
		if respMsg.Error != nil {
			return nil
		}
		respMsg.Payload.IsTurn = isTurn(state, session.Player().Other())
		rp.notifyOther(session, respMsg, mc.MessageTypeJSON)
		return nil

	case mc.CodeNewGameCallRejected:
		respMsg := req.HandleRejectNewGameCall(ctx, rp.gameManager, session)
		if respMsg.Error != nil {
			return rp.write(session, respMsg)
		}
		rp.notifyOther(session, respMsg, mc.MessageTypeJSON)
		return nil

	// Template texts and emojis go to the other player as they are
	case mc.CodePlayerInteraction:
		rp.notifyOther(session, payload, mc.MessageTypeBytes)
		return nil

	default:
		respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
		respInvalidSignal.AddError("", "invalid code in the incoming payload")
		return rp.write(session, respInvalidSignal)
	}
}

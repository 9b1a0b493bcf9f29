package connection

import (
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn) error
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client. The connection is swapped on
// reconnection, so it is always read through Conn().
type Session struct {
	id                     string
	conn                   *websocket.Conn
	reconnectionSignalChan chan bool
	awaitingReconnection   bool
	createdAt              time.Time
	lastSeen               time.Time

	gameUuid string
	player   mb.PlayerID

	// mu guards conn, lastSeen and the reconnection state.
	// writeMu serializes writers since gorilla/websocket allows
	// only one concurrent writer.
	mu      sync.Mutex
	writeMu sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	now := time.Now()
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan bool),
		createdAt:              now,
		lastSeen:               now,
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) GameUuid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameUuid
}

func (s *Session) Player() mb.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func (s *Session) SetGame(gameUuid string, player mb.PlayerID) {
	s.mu.Lock()
	s.gameUuid = gameUuid
	s.player = player
	s.mu.Unlock()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen)
}

// awaitReconnection opens the grace period of the session and
// returns the channel closed on reconnection.
func (s *Session) awaitReconnection() chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaitingReconnection = true
	return s.reconnectionSignalChan
}

// stopAwaitingReconnection closes the grace period. It reports
// false if a reconnection already took place.
func (s *Session) stopAwaitingReconnection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasAwaiting := s.awaitingReconnection
	s.awaitingReconnection = false
	return wasAwaiting
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Happens if the IOS client goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	/*
		This might mean that the client is not from the application.
		Breaking not to overwhelm the server with invalid payloads (e.g. binary data)
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8

writeJsonLoop:
	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Printf("writing json failed to ws [%s]; retrying... (retry no. %d)\n", conn.RemoteAddr().String(), retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeJsonLoop
			}
			log.Printf("max retries reached for writing to ws [%s]:%s", conn.RemoteAddr().String(), err)
			return NewConnErr(ConnLoopBreak)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking writeJsonLoop due to: " + err.Error())
		}
	}
}

// Handles the errors that occurs when reading from
// ws connection. `ConnLoopContinue` means read again.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.Conn().RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.Conn().RemoteAddr().String(), err)
		return ConnLoopBreak
	}
}

// Only a session in its grace period accepts a new connection;
// a live connection is never replaced.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingReconnection {
		return cerr.ErrSessionNotReconnecting(s.id)
	}
	s.awaitingReconnection = false

	_ = s.conn.Close()
	s.conn = conn
	s.lastSeen = time.Now()

	// Signal for reconnection
	close(s.reconnectionSignalChan)
	s.reconnectionSignalChan = make(chan bool)
	return nil
}

var _ ConnectionHandler = (*Session)(nil)

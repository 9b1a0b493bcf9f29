package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

const (
	defaultCleanupInterval = time.Minute * 20
	defaultGracePeriod     = time.Minute * 2
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	Communicate(senderSessionId, receiverSessionId string, msg interface{}, msgType uint8) error
	HandleAbnormalClosureSession(session *Session, otherSessionId string) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8, otherSessionId string) error
	ReadFromSessionConn(session *Session, otherSessionId string) (int, []byte, error)
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type Option func(*BattleshipSessionManager)

// Sessions idle for longer than interval are dropped.
func WithCleanupInterval(interval time.Duration) Option {
	return func(bsm *BattleshipSessionManager) {
		if interval > 0 {
			bsm.cleanupInterval = interval
		}
	}
}

// How long the other player waits for a reconnection
// after an abnormal closure.
func WithGracePeriod(period time.Duration) Option {
	return func(bsm *BattleshipSessionManager) {
		if period > 0 {
			bsm.gracePeriod = period
		}
	}
}

func NewBattleshipSessionManager(opts ...Option) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		gracePeriod:     defaultGracePeriod,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Printf("session terminated: %s\n", sessionId)
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	if err := session.reconnectionAfterAbnormalClosure(conn); err != nil {
		return err
	}
	log.Printf("session reconnected: %s\n", sessionId)
	return nil
}

// This method sends the msg from one session to another
func (bsm *BattleshipSessionManager) Communicate(senderSessionId, receiverSessionId string, msg interface{}, msgType uint8) error {
	receiverSession, err := bsm.FindSession(receiverSessionId)
	if err != nil {
		return err
	}
	return bsm.WriteToSessionConn(receiverSession, msg, msgType, senderSessionId)
}

// To ensure that there is no dangling connections, server
// session manager closes sessions idle for longer than
// the cleanup interval.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	assumedClosedConns := 10
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		toDelete := make([]*Session, 0, assumedClosedConns)
		for _, session := range bsm.sessions {
			if session.idleFor() > bsm.cleanupInterval {
				toDelete = append(toDelete, session)
			}
		}

		log.Println("Clean up sessions:")
		for _, session := range toDelete {
			delete(bsm.sessions, session.id)
			_ = session.Conn().Close()
			log.Printf("removed: %s", session.id)
		}
		bsm.mu.Unlock()
	}
}

// This function takes care of abnormal closures happening
// to either of the clients. This happens due to backgrounding
// in IOS clients or any other unexpected reasons for web apps.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session, otherSessionId string) error {
	// Without another player there is nobody to wait for
	if otherSessionId == "" {
		return NewConnErr(ConnLoopBreak).AddDesc("no other player in the game")
	}

	otherSession, err := bsm.FindSession(otherSessionId)
	if err != nil {
		return NewConnErr(ConnLoopBreak).AddDesc("other session is nil; invalid session")
	}

	reconnected := s.awaitReconnection()
	defer s.stopAwaitingReconnection()

	// If the other session connection is faulty too, there is no need to continue
	if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerGracePeriod), MessageTypeJSON); err != nil {
		return err
	}

	log.Printf("starting grace period for %s\n", s.id)
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		// a reconnection may land right as the timer fires
		if s.stopAwaitingReconnection() {
			if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerDisconnected), MessageTypeJSON); err != nil {
				return err
			}
			return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)
		}

	case <-reconnected:
	}

	if err := otherSession.writeToConnWithRetry(NewMessage[NoPayload](CodeOtherPlayerReconnected), MessageTypeJSON); err != nil {
		return err
	}
	log.Printf("player reconnected, session: %s\n", s.id)
	return nil
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8, otherSessionId string) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	if connErr.Code() == ConnLoopAbnormalClosureRetry {
		if err := bsm.HandleAbnormalClosureSession(session, otherSessionId); err != nil {
			return err
		}
		// the message is lost with the old connection; resend once
		return session.writeToConnWithRetry(msg, msgType)
	}
	return connErr
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session, otherSessionId string) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session, otherSessionId); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}

// FetchCodeFromMsg extracts the signal code of an incoming payload.
func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, nil
	}

	return *signal.Code, nil
}

// Number of live sessions
func (bsm *BattleshipSessionManager) Len() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

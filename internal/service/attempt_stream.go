package service

import (
	"encoding/json"
	"net/http"
	"time"

	"mindclass_backend/internal/session"
	"mindclass_backend/pkg/logger"
	"mindclass_backend/pkg/monitoring"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message types on the attempt stream.
const (
	MsgState         = "STATE"
	MsgError         = "ERROR"
	MsgAnswer        = "ANSWER"
	MsgRequestSubmit = "REQUEST_SUBMIT"
	MsgCancelSubmit  = "CANCEL_SUBMIT"
	MsgSubmit        = "SUBMIT"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type wsCommand struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type AnswerCommand struct {
	QuestionID int    `json:"questionId"`
	Value      string `json:"value"`
}

// AttemptClient pushes the student's session snapshot once per countdown
// tick and applies the commands the student sends back.
type AttemptClient struct {
	Sessions *SessionService
	Conn     *websocket.Conn
	Send     chan []byte
	UserID   string
	Limiter  *rate.Limiter
	done     chan struct{}
}

func (c *AttemptClient) push(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Log.Error("Encode stream message", zap.Error(err))
		return
	}
	select {
	case c.Send <- data:
		monitoring.StreamMessages.WithLabelValues(msg.Type, "out").Inc()
	default:
		// slow reader; the next tick carries the full state again
	}
}

func (c *AttemptClient) pushState(snap session.Snapshot, err error) {
	if err != nil {
		c.push(WSMessage{Type: MsgError, Data: err.Error()})
	}
	c.push(WSMessage{Type: MsgState, Data: snap})
}

// handle applies one command and returns the resulting snapshot.
func (c *AttemptClient) handle(cmd wsCommand) (session.Snapshot, error) {
	switch cmd.Type {
	case MsgAnswer:
		var a AnswerCommand
		if err := json.Unmarshal(cmd.Data, &a); err != nil {
			return c.Sessions.State(c.UserID), err
		}
		return c.Sessions.Answer(c.UserID, a.QuestionID, a.Value)
	case MsgRequestSubmit:
		return c.Sessions.RequestSubmit(c.UserID)
	case MsgCancelSubmit:
		return c.Sessions.CancelSubmit(c.UserID)
	case MsgSubmit:
		_, err := c.Sessions.Submit(c.UserID)
		return c.Sessions.State(c.UserID), err
	default:
		return c.Sessions.State(c.UserID), nil
	}
}

func (c *AttemptClient) readPump() {
	defer func() {
		close(c.done)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("Attempt stream closed unexpectedly", zap.Error(err), zap.String("uid", c.UserID))
			}
			return
		}
		if !c.Limiter.Allow() {
			continue
		}

		var cmd wsCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.push(WSMessage{Type: MsgError, Data: "malformed message"})
			continue
		}
		monitoring.StreamMessages.WithLabelValues(cmd.Type, "in").Inc()
		c.pushState(c.handle(cmd))
	}
}

func (c *AttemptClient) writePump() {
	tick := time.NewTicker(c.Sessions.TickInterval())
	ping := time.NewTicker(pingPeriod)
	defer func() {
		tick.Stop()
		ping.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-tick.C:
			c.pushState(c.Sessions.State(c.UserID), nil)
		case <-ping.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeAttempt upgrades the request and streams the user's attempt until
// the client disconnects.
func ServeAttempt(sessions *SessionService, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.String("uid", userID))
		return
	}
	client := &AttemptClient{
		Sessions: sessions,
		Conn:     conn,
		Send:     make(chan []byte, 64),
		UserID:   userID,
		Limiter:  rate.NewLimiter(rate.Limit(10), 20),
		done:     make(chan struct{}),
	}
	client.pushState(sessions.State(userID), nil)

	go client.writePump()
	go client.readPump()
}

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Request types sent by clients.
const (
	RequestNew   = "new"
	RequestMove  = "move"
	RequestState = "state"
)

// Response types sent to clients.
const (
	ResponseState = "state"
	ResponseMove  = "move"
	ResponseError = "error"
)

// Request is a client message.
type Request struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// Response is a server message.
type Response struct {
	Type  string               `json:"type"`
	State *session.State       `json:"state,omitempty"`
	Move  *session.MoveOutcome `json:"move,omitempty"`
	Error string               `json:"error,omitempty"`
}

// conn is one WebSocket client playing one game at a time.
type conn struct {
	server *Server
	ws     *websocket.Conn
	send   chan Response
	gameID string
}

// handleWS upgrades the request and plays until the client disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &conn{
		server: s,
		ws:     ws,
		send:   make(chan Response, 16),
	}
	s.logger.Info("client connected", "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()

	if c.gameID != "" {
		s.games.Remove(c.gameID)
	}
	s.logger.Info("client disconnected", "remote", r.RemoteAddr)
}

// readPump handles client requests until the connection fails.
// It is the only sender on c.send and closes it on return.
func (c *conn) readPump() {
	defer func() {
		close(c.send)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.newGame()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("websocket error", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.send <- Response{Type: ResponseError, Error: "invalid message: " + err.Error()}
			continue
		}
		c.handle(req)
	}
}

func (c *conn) handle(req Request) {
	switch req.Type {
	case RequestNew:
		c.server.games.Remove(c.gameID)
		c.newGame()

	case RequestState:
		st, err := c.server.games.Get(c.gameID)
		if err != nil {
			c.send <- Response{Type: ResponseError, Error: err.Error()}
			return
		}
		c.send <- Response{Type: ResponseState, State: &st}

	case RequestMove:
		dir, err := t2048.ParseDirection(req.Direction)
		if err != nil {
			c.send <- Response{Type: ResponseError, Error: err.Error()}
			return
		}
		out, err := c.server.games.Move(c.gameID, dir)
		if errors.Is(err, session.ErrGameOver) {
			c.send <- Response{Type: ResponseError, Error: err.Error(), State: &out.State}
			return
		}
		if err != nil {
			c.send <- Response{Type: ResponseError, Error: err.Error()}
			return
		}
		c.send <- Response{Type: ResponseMove, Move: &out}

	default:
		c.send <- Response{Type: ResponseError, Error: "unknown request type " + req.Type}
	}
}

func (c *conn) newGame() {
	st, err := c.server.games.Create()
	if err != nil {
		c.gameID = ""
		c.send <- Response{Type: ResponseError, Error: err.Error()}
		return
	}
	c.gameID = st.ID
	c.send <- Response{Type: ResponseState, State: &st}
}

// writePump sends responses and keepalive pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case resp, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteJSON(resp); err != nil {
				// Drain so readPump never blocks on a dead connection.
				for range c.send {
				}
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				for range c.send {
				}
				return
			}
		}
	}
}

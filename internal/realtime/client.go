package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kodipay/kodipay-server/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Dispatcher persists a chat message and relays it. Implemented by the
// message service; defined here so the hub package stays leaf-side.
type Dispatcher interface {
	SendGroup(ctx context.Context, propertyID, senderID uuid.UUID, content string) error
	SendDirect(ctx context.Context, senderID, recipientID uuid.UUID, content string) error
}

// wsConn is the slice of *websocket.Conn the session uses.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

type session struct {
	hub    *Hub
	userID uuid.UUID
	conn   wsConn
	send   chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; token auth happens
	// before the upgrade, so cross-origin upgrades are acceptable here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and runs the session pumps. userID comes from
// the already-validated access token.
func ServeWS(hub *Hub, dispatcher Dispatcher, w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	s := &session{
		hub:    hub,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}

	go s.writePump()
	go s.readPump(dispatcher)
}

/* ------------------------------------------------------------------
   Inbound events
------------------------------------------------------------------ */

type joinGroupPayload struct {
	PropertyID uuid.UUID `json:"propertyId"`
}

type joinDirectPayload struct {
	RecipientID uuid.UUID `json:"recipientId"`
}

type sendGroupPayload struct {
	PropertyID uuid.UUID `json:"propertyId"`
	Content    string    `json:"content"`
}

type sendDirectPayload struct {
	RecipientID uuid.UUID `json:"recipientId"`
	Content     string    `json:"content"`
}

func (s *session) readPump(dispatcher Dispatcher) {
	defer func() {
		s.hub.remove(s)
		close(s.send)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Logger.WithError(err).Debugf("Websocket read error for user %s", s.userID)
			}
			return
		}
		s.handleEvent(dispatcher, raw)
	}
}

func (s *session) handleEvent(dispatcher Dispatcher, raw []byte) {
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		utils.Logger.WithError(err).Debug("Discarding malformed websocket frame")
		return
	}

	ctx := context.Background()

	switch env.Event {
	case "joinGroupChat":
		var p joinGroupPayload
		if err := json.Unmarshal(env.Data, &p); err == nil {
			s.hub.join(GroupRoom(p.PropertyID), s)
		}
	case "joinDirectMessage":
		var p joinDirectPayload
		if err := json.Unmarshal(env.Data, &p); err == nil {
			s.hub.join(DirectRoom(s.userID, p.RecipientID), s)
		}
	case "sendGroupMessage":
		var p sendGroupPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Content == "" {
			return
		}
		if err := dispatcher.SendGroup(ctx, p.PropertyID, s.userID, p.Content); err != nil {
			utils.Logger.WithError(err).Error("Failed to handle sendGroupMessage")
		}
	case "sendDirectMessage":
		var p sendDirectPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Content == "" {
			return
		}
		if err := dispatcher.SendDirect(ctx, s.userID, p.RecipientID, p.Content); err != nil {
			utils.Logger.WithError(err).Error("Failed to handle sendDirectMessage")
		}
	default:
		utils.Logger.Debugf("Unknown websocket event %q from user %s", env.Event, s.userID)
	}
}

/* ------------------------------------------------------------------
   Outbound pump
------------------------------------------------------------------ */

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

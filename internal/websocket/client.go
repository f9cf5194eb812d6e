package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	room        *SeriesRoom
	userID      uuid.UUID
	displayName string
	team        domain.TeamSlot // "" until joined; empty means spectator
	closed      bool
	logger      *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, displayName string, logger *zap.Logger) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		userID:      userID,
		displayName: displayName,
		logger:      logger,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("unreadable client message", zap.Error(err))
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeJoinSeries:
		var payload JoinSeriesPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid join series payload")
			return
		}
		c.hub.joinSeries <- &JoinSeriesRequest{
			Client:   c,
			SeriesID: payload.SeriesID,
		}

	case MessageTypeReady:
		var payload ReadyPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid ready payload")
			return
		}
		if c.room != nil {
			c.room.ready <- &ReadyRequest{Client: c, Ready: payload.Ready}
		}

	case MessageTypeSelectSide:
		var payload SelectSidePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid select side payload")
			return
		}
		if c.room != nil {
			c.room.selectSide <- &SelectSideRequest{Client: c, Side: payload.Side}
		}

	case MessageTypeClearSide:
		if c.room != nil {
			c.room.clearSide <- c
		}

	case MessageTypeHoverChampion:
		var payload HoverChampionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid hover champion payload")
			return
		}
		if c.room != nil {
			c.room.hoverChampion <- &HoverChampionRequest{Client: c, ChampionID: payload.ChampionID}
		}

	case MessageTypeLockIn:
		var payload LockInPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid lock in payload")
			return
		}
		if c.room != nil {
			c.room.lockIn <- &LockInRequest{Client: c, ChampionID: payload.ChampionID}
		}

	case MessageTypeBeginFill:
		var payload BeginFillPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid begin fill payload")
			return
		}
		if c.room != nil {
			c.room.beginFill <- &BeginFillRequest{Client: c, Kind: payload.Kind, SlotIndex: payload.SlotIndex}
		}

	case MessageTypeConfirmFill:
		var payload ConfirmFillPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid confirm fill payload")
			return
		}
		if c.room != nil {
			c.room.confirmFill <- &ConfirmFillRequest{Client: c, ChampionID: payload.ChampionID}
		}

	case MessageTypeCancelFill:
		if c.room != nil {
			c.room.cancelFill <- c
		}

	case MessageTypeSyncState:
		if c.room != nil {
			c.room.syncState <- c
		}
	}
}

func (c *Client) sendError(code, message string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	data, _ := json.Marshal(msg)

	defer func() {
		recover() // send channel may already be closed
	}()
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal outbound message", zap.Error(err))
		return
	}

	defer func() {
		recover()
	}()
	select {
	case c.send <- data:
	default:
	}
}

// Close shuts the outbound channel. Called by the hub exactly once.
func (c *Client) Close() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

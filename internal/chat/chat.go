// Package chat streams messages for one chat room over WebSocket.
//
// The client joins the room with a join-chat event, receives nova-mensagem
// events while attached, and sends leave-chat on teardown. Outgoing messages
// go through the REST gateway; the echo arrives through the socket.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/klausmullerDev/vizinhanca-cli/logging"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
)

// Event is the JSON envelope exchanged on the socket.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	eventJoin         = "join-chat"
	eventLeave        = "leave-chat"
	eventNovaMensagem = "nova-mensagem"
)

// Conn is an attached chat room.
type Conn struct {
	ws     *websocket.Conn
	logger *logrus.Entry
	chatID string

	// Messages delivers nova-mensagem payloads until the room is left or
	// the connection drops, at which point the channel closes.
	Messages chan models.Mensagem
}

// SocketURL converts the API base URL into the WebSocket endpoint.
func SocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Join connects to the socket host, enters the chat room and starts the
// read loop. The token authenticates the socket the same way REST calls do.
func Join(ctx context.Context, baseURL, token, chatID string) (*Conn, error) {
	wsURL, err := SocketURL(baseURL)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chat socket: %w", err)
	}

	c := &Conn{
		ws:       ws,
		logger:   logging.NewLogger("chat"),
		chatID:   chatID,
		Messages: make(chan models.Mensagem, 16),
	}

	if err := c.emit(eventJoin, chatID); err != nil {
		ws.Close()
		return nil, fmt.Errorf("failed to join chat room: %w", err)
	}

	go c.readLoop(ctx)
	return c, nil
}

// emit sends an event envelope on the socket.
func (c *Conn) emit(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.ws.WriteJSON(Event{Event: event, Data: payload})
}

// readLoop forwards nova-mensagem events until the context ends or the
// connection drops. Unknown events are ignored.
func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.Messages)

	for {
		var ev Event
		if err := c.ws.ReadJSON(&ev); err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.WithError(err).Debug("socket read ended")
			}
			return
		}

		if ev.Event != eventNovaMensagem {
			continue
		}

		var msg models.Mensagem
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			c.logger.WithError(err).Warn("malformed nova-mensagem payload")
			continue
		}

		select {
		case c.Messages <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// Leave exits the room and closes the connection.
func (c *Conn) Leave() error {
	if err := c.emit(eventLeave, c.chatID); err != nil {
		c.logger.WithError(err).Debug("leave-chat emit failed")
	}
	return c.ws.Close()
}

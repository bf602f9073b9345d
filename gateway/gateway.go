// Package gateway maintains the WebSocket event stream and feeds decoded
// events to a client dispatcher, one at a time in arrival order.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"revoltkit/models"
)

const pingInterval = 30 * time.Second

// Dispatcher consumes decoded events; client.Client implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.ServerEvent)
}

type Gateway struct {
	url   string
	token string
	conn  *websocket.Conn
}

func New(url, token string) *Gateway {
	return &Gateway{url: url, token: token}
}

// Connect dials the event stream and sends the authentication frame.
func (g *Gateway) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return fmt.Errorf("error dialing gateway: %w", err)
	}
	g.conn = conn

	auth := models.AuthenticateEvent{Type: "Authenticate", Token: g.token}
	if err := conn.WriteJSON(auth); err != nil {
		conn.Close()
		return fmt.Errorf("error authenticating: %w", err)
	}

	log.Info().Str("url", g.url).Msg("gateway connected")
	return nil
}

// Run reads frames until the context is canceled or the connection drops,
// dispatching each decoded event. Frames that fail to decode are reported
// and skipped; they never terminate the stream.
func (g *Gateway) Run(ctx context.Context, d Dispatcher) error {
	if g.conn == nil {
		return fmt.Errorf("gateway not connected")
	}
	defer g.conn.Close()

	go g.keepAlive(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, data, err := g.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("error reading gateway frame: %w", err)
		}

		ev, err := models.ParseEvent(data)
		if err != nil {
			log.Warn().Err(err).Msg("dropping undecodable event")
			continue
		}

		d.Dispatch(ctx, ev)
	}
}

func (g *Gateway) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			ping := models.PingEvent{Type: "Ping", Data: t.Unix()}
			if err := g.conn.WriteJSON(ping); err != nil {
				log.Warn().Err(err).Msg("failed to send ping")
				return
			}
		}
	}
}

package web

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
	"github.com/vovakirdan/picklecatch/internal/input"
	"github.com/vovakirdan/picklecatch/internal/replay"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 240
)

// Client is one browser connection with its own game.
type Client struct {
	server     *Server
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	sessionID  string
	remoteAddr string
	logger     *log.Logger

	sampler *input.Sampler
	state   atomic.Value // picklecatch.State after the last tick

	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(s *Server, conn *websocket.Conn, sessionID, remoteAddr string) *Client {
	c := &Client{
		server:     s,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		done:       make(chan struct{}),
		sessionID:  sessionID,
		remoteAddr: remoteAddr,
		logger:     s.logger.With("session", sessionID[:8]),
		sampler:    input.NewSampler(),
	}
	c.state.Store(picklecatch.StateWelcome)
	return c
}

// Close ends the connection. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Done is closed once the connection has ended.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws error", "error", err)
			}
			return
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.logger.Warn("rate limit exceeded, disconnecting", "remote", c.remoteAddr)
			return
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))   //nolint:errcheck
			c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
			return
		}
	}
}

// SendJSON sends a typed message to the client. Like SendRaw it drops the
// message when the client is too slow, so use it for scene frames only.
func (c *Client) SendJSON(t string, data any) {
	if raw, ok := c.envelope(t, data); ok {
		c.SendRaw(raw)
	}
}

// SendEvent sends a message the client must not miss, such as a capture
// change. It waits up to writeWait for room in the send queue.
func (c *Client) SendEvent(t string, data any) {
	raw, ok := c.envelope(t, data)
	if !ok {
		return
	}

	timer := time.NewTimer(writeWait)
	defer timer.Stop()

	select {
	case <-c.done:
	case c.send <- raw:
	case <-timer.C:
		c.logger.Warn("send queue stalled, event dropped", "type", t)
	}
}

func (c *Client) envelope(t string, data any) ([]byte, bool) {
	raw, err := json.Marshal(Envelope{T: t, Data: data})
	if err != nil {
		c.logger.Error("marshal error", "type", t, "error", err)
		return nil, false
	}
	return raw, true
}

// SendRaw queues pre-marshaled bytes. Frames for a slow client are dropped.
func (c *Client) SendRaw(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Debug("unmarshal error", "error", err)
		return
	}

	switch env.T {
	case MsgInput:
		var in ClientInput
		if err := json.Unmarshal(env.D, &in); err != nil {
			return
		}
		if in.DX != 0 {
			c.sampler.AddDelta(in.DX)
		}
		if in.HasX {
			c.sampler.SetAbsolute(in.X)
		}
		c.sampler.SetKey(in.Auto)

	case MsgTap:
		c.sampler.Trigger(tapTrigger(c.state.Load().(picklecatch.State)))

	case MsgResize:
		var rs ResizeMsg
		if err := json.Unmarshal(env.D, &rs); err != nil {
			return
		}
		c.sampler.Resize(rs.W, rs.H)
	}
}

// tapTrigger maps a tap to the trigger the current state accepts.
func tapTrigger(s picklecatch.State) core.Trigger {
	switch s {
	case picklecatch.StateWelcome:
		return core.TriggerStart
	case picklecatch.StateGameOver:
		return core.TriggerRestart
	default:
		return core.TriggerNone
	}
}

// Run drives the connection's game until the connection or ctx ends.
func (c *Client) Run(ctx context.Context) {
	cfg := c.server.cfg
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := core.NewMonotonicClock()
	game := picklecatch.New(cfg.Game, core.Size{}, seed, browserHost{c})
	var recorder *replay.Recorder
	if cfg.Record {
		recorder = replay.NewRecorder()
	}

	c.SendEvent(MsgHello, HelloMsg{Session: c.sessionID, TickRate: cfg.TickRate})

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case <-c.done:
			return
		case <-ticker.C:
		}

		now := clock.Now()
		in := c.sampler.Sample()
		events := game.Tick(now, in)
		c.state.Store(game.State())

		if recorder != nil {
			if r := recorder.Observe(game, now, in, events); r != nil {
				c.SendEvent(MsgReplay, ReplayMsg{ID: r.ID, Score: r.Score, Saved: c.server.saveReplay(c.logger, r)})
			}
		}

		c.SendJSON(MsgScene, game.Scene(now))
	}
}

// browserHost forwards game side effects to the browser.
type browserHost struct {
	c *Client
}

func (h browserHost) PlaySound(kind picklecatch.SoundKind) {
	h.c.SendEvent(MsgSound, SoundMsg{Kind: string(kind)})
}

func (h browserHost) RequestExclusiveInput() {
	h.c.SendEvent(MsgCapture, CaptureMsg{On: true})
}

func (h browserHost) ReleaseExclusiveInput() {
	h.c.SendEvent(MsgCapture, CaptureMsg{On: false})
}

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkguid"
	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

const (
	DefaultURL = "wss://xrpl.ws/"

	defaultHandshakeTimeout = 10 * time.Second
	defaultPingInterval     = 20 * time.Second
	defaultReadTimeout      = 60 * time.Second
	writeWait               = 5 * time.Second
	frameBuffer             = 256

	// apiVersion 2 makes the node put transactions under "tx_json";
	// version 1 (the node default) uses "transaction".
	apiVersion = 2
)

var errNoAck = errors.New("no subscribe acknowledgement")

type WebsocketConfig struct {
	URL              string
	Streams          []string
	HandshakeTimeout time.Duration
	PingInterval     time.Duration
	ReadTimeout      time.Duration
	IDs              pkguid.NumberID
}

// WebsocketSource subscribes to an XRPL node over a websocket.
type WebsocketSource struct {
	cfg    WebsocketConfig
	dialer *websocket.Dialer
}

func NewWebsocketSource(cfg WebsocketConfig) *WebsocketSource {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if len(cfg.Streams) == 0 {
		cfg.Streams = []string{"transactions"}
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.ReadTimeout <= cfg.PingInterval {
		cfg.ReadTimeout = max(defaultReadTimeout, 3*cfg.PingInterval)
	}

	return &WebsocketSource{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

type subscribeCommand struct {
	ID         int64    `json:"id"`
	Command    string   `json:"command"`
	Streams    []string `json:"streams"`
	APIVersion int      `json:"api_version"`
}

type commandResponse struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// Subscribe dials the node, sends the subscribe command and waits for its
// acknowledgement. Frames that arrive before the ack are kept.
func (s *WebsocketSource) Subscribe(ctx context.Context) (Subscription, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		return nil, &entity.TransportError{Op: "dial", Err: err}
	}

	var id int64
	if s.cfg.IDs != nil {
		id = s.cfg.IDs.Generate()
	}

	pending, err := s.handshake(ctx, conn, subscribeCommand{
		ID:         id,
		Command:    "subscribe",
		Streams:    s.cfg.Streams,
		APIVersion: apiVersion,
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "feed subscribed", "url", s.cfg.URL, "streams", s.cfg.Streams, "request_id", id)

	sub := &wsSubscription{
		conn:         conn,
		frames:       make(chan []byte, frameBuffer),
		done:         make(chan struct{}),
		pingInterval: s.cfg.PingInterval,
		readTimeout:  s.cfg.ReadTimeout,
	}
	for _, frame := range pending {
		sub.frames <- frame
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub.cancel = cancel
	go sub.run(runCtx)

	return sub, nil
}

// handshake sends cmd and reads until its ack. Canceling ctx closes conn so
// the pending read returns at once.
func (s *WebsocketSource) handshake(ctx context.Context, conn *websocket.Conn, cmd subscribeCommand) ([][]byte, error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	pending, err := s.exchange(conn, cmd)
	if !stop() || (err != nil && ctx.Err() != nil) {
		return nil, &entity.TransportError{Op: "subscribe", Err: context.Cause(ctx)}
	}
	return pending, err
}

func (s *WebsocketSource) exchange(conn *websocket.Conn, cmd subscribeCommand) ([][]byte, error) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(cmd); err != nil {
		return nil, &entity.TransportError{Op: "subscribe", Err: err}
	}
	_ = conn.SetWriteDeadline(time.Time{})

	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.HandshakeTimeout))
	defer func() {
		_ = conn.SetReadDeadline(time.Time{})
	}()

	var pending [][]byte
	for len(pending) < frameBuffer {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, &entity.TransportError{Op: "subscribe", Err: err}
		}

		var resp commandResponse
		if json.Unmarshal(msg, &resp) == nil && resp.Type == "response" && resp.ID == cmd.ID {
			if resp.Status != "success" {
				return nil, &entity.TransportError{
					Op:  "subscribe",
					Err: fmt.Errorf("%s: %s", resp.Error, resp.ErrorMessage),
				}
			}
			return pending, nil
		}

		pending = append(pending, msg)
	}

	return nil, &entity.TransportError{Op: "subscribe", Err: errNoAck}
}

type wsSubscription struct {
	conn         *websocket.Conn
	frames       chan []byte
	done         chan struct{}
	err          error
	cancel       context.CancelFunc
	closeOnce    sync.Once
	pingInterval time.Duration
	readTimeout  time.Duration
}

// run reads frames and pings the node until either fails or ctx ends.
func (s *wsSubscription) run(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.readLoop(gctx) })
	g.Go(func() error { return s.pingLoop(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		return s.conn.Close()
	})

	s.err = g.Wait()
	close(s.done)
}

func (s *wsSubscription) readLoop(ctx context.Context) error {
	extend := func() error {
		return s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}
	_ = extend()
	s.conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &entity.TransportError{Op: "read", Err: err}
		}
		_ = extend()

		select {
		case s.frames <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *wsSubscription) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return &entity.TransportError{Op: "ping", Err: err}
			}
		}
	}
}

// Next returns the next frame. Frames read before a failure are still handed
// out before the failure itself.
func (s *wsSubscription) Next(ctx context.Context) ([]byte, error) {
	select {
	case msg := <-s.frames:
		return msg, nil
	default:
	}

	select {
	case msg := <-s.frames:
		return msg, nil
	case <-s.done:
		select {
		case msg := <-s.frames:
			return msg, nil
		default:
		}
		if s.err == nil {
			return nil, &entity.TransportError{Op: "read", Err: errors.New("subscription closed")}
		}
		return nil, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *wsSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}

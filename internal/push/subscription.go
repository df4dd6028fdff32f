package push

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Handlers receive connection events. Any of them may be nil.
// They run on the subscription's reader goroutine.
type Handlers struct {
	OnOpen    func()
	OnMessage func(payload []byte)
	OnClose   func(err error)
}

// Subscription owns exactly one push connection.
type Subscription struct {
	url      string
	dialer   Dialer
	handlers Handlers
	logger   *slog.Logger

	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	conn    Conn
	closing bool

	closeOnce sync.Once
	closeErr  error
}

// Open starts connecting to url in the background and returns immediately.
func Open(ctx context.Context, dialer Dialer, url string, handlers Handlers, logger *slog.Logger) *Subscription {
	dialCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		url:      url,
		dialer:   dialer,
		handlers: handlers,
		logger:   logger.With("url", url),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.state.Store(int32(Connecting))
	go s.run(dialCtx)
	return s
}

// State reports where the connection is in its lifecycle.
func (s *Subscription) State() State {
	return State(s.state.Load())
}

// Done is closed once the reader goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close releases the connection. The underlying Close runs at most once,
// whatever state the connection is in; later calls return the first result.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		conn := s.conn
		s.mu.Unlock()

		s.cancel()
		if conn != nil {
			s.closeErr = conn.Close()
		}
	})
	return s.closeErr
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer s.state.Store(int32(Disconnected))

	conn, err := s.dialer.DialContext(ctx, s.url)
	if err != nil {
		s.logger.Warn("push channel connect failed", "error", err)
		s.closed(err)
		return
	}

	s.mu.Lock()
	if s.closing {
		// Close ran while we were dialing and had nothing to release.
		s.mu.Unlock()
		if err := conn.Close(); err != nil {
			s.logger.Debug("closing late connection", "error", err)
		}
		s.state.Store(int32(Disconnected))
		s.logger.Info("push channel disconnected", "error", nil)
		s.closed(nil)
		return
	}
	s.conn = conn
	s.mu.Unlock()

	s.state.Store(int32(Connected))
	s.logger.Info("push channel connected")
	if s.handlers.OnOpen != nil {
		s.handlers.OnOpen()
	}

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			s.state.Store(int32(Disconnected))
			s.logger.Info("push channel disconnected", "error", err)
			s.closed(err)
			return
		}
		if kind != websocket.TextMessage {
			s.logger.Debug("ignoring non-text frame", "type", kind)
			continue
		}
		if s.handlers.OnMessage != nil {
			s.handlers.OnMessage(payload)
		}
	}
}

func (s *Subscription) closed(err error) {
	if s.handlers.OnClose != nil {
		s.handlers.OnClose(err)
	}
}

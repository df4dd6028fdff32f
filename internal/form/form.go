package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/harrylevesque/ordercode/internal/models"
	"github.com/harrylevesque/ordercode/internal/push"
	"github.com/harrylevesque/ordercode/internal/utils"
)

// ErrMounted is returned by Mount on a form that was already mounted once.
var ErrMounted = errors.New("form already mounted")

// Sender posts a code to the relay.
type Sender interface {
	Send(ctx context.Context, digits string) error
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

type Config struct {
	PushURL string
	Dialer  push.Dialer
	Sender  Sender
	Alerter Alerter
	Logger  *slog.Logger
}

// OrderCodeForm owns the entry box, the records received over the push
// channel and the push connection itself. Mount opens the connection and
// Unmount releases it.
type OrderCodeForm struct {
	pushURL string
	dialer  push.Dialer
	sender  Sender
	alerter Alerter
	logger  *slog.Logger

	mu       sync.RWMutex
	input    string
	received []models.Record // oldest first
	sub      *push.Subscription
	mounted  bool

	watchMu  sync.Mutex
	watchers map[chan struct{}]struct{}
}

func New(cfg Config) *OrderCodeForm {
	logger := cfg.Logger
	if logger == nil {
		logger = utils.Discard()
	}
	alerter := cfg.Alerter
	if alerter == nil {
		alerter = AlertFunc(func(string) {})
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = push.WebsocketDialer{}
	}
	// One form mounts once, so the id tags the lifetime of its connection.
	return &OrderCodeForm{
		pushURL:  cfg.PushURL,
		dialer:   dialer,
		sender:   cfg.Sender,
		alerter:  alerter,
		logger:   logger.With("mount_id", uuid.New().String()),
		watchers: make(map[chan struct{}]struct{}),
	}
}

// ===== Lifecycle =====

// Mount opens the push connection. A form mounts once.
func (f *OrderCodeForm) Mount(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mounted {
		return ErrMounted
	}
	f.mounted = true

	f.sub = push.Open(ctx, f.dialer, f.pushURL, push.Handlers{
		OnOpen:    f.notify,
		OnMessage: f.receive,
		OnClose:   func(error) { f.notify() },
	}, f.logger)
	f.logger.Debug("form mounted", "push_url", f.pushURL)
	return nil
}

// Unmount closes the push connection. It is safe to call more than once and
// before Mount.
func (f *OrderCodeForm) Unmount() error {
	f.mu.RLock()
	sub := f.sub
	f.mu.RUnlock()
	if sub == nil {
		return nil
	}
	if err := sub.Close(); err != nil {
		return fmt.Errorf("close push channel: %w", err)
	}
	return nil
}

// State reports the push connection state.
func (f *OrderCodeForm) State() push.State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.sub == nil {
		return push.Disconnected
	}
	return f.sub.State()
}

// ===== State =====

// SetInput replaces the entry box text, keeping at most four characters.
func (f *OrderCodeForm) SetInput(s string) {
	f.mu.Lock()
	f.input = ClampInput(s)
	f.mu.Unlock()
	f.notify()
}

func (f *OrderCodeForm) Input() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.input
}

// Records returns the accumulated records, newest first.
func (f *OrderCodeForm) Records() []models.Record {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Record, len(f.received))
	for i, rec := range f.received {
		out[len(f.received)-1-i] = rec
	}
	return out
}

// Grouped derives the per-minute view from the current records.
func (f *OrderCodeForm) Grouped() models.GroupedView {
	return GroupByMinute(f.Records())
}

// ===== Actions =====

// Submit validates the entry box and posts it. On success the box is
// cleared; records only change when the relay echoes the code back.
func (f *OrderCodeForm) Submit(ctx context.Context) error {
	return f.submit(ctx, f.Input())
}

// SubmitInput stores s in the entry box and submits exactly that text, so a
// later edit cannot change what this call posts.
func (f *OrderCodeForm) SubmitInput(ctx context.Context, s string) error {
	f.mu.Lock()
	f.input = ClampInput(s)
	digits := f.input
	f.mu.Unlock()
	f.notify()

	return f.submit(ctx, digits)
}

func (f *OrderCodeForm) submit(ctx context.Context, digits string) error {
	if !ValidDigits(digits) {
		f.alerter.Alert(utils.MsgInvalidDigits)
		return utils.NewValidationError()
	}

	if err := f.sender.Send(ctx, digits); err != nil {
		f.logger.Warn("submit failed", "digits", digits, "error", err)
		f.alerter.Alert(utils.MsgSendFailed)
		return utils.NewTransportError(err)
	}

	// Keep whatever was typed while the post was in flight.
	f.mu.Lock()
	cleared := f.input == digits
	if cleared {
		f.input = ""
	}
	f.mu.Unlock()
	if cleared {
		f.notify()
	}
	return nil
}

// receive handles one push frame. Malformed frames are dropped.
func (f *OrderCodeForm) receive(payload []byte) {
	rec, err := models.DecodeRecord(payload)
	if err != nil {
		f.logger.Warn("dropping push payload", "error", err, "payload", string(payload))
		return
	}

	f.mu.Lock()
	f.received = append(f.received, rec)
	f.mu.Unlock()

	f.logger.Debug("record received", "time", rec.Time, "digits", rec.Digits)
	f.notify()
}

// ===== Change notifications =====

// Watch returns a channel that is signalled after every state change and a
// func to stop watching. Signals coalesce when the reader falls behind.
func (f *OrderCodeForm) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.watchMu.Lock()
	f.watchers[ch] = struct{}{}
	f.watchMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.watchMu.Lock()
			delete(f.watchers, ch)
			f.watchMu.Unlock()
		})
	}
}

func (f *OrderCodeForm) notify() {
	f.watchMu.Lock()
	defer f.watchMu.Unlock()
	for ch := range f.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Package socketio connects a canvas to its server over socket.io.
//
// Each message travels as a socket.io event named after the message type
// with the message fields as a JSON object, for example
//
//	emit("nodeMoved", {"id": 3, "x": 120, "y": 80, "batch": false})
//
// Server events whose name is not a known push are logged and dropped.
package socketio

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/observability"
)

const name = "socketio"

// DefaultTimeout bounds how long Dial waits for the connection.
const DefaultTimeout = 15 * time.Second

// Options configures Dial.
type Options struct {
	URL       string // e.g. http://localhost:3000/socket.io/
	Namespace string // default "/"
	Timeout   time.Duration
	Logger    *log.Logger
}

// Transport is a bridge.Transport over a socket.io client.
type Transport struct {
	emit   func(event string, data any) error
	close  func()
	logger *log.Logger

	in     chan bridge.Inbound
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

var _ bridge.Transport = (*Transport)(nil)

func newTransport(emit func(string, any) error, logger *log.Logger) *Transport {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Transport{
		emit:   emit,
		close:  func() {},
		logger: logger,
		in:     make(chan bridge.Inbound, 64),
		done:   make(chan struct{}),
	}
}

// Dial connects to a socket.io server and waits until the namespace is
// joined.
func Dial(ctx context.Context, opts Options) (*Transport, error) {
	u, err := url.Parse(opts.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid socket.io url %q", opts.URL)
	}
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	sopts := socket.DefaultOptions()
	if u.Path != "" {
		sopts.SetPath(u.Path)
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(u.Scheme+"://"+u.Host, sopts)
	client := manager.Socket(opts.Namespace, sopts)

	t := newTransport(func(event string, data any) error { return client.Emit(event, data) }, opts.Logger)
	t.close = func() { client.Disconnect() }
	client.OnAny(func(args ...any) { t.receive(args...) })

	connected := make(chan error, 1)
	client.Once(types.EventName("connect"), func(...any) {
		signal(connected, nil)
	})
	client.Once(types.EventName("connect_error"), func(args ...any) {
		err, _ := first(args).(error)
		if err == nil {
			err = errors.New(errors.ErrCodeTransport, "connect_error")
		}
		signal(connected, err)
	})
	client.On(types.EventName("disconnect"), func(args ...any) {
		t.logger.Warn("socket.io disconnected", "reason", first(args))
		observability.Bridge().OnTransportError(ctx, name, errors.New(errors.ErrCodeTransport, "disconnected: %v", first(args)))
	})

	t.logger.Debug("connecting", "url", opts.URL, "namespace", opts.Namespace)
	client.Connect()

	select {
	case err := <-connected:
		if err != nil {
			client.Disconnect()
			return nil, errors.Wrap(errors.ErrCodeTransport, err, "socket.io connect %s", opts.URL)
		}
	case <-ctx.Done():
		client.Disconnect()
		return nil, errors.Wrap(errors.ErrCodeTransport, ctx.Err(), "socket.io connect %s", opts.URL)
	case <-time.After(opts.Timeout):
		client.Disconnect()
		return nil, errors.New(errors.ErrCodeTransport, "timed out after %s connecting to %s", opts.Timeout, opts.URL)
	}
	t.logger.Info("connected", "sid", client.Id())
	return t, nil
}

// signal reports the first connect outcome and drops later ones.
func signal(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// decodeEvent turns a socket.io event into a push.
func decodeEvent(event string, payload any) (bridge.Inbound, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMessage, err, "encode %s payload", event)
	}
	return bridge.Envelope{Type: event, Payload: raw}.Inbound()
}

// receive handles an incoming event. args[0] is the event name.
func (t *Transport) receive(args ...any) {
	event, ok := first(args).(string)
	if !ok {
		return
	}
	var payload any
	if len(args) > 1 {
		payload = args[1]
	}
	msg, err := decodeEvent(event, payload)
	if err != nil {
		t.logger.Debug("dropping event", "event", event, "err", err)
		observability.Bridge().OnTransportError(context.Background(), name, err)
		return
	}
	observability.Bridge().OnReceive(context.Background(), name, msg.Type())

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.in <- msg:
	case <-t.done:
	}
}

// Send emits a notification.
func (t *Transport) Send(msg bridge.Outbound) error {
	err := t.emit(msg.Type(), msg)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeTransport, err, "emit %s", msg.Type())
	}
	observability.Bridge().OnSend(context.Background(), name, msg.Type(), err)
	return err
}

// Inbound implements bridge.Transport.
func (t *Transport) Inbound() <-chan bridge.Inbound { return t.in }

// Close disconnects and closes the inbound channel.
func (t *Transport) Close() error {
	t.once.Do(func() {
		close(t.done)
		t.close()
		t.mu.Lock()
		t.closed = true
		close(t.in)
		t.mu.Unlock()
	})
	return nil
}

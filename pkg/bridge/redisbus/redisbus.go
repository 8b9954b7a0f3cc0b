// Package redisbus connects a canvas to its server over Redis pub/sub.
//
// A session uses two channels carrying JSON envelopes (see bridge.Encode):
// the server publishes pushes on "pipecanvas:<session>:inbound" and the
// canvas publishes notifications on "pipecanvas:<session>:outbound".
package redisbus

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/observability"
)

const name = "redis"

// InboundChannel returns the channel the server publishes pushes on.
func InboundChannel(session string) string { return "pipecanvas:" + session + ":inbound" }

// OutboundChannel returns the channel the canvas publishes notifications on.
func OutboundChannel(session string) string { return "pipecanvas:" + session + ":outbound" }

// Options configures Dial.
type Options struct {
	Addr     string
	Password string
	DB       int
	Session  string
	Logger   *log.Logger
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Bus is a bridge.Transport over Redis pub/sub.
type Bus struct {
	pub      publisher
	outbound string
	logger   *log.Logger

	in     chan bridge.Inbound
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	closers []io.Closer
	once    sync.Once
}

var _ bridge.Transport = (*Bus)(nil)

func newBus(pub publisher, session string, logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		pub:      pub,
		outbound: OutboundChannel(session),
		logger:   logger,
		in:       make(chan bridge.Inbound, 64),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Dial connects to Redis and subscribes to the session's inbound channel.
func Dial(ctx context.Context, opts Options) (*Bus, error) {
	if opts.Session == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "redis bridge needs a session name")
	}
	rdb := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "connect to redis at %s", opts.Addr)
	}

	sub := rdb.Subscribe(ctx, InboundChannel(opts.Session))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		rdb.Close()
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "subscribe %s", InboundChannel(opts.Session))
	}

	b := newBus(rdb, opts.Session, opts.Logger)
	b.closers = []io.Closer{sub, rdb}
	go b.pump(sub.Channel())
	b.logger.Info("subscribed", "addr", opts.Addr, "channel", InboundChannel(opts.Session))
	return b, nil
}

// pump decodes subscription messages until the channel closes or the bus
// is closed, then closes the inbound channel.
func (b *Bus) pump(ch <-chan *redis.Message) {
	defer close(b.done)
	defer close(b.in)
	for {
		select {
		case <-b.ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg, err := bridge.DecodeInbound([]byte(m.Payload))
			if err != nil {
				b.logger.Warn("dropping malformed push", "channel", m.Channel, "err", err)
				observability.Bridge().OnTransportError(b.ctx, name, err)
				continue
			}
			observability.Bridge().OnReceive(b.ctx, name, msg.Type())
			select {
			case b.in <- msg:
			case <-b.ctx.Done():
				return
			}
		}
	}
}

// Send publishes a notification envelope.
func (b *Bus) Send(msg bridge.Outbound) error {
	payload, err := bridge.Encode(msg)
	if err == nil {
		if perr := b.pub.Publish(b.ctx, b.outbound, payload).Err(); perr != nil {
			err = errors.Wrap(errors.ErrCodeTransport, perr, "publish %s", msg.Type())
		}
	}
	observability.Bridge().OnSend(b.ctx, name, msg.Type(), err)
	return err
}

// Inbound implements bridge.Transport.
func (b *Bus) Inbound() <-chan bridge.Inbound { return b.in }

// Close unsubscribes and closes the connection.
func (b *Bus) Close() error {
	var first error
	b.once.Do(func() {
		b.cancel()
		for _, c := range b.closers {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
		<-b.done
	})
	return first
}

package bridge

import (
	"sync"
)

// Sender delivers outbound notifications. Send must not block on a reply;
// an error only means the message could not be handed to the transport.
type Sender interface {
	Send(Outbound) error
}

// Transport is a bidirectional connection to the server.
type Transport interface {
	Sender
	// Inbound returns the channel of pushes from the server. It is closed
	// when the transport closes.
	Inbound() <-chan Inbound
	Close() error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(Outbound) error

// Send implements Sender.
func (f SenderFunc) Send(msg Outbound) error { return f(msg) }

// Discard is a Sender that drops every message.
var Discard Sender = SenderFunc(func(Outbound) error { return nil })

// Recorder is a Sender that keeps every message in memory. It is safe for
// concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Outbound
}

// Send implements Sender.
func (r *Recorder) Send(msg Outbound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

// Messages returns a copy of the recorded messages in send order.
func (r *Recorder) Messages() []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outbound, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Types returns the type tags of the recorded messages in send order.
func (r *Recorder) Types() []string {
	msgs := r.Messages()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type()
	}
	return out
}

// Reset forgets every recorded message.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

// Tee sends every message to each sender in turn and returns the first error.
func Tee(senders ...Sender) Sender {
	return SenderFunc(func(msg Outbound) error {
		var first error
		for _, s := range senders {
			if err := s.Send(msg); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}

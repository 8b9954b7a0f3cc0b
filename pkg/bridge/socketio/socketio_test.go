package socketio

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
)

type emitted struct {
	event string
	data  any
}

func TestSendEmitsTypedEvent(t *testing.T) {
	var got []emitted
	tr := newTransport(func(event string, data any) error {
		got = append(got, emitted{event, data})
		return nil
	}, nil)

	msg := bridge.NodeMoved{ID: 3, X: 120, Y: 80}
	if err := tr.Send(msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got) != 1 || got[0].event != "nodeMoved" || got[0].data != bridge.Outbound(msg) {
		t.Errorf("emitted = %+v", got)
	}
}

func TestSendFailure(t *testing.T) {
	tr := newTransport(func(string, any) error { return fmt.Errorf("socket closed") }, nil)
	err := tr.Send(bridge.BeginUndoCheckpoint{})
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("Send() error = %v, want TRANSPORT", err)
	}
}

func TestReceive(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want bridge.Inbound
	}{
		{
			name: "add node",
			args: []any{"addNode", map[string]any{"id": 4.0, "name": "orders", "x": 10.0, "y": 20.0}},
			want: bridge.AddNode{ID: 4, Name: "orders", X: 10, Y: 20},
		},
		{
			name: "no payload",
			args: []any{"clearAll"},
			want: bridge.ClearAll{},
		},
		{
			name: "unknown event",
			args: []any{"chat", "hello"},
		},
		{
			name: "malformed payload",
			args: []any{"addNode", "not an object"},
		},
		{
			name: "no event name",
			args: []any{42.0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTransport(nil, nil)
			tr.receive(tt.args...)
			select {
			case got := <-tr.Inbound():
				if tt.want == nil {
					t.Fatalf("received %#v, want nothing", got)
				}
				if got != tt.want {
					t.Errorf("received %#v, want %#v", got, tt.want)
				}
			default:
				if tt.want != nil {
					t.Fatalf("nothing received, want %#v", tt.want)
				}
			}
		})
	}
}

func TestCloseClosesInbound(t *testing.T) {
	tr := newTransport(nil, nil)
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-tr.Inbound(); ok {
		t.Error("inbound channel still open")
	}
	// Events arriving after close are dropped.
	tr.receive("clearAll")
}

func TestDialRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:3000", "://nope"} {
		if _, err := Dial(context.Background(), Options{URL: raw}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Dial(%q) error = %v, want INVALID_INPUT", raw, err)
		}
	}
}

func TestSignalKeepsFirstOutcome(t *testing.T) {
	ch := make(chan error, 1)
	signal(ch, nil)
	signal(ch, fmt.Errorf("refused"))

	if err := <-ch; err != nil {
		t.Errorf("first outcome = %v, want nil", err)
	}
	select {
	case err := <-ch:
		t.Errorf("unexpected second outcome %v", err)
	default:
	}
}

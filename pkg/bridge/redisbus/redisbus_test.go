package redisbus

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
)

type fakePublisher struct {
	mu   sync.Mutex
	sent map[string][]string
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	f.sent[channel] = append(f.sent[channel], string(message.([]byte)))
	return redis.NewIntResult(1, nil)
}

func TestChannels(t *testing.T) {
	if got, want := InboundChannel("demo"), "pipecanvas:demo:inbound"; got != want {
		t.Errorf("InboundChannel = %q, want %q", got, want)
	}
	if got, want := OutboundChannel("demo"), "pipecanvas:demo:outbound"; got != want {
		t.Errorf("OutboundChannel = %q, want %q", got, want)
	}
}

func TestSendPublishesEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	b := newBus(pub, "demo", nil)
	ch := make(chan *redis.Message)
	go b.pump(ch)
	defer b.Close()

	if err := b.Send(bridge.EdgeAdded{SourceID: 1, TargetID: 2}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	sent := pub.sent[OutboundChannel("demo")]
	if len(sent) != 1 {
		t.Fatalf("published %d messages, want 1", len(sent))
	}
	got, err := bridge.DecodeOutbound([]byte(sent[0]))
	if err != nil {
		t.Fatalf("DecodeOutbound: %v", err)
	}
	if want := (bridge.EdgeAdded{SourceID: 1, TargetID: 2}); got != want {
		t.Errorf("published %#v, want %#v", got, want)
	}
}

func TestSendFailure(t *testing.T) {
	b := newBus(&fakePublisher{err: fmt.Errorf("connection refused")}, "demo", nil)
	go b.pump(make(chan *redis.Message))
	defer b.Close()

	if err := b.Send(bridge.NodeRemoved{ID: 1}); !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("Send() error = %v, want TRANSPORT", err)
	}
}

func TestPumpDecodesPushes(t *testing.T) {
	b := newBus(&fakePublisher{}, "demo", nil)
	ch := make(chan *redis.Message, 3)
	valid, err := bridge.Encode(bridge.SetMode{Mode: "read-only"})
	if err != nil {
		t.Fatal(err)
	}
	ch <- &redis.Message{Channel: InboundChannel("demo"), Payload: "{not json"}
	ch <- &redis.Message{Channel: InboundChannel("demo"), Payload: `{"type":"teleport"}`}
	ch <- &redis.Message{Channel: InboundChannel("demo"), Payload: string(valid)}
	close(ch)
	go b.pump(ch)

	var got []bridge.Inbound
	timeout := time.After(time.Second)
	for done := false; !done; {
		select {
		case msg, ok := <-b.Inbound():
			if !ok {
				done = true
				continue
			}
			got = append(got, msg)
		case <-timeout:
			t.Fatal("inbound channel not closed")
		}
	}
	if len(got) != 1 || got[0] != (bridge.SetMode{Mode: "read-only"}) {
		t.Errorf("received %v, want only the setMode push", got)
	}
}

func TestCloseStopsPump(t *testing.T) {
	b := newBus(&fakePublisher{}, "demo", nil)
	go b.pump(make(chan *redis.Message))
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := <-b.Inbound(); ok {
		t.Error("inbound channel still open")
	}
}

func TestDialNeedsSession(t *testing.T) {
	_, err := Dial(context.Background(), Options{Addr: "localhost:6379"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Dial() error = %v, want INVALID_INPUT", err)
	}
}

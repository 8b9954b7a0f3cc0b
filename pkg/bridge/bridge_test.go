package bridge

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	perrors "github.com/matzehuels/pipecanvas/pkg/errors"
)

func TestDecodeInboundFromServer(t *testing.T) {
	data := []byte(`{"id":"x","type":"addNode","payload":{"id":4,"name":"Extract","category":"EXTRACTOR","x":-1,"y":20,"is_new":true}}`)

	msg, err := DecodeInbound(data)
	if err != nil {
		t.Fatalf("DecodeInbound() error: %v", err)
	}
	add, ok := msg.(AddNode)
	if !ok {
		t.Fatalf("DecodeInbound() = %T, want AddNode", msg)
	}
	want := AddNode{ID: 4, Name: "Extract", Category: "EXTRACTOR", X: -1, Y: 20, IsNew: true}
	if add != want {
		t.Errorf("AddNode = %+v, want %+v", add, want)
	}
}

func TestDecodeInboundWithoutPayload(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"id":"x","type":"clearAll"}`))
	if err != nil {
		t.Fatalf("DecodeInbound() error: %v", err)
	}
	if _, ok := msg.(ClearAll); !ok {
		t.Errorf("DecodeInbound() = %T, want ClearAll", msg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown type", `{"type":"explode"}`},
		{"outbound type on inbound side", `{"type":"nodeMoved","payload":{"id":1}}`},
		{"bad payload", `{"type":"addNode","payload":{"id":"four"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(tt.data))
			if !perrors.Is(err, perrors.ErrCodeInvalidMessage) {
				t.Errorf("DecodeInbound() error = %v, want INVALID_MESSAGE", err)
			}
		})
	}
}

func TestEncodeOutbound(t *testing.T) {
	data, err := Encode(NodeMoved{ID: 3, X: 10, Y: 20, Batch: true})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	env, err := parseEnvelope(data)
	if err != nil {
		t.Fatalf("parseEnvelope() error: %v", err)
	}
	if env.Type != "nodeMoved" {
		t.Errorf("Type = %q, want nodeMoved", env.Type)
	}
	if _, err := uuid.Parse(env.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", env.ID, err)
	}

	msg, err := DecodeOutbound(data)
	if err != nil {
		t.Fatalf("DecodeOutbound() error: %v", err)
	}
	if msg != (NodeMoved{ID: 3, X: 10, Y: 20, Batch: true}) {
		t.Errorf("DecodeOutbound() = %+v", msg)
	}
}

func TestEnvelopeIDsAreUnique(t *testing.T) {
	a, _ := Wrap(BeginUndoCheckpoint{})
	b, _ := Wrap(BeginUndoCheckpoint{})
	if a.ID == b.ID {
		t.Errorf("envelope ids repeat: %s", a.ID)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Send(BeginUndoCheckpoint{})
	r.Send(NodeMoved{ID: 1})

	if got := r.Types(); !slices.Equal(got, []string{"beginUndoCheckpoint", "nodeMoved"}) {
		t.Errorf("Types() = %v", got)
	}
	r.Reset()
	if len(r.Messages()) != 0 {
		t.Error("Reset() did not clear messages")
	}
}

func TestTee(t *testing.T) {
	var a, b Recorder
	boom := errors.New("boom")
	failing := SenderFunc(func(Outbound) error { return boom })

	err := Tee(&a, failing, &b).Send(NodeRemoved{ID: 2})
	if err != boom {
		t.Errorf("Tee().Send() error = %v, want %v", err, boom)
	}
	if len(a.Messages()) != 1 || len(b.Messages()) != 1 {
		t.Error("Tee() should deliver to every sender")
	}
}

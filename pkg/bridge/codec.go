package bridge

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/pipecanvas/pkg/errors"
)

// Envelope is the wire form of a message.
type Envelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is any inbound or outbound message.
type Message interface {
	Type() string
}

// Wrap builds the envelope for a message with a fresh id.
func Wrap(msg Message) (Envelope, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return Envelope{}, errors.Wrap(errors.ErrCodeInvalidMessage, err, "encode %s", msg.Type())
	}
	return Envelope{ID: uuid.NewString(), Type: msg.Type(), Payload: payload}, nil
}

// Encode marshals a message into an envelope.
func Encode(msg Message) ([]byte, error) {
	env, err := Wrap(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

type inboundDecoder func(json.RawMessage) (Inbound, error)

type outboundDecoder func(json.RawMessage) (Outbound, error)

func decodeInbound[T Inbound](raw json.RawMessage) (Inbound, error) {
	var v T
	if err := unmarshalPayload(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeOutbound[T Outbound](raw json.RawMessage) (Outbound, error) {
	var v T
	if err := unmarshalPayload(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

var inboundDecoders = map[string]inboundDecoder{
	Initialize{}.Type():        decodeInbound[Initialize],
	AddNode{}.Type():           decodeInbound[AddNode],
	AddEdge{}.Type():           decodeInbound[AddEdge],
	UpdateNode{}.Type():        decodeInbound[UpdateNode],
	UpdateEdgeLabel{}.Type():   decodeInbound[UpdateEdgeLabel],
	ResizeSurface{}.Type():     decodeInbound[ResizeSurface],
	GrowSurface{}.Type():       decodeInbound[GrowSurface],
	SetZoom{}.Type():           decodeInbound[SetZoom],
	ClearAll{}.Type():          decodeInbound[ClearAll],
	SetMode{}.Type():           decodeInbound[SetMode],
	SetNodeValidity{}.Type():   decodeInbound[SetNodeValidity],
	ApplyLayoutAction{}.Type(): decodeInbound[ApplyLayoutAction],
}

var outboundDecoders = map[string]outboundDecoder{
	NodeMoved{}.Type():              decodeOutbound[NodeMoved],
	NodeRemoved{}.Type():            decodeOutbound[NodeRemoved],
	EdgeAdded{}.Type():              decodeOutbound[EdgeAdded],
	EdgeRemoved{}.Type():            decodeOutbound[EdgeRemoved],
	NodeDetailRequested{}.Type():    decodeOutbound[NodeDetailRequested],
	NodeDebugRequested{}.Type():     decodeOutbound[NodeDebugRequested],
	NodeCopyRequested{}.Type():      decodeOutbound[NodeCopyRequested],
	EdgeLabelEditRequested{}.Type(): decodeOutbound[EdgeLabelEditRequested],
	MultiselectActive{}.Type():      decodeOutbound[MultiselectActive],
	BeginUndoCheckpoint{}.Type():    decodeOutbound[BeginUndoCheckpoint],
}

func parseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, errors.Wrap(errors.ErrCodeInvalidMessage, err, "decode envelope")
	}
	return env, nil
}

// DecodeInbound parses an envelope carrying an inbound message.
func DecodeInbound(data []byte) (Inbound, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}
	return env.Inbound()
}

// DecodeOutbound parses an envelope carrying an outbound message.
func DecodeOutbound(data []byte) (Outbound, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}
	return env.Outbound()
}

// Inbound decodes the payload as the inbound message named by Type.
func (e Envelope) Inbound() (Inbound, error) {
	dec, ok := inboundDecoders[e.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMessage, "unknown inbound type %q", e.Type)
	}
	msg, err := dec(e.Payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMessage, err, "decode %s", e.Type)
	}
	return msg, nil
}

// Outbound decodes the payload as the outbound message named by Type.
func (e Envelope) Outbound() (Outbound, error) {
	dec, ok := outboundDecoders[e.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMessage, "unknown outbound type %q", e.Type)
	}
	msg, err := dec(e.Payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMessage, err, "decode %s", e.Type)
	}
	return msg, nil
}

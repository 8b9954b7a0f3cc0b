// Package httpbridge exposes a canvas session over plain HTTP.
//
// The server pushes messages and collects notifications with:
//
//	POST /sessions/{session}/inbound    one envelope, answered 202
//	GET  /sessions/{session}/outbound   drains queued notification envelopes
//	GET  /sessions/{session}/scene      current diagram snapshot
//	GET  /health
package httpbridge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/observability"
)

const name = "http"

// MaxPending bounds the outbound queue between drains.
const MaxPending = 1024

// maxBody bounds an inbound request body.
const maxBody = 1 << 20

// Bridge is a bridge.Transport served over HTTP for one session.
type Bridge struct {
	session string
	logger  *log.Logger

	mu      sync.Mutex
	pending []bridge.Envelope
	closed  bool

	// sendMu guards sends on in against Close.
	sendMu sync.RWMutex
	in     chan bridge.Inbound
	done   chan struct{}

	scene atomic.Pointer[graph.Snapshot]
}

var _ bridge.Transport = (*Bridge)(nil)

// New creates a bridge for a session. A nil logger discards.
func New(session string, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{
		session: session,
		logger:  logger,
		in:      make(chan bridge.Inbound, 64),
		done:    make(chan struct{}),
	}
}

// Session returns the session name served.
func (b *Bridge) Session() string { return b.session }

// Publish records the snapshot returned by GET .../scene.
func (b *Bridge) Publish(s graph.Snapshot) { b.scene.Store(&s) }

// Send queues a notification until the next drain.
func (b *Bridge) Send(msg bridge.Outbound) error {
	env, err := bridge.Wrap(msg)
	if err == nil {
		b.mu.Lock()
		switch {
		case b.closed:
			err = errors.New(errors.ErrCodeClosed, "http bridge closed")
		case len(b.pending) >= MaxPending:
			err = errors.New(errors.ErrCodeTransport, "outbound queue full (%d pending)", len(b.pending))
		default:
			b.pending = append(b.pending, env)
		}
		b.mu.Unlock()
	}
	observability.Bridge().OnSend(context.Background(), name, msg.Type(), err)
	return err
}

// Inbound implements bridge.Transport.
func (b *Bridge) Inbound() <-chan bridge.Inbound { return b.in }

// Close rejects further requests and closes the inbound channel.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.sendMu.Lock()
	close(b.in)
	b.sendMu.Unlock()
	return nil
}

// Handler returns the HTTP routes.
func (b *Bridge) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "session": b.session})
	})
	r.Route("/sessions/{session}", func(r chi.Router) {
		r.Use(b.requireSession)
		r.Post("/inbound", b.handleInbound)
		r.Get("/outbound", b.handleOutbound)
		r.Get("/scene", b.handleScene)
	})
	return r
}

func (b *Bridge) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		b.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

func (b *Bridge) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "session") != b.session {
			writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeUnknownEntity, "unknown session %q", chi.URLParam(r, "session")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Bridge) handleInbound(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidMessage, err, "read body"))
		return
	}
	var env bridge.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidMessage, err, "decode envelope"))
		return
	}
	msg, err := env.Inbound()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if !b.deliver(r.Context(), msg) {
		writeError(w, http.StatusGone, errors.New(errors.ErrCodeClosed, "session closed"))
		return
	}
	observability.Bridge().OnReceive(r.Context(), name, msg.Type())
	writeJSON(w, http.StatusAccepted, map[string]string{"id": env.ID, "type": env.Type})
}

// deliver hands msg to the engine. It reports false when the bridge is
// closed or the request is abandoned first.
func (b *Bridge) deliver(ctx context.Context, msg bridge.Inbound) bool {
	b.sendMu.RLock()
	defer b.sendMu.RUnlock()
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.in <- msg:
		return true
	case <-b.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (b *Bridge) handleOutbound(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	out := b.pending
	b.pending = nil
	b.mu.Unlock()
	if out == nil {
		out = []bridge.Envelope{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Bridge) handleScene(w http.ResponseWriter, _ *http.Request) {
	s := b.scene.Load()
	if s == nil {
		writeJSON(w, http.StatusOK, graph.Snapshot{})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Code: string(errors.GetCode(err)), Message: errors.UserMessage(err)})
}

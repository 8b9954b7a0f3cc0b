// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about gestures, server pushes, and bridge traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the canvas core free of logging and metrics frameworks
//   - Allows different backends (charmbracelet/log, Prometheus, OpenTelemetry)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCanvasHooks(&myCanvasHooks{})
//	    observability.SetBridgeHooks(&myBridgeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Canvas().OnGesture(ctx, "develop", "drag")
//	observability.Bridge().OnSend(ctx, "socketio", "nodeMoved", err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Canvas Hooks
// =============================================================================

// CanvasHooks receives events from the canvas engine.
type CanvasHooks interface {
	// OnGesture records a gesture that started or committed.
	OnGesture(ctx context.Context, mode, gesture string)

	// OnRejected records a gesture refused by the current mode.
	OnRejected(ctx context.Context, mode, action string)

	// OnInbound records a server push after it was applied.
	OnInbound(ctx context.Context, msgType string, duration time.Duration, err error)

	// OnOutbound records a notification handed to the bridge.
	OnOutbound(ctx context.Context, msgType string)
}

// =============================================================================
// Bridge Hooks
// =============================================================================

// BridgeHooks receives events from bridge transports.
type BridgeHooks interface {
	// OnSend records an outbound message written to a transport.
	OnSend(ctx context.Context, transport, msgType string, err error)

	// OnReceive records an inbound message read from a transport.
	OnReceive(ctx context.Context, transport, msgType string)

	// OnTransportError records a failure that did not belong to one message
	// (connection loss, undecodable payload).
	OnTransportError(ctx context.Context, transport string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCanvasHooks is a no-op implementation of CanvasHooks.
type NoopCanvasHooks struct{}

func (NoopCanvasHooks) OnGesture(context.Context, string, string)                     {}
func (NoopCanvasHooks) OnRejected(context.Context, string, string)                    {}
func (NoopCanvasHooks) OnInbound(context.Context, string, time.Duration, error) {}
func (NoopCanvasHooks) OnOutbound(context.Context, string)                            {}

// NoopBridgeHooks is a no-op implementation of BridgeHooks.
type NoopBridgeHooks struct{}

func (NoopBridgeHooks) OnSend(context.Context, string, string, error)   {}
func (NoopBridgeHooks) OnReceive(context.Context, string, string)       {}
func (NoopBridgeHooks) OnTransportError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	canvasHooks CanvasHooks = NoopCanvasHooks{}
	bridgeHooks BridgeHooks = NoopBridgeHooks{}
	hooksMu     sync.RWMutex
)

// SetCanvasHooks registers custom canvas hooks.
// This should be called once at application startup before any engine runs.
func SetCanvasHooks(h CanvasHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		canvasHooks = h
	}
}

// SetBridgeHooks registers custom bridge hooks.
// This should be called once at application startup before any transport connects.
func SetBridgeHooks(h BridgeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		bridgeHooks = h
	}
}

// Canvas returns the registered canvas hooks.
func Canvas() CanvasHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return canvasHooks
}

// Bridge returns the registered bridge hooks.
func Bridge() BridgeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return bridgeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	canvasHooks = NoopCanvasHooks{}
	bridgeHooks = NoopBridgeHooks{}
}

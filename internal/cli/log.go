// Package cli implements the pipecanvas command-line interface.
//
// The commands drive the canvas engine from outside a browser: replaying
// HCL scenarios, exporting the resulting diagram, viewing and editing it in
// the terminal, and serving it to a pipeline server over one of the bridge
// transports. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - replay: Play a scenario and print the notifications it produces
//   - export: Play a scenario and write the diagram as DOT or SVG
//   - view: Edit a diagram interactively in the terminal
//   - serve: Run a headless canvas attached to a bridge transport
//   - config: Manage the settings file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Replayed 12 steps (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is set.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports engine and bridge activity at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnGesture(_ context.Context, mode, gesture string) {
	h.logger.Debug("gesture", "mode", mode, "gesture", gesture)
}

func (h logHooks) OnRejected(_ context.Context, mode, action string) {
	h.logger.Debug("rejected", "mode", mode, "action", action)
}

func (h logHooks) OnInbound(_ context.Context, msgType string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("inbound", "type", msgType, "took", d, "err", err)
		return
	}
	h.logger.Debug("inbound", "type", msgType, "took", d)
}

func (h logHooks) OnOutbound(_ context.Context, msgType string) {
	h.logger.Debug("outbound", "type", msgType)
}

func (h logHooks) OnSend(_ context.Context, transport, msgType string, err error) {
	if err != nil {
		h.logger.Warn("send failed", "transport", transport, "type", msgType, "err", err)
		return
	}
	h.logger.Debug("sent", "transport", transport, "type", msgType)
}

func (h logHooks) OnReceive(_ context.Context, transport, msgType string) {
	h.logger.Debug("received", "transport", transport, "type", msgType)
}

func (h logHooks) OnTransportError(_ context.Context, transport string, err error) {
	h.logger.Warn("transport error", "transport", transport, "err", err)
}

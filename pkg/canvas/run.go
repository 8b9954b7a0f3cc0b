package canvas

import (
	"context"
	"time"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
)

// TickInterval is how often Run advances the scheduler while idle.
const TickInterval = 50 * time.Millisecond

// Run serialises UI events and server pushes onto the engine until ctx is
// done or both channels are closed. The engine must not be used from other
// goroutines while Run is active.
func (e *Engine) Run(ctx context.Context, events <-chan Event, inbound <-chan bridge.Inbound) error {
	e.ctx = ctx
	defer func() { e.ctx = context.Background() }()

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for events != nil || inbound != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			e.Handle(ev)
		case msg, ok := <-inbound:
			if !ok {
				inbound = nil
				continue
			}
			_ = e.Apply(msg)
		case now := <-ticker.C:
			e.Tick(now)
		}
	}
	return nil
}

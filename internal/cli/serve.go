package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/config"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/render"
)

// serveOpts holds the flags of the serve command. Set flags override the
// settings file.
type serveOpts struct {
	transport string
	url       string
	addr      string
	session   string
}

// serveCommand creates the serve command, which runs a headless canvas
// against a bridge transport until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless canvas attached to a pipeline server",
		Long: `Serve connects a canvas to the configured bridge transport and applies
every push the server sends. Notifications go back over the same transport.

With the http transport the canvas listens on [bridge] addr instead:
  POST /sessions/{session}/inbound   push one message envelope
  GET  /sessions/{session}/outbound  drain queued notifications
  GET  /sessions/{session}/scene     current diagram as JSON`,
		Example: `  pipecanvas serve --transport http --addr :8080
  pipecanvas serve --transport redis --addr localhost:6379 --session demo
  pipecanvas serve --transport socketio --url http://localhost:3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "bridge transport: socketio, redis, http")
	cmd.Flags().StringVar(&opts.url, "url", "", "socket.io server URL")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "redis address or http listen address")
	cmd.Flags().StringVar(&opts.session, "session", "", "session name")

	return cmd
}

// connect dials the bridge transport behind a spinner.
func (c *CLI) connect(ctx context.Context, cfg config.Bridge) (*link, error) {
	var l *link
	err := spin(ctx, os.Stderr, "Connecting over "+cfg.Transport, func() error {
		var err error
		l, err = dial(ctx, cfg, loggerFromContext(ctx))
		return err
	})
	return l, err
}

// apply overrides the bridge settings with the flags that were set.
func (o serveOpts) apply(b config.Bridge) config.Bridge {
	if o.transport != "" {
		b.Transport = o.transport
	}
	if o.url != "" {
		b.URL = o.url
	}
	if o.addr != "" {
		b.Addr = o.addr
	}
	if o.session != "" {
		b.Session = o.session
	}
	return b
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.Bridge = opts.apply(cfg.Bridge)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.registerHooks()

	l, err := c.connect(ctx, cfg.Bridge)
	if err != nil {
		return err
	}
	defer l.Close()

	var e *canvas.Engine
	e = c.newEngine(cfg.Canvas, publishing(render.Nop{}, l.publish, func() *canvas.Engine { return e }), l)
	if l.publish != nil {
		l.publish(e.Store().Snapshot())
	}

	printSuccess("Serving session %s over %s", StyleHighlight.Render(cfg.Bridge.Session), cfg.Bridge.Transport)
	printDetail("press ctrl+c to stop")

	err = e.Run(ctx, nil, l.Inbound())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// publishingSurface forwards drawing to a surface and publishes a snapshot
// of the diagram at the end of every batch.
type publishingSurface struct {
	render.Surface
	publish func(graph.Snapshot)
	engine  func() *canvas.Engine
}

// publishing wraps s. A nil publish returns s unchanged.
func publishing(s render.Surface, publish func(graph.Snapshot), engine func() *canvas.Engine) render.Surface {
	if publish == nil {
		return s
	}
	return &publishingSurface{Surface: s, publish: publish, engine: engine}
}

func (p *publishingSurface) Flush() {
	p.Surface.Flush()
	if e := p.engine(); e != nil {
		p.publish(e.Store().Snapshot())
	}
}

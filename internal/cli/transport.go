package cli

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/bridge/httpbridge"
	"github.com/matzehuels/pipecanvas/pkg/bridge/redisbus"
	"github.com/matzehuels/pipecanvas/pkg/bridge/socketio"
	"github.com/matzehuels/pipecanvas/pkg/config"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// shutdownTimeout bounds how long the HTTP bridge waits for open requests.
const shutdownTimeout = 5 * time.Second

// link is an open server connection. publish is set for transports that
// serve the current diagram to pollers.
type link struct {
	bridge.Transport
	publish func(graph.Snapshot)
	stop    func()
}

// Close shuts down the transport and any listener started for it.
func (l *link) Close() error {
	err := l.Transport.Close()
	if l.stop != nil {
		l.stop()
	}
	return err
}

// dial opens the transport named in the bridge settings.
func dial(ctx context.Context, cfg config.Bridge, logger *log.Logger) (*link, error) {
	switch cfg.Transport {
	case config.TransportSocketIO:
		t, err := socketio.Dial(ctx, socketio.Options{
			URL:       socketURL(cfg.URL, cfg.Path),
			Namespace: cfg.Namespace,
			Logger:    logger.WithPrefix("socketio"),
		})
		if err != nil {
			return nil, err
		}
		return &link{Transport: t}, nil

	case config.TransportRedis:
		b, err := redisbus.Dial(ctx, redisbus.Options{
			Addr:    cfg.Addr,
			Session: cfg.Session,
			Logger:  logger.WithPrefix("redis"),
		})
		if err != nil {
			return nil, err
		}
		return &link{Transport: b}, nil

	case config.TransportHTTP:
		return serveHTTP(cfg, logger.WithPrefix("http"))

	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no bridge transport configured (set [bridge] transport)")
	}
}

// socketURL joins the server URL with the endpoint path unless the URL
// already names one.
func socketURL(raw, path string) string {
	u, err := url.Parse(raw)
	if err != nil || path == "" || strings.Trim(u.Path, "/") != "" {
		return raw
	}
	u.Path = "/" + strings.TrimPrefix(path, "/")
	return u.String()
}

// serveHTTP starts the polling bridge on the configured listen address.
func serveHTTP(cfg config.Bridge, logger *log.Logger) (*link, error) {
	if cfg.Addr == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "http bridge needs [bridge] addr")
	}
	hb := httpbridge.New(cfg.Session, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           hb.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http bridge stopped", "err", err)
		}
	}()
	logger.Info("listening", "addr", cfg.Addr, "session", cfg.Session)

	return &link{
		Transport: hb,
		publish:   hb.Publish,
		stop: func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		},
	}, nil
}

package rest

import (
	"context"
	"github.com/lordralex/ballot/api/env"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/client"
	"github.com/pkg/errors"
	"net"
	"net/http"
	"time"
)

type Module struct {
	server *http.Server
}

func (*Module) Name() string {
	return "rest"
}

func (m *Module) Load(ctx context.Context, node *chain.Node) error {
	s := newServer(node, client.ConfigFromEnv(), env.GetOr("http.cors.origin", "*"))

	m.server = &http.Server{
		Addr:              env.GetOr("http.listen", ":8080"),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", m.server.Addr)
	}
	logger.Out().Printf("REST api listening on %s\n", listener.Addr())

	go func() {
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Err().Printf("REST api stopped: %s\n", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.server.Shutdown(shutdownCtx); err != nil {
			logger.Err().Printf("Error shutting down REST api: %s\n", err)
		}
	}()

	return nil
}

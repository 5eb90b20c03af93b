package httpapi

import (
	"context"
	"net"
	"net/http"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
)

// Server runs the API listener.
type Server struct {
	server *http.Server
	logger logger.Interface
}

// NewServer creates a Server for handler.
func NewServer(cfg config.HTTPConfig, handler http.Handler, log logger.Interface) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: log,
	}
}

// Start listens in the background. Errors after the listener is bound are
// sent on the returned channel.
func (s *Server) Start() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, errors.NewTracer("listen " + s.server.Addr).Wrap(err)
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.Info("HTTP server started", logger.NewField("addr", ln.Addr().String()))
	return errCh, nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.NewTracer("shutdown http server").Wrap(err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

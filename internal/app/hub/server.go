package hub

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pakolabs/business-console/internal/app/config"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server *http.Server

	config config.Config
}

func New(config config.Config) *HTTPServer {
	mux := CreateRouter(config)

	server := &http.Server{
		Addr:    config.HubAddr,
		Handler: mux,
	}

	return &HTTPServer{
		server: server,
		config: config,
	}
}

func (s *HTTPServer) StartHTTPServer() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("fatal error while starting server", zap.Error(err))
		}
	}()

	zap.L().Info("Pako Business Hub is running", zap.String("address", s.config.HubAddr))

	<-ctx.Done()

	zap.L().Info("Got interruption signal. Shutting down HTTP server gracefully...")
	err := s.server.Shutdown(context.Background())
	if err != nil {
		zap.L().Error("error while shutting down server", zap.Error(err))
	}
}

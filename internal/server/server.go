// Package server runs HTTP servers with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Server timeouts. Request bodies are small JSON documents, but password
// hashing makes writes slower than a typical API.
const (
	ReadHeaderTimeout = 2 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 15 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Listen creates a TCP listener on the given address.
// Use "127.0.0.1:0" for a random available port.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}

// Serve runs srv on listener as part of grp. When ctx is canceled, in-flight
// requests are given shutdownTimeout to complete before the server is closed.
// Unset timeouts on srv are filled with the package defaults.
func Serve(
	ctx context.Context,
	grp *errgroup.Group,
	logger *slog.Logger,
	srv *http.Server,
	listener net.Listener,
	shutdownTimeout time.Duration,
) {
	if srv.ReadHeaderTimeout == 0 {
		srv.ReadHeaderTimeout = ReadHeaderTimeout
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = ReadTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = WriteTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = IdleTimeout
	}

	addr := listener.Addr().String()
	grp.Go(func() error {
		logger.InfoContext(ctx, "server listening", slog.String("address", addr))
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		logger.InfoContext(ctx, "shutting down server", slog.String("address", addr))
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

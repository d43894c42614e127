// Package httpx serves an http.Handler over a selectable transport
// backend: the standard library server or fasthttp.
package httpx

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"journaldb/pkg/logger"
)

const (
	BackendNetHTTP  = "nethttp"
	BackendFastHTTP = "fasthttp"
)

// Server wraps an http.Handler with a transport backend and TLS
// options. The zero backend is net/http.
type Server struct {
	Addr     string
	Backend  string
	CertFile string
	KeyFile  string
	Handler  http.Handler

	std  *http.Server
	fast *fasthttp.Server
}

// ListenAndServe blocks serving the handler. It returns
// http.ErrServerClosed after a clean Shutdown on the nethttp backend.
func (s *Server) ListenAndServe() error {
	switch s.Backend {
	case BackendFastHTTP:
		s.fast = &fasthttp.Server{Handler: fasthttpadaptor.NewFastHTTPHandler(s.Handler)}
		logger.Info("http_listen", "addr", s.Addr, "backend", BackendFastHTTP)
		if s.CertFile != "" && s.KeyFile != "" {
			return s.fast.ListenAndServeTLS(s.Addr, s.CertFile, s.KeyFile)
		}
		return s.fast.ListenAndServe(s.Addr)
	default:
		s.std = &http.Server{Addr: s.Addr, Handler: s.Handler}
		logger.Info("http_listen", "addr", s.Addr, "backend", BackendNetHTTP)
		if s.CertFile != "" && s.KeyFile != "" {
			return s.std.ListenAndServeTLS(s.CertFile, s.KeyFile)
		}
		return s.std.ListenAndServe()
	}
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline on the nethttp backend.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.fast != nil {
		return s.fast.Shutdown()
	}
	if s.std != nil {
		return s.std.Shutdown(ctx)
	}
	return nil
}

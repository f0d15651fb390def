// Package server builds the HTTP and gRPC servers of a service.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storeadmin/pkg/config"
	"github.com/abgdnv/storeadmin/pkg/web"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer returns an http.Server listening on all interfaces at cfg.Port.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout.Read,
		WriteTimeout:      cfg.Timeout.Write,
		IdleTimeout:       cfg.Timeout.Idle,
		ReadHeaderTimeout: cfg.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewChiRouter returns a chi router with request id, access log and panic recovery middleware.
// With tracing on, each request runs in an OpenTelemetry span named "<method> <path>".
func NewChiRouter(logger *slog.Logger, serviceName string, tracing bool) *chi.Mux {
	mux := chi.NewRouter()
	if tracing {
		mux.Use(otelhttp.NewMiddleware(serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		))
	}
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))
	return mux
}

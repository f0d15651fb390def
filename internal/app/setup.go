// Package app contains the application setup for the admin service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/storeadmin/internal/config"
	"github.com/abgdnv/storeadmin/internal/service"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/internal/transport/rest"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/abgdnv/storeadmin/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "admin-service"

type Dependencies struct {
	ProductService  service.ProductService
	OrderService    service.OrderService
	ReportService   service.ReportService
	SettingsService service.SettingsService
	Validate        *validator.Validate
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Health         *health.Server
	Logger         *slog.Logger
}

// SetupDependencies wires the services on top of st. Domain events go to publisher.
func SetupDependencies(st store.Store, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	validate := service.NewValidator()
	return &Dependencies{
		ProductService:  service.NewProductService(st, publisher, validate, logger),
		OrderService:    service.NewOrderService(st, publisher, validate, logger),
		ReportService:   service.NewReportService(st, st, publisher, logger),
		SettingsService: service.NewSettingsService(st, validate, logger),
		Validate:        validate,
		Health:          health.NewServer(),
		Logger:          logger,
	}
}

// SetupHttpHandler initializes the routes and middleware of the admin API.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, ServiceName, cfg.Telemetry.Enabled)
	wireRoutes(mux, deps, cfg)
	return mux
}

// wireRoutes sets up the HTTP routes for the admin service.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	handler := rest.NewHandler(rest.Services{
		Products: deps.ProductService,
		Orders:   deps.OrderService,
		Reports:  deps.ReportService,
		Settings: deps.SettingsService,
	}, deps.Validate, cfg.Import.MaxBytes, deps.Logger)
	handler.RegisterRoutes(mux)

	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the admin service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps, cfg))
}

// SetupGrpcServer initializes the gRPC server that answers orchestration health probes.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	deps.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	deps.Health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return server.NewGRPCServer(reflectionEnabled, server.WithHealth(deps.Health))
}

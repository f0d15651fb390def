// Package rest provides the HTTP API of the admin back office.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/service"
	"github.com/abgdnv/storeadmin/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Services groups the business services the handler delegates to.
type Services struct {
	Products service.ProductService
	Orders   service.OrderService
	Reports  service.ReportService
	Settings service.SettingsService
}

type Handler struct {
	services       Services
	validate       *validator.Validate
	maxImportBytes int64
	logger         *slog.Logger
}

// NewHandler creates a new Handler. Import bodies larger than maxImportBytes are rejected.
func NewHandler(services Services, validate *validator.Validate, maxImportBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		services:       services,
		validate:       validate,
		maxImportBytes: maxImportBytes,
		logger:         logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the admin API.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindProducts)
		r.Post("/", h.CreateProduct)
		r.Post("/import", h.ImportProducts)
		r.Get("/import/sample", h.ImportSample)
		r.Get("/export", h.ExportProducts)
		r.Post("/bulk-edit", h.BulkEditProducts)
		r.Post("/bulk-delete", h.BulkDeleteProducts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindProductByID)
			r.Put("/", h.UpdateProduct)
			r.Delete("/", h.DeleteProductByID)
		})
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.FindOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.FindOrderByID)
		r.Put("/{id}/status", h.UpdateOrderStatus)
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/", h.FindReports)
		r.Post("/", h.GenerateReport)
		r.Get("/{id}", h.FindReportByID)
		r.Delete("/{id}", h.DeleteReportByID)
		r.Get("/{id}/download", h.DownloadReport)
	})

	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.Put("/", h.UpdateSettings)
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure the response is written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		web.RespondValidation(w, logger, err)
		return false
	}
	return true
}

// badRequestErrors are reported to the client with their own message.
var badRequestErrors = []error{
	adminerrors.ErrNegativePrice,
	adminerrors.ErrInvalidCategory,
	adminerrors.ErrInvalidStatus,
	adminerrors.ErrImageTooLarge,
	adminerrors.ErrDateRangeRequired,
	adminerrors.ErrInvalidDateRange,
	adminerrors.ErrUnknownReportType,
	adminerrors.ErrMalformedCSV,
}

var notFoundErrors = []error{
	adminerrors.ErrProductNotFound,
	adminerrors.ErrOrderNotFound,
	adminerrors.ErrReportNotFound,
}

// respondServiceError maps an error returned by a service to a response.
// notFound and failed are the messages used for 404 and 500 responses.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound, failed string) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			logger.WarnContext(r.Context(), notFound, "error", err)
			web.RespondError(w, logger, http.StatusNotFound, notFound)
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			logger.WarnContext(r.Context(), "Request rejected", "error", err)
			web.RespondError(w, logger, http.StatusBadRequest, target.Error())
			return
		}
	}
	if errors.Is(err, adminerrors.ErrValidation) {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			web.RespondValidation(w, logger, validationErrors)
			return
		}
		logger.WarnContext(r.Context(), "Request rejected", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, err.Error())
		return
	}
	logger.ErrorContext(r.Context(), failed, "error", err)
	web.RespondError(w, logger, http.StatusInternalServerError, failed)
}

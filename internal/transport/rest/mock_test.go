package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/storeadmin/internal/csvio"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product    *model.Product
	products   []model.Product
	summary    *service.ImportSummary
	bulkEdit   *service.BulkEditResult
	bulkDelete *service.BulkDeleteResult
	export     string
	error      error

	filter     model.ProductFilter
	directive  model.BulkEditDirective
	importText string
	importMode csvio.Mode
}

func (m *mockProductService) FindByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	return m.product, m.error
}

func (m *mockProductService) FindAll(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	m.filter = filter
	return m.products, m.error
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductDto) (*model.Product, error) {
	return m.product, m.error
}

func (m *mockProductService) Update(_ context.Context, _ uuid.UUID, _ service.ProductDto) (*model.Product, error) {
	return m.product, m.error
}

func (m *mockProductService) DeleteByID(_ context.Context, _ uuid.UUID) error {
	return m.error
}

func (m *mockProductService) Import(_ context.Context, mode csvio.Mode, text string) (*service.ImportSummary, error) {
	m.importMode, m.importText = mode, text
	return m.summary, m.error
}

func (m *mockProductService) Export(_ context.Context, filter model.ProductFilter, _ service.ExportFormat, w io.Writer) error {
	m.filter = filter
	if m.error != nil {
		return m.error
	}
	_, err := io.WriteString(w, m.export)
	return err
}

func (m *mockProductService) BulkEdit(_ context.Context, _ []uuid.UUID, d model.BulkEditDirective) (*service.BulkEditResult, error) {
	m.directive = d
	return m.bulkEdit, m.error
}

func (m *mockProductService) BulkDelete(_ context.Context, _ []uuid.UUID) (*service.BulkDeleteResult, error) {
	return m.bulkDelete, m.error
}

// mockOrderService is a mock implementation of the OrderService interface
type mockOrderService struct {
	order  *model.Order
	orders []model.Order
	error  error
	filter model.OrderFilter
}

func (m *mockOrderService) Create(_ context.Context, _ service.OrderDto) (*model.Order, error) {
	return m.order, m.error
}

func (m *mockOrderService) FindByID(_ context.Context, _ uuid.UUID) (*model.Order, error) {
	return m.order, m.error
}

func (m *mockOrderService) FindAll(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	m.filter = filter
	return m.orders, m.error
}

func (m *mockOrderService) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) (*model.Order, error) {
	return m.order, m.error
}

// mockReportService is a mock implementation of the ReportService interface
type mockReportService struct {
	report  *model.Report
	reports []model.Report
	error   error
}

func (m *mockReportService) Generate(_ context.Context, _, _, _ string) (*model.Report, error) {
	return m.report, m.error
}

func (m *mockReportService) FindAll(_ context.Context) ([]model.Report, error) {
	return m.reports, m.error
}

func (m *mockReportService) FindByID(_ context.Context, _ uuid.UUID) (*model.Report, error) {
	return m.report, m.error
}

func (m *mockReportService) DeleteByID(_ context.Context, _ uuid.UUID) error {
	return m.error
}

// mockSettingsService is a mock implementation of the SettingsService interface
type mockSettingsService struct {
	settings *model.SiteSettings
	error    error
}

func (m *mockSettingsService) Get(_ context.Context) (*model.SiteSettings, error) {
	return m.settings, m.error
}

func (m *mockSettingsService) Update(_ context.Context, s model.SiteSettings) (*model.SiteSettings, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &s, nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

// newRouter mounts a handler built from services on a fresh chi router.
func newRouter(services Services, maxImportBytes int64) *chi.Mux {
	if services.Products == nil {
		services.Products = &mockProductService{}
	}
	if services.Orders == nil {
		services.Orders = &mockOrderService{}
	}
	if services.Reports == nil {
		services.Reports = &mockReportService{}
	}
	if services.Settings == nil {
		services.Settings = &mockSettingsService{}
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewHandler(services, service.NewValidator(), maxImportBytes, logger).RegisterRoutes(r)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

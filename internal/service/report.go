package service

import (
	"context"
	"fmt"
	"log/slog"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/report"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/pkg/logger"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/abgdnv/storeadmin/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReportService defines the methods for generating and keeping reports.
type ReportService interface {
	// Generate aggregates a report of the given type over the current products and orders.
	// Nothing is stored when the type or the date range is invalid.
	Generate(ctx context.Context, kind, start, end string) (*model.Report, error)

	FindAll(ctx context.Context) ([]model.Report, error)

	// FindByID returns ErrReportNotFound if no report exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)

	// DeleteByID returns ErrReportNotFound if no report exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ReportSource is the read access Generate needs.
type ReportSource interface {
	FindProducts(ctx context.Context) ([]model.Product, error)
	FindOrders(ctx context.Context) ([]model.Order, error)
}

// Reports implements ReportService.
type Reports struct {
	store            store.ReportStore
	source           ReportSource
	publisher        messaging.Publisher
	logger           *slog.Logger
	generatedCounter metric.Int64Counter
}

// NewReportService creates a new instance of ReportService.
func NewReportService(s store.ReportStore, source ReportSource, publisher messaging.Publisher, logger *slog.Logger) *Reports {
	return &Reports{
		store:            s,
		source:           source,
		publisher:        publisher,
		logger:           logger.With("component", "report-service"),
		generatedCounter: newCounter("reports_generated", "Total number of generated reports"),
	}
}

func (s *Reports) Generate(ctx context.Context, kind, start, end string) (*model.Report, error) {
	ctx = logger.WithOperation(ctx, "reports.generate")
	reportType, err := model.ParseReportType(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adminerrors.ErrUnknownReportType, err)
	}
	rng, err := report.ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}

	products, err := s.source.FindProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for report: %w", err)
	}
	orders, err := s.source.FindOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for report: %w", err)
	}
	data, err := report.Aggregate(reportType, rng, products, orders)
	if err != nil {
		return nil, err
	}

	r := model.Report{
		ID:          uuid.New(),
		Name:        reportType.Title() + " Report",
		Type:        reportType,
		DateRange:   rng,
		GeneratedAt: timestamp(),
		Data:        data,
	}
	created, err := s.store.CreateReport(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.generatedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(reportType))))
	s.logger.InfoContext(ctx, "Report generated", "reportID", created.ID, "type", reportType)
	publish(ctx, s.publisher, s.logger, events.ReportGeneratedEvent{
		Carrier:     traceCarrier(ctx),
		ReportID:    created.ID,
		Type:        string(reportType),
		GeneratedAt: created.GeneratedAt,
	})
	return created, nil
}

func (s *Reports) FindAll(ctx context.Context) ([]model.Report, error) {
	reports, err := s.store.FindReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

func (s *Reports) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	r, err := s.store.FindReportByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report by ID %s: %w", id, err)
	}
	return r, nil
}

func (s *Reports) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report with ID %s: %w", id, err)
	}
	return nil
}

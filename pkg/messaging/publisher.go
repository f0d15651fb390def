// Package messaging defines the domain event contract and publishers that do not need a broker.
package messaging

import (
	"context"
	"log/slog"
)

const (
	ProductsImportedSubject    = "admin.products.imported"
	ProductsBulkEditedSubject  = "admin.products.bulk_edited"
	ProductsBulkDeletedSubject = "admin.products.bulk_deleted"
	OrderStatusChangedSubject  = "admin.orders.status_changed"
	ReportGeneratedSubject     = "admin.reports.generated"

	// SubjectsWildcard matches every subject published by the admin service.
	SubjectsWildcard = "admin.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the log instead of a broker. Used when NATS is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	data, err := event.Payload()
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "Event published", "subject", event.Subject(), "payload", string(data))
	return nil
}

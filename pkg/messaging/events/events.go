package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
)

type ProductsImportedEvent struct {
	Carrier    propagation.MapCarrier `json:"carrier,omitempty"`
	Mode       string                 `json:"mode"`
	Parsed     int                    `json:"parsed"`
	Accepted   int                    `json:"accepted"`
	Created    int                    `json:"created"`
	Failed     int                    `json:"failed"`
	ImportedAt time.Time              `json:"imported_at"`
}

func (e ProductsImportedEvent) Subject() string {
	return messaging.ProductsImportedSubject
}

func (e ProductsImportedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductsBulkEditedEvent struct {
	Carrier  propagation.MapCarrier `json:"carrier,omitempty"`
	Updated  []uuid.UUID            `json:"updated"`
	Skipped  []uuid.UUID            `json:"skipped"`
	Rejected []uuid.UUID            `json:"rejected"`
	EditedAt time.Time              `json:"edited_at"`
}

func (e ProductsBulkEditedEvent) Subject() string {
	return messaging.ProductsBulkEditedSubject
}

func (e ProductsBulkEditedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductsBulkDeletedEvent struct {
	Carrier   propagation.MapCarrier `json:"carrier,omitempty"`
	Deleted   []uuid.UUID            `json:"deleted"`
	DeletedAt time.Time              `json:"deleted_at"`
}

func (e ProductsBulkDeletedEvent) Subject() string {
	return messaging.ProductsBulkDeletedSubject
}

func (e ProductsBulkDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type OrderStatusChangedEvent struct {
	Carrier   propagation.MapCarrier `json:"carrier,omitempty"`
	OrderID   uuid.UUID              `json:"order_id"`
	OldStatus string                 `json:"old_status"`
	NewStatus string                 `json:"new_status"`
	ChangedAt time.Time              `json:"changed_at"`
}

func (e OrderStatusChangedEvent) Subject() string {
	return messaging.OrderStatusChangedSubject
}

func (e OrderStatusChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ReportGeneratedEvent struct {
	Carrier     propagation.MapCarrier `json:"carrier,omitempty"`
	ReportID    uuid.UUID              `json:"report_id"`
	Type        string                 `json:"type"`
	GeneratedAt time.Time              `json:"generated_at"`
}

func (e ReportGeneratedEvent) Subject() string {
	return messaging.ReportGeneratedSubject
}

func (e ReportGeneratedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// Package store provides the state repository of the admin service.
package store

import (
	"context"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
)

// ProductStore is an interface for product storage operations.
// Listing methods return items in creation order.
type ProductStore interface {
	// FindProductByID returns ErrProductNotFound if no product exists with the given ID.
	FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindProducts returns every product, or an empty slice.
	FindProducts(ctx context.Context) ([]model.Product, error)

	// CreateProduct stores p as given, ID and timestamps included.
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)

	// UpdateProduct replaces the stored product with the same ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error)

	// DeleteProduct returns ErrProductNotFound if no product exists with the given ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// OrderStore is an interface for order storage operations.
type OrderStore interface {
	// FindOrderByID returns ErrOrderNotFound if no order exists with the given ID.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	FindOrders(ctx context.Context) ([]model.Order, error)

	CreateOrder(ctx context.Context, o model.Order) (*model.Order, error)

	// UpdateOrderStatus changes the status in place and returns the updated order.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

// ReportStore is an interface for report storage operations. Reports are immutable once stored.
type ReportStore interface {
	// FindReportByID returns ErrReportNotFound if no report exists with the given ID.
	FindReportByID(ctx context.Context, id uuid.UUID) (*model.Report, error)

	FindReports(ctx context.Context) ([]model.Report, error)

	CreateReport(ctx context.Context, r model.Report) (*model.Report, error)

	// DeleteReport returns ErrReportNotFound if no report exists with the given ID.
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// SettingsStore keeps the single site settings value.
type SettingsStore interface {
	// GetSettings returns model.DefaultSiteSettings until settings are saved.
	GetSettings(ctx context.Context) (*model.SiteSettings, error)

	SaveSettings(ctx context.Context, s model.SiteSettings) (*model.SiteSettings, error)
}

// Store groups the per-entity stores.
type Store interface {
	ProductStore
	OrderStore
	ReportStore
	SettingsStore
}

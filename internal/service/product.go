package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abgdnv/storeadmin/internal/csvio"
	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/pkg/logger"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/abgdnv/storeadmin/pkg/messaging/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing the catalog.
type ProductService interface {
	// FindByID returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindAll returns the products matching filter in creation order.
	FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Create validates dto and adds a new product.
	Create(ctx context.Context, dto ProductDto) (*model.Product, error)

	// Update replaces every editable field of the product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, dto ProductDto) (*model.Product, error)

	// DeleteByID returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// Import parses text and creates every accepted record. A malformed file creates nothing.
	Import(ctx context.Context, mode csvio.Mode, text string) (*ImportSummary, error)

	// Export writes the products matching filter to w.
	Export(ctx context.Context, filter model.ProductFilter, format ExportFormat, w io.Writer) error

	// BulkEdit applies d to each product in ids. Missing products are skipped.
	BulkEdit(ctx context.Context, ids []uuid.UUID, d model.BulkEditDirective) (*BulkEditResult, error)

	// BulkDelete removes each product in ids. Missing products are skipped.
	BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkDeleteResult, error)
}

// ProductDto carries the editable fields of a product.
type ProductDto struct {
	Name          string           `json:"name"          validate:"required,max=200"`
	Price         decimal.Decimal  `json:"price"         validate:"gte=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"omitempty,gte=0"`
	Category      string           `json:"category"      validate:"required,category"`
	Categories    []string         `json:"categories"    validate:"omitempty,dive,category"`
	Tags          []string         `json:"tags"          validate:"omitempty,dive,required,max=50"`
	Stock         int32            `json:"stock"         validate:"gte=0"`
	InStock       *bool            `json:"inStock"`
	Image         string           `json:"image"         validate:"omitempty,image"`
	Description   string           `json:"description"   validate:"max=5000"`
	Weight        string           `json:"weight"        validate:"max=100"`
	Rating        decimal.Decimal  `json:"rating"        validate:"gte=0,lte=5"`
	Reviews       int32            `json:"reviews"       validate:"gte=0"`
}

type ImportFailure struct {
	Line  int    `json:"line"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type ImportSummary struct {
	Parsed   int             `json:"parsed"`
	Accepted int             `json:"accepted"`
	Created  int             `json:"created"`
	Failed   []ImportFailure `json:"failed"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type BulkEditResult struct {
	Updated   []uuid.UUID `json:"updated"`
	Unchanged []uuid.UUID `json:"unchanged"`
	Skipped   []uuid.UUID `json:"skipped"`
	Rejected  []uuid.UUID `json:"rejected"`
	Failed    []uuid.UUID `json:"failed"`
}

type BulkDeleteResult struct {
	Deleted []uuid.UUID `json:"deleted"`
	Skipped []uuid.UUID `json:"skipped"`
	Failed  []uuid.UUID `json:"failed"`
}

// Products implements ProductService.
type Products struct {
	store           store.ProductStore
	publisher       messaging.Publisher
	validate        *validator.Validate
	logger          *slog.Logger
	importedCounter metric.Int64Counter
	editedCounter   metric.Int64Counter
}

// NewProductService creates a new instance of ProductService.
func NewProductService(s store.ProductStore, publisher messaging.Publisher, validate *validator.Validate, logger *slog.Logger) *Products {
	return &Products{
		store:           s,
		publisher:       publisher,
		validate:        validate,
		logger:          logger.With("component", "product-service"),
		importedCounter: newCounter("products_imported", "Total number of products created by CSV import"),
		editedCounter:   newCounter("products_bulk_edited", "Total number of products changed by bulk edit"),
	}
}

func (s *Products) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.store.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return p, nil
}

func (s *Products) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.store.FindProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchProduct(p, filter) {
			matched = append(matched, p)
		}
	}
	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (s *Products) Create(ctx context.Context, dto ProductDto) (*model.Product, error) {
	p, err := s.fromDto(dto)
	if err != nil {
		return nil, err
	}
	now := timestamp()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (s *Products) Update(ctx context.Context, id uuid.UUID, dto ProductDto) (*model.Product, error) {
	p, err := s.fromDto(dto)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.UpdatedAt = timestamp()

	updated, err := s.store.UpdateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return updated, nil
}

func (s *Products) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

func (s *Products) Import(ctx context.Context, mode csvio.Mode, text string) (*ImportSummary, error) {
	ctx = logger.WithOperation(ctx, "products.import")
	parsed, err := csvio.Parse(mode, text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	summary := &ImportSummary{
		Parsed:   len(parsed.Records),
		Accepted: parsed.Accepted,
		Failed:   []ImportFailure{},
	}
	for _, rec := range parsed.AcceptedRecords() {
		if _, err := s.Create(ctx, recordToDto(rec)); err != nil {
			s.logger.WarnContext(ctx, "Import record rejected", "line", rec.Line, "name", rec.Name, "error", err)
			summary.Failed = append(summary.Failed, ImportFailure{Line: rec.Line, Name: rec.Name, Error: err.Error()})
			continue
		}
		summary.Created++
	}

	s.importedCounter.Add(ctx, int64(summary.Created))
	s.logger.InfoContext(ctx, "Products imported", "mode", mode, "parsed", summary.Parsed,
		"accepted", summary.Accepted, "created", summary.Created, "failed", len(summary.Failed))
	publish(ctx, s.publisher, s.logger, events.ProductsImportedEvent{
		Carrier:    traceCarrier(ctx),
		Mode:       string(mode),
		Parsed:     summary.Parsed,
		Accepted:   summary.Accepted,
		Created:    summary.Created,
		Failed:     len(summary.Failed),
		ImportedAt: timestamp(),
	})
	return summary, nil
}

func (s *Products) Export(ctx context.Context, filter model.ProductFilter, format ExportFormat, w io.Writer) error {
	products, err := s.FindAll(ctx, filter)
	if err != nil {
		return err
	}
	switch format {
	case ExportCSV:
		err = csvio.WriteCSV(w, products)
	case ExportXLSX:
		err = csvio.WriteXLSX(w, products)
	default:
		return validationError(fmt.Errorf("unsupported export format %q", format))
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

func (s *Products) BulkEdit(ctx context.Context, ids []uuid.UUID, d model.BulkEditDirective) (*BulkEditResult, error) {
	ctx = logger.WithOperation(ctx, "products.bulk_edit")
	d, err := normalizeDirective(d)
	if err != nil {
		return nil, err
	}

	result := &BulkEditResult{
		Updated:   []uuid.UUID{},
		Unchanged: []uuid.UUID{},
		Skipped:   []uuid.UUID{},
		Rejected:  []uuid.UUID{},
		Failed:    []uuid.UUID{},
	}
	for _, id := range ids {
		p, err := s.store.FindProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, adminerrors.ErrProductNotFound) {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			s.logger.ErrorContext(ctx, "Bulk edit lookup failed", "ID", id, "error", err)
			result.Failed = append(result.Failed, id)
			continue
		}

		edited, changed := ApplyDirective(*p, d)
		if !changed {
			result.Unchanged = append(result.Unchanged, id)
			continue
		}
		if edited.Price.IsNegative() {
			s.logger.WarnContext(ctx, "Bulk edit would make price negative", "ID", id, "price", edited.Price)
			result.Rejected = append(result.Rejected, id)
			continue
		}
		edited.UpdatedAt = timestamp()
		if _, err := s.store.UpdateProduct(ctx, edited); err != nil {
			if errors.Is(err, adminerrors.ErrProductNotFound) {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			s.logger.ErrorContext(ctx, "Bulk edit update failed", "ID", id, "error", err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Updated = append(result.Updated, id)
	}

	s.editedCounter.Add(ctx, int64(len(result.Updated)))
	s.logger.InfoContext(ctx, "Bulk edit finished", "updated", len(result.Updated), "unchanged", len(result.Unchanged),
		"skipped", len(result.Skipped), "rejected", len(result.Rejected), "failed", len(result.Failed))
	publish(ctx, s.publisher, s.logger, events.ProductsBulkEditedEvent{
		Carrier:  traceCarrier(ctx),
		Updated:  result.Updated,
		Skipped:  result.Skipped,
		Rejected: result.Rejected,
		EditedAt: timestamp(),
	})
	return result, nil
}

func (s *Products) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkDeleteResult, error) {
	ctx = logger.WithOperation(ctx, "products.bulk_delete")
	result := &BulkDeleteResult{Deleted: []uuid.UUID{}, Skipped: []uuid.UUID{}, Failed: []uuid.UUID{}}
	for _, id := range ids {
		err := s.store.DeleteProduct(ctx, id)
		switch {
		case err == nil:
			result.Deleted = append(result.Deleted, id)
		case errors.Is(err, adminerrors.ErrProductNotFound):
			result.Skipped = append(result.Skipped, id)
		default:
			s.logger.ErrorContext(ctx, "Bulk delete failed", "ID", id, "error", err)
			result.Failed = append(result.Failed, id)
		}
	}

	s.logger.InfoContext(ctx, "Bulk delete finished", "deleted", len(result.Deleted), "skipped", len(result.Skipped))
	publish(ctx, s.publisher, s.logger, events.ProductsBulkDeletedEvent{
		Carrier:   traceCarrier(ctx),
		Deleted:   result.Deleted,
		DeletedAt: timestamp(),
	})
	return result, nil
}

// fromDto validates dto and converts it to a product without identity or timestamps.
func (s *Products) fromDto(dto ProductDto) (model.Product, error) {
	if dto.Price.IsNegative() {
		return model.Product{}, adminerrors.ErrNegativePrice
	}
	if err := s.validate.Struct(dto); err != nil {
		return model.Product{}, validationError(err)
	}
	if err := checkImageSize(dto.Image); err != nil {
		return model.Product{}, validationError(err)
	}

	category, err := model.ParseCategory(dto.Category)
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %v", adminerrors.ErrInvalidCategory, err)
	}
	var categories []model.Category
	for _, c := range dto.Categories {
		parsed, err := model.ParseCategory(c)
		if err != nil {
			return model.Product{}, fmt.Errorf("%w: %v", adminerrors.ErrInvalidCategory, err)
		}
		categories = append(categories, parsed)
	}

	inStock := dto.Stock > 0
	if dto.InStock != nil {
		inStock = *dto.InStock
	}
	tags := make([]string, 0, len(dto.Tags))
	for _, t := range dto.Tags {
		tags = append(tags, strings.TrimSpace(t))
	}

	return model.Product{
		Name:          strings.TrimSpace(dto.Name),
		Price:         dto.Price,
		OriginalPrice: dto.OriginalPrice,
		Category:      category,
		Categories:    categories,
		Tags:          tags,
		Stock:         dto.Stock,
		InStock:       inStock,
		Image:         dto.Image,
		Description:   dto.Description,
		Weight:        dto.Weight,
		Rating:        dto.Rating,
		Reviews:       dto.Reviews,
	}, nil
}

func recordToDto(rec csvio.ProductRecord) ProductDto {
	return ProductDto{
		Name:          rec.Name,
		Price:         rec.Price,
		OriginalPrice: rec.OriginalPrice,
		Category:      rec.Category,
		Categories:    rec.Categories,
		Tags:          rec.Tags,
		Stock:         rec.Stock,
		InStock:       rec.InStock,
		Image:         rec.Image,
		Description:   rec.Description,
		Weight:        rec.Weight,
		Rating:        rec.Rating,
		Reviews:       rec.Reviews,
	}
}

// matchProduct ports the storefront listing filter: the query matches name or category ignoring case.
func matchProduct(p model.Product, f model.ProductFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(string(p.Category)), q) {
			return false
		}
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	switch f.Stock {
	case model.StockInStock:
		return p.InStock
	case model.StockOutOfStock:
		return !p.InStock
	}
	return true
}

func paginate[T any](items []T, offset, limit int32) []T {
	if offset > 0 {
		if int(offset) >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && int(limit) < len(items) {
		items = items[:limit]
	}
	return items
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/abgdnv/storeadmin/pkg/messaging/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OrderService defines the methods for managing orders.
type OrderService interface {
	// Create places a new pending order. The total is computed from the items.
	Create(ctx context.Context, dto OrderDto) (*model.Order, error)

	// FindByID returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// FindAll returns the orders matching filter in creation order.
	FindAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus changes the status of an order.
	// Returns ErrOrderNotFound if no order exists with the given ID and ErrInvalidStatus for unknown statuses.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
}

type OrderItemDto struct {
	ProductID   uuid.UUID       `json:"productId"   validate:"required"`
	ProductName string          `json:"productName" validate:"required,max=200"`
	Quantity    int32           `json:"quantity"    validate:"gt=0"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0"`
	Image       string          `json:"image"       validate:"omitempty,image"`
}

type OrderDto struct {
	CustomerName    string         `json:"customerName"    validate:"required,max=200"`
	CustomerEmail   string         `json:"customerEmail"   validate:"required,email"`
	CustomerPhone   string         `json:"customerPhone"   validate:"max=50"`
	ShippingAddress model.Address  `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"   validate:"required,max=50"`
	PaymentStatus   string         `json:"paymentStatus"   validate:"omitempty,oneof=pending completed failed refunded"`
	Items           []OrderItemDto `json:"items"           validate:"required,min=1,dive"`
}

// Orders implements OrderService.
type Orders struct {
	store         store.OrderStore
	publisher     messaging.Publisher
	validate      *validator.Validate
	logger        *slog.Logger
	statusCounter metric.Int64Counter
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(s store.OrderStore, publisher messaging.Publisher, validate *validator.Validate, logger *slog.Logger) *Orders {
	return &Orders{
		store:         s,
		publisher:     publisher,
		validate:      validate,
		logger:        logger.With("component", "order-service"),
		statusCounter: newCounter("order_status_changes", "Total number of order status changes"),
	}
}

func (s *Orders) Create(ctx context.Context, dto OrderDto) (*model.Order, error) {
	if err := s.validate.Struct(dto); err != nil {
		return nil, validationError(err)
	}

	items := make([]model.OrderItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Image:       item.Image,
		})
	}
	payment := model.PaymentStatus(dto.PaymentStatus)
	if payment == "" {
		payment = model.PaymentStatusPending
	}
	now := timestamp()
	order := model.Order{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(dto.CustomerName),
		CustomerEmail:   strings.TrimSpace(dto.CustomerEmail),
		CustomerPhone:   dto.CustomerPhone,
		ShippingAddress: dto.ShippingAddress,
		PaymentMethod:   dto.PaymentMethod,
		PaymentStatus:   payment,
		Items:           items,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.TotalAmount = order.ItemsTotal()

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.InfoContext(ctx, "Order created", "orderID", created.ID, "total", created.TotalAmount)
	return created, nil
}

func (s *Orders) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order by ID %s: %w", id, err)
	}
	return o, nil
}

func (s *Orders) FindAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var status model.OrderStatus
	if filter.Status != "" && filter.Status != "all" {
		parsed, err := model.ParseOrderStatus(filter.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", adminerrors.ErrInvalidStatus, err)
		}
		status = parsed
	}

	orders, err := s.store.FindOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.ID.String()), query) &&
			!strings.Contains(strings.ToLower(o.CustomerName), query) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), query) {
			continue
		}
		matched = append(matched, o)
	}
	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (s *Orders) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	newStatus, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adminerrors.ErrInvalidStatus, err)
	}
	current, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order by ID %s: %w", id, err)
	}
	updated, err := s.store.UpdateOrderStatus(ctx, id, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of order %s: %w", id, err)
	}

	s.statusCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(newStatus))))
	s.logger.InfoContext(ctx, "Order status changed", "orderID", id, "from", current.Status, "to", newStatus)
	publish(ctx, s.publisher, s.logger, events.OrderStatusChangedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   id,
		OldStatus: string(current.Status),
		NewStatus: string(newStatus),
		ChangedAt: updated.UpdatedAt,
	})
	return updated, nil
}

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store using maps guarded by a RWMutex.
// Creation order is kept in a separate id slice per entity.
type InMemory struct {
	mu sync.RWMutex

	products     map[uuid.UUID]model.Product
	productOrder []uuid.UUID

	orders     map[uuid.UUID]model.Order
	orderOrder []uuid.UUID

	reports     map[uuid.UUID]model.Report
	reportOrder []uuid.UUID

	settings *model.SiteSettings
}

// NewInMemoryStore creates a new empty in-memory store.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		products: make(map[uuid.UUID]model.Product),
		orders:   make(map[uuid.UUID]model.Order),
		reports:  make(map[uuid.UUID]model.Report),
	}
}

func (s *InMemory) FindProductByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, adminerrors.ErrProductNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (s *InMemory) FindProducts(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		list = append(list, s.products[id].Clone())
	}
	return list, nil
}

func (s *InMemory) CreateProduct(_ context.Context, p model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ID] = p.Clone()
	s.productOrder = append(s.productOrder, p.ID)
	c := p.Clone()
	return &c, nil
}

func (s *InMemory) UpdateProduct(_ context.Context, p model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return nil, adminerrors.ErrProductNotFound
	}
	p.CreatedAt = existing.CreatedAt
	s.products[p.ID] = p.Clone()
	c := p.Clone()
	return &c, nil
}

func (s *InMemory) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return adminerrors.ErrProductNotFound
	}
	delete(s.products, id)
	s.productOrder = removeID(s.productOrder, id)
	return nil
}

func (s *InMemory) FindOrderByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, adminerrors.ErrOrderNotFound
	}
	c := o.Clone()
	return &c, nil
}

func (s *InMemory) FindOrders(_ context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Order, 0, len(s.orderOrder))
	for _, id := range s.orderOrder {
		list = append(list, s.orders[id].Clone())
	}
	return list, nil
}

func (s *InMemory) CreateOrder(_ context.Context, o model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID] = o.Clone()
	s.orderOrder = append(s.orderOrder, o.ID)
	c := o.Clone()
	return &c, nil
}

func (s *InMemory) UpdateOrderStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, adminerrors.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	s.orders[id] = o
	c := o.Clone()
	return &c, nil
}

func (s *InMemory) FindReportByID(_ context.Context, id uuid.UUID) (*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, adminerrors.ErrReportNotFound
	}
	return &r, nil
}

func (s *InMemory) FindReports(_ context.Context) ([]model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.Report, 0, len(s.reportOrder))
	for _, id := range s.reportOrder {
		list = append(list, s.reports[id])
	}
	return list, nil
}

func (s *InMemory) CreateReport(_ context.Context, r model.Report) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.ID] = r
	s.reportOrder = append(s.reportOrder, r.ID)
	return &r, nil
}

func (s *InMemory) DeleteReport(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return adminerrors.ErrReportNotFound
	}
	delete(s.reports, id)
	s.reportOrder = removeID(s.reportOrder, id)
	return nil
}

func (s *InMemory) GetSettings(_ context.Context) (*model.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		d := model.DefaultSiteSettings()
		return &d, nil
	}
	return cloneSettings(*s.settings), nil
}

func (s *InMemory) SaveSettings(_ context.Context, settings model.SiteSettings) (*model.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = cloneSettings(settings)
	return cloneSettings(settings), nil
}

func cloneSettings(s model.SiteSettings) *model.SiteSettings {
	s.HeroImages = slices.Clone(s.HeroImages)
	s.CategoryImages = slices.Clone(s.CategoryImages)
	return &s
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(v uuid.UUID) bool { return v == id })
}

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store down")

// mockPublisher records every published event
type mockPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockPublisher) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Subject())
	}
	return out
}

// failingStore wraps an in-memory store and fails the lookups of the listed products
type failingStore struct {
	*store.InMemory
	failIDs map[uuid.UUID]bool
}

func (f *failingStore) FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if f.failIDs[id] {
		return nil, errStoreDown
	}
	return f.InMemory.FindProductByID(ctx, id)
}

// brokenSource fails every read
type brokenSource struct{}

func (brokenSource) FindProducts(context.Context) ([]model.Product, error) { return nil, errStoreDown }
func (brokenSource) FindOrders(context.Context) ([]model.Order, error)     { return nil, errStoreDown }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

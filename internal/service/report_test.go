package service

import (
	"context"
	"testing"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, s *store.InMemory, email string, total string, createdAt time.Time) {
	t.Helper()
	_, err := s.CreateOrder(context.Background(), model.Order{
		ID:            uuid.New(),
		CustomerName:  email,
		CustomerEmail: email,
		Items:         []model.OrderItem{{ProductID: uuid.New(), ProductName: "Saree", Quantity: 1, Price: dec(total)}},
		TotalAmount:   dec(total),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusCompleted,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	})
	require.NoError(t, err)
}

func TestReports_Generate(t *testing.T) {
	// given
	ctx := context.Background()
	s := store.NewInMemoryStore()
	pub := &mockPublisher{}
	svc := NewReportService(s, s, pub, testLogger())
	seedOrder(t, s, "a@example.com", "250", time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	seedOrder(t, s, "b@example.com", "999", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	// when
	r, err := svc.Generate(ctx, "sales", "2025-03-01", "2025-03-31")

	// then
	require.NoError(t, err)
	assert.Equal(t, "Sales Report", r.Name)
	assert.Equal(t, model.ReportSales, r.Type)
	data, ok := r.Data.(model.SalesData)
	require.True(t, ok)
	assert.Equal(t, 1, data.TotalOrders)
	assert.True(t, dec("250").Equal(data.TotalRevenue))
	assert.True(t, dec("250").Equal(data.AverageOrderValue))
	assert.Equal(t, []string{messaging.ReportGeneratedSubject}, pub.subjects())

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, r.ID, all[0].ID)
}

func TestReports_Generate_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		kind        string
		start, end  string
		expectError error
	}{
		{name: "empty start", kind: "sales", start: "", end: "2025-03-31", expectError: adminerrors.ErrDateRangeRequired},
		{name: "empty end", kind: "sales", start: "2025-03-01", end: "", expectError: adminerrors.ErrDateRangeRequired},
		{name: "reversed range", kind: "revenue", start: "2025-04-01", end: "2025-03-01", expectError: adminerrors.ErrInvalidDateRange},
		{name: "unknown type", kind: "weather", start: "2025-03-01", end: "2025-03-31", expectError: adminerrors.ErrUnknownReportType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := store.NewInMemoryStore()
			pub := &mockPublisher{}
			svc := NewReportService(s, s, pub, testLogger())

			// when
			r, err := svc.Generate(ctx, tc.kind, tc.start, tc.end)

			// then
			assert.ErrorIs(t, err, tc.expectError)
			assert.Nil(t, r)
			reports, _ := s.FindReports(ctx)
			assert.Empty(t, reports)
			assert.Empty(t, pub.subjects())
		})
	}
}

func TestReports_Generate_SourceFailure(t *testing.T) {
	// given
	s := store.NewInMemoryStore()
	svc := NewReportService(s, brokenSource{}, &mockPublisher{}, testLogger())

	// when
	_, err := svc.Generate(context.Background(), "inventory", "2025-01-01", "2025-01-31")

	// then
	assert.ErrorIs(t, err, errStoreDown)
	reports, _ := s.FindReports(context.Background())
	assert.Empty(t, reports)
}

func TestReports_FindAndDelete(t *testing.T) {
	// given
	ctx := context.Background()
	s := store.NewInMemoryStore()
	svc := NewReportService(s, s, &mockPublisher{}, testLogger())
	r, err := svc.Generate(ctx, "customers", "2025-01-01", "2025-01-31")
	require.NoError(t, err)

	// when
	found, err := svc.FindByID(ctx, r.ID)

	// then
	require.NoError(t, err)
	assert.Equal(t, "Customers Report", found.Name)
	require.NoError(t, svc.DeleteByID(ctx, r.ID))
	_, err = svc.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, adminerrors.ErrReportNotFound)
	assert.ErrorIs(t, svc.DeleteByID(ctx, r.ID), adminerrors.ErrReportNotFound)
}

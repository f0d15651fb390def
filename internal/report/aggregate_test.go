package report

import (
	"testing"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

func march() model.DateRange {
	rng, err := ParseDateRange("2024-03-01", "2024-03-31")
	if err != nil {
		panic(err)
	}
	return rng
}

func order(email string, total string, created time.Time, items ...model.OrderItem) model.Order {
	return model.Order{
		ID:            uuid.New(),
		CustomerName:  "Customer " + email,
		CustomerEmail: email,
		TotalAmount:   dec(total),
		PaymentStatus: model.PaymentStatusCompleted,
		Status:        model.OrderStatusPending,
		Items:         items,
		CreatedAt:     created,
	}
}

func item(name string, qty int32, price string) model.OrderItem {
	return model.OrderItem{ProductID: uuid.New(), ProductName: name, Quantity: qty, Price: dec(price)}
}

func TestAggregate_SalesSingleOrder(t *testing.T) {
	// given
	orders := []model.Order{
		order("a@x.io", "250", day(10), item("Silk", 1, "250")),
		order("b@x.io", "999", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
	}

	// when
	data, err := Aggregate(model.ReportSales, march(), nil, orders)

	// then
	require.NoError(t, err)
	sales, ok := data.(model.SalesData)
	require.True(t, ok)
	assert.Equal(t, 1, sales.TotalOrders)
	assert.True(t, dec("250").Equal(sales.TotalRevenue))
	assert.True(t, dec("250").Equal(sales.AverageOrderValue))
	assert.Equal(t, []model.ProductQuantity{{Name: "Silk", Quantity: 1}}, sales.TopProducts)
}

func TestAggregate_SalesNoOrders(t *testing.T) {
	data, err := Aggregate(model.ReportSales, march(), nil, nil)

	require.NoError(t, err)
	sales := data.(model.SalesData)
	assert.Equal(t, 0, sales.TotalOrders)
	assert.True(t, sales.AverageOrderValue.IsZero())
	assert.NotNil(t, sales.TopProducts)
	assert.Empty(t, sales.TopProducts)
}

func TestSales_TopProductsStableAndCapped(t *testing.T) {
	// given
	orders := []model.Order{
		order("a@x.io", "10", day(1), item("A", 2, "1"), item("B", 3, "1"), item("C", 2, "1")),
		order("b@x.io", "10", day(2), item("D", 1, "1"), item("E", 1, "1"), item("F", 2, "1"), item("A", 1, "1")),
	}

	// when
	sales := Sales(orders)

	// then
	require.Len(t, sales.TopProducts, TopN)
	assert.Equal(t, []model.ProductQuantity{
		{Name: "A", Quantity: 3},
		{Name: "B", Quantity: 3},
		{Name: "C", Quantity: 2},
		{Name: "F", Quantity: 2},
		{Name: "D", Quantity: 1},
	}, sales.TopProducts)
}

func TestSales_EndDayIsInclusive(t *testing.T) {
	// given
	lastMinute := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	orders := []model.Order{order("a@x.io", "5", lastMinute)}

	// when
	data, err := Aggregate(model.ReportSales, march(), nil, orders)

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, data.(model.SalesData).TotalOrders)
}

func TestAggregate_Inventory(t *testing.T) {
	// given
	products := []model.Product{
		{Name: "A", Category: model.CategoryWedding, InStock: true},
		{Name: "B", Category: model.CategoryWedding, InStock: false},
		{Name: "C", Category: model.CategoryEthnic, InStock: true},
	}

	// when
	data, err := Aggregate(model.ReportInventory, model.DateRange{}, products, nil)

	// then
	require.NoError(t, err)
	inv := data.(model.InventoryData)
	assert.Equal(t, 3, inv.TotalProducts)
	assert.Equal(t, 2, inv.InStockProducts)
	assert.Equal(t, 1, inv.OutOfStockProducts)
	assert.Equal(t, map[string]int{"Wedding": 2, "Ethnic": 1}, inv.ProductsByCategory)
	assert.Equal(t, []string{"B"}, inv.LowStockAlert)
}

func TestAggregate_Customers(t *testing.T) {
	// given
	outside := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		order("same@x.io", "100", day(1)),
		order("other@x.io", "120", day(2)),
		order("same@x.io", "50", outside),
	}

	// when
	data, err := Aggregate(model.ReportCustomers, march(), nil, orders)

	// then
	require.NoError(t, err)
	c := data.(model.CustomersData)
	assert.Equal(t, 2, c.TotalCustomers)
	assert.Equal(t, 1, c.RepeatCustomers)
	require.Len(t, c.TopCustomers, 2)
	assert.Equal(t, "same@x.io", c.TopCustomers[0].Email)
	assert.True(t, dec("150").Equal(c.TopCustomers[0].TotalSpent))
	assert.Equal(t, "other@x.io", c.TopCustomers[1].Email)
}

func TestCustomers_SingleRepeatCustomer(t *testing.T) {
	orders := []model.Order{
		order("same@x.io", "80", day(1)),
		order("same@x.io", "20", day(2)),
	}

	c := Customers(orders)

	assert.Equal(t, 1, c.TotalCustomers)
	assert.Equal(t, 1, c.RepeatCustomers)
	require.Len(t, c.TopCustomers, 1)
	assert.True(t, dec("100").Equal(c.TopCustomers[0].TotalSpent))
}

func TestAggregate_Revenue(t *testing.T) {
	// given
	silk := model.Product{ID: uuid.New(), Name: "Silk", Category: model.CategoryWedding}
	cotton := model.Product{ID: uuid.New(), Name: "Cotton", Category: model.CategoryCasuals}
	gone := uuid.New()

	completed := order("a@x.io", "300", day(3),
		model.OrderItem{ProductID: silk.ID, ProductName: "Silk", Quantity: 2, Price: dec("100")},
		model.OrderItem{ProductID: gone, ProductName: "Gone", Quantity: 1, Price: dec("100")},
	)
	pending := order("b@x.io", "50", day(4),
		model.OrderItem{ProductID: cotton.ID, ProductName: "Cotton", Quantity: 1, Price: dec("50")},
	)
	pending.PaymentStatus = model.PaymentStatusPending
	refunded := order("c@x.io", "70", day(5),
		model.OrderItem{ProductID: silk.ID, ProductName: "Silk", Quantity: 1, Price: dec("70")},
	)
	refunded.PaymentStatus = model.PaymentStatusRefunded
	outOfRange := order("d@x.io", "1000", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		model.OrderItem{ProductID: silk.ID, ProductName: "Silk", Quantity: 10, Price: dec("100")},
	)

	// when
	data, err := Aggregate(model.ReportRevenue, march(), []model.Product{silk, cotton},
		[]model.Order{completed, pending, refunded, outOfRange})

	// then
	require.NoError(t, err)
	rev := data.(model.RevenueData)
	assert.True(t, dec("420").Equal(rev.TotalRevenue))
	assert.True(t, dec("300").Equal(rev.CompletedRevenue))
	assert.True(t, dec("50").Equal(rev.PendingRevenue))
	require.Len(t, rev.RevenueByCategory, 2)
	assert.True(t, dec("270").Equal(rev.RevenueByCategory["Wedding"]))
	assert.True(t, dec("50").Equal(rev.RevenueByCategory["Casuals"]))
}

func TestAggregate_UnknownType(t *testing.T) {
	_, err := Aggregate("weekly", march(), nil, nil)

	assert.ErrorIs(t, err, adminerrors.ErrUnknownReportType)
}

package store

import (
	"context"
	"testing"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The checks below run against every Store implementation.

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newProduct(name string, category model.Category, price string) model.Product {
	ts := now()
	return model.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Category:    category,
		Tags:        []string{"silk"},
		Stock:       3,
		InStock:     true,
		Image:       "/images/" + name + ".jpg",
		Description: "desc " + name,
		Rating:      decimal.RequireFromString("4.5"),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func newOrder(email string) model.Order {
	ts := now()
	o := model.Order{
		ID:              uuid.New(),
		CustomerName:    "Asha",
		CustomerEmail:   email,
		CustomerPhone:   "+91 99999 00000",
		ShippingAddress: model.Address{Line1: "1 MG Road", City: "Pune", State: "MH", PostalCode: "411001", Country: "IN"},
		PaymentMethod:   "card",
		PaymentStatus:   model.PaymentStatusCompleted,
		Items: []model.OrderItem{
			{ProductID: uuid.New(), ProductName: "Silk", Quantity: 2, Price: decimal.RequireFromString("125.50")},
		},
		Status:    model.OrderStatusPending,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	o.TotalAmount = o.ItemsTotal()
	return o
}

func checkProducts(t *testing.T, s Store) {
	ctx := context.Background()

	// given
	original := decimal.RequireFromString("19999")
	first := newProduct("royal", model.CategoryWedding, "15999.99")
	first.OriginalPrice = &original
	first.Categories = []model.Category{model.CategoryFestival}
	second := newProduct("daily", model.CategoryCasuals, "899")

	// when
	_, err := s.CreateProduct(ctx, first)
	require.NoError(t, err)
	_, err = s.CreateProduct(ctx, second)
	require.NoError(t, err)

	// then
	found, err := s.FindProductByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, found.Name)
	assert.True(t, first.Price.Equal(found.Price))
	require.NotNil(t, found.OriginalPrice)
	assert.True(t, original.Equal(*found.OriginalPrice))
	assert.Equal(t, []model.Category{model.CategoryFestival}, found.Categories)
	assert.Equal(t, []string{"silk"}, found.Tags)
	assert.True(t, first.CreatedAt.Equal(found.CreatedAt))

	list, err := s.FindProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "creation order is kept")
	assert.Equal(t, second.ID, list[1].ID)

	// update
	found.Tags = append(found.Tags, "red")
	found.Price = decimal.NewFromInt(100)
	found.UpdatedAt = now()
	updated, err := s.UpdateProduct(ctx, *found)
	require.NoError(t, err)
	assert.Equal(t, []string{"silk", "red"}, updated.Tags)
	assert.True(t, decimal.NewFromInt(100).Equal(updated.Price))
	assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))

	missing := newProduct("ghost", model.CategoryEthnic, "1")
	_, err = s.UpdateProduct(ctx, missing)
	assert.ErrorIs(t, err, adminerrors.ErrProductNotFound)

	// delete
	require.NoError(t, s.DeleteProduct(ctx, first.ID))
	_, err = s.FindProductByID(ctx, first.ID)
	assert.ErrorIs(t, err, adminerrors.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, first.ID), adminerrors.ErrProductNotFound)

	list, err = s.FindProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func checkOrders(t *testing.T, s Store) {
	ctx := context.Background()

	// given
	o := newOrder("asha@example.com")

	// when
	created, err := s.CreateOrder(ctx, o)

	// then
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("251").Equal(created.TotalAmount))

	found, err := s.FindOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ShippingAddress, found.ShippingAddress)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Silk", found.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("125.5").Equal(found.Items[0].Price))

	updated, err := s.UpdateOrderStatus(ctx, o.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(o.UpdatedAt))

	_, err = s.UpdateOrderStatus(ctx, uuid.New(), model.OrderStatusShipped)
	assert.ErrorIs(t, err, adminerrors.ErrOrderNotFound)
	_, err = s.FindOrderByID(ctx, uuid.New())
	assert.ErrorIs(t, err, adminerrors.ErrOrderNotFound)

	list, err := s.FindOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.OrderStatusShipped, list[0].Status)
}

func checkReports(t *testing.T, s Store) {
	ctx := context.Background()

	// given
	r := model.Report{
		ID:          uuid.New(),
		Name:        "Sales Report",
		Type:        model.ReportSales,
		DateRange:   model.DateRange{Start: now().Add(-time.Hour), End: now()},
		GeneratedAt: now(),
		Data: model.SalesData{
			TotalOrders:       1,
			TotalRevenue:      decimal.NewFromInt(250),
			AverageOrderValue: decimal.NewFromInt(250),
			TopProducts:       []model.ProductQuantity{{Name: "Silk", Quantity: 1}},
		},
	}

	// when
	_, err := s.CreateReport(ctx, r)
	require.NoError(t, err)

	// then
	found, err := s.FindReportByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Name, found.Name)
	sales, ok := found.Data.(model.SalesData)
	require.True(t, ok)
	assert.Equal(t, 1, sales.TotalOrders)
	assert.True(t, decimal.NewFromInt(250).Equal(sales.TotalRevenue))

	list, err := s.FindReports(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteReport(ctx, r.ID))
	assert.ErrorIs(t, s.DeleteReport(ctx, r.ID), adminerrors.ErrReportNotFound)
	_, err = s.FindReportByID(ctx, r.ID)
	assert.ErrorIs(t, err, adminerrors.ErrReportNotFound)
}

func checkSettings(t *testing.T, s Store) {
	ctx := context.Background()

	// given
	defaults, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteSettings(), *defaults)

	changed := *defaults
	changed.HeroAnimation = model.HeroAnimationSlide
	changed.HeroOverlayColor = "#112233"

	// when
	_, err = s.SaveSettings(ctx, changed)
	require.NoError(t, err)

	// then
	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.HeroAnimationSlide, got.HeroAnimation)
	assert.Equal(t, "#112233", got.HeroOverlayColor)
	assert.Len(t, got.CategoryImages, model.CategoryImageCount)
}

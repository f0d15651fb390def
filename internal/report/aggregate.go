// Package report computes the aggregated payload of admin reports from products and orders.
package report

import (
	"cmp"
	"fmt"
	"slices"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopN is the length of every ranking in a report.
const TopN = 5

// Aggregate computes the data for a report of the given type.
// Sales and revenue only look at orders created inside rng; inventory and customers ignore it.
func Aggregate(kind model.ReportType, rng model.DateRange, products []model.Product, orders []model.Order) (model.ReportData, error) {
	switch kind {
	case model.ReportSales:
		return Sales(filterOrders(orders, rng)), nil
	case model.ReportInventory:
		return Inventory(products), nil
	case model.ReportCustomers:
		return Customers(orders), nil
	case model.ReportRevenue:
		return Revenue(filterOrders(orders, rng), products), nil
	default:
		return nil, fmt.Errorf("%w: %q", adminerrors.ErrUnknownReportType, kind)
	}
}

func filterOrders(orders []model.Order, rng model.DateRange) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if rng.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	return out
}

func Sales(orders []model.Order) model.SalesData {
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.TotalAmount)
	}
	average := decimal.Zero
	if len(orders) > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	// products are keyed by line item name in first-seen order
	var ranking []model.ProductQuantity
	index := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			if i, ok := index[item.ProductName]; ok {
				ranking[i].Quantity += int64(item.Quantity)
				continue
			}
			index[item.ProductName] = len(ranking)
			ranking = append(ranking, model.ProductQuantity{Name: item.ProductName, Quantity: int64(item.Quantity)})
		}
	}
	slices.SortStableFunc(ranking, func(a, b model.ProductQuantity) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})

	return model.SalesData{
		TotalOrders:       len(orders),
		TotalRevenue:      revenue,
		AverageOrderValue: average,
		TopProducts:       top(ranking),
	}
}

func Inventory(products []model.Product) model.InventoryData {
	data := model.InventoryData{
		TotalProducts:      len(products),
		ProductsByCategory: make(map[string]int),
		LowStockAlert:      []string{},
	}
	for _, p := range products {
		data.ProductsByCategory[string(p.Category)]++
		if p.InStock {
			data.InStockProducts++
			continue
		}
		data.OutOfStockProducts++
		data.LowStockAlert = append(data.LowStockAlert, p.Name)
	}
	return data
}

func Customers(orders []model.Order) model.CustomersData {
	var spend []model.CustomerSpend
	index := make(map[string]int)
	orderCount := make(map[string]int)
	for _, o := range orders {
		orderCount[o.CustomerEmail]++
		if i, ok := index[o.CustomerEmail]; ok {
			spend[i].TotalSpent = spend[i].TotalSpent.Add(o.TotalAmount)
			continue
		}
		index[o.CustomerEmail] = len(spend)
		spend = append(spend, model.CustomerSpend{
			Name:       o.CustomerName,
			Email:      o.CustomerEmail,
			TotalSpent: o.TotalAmount,
		})
	}

	repeat := 0
	for _, n := range orderCount {
		if n > 1 {
			repeat++
		}
	}
	slices.SortStableFunc(spend, func(a, b model.CustomerSpend) int {
		return b.TotalSpent.Cmp(a.TotalSpent)
	})

	return model.CustomersData{
		TotalCustomers:  len(index),
		RepeatCustomers: repeat,
		TopCustomers:    top(spend),
	}
}

// Revenue sums order totals by payment status and line item revenue by the category of the
// referenced product. Items whose product no longer exists are left out of the category split.
func Revenue(orders []model.Order, products []model.Product) model.RevenueData {
	categories := make(map[uuid.UUID]model.Category, len(products))
	for _, p := range products {
		categories[p.ID] = p.Category
	}

	data := model.RevenueData{
		TotalRevenue:      decimal.Zero,
		CompletedRevenue:  decimal.Zero,
		PendingRevenue:    decimal.Zero,
		RevenueByCategory: make(map[string]decimal.Decimal),
	}
	for _, o := range orders {
		data.TotalRevenue = data.TotalRevenue.Add(o.TotalAmount)
		switch o.PaymentStatus {
		case model.PaymentStatusCompleted:
			data.CompletedRevenue = data.CompletedRevenue.Add(o.TotalAmount)
		case model.PaymentStatusPending:
			data.PendingRevenue = data.PendingRevenue.Add(o.TotalAmount)
		}
		for _, item := range o.Items {
			category, ok := categories[item.ProductID]
			if !ok {
				continue
			}
			key := string(category)
			data.RevenueByCategory[key] = data.RevenueByCategory[key].Add(item.LineTotal())
		}
	}
	return data
}

func top[T any](ranking []T) []T {
	if len(ranking) > TopN {
		ranking = ranking[:TopN]
	}
	if ranking == nil {
		return []T{}
	}
	return ranking
}

package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportSales     ReportType = "sales"
	ReportInventory ReportType = "inventory"
	ReportCustomers ReportType = "customers"
	ReportRevenue   ReportType = "revenue"
)

var ReportTypes = []ReportType{ReportSales, ReportInventory, ReportCustomers, ReportRevenue}

func ParseReportType(s string) (ReportType, error) {
	for _, t := range ReportTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown report type %q", s)
}

// Title returns the type with its first letter upper-cased, e.g. "Sales".
func (t ReportType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// DateRange is an inclusive time interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ReportData is the aggregated payload of a report. The concrete type is fixed by the report type.
type ReportData interface {
	ReportType() ReportType
	isReportData()
}

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type SalesData struct {
	TotalOrders       int               `json:"totalOrders"`
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal   `json:"averageOrderValue"`
	TopProducts       []ProductQuantity `json:"topProducts"`
}

type InventoryData struct {
	TotalProducts      int            `json:"totalProducts"`
	InStockProducts    int            `json:"inStockProducts"`
	OutOfStockProducts int            `json:"outOfStockProducts"`
	ProductsByCategory map[string]int `json:"productsByCategory"`
	LowStockAlert      []string       `json:"lowStockAlert"`
}

type CustomerSpend struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type CustomersData struct {
	TotalCustomers  int             `json:"totalCustomers"`
	RepeatCustomers int             `json:"repeatCustomers"`
	TopCustomers    []CustomerSpend `json:"topCustomers"`
}

type RevenueData struct {
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	CompletedRevenue  decimal.Decimal            `json:"completedRevenue"`
	PendingRevenue    decimal.Decimal            `json:"pendingRevenue"`
	RevenueByCategory map[string]decimal.Decimal `json:"revenueByCategory"`
}

func (SalesData) ReportType() ReportType     { return ReportSales }
func (InventoryData) ReportType() ReportType { return ReportInventory }
func (CustomersData) ReportType() ReportType { return ReportCustomers }
func (RevenueData) ReportType() ReportType   { return ReportRevenue }

func (SalesData) isReportData()     {}
func (InventoryData) isReportData() {}
func (CustomersData) isReportData() {}
func (RevenueData) isReportData()   {}

// DecodeReportData unmarshals raw into the concrete data type belonging to t.
func DecodeReportData(t ReportType, raw []byte) (ReportData, error) {
	var (
		data ReportData
		err  error
	)
	switch t {
	case ReportSales:
		var d SalesData
		err = json.Unmarshal(raw, &d)
		data = d
	case ReportInventory:
		var d InventoryData
		err = json.Unmarshal(raw, &d)
		data = d
	case ReportCustomers:
		var d CustomersData
		err = json.Unmarshal(raw, &d)
		data = d
	case ReportRevenue:
		var d RevenueData
		err = json.Unmarshal(raw, &d)
		data = d
	default:
		return nil, fmt.Errorf("unknown report type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s report data: %w", t, err)
	}
	return data, nil
}

type Report struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Type        ReportType `json:"type"`
	DateRange   DateRange  `json:"dateRange"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Data        ReportData `json:"data"`
}

// UnmarshalJSON decodes Data according to Type.
func (r *Report) UnmarshalJSON(b []byte) error {
	type plain Report
	var aux struct {
		plain
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Report(aux.plain)
	if len(aux.Data) == 0 || string(aux.Data) == "null" {
		r.Data = nil
		return nil
	}
	data, err := DecodeReportData(aux.Type, aux.Data)
	if err != nil {
		return err
	}
	r.Data = data
	return nil
}

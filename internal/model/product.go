package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Category      Category         `json:"category"`
	Categories    []Category       `json:"categories,omitempty"`
	Tags          []string         `json:"tags"`
	Stock         int32            `json:"stock"`
	InStock       bool             `json:"inStock"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	Weight        string           `json:"weight,omitempty"`
	Rating        decimal.Decimal  `json:"rating"`
	Reviews       int32            `json:"reviews"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Clone returns a copy of p that shares no slices or pointers with it.
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		c.OriginalPrice = &op
	}
	if p.Categories != nil {
		c.Categories = append([]Category(nil), p.Categories...)
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

// StockFilter narrows a product listing by availability.
type StockFilter string

const (
	StockAll        StockFilter = "all"
	StockInStock    StockFilter = "instock"
	StockOutOfStock StockFilter = "outofstock"
)

// ProductFilter selects products for listing and export. Zero values match everything.
type ProductFilter struct {
	Query      string
	Categories []Category
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Stock      StockFilter
	Offset     int32
	Limit      int32
}

type AdjustmentKind string

const (
	AdjustmentPercentage AdjustmentKind = "percentage"
	AdjustmentFixed      AdjustmentKind = "fixed"
)

// BulkEditDirective describes the changes applied to every selected product of a bulk edit.
// A nil Category, a zero PriceAdjustment and empty AddTags each leave that part untouched.
type BulkEditDirective struct {
	Category        *Category
	PriceAdjustment decimal.Decimal
	AdjustmentKind  AdjustmentKind
	AddTags         []string
}

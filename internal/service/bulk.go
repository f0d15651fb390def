package service

import (
	"fmt"
	"strings"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyDirective returns p with d applied and whether any field changed.
//
// A category override replaces the category. A non-zero adjustment sets the price to
// price*(1+amount/100) for percentages or price+amount for fixed amounts, rounded to cents
// and never clamped, so the result may be negative. Tag additions are appended as given,
// duplicates included.
func ApplyDirective(p model.Product, d model.BulkEditDirective) (model.Product, bool) {
	out := p.Clone()
	changed := false

	if d.Category != nil && out.Category != *d.Category {
		out.Category = *d.Category
		changed = true
	}

	if !d.PriceAdjustment.IsZero() {
		var price decimal.Decimal
		if d.AdjustmentKind == model.AdjustmentFixed {
			price = out.Price.Add(d.PriceAdjustment)
		} else {
			price = out.Price.Mul(decimal.NewFromInt(1).Add(d.PriceAdjustment.Div(hundred)))
		}
		price = price.Round(2)
		if !price.Equal(out.Price) {
			out.Price = price
			changed = true
		}
	}

	if len(d.AddTags) > 0 {
		out.Tags = append(out.Tags, d.AddTags...)
		changed = true
	}

	return out, changed
}

// ParseTagList splits a comma separated tag input, trimming items and dropping empty ones.
func ParseTagList(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func normalizeDirective(d model.BulkEditDirective) (model.BulkEditDirective, error) {
	if d.Category != nil {
		c, err := model.ParseCategory(string(*d.Category))
		if err != nil {
			return d, fmt.Errorf("%w: %v", adminerrors.ErrInvalidCategory, err)
		}
		d.Category = &c
	}
	switch d.AdjustmentKind {
	case "":
		d.AdjustmentKind = model.AdjustmentPercentage
	case model.AdjustmentPercentage, model.AdjustmentFixed:
	default:
		return d, validationError(fmt.Errorf("unknown adjustment type %q", d.AdjustmentKind))
	}
	tags := make([]string, 0, len(d.AddTags))
	for _, t := range d.AddTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	d.AddTags = tags
	return d, nil
}

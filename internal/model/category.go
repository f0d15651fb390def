// Package model holds the admin domain types shared by the store, service and transport layers.
package model

import (
	"fmt"
	"strings"
)

// Category is one of the fixed storefront collections.
type Category string

const (
	CategoryWedding     Category = "Wedding"
	CategoryEthnic      Category = "Ethnic"
	CategoryCasuals     Category = "Casuals"
	CategoryFestival    Category = "Festival"
	CategoryNewArrivals Category = "New Arrivals"
	CategoryCelebrity   Category = "Celebrity"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryWedding,
	CategoryEthnic,
	CategoryCasuals,
	CategoryFestival,
	CategoryNewArrivals,
	CategoryCelebrity,
}

// ParseCategory matches s against the known categories ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

package model

import "github.com/shopspring/decimal"

// Prices and report totals go over the wire as JSON numbers. Quoted input is still accepted.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

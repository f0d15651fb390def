// Package csvio converts between product CSV/XLSX files and product records.
//
// Two import layouts are supported. Header mode reads column names from the first line
// and understands RFC 4180 quoting, so files written by WriteCSV import cleanly.
// Fixed mode expects the legacy seven-column layout
// (name, price, originalPrice, image, weight, category, description), skips the first
// line and splits every other line on commas without any quoting support.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeHeader Mode = "header"
	ModeFixed  Mode = "fixed"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeHeader:
		return ModeHeader, nil
	case ModeFixed:
		return ModeFixed, nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// Known column names. Header cells are matched after trimming and lower-casing.
const (
	FieldName          = "name"
	FieldCategory      = "category"
	FieldPrice         = "price"
	FieldStock         = "stock"
	FieldOriginalPrice = "originalprice"
	FieldImage         = "image"
	FieldWeight        = "weight"
	FieldDescription   = "description"
	FieldTags          = "tags"
	FieldCategories    = "categories"
	FieldRating        = "rating"
	FieldReviews       = "reviews"
	FieldInStock       = "instock"
)

var fixedColumns = []string{
	FieldName,
	FieldPrice,
	FieldOriginalPrice,
	FieldImage,
	FieldWeight,
	FieldCategory,
	FieldDescription,
}

var fixedRating = decimal.RequireFromString("4.5")

// SampleFixedCSV is a two product example of the fixed layout, header line included.
const SampleFixedCSV = "name,price,originalPrice,image,weight,category,description\n" +
	"Royal Silk Saree,15999,19999,/images/saree1.jpg,Pure Silk,Wedding,Beautiful silk saree\n" +
	"Designer Saree,12999,16999,/images/saree2.jpg,Georgette,Ethnic,Elegant designer saree"

// ProductRecord is one data row of an import file.
type ProductRecord struct {
	Line          int
	Name          string
	Category      string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Stock         int32
	InStock       *bool
	Image         string
	Weight        string
	Description   string
	Tags          []string
	Categories    []string
	Rating        decimal.Decimal
	Reviews       int32

	present map[string]bool
}

// Has reports whether the row carried a cell for field.
func (r ProductRecord) Has(field string) bool {
	return r.present[field]
}

// Accepted reports whether the record qualifies for creation: name and category must be non-empty.
func (r ProductRecord) Accepted() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Category) != ""
}

type ImportResult struct {
	// Records holds every data row in input order, accepted or not.
	Records  []ProductRecord
	Accepted int
}

// AcceptedRecords returns the records that passed Accepted, in input order.
func (r ImportResult) AcceptedRecords() []ProductRecord {
	out := make([]ProductRecord, 0, r.Accepted)
	for _, rec := range r.Records {
		if rec.Accepted() {
			out = append(out, rec)
		}
	}
	return out
}

// Parse dispatches to ParseHeader or ParseFixed.
func Parse(mode Mode, text string) (ImportResult, error) {
	switch mode {
	case ModeHeader:
		return ParseHeader(text)
	case ModeFixed:
		return ParseFixed(text)
	default:
		return ImportResult{}, fmt.Errorf("unknown import mode %q", mode)
	}
}

// ParseHeader parses text whose first record names the columns.
// Numeric cells that fail to parse become zero; tags and categories split on ';'.
func ParseHeader(text string) (ImportResult, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(trimBOM(text))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportResult{}, adminerrors.ErrMalformedCSV
		}
		return ImportResult{}, fmt.Errorf("%w: %v", adminerrors.ErrMalformedCSV, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var result ImportResult
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: %v", adminerrors.ErrMalformedCSV, err)
		}
		line, _ := reader.FieldPos(0)
		rec := ProductRecord{Line: line, present: make(map[string]bool, len(header))}
		for i, column := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
				rec.present[column] = true
			}
			rec.set(column, value)
		}
		result.add(rec)
	}
	if len(result.Records) == 0 {
		return ImportResult{}, adminerrors.ErrMalformedCSV
	}
	return result, nil
}

// ParseFixed parses the legacy positional layout. Missing trailing cells are reported as absent by Has.
func ParseFixed(text string) (ImportResult, error) {
	lines := splitLines(trimBOM(text))
	if len(lines) < 2 {
		return ImportResult{}, adminerrors.ErrMalformedCSV
	}

	var result ImportResult
	for i, line := range lines[1:] {
		cells := strings.Split(line, ",")
		inStock := true
		rec := ProductRecord{
			Line:    i + 2,
			Rating:  fixedRating,
			InStock: &inStock,
			present: make(map[string]bool, len(fixedColumns)),
		}
		for j, column := range fixedColumns {
			if j >= len(cells) {
				break
			}
			rec.present[column] = true
			rec.set(column, strings.TrimSpace(cells[j]))
		}
		result.add(rec)
	}
	return result, nil
}

// trimBOM drops the UTF-8 byte order mark spreadsheet applications put in front of CSV exports.
func trimBOM(text string) string {
	return strings.TrimPrefix(text, "\ufeff")
}

func (r *ImportResult) add(rec ProductRecord) {
	r.Records = append(r.Records, rec)
	if rec.Accepted() {
		r.Accepted++
	}
}

func (r *ProductRecord) set(column, value string) {
	switch column {
	case FieldName:
		r.Name = value
	case FieldCategory:
		r.Category = value
	case FieldPrice:
		r.Price = parseNumber(value)
	case FieldStock:
		r.Stock = toInt32(parseNumber(value))
	case FieldOriginalPrice:
		if value != "" {
			op := parseNumber(value)
			r.OriginalPrice = &op
		}
	case FieldImage:
		r.Image = value
	case FieldWeight:
		r.Weight = value
	case FieldDescription:
		r.Description = value
	case FieldTags:
		r.Tags = splitList(value)
	case FieldCategories:
		r.Categories = splitList(value)
	case FieldRating:
		r.Rating = parseNumber(value)
	case FieldReviews:
		r.Reviews = toInt32(parseNumber(value))
	case FieldInStock:
		if b, err := strconv.ParseBool(value); err == nil {
			r.InStock = &b
		}
	}
}

// splitLines trims text and splits it into lines, dropping carriage returns.
func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// splitList splits a ';' separated cell, trimming items and dropping empty ones.
func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseNumber(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toInt32(d decimal.Decimal) int32 {
	n := d.IntPart()
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int32(n)
}

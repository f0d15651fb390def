package csvio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"name", "category", "price", "stock", "image", "description", "tags"}

func exportRow(p model.Product) []string {
	return []string{
		p.Name,
		string(p.Category),
		p.Price.String(),
		strconv.FormatInt(int64(p.Stock), 10),
		p.Image,
		p.Description,
		strings.Join(p.Tags, ";"),
	}
}

// WriteCSV writes products with an unquoted header row and every data cell wrapped in double quotes.
// Embedded quotes are doubled. Rows are separated by '\n' with no trailing newline.
func WriteCSV(w io.Writer, products []model.Product) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(exportHeader, ",")); err != nil {
		return err
	}
	for _, p := range products {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for i, cell := range exportRow(p) {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(cell)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

const xlsxSheet = "Products"

// WriteXLSX writes the same columns as WriteCSV into a single-sheet workbook with a bold header.
func WriteXLSX(w io.Writer, products []model.Product) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, p := range products {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			p.Name,
			string(p.Category),
			p.Price.InexactFloat64(),
			p.Stock,
			p.Image,
			p.Description,
			strings.Join(p.Tags, ";"),
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

package csvio

import (
	"bytes"
	"testing"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleProducts() []model.Product {
	return []model.Product{
		{
			Name:        "Royal Silk",
			Category:    model.CategoryWedding,
			Price:       decimal.RequireFromString("15999.50"),
			Stock:       4,
			Image:       "/images/saree1.jpg",
			Description: `Silk, with "zari" work`,
			Tags:        []string{"silk", "bridal"},
		},
		{
			Name:     "Cotton Daily",
			Category: model.CategoryCasuals,
			Price:    decimal.NewFromInt(899),
			Stock:    0,
		},
	}
}

func TestWriteCSV_Format(t *testing.T) {
	// given
	var buf bytes.Buffer

	// when
	err := WriteCSV(&buf, sampleProducts())

	// then
	require.NoError(t, err)
	expected := "name,category,price,stock,image,description,tags\n" +
		`"Royal Silk","Wedding","15999.5","4","/images/saree1.jpg","Silk, with ""zari"" work","silk;bridal"` + "\n" +
		`"Cotton Daily","Casuals","899","0","","",""`
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "name,category,price,stock,image,description,tags", buf.String())
}

func TestWriteCSV_RoundTripsThroughHeaderImport(t *testing.T) {
	// given
	products := sampleProducts()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, products))

	// when
	res, err := ParseHeader(buf.String())

	// then
	require.NoError(t, err)
	require.Len(t, res.Records, len(products))
	assert.Equal(t, len(products), res.Accepted)
	for i, p := range products {
		rec := res.Records[i]
		assert.Equal(t, p.Name, rec.Name)
		assert.Equal(t, string(p.Category), rec.Category)
		assert.True(t, p.Price.Equal(rec.Price), "price %s != %s", p.Price, rec.Price)
		assert.Equal(t, p.Stock, rec.Stock)
		assert.Equal(t, p.Description, rec.Description)
		if len(p.Tags) == 0 {
			assert.Empty(t, rec.Tags)
		} else {
			assert.Equal(t, p.Tags, rec.Tags)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	// given
	var buf bytes.Buffer

	// when
	err := WriteXLSX(&buf, sampleProducts())

	// then
	require.NoError(t, err)
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "Royal Silk", rows[1][0])
	assert.Equal(t, "Wedding", rows[1][1])
	assert.Equal(t, "silk;bridal", rows[1][6])
	assert.Equal(t, "Cotton Daily", rows[2][0])
}

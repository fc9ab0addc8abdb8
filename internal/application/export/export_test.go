package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleInput() Input {
	valid := time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)
	return Input{
		Business:   Party{Name: "Acme Plumbing", Address: "1 Main Rd", Phone: "021 555 0100", Email: "hi@acme.test", VATNo: "4123456789"},
		Client:     Party{Name: "Jane Client", Email: "jane@example.com"},
		Reference:  "QT-000007",
		Date:       time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		ValidUntil: &valid,
		Items: []pricing.LineItem{
			{Name: "Geyser", Description: "150L", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("899.995")},
			{Name: "Labour", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(350)},
		},
		Notes:    "Valid for 30 days",
		TaxRate:  decimal.NewFromInt(15),
		Currency: "ZAR",
	}
}

func TestBuild_SectionsAndTotals(t *testing.T) {
	l, err := Build(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing", l.Header)
	assert.Equal(t, []Field{
		{Label: "Reference", Value: "QT-000007"},
		{Label: "Date", Value: "2024-03-15"},
		{Label: "Valid Until", Value: "2024-04-14"},
	}, l.Meta)
	assert.Equal(t, []string{"Jane Client", "jane@example.com"}, l.Client)

	require.Len(t, l.Rows, 2)
	assert.Equal(t, "Geyser", l.Rows[0].Item)
	assert.Equal(t, "900.00", l.Rows[0].UnitPrice)
	assert.Equal(t, "1050.00", l.Rows[1].LineTotal)

	// subtotal 1949.995 rounds only at presentation
	assert.Equal(t, []Field{
		{Label: "Subtotal", Value: "ZAR 1950.00"},
		{Label: "VAT (15%)", Value: "ZAR 292.50"},
		{Label: "Total", Value: "ZAR 2242.49"},
	}, l.Summary)

	assert.Equal(t, "Valid for 30 days", l.Notes)
	assert.Equal(t, "1 Main Rd | 021 555 0100 | hi@acme.test | VAT No: 4123456789", l.Footer)
}

func TestBuild_RowsMatchClampedTotals(t *testing.T) {
	in := sampleInput()
	in.Items = []pricing.LineItem{
		{Name: "Refund", Quantity: decimal.NewFromInt(-2), UnitPrice: decimal.NewFromInt(100)},
		{Name: "Callout", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-50)},
		{Name: "Pipe", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(40)},
	}

	l, err := Build(in)
	require.NoError(t, err)

	require.Len(t, l.Rows, 3)
	assert.Equal(t, "0", l.Rows[0].Quantity)
	assert.Equal(t, "0.00", l.Rows[0].LineTotal)
	assert.Equal(t, "0.00", l.Rows[1].UnitPrice)
	assert.Equal(t, "0.00", l.Rows[1].LineTotal)
	assert.Equal(t, "80.00", l.Rows[2].LineTotal)
	assert.Equal(t, Field{Label: "Subtotal", Value: "ZAR 80.00"}, l.Summary[0])
	assert.Equal(t, decimal.NewFromInt(-2), in.Items[0].Quantity)
}

func TestBuild_NoItems(t *testing.T) {
	in := sampleInput()
	in.Items = nil
	_, err := Build(in)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestBuild_CustomTaxRateLabel(t *testing.T) {
	in := sampleInput()
	in.TaxRate = decimal.RequireFromString("7.5")
	in.TaxLabel = "Tax"
	in.Currency = ""
	l, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, "Tax (7.5%)", l.Summary[1].Label)
	assert.Equal(t, "146.25", l.Summary[1].Value)
}

func TestFilename(t *testing.T) {
	d := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "Quote-2024-03-15.pdf", Filename(d, "pdf"))
	assert.Equal(t, Filename(d, "xlsx"), Filename(d.Add(-12*time.Hour), "xlsx"))
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"": "pdf", "PDF": "pdf", "xlsx": "xlsx", "txt": "txt"} {
		r, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.Equal(t, ext, r.Extension())
	}
	_, err := ForFormat("docx")
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	l, err := Build(sampleInput())
	require.NoError(t, err)

	out, err := TextRenderer{Width: 80}.Render(l)
	require.NoError(t, err)
	s := string(out)

	header := strings.Index(s, "Acme Plumbing")
	client := strings.Index(s, "Jane Client")
	item := strings.Index(s, "Geyser")
	total := strings.Index(s, "ZAR 2242.49")
	notes := strings.Index(s, "Valid for 30 days")
	footer := strings.Index(s, "VAT No: 4123456789")
	for _, i := range []int{header, client, item, total, notes, footer} {
		assert.GreaterOrEqual(t, i, 0)
	}
	assert.True(t, header < client && client < item && item < total && total < notes && notes < footer)

	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80, line)
	}
}

func TestXLSXRenderer(t *testing.T) {
	l, err := Build(sampleInput())
	require.NoError(t, err)

	out, err := XLSXRenderer{}.Render(l)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{quoteSheet}, f.GetSheetList())
	rows, err := f.GetRows(quoteSheet)
	require.NoError(t, err)

	var flat []string
	for _, r := range rows {
		flat = append(flat, strings.Join(r, "|"))
	}
	joined := strings.Join(flat, "\n")
	assert.Contains(t, joined, "Acme Plumbing")
	assert.Contains(t, joined, "Item|Description|Qty|Unit Price|Total")
	assert.Contains(t, joined, "Geyser|150L|1|900.00|900.00")
	assert.Contains(t, joined, "Total|ZAR 2242.49")
}

func TestPDFRenderer(t *testing.T) {
	l, err := Build(sampleInput())
	require.NoError(t, err)

	out, err := PDFRenderer{}.Render(l)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

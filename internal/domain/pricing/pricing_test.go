package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(qty, price string) LineItem {
	return LineItem{
		Name:      "item",
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestComputeQuoteScenario(t *testing.T) {
	totals := Compute([]LineItem{item("2", "100.00"), item("1", "50.50")}, decimal.NewFromInt(15))

	assert.Equal(t, "250.50", Format(totals.Subtotal))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("37.575")))
	assert.Equal(t, "37.58", Format(totals.TaxAmount))
	assert.Equal(t, "288.08", Format(totals.Total))
}

func TestComputeEmpty(t *testing.T) {
	totals := Compute(nil, DefaultTaxRate)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeIgnoresNegativeInput(t *testing.T) {
	totals := Compute([]LineItem{item("-3", "10"), item("2", "-5"), item("1", "4")}, decimal.NewFromInt(-10))

	assert.Equal(t, "4.00", Format(totals.Subtotal))
	assert.True(t, totals.TaxRate.IsZero())
	assert.Equal(t, "4.00", Format(totals.Total))
}

func TestComputeTotalsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rate := decimal.NewFromInt(15)
	cent := decimal.RequireFromString("0.01")

	for run := 0; run < 200; run++ {
		var items []LineItem
		expected := decimal.Zero
		n := rng.Intn(25)
		for i := 0; i < n; i++ {
			qty := decimal.NewFromInt(int64(rng.Intn(50)))
			price := decimal.New(int64(rng.Intn(1000000)), -2)
			items = append(items, LineItem{Quantity: qty, UnitPrice: price})
			expected = expected.Add(qty.Mul(price))
		}

		totals := Compute(items, rate)
		require.True(t, totals.Subtotal.Equal(expected))

		diff := totals.Total.Sub(totals.Subtotal).Sub(expected.Mul(rate).Div(hundred)).Abs()
		require.True(t, diff.LessThanOrEqual(cent), "run %d diff %s", run, diff)
		require.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)))
	}
}

func TestImpliedTaxRate(t *testing.T) {
	totals := Compute([]LineItem{item("3", "19.99")}, decimal.NewFromInt(15))
	assert.True(t, ImpliedTaxRate(totals.Subtotal, totals.TaxAmount).Equal(decimal.NewFromInt(15)))

	assert.True(t, ImpliedTaxRate(decimal.Zero, decimal.Zero).Equal(DefaultTaxRate))
	assert.True(t, ImpliedTaxRate(decimal.NewFromInt(200), decimal.Zero).IsZero())
}

func TestNormalizePreservesOrderAndAssignsIDs(t *testing.T) {
	in := []LineItem{
		{ID: "keep", Name: " first ", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)},
		{Name: "second", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(3)},
		{Name: "third"},
	}

	out := Normalize(in)

	require.Len(t, out, 3)
	assert.Equal(t, "keep", out[0].ID)
	assert.Equal(t, "first", out[0].Name)
	assert.Equal(t, "second", out[1].Name)
	assert.NotEmpty(t, out[1].ID)
	assert.True(t, out[1].Quantity.IsZero())
	assert.Equal(t, "third", out[2].Name)
	assert.NotEqual(t, out[1].ID, out[2].ID)
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{float64(2), "2"},
		{"50.50", "50.5"},
		{" 7 ", "7"},
		{"abc", "0"},
		{"", "0"},
		{nil, "0"},
		{float64(-4), "0"},
		{"-1.5", "0"},
		{int64(3), "3"},
		{true, "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Coerce(tc.in).String(), "input %#v", tc.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(decimal.Zero))
	assert.Equal(t, "1234.50", Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.01", Format(decimal.RequireFromString("0.005")))
}

package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shockerli/cvt"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the South African VAT percentage applied when a business
// or quote does not set its own rate.
var DefaultTaxRate = decimal.NewFromInt(15)

var hundred = decimal.NewFromInt(100)

// LineItem is one priced entry on a quote or sale. Items are stored as an
// ordered JSON array on the parent record; the slice order is the display order.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Total returns quantity * unit price at full precision.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Totals holds the derived amounts for a list of line items.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Compute sums the line totals and derives tax and total from the subtotal.
// Nothing is rounded here; use Format at presentation time.
func Compute(items []LineItem, taxRate decimal.Decimal) Totals {
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(nonNegative(item.Quantity).Mul(nonNegative(item.UnitPrice)))
	}

	taxAmount := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}

// ImpliedTaxRate recovers the percentage used to produce vat from subtotal.
// A zero subtotal carries no information, so the default rate is returned.
func ImpliedTaxRate(subtotal, vat decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return DefaultTaxRate
	}
	return vat.Mul(hundred).Div(subtotal).Round(4)
}

// Normalize coerces negative amounts to zero, trims names and assigns ids to
// items that do not have one. The order of items is preserved.
func Normalize(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.Quantity = nonNegative(item.Quantity)
		item.UnitPrice = nonNegative(item.UnitPrice)
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		out[i] = item
	}
	return out
}

// Coerce converts loosely typed user input (numbers, numeric strings, nil)
// to a non-negative decimal. Anything unparsable becomes zero.
func Coerce(v any) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	s, err := cvt.StringE(v)
	if err != nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(d)
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Package export turns a quote into downloadable documents. Build produces a
// format-neutral Layout and each Renderer draws that layout in one format.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// ErrNoItems is returned when a quote without line items is exported
var ErrNoItems = errors.New("quote has no items")

// Party identifies the business or the client on a document
type Party struct {
	Name    string
	Address string
	Phone   string
	Email   string
	VATNo   string
}

// Input is everything a quote export needs
type Input struct {
	Business   Party
	Client     Party
	Reference  string
	Date       time.Time
	ValidUntil *time.Time
	Items      []pricing.LineItem
	Notes      string
	TaxRate    decimal.Decimal
	TaxLabel   string
	Currency   string
}

// Field is a label/value pair
type Field struct {
	Label string
	Value string
}

// Row is one formatted line of the item table
type Row struct {
	Item        string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// Layout is a quote laid out in its fixed section order: header, meta,
// client, items, summary, notes and footer.
type Layout struct {
	Header  string
	Title   string
	Meta    []Field
	Client  []string
	Columns []string
	Rows    []Row
	Summary []Field
	Notes   string
	Footer  string
}

// Columns of the item table
var Columns = []string{"Item", "Description", "Qty", "Unit Price", "Total"}

// Build lays out a quote. Amounts are computed at full precision and only
// rounded to two decimals here.
func Build(in Input) (*Layout, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	items := pricing.Normalize(in.Items)
	totals := pricing.Compute(items, in.TaxRate)

	l := &Layout{
		Header:  in.Business.Name,
		Title:   "QUOTE",
		Columns: Columns,
		Notes:   strings.TrimSpace(in.Notes),
		Footer:  contactLine(in.Business),
	}

	l.Meta = append(l.Meta,
		Field{Label: "Reference", Value: in.Reference},
		Field{Label: "Date", Value: in.Date.Format("2006-01-02")},
	)
	if in.ValidUntil != nil {
		l.Meta = append(l.Meta, Field{Label: "Valid Until", Value: in.ValidUntil.Format("2006-01-02")})
	}

	l.Client = append(l.Client, in.Client.Name)
	if in.Client.Email != "" {
		l.Client = append(l.Client, in.Client.Email)
	}
	if in.Client.Address != "" {
		l.Client = append(l.Client, in.Client.Address)
	}

	for _, item := range items {
		l.Rows = append(l.Rows, Row{
			Item:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   pricing.Format(item.UnitPrice),
			LineTotal:   pricing.Format(item.Total()),
		})
	}

	taxLabel := in.TaxLabel
	if taxLabel == "" {
		taxLabel = "VAT"
	}
	l.Summary = []Field{
		{Label: "Subtotal", Value: money(in.Currency, totals.Subtotal)},
		{Label: fmt.Sprintf("%s (%s%%)", taxLabel, totals.TaxRate.Round(2).String()), Value: money(in.Currency, totals.TaxAmount)},
		{Label: "Total", Value: money(in.Currency, totals.Total)},
	}

	return l, nil
}

// Filename names an export after the quote's creation date, so exports made
// for the same day share a name.
func Filename(date time.Time, ext string) string {
	return fmt.Sprintf("Quote-%s.%s", date.Format("2006-01-02"), ext)
}

func money(currency string, d decimal.Decimal) string {
	if currency == "" {
		return pricing.Format(d)
	}
	return currency + " " + pricing.Format(d)
}

func contactLine(p Party) string {
	var parts []string
	for _, s := range []string{p.Address, p.Phone, p.Email} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if p.VATNo != "" {
		parts = append(parts, "VAT No: "+p.VATNo)
	}
	return strings.Join(parts, " | ")
}

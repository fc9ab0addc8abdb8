package export

import (
	"github.com/sangkips/bizhub-api/pkg/textdoc"
)

// TextRenderer renders a quote as fixed-width plain text
type TextRenderer struct {
	Width int
}

func (TextRenderer) Extension() string   { return "txt" }
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r TextRenderer) Render(l *Layout) ([]byte, error) {
	d := textdoc.NewDocument(r.Width)

	d.Center(l.Header).Center(l.Title).Separator('=')
	for _, m := range l.Meta {
		d.KeyValue(m.Label+":", m.Value)
	}
	d.LineFeed()

	d.Text("Bill To:")
	for _, s := range l.Client {
		d.Text("  " + s)
	}
	d.LineFeed()

	widths := tableWidths(d.Width())
	aligns := []int{textdoc.AlignLeft, textdoc.AlignLeft, textdoc.AlignRight, textdoc.AlignRight, textdoc.AlignRight}
	d.Row(widths, aligns, l.Columns...)
	d.Separator('-')
	for _, row := range l.Rows {
		d.Row(widths, aligns, row.Item, row.Description, row.Quantity, row.UnitPrice, row.LineTotal)
	}
	d.Separator('-')

	for _, s := range l.Summary {
		d.KeyValue(s.Label, s.Value)
	}

	if l.Notes != "" {
		d.LineFeed()
		d.Text("Notes:")
		d.Text(l.Notes)
	}
	if l.Footer != "" {
		d.Separator('=')
		d.Center(l.Footer)
	}

	return d.Bytes(), nil
}

// tableWidths splits the line width across the five item columns
func tableWidths(width int) []int {
	qty, price, total := 6, 12, 12
	rest := width - qty - price - total - 4
	if rest < 10 {
		rest = 10
	}
	item := rest * 2 / 5
	return []int{item, rest - item, qty, price, total}
}

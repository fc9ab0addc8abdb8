package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFRenderer renders an A4 quote with maroto
type PDFRenderer struct{}

func (PDFRenderer) Extension() string   { return "pdf" }
func (PDFRenderer) ContentType() string { return "application/pdf" }

// column widths on maroto's 12 column grid
var pdfColumns = []int{3, 4, 1, 2, 2}

func (PDFRenderer) Render(l *Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, l.Header, props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Left}))
	m.AddRows(text.NewRow(8, l.Title, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right}))
	for _, f := range l.Meta {
		m.AddRow(5,
			text.NewCol(8, f.Label+":", props.Text{Align: align.Right, Size: 9}),
			text.NewCol(4, f.Value, props.Text{Align: align.Right, Size: 9}),
		)
	}

	m.AddRows(text.NewRow(8, "Bill To", props.Text{Top: 3, Style: fontstyle.Bold, Size: 10}))
	for _, s := range l.Client {
		m.AddRows(text.NewRow(5, s, props.Text{Size: 9}))
	}

	m.AddRows(line.NewRow(6))
	header := props.Text{Style: fontstyle.Bold, Size: 9}
	m.AddRow(7,
		text.NewCol(pdfColumns[0], l.Columns[0], header),
		text.NewCol(pdfColumns[1], l.Columns[1], header),
		text.NewCol(pdfColumns[2], l.Columns[2], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(pdfColumns[3], l.Columns[3], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(pdfColumns[4], l.Columns[4], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	cell := props.Text{Size: 9}
	num := props.Text{Size: 9, Align: align.Right}
	for _, r := range l.Rows {
		m.AddRow(6,
			text.NewCol(pdfColumns[0], r.Item, cell),
			text.NewCol(pdfColumns[1], r.Description, cell),
			text.NewCol(pdfColumns[2], r.Quantity, num),
			text.NewCol(pdfColumns[3], r.UnitPrice, num),
			text.NewCol(pdfColumns[4], r.LineTotal, num),
		)
	}
	m.AddRows(line.NewRow(6))

	for i, f := range l.Summary {
		style := props.Text{Size: 10, Align: align.Right}
		if i == len(l.Summary)-1 {
			style.Style = fontstyle.Bold
		}
		m.AddRow(6,
			text.NewCol(9, f.Label, style),
			text.NewCol(3, f.Value, style),
		)
	}

	if l.Notes != "" {
		m.AddRows(text.NewRow(8, "Notes", props.Text{Top: 4, Style: fontstyle.Bold, Size: 10}))
		m.AddRows(text.NewRow(12, l.Notes, props.Text{Size: 9}))
	}

	if l.Footer != "" {
		m.AddRows(line.NewRow(6))
		m.AddRows(text.NewRow(6, l.Footer, props.Text{Size: 8, Align: align.Center}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

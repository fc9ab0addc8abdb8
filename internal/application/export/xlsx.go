package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const quoteSheet = "Quote"

// XLSXRenderer renders a quote as a single-sheet workbook
type XLSXRenderer struct{}

func (XLSXRenderer) Extension() string { return "xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Render(l *Layout) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, row: 1}
	w.set(1, l.Header)
	w.style(1, title)
	w.next()
	w.set(1, l.Title)
	w.style(1, bold)
	w.next()
	for _, m := range l.Meta {
		w.set(1, m.Label)
		w.set(2, m.Value)
		w.next()
	}

	w.next()
	w.set(1, "Bill To")
	w.style(1, bold)
	w.next()
	for _, s := range l.Client {
		w.set(1, s)
		w.next()
	}

	w.next()
	for i, col := range l.Columns {
		w.set(i+1, col)
		w.style(i+1, bold)
	}
	w.next()
	for _, r := range l.Rows {
		for i, v := range []string{r.Item, r.Description, r.Quantity, r.UnitPrice, r.LineTotal} {
			w.set(i+1, v)
		}
		w.next()
	}

	w.next()
	for i, s := range l.Summary {
		w.set(4, s.Label)
		w.set(5, s.Value)
		if i == len(l.Summary)-1 {
			w.style(4, bold)
			w.style(5, bold)
		}
		w.next()
	}

	if l.Notes != "" {
		w.next()
		w.set(1, "Notes")
		w.style(1, bold)
		w.next()
		w.set(1, l.Notes)
		w.next()
	}
	if l.Footer != "" {
		w.next()
		w.set(1, l.Footer)
	}
	if w.err != nil {
		return nil, fmt.Errorf("failed to write sheet: %w", w.err)
	}

	for col, width := range map[string]float64{"A": 28, "B": 36, "C": 8, "D": 16, "E": 18} {
		if err := f.SetColWidth(quoteSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter writes cells row by row and keeps the first error
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) cell(col int) string {
	name, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col int, value string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(quoteSheet, w.cell(col), value)
}

func (w *sheetWriter) style(col, style int) {
	if w.err != nil {
		return
	}
	c := w.cell(col)
	w.err = w.f.SetCellStyle(quoteSheet, c, c, style)
}

func (w *sheetWriter) next() {
	w.row++
}

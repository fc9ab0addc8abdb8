package textdoc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column alignment
const (
	AlignLeft = iota
	AlignRight
)

// Document builds a fixed-width plain text document line by line.
type Document struct {
	buf   bytes.Buffer
	width int // line width in characters
}

// NewDocument creates a document with the given line width. A width of 0
// or less falls back to 80 columns.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 80
	}
	return &Document{width: width}
}

// Width returns the line width.
func (d *Document) Width() int {
	return d.width
}

// LineFeed writes an empty line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte('\n')
	return d
}

// Text writes s wrapped to the document width.
func (d *Document) Text(s string) *Document {
	for _, line := range Wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte('\n')
	}
	return d
}

// TextF writes a formatted line of text.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Center writes s centred on its own line.
func (d *Document) Center(s string) *Document {
	for _, line := range Wrap(s, d.width) {
		pad := (d.width - utf8.RuneCountInString(line)) / 2
		d.buf.WriteString(strings.Repeat(" ", pad))
		d.buf.WriteString(line)
		d.buf.WriteByte('\n')
	}
	return d
}

// Separator prints a full-width line of char.
func (d *Document) Separator(char rune) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte('\n')
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal                 250.50"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte('\n')
	return d
}

// Row prints cells in columns of the given widths, truncating cells that do
// not fit. Columns are separated by a single space.
func (d *Document) Row(widths []int, aligns []int, cells ...string) *Document {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncate(cells[i], w)
		}
		pad := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if i < len(aligns) && aligns[i] == AlignRight {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	d.buf.WriteString(strings.TrimRight(strings.Join(parts, " "), " "))
	d.buf.WriteByte('\n')
	return d
}

// Bytes returns the accumulated text.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// String returns the accumulated text.
func (d *Document) String() string {
	return d.buf.String()
}

// Reset clears the buffer.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	return d
}

// Wrap splits s into lines of at most width runes, breaking on spaces where
// possible. Existing newlines are kept.
func Wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				r := []rune(w)
				lines = append(lines, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width:
				line += " " + w
			default:
				lines = append(lines, line)
				line = w
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}

package export

import (
	"fmt"
	"strings"
)

// Renderer draws a Layout in one file format
type Renderer interface {
	Render(l *Layout) ([]byte, error)
	Extension() string
	ContentType() string
}

// Formats lists the supported export formats
var Formats = []string{"pdf", "xlsx", "txt"}

// ForFormat returns the renderer for a format name. An empty name means pdf.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "pdf":
		return PDFRenderer{}, nil
	case "xlsx", "excel":
		return XLSXRenderer{}, nil
	case "txt", "text":
		return TextRenderer{Width: 80}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

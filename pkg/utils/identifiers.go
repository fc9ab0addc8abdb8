package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugDashes  = regexp.MustCompile("-+")
)

// Slugify lowercases s and keeps letters, digits and single hyphens, e.g.
// "Acme Plumbing_Co." becomes "acme-plumbing-co"
func Slugify(s string) string {
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateInvoiceNo appends 8 random uppercase hex characters to prefix
func GenerateInvoiceNo(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// FormatQuoteReference renders a sequential quote number, e.g. QT-000042
func FormatQuoteReference(prefix string, sequence int) string {
	return fmt.Sprintf("%s%06d", prefix, sequence)
}

// RandomSuffix returns n lowercase hex characters
func RandomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

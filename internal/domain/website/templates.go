package website

import (
	"regexp"
	"strings"
)

// DefaultTemplateID is the template assigned to a site created at onboarding.
const DefaultTemplateID = "classic"

// Section keys understood by the renderer.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionContact  = "contact"
)

// Template is a page layout a business can pick for its public site.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Accent      string   `json:"accent"`
	Sections    []string `json:"sections"`
}

var catalog = []Template{
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "Hero banner, about, services and contact details on a light page",
		Accent:      "#1f4e79",
		Sections:    []string{SectionHero, SectionAbout, SectionServices, SectionContact},
	},
	{
		ID:          "bold",
		Name:        "Bold",
		Description: "Large headline with services first, for trades and retail",
		Accent:      "#c0392b",
		Sections:    []string{SectionHero, SectionServices, SectionAbout, SectionContact},
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "A single card with a short introduction and contact details",
		Accent:      "#2d3436",
		Sections:    []string{SectionHero, SectionContact},
	},
}

// Templates returns the template catalog.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a template by id.
func Lookup(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Contact holds the business details used to seed a new site.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// DefaultContent seeds the sections of t from the business profile.
func DefaultContent(t Template, c Contact) map[string]interface{} {
	content := make(map[string]interface{}, len(t.Sections))
	for _, key := range t.Sections {
		switch key {
		case SectionHero:
			content[key] = map[string]interface{}{
				"headline": c.Name,
				"tagline":  "Welcome to " + c.Name,
			}
		case SectionAbout:
			content[key] = map[string]interface{}{
				"heading": "About us",
				"body":    "",
			}
		case SectionServices:
			content[key] = map[string]interface{}{
				"heading": "What we do",
				"items":   []interface{}{},
			}
		case SectionContact:
			content[key] = map[string]interface{}{
				"heading": "Get in touch",
				"phone":   c.Phone,
				"email":   c.Email,
				"address": c.Address,
			}
		}
	}
	return content
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s can be used in a public site URL.
func ValidSlug(s string) bool {
	return len(s) >= 3 && len(s) <= 100 && slugPattern.MatchString(s)
}

// NormalizeSlug lowercases and trims s.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package website

import (
	"html/template"
	"io"
	"strings"

	"github.com/shockerli/cvt"
)

// Page is the data needed to render a published site.
type Page struct {
	Title    string
	Template Template
	Content  map[string]interface{}
}

type sectionView struct {
	Key      string
	Heading  string
	Headline string
	Tagline  string
	Body     string
	Items    []string
	Phone    string
	Email    string
	Address  string
}

type pageView struct {
	Title    string
	Accent   string
	Sections []sectionView
}

var pageTemplate = template.Must(template.New("site").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;color:#222;line-height:1.5}
header{background:{{.Accent}};color:#fff;padding:4rem 1.5rem;text-align:center}
section{max-width:48rem;margin:0 auto;padding:2rem 1.5rem}
h2{color:{{.Accent}}}
</style>
</head>
<body>
{{range .Sections}}{{if eq .Key "hero"}}<header>
<h1>{{.Headline}}</h1>
{{if .Tagline}}<p>{{.Tagline}}</p>{{end}}
</header>
{{else if eq .Key "contact"}}<section id="contact">
<h2>{{.Heading}}</h2>
{{if .Phone}}<p>Phone: {{.Phone}}</p>{{end}}
{{if .Email}}<p>Email: <a href="mailto:{{.Email}}">{{.Email}}</a></p>{{end}}
{{if .Address}}<p>{{.Address}}</p>{{end}}
</section>
{{else}}<section id="{{.Key}}">
{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
{{if .Body}}<p>{{.Body}}</p>{{end}}
{{if .Items}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}
</section>
{{end}}{{end}}</body>
</html>
`))

// Render writes the public HTML for p. Sections follow the template order;
// sections missing from the content are skipped.
func Render(w io.Writer, p Page) error {
	view := pageView{Title: p.Title, Accent: p.Template.Accent}
	if view.Accent == "" {
		view.Accent = "#333333"
	}
	for _, key := range p.Template.Sections {
		raw, ok := p.Content[key].(map[string]interface{})
		if !ok {
			continue
		}
		view.Sections = append(view.Sections, sectionView{
			Key:      key,
			Heading:  field(raw, "heading"),
			Headline: field(raw, "headline"),
			Tagline:  field(raw, "tagline"),
			Body:     field(raw, "body"),
			Items:    items(raw["items"]),
			Phone:    field(raw, "phone"),
			Email:    field(raw, "email"),
			Address:  field(raw, "address"),
		})
	}
	if view.Title == "" && len(view.Sections) > 0 {
		view.Title = view.Sections[0].Headline
	}
	return pageTemplate.Execute(w, view)
}

func field(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cvt.StringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func items(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, err := cvt.StringE(item)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

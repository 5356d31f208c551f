package pages

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"sort"
	"strings"

	"github.com/tbourn/go-snitchon-backend/internal/search"
)

//go:embed content/*.md
var content embed.FS

// InfoPage is one rendered informational page.
type InfoPage struct {
	Slug  string        `json:"slug"`
	Title string        `json:"title"`
	HTML  template.HTML `json:"html"`
}

// InfoPages holds the static pages, rendered once.
type InfoPages struct {
	pages   map[string]InfoPage
	sources []search.Source
}

// LoadInfoPages renders every embedded page.
func LoadInfoPages(md *Markdown) (*InfoPages, error) {
	files, err := content.ReadDir("content")
	if err != nil {
		return nil, err
	}
	out := &InfoPages{pages: make(map[string]InfoPage, len(files))}
	for _, f := range files {
		if f.IsDir() || path.Ext(f.Name()) != ".md" {
			continue
		}
		body, err := content.ReadFile("content/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name(), err)
		}
		slug := strings.TrimSuffix(f.Name(), ".md")
		out.pages[slug] = InfoPage{Slug: slug, Title: title(body, slug), HTML: md.Render(string(body))}
		out.sources = append(out.sources, search.Source{Page: slug, Body: body})
	}
	return out, nil
}

// Get returns the page for slug.
func (p *InfoPages) Get(slug string) (InfoPage, bool) {
	pg, ok := p.pages[slug]
	return pg, ok
}

// Slugs lists the available pages in name order.
func (p *InfoPages) Slugs() []string {
	out := make([]string, 0, len(p.pages))
	for s := range p.pages {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Sources returns the Markdown of every page, for indexing.
func (p *InfoPages) Sources() []search.Source { return p.sources }

// title is the text of the first heading, or the slug.
func title(md []byte, slug string) string {
	sc := bufio.NewScanner(bytes.NewReader(md))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
				return t
			}
		}
	}
	return slug
}

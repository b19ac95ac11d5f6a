package features

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Card is a Feature prepared for HTML output.
type Card struct {
	Title       string
	Icon        string
	Description template.HTML // rendered and sanitized
	Summary     string        // plain text of Description
}

var (
	md     = goldmark.New()
	policy = bluemonday.UGCPolicy()
)

var cardsTemplate = template.Must(template.New("features").Parse(`<section class="features">
{{- range . }}
  <div class="feature" title="{{ .Summary }}">
    <img class="feature-icon" src="{{ .Icon }}" alt="{{ .Title }}" role="img">
    <h3>{{ .Title }}</h3>
    {{ .Description }}
  </div>
{{- end }}
</section>
`))

// Cards renders every feature's description. Output order matches l.
func (l List) Cards() ([]Card, error) {
	cards := make([]Card, 0, len(l))
	for _, f := range l {
		var buf bytes.Buffer
		if err := md.Convert([]byte(f.Description), &buf); err != nil {
			return nil, fmt.Errorf("render description of %q: %w", f.Title, err)
		}
		safe := policy.SanitizeBytes(buf.Bytes())
		summary, err := plainText(safe)
		if err != nil {
			return nil, fmt.Errorf("summarize description of %q: %w", f.Title, err)
		}
		cards = append(cards, Card{
			Title:       f.Title,
			Icon:        iconURL(f.Icon),
			Description: template.HTML(strings.TrimSpace(string(safe))), //nolint:gosec // sanitized by bluemonday
			Summary:     summary,
		})
	}
	return cards, nil
}

// Render writes the cards section for l to w.
func (l List) Render(w io.Writer) error {
	cards, err := l.Cards()
	if err != nil {
		return err
	}
	return cardsTemplate.Execute(w, cards)
}

// plainText returns the whitespace-normalized text content of an HTML fragment.
func plainText(fragment []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return strings.Join(strings.Fields(b.String()), " "), nil
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// iconURL makes a static asset path site-absolute; full URLs pass through.
func iconURL(icon string) string {
	if strings.Contains(icon, "://") {
		return icon
	}
	return "/" + strings.TrimPrefix(icon, "/")
}

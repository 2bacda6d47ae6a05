package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// Fetcher loads and parses a page.
type Fetcher interface {
	GetHTML(ctx context.Context, url string) (*goquery.Document, error)
}

// FieldSource scrapes one quote field from a page.
type FieldSource struct {
	fetcher Fetcher
	field   Field
}

var _ application.FieldSource = (*FieldSource)(nil)

func NewFieldSource(fetcher Fetcher, field Field) *FieldSource {
	return &FieldSource{fetcher: fetcher, field: field}
}

func (s *FieldSource) Fetch(ctx context.Context) (string, error) {
	doc, err := s.fetcher.GetHTML(ctx, s.field.URL)
	if err != nil {
		return "", err
	}
	return s.field.Extract(doc)
}

// Extract assembles the field from an already parsed page.
func (f Field) Extract(doc *goquery.Document) (string, error) {
	parts := make([]string, 0, len(f.Parts))
	for _, p := range f.Parts {
		sel := doc.Find(p.Selector).First()
		if sel.Length() == 0 {
			return "", fmt.Errorf("%w: no match for %q", domain.ErrExtract, p.Selector)
		}
		text := strings.TrimSpace(sel.Text())
		if p.Digits {
			text = NormalizeDigits(text)
		}
		parts = append(parts, text)
	}
	out := strings.Join(parts, f.Join)
	if f.TranslateCalendar {
		out = TranslateCalendar(out)
	}
	return out, nil
}

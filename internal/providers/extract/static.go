// Package extract implements the product data extractors. The static
// extractor serves fixture data for development and tests; the http
// extractor scrapes open graph metadata from the live product page.
package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

// StaticExtractor returns deterministic fixture data derived from the URL.
// It never touches the network, which makes pipeline runs reproducible.
type StaticExtractor struct{}

func NewStatic() *StaticExtractor { return &StaticExtractor{} }

func (e *StaticExtractor) Extract(_ context.Context, rawURL string) (*models.ProductData, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, apperrors.Extraction("extract.static", fmt.Errorf("invalid product url: %s", rawURL))
	}

	title := titleFromPath(u.Path)
	if title == "" {
		title = "Featured Product"
	}

	return &models.ProductData{
		Title:       title,
		Description: fmt.Sprintf("%s from %s, built for everyday use.", title, u.Host),
		Price:       "$29.99",
		Benefits: []string{
			"Ready out of the box",
			"Lightweight and portable",
			"Backed by a 30-day guarantee",
		},
		Reviews: []models.Review{
			{Rating: 5, Text: "Exceeded my expectations"},
			{Rating: 4, Text: "Solid quality for the price"},
		},
		URL: rawURL,
	}, nil
}

// titleFromPath turns the last path segment into a display title:
// "/p/aero-press-go" becomes "Aero Press Go".
func titleFromPath(path string) string {
	seg := strings.Trim(path, "/")
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return ""
	}

	words := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

const (
	fetchTimeout = 20 * time.Second
	maxBodyBytes = 2 << 20 // las fichas de producto no deberían pasar de 2MB
	userAgent    = "promoreel-extractor/1.0"
)

// HTTPExtractor fetches the product page and reads open graph metadata.
// It is intentionally tolerant: a page missing og: tags still yields a
// ProductData with whatever could be recovered, as long as a title exists.
type HTTPExtractor struct {
	client *http.Client
}

func NewHTTP(client *http.Client) *HTTPExtractor {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &HTTPExtractor{client: client}
}

func (e *HTTPExtractor) Extract(ctx context.Context, rawURL string) (*models.ProductData, error) {
	const op = "extract.http"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Extraction(op, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, apperrors.Extraction(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Extraction(op, fmt.Errorf("product page returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Extraction(op, err)
	}

	page := string(body)
	data := &models.ProductData{
		Title:       firstNonEmpty(metaContent(page, "og:title"), htmlTitle(page)),
		Description: firstNonEmpty(metaContent(page, "og:description"), metaName(page, "description")),
		Price:       firstNonEmpty(metaContent(page, "product:price:amount"), metaContent(page, "og:price:amount")),
		URL:         rawURL,
	}

	if data.Title == "" {
		return nil, apperrors.Extraction(op, fmt.Errorf("no title found on product page"))
	}

	// La descripción larga suele traer frases de beneficio separadas por punto.
	for _, s := range strings.Split(data.Description, ".") {
		s = strings.TrimSpace(s)
		if len(s) > 10 && len(data.Benefits) < 3 {
			data.Benefits = append(data.Benefits, s)
		}
	}

	return data, nil
}

var (
	metaPropRe = regexp.MustCompile(`(?is)<meta[^>]+property\s*=\s*["']%s["'][^>]+content\s*=\s*["']([^"']*)["']`)
	metaNameRe = regexp.MustCompile(`(?is)<meta[^>]+name\s*=\s*["']%s["'][^>]+content\s*=\s*["']([^"']*)["']`)
	titleRe    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

func metaContent(page, property string) string {
	re := regexp.MustCompile(strings.Replace(metaPropRe.String(), "%s", regexp.QuoteMeta(property), 1))
	if m := re.FindStringSubmatch(page); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func metaName(page, name string) string {
	re := regexp.MustCompile(strings.Replace(metaNameRe.String(), "%s", regexp.QuoteMeta(name), 1))
	if m := re.FindStringSubmatch(page); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func htmlTitle(page string) string {
	if m := titleRe.FindStringSubmatch(page); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

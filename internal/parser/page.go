package parser

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed HTML document together with the URL it was fetched from.
// It is read-only once built.
type Page struct {
	URL      *url.URL
	Document *goquery.Document
}

// PageFetcher retrieves and parses a page. Implemented by the HTTP client.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*Page, error)
}

// ParseDocument parses an HTML body into a goquery document, converting it to UTF-8 first.
func ParseDocument(body io.Reader) (*goquery.Document, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// NewPage parses body as the document served at pageURL.
func NewPage(pageURL string, body io.Reader) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, err
	}

	return &Page{URL: u, Document: doc}, nil
}

// Resolve turns an href found on the page into an absolute URL.
func (p *Page) Resolve(href string) (string, error) {
	return resolveAgainst(p.URL, href)
}

func resolveAgainst(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"maps-scraper/models"
)

// Fetcher retrieves one web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (*Page, error)
}

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindParse     ErrorKind = "parse"
)

// FetchError is returned by every Fetcher on failure.
type FetchError struct {
	URL    string
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: %s %d", e.URL, e.Kind, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// classify wraps a transport-level error, detecting timeouts.
func classify(url string, err error) *FetchError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &FetchError{URL: url, Kind: KindTimeout, Err: err}
	}
	return &FetchError{URL: url, Kind: KindTransport, Err: err}
}

// Page is a fetched and parsed HTML document.
type Page struct {
	URL  string
	HTML string
	Doc  *goquery.Document

	text string
}

// NewPage parses markup fetched from url.
func NewPage(url, markup string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindParse, Err: err}
	}
	visible := doc.Clone()
	visible.Find("script, style, noscript").Remove()
	return &Page{URL: url, HTML: markup, Doc: doc, text: visibleText(visible)}, nil
}

// visibleText joins the document's text nodes with single spaces so text in
// adjacent cells or inline elements does not run together.
func visibleText(s *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				if t := strings.TrimSpace(c.Text()); t != "" {
					parts = append(parts, t)
				}
			case "#comment":
			default:
				walk(c)
			}
		})
	}
	walk(s)
	return strings.Join(parts, " ")
}

// Text returns the visible text of the page.
func (p *Page) Text() string {
	return p.text
}

// Links returns every anchor with an href, in document order.
func (p *Page) Links() []models.Link {
	var links []models.Link
	p.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		links = append(links, models.Link{Href: href, Text: strings.TrimSpace(s.Text())})
	})
	return links
}

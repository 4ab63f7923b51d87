package fetch

import (
	"context"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/rotisserie/eris"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	maxBodyBytes     = 5 << 20
)

// CollyFetcher fetches pages with a fresh colly collector per request so
// concurrent fetches share no state.
type CollyFetcher struct {
	rotateUserAgent bool
}

// NewCollyFetcher returns a fetcher; rotateUserAgent picks a random browser
// user agent for each request.
func NewCollyFetcher(rotateUserAgent bool) *CollyFetcher {
	return &CollyFetcher{rotateUserAgent: rotateUserAgent}
}

func (f *CollyFetcher) Fetch(ctx context.Context, target string, timeout time.Duration) (*Page, error) {
	if u, err := url.Parse(target); err != nil || u.Host == "" {
		if err == nil {
			err = eris.New("url has no host")
		}
		return nil, &FetchError{URL: target, Kind: KindTransport, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.MaxBodySize(maxBodyBytes),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)
	if f.rotateUserAgent {
		extensions.RandomUserAgent(c)
	} else {
		c.UserAgent = defaultUserAgent
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var (
		body     []byte
		finalURL = target
		status   int
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		finalURL = r.Request.URL.String()
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(target); err != nil {
		if status >= 300 {
			return nil, &FetchError{URL: target, Kind: KindStatus, Status: status, Err: err}
		}
		return nil, classify(target, err)
	}
	return NewPage(finalURL, string(body))
}

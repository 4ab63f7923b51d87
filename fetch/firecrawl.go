package fetch

import (
	"context"
	"time"

	"github.com/mendableai/firecrawl-go/v2"
	"github.com/rotisserie/eris"
)

// FirecrawlFetcher renders pages through the Firecrawl API. It suits sites
// whose contact details only appear after JavaScript runs.
type FirecrawlFetcher struct {
	app *firecrawl.FirecrawlApp
}

func NewFirecrawlFetcher(apiKey, apiURL string) (*FirecrawlFetcher, error) {
	if apiURL == "" {
		apiURL = "https://api.firecrawl.dev"
	}
	app, err := firecrawl.NewFirecrawlApp(apiKey, apiURL)
	if err != nil {
		return nil, eris.Wrap(err, "create firecrawl client")
	}
	return &FirecrawlFetcher{app: app}, nil
}

func (f *FirecrawlFetcher) Fetch(ctx context.Context, target string, timeout time.Duration) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type scrapeResult struct {
		doc *firecrawl.FirecrawlDocument
		err error
	}
	resultChan := make(chan scrapeResult, 1)

	// The SDK call takes no context, so the deadline is enforced here.
	go func() {
		doc, err := f.app.ScrapeURL(target, &firecrawl.ScrapeParams{Formats: []string{"html"}})
		resultChan <- scrapeResult{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &FetchError{URL: target, Kind: KindTimeout, Err: ctx.Err()}
	case res := <-resultChan:
		if res.err != nil {
			return nil, &FetchError{URL: target, Kind: KindTransport, Err: res.err}
		}
		if res.doc == nil || res.doc.HTML == "" {
			return nil, &FetchError{URL: target, Kind: KindParse, Err: eris.New("empty html in firecrawl response")}
		}
		return NewPage(target, res.doc.HTML)
	}
}

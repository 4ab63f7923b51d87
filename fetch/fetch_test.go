package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head><script>var x = "hidden@script.pk";</script><style>.a{}</style></head>
<body><h1>AutoDrive Rentals</h1><p>Call us</p>
<a href="/contact">Contact</a>
<a href="https://www.facebook.com/autodriverentalsofficial"> Facebook </a>
<a>no href</a></body></html>`

func TestNewPage(t *testing.T) {
	p, err := NewPage("https://autodrive.pk", samplePage)
	require.NoError(t, err)

	assert.Contains(t, p.Text(), "AutoDrive Rentals")
	assert.NotContains(t, p.Text(), "hidden@script.pk")

	links := p.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "/contact", links[0].Href)
	assert.Equal(t, "Facebook", links[1].Text)

	assert.Contains(t, p.Doc.Find("script").Text(), "hidden@script.pk", "original document keeps scripts")
}

func TestPageTextSeparatesAdjacentNodes(t *testing.T) {
	p, err := NewPage("https://autodrive.pk", `<table><tr><td>Contact</td><td><a href="mailto:bookings@autodrive.pk">bookings@autodrive.pk</a></td><td><a href="https://www.facebook.com/autodriverentalsofficial">fb</a></td></tr></table><p>Call<b>0300 1234567</b></p>`)
	require.NoError(t, err)

	assert.Equal(t, "Contact bookings@autodrive.pk fb Call 0300 1234567", p.Text())
}

func TestCollyFetcherOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	p, err := NewCollyFetcher(false).Fetch(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Contains(t, p.Text(), "AutoDrive Rentals")
	assert.Len(t, p.Links(), 2)
}

func TestCollyFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewCollyFetcher(true).Fetch(context.Background(), srv.URL, 5*time.Second)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindStatus, fe.Kind)
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestCollyFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewCollyFetcher(false).Fetch(context.Background(), srv.URL, 100*time.Millisecond)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout), "got %v", err)
}

func TestCollyFetcherInvalidURL(t *testing.T) {
	_, err := NewCollyFetcher(false).Fetch(context.Background(), "not a url", time.Second)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-scraper/extract"
	"maps-scraper/fetch"
	"maps-scraper/models"
	"maps-scraper/utils"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ time.Duration) (*fetch.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	html, ok := f.pages[url]
	if !ok {
		return nil, &fetch.FetchError{URL: url, Kind: fetch.KindStatus, Status: 404}
	}
	return fetch.NewPage(url, html)
}

type fakeMX map[string]bool

func (m fakeMX) HasMX(_ context.Context, domain string) bool { return m[domain] }

func newTestEnricher(f fetch.Fetcher, mx MXChecker) *ContactEnricher {
	return NewContactEnricher(f, extract.NewEmailValidator(), extract.NewSocialClassifier(), mx,
		DefaultEnricherOptions(), utils.NewNopLogger())
}

func TestEnrichHomePage(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://autodrive.pk": `<html><body>
			<p>Email: bookings@autodrive.pk</p>
			<a href="https://www.facebook.com/">Facebook</a>
			<a href="https://www.facebook.com/autodriverentalsofficial">Like us</a>
			<a href="/contact">Contact</a>
		</body></html>`,
	}}
	c := newTestEnricher(f, nil).Enrich(context.Background(), "https://autodrive.pk", "AutoDrive Rentals")

	assert.Equal(t, "bookings@autodrive.pk", c.Email)
	assert.Equal(t, "https://www.facebook.com/autodriverentalsofficial", c.Facebook)
	assert.Equal(t, []string{"https://autodrive.pk"}, f.calls, "contact pages must not be fetched when socials were found")
}

func TestEnrichFallsBackToContactPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://autodrive.pk": `<html><body>
			<a href="/contact">Contact us</a>
			<a href="/about">About</a>
			<a href="/team">Our team</a>
			<a href="https://other-site.pk/contact">Partner contact</a>
		</body></html>`,
		"https://autodrive.pk/about": `<html><body>
			<a href="https://www.instagram.com/autodriverentals.pk">Instagram</a>
			<a href="mailto:hello@autodrive.pk">Mail us</a>
		</body></html>`,
		"https://autodrive.pk/team": `<html><body>
			<a href="https://www.linkedin.com/company/autodrive-rentals">LinkedIn</a>
		</body></html>`,
	}}
	c := newTestEnricher(f, nil).Enrich(context.Background(), "https://autodrive.pk", "AutoDrive Rentals")

	assert.Equal(t, "https://www.instagram.com/autodriverentals.pk", c.Instagram)
	assert.Equal(t, "hello@autodrive.pk", c.Email)
	assert.Empty(t, c.LinkedIn, "search must stop at the first page with results")
	assert.Equal(t, []string{
		"https://autodrive.pk",
		"https://autodrive.pk/contact",
		"https://autodrive.pk/about",
	}, f.calls)
}

func TestEnrichContactPageCap(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://autodrive.pk": `<html><body>
			<a href="/contact">Contact</a>
			<a href="/contact-us">Contact us</a>
			<a href="/about">About</a>
			<a href="/about-us">About us</a>
			<a href="/team">Team</a>
			<a href="/reach-us">Get in touch: contact</a>
			<a href="/support">Support contact</a>
		</body></html>`,
	}}
	c := newTestEnricher(f, nil).Enrich(context.Background(), "https://autodrive.pk", "AutoDrive Rentals")

	assert.False(t, c.HasAny())
	assert.Len(t, f.calls, 1+5, "home page plus at most five contact pages")
	assert.Equal(t, "https://autodrive.pk", f.calls[0])
}

func TestEnrichFollowsBareAndWWWHost(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://www.autodrive.pk/": `<html><body>
			<a href="https://autodrive.pk/contact-us">Contact us</a>
			<a href="https://other-site.pk/contact">Partner contact</a>
		</body></html>`,
		"https://autodrive.pk/contact-us": `<html><body>
			<a href="https://www.facebook.com/autodriverentalsofficial">Facebook</a>
		</body></html>`,
	}}
	c := newTestEnricher(f, nil).Enrich(context.Background(), "https://www.autodrive.pk/", "AutoDrive Rentals")

	assert.Equal(t, "https://www.facebook.com/autodriverentalsofficial", c.Facebook)
	assert.Equal(t, []string{"https://www.autodrive.pk/", "https://autodrive.pk/contact-us"}, f.calls)
}

func TestEnrichEmailFromCompactMarkup(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://autodrive.pk": `<table><tr><td>Contact</td><td><a href="mailto:bookings@autodrive.pk">bookings@autodrive.pk</a></td><td><a href="https://www.facebook.com/autodriverentalsofficial">fb</a></td></tr></table>`,
	}}
	c := newTestEnricher(f, nil).Enrich(context.Background(), "https://autodrive.pk", "AutoDrive Rentals")

	assert.Equal(t, "bookings@autodrive.pk", c.Email)
	assert.Equal(t, "https://www.facebook.com/autodriverentalsofficial", c.Facebook)
}

func TestEnrichSkipsAggregatorsAndFailures(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	e := newTestEnricher(f, nil)

	assert.False(t, e.Enrich(context.Background(), "https://www.facebook.com/autodrive", "x").HasAny())
	assert.False(t, e.Enrich(context.Background(), "", "x").HasAny())
	assert.Empty(t, f.calls)

	assert.False(t, e.Enrich(context.Background(), "https://down.pk", "x").HasAny())
	assert.Equal(t, []string{"https://down.pk"}, f.calls)
}

func TestEnrichMXFilter(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://autodrive.pk": `<p>bookings@nomail.pk or sales@autodrive.pk</p>
			<a href="https://www.facebook.com/autodriverentalsofficial">fb</a>`,
	}}
	c := newTestEnricher(f, fakeMX{"autodrive.pk": true}).Enrich(context.Background(), "https://autodrive.pk", "x")
	assert.Equal(t, "sales@autodrive.pk", c.Email)
}

func TestMergeContactsFillsGapsOnly(t *testing.T) {
	orig := &models.Business{
		Name:     "AutoDrive Rentals",
		Facebook: "https://www.facebook.com/autodriverentalsofficial",
	}
	merged := MergeContacts(orig, models.Contacts{
		Facebook: "https://www.facebook.com/someoneelse12345",
		Email:    "bookings@autodrive.pk",
	})

	assert.Equal(t, "https://www.facebook.com/autodriverentalsofficial", merged.Facebook)
	assert.Equal(t, "bookings@autodrive.pk", merged.Email)
	assert.Empty(t, orig.Email, "input record must not be mutated")
}

func TestMergeEmptyContactsIsIdentity(t *testing.T) {
	full := &models.Business{
		Name: "City Car Rentals", Email: "bookings@cityrentals.pk",
		Facebook: "https://www.facebook.com/cityrentalsofficial", Instagram: "https://www.instagram.com/cityrentals.pk",
		Twitter: "https://twitter.com/cityrentalspk", LinkedIn: "https://www.linkedin.com/company/city-rentals",
		YouTube: "https://www.youtube.com/cityrentalsofficial", WhatsApp: "https://wa.me/923001234567",
	}
	merged := MergeContacts(full, models.Contacts{})
	require.NotNil(t, merged)
	assert.Equal(t, *full, *merged)
}

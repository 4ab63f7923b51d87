package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"maps-scraper/extract"
	"maps-scraper/fetch"
	"maps-scraper/models"
	"maps-scraper/utils"
)

// EnricherOptions bounds how much of a website the enricher reads.
type EnricherOptions struct {
	WebsiteTimeout     time.Duration
	ContactPageTimeout time.Duration
	MaxContactPages    int
	Hosts              extract.HostFilter
}

// DefaultEnricherOptions: 15s for the home page, 10s per contact page, at
// most five contact pages, aggregator hosts skipped.
func DefaultEnricherOptions() EnricherOptions {
	return EnricherOptions{
		WebsiteTimeout:     15 * time.Second,
		ContactPageTimeout: 10 * time.Second,
		MaxContactPages:    5,
		Hosts:              extract.NewHostFilter(),
	}
}

// ContactEnricher reads a business website for an email address and social
// profile links. It holds no per-request state and is safe for concurrent
// use.
type ContactEnricher struct {
	fetcher fetch.Fetcher
	emails  *extract.EmailValidator
	socials *extract.SocialClassifier
	mx      MXChecker
	opts    EnricherOptions
	logger  *utils.Logger
}

// NewContactEnricher wires an enricher. mx may be nil to skip MX checks.
func NewContactEnricher(fetcher fetch.Fetcher, emails *extract.EmailValidator, socials *extract.SocialClassifier,
	mx MXChecker, opts EnricherOptions, logger *utils.Logger) *ContactEnricher {
	return &ContactEnricher{
		fetcher: fetcher,
		emails:  emails,
		socials: socials,
		mx:      mx,
		opts:    opts,
		logger:  logger,
	}
}

// Enrich returns the contacts found on website. Fetch failures yield empty
// contacts, never an error.
func (e *ContactEnricher) Enrich(ctx context.Context, website, name string) models.Contacts {
	var contacts models.Contacts
	if !e.opts.Hosts.Allows(website) {
		return contacts
	}

	page, err := e.fetcher.Fetch(ctx, website, e.opts.WebsiteTimeout)
	if err != nil {
		e.logger.Warn("[enricher] %s: could not load %s: %v", name, website, err)
		return contacts
	}
	contacts = e.extract(ctx, page)

	if contacts.HasSocial() {
		e.logger.Debug("[enricher] %s: %d social links on home page", name, contacts.SocialCount())
		return contacts
	}

	for _, link := range e.contactPages(page) {
		sub, err := e.fetcher.Fetch(ctx, link, e.opts.ContactPageTimeout)
		if err != nil {
			e.logger.Debug("[enricher] %s: contact page %s failed: %v", name, link, err)
			continue
		}
		found := e.extract(ctx, sub)
		contacts.FillGaps(found)
		if found.HasAny() {
			e.logger.Debug("[enricher] %s: contacts found on %s", name, link)
			break
		}
	}
	return contacts
}

// EnrichBusiness returns a copy of b with empty contact fields filled from
// its website.
func (e *ContactEnricher) EnrichBusiness(ctx context.Context, b *models.Business) *models.Business {
	return MergeContacts(b, e.Enrich(ctx, b.Website, b.Name))
}

// MergeContacts returns a copy of b whose empty contact fields are taken from
// c. Populated fields are never overwritten or cleared.
func MergeContacts(b *models.Business, c models.Contacts) *models.Business {
	out := *b
	out.MergeContacts(c)
	return &out
}

func (e *ContactEnricher) extract(ctx context.Context, page *fetch.Page) models.Contacts {
	c := e.socials.Extract(page.Links(), page.URL).Contacts()
	c.Email = e.firstEmail(ctx, page)
	return c
}

// firstEmail scans visible text first and mailto: links second.
func (e *ContactEnricher) firstEmail(ctx context.Context, page *fetch.Page) string {
	candidates := e.emails.ExtractValid(page.Text())
	for _, l := range page.Links() {
		if strings.HasPrefix(strings.ToLower(l.Href), "mailto:") {
			if addr := e.emails.Clean(l.Href); addr != "" {
				candidates = append(candidates, addr)
			}
		}
	}
	for _, addr := range candidates {
		if e.mx == nil || e.mx.HasMX(ctx, domainOf(addr)) {
			return addr
		}
		e.logger.Debug("[enricher] %s dropped: no MX record", addr)
	}
	return ""
}

// contactPages lists same-site links whose href or text mentions a contact
// keyword, capped at MaxContactPages.
func (e *ContactEnricher) contactPages(page *fetch.Page) []string {
	base, err := url.Parse(page.URL)
	if err != nil {
		return nil
	}
	seen := utils.NewStringSet()
	seen.Add(strings.TrimRight(page.URL, "/"))

	var out []string
	for _, l := range page.Links() {
		if len(out) >= e.opts.MaxContactPages {
			break
		}
		hay := strings.ToLower(l.Href + " " + l.Text)
		if !containsKeyword(hay, extract.ContactKeywords) {
			continue
		}
		ref, err := url.Parse(l.Href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if (abs.Scheme != "http" && abs.Scheme != "https") || siteHost(abs) != siteHost(base) {
			continue
		}
		abs.Fragment = ""
		if link := abs.String(); seen.Add(strings.TrimRight(link, "/")) {
			out = append(out, link)
		}
	}
	return out
}

// siteHost is the URL's host without port or a leading "www.", so the bare
// and www hosts of one site compare equal.
func siteHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func containsKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func domainOf(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}

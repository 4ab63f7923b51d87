package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// URLExtractor finds a business website in listing text or markup.
type URLExtractor struct {
	patterns   []*regexp.Regexp
	denyTokens []string
}

// NewURLExtractor returns an extractor over WebsitePatterns.
func NewURLExtractor() *URLExtractor {
	return &URLExtractor{patterns: WebsitePatterns, denyTokens: WebsiteDenyTokens}
}

// Extract returns website candidates in text in pattern order. Map links are
// skipped and scheme-less candidates get an https:// prefix.
func (u *URLExtractor) Extract(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, re := range u.patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			// The bare-domain pattern also hits the domain half of an email.
			if loc[0] > 0 && text[loc[0]-1] == '@' {
				continue
			}
			raw := text[loc[0]:loc[1]]
			lower := strings.ToLower(raw)
			if strings.Contains(lower, "google.com") || strings.Contains(lower, "maps") {
				continue
			}
			if !strings.HasPrefix(lower, "http") {
				raw = "https://" + raw
			}
			key := strings.TrimSuffix(strings.ToLower(raw), "/")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, raw)
		}
	}
	return out
}

// First returns the first website candidate in text, or "".
func (u *URLExtractor) First(text string) string {
	if all := u.Extract(text); len(all) > 0 {
		return all[0]
	}
	return ""
}

// FromHTML returns the first absolute anchor in markup that is not a map or
// search link.
func (u *URLExtractor) FromHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		if !strings.Contains(lower, "http") || strings.Contains(lower, "google.com") || strings.Contains(lower, "maps") {
			return true
		}
		found = href
		return false
	})
	return found
}

// Clean normalises a website: social and map hosts are rejected, a missing
// scheme becomes https:// and a trailing slash is dropped.
func (u *URLExtractor) Clean(raw string) string {
	site := strings.TrimSpace(raw)
	if site == "" {
		return ""
	}
	lower := strings.ToLower(site)
	for _, tok := range u.denyTokens {
		if strings.Contains(lower, tok) {
			return ""
		}
	}
	if !strings.HasPrefix(lower, "http") {
		site = "https://" + site
	}
	return strings.TrimRight(site, "/")
}

// HostFilter decides whether a website is worth crawling for contacts.
type HostFilter struct {
	deny []string
}

// NewHostFilter returns a filter rejecting hosts equal to, or subdomains of,
// any of deny. With no arguments AggregatorHosts is used.
func NewHostFilter(deny ...string) HostFilter {
	if len(deny) == 0 {
		deny = AggregatorHosts
	}
	return HostFilter{deny: deny}
}

// Allows reports whether website is an http(s) URL on a permitted host.
func (f HostFilter) Allows(website string) bool {
	website = strings.TrimSpace(website)
	if website == "" {
		return false
	}
	u, err := url.Parse(website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range f.deny {
		if host == d || strings.HasSuffix(host, "."+d) {
			return false
		}
	}
	return true
}

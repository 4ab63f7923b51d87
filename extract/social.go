package extract

import (
	"net/url"
	"strings"

	"maps-scraper/models"
)

// Socials maps a platform to its accepted profile URL.
type Socials map[Platform]string

// Contacts converts s into the contact payload shape.
func (s Socials) Contacts() models.Contacts {
	return models.Contacts{
		Facebook:  s[Facebook],
		Instagram: s[Instagram],
		Twitter:   s[Twitter],
		LinkedIn:  s[LinkedIn],
		YouTube:   s[YouTube],
		WhatsApp:  s[WhatsApp],
	}
}

// SocialClassifier picks business profile links out of a page's anchors.
type SocialClassifier struct {
	rules      []PlatformRule
	generic    []string
	indicators []string
}

// NewSocialClassifier returns a classifier over PlatformRules,
// GenericPathPrefixes and BusinessIndicators.
func NewSocialClassifier() *SocialClassifier {
	return &SocialClassifier{
		rules:      PlatformRules,
		generic:    GenericPathPrefixes,
		indicators: BusinessIndicators,
	}
}

// Extract returns at most one URL per platform. Links are visited in order
// and the first accepted URL for a platform wins. Relative hrefs are resolved
// against baseURL before validation.
func (c *SocialClassifier) Extract(links []models.Link, baseURL string) Socials {
	out := make(Socials)
	for _, l := range links {
		href := strings.TrimSpace(l.Href)
		if href == "" {
			continue
		}
		abs := Normalize(href, baseURL)
		if abs == "" {
			continue
		}
		p, ok := c.platformOf(abs, l.Text)
		if !ok {
			continue
		}
		if _, taken := out[p]; taken {
			continue
		}
		if c.IsProfileURL(abs) {
			out[p] = abs
		}
	}
	return out
}

// IsProfileURL reports whether u looks like a specific business profile
// rather than a platform home, account or legal page.
func (c *SocialClassifier) IsProfileURL(u string) bool {
	lower := strings.ToLower(strings.TrimSpace(u))
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	if c.isGeneric(lower) {
		return false
	}
	if len(lower) < MinProfileURLLength {
		return false
	}
	if len(lower) < StrictProfileURLLength && !containsAny(lower, c.indicators) {
		return false
	}
	return true
}

func (c *SocialClassifier) isGeneric(lower string) bool {
	if genericBarePattern.MatchString(lower) || genericSegmentPattern.MatchString(lower) {
		return true
	}
	loc := genericHostPattern.FindStringIndex(lower)
	if loc == nil {
		return false
	}
	path := strings.TrimPrefix(lower[loc[1]:], "/")
	for _, g := range c.generic {
		if strings.HasPrefix(path, g) {
			return true
		}
	}
	return false
}

// platformOf matches by host first and falls back to the anchor text.
func (c *SocialClassifier) platformOf(abs, text string) (Platform, bool) {
	if u, err := url.Parse(abs); err == nil {
		host := strings.ToLower(u.Hostname())
		for _, r := range c.rules {
			for _, h := range r.Hosts {
				if host == h || strings.HasSuffix(host, "."+h) {
					return r.Platform, true
				}
			}
		}
	}
	text = strings.ToLower(text)
	if text == "" {
		return "", false
	}
	for _, r := range c.rules {
		if containsAny(text, r.Aliases) {
			return r.Platform, true
		}
	}
	return "", false
}

// Normalize makes href absolute: protocol-relative becomes https, a
// root-relative path is resolved against base and a bare host gets an
// https:// prefix. Non-web schemes (mailto, tel, javascript) yield "".
func Normalize(href, base string) string {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return ""
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		b, err := url.Parse(base)
		if err != nil || b.Host == "" {
			return ""
		}
		ref, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return b.ResolveReference(ref).String()
	}
	if u, err := url.Parse(href); err == nil && u.Scheme != "" && u.Opaque != "" {
		return ""
	}
	if i := strings.Index(lower, ":"); i >= 0 && !strings.Contains(lower[:i], ".") {
		return ""
	}
	return "https://" + href
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

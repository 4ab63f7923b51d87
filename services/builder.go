package services

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"maps-scraper/extract"
	"maps-scraper/models"
	"maps-scraper/utils"
)

const (
	maxNameLength     = 100
	maxAddressLength  = 200
	maxCategoryLength = 50
	minQualityScore   = 2
	nameEchoThreshold = 0.8
	mapsBaseURL       = "https://www.google.com/maps"
)

// Builder turns RawListings into validated Business records.
type Builder struct {
	classifier      *extract.Classifier
	phones          *extract.PhoneExtractor
	urls            *extract.URLExtractor
	emails          *extract.EmailValidator
	socials         *extract.SocialClassifier
	defaultCategory string
	logger          *utils.Logger
}

// NewBuilder creates a Builder. The email validator and social classifier are
// shared with the contact enricher.
func NewBuilder(defaultCategory string, emails *extract.EmailValidator, socials *extract.SocialClassifier, logger *utils.Logger) *Builder {
	return &Builder{
		classifier:      extract.NewClassifier(),
		phones:          extract.NewPhoneExtractor(),
		urls:            extract.NewURLExtractor(),
		emails:          emails,
		socials:         socials,
		defaultCategory: defaultCategory,
		logger:          logger,
	}
}

// BuildAll builds every listing and returns the accepted records in input
// order.
func (b *Builder) BuildAll(raw []*models.RawListing, prov models.Provenance) []*models.Business {
	result := make([]*models.Business, 0, len(raw))
	for _, r := range raw {
		if biz, ok := b.Build(r, prov); ok {
			result = append(result, biz)
		}
	}
	b.logger.Info("[builder] Built %d → %d businesses (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// Build classifies one listing and returns the record, or false when the
// listing does not carry enough data to be useful.
func (b *Builder) Build(l *models.RawListing, prov models.Provenance) (*models.Business, bool) {
	lines := splitLines(l.Text)

	name := extract.CollapseSpace(l.DOMName)
	if name == "" && len(lines) > 0 {
		name = extract.CollapseSpace(lines[0])
	}
	name = truncateRunes(name, maxNameLength)
	if utf8.RuneCountInString(name) <= 2 {
		b.logger.Debug("[builder] Dropping listing %d: no usable name", l.Index)
		return nil, false
	}

	rating, _ := extract.ParseRating(l.DOMRating)
	reviews, _ := extract.ParseReviewCount(l.DOMReviewCount)
	if reviews == "" {
		reviews = extract.Digits(l.DOMReviewCount)
	}

	var addresses, categories []string
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if extract.IsRatingLine(line) {
			if rating == "" {
				rating, _ = extract.ParseRating(line)
			}
			if reviews == "" {
				reviews, _ = extract.ParseReviewCount(line)
			}
			continue
		}
		if b.classifier.IsReviewLine(line) {
			continue
		}
		switch b.classifier.Classify(line, name) {
		case extract.KindAddress:
			addresses = append(addresses, line)
		case extract.KindCategory:
			categories = append(categories, line)
		}
	}

	for _, a := range append(append([]string{}, l.DOMAddresses...), l.DetailAddress) {
		lower := strings.ToLower(a)
		if strings.TrimSpace(a) == "" || strings.Contains(lower, "hour") || strings.Contains(lower, "star") {
			continue
		}
		if !b.classifier.IsReviewLine(a) {
			addresses = append(addresses, a)
		}
	}
	for _, c := range l.DOMCategories {
		if strings.TrimSpace(c) != "" && !b.classifier.IsReviewLine(c) {
			categories = append(categories, c)
		}
	}

	biz := &models.Business{
		Name:        name,
		Rating:      rating,
		ReviewCount: reviews,
		Address:     b.cleanAddress(longest(addresses), name),
		Category:    b.cleanCategory(first(categories), name),
		Phone:       b.phone(l),
		Website:     b.website(l),
		SearchTerm:  prov.SearchTerm,
		Area:        prov.Area,
		Coordinates: prov.Coordinates,
		ScrapedDate: prov.ScrapedDate,
	}

	if score := qualityScore(biz); score < minQualityScore {
		b.logger.Debug("[builder] Dropping %q: quality score %d", name, score)
		return nil, false
	}
	if biz.Address == "" && biz.Phone == "" {
		b.logger.Debug("[builder] Dropping %q: neither address nor phone", name)
		return nil, false
	}
	return biz, true
}

// PanelContacts extracts email and social hints from the listing's detail
// panel. They are kept apart from the record so the contact enricher stays
// the owner of those fields.
func (b *Builder) PanelContacts(l *models.RawListing) models.Contacts {
	c := b.socials.Extract(l.DetailLinks, mapsBaseURL).Contacts()
	c.Email = b.emails.Clean(l.DetailEmail)
	if c.Email == "" {
		for _, link := range l.DetailLinks {
			if strings.HasPrefix(strings.ToLower(link.Href), "mailto:") {
				if e := b.emails.Clean(link.Href); e != "" {
					c.Email = e
					break
				}
			}
		}
	}
	return c
}

func (b *Builder) phone(l *models.RawListing) string {
	if p := b.phones.First(l.Text); p != "" {
		return p
	}
	if strings.TrimSpace(l.HTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(l.HTML))
	if err != nil {
		return ""
	}
	return b.phones.First(doc.Text())
}

func (b *Builder) website(l *models.RawListing) string {
	if w := b.urls.Clean(l.Website); w != "" {
		return w
	}
	if w := b.urls.Clean(b.urls.First(l.Text)); w != "" {
		return w
	}
	return b.urls.Clean(b.urls.FromHTML(l.HTML))
}

// cleanAddress removes category boilerplate and name echoes and bounds the
// length.
func (b *Builder) cleanAddress(raw, name string) string {
	a := extract.CollapseSpace(raw)
	if utf8.RuneCountInString(a) < 5 || extract.SimilarFold(a, name) >= nameEchoThreshold {
		return ""
	}
	a = extract.CollapseSpace(extract.StripCategoryPrefix(a))
	a = truncateRunes(a, maxAddressLength)
	if utf8.RuneCountInString(a) <= 10 || extract.SimilarFold(a, name) >= nameEchoThreshold {
		return ""
	}
	return a
}

// cleanCategory prefers a known category phrase, title-cased, and otherwise
// keeps the first "·" segment. A category that echoes the name is replaced by
// the default, or dropped when the default echoes it too.
func (b *Builder) cleanCategory(raw, name string) string {
	c := extract.CollapseSpace(raw)
	if m := extract.KnownCategoryPattern.FindString(c); m != "" {
		c = cases.Title(language.English).String(strings.ToLower(m))
	} else {
		if i := strings.IndexAny(c, "·•"); i >= 0 {
			c = c[:i]
		}
		c = truncateRunes(extract.CollapseSpace(extract.StripCategoryPrefix(c)), maxCategoryLength)
	}

	for _, candidate := range []string{c, b.defaultCategory} {
		if candidate != "" && extract.SimilarFold(candidate, name) < nameEchoThreshold {
			return candidate
		}
	}
	return ""
}

func qualityScore(biz *models.Business) int {
	score := 0
	for _, f := range []string{biz.Name, biz.Phone, biz.Address, biz.Website, biz.Rating} {
		if f != "" {
			score++
		}
	}
	return score
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func longest(candidates []string) string {
	best, bestLen := "", 0
	for _, c := range candidates {
		if n := utf8.RuneCountInString(strings.TrimSpace(c)); n > bestLen {
			best, bestLen = c, n
		}
	}
	return best
}

func first(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}

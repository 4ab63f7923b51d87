package models

// Business is one extracted listing. Every field is always serialized; an
// empty string means unknown.
type Business struct {
	Name        string `json:"name"`
	Rating      string `json:"rating"`
	ReviewCount string `json:"review_count"`
	Address     string `json:"address"`
	Category    string `json:"category"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`

	// Owned by the contact enricher.
	Email     string `json:"email"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
	WhatsApp  string `json:"whatsapp"`

	SearchTerm  string `json:"search_term"`
	Area        string `json:"area"`
	Coordinates string `json:"coordinates"`
	ScrapedDate string `json:"scraped_date"`
}

// Contacts is the enrichment payload for a single business.
type Contacts struct {
	Email     string `json:"email"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
	WhatsApp  string `json:"whatsapp"`
}

// HasAny reports whether at least one field is set.
func (c Contacts) HasAny() bool {
	return c.Email != "" || c.HasSocial()
}

// HasSocial reports whether at least one social link is set.
func (c Contacts) HasSocial() bool {
	return c.Facebook != "" || c.Instagram != "" || c.Twitter != "" ||
		c.LinkedIn != "" || c.YouTube != "" || c.WhatsApp != ""
}

// SocialCount returns the number of social links set.
func (c Contacts) SocialCount() int {
	n := 0
	for _, v := range []string{c.Facebook, c.Instagram, c.Twitter, c.LinkedIn, c.YouTube, c.WhatsApp} {
		if v != "" {
			n++
		}
	}
	return n
}

// FillGaps copies fields from other into c only where c is empty.
func (c *Contacts) FillGaps(other Contacts) {
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	fill(&c.Email, other.Email)
	fill(&c.Facebook, other.Facebook)
	fill(&c.Instagram, other.Instagram)
	fill(&c.Twitter, other.Twitter)
	fill(&c.LinkedIn, other.LinkedIn)
	fill(&c.YouTube, other.YouTube)
	fill(&c.WhatsApp, other.WhatsApp)
}

// Contacts returns the contact fields currently set on b.
func (b *Business) Contacts() Contacts {
	return Contacts{
		Email:     b.Email,
		Facebook:  b.Facebook,
		Instagram: b.Instagram,
		Twitter:   b.Twitter,
		LinkedIn:  b.LinkedIn,
		YouTube:   b.YouTube,
		WhatsApp:  b.WhatsApp,
	}
}

// MergeContacts fills empty contact fields of b from c. Fields that are
// already set are never overwritten or cleared.
func (b *Business) MergeContacts(c Contacts) {
	cur := b.Contacts()
	cur.FillGaps(c)
	b.Email = cur.Email
	b.Facebook = cur.Facebook
	b.Instagram = cur.Instagram
	b.Twitter = cur.Twitter
	b.LinkedIn = cur.LinkedIn
	b.YouTube = cur.YouTube
	b.WhatsApp = cur.WhatsApp
}

// ScrapeRequest is the input of a single-location scrape.
type ScrapeRequest struct {
	SearchTerm string  `json:"search_term"`
	AreaName   string  `json:"area_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RadiusKm   float64 `json:"radius_km"`
	MaxResults int     `json:"max_results"`
}

// ScrapeResult is the output of a single-location scrape.
type ScrapeResult struct {
	Businesses  []*Business `json:"businesses"`
	TotalFound  int         `json:"total_found"`
	SearchTerm  string      `json:"search_term"`
	Area        string      `json:"area"`
	Coordinates string      `json:"coordinates"`
	ScrapedAt   string      `json:"scraped_at"`
}

// ScrapeOutcome pairs a scrape result with the contact hints read from each
// listing's detail panel, keyed by business name. The hints only fill gaps
// left after website enrichment.
type ScrapeOutcome struct {
	Result        *ScrapeResult
	PanelContacts map[string]Contacts
}

// InsightReport summarises field coverage over a set of businesses.
type InsightReport struct {
	TotalBusinesses int
	WithPhone       int
	WithWebsite     int
	WithAddress     int
	WithEmail       int
	WithSocial      int
	AverageRating   float64
	TopRated        []*Business
	ByCategory      map[string]int
}

package extract

import "regexp"

// Decision tables used by the extractors. They are package-level so tests
// (and callers building custom extractors) can enumerate and extend them.

// AddressKeywords score a line as address-like; each keyword contained in the
// lowercased line counts once.
var AddressKeywords = []string{
	"street", "road", "block", "phase", "sector", "avenue", "colony",
	"extension", "market", "plaza", "building", "area", "town", "plot",
	"lane", "blvd", "boulevard", "main", "mall", "center", "square",
	"park", "garden", "society", "scheme", "housing", "commercial",
}

// CategoryKeywords score a line as a business category.
var CategoryKeywords = []string{
	"agency", "service", "company", "store", "shop", "center", "rental",
	"tour", "office", "business", "enterprise", "corporation", "firm",
	"services", "solutions", "group", "associates", "consultancy",
}

// ReviewKeywords mark testimonial-style lines, matched as whole words. "service" is
// absent: it is category vocabulary.
var ReviewKeywords = []string{
	"clean", "well-maintained", "exceeded my expectations", "recommend", "experience",
	"driver", "comfortable", "excellent", "friendly", "punctual", "satisfied", "thank you", "amazing",
	"best", "worst", "awesome", "great", "bad", "good", "helpful", "support", "customer", "review", "testimonial",
}

// StopWords is the English stop-word list used by the review heuristic.
var StopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {}, "of": {}, "at": {},
	"by": {}, "for": {}, "with": {}, "about": {}, "to": {}, "from": {}, "in": {}, "on": {},
	"is": {}, "was": {}, "were": {}, "be": {}, "been": {}, "are": {}, "am": {}, "i": {}, "we": {},
	"you": {}, "he": {}, "she": {}, "it": {}, "they": {}, "my": {}, "our": {}, "your": {}, "their": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "very": {}, "so": {}, "too": {}, "not": {},
	"no": {}, "had": {}, "has": {}, "have": {}, "did": {}, "do": {}, "does": {}, "will": {}, "would": {},
	"as": {}, "than": {}, "then": {}, "there": {}, "here": {}, "all": {}, "just": {}, "me": {}, "us": {},
	"them": {}, "its": {}, "what": {}, "which": {}, "who": {}, "when": {}, "where": {},
}

// ReviewSuffixes are adjective-like word endings; more than one such word in
// a line marks it as a review.
var ReviewSuffixes = []string{"ed", "ful", "ive"}

var (
	// ratingLinePatterns recognise a rating/review-count line such as
	// "4.5(120)", "4.8 stars", "4.2 ★★★★" or "312 reviews".
	ratingLinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*[1-5](?:[.,]\d{1,2})?\s*(?:stars?|★+|⭐+)?\s*(?:\(\s*\d[\d,.]*[kK]?\s*\))?\s*(?:$|[·•|])`),
		regexp.MustCompile(`(?i)\b\d[\d,]*\s+(?:reviews?|ratings?)\b`),
		regexp.MustCompile(`(?i)\b[1-5](?:\.\d{1,2})?\s*(?:stars?|★|⭐)`),
	}

	// addressStructurePattern finds plot/block codes, "#12", "12-" or
	// "12," separators and plus codes.
	addressStructurePattern = regexp.MustCompile(`(?i)[a-z]\d+[a-z]*[+\-]?\d*[a-z]*|#\s*\w+|\d+[a-z]?\s*[,\-]\s*|plot\s*\d+|block\s*[a-z]`)

	// categoryPhrasePattern finds explicit category phrases.
	categoryPhrasePattern = regexp.MustCompile(`car\s+rental|rental\s+car|agency|service|company|tour`)

	// ratingValuePattern and reviewCountPatterns pull numbers out of rating lines.
	ratingValuePattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	reviewCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\((\d{1,7})\)`),
		regexp.MustCompile(`(?i)(\d{1,7})\s*reviews?`),
		regexp.MustCompile(`(?i)(\d{1,7})\s*ratings?`),
	}
)

// PhonePatterns are tried in order; all matches of the first pattern come
// before those of the second, and so on.
var PhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+92[\s\-]?\d{3}[\s\-]?\d{7}`),
	regexp.MustCompile(`\d{4}[\s\-]?\d{7}`),
	regexp.MustCompile(`\+92[\s\-]?\d{2}[\s\-]?\d{8}`),
	regexp.MustCompile(`\d{3}[\s\-]?\d{7}`),
	regexp.MustCompile(`\+?\d{2,4}[\s\-]?\d{3}[\s\-]?\d{4,7}`),
}

// MinPhoneDigits is the smallest digit count accepted as a phone number.
const MinPhoneDigits = 7

// WebsitePatterns find candidate websites in free text, in priority order.
var WebsitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[\w.\-]+(?:\.[a-z]{2,})+(?:/[\w.\-]*)*`),
	regexp.MustCompile(`(?i)www\.[\w.\-]+(?:\.[a-z]{2,})+(?:/[\w.\-]*)*`),
	regexp.MustCompile(`(?i)[\w.\-]+\.(?:com|net|org|pk|co\.uk|info|biz)(?:/[\w.\-]*)*`),
}

// WebsiteDenyTokens reject a website candidate when contained in it.
var WebsiteDenyTokens = []string{"google.com", "maps.google.com", "facebook.com", "instagram.com"}

// EmailPattern finds email candidates in page text.
var EmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// EmailDenyDomains are generic, placeholder and free-mail domains. Business
// contact addresses are expected to be on the business's own domain.
var EmailDenyDomains = map[string]struct{}{
	"example.com": {}, "test.com": {}, "google.com": {}, "gmail.com": {},
	"yahoo.com": {}, "hotmail.com": {}, "outlook.com": {}, "live.com": {},
	"domain.com": {}, "sample.com": {}, "demo.com": {}, "placeholder.com": {},
}

// EmailDenyPrefixes reject an address whose lowercased form starts with one
// of them.
var EmailDenyPrefixes = []string{"admin@", "test@", "info@example", "contact@example"}

// Platform names a social network.
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	LinkedIn  Platform = "linkedin"
	YouTube   Platform = "youtube"
	WhatsApp  Platform = "whatsapp"
)

// PlatformRule maps a platform to the hosts and anchor-text aliases that
// identify it.
type PlatformRule struct {
	Platform Platform
	Hosts    []string
	Aliases  []string
}

// PlatformRules are checked in order; a link belongs to the first matching
// platform.
var PlatformRules = []PlatformRule{
	{Platform: Facebook, Hosts: []string{"facebook.com", "fb.com"}, Aliases: []string{"facebook"}},
	{Platform: Instagram, Hosts: []string{"instagram.com", "ig.com"}, Aliases: []string{"instagram"}},
	{Platform: Twitter, Hosts: []string{"twitter.com", "x.com"}, Aliases: []string{"twitter"}},
	{Platform: LinkedIn, Hosts: []string{"linkedin.com"}, Aliases: []string{"linkedin"}},
	{Platform: YouTube, Hosts: []string{"youtube.com", "youtu.be"}, Aliases: []string{"youtube"}},
	{Platform: WhatsApp, Hosts: []string{"wa.me", "whatsapp.com"}, Aliases: []string{"whatsapp"}},
}

// GenericPathPrefixes are platform paths that never identify a business
// profile (legal pages, account flows, feeds, share widgets).
var GenericPathPrefixes = []string{
	"share/", "profile.php?id=", "pages/", "groups/", "events/", "help/", "about/",
	"privacy/", "terms/", "contact/", "support/", "login", "signup", "forgot-password",
	"security", "settings", "ads/", "business/", "developers/", "careers/", "press/",
	"investors/", "legal/", "cookies/", "accessibility/", "community/", "partners/",
	"creators/", "gaming/", "watch/", "videos/", "live/", "trending/", "subscriptions/",
	"playlist/", "channel/", "user/", "@",
}

var (
	genericHostPattern    = regexp.MustCompile(`^https?://(?:www\.)?(?:facebook|instagram|twitter|linkedin|youtube)\.com`)
	genericBarePattern    = regexp.MustCompile(`^https?://(?:www\.)?(?:facebook|instagram|twitter|linkedin|youtube)\.com/?\s*$`)
	genericSegmentPattern = regexp.MustCompile(`^https?://(?:www\.)?(?:facebook|instagram|twitter|linkedin|youtube)\.com/[a-z0-9]/`)
)

// MinProfileURLLength rejects shorter social URLs outright.
const MinProfileURLLength = 30

// StrictProfileURLLength: shorter URLs need a business indicator.
const StrictProfileURLLength = 40

// BusinessIndicators relax the strict length floor for social URLs.
var BusinessIndicators = []string{
	"company", "business", "official", "page", "profile",
	"rent", "car", "tours", "travel", "service", "agency",
	"rental", "transport", "cab", "taxi", "drive", "auto",
}

// ContactKeywords select candidate contact/about pages on a website.
var ContactKeywords = []string{
	"contact", "about", "info", "information", "reach", "connect",
	"support", "help", "team", "staff", "people", "company",
	"business", "services", "location", "address", "phone",
	"email", "social", "media", "follow",
}

// AggregatorHosts are never treated as a business's own website.
var AggregatorHosts = []string{
	"google.com", "maps.google.com", "facebook.com", "instagram.com",
	"twitter.com", "linkedin.com", "youtube.com", "example.com",
	"test.com", "localhost", "127.0.0.1",
}

var (
	// categoryBoilerplatePattern strips a category prefix glued to an
	// address by the map UI ("Car rental agency · 12 Main Rd").
	categoryBoilerplatePattern = regexp.MustCompile(`(?i)^(?:car rental agency|agency|service|company)\s*[·•]\s*`)

	// KnownCategoryPattern picks a canonical category out of a longer line.
	KnownCategoryPattern = regexp.MustCompile(`(?i)(car rental agency|rental agency|agency|service|company|store|shop|center|rental|tour|office)`)

	phoneNoisePattern = regexp.MustCompile(`[^\d+\-\s()]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

package models

// Link is one hyperlink as seen on a page: the raw href and its anchor text.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// RawListing holds what the browser collected for one map listing before any
// classification. Text is the card's rendered innerText and HTML its
// outerHTML; the DOM* fields are values picked by selectors and are only
// candidates.
type RawListing struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	HTML  string `json:"html"`

	DOMName        string   `json:"name"`
	DOMRating      string   `json:"rating"`
	DOMReviewCount string   `json:"reviewCount"`
	DOMAddresses   []string `json:"addresses"`
	DOMCategories  []string `json:"categories"`

	// Filled from the detail panel after clicking into the listing.
	Website       string `json:"website"`
	DetailAddress string `json:"detailAddress"`
	DetailEmail   string `json:"detailEmail"`
	DetailLinks   []Link `json:"detailLinks"`
}

// Provenance describes the search a listing came from.
type Provenance struct {
	SearchTerm  string
	Area        string
	Coordinates string
	ScrapedDate string
}

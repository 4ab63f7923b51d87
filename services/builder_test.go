package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"maps-scraper/extract"
	"maps-scraper/models"
	"maps-scraper/utils"
)

func newTestBuilder() *Builder {
	return NewBuilder("Car Rental Agency", extract.NewEmailValidator(), extract.NewSocialClassifier(), utils.NewNopLogger())
}

var testProvenance = models.Provenance{
	SearchTerm:  "car rental",
	Area:        "DHA Phase 5",
	Coordinates: "31.4704,74.4136",
	ScrapedDate: "2026-10-15 10:00:00",
}

func TestBuilderBuildsFullRecord(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{
		Text: "City Car Rentals\n4.5(120)\nCar rental agency\nPlot 23, Block B, DHA Phase 5, Lahore\n0300 1234567\nExcellent service, very punctual driver",
	}
	biz, ok := b.Build(l, testProvenance)
	if !ok {
		t.Fatal("expected listing to be accepted")
	}

	checks := []struct {
		field, got, want string
	}{
		{"name", biz.Name, "City Car Rentals"},
		{"rating", biz.Rating, "4.5"},
		{"review_count", biz.ReviewCount, "120"},
		{"category", biz.Category, "Car Rental Agency"},
		{"address", biz.Address, "Plot 23, Block B, DHA Phase 5, Lahore"},
		{"phone", biz.Phone, "0300 1234567"},
		{"area", biz.Area, "DHA Phase 5"},
		{"email", biz.Email, ""},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q; want %q", c.field, c.got, c.want)
		}
	}
}

func TestBuilderRejectsWithoutAddressOrPhone(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{
		Text:    "AutoDrive Rentals\n4.7(88)\nCar rental agency",
		Website: "https://autodrive.pk",
	}
	if _, ok := b.Build(l, testProvenance); ok {
		t.Error("listing with neither address nor phone should be rejected")
	}

	if _, ok := b.Build(&models.RawListing{Text: "AutoDrive Rentals"}, testProvenance); ok {
		t.Error("name-only listing should be rejected")
	}
}

func TestBuilderRejectsShortName(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{Text: "AB\n0300 1234567\nPlot 23, Block B, DHA Phase 5"}
	if _, ok := b.Build(l, testProvenance); ok {
		t.Error("two-character name should be rejected")
	}
}

func TestBuilderPrefersDOMValues(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{
		Text:           "AutoDrive Rentals Lahore Branch\n0321 7654321",
		DOMName:        "AutoDrive Rentals",
		DOMRating:      "4.6",
		DOMReviewCount: "(1,204)",
		DOMAddresses:   []string{"Open 24 hours", "12 Main Boulevard, Gulberg III, Lahore"},
		Website:        "autodrive.pk/",
	}
	biz, ok := b.Build(l, testProvenance)
	if !ok {
		t.Fatal("expected listing to be accepted")
	}
	if biz.Name != "AutoDrive Rentals" {
		t.Errorf("name = %q", biz.Name)
	}
	if biz.Rating != "4.6" || biz.ReviewCount != "1204" {
		t.Errorf("rating/reviews = %q/%q; want 4.6/1204", biz.Rating, biz.ReviewCount)
	}
	if biz.Address != "12 Main Boulevard, Gulberg III, Lahore" {
		t.Errorf("address = %q", biz.Address)
	}
	if biz.Website != "https://autodrive.pk" {
		t.Errorf("website = %q", biz.Website)
	}
	if biz.Category != "Car Rental Agency" {
		t.Errorf("category should fall back to default, got %q", biz.Category)
	}
}

func TestCleanAddress(t *testing.T) {
	b := newTestBuilder()
	tests := []struct {
		raw, name, want string
	}{
		{"City Car Rentals", "City Car Rentals", ""},
		{"Car rental agency · 12 Main Boulevard, Gulberg", "X Rentals", "12 Main Boulevard, Gulberg"},
		{"Lahore", "X Rentals", ""},
		{"abc", "X Rentals", ""},
	}
	for _, tt := range tests {
		if got := b.cleanAddress(tt.raw, tt.name); got != tt.want {
			t.Errorf("cleanAddress(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanCategory(t *testing.T) {
	b := newTestBuilder()
	tests := []struct {
		raw, name, want string
	}{
		{"", "City Car Rentals", "Car Rental Agency"},
		{"Car rental agency · Open 24 hours", "City Car Rentals", "Car Rental Agency"},
		{"Travel agency", "City Car Rentals", "Agency"},
		{"Bakery · $$", "City Car Rentals", "Bakery"},
		{"Bakery · $$", "Bakery", "Car Rental Agency"},
		{"Car rental agency", "Car Rental Agency", ""},
		{"", "Car Rental Agency", ""},
	}
	for _, tt := range tests {
		if got := b.cleanCategory(tt.raw, tt.name); got != tt.want {
			t.Errorf("cleanCategory(%q, %q) = %q; want %q", tt.raw, tt.name, got, tt.want)
		}
	}

	other := NewBuilder("Travel Agency", extract.NewEmailValidator(), extract.NewSocialClassifier(), utils.NewNopLogger())
	if got := other.cleanCategory("Car rental agency", "Car Rental Agency"); got != "Travel Agency" {
		t.Errorf("cleanCategory with echoing phrase = %q; want default %q", got, "Travel Agency")
	}
}

func TestBuilderCategoryNeverEchoesName(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{
		Text:          "Car Rental Agency\n0300 1234567\nPlot 23, Block B, DHA Phase 5, Lahore",
		DOMCategories: []string{"Car rental agency"},
	}
	biz, ok := b.Build(l, testProvenance)
	if !ok {
		t.Fatal("expected listing to be accepted")
	}
	if sim := extract.SimilarFold(biz.Category, biz.Name); biz.Category != "" && sim >= nameEchoThreshold {
		t.Errorf("category %q echoes name %q (similarity %.2f)", biz.Category, biz.Name, sim)
	}
	if biz.Address != "Plot 23, Block B, DHA Phase 5, Lahore" {
		t.Errorf("address = %q", biz.Address)
	}
}

func TestBuilderKeepsAbadCityAddresses(t *testing.T) {
	b := newTestBuilder()

	biz, ok := b.Build(&models.RawListing{
		Text: "Kohsar Car Rentals\n0300 1234567\nJinnah Avenue, Blue Area, Islamabad",
	}, testProvenance)
	if !ok {
		t.Fatal("expected text listing to be accepted")
	}
	if biz.Address != "Jinnah Avenue, Blue Area, Islamabad" {
		t.Errorf("text address = %q", biz.Address)
	}

	biz, ok = b.Build(&models.RawListing{
		Text:         "Lyallpur Rent A Car\n0321 7654321",
		DOMAddresses: []string{"Susan Road, Madina Town, Faisalabad"},
	}, testProvenance)
	if !ok {
		t.Fatal("expected DOM listing to be accepted")
	}
	if biz.Address != "Susan Road, Madina Town, Faisalabad" {
		t.Errorf("DOM address = %q", biz.Address)
	}
}

func TestBuilderTruncatesDOMName(t *testing.T) {
	b := newTestBuilder()
	long := strings.Repeat("Rentals ", 20)
	biz, ok := b.Build(&models.RawListing{
		Text:    "short\n0300 1234567\nPlot 23, Block B, DHA Phase 5, Lahore",
		DOMName: long,
	}, testProvenance)
	if !ok {
		t.Fatal("expected listing to be accepted")
	}
	if n := utf8.RuneCountInString(biz.Name); n > maxNameLength {
		t.Errorf("name has %d runes; want at most %d", n, maxNameLength)
	}
}

func TestPanelContacts(t *testing.T) {
	b := newTestBuilder()
	l := &models.RawListing{
		DetailLinks: []models.Link{
			{Href: "https://www.facebook.com/", Text: "Facebook"},
			{Href: "https://www.facebook.com/autodriverentalsofficial", Text: ""},
			{Href: "mailto:Bookings@AutoDrive.pk", Text: "Email"},
		},
	}
	c := b.PanelContacts(l)
	if c.Facebook != "https://www.facebook.com/autodriverentalsofficial" {
		t.Errorf("facebook = %q", c.Facebook)
	}
	if c.Email != "bookings@autodrive.pk" {
		t.Errorf("email = %q", c.Email)
	}
}

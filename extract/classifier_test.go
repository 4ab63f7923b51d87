package extract

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "xyz", 0},
		{"City Car Rentals", "City Car Rental", 0.9375},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %.4f; want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()
	const name = "City Car Rentals"

	tests := []struct {
		line string
		want LineKind
	}{
		{"City Car Rentals", KindDuplicate},
		{"city car rental", KindDuplicate},
		{"4.5(120)", KindRating},
		{"4.8 stars", KindRating},
		{"312 reviews", KindRating},
		{"Plot 23, Block B, DHA Phase 5", KindAddress},
		{"Main Boulevard Gulberg", KindAddress},
		{"Car rental agency", KindCategory},
		{"Tour operator", KindCategory},
		{"Open 24 hours", KindOther},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.line, name); got != tt.want {
			t.Errorf("Classify(%q) = %q; want %q", tt.line, got, tt.want)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := NewClassifier()
	line := "Plot 23, Block B, DHA Phase 5"
	first := c.Classify(line, "AutoDrive Rentals")
	for i := 0; i < 5; i++ {
		if got := c.Classify(line, "AutoDrive Rentals"); got != first {
			t.Fatalf("Classify changed result on call %d: %q vs %q", i, got, first)
		}
	}
}

func TestIsReviewLine(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		line string
		want bool
	}{
		{"Excellent service, very punctual driver", true},
		{"They arrived and I was thoroughly pleased and delighted", true},
		{"Car rental agency", false},
		{"Gulberg III, Lahore", false},
		{"Jinnah Avenue, Blue Area, Islamabad", false},
		{"Susan Road, Madina Town, Faisalabad", false},
		{"Saddar, Hyderabad", false},
		{"Highly recommended, bad experience", true},
		{"Friendly drivers", true},
	}
	for _, tt := range tests {
		if got := c.IsReviewLine(tt.line); got != tt.want {
			t.Errorf("IsReviewLine(%q) = %v; want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseRatingAndReviews(t *testing.T) {
	if got, ok := ParseRating("4.5(120)"); !ok || got != "4.5" {
		t.Errorf("ParseRating(4.5(120)) = %q, %v; want 4.5, true", got, ok)
	}
	if got, ok := ParseRating("5.0 stars"); !ok || got != "5" {
		t.Errorf("ParseRating(5.0 stars) = %q, %v; want 5, true", got, ok)
	}
	if _, ok := ParseRating("7 stars"); ok {
		t.Error("ParseRating accepted a value above 5")
	}
	if got, ok := ParseReviewCount("4.5(1,234)"); !ok || got != "1234" {
		t.Errorf("ParseReviewCount(4.5(1,234)) = %q, %v; want 1234, true", got, ok)
	}
	if got, ok := ParseReviewCount("88 reviews"); !ok || got != "88" {
		t.Errorf("ParseReviewCount(88 reviews) = %q, %v; want 88, true", got, ok)
	}
}

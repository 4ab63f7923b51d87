package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineKind is the classification of one line of listing text.
type LineKind string

const (
	KindDuplicate LineKind = "duplicate"
	KindRating    LineKind = "rating_review"
	KindAddress   LineKind = "address"
	KindCategory  LineKind = "category"
	KindOther     LineKind = "other"
)

// DuplicateThreshold: a line more similar than this to the business name is
// a repeat of the name.
const DuplicateThreshold = 0.8

// Classifier assigns a LineKind to lines of listing text.
type Classifier struct {
	addressKeywords  []string
	categoryKeywords []string
	reviewPattern    *regexp.Regexp
}

// NewClassifier returns a Classifier using the package keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		addressKeywords:  AddressKeywords,
		categoryKeywords: CategoryKeywords,
		reviewPattern:    wordPattern(ReviewKeywords),
	}
}

// Classify returns the kind of line relative to the business name. Checks
// run in a fixed order and the first that matches wins.
func (c *Classifier) Classify(line, name string) LineKind {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	if name != "" && SimilarFold(line, name) > DuplicateThreshold {
		return KindDuplicate
	}
	if IsRatingLine(line) {
		return KindRating
	}
	addrScore := countContained(lower, c.addressKeywords)
	catScore := countContained(lower, c.categoryKeywords)
	structural := addressStructurePattern.MatchString(line)
	n := utf8.RuneCountInString(line)

	switch {
	case addrScore > catScore && (structural || n > 15):
		return KindAddress
	case catScore > 0 || categoryPhrasePattern.MatchString(lower):
		return KindCategory
	case structural && n > 10:
		return KindAddress
	}
	return KindOther
}

// IsReviewLine reports whether line reads like a customer testimonial rather
// than listing data.
func (c *Classifier) IsReviewLine(line string) bool {
	lower := strings.ToLower(line)
	if c.reviewPattern.MatchString(lower) {
		return true
	}

	words := strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) })
	adjectives := 0
	for _, w := range words {
		if _, stop := StopWords[w]; stop || len(w) < 4 {
			continue
		}
		for _, suf := range ReviewSuffixes {
			if strings.HasSuffix(w, suf) {
				adjectives++
				break
			}
		}
	}
	return adjectives > 1
}

// IsRatingLine reports whether line carries a star rating or review count.
func IsRatingLine(line string) bool {
	for _, re := range ratingLinePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ParseRating returns the first number in line when it lies in [1,5],
// formatted without trailing zeros.
func ParseRating(line string) (string, bool) {
	m := ratingValuePattern.FindStringSubmatch(strings.ReplaceAll(line, ",", "."))
	if m == nil {
		return "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 1 || v > 5 {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

// ParseReviewCount returns the review count in line, commas removed.
func ParseReviewCount(line string) (string, bool) {
	clean := strings.ReplaceAll(line, ",", "")
	for _, re := range reviewCountPatterns {
		if m := re.FindStringSubmatch(clean); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return strconv.Itoa(n), true
		}
	}
	return "", false
}

// wordPattern matches any of keywords as a whole word, allowing a plural or
// verb ending ("drivers", "recommended"). "bad" does not match "Islamabad".
func wordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)(?:s|es|ed|ly|ing)?\b`)
}

func countContained(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

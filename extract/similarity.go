package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a normalised edit-distance ratio in [0,1]:
// 1 - distance/max(len(a), len(b)), counted in runes. Two empty strings are
// identical.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// SimilarFold is Similarity over trimmed, lowercased input.
func SimilarFold(a, b string) float64 {
	return Similarity(strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b)))
}

// CollapseSpace trims s and collapses inner whitespace runs to one space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Digits returns only the decimal digits of s.
func Digits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}

// StripCategoryPrefix removes a leading "Car rental agency ·" style label
// the map UI glues onto addresses.
func StripCategoryPrefix(s string) string {
	return categoryBoilerplatePattern.ReplaceAllString(s, "")
}

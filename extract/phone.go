package extract

import (
	"regexp"
	"strings"
)

// PhoneExtractor finds phone numbers in free text.
type PhoneExtractor struct {
	patterns  []*regexp.Regexp
	minDigits int
}

// NewPhoneExtractor returns an extractor over PhonePatterns.
func NewPhoneExtractor() *PhoneExtractor {
	return &PhoneExtractor{patterns: PhonePatterns, minDigits: MinPhoneDigits}
}

// Extract returns every cleaned phone number in text, pattern by pattern,
// without repeats.
func (p *PhoneExtractor) Extract(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, re := range p.patterns {
		for _, raw := range re.FindAllString(text, -1) {
			phone := p.Clean(raw)
			if phone == "" {
				continue
			}
			if _, dup := seen[phone]; dup {
				continue
			}
			seen[phone] = struct{}{}
			out = append(out, phone)
		}
	}
	return out
}

// First returns the first phone number in text, or "".
func (p *PhoneExtractor) First(text string) string {
	if all := p.Extract(text); len(all) > 0 {
		return all[0]
	}
	return ""
}

// Clean strips everything but digits, "+", "-", spaces and parentheses and
// returns "" when fewer than the minimum digits remain.
func (p *PhoneExtractor) Clean(raw string) string {
	phone := CollapseSpace(phoneNoisePattern.ReplaceAllString(raw, ""))
	phone = strings.Trim(phone, " -")
	if len(Digits(phone)) < p.minDigits {
		return ""
	}
	return phone
}

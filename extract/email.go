package extract

import (
	"net/url"
	"strings"

	emailaddress "github.com/mcnijman/go-emailaddress"
)

// EmailValidator finds and filters business contact addresses.
type EmailValidator struct {
	denyDomains  map[string]struct{}
	denyPrefixes []string
}

// NewEmailValidator returns a validator over EmailDenyDomains and
// EmailDenyPrefixes.
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{denyDomains: EmailDenyDomains, denyPrefixes: EmailDenyPrefixes}
}

// ExtractValid returns the valid addresses in text, lowercased, in order of
// first appearance.
func (v *EmailValidator) ExtractValid(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, addr := range emailaddress.Find([]byte(text), false) {
		email := strings.ToLower(addr.String())
		if _, dup := seen[email]; dup || !v.IsValid(email) {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}

// IsValid reports whether email is well-formed and not a placeholder,
// free-mail or administrative address.
func (v *EmailValidator) IsValid(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) <= 5 || !EmailPattern.MatchString(email) {
		return false
	}
	addr, err := emailaddress.Parse(email)
	if err != nil {
		return false
	}
	if _, denied := v.denyDomains[strings.ToLower(addr.Domain)]; denied {
		return false
	}
	for _, p := range v.denyPrefixes {
		if strings.HasPrefix(email, p) {
			return false
		}
	}
	return true
}

// Clean turns a mailto: href or a raw address into a bare lowercased address,
// returning "" when the result is not valid.
func (v *EmailValidator) Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(s), "mailto:") {
		s = s[len("mailto:"):]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if !v.IsValid(s) {
		return ""
	}
	return s
}

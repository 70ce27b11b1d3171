package utils

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Slugify lowercases the input and turns each whitespace run into a single dash.
// Distinct names can collide after normalisation; uniqueness is left to the store.
func Slugify(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	return whitespaceRegex.ReplaceAllString(slug, "-")
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizeEmail is used wherever an email is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching term as a literal substring.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

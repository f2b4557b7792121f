package database

import (
	"strings"
	"unicode"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a case-folded LIKE pattern matching s anywhere.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// SearchTerms splits a search parameter on whitespace and commas. Every
// term must match for a row to be returned.
func SearchTerms(s string) []string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// MatchesTerms reports whether every term occurs, case-insensitively, in
// at least one of fields. No terms matches everything.
func MatchesTerms(terms []string, fields ...string) bool {
	for _, term := range terms {
		term = strings.ToLower(term)
		found := false
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

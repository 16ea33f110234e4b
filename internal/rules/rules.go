// Package rules holds the sensitivity patterns that decide which mapping
// keys and string values get redacted. The default set is fixed and
// compiled once; engines receive a Set as a value, never reach into
// package state, so custom sets can be injected in tests.
package rules

import "regexp"

// Pattern is a single compiled sensitivity rule. A rule fires when its
// expression is found anywhere in the candidate text (substring search,
// not a full match); matching is case-insensitive.
type Pattern struct {
	ID string
	re *regexp.Regexp
}

// Matches reports whether the pattern fires on text.
func (p Pattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// Expr returns the pattern's regular expression source.
func (p Pattern) Expr() string {
	return p.re.String()
}

// Set is an ordered, immutable collection of patterns. The first pattern
// that fires wins; later patterns are not consulted for that candidate.
type Set []Pattern

// Match returns the ID of the first pattern that fires on text.
func (s Set) Match(text string) (string, bool) {
	for _, p := range s {
		if p.Matches(text) {
			return p.ID, true
		}
	}
	return "", false
}

// sensitiveNames are the key names treated as sensitive. Each name is
// matched bare (covers mapping keys and `name: value` shapes embedded in
// string values) and in its quoted JSON shape (`"name":`).
var sensitiveNames = []string{
	"password",
	"api_key",
	"secret",
	"token",
	"access_key",
	"credentials",
}

var defaultSet = compile(sensitiveNames)

func compile(names []string) Set {
	s := make(Set, 0, 2*len(names))
	for _, name := range names {
		s = append(s,
			Pattern{ID: name, re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name))},
			Pattern{ID: name + "_quoted", re: regexp.MustCompile(`(?i)"` + regexp.QuoteMeta(name) + `"\s*:`)},
		)
	}
	return s
}

// DefaultSet returns the built-in sensitivity rules. The returned slice is
// shared and read-only; it is safe for concurrent use across runs.
func DefaultSet() Set {
	return defaultSet
}

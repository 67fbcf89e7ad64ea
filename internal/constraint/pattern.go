// Package constraint projects parsed SDC-like constraint records onto the
// graph via the Field-Source Updater, always at Declared priority (spec
// §4.5).
package constraint

import (
	"regexp"
	"strings"
	"sync"
)

// patternCache compiles each distinct glob pattern exactly once, keyed by
// the raw pattern string (spec §9's "small compiled pattern cache keyed by
// the raw pattern string"), grounded on the sync.Map cache idiom used for
// render caching elsewhere in the corpus.
var patternCache sync.Map // map[string]*regexp.Regexp

// compile translates the SDC glob dialect (`*` matches any run, `?` matches
// exactly one character) into an anchored, full-match regular expression.
func compile(pattern string) *regexp.Regexp {
	if v, ok := patternCache.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}

	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re := regexp.MustCompile(b.String())
	patternCache.Store(pattern, re)
	return re
}

// Matches reports whether name matches the glob pattern, anchored full-match.
func Matches(pattern, name string) bool {
	return compile(pattern).MatchString(name)
}

// MatchesAny reports whether name matches any of patterns.
func MatchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if Matches(p, name) {
			return true
		}
	}
	return false
}

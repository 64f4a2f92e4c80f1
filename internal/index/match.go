package index

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"quicksearch/internal/config"
	"quicksearch/internal/domain"
)

// match is one entry accepted by a matcher
type match struct {
	entry domain.Entry
	index int // first matched rune offset in the name
}

// matcher selects entries whose name matches the query name
type matcher interface {
	match(name string, entries []domain.Entry) []match
}

func newMatcher(mode string) matcher {
	if mode == config.MatchFuzzy {
		return fuzzyMatcher{}
	}
	return substringMatcher{}
}

// substringMatcher keeps names containing the query, case-insensitively
type substringMatcher struct{}

func (substringMatcher) match(name string, entries []domain.Entry) []match {
	var out []match
	for _, e := range entries {
		if len(e.Name) < len(name) {
			continue
		}
		if i := strings.Index(strings.ToLower(e.Name), name); i >= 0 {
			out = append(out, match{entry: e, index: i})
		}
	}
	return out
}

// entrySource adapts entries to fuzzy.Source
type entrySource []domain.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// fuzzyMatcher keeps names containing the query characters in order
type fuzzyMatcher struct{}

func (fuzzyMatcher) match(name string, entries []domain.Entry) []match {
	found := fuzzy.FindFrom(name, entrySource(entries))
	out := make([]match, 0, len(found))
	for _, m := range found {
		first := 0
		if len(m.MatchedIndexes) > 0 {
			first = m.MatchedIndexes[0]
		}
		out = append(out, match{entry: entries[m.Index], index: first})
	}
	return out
}

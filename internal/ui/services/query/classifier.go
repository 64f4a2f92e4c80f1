// Package query classifies raw search-line text into plain searches,
// websites to open directly and bang shortcuts.
package query

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// websitePattern is the shape check only; the TLD is validated separately
var websitePattern = regexp.MustCompile(`^(https?://)?(?:[a-z0-9][a-z0-9-]*\.)+[a-z]+(?::[0-9]{1,5})?(?:/\S*)?$`)

// Classifier decides what a query is. It holds only immutable tables and is
// safe for concurrent use.
type Classifier struct {
	bangs *BangDirectory
	tlds  *TLDSet
}

// NewClassifier creates a classifier over the given tables
func NewClassifier(bangs *BangDirectory, tlds *TLDSet) *Classifier {
	return &Classifier{bangs: bangs, tlds: tlds}
}

// NewDefaultClassifier uses the built-in bang directory and TLD set,
// with extra bangs layered on top
func NewDefaultClassifier(extra []BangEntry) (*Classifier, error) {
	builtin, err := DefaultBangs()
	if err != nil {
		return nil, err
	}
	dir, err := NewBangDirectory(builtin, extra)
	if err != nil {
		return nil, err
	}
	return NewClassifier(dir, DefaultTLDs()), nil
}

// Bangs returns the bang directory
func (c *Classifier) Bangs() *BangDirectory {
	return c.bangs
}

// Classify returns the classification of raw. Bang wins over Website, which
// wins over Plain. It never fails: anything malformed is Plain.
func (c *Classifier) Classify(raw string) Classification {
	q := strings.TrimSpace(raw)
	if q == "" {
		return Classification{Kind: KindPlain}
	}

	if cl, ok := c.classifyBang(q); ok {
		return cl
	}

	if target, ok := c.websiteURL(q); ok {
		return Classification{Kind: KindWebsite, URL: target}
	}

	return Classification{Kind: KindPlain}
}

// SuggestBangs lists triggers matching a start-bang being typed, e.g. "!g" or "!g cats".
// Returns nil unless q starts with "!".
func (c *Classifier) SuggestBangs(raw string) []BangEntry {
	q := strings.TrimSpace(raw)
	if !strings.HasPrefix(q, "!") {
		return nil
	}
	return c.bangs.WithPrefix(startToken(q))
}

// classifyBang checks the end-bang first, then the start-bang. Bangs in the
// middle of the query are not considered.
func (c *Classifier) classifyBang(q string) (Classification, bool) {
	last := strings.LastIndexByte(q, '!')
	if last < 0 {
		return Classification{}, false
	}

	if entry, ok := c.bangs.Lookup(q[last+1:]); ok {
		return resolveBang(entry, q[:last]), true
	}

	if strings.HasPrefix(q, "!") {
		token := startToken(q)
		if entry, ok := c.bangs.Lookup(token); ok {
			return resolveBang(entry, q[1+len(token):]), true
		}
	}

	return Classification{}, false
}

// websiteURL returns the URL to open when q looks like a hostname with a known TLD
func (c *Classifier) websiteURL(q string) (string, bool) {
	lower := strings.ToLower(q)
	if !websitePattern.MatchString(lower) {
		return "", false
	}

	target := q
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		target = "https://" + q
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", false
	}
	host := u.Hostname()
	tld := host[strings.LastIndexByte(host, '.')+1:]
	if !c.tlds.Contains(tld) {
		return "", false
	}

	return target, true
}

func resolveBang(entry BangEntry, remainder string) Classification {
	return Classification{
		Kind:    KindBang,
		Service: entry.Service,
		URL:     entry.Resolve(EncodeComponent(strings.TrimSpace(remainder))),
	}
}

// startToken returns the text after a leading "!" up to the first whitespace
func startToken(q string) string {
	token := strings.TrimPrefix(q, "!")
	if i := strings.IndexFunc(token, unicode.IsSpace); i >= 0 {
		token = token[:i]
	}
	return token
}

// EncodeComponent escapes s for use inside a URL query value, spaces as %20
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

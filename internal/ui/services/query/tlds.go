package query

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"
)

//go:embed tlds.txt
var builtinTLDs []byte

// TLDSet is an immutable set of lower-cased top-level domains
type TLDSet struct {
	set map[string]struct{}
}

// NewTLDSet builds a set from a list of TLDs
func NewTLDSet(tlds []string) *TLDSet {
	s := &TLDSet{set: make(map[string]struct{}, len(tlds))}
	for _, tld := range tlds {
		tld = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tld)), ".")
		if tld != "" {
			s.set[tld] = struct{}{}
		}
	}
	return s
}

// ParseTLDs reads one TLD per line, ignoring blanks and # comments
func ParseTLDs(data []byte) []string {
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

var defaultTLDs = sync.OnceValue(func() *TLDSet {
	return NewTLDSet(ParseTLDs(builtinTLDs))
})

// DefaultTLDs returns the built-in TLD set
func DefaultTLDs() *TLDSet {
	return defaultTLDs()
}

// Contains reports whether tld is a known top-level domain
func (s *TLDSet) Contains(tld string) bool {
	if s == nil {
		return false
	}
	_, ok := s.set[strings.ToLower(tld)]
	return ok
}

// Len returns the number of TLDs in the set
func (s *TLDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.set)
}

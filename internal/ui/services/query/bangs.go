package query

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pelletier/go-toml/v2"
)

//go:embed bangs.toml
var builtinBangs []byte

// BangDirectory is an immutable trigger -> entry mapping keyed by lower-cased trigger
type BangDirectory struct {
	entries map[string]BangEntry
}

// NewBangDirectory builds a directory from one or more entry lists.
// Later lists override earlier ones on the same trigger.
func NewBangDirectory(lists ...[]BangEntry) (*BangDirectory, error) {
	d := &BangDirectory{entries: make(map[string]BangEntry)}
	for _, list := range lists {
		for _, entry := range list {
			if err := validateBang(entry); err != nil {
				return nil, err
			}
			entry.Trigger = strings.ToLower(entry.Trigger)
			d.entries[entry.Trigger] = entry
		}
	}
	return d, nil
}

// ParseBangs decodes a TOML document of [[bang]] tables
func ParseBangs(data []byte) ([]BangEntry, error) {
	var doc struct {
		Bang []BangEntry `toml:"bang"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse bang directory: %w", err)
	}
	return doc.Bang, nil
}

var defaultBangs = sync.OnceValues(func() ([]BangEntry, error) {
	return ParseBangs(builtinBangs)
})

// DefaultBangs returns the built-in bang list
func DefaultBangs() ([]BangEntry, error) {
	entries, err := defaultBangs()
	if err != nil {
		return nil, err
	}
	out := make([]BangEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Lookup finds the entry for a trigger, case-insensitively
func (d *BangDirectory) Lookup(trigger string) (BangEntry, bool) {
	if d == nil || trigger == "" {
		return BangEntry{}, false
	}
	entry, ok := d.entries[strings.ToLower(trigger)]
	return entry, ok
}

// Len returns the number of registered triggers
func (d *BangDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// WithPrefix returns entries whose trigger starts with prefix, sorted by trigger
func (d *BangDirectory) WithPrefix(prefix string) []BangEntry {
	if d == nil {
		return nil
	}
	prefix = strings.ToLower(prefix)
	out := make([]BangEntry, 0)
	for trigger, entry := range d.entries {
		if strings.HasPrefix(trigger, prefix) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Trigger < out[j].Trigger
	})
	return out
}

// Resolve substitutes an already encoded query into the entry's template
func (e BangEntry) Resolve(encoded string) string {
	return strings.ReplaceAll(e.URLTemplate, Placeholder, encoded)
}

func validateBang(entry BangEntry) error {
	if entry.Trigger == "" {
		return fmt.Errorf("bang entry for %q has an empty trigger", entry.Service)
	}
	if strings.ContainsFunc(entry.Trigger, func(r rune) bool { return r == '!' || unicode.IsSpace(r) }) {
		return fmt.Errorf("bang trigger %q must not contain '!' or whitespace", entry.Trigger)
	}
	if !strings.Contains(entry.URLTemplate, Placeholder) {
		return fmt.Errorf("bang %q url template is missing the %s placeholder", entry.Trigger, Placeholder)
	}
	return nil
}

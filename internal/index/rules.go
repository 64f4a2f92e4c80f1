package index

import (
	"fmt"
	"path/filepath"
	"regexp"

	"quicksearch/internal/config"
)

// Rules decide whether a directory is skipped during a walk.
// Directory paths are compared with a trailing separator.
type Rules struct {
	names map[string]bool
	paths map[string]bool
	regex []*regexp.Regexp
}

// CompileRules builds matchers from configured rules
func CompileRules(r config.Rules) (Rules, error) {
	rules := Rules{
		names: make(map[string]bool, len(r.Name)),
		paths: make(map[string]bool, len(r.Path)),
	}
	for _, name := range r.Name {
		rules.names[name] = true
	}
	for _, p := range r.Path {
		rules.paths[dirPath(p)] = true
	}
	for _, pattern := range r.Regex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("invalid rule regex %q: %w", pattern, err)
		}
		rules.regex = append(rules.regex, re)
	}
	return rules, nil
}

// Match reports whether the directory at path breaks one of the rules
func (r Rules) Match(path string) bool {
	path = dirPath(path)
	if r.paths[path] {
		return true
	}
	if r.names[filepath.Base(path)] {
		return true
	}
	for _, re := range r.regex {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Empty reports whether there are no rules at all
func (r Rules) Empty() bool {
	return len(r.names) == 0 && len(r.paths) == 0 && len(r.regex) == 0
}

// dirPath cleans p and appends the separator
func dirPath(p string) string {
	p = filepath.Clean(p)
	if p == string(filepath.Separator) {
		return p
	}
	return p + string(filepath.Separator)
}

package evaluator

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// urlPattern catches link drops, the most common spam shape.
var urlPattern = regexp.MustCompile(`(?i)\bhttps?://|\bwww\.[a-z0-9-]+\.`)

// defaultDenylist are keywords that short-circuit evaluation without a judge
// call. Matching is case-insensitive substring.
var defaultDenylist = []string{
	"buy now",
	"click here",
	"free money",
	"subscribe to my",
	"check out my channel",
	"promo code",
}

// PreFilter is the fast spam screen run before any judge call.
type PreFilter struct {
	denylist []string
	patterns []*regexp.Regexp
}

// DefaultPreFilter returns a PreFilter with the built-in URL pattern and
// keyword denylist.
func DefaultPreFilter() *PreFilter {
	return &PreFilter{
		denylist: defaultDenylist,
		patterns: []*regexp.Regexp{urlPattern},
	}
}

// denylistFile is the on-disk shape of a denylist override.
type denylistFile struct {
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`
}

// LoadPreFilter reads a yaml denylist file and returns a PreFilter combining
// it with the built-in URL pattern. Keywords match case-insensitively;
// patterns are Go regular expressions.
func LoadPreFilter(path string) (*PreFilter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read denylist: %w", err)
	}

	var file denylistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse denylist: %w", err)
	}

	f := &PreFilter{
		denylist: file.Keywords,
		patterns: []*regexp.Regexp{urlPattern},
	}
	for _, p := range file.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("denylist pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match reports whether text trips the filter, returning the matched keyword
// or pattern for the rationale.
func (f *PreFilter) Match(text string) (reason string, matched bool) {
	lower := strings.ToLower(text)
	for _, kw := range f.denylist {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return re.String(), true
		}
	}
	return "", false
}

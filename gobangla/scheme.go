package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"fmt"
	"sort"
	"sync"
)

// SchemeDetails of a scheme
type SchemeDetails struct {
	Identifier   string
	LangCode     string
	DisplayName  string
	Author       string
	CompiledDate string
	IsStable     bool
}

// Scheme is an immutable phonetic map with its metadata.
// Safe for concurrent use.
type Scheme struct {
	details  SchemeDetails
	mappings map[string]string

	// Longest key in characters. Whole-word keys make this go past
	// GOBANGLA_SEGMENT_MAX, segment scans never do.
	longestPattern int
}

// NewScheme makes a scheme from a copy of mappings
func NewScheme(details SchemeDetails, mappings map[string]string) (*Scheme, error) {
	scheme := &Scheme{
		details:  details,
		mappings: make(map[string]string, len(mappings)),
	}

	for pattern, value := range mappings {
		if pattern == "" || value == "" {
			return nil, fmt.Errorf("%q => %q: %w", pattern, value, ErrInvalidMapping)
		}

		scheme.mappings[pattern] = value

		if l := charCount(pattern); l > scheme.longestPattern {
			scheme.longestPattern = l
		}
	}

	return scheme, nil
}

var (
	defaultScheme     *Scheme
	defaultSchemeOnce sync.Once
)

// DefaultScheme the built-in bn-phonetic scheme. Built once per process.
func DefaultScheme() *Scheme {
	defaultSchemeOnce.Do(func() {
		var err error
		defaultScheme, err = NewScheme(SchemeDetails{
			Identifier:  DEFAULT_SCHEME_ID,
			LangCode:    "bn",
			DisplayName: "Bengali Phonetic",
			Author:      "gobangla",
			IsStable:    true,
		}, defaultSchemeMappings)

		if err != nil {
			// Only reachable if the built-in table is broken
			panic(err)
		}
	})
	return defaultScheme
}

// Lookup value of a pattern. Case sensitive.
func (scheme *Scheme) Lookup(pattern string) (string, bool) {
	value, ok := scheme.mappings[pattern]
	return value, ok
}

// Len number of mappings
func (scheme *Scheme) Len() int {
	return len(scheme.mappings)
}

// Patterns all patterns, sorted
func (scheme *Scheme) Patterns() []string {
	patterns := make([]string, 0, len(scheme.mappings))
	for pattern := range scheme.mappings {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	return patterns
}

// Details of the scheme
func (scheme *Scheme) Details() SchemeDetails {
	return scheme.details
}

// LongestPatternLength in characters
func (scheme *Scheme) LongestPatternLength() int {
	return scheme.longestPattern
}

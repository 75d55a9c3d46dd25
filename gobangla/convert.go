package gobangla

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsWordLevelMapping tells whether a mapping found for a whole lower-cased
// word replaces the word as is. Any mapping with more than one character on
// either side does. A single character mapping to a single character never
// does, even if it was meant to be a word.
func IsWordLevelMapping(key string, value string) bool {
	return charCount(key) > 1 || charCount(value) > 1
}

// Split input into alternating runs of non-space and space characters.
// Joining the result gives back input.
func splitWords(input string) []string {
	var (
		results []string
		start   int
		inSpace bool
	)

	for i, r := range input {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			inSpace = isSpace
			continue
		}
		if isSpace != inSpace {
			results = append(results, input[start:i])
			start = i
			inSpace = isSpace
		}
	}

	if start < len(input) {
		results = append(results, input[start:])
	}

	return results
}

func isSpaceRun(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsSpace(r)
}

// Convert transliterates input with the scheme of this engine.
// Never fails, characters with no mapping are kept as they are. So are
// bytes that are not valid UTF-8.
func (engine *Engine) Convert(input string) string {
	if input == "" {
		return ""
	}

	var (
		result strings.Builder
		lower  = cases.Lower(language.Und)
	)
	result.Grow(len(input) * 3)

	for _, token := range splitWords(input) {
		if isSpaceRun(token) {
			result.WriteString(token)
			continue
		}
		result.WriteString(engine.convertWord(token, lower))
	}

	return result.String()
}

func (engine *Engine) convertWord(word string, lower cases.Caser) string {
	lowerWord := lower.String(word)

	if value, ok := engine.scheme.Lookup(lowerWord); ok && IsWordLevelMapping(lowerWord, value) {
		if ce := engine.logger.Check(zap.DebugLevel, "whole word mapping"); ce != nil {
			ce.Write(zap.String("word", word), zap.String("value", value))
		}
		return value
	}

	var (
		out strings.Builder
		// Last character written to out
		lastChar string
	)

	maxLength := GOBANGLA_SEGMENT_MAX
	if l := engine.scheme.LongestPatternLength(); l < maxLength {
		maxLength = l
	}

	// Byte offsets of the next maxLength characters
	ends := make([]int, 0, maxLength)

	i := 0
	for i < len(word) {
		ends = ends[:0]
		for pos := i; pos < len(word) && len(ends) < maxLength; {
			_, size := utf8.DecodeRuneInString(word[pos:])
			pos += size
			ends = append(ends, pos)
		}

		matched := false

		// Longest first. "kh" should be খ and not ক + হ
		for length := len(ends); length > 0; length-- {
			segment := word[i:ends[length-1]]
			value, ok := engine.scheme.Lookup(segment)
			if !ok {
				continue
			}

			value = segmentValue(lastChar, value)
			out.WriteString(value)
			if value != "" {
				lastChar, _ = getLastCharacter(value)
			}

			if ce := engine.logger.Check(zap.DebugLevel, "segment"); ce != nil {
				ce.Write(zap.String("pattern", segment), zap.String("value", value))
			}

			i = ends[length-1]
			matched = true
			break
		}

		if !matched {
			// No matches, copy the bytes as they are and move on
			lastChar = word[i:ends[0]]
			out.WriteString(lastChar)
			i = ends[0]
		}
	}

	return out.String()
}

// Value to append for a matched segment given the last character made so
// far. A standalone vowel after a consonant becomes its Kar.
func segmentValue(lastChar string, value string) string {
	if !IsBanglaStandaloneVowel(value) {
		return value
	}

	if IsBanglaConsonant(lastChar) {
		kar, _ := KarOf(value)
		return kar
	}

	return value
}

// Convert transliterates input with the built-in scheme
func Convert(input string) string {
	return DefaultEngine().Convert(input)
}

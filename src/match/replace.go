package match

import (
	"regexp"
	"strings"
)

// Replacer substitutes matched texts in source.
//
// Every occurrence of each matched text is replaced, not only the one at
// the position where it was found.
type Replacer struct {
	// Find occurrences ignoring case. Scanner matches are lowercased,
	// so without folding they won't replace capitalized source text.
	FoldCase bool
}

// Replace substitutes every occurrence of each of matches in source
// with replacement(match). Longer matches are applied first.
func (r Replacer) Replace(source string, matches []string, replacement func(string) string) string {
	return r.ReplaceInOrder(source, sortedMatches(matches), replacement)
}

// ReplaceInOrder is like Replace, but applies matches in the given order.
// Repeated matches are applied once, at their first position.
func (r Replacer) ReplaceInOrder(source string, matches []string, replacement func(string) string) string {
	seen := make(Set, len(matches))

	result := source
	for _, str := range matches {
		if str == "" {
			continue
		}
		if _, ok := seen[str]; ok {
			continue
		}
		seen[str] = struct{}{}

		repl := replacement(str)
		if r.FoldCase {
			rx := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(str))
			result = rx.ReplaceAllLiteralString(result, repl)
		} else {
			result = strings.ReplaceAll(result, str, repl)
		}
	}

	return result
}

func sortedMatches(matches []string) []string {
	set := make(Set, len(matches))
	for _, str := range matches {
		set[str] = struct{}{}
	}
	return set.Sorted()
}

func literal(replacement string) func(string) string {
	return func(string) string {
		return replacement
	}
}

// ReplaceByEditDistance replaces substrings of source which are within
// maxDistance edits from search.
func (m Matcher) ReplaceByEditDistance(source, search, replacement string, maxDistance int) string {
	matches := m.FindByEditDistance(source, search, maxDistance)

	return Replacer{}.Replace(source, matches.Sorted(), literal(replacement))
}

// ReplaceBySimilarity replaces substrings of source which have similarity
// with search of at least minSimilarity.
func (m Matcher) ReplaceBySimilarity(source, search, replacement string, minSimilarity float64) (string, error) {
	matches, err := m.FindBySimilarity(source, search, minSimilarity)
	if err != nil {
		return "", err
	}

	return Replacer{}.Replace(source, matches.Sorted(), literal(replacement)), nil
}

// ReplaceWindowsByEditDistance replaces text of each window found by
// FindWindowsByEditDistance, best scored windows first. Windows overlap,
// so a window which no longer occurs after previous replacements is skipped.
func (m Matcher) ReplaceWindowsByEditDistance(
	text, phrase, replacement string, threshold float64, maxDistance int,
) string {
	windows := m.FindWindowsByEditDistance(text, phrase, threshold, maxDistance)

	var matches []string
	for _, window := range windows {
		matches = append(matches, window.MatchingText())
	}

	return Replacer{}.ReplaceInOrder(text, matches, literal(replacement))
}

var defaultMatcher Matcher

// Shortcuts for Matcher with DefaultMetric.

func FindByEditDistance(source, search string, maxDistance int) Set {
	return defaultMatcher.FindByEditDistance(source, search, maxDistance)
}

func FindBySimilarity(source, search string, minSimilarity float64) (Set, error) {
	return defaultMatcher.FindBySimilarity(source, search, minSimilarity)
}

func FindWindowsByEditDistance(text, phrase string, threshold float64, maxDistance int) []Window {
	return defaultMatcher.FindWindowsByEditDistance(text, phrase, threshold, maxDistance)
}

func ReplaceByEditDistance(source, search, replacement string, maxDistance int) string {
	return defaultMatcher.ReplaceByEditDistance(source, search, replacement, maxDistance)
}

func ReplaceBySimilarity(source, search, replacement string, minSimilarity float64) (string, error) {
	return defaultMatcher.ReplaceBySimilarity(source, search, replacement, minSimilarity)
}

func ReplaceWindowsByEditDistance(text, phrase, replacement string, threshold float64, maxDistance int) string {
	return defaultMatcher.ReplaceWindowsByEditDistance(text, phrase, replacement, threshold, maxDistance)
}

package match

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidArgument is returned when threshold is out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// Set of matched substrings.
type Set map[string]struct{}

// Sorted returns set elements, longest first, then alphabetically.
func (s Set) Sorted() []string {
	list := make([]string, 0, len(s))
	for str := range s {
		list = append(list, str)
	}
	sort.Slice(list, func(i, j int) bool {
		if len(list[i]) != len(list[j]) {
			return len(list[i]) > len(list[j])
		}
		return list[i] < list[j]
	})
	return list
}

// Matcher finds approximate matches using given metric.
// Zero value uses DefaultMetric.
type Matcher struct {
	Metric Metric
}

// FindByEditDistance returns lowercased substrings of source which are
// within maxDistance edits from search.
func (m Matcher) FindByEditDistance(source, search string, maxDistance int) Set {
	metric := m.metric()

	return scan(source, search, func(candidate, search string) bool {
		return metric.EditDistance(candidate, search) <= maxDistance
	})
}

// FindBySimilarity returns lowercased substrings of source which have
// similarity with search of at least minSimilarity.
func (m Matcher) FindBySimilarity(source, search string, minSimilarity float64) (Set, error) {
	if err := checkRange("min similarity", minSimilarity); err != nil {
		return nil, err
	}

	metric := m.metric()

	return scan(source, search, func(candidate, search string) bool {
		return metric.Similarity(candidate, search) >= minSimilarity
	}), nil
}

func (m Matcher) metric() Metric {
	if m.Metric == nil {
		return DefaultMetric
	}
	return m.Metric
}

// Slides a window of search length over source, completes each window
// to whole words and checks it with accept.
func scan(source, search string, accept func(candidate, search string) bool) Set {
	matches := make(Set)

	if strings.TrimSpace(search) == "" {
		return matches
	}

	src := []rune(strings.TrimSpace(strings.ToLower(source)))
	search = strings.TrimSpace(strings.ToLower(search))
	searchLen := len([]rune(search))

	for i := 0; i < len(src); i++ {
		endIndex := min(i+searchLen, len(src))

		candidate := completeRunes(src, i, endIndex)
		if _, ok := matches[candidate]; ok {
			continue
		}

		if accept(candidate, search) {
			matches[escapeQuotes(candidate)] = struct{}{}
			// skip matched span; a different match starting inside it
			// won't be found
			i = endIndex
		}
	}

	return matches
}

func checkRange(name string, value float64) error {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return fmt.Errorf("%w: %s must be in range 0 <= value <= 1, got %v",
			ErrInvalidArgument, name, value)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

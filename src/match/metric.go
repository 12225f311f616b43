package match

import (
	"github.com/anyascii/go"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"github.com/xrash/smetrics"
)

// Metric compares two strings.
type Metric interface {
	// EditDistance returns number of single-rune insertions, deletions
	// and substitutions needed to turn a into b.
	EditDistance(a, b string) int
	// Similarity returns closeness of a and b in range [0, 1],
	// where 1 means identical.
	Similarity(a, b string) float64
}

// DefaultMetric is Levenshtein distance plus Jaro-Winkler similarity.
var DefaultMetric Metric = stdMetric{}

const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// Unit cost for every edit, including substitution.
var levOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

type stdMetric struct{}

func (stdMetric) EditDistance(a, b string) int {
	if a == b {
		return 0
	}
	return levenshtein.DistanceForStrings([]rune(a), []rune(b), levOptions)
}

func (stdMetric) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return smetrics.JaroWinkler(a, b, jwBoostThreshold, jwPrefixSize)
}

// FoldMetric transliterates both strings to ASCII before passing
// them to underlying metric, so that "Kartoğlu" and "Kartoglu" are equal.
type FoldMetric struct {
	Metric Metric
}

func (m FoldMetric) EditDistance(a, b string) int {
	return m.base().EditDistance(anyascii.Transliterate(a), anyascii.Transliterate(b))
}

func (m FoldMetric) Similarity(a, b string) float64 {
	return m.base().Similarity(anyascii.Transliterate(a), anyascii.Transliterate(b))
}

func (m FoldMetric) base() Metric {
	if m.Metric == nil {
		return DefaultMetric
	}
	return m.Metric
}

package match

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBySimilarity(t *testing.T) {
	matches, err := FindBySimilarity("This is dummy text helloo worlld.", "hello world", 0.8)
	require.NoError(t, err)

	assert.Equal(t, Set{"helloo worlld": {}}, matches)
}

func TestFindBySimilarityInvalidThreshold(t *testing.T) {
	for _, minSimilarity := range []float64{-0.1, 1.1, -1, 2, math.NaN()} {
		_, err := FindBySimilarity("hello world", "hello", minSimilarity)
		assert.ErrorIs(t, err, ErrInvalidArgument, "minSimilarity=%v", minSimilarity)

		_, err = ReplaceBySimilarity("hello world", "hello", "***", minSimilarity)
		assert.ErrorIs(t, err, ErrInvalidArgument, "minSimilarity=%v", minSimilarity)
	}
}

func TestFindBySimilarityBounds(t *testing.T) {
	for _, minSimilarity := range []float64{0, 1} {
		_, err := FindBySimilarity("hello world", "hello", minSimilarity)
		assert.NoError(t, err)
	}
}

func TestFindByEditDistance(t *testing.T) {
	str := "Ismail Emre Kartoglu. Ismai Emre. Ismal. My name is Is mail."

	matches := FindByEditDistance(str, "Ismail", 1)

	assert.Equal(t, Set{
		"ismail":  {},
		"ismai":   {},
		"ismal":   {},
		"is mail": {},
	}, matches)
}

func TestFindByEditDistanceSkipsMatchedSpan(t *testing.T) {
	// "anne ann" is within 1 edit too, but starts inside "ann anne",
	// which is skipped after it matched
	matches := FindByEditDistance("ann anne ann", "ann ann", 1)

	assert.Equal(t, Set{"ann anne": {}}, matches)
}

func TestFindBlankSearch(t *testing.T) {
	str := "Ismail Emre Kartoglu. Ismai Emre. Ismal. My name is Is mail."

	for _, search := range []string{"", " ", "\t\n "} {
		assert.Empty(t, FindByEditDistance(str, search, 1))

		matches, err := FindBySimilarity(str, search, 0.5)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	}
}

func TestFindEmptySource(t *testing.T) {
	assert.Empty(t, FindByEditDistance("", "ismail", 1))
	assert.Empty(t, FindByEditDistance("   ", "ismail", 1))
}

func TestFindIdempotent(t *testing.T) {
	str := "Ismail Emre Kartoglu. Ismai Emre. Ismal. My name is Is mail."

	assert.Equal(t,
		FindByEditDistance(str, "Ismail", 1),
		FindByEditDistance(str, "Ismail", 1))

	first, err := FindBySimilarity(str, "Ismail", 0.9)
	require.NoError(t, err)
	second, err := FindBySimilarity(str, "Ismail", 0.9)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindWithFoldMetric(t *testing.T) {
	str := "Ismaïl Emre"

	assert.Empty(t, FindByEditDistance(str, "ismail", 0))

	m := Matcher{Metric: FoldMetric{}}
	assert.Equal(t, Set{"ismaïl": {}}, m.FindByEditDistance(str, "ismail", 0))
}

func TestSetSorted(t *testing.T) {
	set := Set{"ismal": {}, "is mail": {}, "ismai": {}, "ismail": {}}

	assert.Equal(t, []string{"is mail", "ismail", "ismai", "ismal"}, set.Sorted())
}

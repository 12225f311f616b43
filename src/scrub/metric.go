package scrub

import (
	"strconv"

	"github.com/gavv/fuzzy-scrub/src/cache"
	"github.com/gavv/fuzzy-scrub/src/match"
)

// Metric which remembers computed distances in memory cache.
// Window scoring compares the same pairs of words many times.
type memoMetric struct {
	name   string
	metric match.Metric
}

func newMetric(foldASCII bool) match.Metric {
	if foldASCII {
		return memoMetric{name: "fold", metric: match.FoldMetric{}}
	}
	return memoMetric{name: "std", metric: match.DefaultMetric}
}

func (m memoMetric) EditDistance(a, b string) int {
	keys := []string{"dist", m.name, a, b}

	if value, ok := cache.MemLoad(keys); ok {
		if dist, err := strconv.Atoi(value); err == nil {
			return dist
		}
	}

	dist := m.metric.EditDistance(a, b)
	cache.MemStore(keys, strconv.Itoa(dist))

	return dist
}

func (m memoMetric) Similarity(a, b string) float64 {
	return m.metric.Similarity(a, b)
}

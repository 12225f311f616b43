package match

import (
	"sort"
	"strings"
)

// Window is a run of consecutive words of text, scored against
// a search phrase.
type Window struct {
	// Byte offsets in original text, text[Begin:End] is the window.
	Begin int
	End   int

	// Words of text covered by window. There are fewer words than in
	// search phrase only at the end of text.
	Words []string

	// Fraction of search phrase words which have a match in Words.
	// The denominator is number of search phrase words, so a window
	// truncated at the end of text never gets 1.
	Score float64

	// Max edit distance used for scoring.
	MaxDistance int

	text string
}

// MatchingText returns covered text with double quotes escaped.
func (w Window) MatchingText() string {
	return escapeQuotes(w.text)
}

// AboveThreshold reports whether score is at least threshold.
func (w Window) AboveThreshold(threshold float64) bool {
	return w.Score >= threshold
}

// Counts words of window having at least one search word within
// max distance.
func (w *Window) scoreAgainst(searchWords []string, metric Metric) {
	if len(w.Words) == 0 || len(searchWords) == 0 {
		w.Score = 0
		return
	}

	matched := 0
	for _, word := range w.Words {
		for _, searchWord := range searchWords {
			if metric.EditDistance(word, searchWord) <= w.MaxDistance {
				matched++
				break
			}
		}
	}

	w.Score = float64(matched) / float64(len(searchWords))
}

// FindWindowsByEditDistance builds a window of phrase size at every word
// of text, scores it and returns windows with score >= threshold,
// best first.
//
// Words are separated by single spaces and compared case-sensitively.
func (m Matcher) FindWindowsByEditDistance(
	text, phrase string, threshold float64, maxDistance int,
) []Window {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(phrase) == "" {
		return nil
	}

	metric := m.metric()

	searchWords := splitWords(phrase)
	textWords := splitWords(text)
	bagSize := len(searchWords)

	windows := make([]Window, 0, len(textWords))

	begin := 0
	for start := range textWords {
		window := takeWindow(textWords, start, bagSize, begin)
		window.MaxDistance = maxDistance
		window.scoreAgainst(searchWords, metric)
		window.text = text[window.Begin:window.End]

		windows = append(windows, window)

		begin += len(textWords[start]) + 1
	}

	sortWindows(windows)

	result := windows[:0]
	for _, window := range windows {
		if window.AboveThreshold(threshold) {
			result = append(result, window)
		}
	}

	return result
}

func takeWindow(textWords []string, start, size, begin int) Window {
	window := Window{
		Begin: begin,
	}

	length := 0
	for n := start; n < start+size && n < len(textWords); n++ {
		window.Words = append(window.Words, textWords[n])
		length += len(textWords[n]) + 1
	}
	if length > 0 {
		// no separator after last word
		length--
	}

	window.End = begin + length

	return window
}

// Sorts by score, descending; windows with same score keep
// their order.
func sortWindows(windows []Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Score > windows[j].Score
	})
}

// Splits on single spaces, like strings.Split, but drops trailing
// empty words.
func splitWords(s string) []string {
	words := strings.Split(s, " ")
	for len(words) > 0 && words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	return words
}

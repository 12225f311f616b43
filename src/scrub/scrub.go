package scrub

import (
	"fmt"

	"github.com/gavv/fuzzy-scrub/src/defs"
	"github.com/gavv/fuzzy-scrub/src/logs"
	"github.com/gavv/fuzzy-scrub/src/match"
)

// Text finds approximate occurrences of configured terms in content and
// replaces them.
// Returns new content and matches, in order of terms.
func Text(content string, conf defs.Config) (string, []defs.Match, error) {
	return newScrubber(conf).scrub(content)
}

type scrubber struct {
	conf     defs.Config
	matcher  match.Matcher
	replacer match.Replacer
	// numbers matches within one file
	index int
}

func newScrubber(conf defs.Config) *scrubber {
	return &scrubber{
		conf: conf,
		matcher: match.Matcher{
			Metric: newMetric(conf.FoldASCII),
		},
		replacer: match.Replacer{
			FoldCase: !conf.ExactCase,
		},
	}
}

// Terms are applied one by one, each to the result of previous one.
func (s *scrubber) scrub(content string) (string, []defs.Match, error) {
	var allMatches []defs.Match

	for _, term := range s.conf.Terms {
		matches, err := s.find(content, term)
		if err != nil {
			return "", nil, err
		}
		if len(matches) == 0 {
			continue
		}

		spec := s.conf.Replacement
		if term.Replacement != "" {
			spec = term.Replacement
		}

		var texts []string
		replacements := make(map[string]string)

		for n := range matches {
			s.index++
			matches[n].Index = s.index

			repl, err := formatReplacement(spec, matches[n])
			if err != nil {
				return "", nil, err
			}

			logs.Debugf("match: %q ~ %q (%s, score %.2f)",
				matches[n].Text, term.Text, term.Mode, matches[n].Score)

			texts = append(texts, matches[n].Text)
			replacements[matches[n].Text] = repl
		}

		replace := s.replacer.Replace
		if term.Mode == defs.ModeWindow {
			// windows overlap, best scored must go first
			replace = s.replacer.ReplaceInOrder
		}
		content = replace(content, texts, func(text string) string {
			return replacements[text]
		})

		allMatches = append(allMatches, matches...)
	}

	return content, allMatches, nil
}

func (s *scrubber) find(content string, term defs.Term) ([]defs.Match, error) {
	var matches []defs.Match

	switch term.Mode {
	case defs.ModeDistance:
		set := s.matcher.FindByEditDistance(content, term.Text, term.MaxDistance)
		for _, text := range set.Sorted() {
			matches = append(matches, defs.Match{Term: term, Text: text, Score: 1})
		}

	case defs.ModeSimilarity:
		set, err := s.matcher.FindBySimilarity(content, term.Text, term.MinSimilarity)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term.Text, err)
		}
		for _, text := range set.Sorted() {
			matches = append(matches, defs.Match{Term: term, Text: text, Score: 1})
		}

	case defs.ModeWindow:
		seen := make(map[string]struct{})
		windows := s.matcher.FindWindowsByEditDistance(
			content, term.Text, term.Threshold, term.MaxDistance)
		for _, window := range windows {
			// raw text, not MatchingText(), which has quotes escaped
			text := content[window.Begin:window.End]
			if _, ok := seen[text]; ok || text == "" {
				continue
			}
			seen[text] = struct{}{}
			matches = append(matches, defs.Match{Term: term, Text: text, Score: window.Score})
		}

	default:
		return nil, fmt.Errorf("term %q: unknown mode %q", term.Text, term.Mode)
	}

	return matches, nil
}

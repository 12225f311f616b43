package match

import (
	"regexp"
	"unicode"
)

// Word, optionally followed by more words separated by spaces and stray
// parentheses, e.g. "07881) 618299".
// Word characters are unicode letters, digits and underscore.
var wordsRx = regexp.MustCompile(`[\pL\pN_]+(\(?\)?\s+[\pL\pN_]+)*`)

// CompletingString expands span [begin, end) of s to whole words and
// strips stray punctuation at the edges.
// Offsets are in runes.
//
// Example:
//
//	CompletingString("This is (a dummy) sentence.", 9, 11) == "a dummy"
func CompletingString(s string, begin, end int) string {
	return completeRunes([]rune(s), begin, end)
}

func completeRunes(s []rune, begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > len(s) {
		end = len(s)
	}

	for begin > 0 && begin < len(s) && isAlnum(s[begin]) {
		begin--
	}
	// begin now points at the boundary character, step over it;
	// at the very start of string, boundary character is kept and
	// later stripped by the regexp
	if begin != 0 {
		begin++
	}

	// last rune is never included by expansion
	for end < len(s)-1 && isAlnum(s[end]) {
		end++
	}

	if begin >= end {
		return ""
	}

	return wordsRx.FindString(string(s[begin:end]))
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

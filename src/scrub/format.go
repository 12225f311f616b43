package scrub

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gavv/fuzzy-scrub/src/defs"
)

// Format replacement for a match according to spec.
// Substitutes patterns like:
//   - {match}
//   - {term|mask}
//
// ..with corresponding fields of match.
// Spec without fields and escapes is returned as is.
func formatReplacement(spec string, m defs.Match) (string, error) {
	if !strings.ContainsAny(spec, `{\`) {
		return spec, nil
	}

	var (
		result strings.Builder
		fpos   int
	)

	for fpos < len(spec) {
		switch {
		case spec[fpos] == '\\' && fpos < len(spec)-1:
			// get escaped character like \n
			text := spec[fpos : fpos+2]
			fpos += 2

			// unescape using go syntax rules
			r, _, _, err := strconv.UnquoteChar(text, 0)
			if err == nil {
				result.WriteRune(r)
			} else {
				// on error, copy second character as is
				result.WriteString(text[1:])
			}

		case spec[fpos] == '{':
			fpos++

			// find expression in curly braces
			end := fpos
			for end < len(spec) && spec[end] != '}' {
				end++
			}
			if end == len(spec) {
				return "", fmt.Errorf("bad replacement spec: missing trailing `}'")
			}

			field, err := evalExpr(spec[fpos:end], m)
			if err != nil {
				return "", err
			}
			fpos = end + 1

			result.WriteString(field)

		default:
			// skip until curly brace or escape
			end := fpos + 1
			for end < len(spec) && spec[end] != '\\' && spec[end] != '{' {
				end++
			}

			// copy text as is
			result.WriteString(spec[fpos:end])
			fpos = end
		}
	}

	return result.String(), nil
}

// Evaluates expression inside curly braces.
// First non-empty field wins.
func evalExpr(expr string, m defs.Match) (string, error) {
	field := ""
	for _, subexpr := range strings.Split(expr, "|") {
		var err error
		field, err = getField(strings.TrimSpace(subexpr), m)
		if err != nil {
			return "", err
		}
		if field != "" {
			break
		}
	}

	return field, nil
}

// Get value of match field by name.
func getField(name string, m defs.Match) (string, error) {
	switch name {
	case "match":
		return m.Text, nil
	case "term":
		return m.Term.Text, nil
	case "mode":
		return string(m.Term.Mode), nil
	case "index":
		return fmt.Sprint(m.Index), nil
	case "len":
		return fmt.Sprint(utf8.RuneCountInString(m.Text)), nil
	case "mask":
		return strings.Repeat("*", utf8.RuneCountInString(m.Text)), nil
	case "score":
		return strconv.FormatFloat(m.Score, 'f', 2, 64), nil
	}

	return "", fmt.Errorf("bad replacement spec: unknown field `%s'", name)
}

package terms

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Jeffail/gabs/v2"

	"github.com/gavv/fuzzy-scrub/src/defs"
	"github.com/gavv/fuzzy-scrub/src/logs"
)

// File is the contents of terms file.
//
// Example:
//
//	{
//	  "replacement": "[REDACTED]",
//	  "mode": "distance",
//	  "max_distance": 1,
//	  "terms": [
//	    "Ismail Emre Kartoglu",
//	    {"text": "hello world", "mode": "similarity", "min_similarity": 0.8},
//	    {"text": "33 Marmora Road, SE22 0RX", "mode": "window", "threshold": 0.6,
//	     "replacement": "[ADDRESS]"}
//	  ]
//	}
//
// Top-level fields other than "terms" are defaults for every term.
type File struct {
	Replacement string
	Terms       []defs.Term
}

// Load reads terms file.
// Fields missing in file are taken from defaults.
func Load(path string, defaults defs.Term) (File, error) {
	logs.Debugf("loading terms from %q", path)

	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("can't read %q: %w", path, err)
	}

	file, err := Parse(b, defaults)
	if err != nil {
		return File{}, fmt.Errorf("can't load %q: %w", path, err)
	}

	return file, nil
}

func Parse(b []byte, defaults defs.Term) (File, error) {
	js, err := gabs.ParseJSON(b)
	if err != nil {
		return File{}, fmt.Errorf("bad json: %w", err)
	}

	var file File

	if err := stringField(js, "replacement", &file.Replacement); err != nil {
		return File{}, err
	}

	defaults, err = readTerm(js, defaults)
	if err != nil {
		return File{}, err
	}
	defaults.Text = ""
	defaults.Replacement = ""

	if _, ok := js.Path("terms").Data().([]any); !ok {
		return File{}, fmt.Errorf("field \"terms\" must be a list")
	}

	for n, item := range js.Path("terms").Children() {
		var term defs.Term

		if text, ok := item.Data().(string); ok {
			term = defaults
			term.Text = text
		} else {
			term, err = readTerm(item, defaults)
			if err != nil {
				return File{}, fmt.Errorf("term #%d: %w", n+1, err)
			}
		}

		if strings.TrimSpace(term.Text) == "" {
			logs.Warnf("skipping empty term #%d", n+1)
			continue
		}

		if err := Validate(term); err != nil {
			return File{}, fmt.Errorf("term #%d: %w", n+1, err)
		}

		file.Terms = append(file.Terms, term)
	}

	return file, nil
}

// FromFlags builds terms from --term values.
func FromFlags(texts []string, defaults defs.Term) ([]defs.Term, error) {
	var terms []defs.Term

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}

		term := defaults
		term.Text = text

		if err := Validate(term); err != nil {
			return nil, fmt.Errorf("--term=%s: %w", text, err)
		}

		terms = append(terms, term)
	}

	return terms, nil
}

func Validate(term defs.Term) error {
	switch term.Mode {
	case defs.ModeDistance, defs.ModeSimilarity, defs.ModeWindow:
	default:
		return fmt.Errorf("unknown mode %q", term.Mode)
	}

	if term.MaxDistance < 0 {
		return fmt.Errorf("max distance must be non-negative, got %d", term.MaxDistance)
	}
	if !inRange(term.MinSimilarity) {
		return fmt.Errorf("min similarity must be in range [0, 1], got %v", term.MinSimilarity)
	}
	if !inRange(term.Threshold) {
		return fmt.Errorf("threshold must be in range [0, 1], got %v", term.Threshold)
	}

	return nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func readTerm(c *gabs.Container, term defs.Term) (defs.Term, error) {
	if _, ok := c.Data().(map[string]any); !ok {
		return term, fmt.Errorf("expected string or object")
	}

	var mode string

	if err := stringField(c, "text", &term.Text); err != nil {
		return term, err
	}
	if err := stringField(c, "replacement", &term.Replacement); err != nil {
		return term, err
	}
	if err := stringField(c, "mode", &mode); err != nil {
		return term, err
	}
	if mode != "" {
		term.Mode = defs.Mode(mode)
	}

	if c.Exists("max_distance") {
		var dist float64
		if err := numberField(c, "max_distance", &dist); err != nil {
			return term, err
		}
		if dist != math.Trunc(dist) {
			return term, fmt.Errorf("field \"max_distance\" must be an integer")
		}
		term.MaxDistance = int(dist)
	}
	if err := numberField(c, "min_similarity", &term.MinSimilarity); err != nil {
		return term, err
	}
	if err := numberField(c, "threshold", &term.Threshold); err != nil {
		return term, err
	}

	return term, nil
}

func stringField(c *gabs.Container, name string, dst *string) error {
	if !c.Exists(name) {
		return nil
	}
	v, ok := c.Path(name).Data().(string)
	if !ok {
		return fmt.Errorf("field %q must be a string", name)
	}
	*dst = v
	return nil
}

func numberField(c *gabs.Container, name string, dst *float64) error {
	if !c.Exists(name) {
		return nil
	}
	v, ok := c.Path(name).Data().(float64)
	if !ok {
		return fmt.Errorf("field %q must be a number", name)
	}
	*dst = v
	return nil
}

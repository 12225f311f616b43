package scrub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavv/fuzzy-scrub/src/cache"
	"github.com/gavv/fuzzy-scrub/src/defs"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fuzzy-scrub-test")
	if err != nil {
		panic(err)
	}
	cache.Path = filepath.Join(dir, "cache.json")

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

const names = "Ismail Emre Kartoglu. Ismai Emre. Ismal. My name is Is mail."

func distanceTerm(text string, maxDistance int) defs.Term {
	return defs.Term{
		Text:        text,
		Mode:        defs.ModeDistance,
		MaxDistance: maxDistance,
	}
}

func TestText(t *testing.T) {
	conf := defs.Config{
		Terms:       []defs.Term{distanceTerm("Ismail", 1)},
		Replacement: "X",
	}

	result, matches, err := Text(names, conf)
	require.NoError(t, err)

	assert.Equal(t, "X Emre Kartoglu. X Emre. X. My name is X.", result)

	var texts []string
	for _, m := range matches {
		texts = append(texts, m.Text)
		assert.Equal(t, "Ismail", m.Term.Text)
		assert.Equal(t, 1.0, m.Score)
	}
	assert.Equal(t, []string{"is mail", "ismail", "ismai", "ismal"}, texts)
}

func TestTextIndex(t *testing.T) {
	conf := defs.Config{
		Terms:       []defs.Term{distanceTerm("Ismail", 1)},
		Replacement: "[{index}]",
	}

	result, _, err := Text(names, conf)
	require.NoError(t, err)

	assert.Equal(t, "[2] Emre Kartoglu. [3] Emre. [4]. My name is [1].", result)
}

func TestTextExactCase(t *testing.T) {
	conf := defs.Config{
		Terms:       []defs.Term{distanceTerm("Ismail", 1)},
		Replacement: "X",
		ExactCase:   true,
	}

	result, matches, err := Text(names, conf)
	require.NoError(t, err)

	// matches are lowercased, source is not
	assert.Equal(t, names, result)
	assert.Len(t, matches, 4)
}

func TestTextFoldASCII(t *testing.T) {
	conf := defs.Config{
		Terms:       []defs.Term{distanceTerm("Ismail", 0)},
		Replacement: "X",
	}

	result, _, err := Text("Ismaïl Emre", conf)
	require.NoError(t, err)
	assert.Equal(t, "Ismaïl Emre", result)

	conf.FoldASCII = true

	result, _, err = Text("Ismaïl Emre", conf)
	require.NoError(t, err)
	assert.Equal(t, "X Emre", result)
}

func TestTextSimilarity(t *testing.T) {
	conf := defs.Config{
		Terms: []defs.Term{{
			Text:          "hello world",
			Mode:          defs.ModeSimilarity,
			MinSimilarity: 0.8,
		}},
		Replacement: "{mask}",
	}

	result, matches, err := Text("This is dummy text Helloo Worlld.", conf)
	require.NoError(t, err)

	assert.Equal(t, "This is dummy text *************.", result)
	require.Len(t, matches, 1)
	assert.Equal(t, "helloo worlld", matches[0].Text)

	conf.Terms[0].MinSimilarity = 1.5

	_, _, err = Text("This is dummy text Helloo Worlld.", conf)
	assert.Error(t, err)
}

func TestTextWindow(t *testing.T) {
	str := "I am Ismail Emre Kartoglu. My address changes. It is now 33 Marmora Road, SE22 0RX, London, UK." +
		" This is some extra text."

	conf := defs.Config{
		Terms: []defs.Term{
			{
				Text:        "33, London, Marmora Road, SE22 0RX",
				Mode:        defs.ModeWindow,
				Threshold:   0.9,
				MaxDistance: 1,
				Replacement: "[ADDRESS]",
			},
			distanceTerm("Ismail Emre Kartoglu", 2),
		},
		Replacement: "[NAME]",
	}

	result, matches, err := Text(str, conf)
	require.NoError(t, err)

	assert.Equal(t,
		"I am [NAME]. My address changes. It is now [ADDRESS] UK. This is some extra text.",
		result)

	require.Len(t, matches, 2)
	assert.Equal(t, "33 Marmora Road, SE22 0RX, London,", matches[0].Text)
	assert.Equal(t, 1.0, matches[0].Score)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, "ismail emre kartoglu", matches[1].Text)
	assert.Equal(t, 2, matches[1].Index)
}

func TestTextWindowLowThreshold(t *testing.T) {
	str := "I am Ismail Emre Kartoglu. My address changes. It is now 33 Marmora Road, SE22 0RX, London, UK." +
		" This is some extra text."

	conf := defs.Config{
		Terms: []defs.Term{{
			Text:        "33, London, Marmora Road, SE22 0RX",
			Mode:        defs.ModeWindow,
			Threshold:   0.5,
			MaxDistance: 1,
		}},
		Replacement: "[ADDRESS]",
	}

	result, matches, err := Text(str, conf)
	require.NoError(t, err)

	assert.Equal(t,
		"I am Ismail Emre Kartoglu. My address changes. It is now [ADDRESS] UK. This is some extra text.",
		result)

	require.NotEmpty(t, matches)
	assert.Equal(t, "33 Marmora Road, SE22 0RX, London,", matches[0].Text)
	assert.Equal(t, 1, matches[0].Index)
	for _, m := range matches[1:] {
		assert.Less(t, m.Score, 1.0)
	}
}

func TestTextWindowQuotes(t *testing.T) {
	conf := defs.Config{
		Terms: []defs.Term{{
			Text:        "hello world",
			Mode:        defs.ModeWindow,
			Threshold:   1,
			MaxDistance: 1,
		}},
		Replacement: "X",
	}

	result, _, err := Text(`he said "hello world" twice`, conf)
	require.NoError(t, err)

	assert.Equal(t, "he said X twice", result)
}

func TestTextNoTerms(t *testing.T) {
	result, matches, err := Text(names, defs.Config{Replacement: "X"})
	require.NoError(t, err)

	assert.Equal(t, names, result)
	assert.Empty(t, matches)
}

func TestTextUnknownMode(t *testing.T) {
	conf := defs.Config{
		Terms: []defs.Term{{Text: "Ismail", Mode: "regex"}},
	}

	_, _, err := Text(names, conf)
	assert.Error(t, err)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gavv/fuzzy-scrub/src/backend"
	"github.com/gavv/fuzzy-scrub/src/cache"
	"github.com/gavv/fuzzy-scrub/src/defs"
	"github.com/gavv/fuzzy-scrub/src/logs"
	"github.com/gavv/fuzzy-scrub/src/scrub"
	"github.com/gavv/fuzzy-scrub/src/terms"
)

func main() {
	var (
		conf     defs.Config
		defaults defs.Term
		mode     string
	)

	fset := pflag.NewFlagSet("fuzzy-scrub", pflag.ContinueOnError)

	fset.SortFlags = false
	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [FILES]...\n\n", fset.Name())
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		fset.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
The tool finds fragments of FILES which approximately match search
TERMS (names, addresses, phone numbers), and replaces them. Matching
tolerates typos, OCR noise, and reformatting.

Lines between <!-- noscrub --> and <!-- endnoscrub --> are kept as is.
When --pipe is specified, the tool reads stdin and writes stdout.
When --list is specified, matches are printed and nothing is changed.

Terms are given with --term, or in a JSON file with --terms:
  {
    "replacement": "[REDACTED]",
    "terms": [
      "Ismail Emre Kartoglu",
      {"text": "hello world", "mode": "similarity", "min_similarity": 0.8},
      {"text": "33 Marmora Road, SE22 0RX", "mode": "window",
       "threshold": 0.6, "max_distance": 1, "replacement": "[ADDRESS]"}
    ]
  }
Fields missing in a term are taken from the file top level, and then
from command-line options.

Supported MODES (for --mode option):
  distance      find substrings within --max-distance edits from term
  similarity    find substrings with Jaro-Winkler similarity of at
                least --min-similarity
  window        find runs of words where at least --threshold of term
                words are within --max-distance edits, for long terms
                like addresses

REPLACEMENT (for --replace option) can contain escape sequences like
\n or \{, and FIELDS:
  {match}       matched text
  {term}        search term
  {mode}        term mode
  {index}       match number in file
  {mask}        one '*' per character of matched text
  {len}         length of matched text
  {score}       match score
  {foo|bar}     value of 'foo', or 'bar' if 'foo' is empty

Supported VCS backends (for --vcs option):
  none          FILES are paths
  git           FILES are pathspecs for git ls-files, all tracked files
                if none given

EXAMPLES:
  fuzzy-scrub -t "Ismail Emre Kartoglu" -D 2 notes.txt
  fuzzy-scrub -T terms.json --vcs git '*.md'
  fuzzy-scrub -P -m window -w 0.6 -t "33 Marmora Road, SE22 0RX" < in.txt
`)
	}

	termTexts := fset.StringArrayP("term", "t", nil, "search term (may be repeated)")
	termsFile := fset.StringP("terms", "T", "", "JSON file with search terms")
	fset.StringVarP(&mode, "mode", "m", "distance", "matching mode: distance, similarity, window")
	fset.IntVarP(&defaults.MaxDistance, "max-distance", "D", 1,
		"max edit distance (distance and window modes)")
	fset.Float64VarP(&defaults.MinSimilarity, "min-similarity", "S", 0.9,
		"min similarity, 0..1 (similarity mode)")
	fset.Float64VarP(&defaults.Threshold, "threshold", "w", 0.8,
		"min fraction of matching term words, 0..1 (window mode)")
	fset.StringVarP(&conf.Replacement, "replace", "R", "[REDACTED]", "replacement spec")
	fset.BoolVarP(&conf.ExactCase, "exact-case", "c", false,
		"replace only occurrences with same case as match")
	fset.BoolVarP(&conf.FoldASCII, "ascii", "A", false,
		"compare text transliterated to ascii")
	fset.BoolVarP(&conf.List, "list", "l", false, "print matches instead of replacing")
	fset.BoolVarP(&conf.Pipe, "pipe", "P", false, "read from stdin and write to stdout")
	fset.StringVar(&conf.Vcs, "vcs", "none", "version control system")
	fset.IntVarP(&conf.Jobs, "jobs", "j", 0, "number of files processed in parallel")
	fset.BoolVar(&conf.NoCache, "no-cache", false, "don't skip files unchanged since last run")
	fset.BoolVarP(&cache.Refresh, "refresh", "r", false, "refresh cached data")
	fset.BoolVarP(&logs.EnableDebug, "debug", "d", false, "enable debug logging")
	help := fset.BoolP("help", "h", false, "print this message and exit")

	err := fset.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *help {
		fset.Usage()
		os.Exit(0)
	}

	defaults.Mode = defs.Mode(mode)
	cache.Disable = conf.NoCache

	switch defaults.Mode {
	case defs.ModeDistance, defs.ModeSimilarity, defs.ModeWindow:
	default:
		logs.Fatalf("--mode=%s not recognized", mode)
	}

	switch conf.Vcs {
	case "none", "git":
	default:
		logs.Fatalf("--vcs=%s not recognized", conf.Vcs)
	}

	if err := terms.Validate(defaults); err != nil {
		logs.Fatalf("%s", err)
	}

	if *termsFile != "" {
		file, err := terms.Load(*termsFile, defaults)
		if err != nil {
			logs.Fatalf("%s", err)
		}
		if file.Replacement != "" && !fset.Changed("replace") {
			conf.Replacement = file.Replacement
		}
		conf.Terms = append(conf.Terms, file.Terms...)
	}

	flagTerms, err := terms.FromFlags(*termTexts, defaults)
	if err != nil {
		logs.Fatalf("%s", err)
	}
	conf.Terms = append(conf.Terms, flagTerms...)

	if len(conf.Terms) == 0 {
		logs.Fatalf("no terms specified")
	}

	logs.Debugf("using %d term(s)", len(conf.Terms))

	if conf.Pipe {
		if len(fset.Args()) > 0 {
			logs.Fatalf("can't specify --pipe and files at the same time")
		}

		if err := scrub.ProcessPipe(conf); err != nil {
			logs.Fatalf("%s", err)
		}
		return
	}

	files := fset.Args()

	if conf.Vcs != "none" {
		conf.Patterns = files

		files, err = backend.CollectFiles(conf)
		if err != nil {
			logs.Fatalf("%s", err)
		}
	}

	if len(files) < 1 {
		logs.Fatalf("no files specified")
	}

	if err := scrub.ProcessFiles(files, conf); err != nil {
		logs.Fatalf("%s", err)
	}
}

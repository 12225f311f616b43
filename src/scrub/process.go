package scrub

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gavv/fuzzy-scrub/src/cache"
	"github.com/gavv/fuzzy-scrub/src/defs"
	"github.com/gavv/fuzzy-scrub/src/logs"
)

var (
	beginRx = regexp.MustCompile(`^\s*<!--\s*noscrub\s*-->\s*$`)
	endRx   = regexp.MustCompile(`^\s*<!--\s*endnoscrub\s*-->\s*$`)
)

var (
	stdout io.Writer = os.Stdout
	outMu  sync.Mutex
)

// Process files, at most conf.Jobs at a time.
// Stops at first error.
func ProcessFiles(paths []string, conf defs.Config) error {
	jobs := conf.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var eg errgroup.Group
	eg.SetLimit(jobs)

	for _, path := range paths {
		path := path
		eg.Go(func() error {
			return ProcessFile(path, conf)
		})
	}

	return eg.Wait()
}

// Scrub terms in file.
// Lines between <!-- noscrub --> and <!-- endnoscrub --> are kept as is.
// If --list is set, only prints matches and doesn't touch file.
func ProcessFile(path string, conf defs.Config) error {
	logs.Debugf("processing %q", path)

	flag := os.O_RDWR
	if conf.List {
		flag = os.O_RDONLY
	}

	file, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return fmt.Errorf("can't open %q: %w", path, err)
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("can't read %q: %w", path, err)
	}
	oldContent := string(b)

	cacheKey := []string{"clean", absPath(path)}

	if !conf.List {
		if digest, ok := cache.DiskLoad(cacheKey); ok && digest == contentDigest(oldContent, conf) {
			logs.Debugf("unchanged since last run: %q", path)
			return nil
		}
	}

	newContent, matches, err := scrubContent(path, oldContent, newScrubber(conf))
	if err != nil {
		return err
	}

	if conf.List {
		printMatches(path, matches)
		return nil
	}

	if newContent != oldContent {
		_, err = file.Seek(0, 0)
		if err != nil {
			return fmt.Errorf("can't write %q: %w", path, err)
		}

		err = file.Truncate(0)
		if err != nil {
			return fmt.Errorf("can't write %q: %w", path, err)
		}

		_, err = file.Write([]byte(newContent))
		if err != nil {
			return fmt.Errorf("can't write %q: %w", path, err)
		}

		logs.Infof("%s: replaced %d match(es)", path, len(matches))
	} else {
		logs.Debugf("%s: no matches", path)
	}

	cache.DiskStore(cacheKey, contentDigest(newContent, conf))

	return nil
}

// Scrub terms in stdin and print result to stdout.
// If --list is set, prints only matches.
func ProcessPipe(conf defs.Config) error {
	return processStream(os.Stdin, os.Stdout, conf)
}

func processStream(r io.Reader, w io.Writer, conf defs.Config) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("can't read stdin: %w", err)
	}

	newContent, matches, err := scrubContent("stdin", string(b), newScrubber(conf))
	if err != nil {
		return err
	}

	if conf.List {
		for _, m := range matches {
			fmt.Fprintln(w, m.Text)
		}
		return nil
	}

	if _, err := io.WriteString(w, newContent); err != nil {
		return fmt.Errorf("can't write stdout: %w", err)
	}

	return nil
}

// Scrubs content outside of noscrub blocks.
func scrubContent(name, content string, s *scrubber) (string, []defs.Match, error) {
	var (
		result    strings.Builder
		segment   strings.Builder
		matches   []defs.Match
		protected bool
		lineNo    int
	)

	flush := func() error {
		if segment.Len() == 0 {
			return nil
		}
		text, segMatches, err := s.scrub(segment.String())
		if err != nil {
			return fmt.Errorf("can't process %q: %w", name, err)
		}
		result.WriteString(text)
		matches = append(matches, segMatches...)
		segment.Reset()
		return nil
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		lineNo++

		bare := strings.TrimRight(line, "\r\n")

		// begin block
		if beginRx.MatchString(bare) {
			if protected {
				return "", nil, fmt.Errorf(
					"can't process %q: unpaired <!--noscrub-->/<!--endnoscrub--> at line %d",
					name, lineNo)
			}
			if err := flush(); err != nil {
				return "", nil, err
			}
			result.WriteString(line)
			protected = true
			continue
		}

		// end block
		if endRx.MatchString(bare) {
			if !protected {
				return "", nil, fmt.Errorf(
					"can't process %q: unpaired <!--noscrub-->/<!--endnoscrub--> at line %d",
					name, lineNo)
			}
			result.WriteString(line)
			protected = false
			continue
		}

		if protected {
			result.WriteString(line)
		} else {
			segment.WriteString(line)
		}
	}

	if protected {
		return "", nil, fmt.Errorf(
			"can't process %q: unpaired <!--noscrub-->/<!--endnoscrub--> at line %d",
			name, lineNo)
	}

	if err := flush(); err != nil {
		return "", nil, err
	}

	return result.String(), matches, nil
}

func printMatches(path string, matches []defs.Match) {
	outMu.Lock()
	defer outMu.Unlock()

	for _, m := range matches {
		fmt.Fprintf(stdout, "%s: %s\n", path, m.Text)
	}
}

// Digest of content together with everything that affects scrubbing.
func contentDigest(content string, conf defs.Config) string {
	return cache.Digest(
		cache.Serialize(conf.Terms),
		conf.Replacement,
		strconv.FormatBool(conf.ExactCase),
		strconv.FormatBool(conf.FoldASCII),
		content,
	)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

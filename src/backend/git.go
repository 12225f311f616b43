package backend

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/gavv/fuzzy-scrub/src/defs"
	"github.com/gavv/fuzzy-scrub/src/logs"
)

func gitCollect(conf defs.Config) ([]string, error) {
	cmdArgs := []string{"git", "ls-files", "-z", "--"}
	cmdArgs = append(cmdArgs, conf.Patterns...)

	logs.Debugf("running: %s", strings.Join(cmdArgs, " "))

	cmd := exec.Command(cmdArgs[0], cmdArgs[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git: %w", err)
	}

	files := parseFileList(string(out))

	logs.Debugf("found %d files in git index", len(files))

	return files, nil
}

// Parses NUL-separated list of paths, dropping empty and duplicate ones.
func parseFileList(out string) []string {
	files := []string{}
	seen := make(map[string]struct{})

	for _, path := range strings.Split(out, "\x00") {
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	return files
}

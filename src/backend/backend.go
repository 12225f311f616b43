package backend

import (
	"github.com/gavv/fuzzy-scrub/src/defs"
)

// Collect list of files to scrub from VCS.
func CollectFiles(conf defs.Config) ([]string, error) {
	switch conf.Vcs {
	case "git":
		return gitCollect(conf)
	}

	return nil, nil
}

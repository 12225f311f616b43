package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/gavv/fuzzy-scrub/src/logs"
)

var (
	// Ignore stored disk entries, once per key.
	Refresh = false
	// Don't read or write disk cache.
	Disable = false
	// Disk cache file, by default in user cache dir.
	Path = ""
)

// Max number of entries in memory cache.
const memLimit = 1 << 16

var (
	memMu    sync.Mutex
	memCache map[string]string = make(map[string]string)

	diskMu    sync.Mutex
	diskCache map[string]string
	reCache   map[string]struct{} = make(map[string]struct{})
	diskOnce  sync.Once
)

func diskInit() {
	diskOnce.Do(func() {
		if Path == "" {
			diskDir, _ := os.UserCacheDir()
			Path = filepath.Join(diskDir, "fuzzy-scrub.json")
		}

		diskCache = diskRead()

		logs.Debugf("loaded %d entries from %q", len(diskCache), Path)
	})
}

func diskRead() map[string]string {
	entries := make(map[string]string)

	b, _ := os.ReadFile(Path)
	if err := json.Unmarshal(b, &entries); err != nil {
		return make(map[string]string)
	}

	return entries
}

func DiskStore(keys []string, value string) {
	if Disable {
		return
	}

	diskInit()

	diskMu.Lock()
	defer diskMu.Unlock()

	key := strings.Join(keys, ":")

	if val, ok := diskCache[key]; ok && val == value {
		return
	}

	logs.Debugf("cache store: %q %q", key, value)
	diskCache[key] = value

	if err := os.MkdirAll(filepath.Dir(Path), 0755); err != nil {
		logs.Debugf("can't create cache dir: %s", err)
		return
	}

	// other instances may write the same file
	lock := flock.New(Path + ".lock")
	if err := lock.Lock(); err != nil {
		logs.Debugf("can't lock %q: %s", Path, err)
		return
	}
	defer lock.Unlock()

	for k, v := range diskRead() {
		if _, ok := diskCache[k]; !ok {
			diskCache[k] = v
		}
	}

	b, _ := json.MarshalIndent(diskCache, "", " ")
	if err := os.WriteFile(Path, b, 0644); err != nil {
		logs.Debugf("can't write %q: %s", Path, err)
	}
}

func DiskLoad(keys []string) (string, bool) {
	if Disable {
		return "", false
	}

	diskInit()

	diskMu.Lock()
	defer diskMu.Unlock()

	key := strings.Join(keys, ":")

	if value, ok := diskCache[key]; ok {
		if Refresh {
			if _, ok := reCache[key]; !ok {
				logs.Debugf("cache reset: %q", key)
				reCache[key] = struct{}{}
				return "", false
			}
		}

		logs.Debugf("cache hit: %q %q", key, value)
		return value, true
	}

	logs.Debugf("cache miss: %q", key)
	return "", false
}

func MemStore(keys []string, value string) {
	key := strings.Join(keys, "\x00")

	memMu.Lock()
	defer memMu.Unlock()

	if len(memCache) >= memLimit {
		return
	}
	memCache[key] = value
}

func MemLoad(keys []string) (string, bool) {
	key := strings.Join(keys, "\x00")

	memMu.Lock()
	defer memMu.Unlock()

	if value, ok := memCache[key]; ok {
		return value, true
	}

	return "", false
}

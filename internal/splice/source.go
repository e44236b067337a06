package splice

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Name returns the identifier of the idx-th record of a splice PID, which is
// also the record's file name without extension.
func Name(pid string, idx int) string {
	return fmt.Sprintf("%s_%d", pid, idx)
}

// Path returns the location of the idx-th splice record of pid inside dir.
func Path(dir, pid string, idx int) string {
	return filepath.Join(dir, Name(pid, idx)+".json")
}

// Discover scans dir for files named <pid>_<idx>.json and returns one more
// than the largest index found, so that records 0..n-1 are expected. Gaps in
// the numbering are not detected here; loading a missing index fails for that
// record alone.
func Discover(dir, pid string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("splice: listing records: %w", err)
	}

	re, err := regexp.Compile("^" + regexp.QuoteMeta(pid) + `_(\d+)\.json$`)
	if err != nil {
		return 0, fmt.Errorf("splice: record pattern for pid %q: %w", pid, err)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		n = max(n, idx+1)
	}
	return n, nil
}

package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// maxConflictAttempts bounds the _v2, _v3, ... search before falling back to
// a timestamp suffix.
const maxConflictAttempts = 1000

var versionSuffixPattern = regexp.MustCompile(`^(.*)_v(\d+)$`)

// exists reports whether path is already present on disk. It is a variable
// so tests can substitute a fake filesystem check without touching the real
// one.
var exists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveConflict returns a destination path guaranteed free at plan time,
// appending _v2, _v3, ... (or incrementing an existing _vN suffix) until one
// is found, falling back to a timestamp suffix after maxConflictAttempts.
// Resolution happens at plan time, not execute time, so the plan itself
// records the final destination.
//
// assigned holds destinations already handed out earlier in the same Plan
// call -- a path can collide with one of those even though nothing exists
// there on disk yet, which happens whenever two records resolve to the same
// rule-synthesized name on the same day. The caller is expected to record
// the returned path back into assigned before resolving the next one.
func resolveConflict(path string, now func() string, assigned map[string]bool) string {
	taken := func(p string) bool { return exists(p) || assigned[p] }

	if !taken(path) {
		return path
	}

	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]

	startVersion := 2
	if m := versionSuffixPattern.FindStringSubmatch(stem); m != nil {
		stem = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil {
			startVersion = n + 1
		}
	}

	for v := startVersion; v < startVersion+maxConflictAttempts; v++ {
		candidate := fmt.Sprintf("%s_v%d%s", stem, v, ext)
		if !taken(candidate) {
			return candidate
		}
	}

	return fmt.Sprintf("%s_%s%s", stem, now(), ext)
}

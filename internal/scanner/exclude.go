package scanner

import "strings"

// ExcludedDirNames lists directory names that suppress their entire subtree
// when matched against any path segment.
var ExcludedDirNames = map[string]bool{
	".git": true, ".svn": true, ".hg": true, ".bzr": true,
	".vscode": true, ".idea": true,
	"__pycache__": true, ".pytest_cache": true, ".mypy_cache": true,
	".tox": true, ".nox": true, "node_modules": true, ".npm": true,
	".yarn": true, "venv": true, ".venv": true, "env": true, ".env": true,
	"build": true, "dist": true, ".eggs": true,
	"$RECYCLE.BIN": true, "System Volume Information": true, "WindowsApps": true,
	".Trash": true, ".cache": true, ".dropbox": true, ".dropbox.cache": true,
	".ssh": true, ".gnupg": true, ".aws": true, ".azure": true, ".terraform": true,
}

// ExcludedExtensions lists lowercase, dot-prefixed extensions that are never
// scanned.
var ExcludedExtensions = map[string]bool{
	".exe": true, ".dll": true, ".sys": true, ".msi": true, ".com": true, ".scr": true,
	".bat": true, ".cmd": true, ".ps1": true, ".sh": true, ".bash": true,
	".lnk": true, ".inf": true, ".reg": true, ".ini": true,
	".tmp": true, ".temp": true, ".bak": true, ".swp": true, ".swo": true,
	".lock": true, ".db-journal": true, ".db-wal": true, ".db-shm": true,
}

// IsExcludedDir reports whether name (a single path segment) names an
// excluded directory.
func IsExcludedDir(name string) bool {
	return ExcludedDirNames[name]
}

// IsExcludedExtension reports whether ext (lowercase, dot-prefixed) is
// excluded from scanning.
func IsExcludedExtension(ext string) bool {
	return ExcludedExtensions[strings.ToLower(ext)]
}

// DefaultMinFileSize is the default minimum size in bytes; strictly-smaller
// files are excluded.
const DefaultMinFileSize int64 = 1024

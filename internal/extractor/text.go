package extractor

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// textExtensions is the closed set of extensions read as raw text, plus
// common source-code extensions.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".tsv": true, ".json": true,
	".yaml": true, ".yml": true, ".xml": true, ".html": true, ".log": true,
	".ini": true, ".sql": true,
	".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true,
	".rb": true, ".php": true, ".rs": true, ".sh": true, ".swift": true, ".kt": true,
}

// isTextExtension reports whether ext is handled by extractText.
func isTextExtension(ext string) bool {
	return textExtensions[ext]
}

// extractText reads a file as UTF-8, falling back to Latin-1 (ISO-8859-1)
// decoding to guarantee success -- every byte sequence is valid Latin-1, so
// this fallback never fails.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot fail in practice (every byte maps to a
		// rune); this branch exists only to satisfy the error-returning
		// decoder API.
		return string(data), nil
	}
	return string(decoded), nil
}

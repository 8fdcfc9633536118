package planner

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/localorganizer/organizer/internal/core"
)

// destinationPath synthesizes base/category/(subcategory?)/year/filename.
// filename is already sanitized by the caller.
func destinationPath(base string, c core.Classification, filename string) string {
	parts := []string{base, string(c.Category)}
	if c.Subcategory != "" {
		parts = append(parts, c.Subcategory)
	}
	parts = append(parts, strconv.Itoa(c.Year), filename)
	return filepath.Join(parts...)
}

// resolveFilename picks the Classification's suggested_name when present,
// else synthesizes YYYY-MM-DD__<category>__<subject><ext> from rec/c.
func resolveFilename(rec core.FileRecord, c core.Classification) string {
	if c.SuggestedName != "" {
		return sanitizeFilename(c.SuggestedName)
	}
	dateStr := rec.ModTime.Format("2006-01-02")
	name := fmt.Sprintf("%s__%s__%s%s", dateStr, c.Category, c.Subject, rec.Extension)
	return sanitizeFilename(name)
}

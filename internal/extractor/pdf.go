package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfDefaultMaxPages is the default number of leading pages extracted from a
// PDF.
const pdfDefaultMaxPages = 5

// extractPDF returns the textual content of the first maxPages pages of the
// PDF at path, each prefixed with a page marker. The PDF library is compiled
// in, so there is no separate capability check; any open or read failure is
// returned as an error, which the caller turns into a nil excerpt.
func extractPDF(path string, maxPages int) (string, error) {
	if maxPages <= 0 {
		maxPages = pdfDefaultMaxPages
	}

	r, f, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	total := r.NumPage()
	if total > maxPages {
		total = maxPages
	}

	var sb strings.Builder
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			continue
		}
		fmt.Fprintf(&sb, "--- page %d ---\n%s\n", i, text)
	}

	return sb.String(), nil
}

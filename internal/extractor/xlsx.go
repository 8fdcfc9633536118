package extractor

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxMaxSheets and xlsxMaxRows bound the spreadsheet excerpt to at most
// five sheets and up to ten body rows per sheet.
const (
	xlsxMaxSheets = 5
	xlsxMaxRows   = 10
)

// extractXLSX formats, for each of at most xlsxMaxSheets sheets, the column
// names and up to xlsxMaxRows body rows.
func extractXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) > xlsxMaxSheets {
		sheets = sheets[:xlsxMaxSheets]
	}

	var sb strings.Builder
	for _, sheet := range sheets {
		rows, rowsErr := f.GetRows(sheet)
		if rowsErr != nil || len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "--- sheet %s ---\n", sheet)
		fmt.Fprintf(&sb, "columns: %s\n", strings.Join(rows[0], ", "))

		body := rows[1:]
		if len(body) > xlsxMaxRows {
			body = body[:xlsxMaxRows]
		}
		for _, row := range body {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

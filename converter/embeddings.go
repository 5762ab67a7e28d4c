package converter

// embeddings.go — embedded workbook access via the excelize library.
// Charts that carry no cached values reference their source data as an
// embedded XLSX under word/embeddings/; its first sheet stands in for the
// missing caches.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// workbookRows returns the first sheet's rows of an in-memory workbook,
// truncated to limit rows (0 means unlimited).
func workbookRows(data []byte, limit int) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open embedded workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

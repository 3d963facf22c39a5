package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// ingestPDF extracts text row by row from every page. Lines that pair a
// date-like token with a numeric token become candidate transaction rows
// downstream; everything else is retained so the validator can reason about
// the rejection.
func ingestPDF(payload []byte) ([]RawRow, error) {
	lines, err := extractPDFLines(payload)
	if err != nil {
		return nil, &domain.ParseError{Format: "pdf", Err: err}
	}

	rows := make([]RawRow, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, RawRow{Line: line})
	}
	return rows, nil
}

// extractPDFLines isolates the third-party reader, which panics on some
// malformed documents instead of returning an error.
func extractPDFLines(payload []byte) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, err
	}

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		textRows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range textRows {
			var sb strings.Builder
			for i, word := range row.Content {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			lines = append(lines, sb.String())
		}
	}
	return lines, nil
}

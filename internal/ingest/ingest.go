// Package ingest turns raw file payloads into untyped tabular rows.
//
// Delimited and spreadsheet formats yield header-keyed cell maps; PDF and
// word-processed documents yield raw text lines that downstream validation
// scores for financial content.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// Format is the declared input format of an upload.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// RawRow is one untyped row of an ingested document. Tabular sources fill
// Cells (header name, lower-cased, to cell value); text-oriented sources
// fill Line instead.
type RawRow struct {
	Cells map[string]string
	Line  string
}

// IsTabular reports whether the row came from a header-keyed table.
func (r RawRow) IsTabular() bool {
	return r.Cells != nil
}

// Cell returns the value for a header name, tolerating surrounding
// whitespace in the stored value.
func (r RawRow) Cell(header string) string {
	if r.Cells == nil {
		return ""
	}
	return strings.TrimSpace(r.Cells[header])
}

// DetectFormat maps a filename extension to a Format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx", ".xls":
		return FormatXLSX, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", &domain.ParseError{
			Format: strings.TrimPrefix(filepath.Ext(filename), "."),
			Err:    fmt.Errorf("unsupported file extension %q", filepath.Ext(filename)),
		}
	}
}

// Ingest decodes payload as the declared format and returns its raw rows.
// It fails with *domain.ParseError only when the payload cannot be decoded
// as that format at all; a decodable document with no usable content returns
// an empty row slice and is rejected later by validation.
func Ingest(payload []byte, format Format) ([]RawRow, error) {
	switch format {
	case FormatCSV:
		return ingestDelimited(payload, ',')
	case FormatTSV:
		return ingestDelimited(payload, '\t')
	case FormatXLSX:
		return ingestWorkbook(payload)
	case FormatPDF:
		return ingestPDF(payload)
	case FormatDOCX:
		return ingestDOCX(payload)
	default:
		return nil, &domain.ParseError{
			Format: string(format),
			Err:    fmt.Errorf("unknown format"),
		}
	}
}

// headerLooksFinancial reports whether a header row carries the expected
// Date and Amount columns (case-insensitive).
func headerLooksFinancial(headers []string) bool {
	var hasDate, hasAmount bool
	for _, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			hasDate = true
		case "amount":
			hasAmount = true
		}
	}
	return hasDate && hasAmount
}

// rowsFromTable converts a header row plus data rows into RawRows. Short
// rows are padded implicitly; extra cells beyond the header are ignored.
func rowsFromTable(headers []string, records [][]string) []RawRow {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}
	rows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		empty := true
		cells := make(map[string]string, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			cells[key] = v
			if strings.TrimSpace(v) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, RawRow{Cells: cells})
	}
	return rows
}

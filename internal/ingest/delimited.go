package ingest

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// candidate delimiters tried when the declared comma yields a single-column
// header. Real bank exports show up as semicolon- or pipe-separated often
// enough that a strict comma reader would reject them outright.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

func ingestDelimited(payload []byte, comma rune) ([]RawRow, error) {
	payload = bytes.TrimPrefix(payload, []byte("\xef\xbb\xbf"))

	records, err := readDelimited(payload, comma)
	if err != nil {
		return nil, &domain.ParseError{Format: "delimited", Err: err}
	}
	if len(records) > 0 && len(records[0]) <= 1 {
		if sniffed, ok := sniffDelimiter(records, payload, comma); ok {
			records = sniffed
		}
	}
	if len(records) == 0 {
		return nil, nil
	}

	header, data := splitHeader(records)
	if header == nil {
		return nil, nil
	}
	return rowsFromTable(header, data), nil
}

func readDelimited(payload []byte, comma rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	return r.ReadAll()
}

// sniffDelimiter retries the payload with the other candidate delimiters and
// keeps the first one that produces a multi-column header.
func sniffDelimiter(records [][]string, payload []byte, declared rune) ([][]string, bool) {
	for _, c := range candidateDelimiters {
		if c == declared {
			continue
		}
		alt, err := readDelimited(payload, c)
		if err != nil || len(alt) == 0 {
			continue
		}
		if len(alt[0]) > 1 {
			return alt, true
		}
	}
	return records, false
}

// splitHeader finds the first non-empty record and treats it as the header
// row; everything after it is data.
func splitHeader(records [][]string) (header []string, data [][]string) {
	for i, rec := range records {
		if recordEmpty(rec) {
			continue
		}
		return rec, records[i+1:]
	}
	return nil, nil
}

func recordEmpty(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

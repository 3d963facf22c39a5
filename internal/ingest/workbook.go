package ingest

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// ingestWorkbook scans every sheet for a Date+Amount header and ingests the
// first one that has it. Workbooks without a recognizable sheet fall back to
// the first non-empty sheet so validation can explain the rejection.
func ingestWorkbook(payload []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.ParseError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	var fallback [][]string
	for _, sheet := range f.GetSheetList() {
		records, err := f.GetRows(sheet)
		if err != nil || len(records) == 0 {
			continue
		}
		header, data := splitHeader(records)
		if header == nil {
			continue
		}
		if headerLooksFinancial(header) {
			return rowsFromTable(header, data), nil
		}
		if fallback == nil {
			fallback = records
		}
	}
	if fallback != nil {
		header, data := splitHeader(fallback)
		return rowsFromTable(header, data), nil
	}
	return nil, nil
}

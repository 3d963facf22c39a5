package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// ingestDOCX unpacks the document archive and parses its body XML. The
// first table whose header row carries Date and Amount columns is ingested
// as tabular rows; remaining tables and paragraphs are kept as text lines
// for the validator.
func ingestDOCX(payload []byte) ([]RawRow, error) {
	body, err := readDocumentXML(payload)
	if err != nil {
		return nil, &domain.ParseError{Format: "docx", Err: err}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, &domain.ParseError{Format: "docx", Err: fmt.Errorf("document.xml: %w", err)}
	}

	var rows []RawRow
	tabularDone := false
	for _, tbl := range doc.FindElements("//w:tbl") {
		records := tableRecords(tbl)
		if len(records) == 0 {
			continue
		}
		if !tabularDone && headerLooksFinancial(records[0]) {
			rows = append(rows, rowsFromTable(records[0], records[1:])...)
			tabularDone = true
			continue
		}
		for _, rec := range records {
			line := strings.TrimSpace(strings.Join(rec, " "))
			if line != "" {
				rows = append(rows, RawRow{Line: line})
			}
		}
	}

	for _, p := range doc.FindElements("//w:body/w:p") {
		line := strings.TrimSpace(elementText(p))
		if line != "" {
			rows = append(rows, RawRow{Line: line})
		}
	}
	return rows, nil
}

func readDocumentXML(payload []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing word/document.xml")
}

// tableRecords flattens a w:tbl element into rows of cell text.
func tableRecords(tbl *etree.Element) [][]string {
	var records [][]string
	for _, tr := range tbl.FindElements(".//w:tr") {
		var rec []string
		for _, tc := range tr.FindElements(".//w:tc") {
			rec = append(rec, strings.TrimSpace(elementText(tc)))
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}

// elementText concatenates all w:t runs beneath an element.
func elementText(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

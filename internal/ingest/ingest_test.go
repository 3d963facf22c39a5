package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"statement.csv", FormatCSV, false},
		{"statement.CSV", FormatCSV, false},
		{"export.txt", FormatCSV, false},
		{"export.tsv", FormatTSV, false},
		{"book.xlsx", FormatXLSX, false},
		{"book.xls", FormatXLSX, false},
		{"statement.pdf", FormatPDF, false},
		{"letter.docx", FormatDOCX, false},
		{"archive.zip", "", true},
		{"noextension", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, got, tt.want)
			}
			if tt.wantErr {
				var perr *domain.ParseError
				if !errors.As(err, &perr) {
					t.Errorf("error is %T, want *domain.ParseError", err)
				}
			}
		})
	}
}

func TestIngestCSV(t *testing.T) {
	rows, err := Ingest([]byte(domain.SampleCSV), FormatCSV)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	first := rows[0]
	if !first.IsTabular() {
		t.Fatal("CSV rows must be tabular")
	}
	if got := first.Cell("date"); got != "2025-01-01" {
		t.Errorf("date cell = %q", got)
	}
	if got := first.Cell("amount"); got != "5200" {
		t.Errorf("amount cell = %q", got)
	}
	if got := first.Cell("category"); got != "Income" {
		t.Errorf("category cell = %q", got)
	}
}

func TestIngestCSVWithBOM(t *testing.T) {
	payload := append([]byte("\xef\xbb\xbf"), []byte("Date,Amount\n2025-01-01,5200\n")...)
	rows, err := Ingest(payload, FormatCSV)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := rows[0].Cell("date"); got != "2025-01-01" {
		t.Errorf("BOM corrupted the header: date cell = %q", got)
	}
}

func TestIngestSniffsDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"semicolon", "Date;Amount;Description\n2025-01-01;5200;Salary\n"},
		{"pipe", "Date|Amount|Description\n2025-01-01|5200|Salary\n"},
		{"tab declared csv", "Date\tAmount\tDescription\n2025-01-01\t5200\tSalary\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Ingest([]byte(tt.payload), FormatCSV)
			if err != nil {
				t.Fatalf("Ingest: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(rows))
			}
			if got := rows[0].Cell("amount"); got != "5200" {
				t.Errorf("amount cell = %q, delimiter not sniffed", got)
			}
		})
	}
}

func TestIngestCSVSkipsBlankRows(t *testing.T) {
	payload := "Date,Amount\n\n2025-01-01,5200\n,,\n"
	rows, err := Ingest([]byte(payload), FormatCSV)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestIngestEmptyCSV(t *testing.T) {
	rows, err := Ingest(nil, FormatCSV)
	if err != nil {
		t.Fatalf("empty payload must not be a parse error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestIngestXLSX(t *testing.T) {
	f := excelize.NewFile()
	records := [][]interface{}{
		{"Date", "Amount", "Category", "Description"},
		{"2025-01-01", "5200", "Income", "Salary"},
		{"2025-01-02", "-1200", "Housing", "Rent"},
	}
	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &rec); err != nil {
			t.Fatalf("build workbook: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, ingestErr := Ingest(buf.Bytes(), FormatXLSX)
	if ingestErr != nil {
		t.Fatalf("Ingest: %v", ingestErr)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[1].Cell("amount"); got != "-1200" {
		t.Errorf("amount cell = %q", got)
	}
}

func TestIngestXLSXCorrupt(t *testing.T) {
	_, err := Ingest([]byte("not a workbook"), FormatXLSX)
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *domain.ParseError", err)
	}
}

func TestIngestPDFCorrupt(t *testing.T) {
	_, err := Ingest([]byte("%PDF-garbage"), FormatPDF)
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *domain.ParseError", err)
	}
}

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Monthly statement</w:t></w:r></w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>Date</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Amount</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr><w:tc><w:p><w:r><w:t>2025-01-01</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>5200</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr><w:tc><w:p><w:r><w:t>2025-01-02</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>-1200</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestIngestDOCX(t *testing.T) {
	rows, err := Ingest(buildDOCX(t, docxBody), FormatDOCX)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var tabular, text int
	for _, row := range rows {
		if row.IsTabular() {
			tabular++
		} else {
			text++
		}
	}
	if tabular != 2 {
		t.Errorf("got %d tabular rows, want 2", tabular)
	}
	if text != 1 {
		t.Errorf("got %d text lines, want 1 (the intro paragraph)", text)
	}

	for _, row := range rows {
		if row.IsTabular() && row.Cell("date") == "2025-01-01" {
			if got := row.Cell("amount"); got != "5200" {
				t.Errorf("amount cell = %q", got)
			}
			return
		}
	}
	t.Error("first table row not found")
}

func TestIngestDOCXNoArchive(t *testing.T) {
	_, err := Ingest([]byte("plain text, not a zip"), FormatDOCX)
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *domain.ParseError", err)
	}
}

func TestIngestUnknownFormat(t *testing.T) {
	_, err := Ingest([]byte("x"), Format("yaml"))
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *domain.ParseError", err)
	}
}

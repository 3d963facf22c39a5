// Package normalize converts raw ingested rows into typed transactions.
package normalize

import (
	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/ingest"
)

// Result is the outcome of a normalization pass. Skipped counts rows whose
// date or amount could not be parsed; Dropped counts rows with a zero
// amount, which carry no analytical signal.
type Result struct {
	Transactions domain.TransactionSet
	Skipped      int
	Dropped      int
	Total        int
}

// Normalizer turns raw rows into transactions, classifying descriptions
// that arrive without a category.
type Normalizer struct {
	cat *categorizer
}

func New() *Normalizer {
	return &Normalizer{cat: newCategorizer()}
}

// Normalize converts rows to transactions. Unparseable rows are skipped,
// never repaired, and the amount sign is always taken verbatim from the
// source. It fails with *domain.ValidationError when every row was skipped
// or dropped, leaving nothing to analyze.
func (n *Normalizer) Normalize(rows []ingest.RawRow) (Result, error) {
	res := Result{Total: len(rows)}
	for _, row := range rows {
		tx, ok := n.normalizeRow(row)
		if !ok {
			res.Skipped++
			continue
		}
		if tx.Amount.IsZero() {
			res.Dropped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	if len(res.Transactions) == 0 {
		return res, &domain.ValidationError{
			Reason:  domain.ReasonAllRowsSkipped,
			Message: "no rows survived normalization",
		}
	}
	return res, nil
}

func (n *Normalizer) normalizeRow(row ingest.RawRow) (domain.Transaction, bool) {
	if row.IsTabular() {
		return n.normalizeTabular(row)
	}
	fields, ok := ScanLine(row.Line)
	if !ok {
		return domain.Transaction{}, false
	}
	return domain.Transaction{
		Date:        fields.Date,
		Amount:      fields.Amount,
		Category:    n.cat.categorize(fields.Description, fields.Amount.IsPositive()),
		Description: fields.Description,
	}, true
}

func (n *Normalizer) normalizeTabular(row ingest.RawRow) (domain.Transaction, bool) {
	date, ok := ParseDate(row.Cell("date"))
	if !ok {
		return domain.Transaction{}, false
	}
	amount, ok := ParseAmount(row.Cell("amount"))
	if !ok {
		return domain.Transaction{}, false
	}
	desc := row.Cell("description")

	// An explicit but unrecognized category maps to Other; only a missing
	// category invokes the classifier.
	var category domain.Category
	if raw := row.Cell("category"); raw != "" {
		if parsed, known := domain.ParseCategory(raw); known {
			category = parsed
		} else {
			category = domain.CategoryOther
		}
	} else {
		category = n.cat.categorize(desc, amount.IsPositive())
	}

	return domain.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: desc,
	}, true
}

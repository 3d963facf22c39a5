// Package validate scores ingested rows for financial content before any
// normalization work is spent on them.
package validate

import (
	"fmt"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/ingest"
	"github.com/sthama121-del/ai-financial-coach/internal/normalize"
)

// Policy holds the acceptance thresholds. MinCandidateRows is a floor:
// documents with fewer candidate rows score zero regardless of how well
// those rows parse, so a stray date in a prose document cannot pass.
type Policy struct {
	MinCandidateRows int
	ScoreThreshold   float64
}

func DefaultPolicy() Policy {
	return Policy{MinCandidateRows: 3, ScoreThreshold: 0.5}
}

// Result reports how a document scored.
type Result struct {
	CandidateRows int
	FinancialRows int
	Score         float64
}

// Validate scores rows and rejects documents that are not plausibly
// financial. Candidate rows are tabular rows and text lines carrying at
// least one digit; a candidate counts as financial when it pairs a
// parseable date with a parseable signed amount. Rejections carry a
// *domain.ValidationError naming the reason.
func Validate(rows []ingest.RawRow, policy Policy) (Result, error) {
	var res Result
	for _, row := range rows {
		if row.IsTabular() {
			res.CandidateRows++
			if rowIsFinancial(row) {
				res.FinancialRows++
			}
			continue
		}
		if !normalize.ContainsNumber(row.Line) {
			continue
		}
		res.CandidateRows++
		if _, ok := normalize.ScanLine(row.Line); ok {
			res.FinancialRows++
		}
	}

	if res.CandidateRows == 0 {
		return res, &domain.ValidationError{
			Reason:  domain.ReasonNoStructure,
			Message: "document has no tabular rows or numeric lines",
		}
	}
	if res.CandidateRows >= policy.MinCandidateRows {
		res.Score = float64(res.FinancialRows) / float64(res.CandidateRows)
	}
	if res.Score < policy.ScoreThreshold {
		return res, &domain.ValidationError{
			Reason: domain.ReasonNotFinancial,
			Message: fmt.Sprintf("financial content score %.2f below threshold %.2f (%d of %d candidate rows)",
				res.Score, policy.ScoreThreshold, res.FinancialRows, res.CandidateRows),
		}
	}
	return res, nil
}

func rowIsFinancial(row ingest.RawRow) bool {
	if _, ok := normalize.ParseDate(row.Cell("date")); !ok {
		return false
	}
	_, ok := normalize.ParseAmount(row.Cell("amount"))
	return ok
}

package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts is the ordered list of accepted date formats; the first match
// wins. ISO comes first because it is the documented CSV convention.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

var (
	dateTokenRe = regexp.MustCompile(
		`\d{4}[-/]\d{1,2}[-/]\d{1,2}` +
			`|\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}` +
			`|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}` +
			`|\d{1,2} (?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{4}`)
	amountTokenRe = regexp.MustCompile(`[-+(]?[$€£]?\d[\d,]*(?:\.\d+)?\)?`)
	digitRe       = regexp.MustCompile(`\d`)
	amountCleanRe = regexp.MustCompile(`[$€£,\s]`)
)

// ParseDate tries the accepted layouts in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a signed decimal, stripping currency symbols and
// thousands separators. Accounting-style parentheses mean negative. The
// sign is otherwise taken verbatim; it is never inferred.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = amountCleanRe.ReplaceAllString(s, "")
	if s == "" || !digitRe.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// ContainsNumber reports whether s carries at least one digit.
func ContainsNumber(s string) bool {
	return digitRe.MatchString(s)
}

// LineFields is a candidate transaction scanned out of a free text line
// (PDF or word-processed sources).
type LineFields struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// ScanLine attempts line-oriented table detection: a line is a candidate
// transaction when it pairs a date-like token with a parseable signed
// amount. The amount is the last numeric token outside the date, matching
// the trailing-amount convention of statement layouts.
func ScanLine(line string) (LineFields, bool) {
	loc := dateTokenRe.FindStringIndex(line)
	if loc == nil {
		return LineFields{}, false
	}
	dateToken := line[loc[0]:loc[1]]
	date, ok := ParseDate(dateToken)
	if !ok {
		return LineFields{}, false
	}

	rest := line[:loc[0]] + line[loc[1]:]
	var amount decimal.Decimal
	var amountToken string
	for _, tok := range amountTokenRe.FindAllString(rest, -1) {
		if a, ok := ParseAmount(tok); ok {
			amount = a
			amountToken = tok
		}
	}
	if amountToken == "" {
		return LineFields{}, false
	}

	desc := strings.Replace(rest, amountToken, "", 1)
	desc = strings.Join(strings.Fields(desc), " ")
	return LineFields{Date: date, Amount: amount, Description: desc}, true
}

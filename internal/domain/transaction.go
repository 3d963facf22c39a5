package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one entry of the fixed transaction taxonomy. Input categories
// that do not match any entry normalize to CategoryOther, never dropped.
type Category string

const (
	CategoryIncome        Category = "Income"
	CategoryHousing       Category = "Housing"
	CategoryFood          Category = "Food"
	CategoryEntertainment Category = "Entertainment"
	CategoryDebtPayment   Category = "Debt Payment"
	CategorySavings       Category = "Savings"
	CategoryOther         Category = "Other"
)

// Categories lists the taxonomy in a stable order.
func Categories() []Category {
	return []Category{
		CategoryIncome,
		CategoryHousing,
		CategoryFood,
		CategoryEntertainment,
		CategoryDebtPayment,
		CategorySavings,
		CategoryOther,
	}
}

// ParseCategory matches s against the taxonomy, case-insensitively and
// ignoring surrounding whitespace. The second return value reports whether
// the input matched; unmatched inputs map to CategoryOther.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if norm == strings.ToLower(string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}

// Transaction is one canonical financial transaction. Amount is signed:
// positive means income, negative means expense. The sign is always taken
// verbatim from the source; it is never inferred from the category.
// Amount is never zero - zero-amount rows are dropped during normalization.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    Category
	Description string
}

// IsIncome reports whether the transaction is an inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// TransactionSet is an ordered sequence of transactions. Insertion order is
// irrelevant to analysis but preserved for audit.
type TransactionSet []Transaction

// Span returns the earliest and latest transaction dates. ok is false for an
// empty set.
func (s TransactionSet) Span() (first, last time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = s[0].Date, s[0].Date
	for _, t := range s[1:] {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}
	return first, last, true
}

// Package agents implements the four analysis agents. Each agent is a
// PromptSpec: a deterministic rule function plus the task sentence the
// insight engine hands to the model when AI generation is available.
package agents

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// Estimation policy for debt accounts. Bank exports carry payments only, so
// rate and balance come from a keyword heuristic over the description. The
// balance multiple approximates remaining term in months.
var debtKindPolicies = []struct {
	keyword         string
	annualRate      float64
	balanceMultiple int64
}{
	{"mortgage", 0.065, 200},
	{"student", 0.055, 60},
	{"credit", 0.22, 12}, // before car: "card" contains "car"
	{"car", 0.075, 36},
	{"auto", 0.075, 36},
}

const (
	defaultDebtRate            = 0.12
	defaultDebtBalanceMultiple = 24
)

// DeriveDebts groups Debt Payment outflows by description into estimated
// accounts. MonthlyPayment averages over the months the data spans so a
// three-month export does not triple the obligation.
func DeriveDebts(txs domain.TransactionSet, months int) []domain.DebtAccount {
	if months < 1 {
		months = 1
	}
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Category != domain.CategoryDebtPayment || tx.IsIncome() {
			continue
		}
		name := strings.Join(strings.Fields(tx.Description), " ")
		if name == "" {
			name = "unlabeled debt"
		}
		totals[name] = totals[name].Add(tx.Amount.Abs())
	}

	debts := make([]domain.DebtAccount, 0, len(totals))
	for name, total := range totals {
		monthly := total.Div(decimal.NewFromInt(int64(months)))
		rate, multiple := estimateDebtKind(name)
		debts = append(debts, domain.DebtAccount{
			Name:             name,
			MonthlyPayment:   monthly,
			EstimatedBalance: monthly.Mul(decimal.NewFromInt(multiple)),
			AnnualRate:       rate,
		})
	}
	sort.Slice(debts, func(i, j int) bool { return debts[i].Name < debts[j].Name })
	return debts
}

func estimateDebtKind(name string) (rate float64, balanceMultiple int64) {
	lower := strings.ToLower(name)
	for _, p := range debtKindPolicies {
		if strings.Contains(lower, p.keyword) {
			return p.annualRate, p.balanceMultiple
		}
	}
	return defaultDebtRate, defaultDebtBalanceMultiple
}

// SortSnowball orders debts smallest balance first, name as tiebreak. The
// original slice is untouched.
func SortSnowball(debts []domain.DebtAccount) []domain.DebtAccount {
	out := append([]domain.DebtAccount(nil), debts...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EstimatedBalance.Equal(out[j].EstimatedBalance) {
			return out[i].EstimatedBalance.LessThan(out[j].EstimatedBalance)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SortAvalanche orders debts highest rate first; ties break toward the
// smaller balance, then name.
func SortAvalanche(debts []domain.DebtAccount) []domain.DebtAccount {
	out := append([]domain.DebtAccount(nil), debts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnnualRate != out[j].AnnualRate {
			return out[i].AnnualRate > out[j].AnnualRate
		}
		if !out[i].EstimatedBalance.Equal(out[j].EstimatedBalance) {
			return out[i].EstimatedBalance.LessThan(out[j].EstimatedBalance)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

package normalize

import (
	"strings"

	"github.com/jbrukh/bayesian"

	"github.com/sthama121-del/ai-financial-coach/internal/domain"
)

// seedCorpus trains the description classifier. One document per taxonomy
// category, built from the merchant/keyword vocabulary that recurs in real
// bank exports.
var seedCorpus = map[domain.Category][]string{
	domain.CategoryIncome: {
		"salary", "paycheck", "payroll", "bonus", "refund", "deposit",
		"wages", "income", "freelance", "interest", "dividend",
	},
	domain.CategoryHousing: {
		"rent", "mortgage", "landlord", "property", "hoa", "utilities",
		"electric", "electricity", "water", "internet", "cable", "council",
	},
	domain.CategoryFood: {
		"grocery", "groceries", "supermarket", "restaurant", "food",
		"dining", "coffee", "lunch", "dinner", "breakfast", "takeaway",
	},
	domain.CategoryEntertainment: {
		"movie", "cinema", "netflix", "spotify", "gaming", "concert",
		"theater", "streaming", "subscription", "tickets",
	},
	domain.CategoryDebtPayment: {
		"credit", "card", "loan", "repayment", "student", "debt",
		"financing", "installment", "overdraft",
	},
	domain.CategorySavings: {
		"savings", "investment", "retirement", "401k", "isa", "ira",
		"pension", "emergency", "fund", "vanguard", "brokerage",
	},
	domain.CategoryOther: {
		"atm", "withdrawal", "fee", "charge", "cash", "misc", "transfer",
		"cheque", "adjustment",
	},
}

// categorizer assigns a taxonomy category to transactions whose source row
// carried no category at all, using a TF-IDF naive Bayes classifier over the
// description text. Rows that do carry a category never reach it - an
// unmatched explicit category normalizes to Other instead.
type categorizer struct {
	classes []bayesian.Class
	cl      *bayesian.Classifier
	vocab   map[string]struct{}
}

func newCategorizer() *categorizer {
	c := &categorizer{vocab: make(map[string]struct{})}
	// Stable class order keeps tie-breaks deterministic across runs.
	for _, cat := range domain.Categories() {
		c.classes = append(c.classes, bayesian.Class(cat))
	}
	c.cl = bayesian.NewClassifierTfIdf(c.classes...)
	for _, class := range c.classes {
		c.cl.Learn(seedCorpus[domain.Category(class)], class)
		for _, term := range seedCorpus[domain.Category(class)] {
			c.vocab[term] = struct{}{}
		}
	}
	c.cl.ConvertTermsFreqToTfIdf()
	return c
}

// categorize picks the best-scoring class when the description produces a
// strict winner; otherwise it falls back on the sign of the amount. Scoring
// only considers terms the classifier was trained on: smoothing makes
// LogScores declare a strict winner even for text it has never seen, so
// unknown terms must not reach it.
func (c *categorizer) categorize(description string, income bool) domain.Category {
	terms := c.knownTerms(description)
	if len(terms) > 0 {
		_, inx, strict := c.cl.LogScores(terms)
		if strict {
			return domain.Category(c.classes[inx])
		}
	}
	if income {
		return domain.CategoryIncome
	}
	return domain.CategoryOther
}

// knownTerms tokenizes the description and keeps only vocabulary the
// classifier was seeded with.
func (c *categorizer) knownTerms(description string) []string {
	all := tokenize(description)
	terms := all[:0]
	for _, t := range all {
		if _, ok := c.vocab[t]; ok {
			terms = append(terms, t)
		}
	}
	return terms
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]\"'")
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

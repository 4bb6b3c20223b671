// Package nlp turns free-form Indonesian chat text into a structured
// transaction candidate. It is a rule engine over ordered keyword tables and
// regex patterns: no model inference, no I/O, no state. Parsing never fails;
// missing signals surface as sentinel zero values and a lower confidence.
package nlp

import (
	"math"
	"strings"
	"time"
)

type Intent string

const (
	IntentExpense  Intent = "expense"
	IntentIncome   Intent = "income"
	IntentTransfer Intent = "transfer"
)

// ParsedTransaction is the result of one Parse call. It carries no identity;
// every call builds a fresh value owned by the caller.
type ParsedTransaction struct {
	Intent      Intent    `json:"intent"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Wallet      string    `json:"wallet,omitempty"`
	Description string    `json:"description"`
	Confidence  float64   `json:"confidence"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	// Overall confidence is a weighted sum of the three gating extractors.
	// Wallet and description are informational and carry no weight.
	intentWeight   = 0.3
	amountWeight   = 0.4
	categoryWeight = 0.3

	maxDescriptionLen = 100

	defaultCurrency = "IDR"

	// CategoryFallback labels a transaction no category keyword matched.
	CategoryFallback = "Lainnya"
	// CategoryIncomeFallback labels an income transaction with no matched
	// category keyword.
	CategoryIncomeFallback = "Pemasukan"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse classifies text into a transaction candidate. It is total: any input,
// including the empty string, yields a result. A zero Amount together with a
// zero amount confidence means no amount could be extracted and the caller
// should confirm with the user instead of recording.
func (p *Parser) Parse(text string) ParsedTransaction {
	lowered := strings.TrimSpace(strings.ToLower(text))

	intent, intentConf := p.extractIntent(lowered)
	amount, amountConf := p.extractAmount(lowered)
	category, categoryConf := p.extractCategory(lowered, intent)
	wallet, _ := p.extractWallet(lowered)
	description := p.extractDescription(lowered, category)

	confidence := intentWeight*intentConf + amountWeight*amountConf + categoryWeight*categoryConf

	return ParsedTransaction{
		Intent:      intent,
		Amount:      amount,
		Currency:    defaultCurrency,
		Category:    category,
		Wallet:      wallet,
		Description: description,
		Confidence:  round2(confidence),
		Timestamp:   time.Now().UTC(),
	}
}

// extractIntent scans the three keyword families in fixed priority order:
// income beats transfer beats expense when a text mentions several. No match
// defaults to expense at a deliberately lower, guessed confidence.
func (p *Parser) extractIntent(text string) (Intent, float64) {
	for _, keyword := range incomeKeywords {
		if strings.Contains(text, keyword) {
			return IntentIncome, 0.95
		}
	}

	for _, keyword := range transferKeywords {
		if strings.Contains(text, keyword) {
			return IntentTransfer, 0.90
		}
	}

	for _, keyword := range expenseKeywords {
		if strings.Contains(text, keyword) {
			return IntentExpense, 0.95
		}
	}

	return IntentExpense, 0.70
}

// extractAmount tries the number-word table first: a word hit only counts when
// the text also carries a ribu/juta scale marker. Otherwise the numeric regex
// patterns run in priority order and the first positive conversion wins.
// (0, 0) is the extraction-failed sentinel.
func (p *Parser) extractAmount(text string) (float64, float64) {
	for _, nw := range numberWords {
		if !strings.Contains(text, nw.word) {
			continue
		}
		if strings.Contains(text, "ribu") || strings.Contains(text, "rb") {
			return float64(nw.value * 1_000), 0.85
		}
		if strings.Contains(text, "juta") || strings.Contains(text, "jt") {
			return float64(nw.value * 1_000_000), 0.85
		}
	}

	for _, pattern := range amountPatterns {
		groups := pattern.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		amount, ok := pattern.convert(groups)
		if ok && amount > 0 {
			return amount, 0.95
		}
	}

	return 0, 0
}

// extractCategory returns the first category whose keyword list contains a
// substring of the text, in table order. Earlier, shorter keywords can shadow
// later, more specific ones; the table order is the tie-break, by contract.
func (p *Parser) extractCategory(text string, intent Intent) (string, float64) {
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.name, 0.95
			}
		}
	}

	if intent == IntentIncome {
		return CategoryIncomeFallback, 0.70
	}
	return CategoryFallback, 0.50
}

func (p *Parser) extractWallet(text string) (string, float64) {
	for _, rule := range walletRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.name, 0.95
			}
		}
	}
	return "", 0
}

// extractDescription trims and truncates the source text; an empty text falls
// back to the resolved category label so the description is never blank.
func (p *Parser) extractDescription(text, category string) string {
	desc := strings.TrimSpace(text)
	if runes := []rune(desc); len(runes) > maxDescriptionLen {
		desc = string(runes[:maxDescriptionLen]) + "..."
	}
	if desc == "" {
		return category
	}
	return desc
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package receipt structures OCR-extracted receipt text into merchant, total,
// line items, date and payment method. Like the chat parser it is a pure rule
// engine: image decoding and OCR happen upstream, this package only ever sees
// text. Garbled lines are skipped, never fatal; a zero TotalAmount is the
// signal that the receipt could not be read.
package receipt

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Item is one recognized receipt line.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Data is the structured form of one receipt. RawText keeps the full OCR
// source for audit and debugging.
type Data struct {
	MerchantName  string  `json:"merchantName,omitempty"`
	TotalAmount   float64 `json:"totalAmount"`
	Items         []Item  `json:"items"`
	Date          string  `json:"date,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Confidence    float64 `json:"confidence"`
	RawText       string  `json:"rawText"`
}

const itemCategoryFallback = "Lainnya"

type Structurer struct{}

func NewStructurer() *Structurer {
	return &Structurer{}
}

// Structure extracts all fields from raw OCR text. Confidence is additive
// presence scoring: 0.3 for a merchant, 0.4 for a positive total, 0.3 for at
// least one item, capped at 1.0.
func (s *Structurer) Structure(rawText string) Data {
	lowered := strings.ToLower(rawText)

	merchant := s.extractMerchant(lowered)
	total := s.extractTotalAmount(lowered)
	items := s.extractItems(lowered)
	date := s.extractDate(lowered)
	paymentMethod := s.extractPaymentMethod(lowered)

	return Data{
		MerchantName:  merchant,
		TotalAmount:   total,
		Items:         items,
		Date:          date,
		PaymentMethod: paymentMethod,
		Confidence:    s.scoreConfidence(merchant, total, items),
		RawText:       rawText,
	}
}

// extractMerchant tries the known-merchant patterns first, then falls back to
// the first non-blank line. A first line that is itself a labeled total is not
// a merchant name; single-line "TOTAL: Rp ..." receipts stay merchant-less.
func (s *Structurer) extractMerchant(text string) string {
	for _, pattern := range merchantPatterns {
		if match := pattern.FindString(text); match != "" {
			return titleCase(match)
		}
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 {
		return ""
	}

	first := strings.TrimSpace(lines[0])
	if first == "" {
		return ""
	}
	for _, pattern := range totalPatterns {
		if pattern.MatchString(first) {
			return ""
		}
	}

	return titleCase(first)
}

// extractTotalAmount prefers a label-anchored amount. Thousands separators are
// stripped before conversion, which assumes Indonesian grouping: a true
// decimal like "12.50" reads as 1250. Without a labeled total the largest
// digit run of length >= 4 anywhere in the text is used.
func (s *Structurer) extractTotalAmount(text string) float64 {
	for _, pattern := range totalPatterns {
		groups := pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		raw := separatorReplacer.ReplaceAllString(groups[1], "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return amount
	}

	var largest float64
	for _, match := range bigNumberPattern.FindAllString(text, -1) {
		if n, err := strconv.ParseFloat(match, 64); err == nil && n > largest {
			largest = n
		}
	}
	return largest
}

// extractItems runs the item pattern per physical line. Lines that do not
// match, or whose price fails conversion, are skipped silently: partial OCR
// output must not abort the parse.
func (s *Structurer) extractItems(text string) []Item {
	var items []Item

	for _, line := range strings.Split(text, "\n") {
		groups := itemPattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}

		name := strings.TrimSpace(groups[1])
		quantity, err := strconv.Atoi(groups[2])
		if err != nil {
			continue
		}

		raw := separatorReplacer.ReplaceAllString(groups[3], "")
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		items = append(items, Item{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: categorizeItem(name),
		})
	}

	return items
}

// categorizeItem resolves an item name against the line-item taxonomy, first
// table entry wins. Shared shape with the chat parser's category scan.
func categorizeItem(name string) string {
	lowered := strings.ToLower(name)
	for _, rule := range itemCategoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.name
			}
		}
	}
	return itemCategoryFallback
}

// extractDate returns the first D/M/Y-shaped substring verbatim: no calendar
// validation, no normalization. Callers that need a time.Time parse it
// themselves.
func (s *Structurer) extractDate(text string) string {
	return datePattern.FindString(text)
}

func (s *Structurer) extractPaymentMethod(text string) string {
	for _, rule := range paymentMethodRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.name
			}
		}
	}
	return ""
}

func (s *Structurer) scoreConfidence(merchant string, total float64, items []Item) float64 {
	score := 0.0
	if merchant != "" {
		score += 0.3
	}
	if total > 0 {
		score += 0.4
	}
	if len(items) > 0 {
		score += 0.3
	}
	if score > 1.0 {
		score = 1.0
	}
	return math.Round(score*100) / 100
}

// titleCase upper-cases the first letter of each space-separated word, the way
// receipts print merchant names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

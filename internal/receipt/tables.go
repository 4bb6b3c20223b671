package receipt

import (
	"regexp"
)

// merchantPatterns match known Indonesian merchant names anywhere in the OCR
// text. Tried in order; the matched substring becomes the merchant name.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:alfamart|indomaret|hypermart|carrefour|giant|lotte)`),
	regexp.MustCompile(`(?i)(?:mcd|kfc|burger king|pizza hut|domino)`),
	regexp.MustCompile(`(?i)(?:starbucks|kopi kenangan|janji jiwa)`),
}

// totalPatterns anchor the amount to a label so line-item prices are not
// mistaken for the total. Ordered by how receipts usually word it.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s*:?\s*rp\.?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)grand total\s*:?\s*rp\.?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)jumlah\s*:?\s*rp\.?\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)bayar\s*:?\s*rp\.?\s*([\d.,]+)`),
}

// itemPattern matches one receipt line of the shape "<name> <qty> x Rp <price>".
var itemPattern = regexp.MustCompile(`(?i)(.+?)\s+(\d+)\s*x?\s*rp\.?\s*([\d.,]+)`)

var datePattern = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

// bigNumberPattern feeds the total fallback: any digit run of four or more.
// The largest run is assumed to be the total, which can pick up a receipt or
// loyalty number instead. Heuristic of last resort.
var bigNumberPattern = regexp.MustCompile(`(\d{4,})`)

var separatorReplacer = regexp.MustCompile(`[.,]`)

type itemCategoryRule struct {
	name     string
	keywords []string
}

// itemCategoryRules is the line-item taxonomy. Smaller than the chat-text one:
// receipts split food and drink where chat messages do not.
var itemCategoryRules = []itemCategoryRule{
	{"Makanan", []string{"nasi", "mie", "roti", "kue", "snack", "makanan", "ayam", "sate", "bakso"}},
	{"Minuman", []string{"kopi", "teh", "jus", "air", "susu", "minuman", "es"}},
	{"Keperluan Rumah Tangga", []string{"sabun", "detergen", "shampo", "tissue", "pasta gigi"}},
	{"Belanja", []string{"baju", "celana", "sepatu", "tas"}},
}

type paymentMethodRule struct {
	name     string
	keywords []string
}

var paymentMethodRules = []paymentMethodRule{
	{"Cash", []string{"cash", "tunai", "uang tunai"}},
	{"Debit", []string{"debit", "kartu debit"}},
	{"Credit", []string{"credit", "kartu kredit"}},
	{"GoPay", []string{"gopay", "go-pay"}},
	{"OVO", []string{"ovo"}},
	{"Dana", []string{"dana"}},
	{"ShopeePay", []string{"shopeepay", "shopee pay"}},
}

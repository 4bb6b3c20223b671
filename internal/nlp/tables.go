package nlp

import (
	"regexp"
	"strconv"
)

// Keyword tables are ordered slices, never maps: the first matching entry wins
// and that order is part of the parsing contract. Reordering entries changes
// results for texts that mention more than one keyword family.

var incomeKeywords = []string{"dapat", "terima", "masuk", "gaji", "honor", "bonus", "transfer masuk"}

var transferKeywords = []string{"transfer", "kirim", "pindah", "tf"}

var expenseKeywords = []string{"beli", "bayar", "buat", "untuk", "habis", "keluar", "spend"}

type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{"Makanan", []string{"bakso", "nasi", "makan", "kopi", "jajan", "mie", "ayam", "sate",
		"gorengan", "es", "teh", "minuman", "snack", "cemilan", "sarapan",
		"makan siang", "makan malam", "dinner", "lunch", "breakfast"}},
	{"Tagihan", []string{"listrik", "air", "wifi", "internet", "pulsa", "token", "pln",
		"indihome", "telkom", "gas", "pdam"}},
	{"Transportasi", []string{"bensin", "parkir", "ojol", "gojek", "grab", "taxi", "bus",
		"kereta", "mrt", "lrt", "toll", "tol", "bbm", "pertamax"}},
	{"Keperluan Rumah Tangga", []string{"sabun", "sikat gigi", "detergen", "shampo", "pasta gigi",
		"tissue", "pel", "sapu", "ember", "gayung"}},
	{"Pemasukan", []string{"gaji", "salary", "honor", "bonus", "transfer masuk", "terima",
		"dapat", "freelance", "proyek", "dividen"}},
	{"Belanja", []string{"beli", "belanja", "shopping", "mall", "toko", "online"}},
	{"Hiburan", []string{"nonton", "bioskop", "game", "spotify", "netflix", "youtube"}},
	{"Kesehatan", []string{"obat", "dokter", "rumah sakit", "apotek", "vitamin"}},
}

type walletRule struct {
	name     string
	keywords []string
}

var walletRules = []walletRule{
	{"Bank BRI", []string{"bri", "bank bri"}},
	{"Bank BCA", []string{"bca", "bank bca"}},
	{"Bank Mandiri", []string{"mandiri", "bank mandiri"}},
	{"Bank BNI", []string{"bni", "bank bni"}},
	{"GoPay", []string{"gopay", "go-pay"}},
	{"OVO", []string{"ovo"}},
	{"Dana", []string{"dana"}},
	{"ShopeePay", []string{"shopeepay", "shopee pay"}},
	{"Cash", []string{"cash", "tunai", "kas"}},
}

type numberWord struct {
	word  string
	value int64
}

// numberWords pairs Indonesian number words with their value. Scan order
// decides which word wins when a text contains several, so "satu" is checked
// before "seratus" even though the longer word is more specific.
var numberWords = []numberWord{
	{"satu", 1}, {"dua", 2}, {"tiga", 3}, {"empat", 4}, {"lima", 5},
	{"enam", 6}, {"tujuh", 7}, {"delapan", 8}, {"sembilan", 9}, {"sepuluh", 10},
	{"sebelas", 11}, {"seratus", 100}, {"seribu", 1000}, {"sejuta", 1_000_000},
}

type amountPattern struct {
	re      *regexp.Regexp
	convert func(groups []string) (float64, bool)
}

// amountPatterns are tried in order; the first one that matches and converts
// to a positive number wins. Grouped-digit patterns concatenate the digit
// groups, so "1.000.000" reads as 1000000. The separator is treated as
// Indonesian thousands grouping, never as a decimal point.
var amountPatterns = []amountPattern{
	{
		re: regexp.MustCompile(`(\d+)[.,](\d{3})[.,](\d{3})`),
		convert: func(g []string) (float64, bool) {
			return atofJoin(g[1], g[2], g[3])
		},
	},
	{
		re: regexp.MustCompile(`(\d+)[.,](\d{3})`),
		convert: func(g []string) (float64, bool) {
			return atofJoin(g[1], g[2])
		},
	},
	{
		re: regexp.MustCompile(`(\d+)\s*(?:jt|juta)`),
		convert: func(g []string) (float64, bool) {
			return atofScaled(g[1], 1_000_000)
		},
	},
	{
		re: regexp.MustCompile(`(\d+)\s*(?:rb|ribu|k)`),
		convert: func(g []string) (float64, bool) {
			return atofScaled(g[1], 1_000)
		},
	},
	{
		re: regexp.MustCompile(`(\d+)`),
		convert: func(g []string) (float64, bool) {
			return atofScaled(g[1], 1)
		},
	},
}

func atofJoin(groups ...string) (float64, bool) {
	joined := ""
	for _, g := range groups {
		joined += g
	}
	n, err := strconv.ParseInt(joined, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

func atofScaled(digits string, scale int64) (float64, bool) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n * scale), true
}

package nlp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		text string
	}
	tests := []struct {
		name           string
		args           args
		wantIntent     Intent
		wantAmount     float64
		wantCategory   string
		wantWallet     string
		wantConfidence float64
	}{
		{
			name:           "income with jt amount",
			args:           args{text: "gaji masuk 5jt"},
			wantIntent:     IntentIncome,
			wantAmount:     5_000_000,
			wantCategory:   "Pemasukan",
			wantConfidence: 0.95,
		},
		{
			name:           "expense with rb amount and wallet",
			args:           args{text: "beli bakso 15rb pake gopay"},
			wantIntent:     IntentExpense,
			wantAmount:     15_000,
			wantCategory:   "Makanan",
			wantWallet:     "GoPay",
			wantConfidence: 0.95,
		},
		{
			name:           "grouped digits concatenate",
			args:           args{text: "bayar listrik 1.250.000 via bca"},
			wantIntent:     IntentExpense,
			wantAmount:     1_250_000,
			wantCategory:   "Tagihan",
			wantWallet:     "Bank BCA",
			wantConfidence: 0.95,
		},
		{
			name:           "single pair grouping",
			args:           args{text: "bayar parkir 5.000"},
			wantIntent:     IntentExpense,
			wantAmount:     5_000,
			wantCategory:   "Transportasi",
			wantConfidence: 0.95,
		},
		{
			name:           "number word with ribu marker",
			args:           args{text: "habis jajan lima ribu"},
			wantIntent:     IntentExpense,
			wantAmount:     5_000,
			wantCategory:   "Makanan",
			wantConfidence: 0.91,
		},
		{
			name:           "transfer intent",
			args:           args{text: "transfer 200rb ke dana"},
			wantIntent:     IntentTransfer,
			wantAmount:     200_000,
			wantCategory:   "Lainnya",
			wantWallet:     "Dana",
			wantConfidence: 0.8,
		},
		{
			name:           "income keyword beats expense keyword",
			args:           args{text: "dapat bonus buat beli kopi 50rb"},
			wantIntent:     IntentIncome,
			wantAmount:     50_000,
			wantCategory:   "Makanan",
			wantConfidence: 0.95,
		},
		{
			name:           "no amount at all",
			args:           args{text: "bayar parkir"},
			wantIntent:     IntentExpense,
			wantAmount:     0,
			wantCategory:   "Transportasi",
			wantConfidence: 0.57,
		},
		{
			name:           "no keyword defaults to expense and Lainnya",
			args:           args{text: "sumbangan 100rb"},
			wantIntent:     IntentExpense,
			wantAmount:     100_000,
			wantCategory:   "Lainnya",
			wantConfidence: 0.74,
		},
		{
			name:           "empty text",
			args:           args{text: ""},
			wantIntent:     IntentExpense,
			wantAmount:     0,
			wantCategory:   "Lainnya",
			wantConfidence: 0.36,
		},
		{
			name:           "income without category keyword falls back to Pemasukan",
			args:           args{text: "uang masuk 300rb"},
			wantIntent:     IntentIncome,
			wantAmount:     300_000,
			wantCategory:   "Pemasukan",
			wantConfidence: 0.875,
		},
		{
			name:           "uppercase input is normalized",
			args:           args{text: "BELI BAKSO 15RB PAKE GOPAY"},
			wantIntent:     IntentExpense,
			wantAmount:     15_000,
			wantCategory:   "Makanan",
			wantWallet:     "GoPay",
			wantConfidence: 0.95,
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.args.text)

			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantWallet, got.Wallet)
			// 2dp rounding can land either side when the raw sum sits
			// exactly on a half cent, so confidence is checked by delta.
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 0.0051)
			assert.Equal(t, "IDR", got.Currency)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	p := NewParser()

	first := p.Parse("beli bakso 15rb pake gopay")
	second := p.Parse("beli bakso 15rb pake gopay")

	first.Timestamp = second.Timestamp
	if !cmp.Equal(first, second) {
		t.Errorf("Result and Expected differ: (-got +want)\n%s", cmp.Diff(first, second))
	}
}

func TestParser_Parse_DescriptionTruncation(t *testing.T) {
	p := NewParser()

	long := "bayar " + strings.Repeat("a", 200)
	got := p.Parse(long)

	assert.Len(t, []rune(got.Description), maxDescriptionLen+3)
	assert.True(t, strings.HasSuffix(got.Description, "..."))
}

func TestParser_Parse_DescriptionFallsBackToCategory(t *testing.T) {
	p := NewParser()

	got := p.Parse("   ")

	assert.Equal(t, got.Category, got.Description)
}

func TestParser_extractAmount(t *testing.T) {
	type args struct {
		text string
	}
	tests := []struct {
		name     string
		args     args
		want     float64
		wantConf float64
	}{
		{name: "triple grouping", args: args{text: "1.000.000"}, want: 1_000_000, wantConf: 0.95},
		{name: "comma grouping", args: args{text: "25,000"}, want: 25_000, wantConf: 0.95},
		{name: "juta suffix", args: args{text: "3 juta"}, want: 3_000_000, wantConf: 0.95},
		{name: "k suffix", args: args{text: "75k"}, want: 75_000, wantConf: 0.95},
		{name: "bare digits", args: args{text: "5000"}, want: 5_000, wantConf: 0.95},
		{name: "number word needs scale marker", args: args{text: "dua"}, want: 0, wantConf: 0},
		{name: "number word with juta marker", args: args{text: "dua juta"}, want: 2_000_000, wantConf: 0.85},
		{name: "seribu with marker", args: args{text: "seribu rupiah ribuan"}, want: 1_000_000, wantConf: 0.85},
		{name: "nothing numeric", args: args{text: "makan enak"}, want: 0, wantConf: 0},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf := p.extractAmount(tt.args.text)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantConf, conf)
		})
	}
}

func TestParser_extractCategory_OrderSensitive(t *testing.T) {
	p := NewParser()

	// "beli" sits in the Belanja table but "kopi" in Makanan, which is
	// scanned first. Table order, not keyword position, decides.
	category, conf := p.extractCategory("beli kopi", IntentExpense)

	assert.Equal(t, "Makanan", category)
	assert.Equal(t, 0.95, conf)
}

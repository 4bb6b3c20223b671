package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/catatduit/go-catatduit/internal/models"

	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// monthRange resolves a YYYY-MM string (or the current month when empty) to
// its [start, end) bounds.
func monthRange(month string, now time.Time) (from, to time.Time, err error) {
	if month == "" {
		month = now.Format(monthLayout)
	}

	from, err = time.ParseInLocation(monthLayout, month, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	return from, from.AddDate(0, 1, 0), nil
}

func dayRange(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

// balanceDelta is the signed wallet adjustment for recording a transaction.
// Income credits the wallet; expense and transfer debit it.
func balanceDelta(trxType models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if trxType == models.TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// formatRupiah renders an amount the way Indonesian receipts do:
// Rp 1.250.000, with dots as thousand separators.
func formatRupiah(amount decimal.Decimal) string {
	digits := amount.Abs().Round(0).String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := "Rp " + strings.Join(groups, ".")
	if amount.IsNegative() {
		formatted = "-" + formatted
	}
	return formatted
}

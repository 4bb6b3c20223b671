package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnalyticsCache is one precomputed month of analytics per user. TopCategories
// holds the serialized breakdown so a cache hit needs no aggregation query.
type AnalyticsCache struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Month         string // YYYY-MM
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	NetIncome     decimal.Decimal
	ExpenseRatio  float64
	SavingRatio   float64
	TopCategories string
	UpdatedAt     time.Time
}

type MonthlySummary struct {
	Month        string  `json:"month"`
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetIncome    float64 `json:"netIncome"`
	ExpenseRatio float64 `json:"expenseRatio"`
	SavingRatio  float64 `json:"savingRatio"`
}

type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	ColorHex   string  `json:"colorHex"`
	Icon       string  `json:"icon"`
}

// CategoryAggregate is one row of the per-category expense aggregation.
type CategoryAggregate struct {
	Name     string
	ColorHex string
	Icon     string
	Total    decimal.Decimal
}

type WeeklyTrendPoint struct {
	Date    string  `json:"date"`
	Expense float64 `json:"expense"`
}

// DailyExpense is one day of summed expenses from the trend aggregation.
type DailyExpense struct {
	Date  time.Time
	Total decimal.Decimal
}

type AnalyticsOut struct {
	Kind                 string              `json:"kind"`
	Summary              MonthlySummary      `json:"summary"`
	CategoryBreakdown    []CategoryBreakdown `json:"categoryBreakdown"`
	WeeklyTrend          []WeeklyTrendPoint  `json:"weeklyTrend"`
	TransactionFrequency int                 `json:"transactionFrequency"`
}

// DailySummary backs the /today bot command and the daily summary push.
type DailySummary struct {
	Date         time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Transactions []Transaction
}

func (d *DailySummary) ConvertToDailySummaryOut() *DailySummaryOut {
	out := &DailySummaryOut{
		Kind:         "dailySummary",
		Date:         d.Date.Format(time.DateOnly),
		TotalIncome:  d.TotalIncome.String(),
		TotalExpense: d.TotalExpense.String(),
		Transactions: make([]TransactionOut, 0, len(d.Transactions)),
	}
	for i := range d.Transactions {
		out.Transactions = append(out.Transactions, *d.Transactions[i].ConvertToTransactionOut())
	}
	return out
}

type DailySummaryOut struct {
	Kind         string           `json:"kind"`
	Date         string           `json:"date"`
	TotalIncome  string           `json:"totalIncome"`
	TotalExpense string           `json:"totalExpense"`
	Transactions []TransactionOut `json:"transactions"`
}

type GetAnalyticsRequest struct {
	UserID string `query:"userId" validate:"required,uuid4"`
	Month  string `query:"month" validate:"omitempty,month"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionSourceX labels how a transaction entered the system.
const (
	TransactionSourceManual  = "manual"
	TransactionSourceChat    = "chat"
	TransactionSourceReceipt = "receipt"
)

type Transaction struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	WalletID         uuid.UUID
	CategoryID       uuid.UUID
	Type             TransactionType
	Amount           decimal.Decimal
	Description      string
	RawInput         string
	AIConfidence     decimal.NullDecimal
	Source           string
	ReceiptImagePath string
	CreatedAt        time.Time

	// Joined columns, populated by list queries only.
	CategoryName string
	WalletName   string
}

func (t *Transaction) ConvertToTransactionOut() *TransactionOut {
	out := &TransactionOut{
		Kind:         "transaction",
		ID:           t.ID,
		WalletID:     t.WalletID,
		CategoryID:   t.CategoryID,
		Type:         t.Type,
		Amount:       t.Amount.String(),
		Description:  t.Description,
		Source:       t.Source,
		CategoryName: t.CategoryName,
		WalletName:   t.WalletName,
		CreatedAt:    t.CreatedAt,
	}
	if t.AIConfidence.Valid {
		conf, _ := t.AIConfidence.Decimal.Float64()
		out.AIConfidence = &conf
	}
	return out
}

type CreateTransactionIn struct {
	UserID           uuid.UUID
	WalletID         uuid.UUID
	CategoryID       uuid.UUID
	Type             TransactionType
	Amount           decimal.Decimal
	Description      string
	RawInput         string
	AIConfidence     decimal.NullDecimal
	Source           string
	ReceiptImagePath string
}

type TransactionOut struct {
	Kind         string          `json:"kind"`
	ID           uuid.UUID       `json:"id"`
	WalletID     uuid.UUID       `json:"walletId"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	Type         TransactionType `json:"type"`
	Amount       string          `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Source       string          `json:"source"`
	AIConfidence *float64        `json:"aiConfidence,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	WalletName   string          `json:"walletName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type CreateTransactionRequest struct {
	UserID      string `json:"userId" validate:"required,uuid4"`
	WalletID    string `json:"walletId" validate:"required,uuid4"`
	CategoryID  string `json:"categoryId" validate:"required,uuid4"`
	Type        string `json:"type" validate:"required,oneof=expense income transfer"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"max=255"`
}

// GetTransactionListIn carries the list filters; zero values mean "no filter".
type GetTransactionListIn struct {
	UserID     uuid.UUID
	WalletID   uuid.UUID
	CategoryID uuid.UUID
	Type       TransactionType
	DateFrom   time.Time
	DateTo     time.Time
	Limit      uint64
	Offset     uint64
	SortBy     string
}

type UndoTransactionRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}

type GetDailySummaryRequest struct {
	UserID string `query:"userId" validate:"required,uuid4"`
}

type GetTransactionListRequest struct {
	UserID     string `query:"userId" validate:"required,uuid4"`
	WalletID   string `query:"walletId" validate:"omitempty,uuid4"`
	CategoryID string `query:"categoryId" validate:"omitempty,uuid4"`
	Type       string `query:"type" validate:"omitempty,oneof=expense income transfer"`
	DateFrom   string `query:"dateFrom" validate:"omitempty,date"`
	DateTo     string `query:"dateTo" validate:"omitempty,date"`
	Limit      uint64 `query:"limit" validate:"omitempty,max=100"`
	Offset     uint64 `query:"offset"`
	SortBy     string `query:"sortBy" validate:"omitempty,oneof=asc desc"`
}

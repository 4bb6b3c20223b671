package models

import (
	"time"

	"github.com/catatduit/go-catatduit/internal/nlp"
	"github.com/catatduit/go-catatduit/internal/receipt"
)

// ParseTextIn is one chat message to classify, tied to the user who sent it.
type ParseTextIn struct {
	TelegramID string
	Text       string
}

type ParseTextRequest struct {
	TelegramID string `json:"telegramId" validate:"required,max=50,numeric"`
	Text       string `json:"text" validate:"required,max=4096"`
}

// ParseTextOut wraps an engine result with the decision the caller must act
// on: record it directly or ask the user to confirm first.
type ParseTextOut struct {
	Kind         string                `json:"kind"`
	Result       nlp.ParsedTransaction `json:"result"`
	AutoAccepted bool                  `json:"autoAccepted"`
	PendingID    string                `json:"pendingId,omitempty"`
}

// PendingParse is a parse below the confidence threshold, parked in cache
// until the user confirms, edits or rejects it.
type PendingParse struct {
	ID         string                `json:"id"`
	TelegramID string                `json:"telegramId"`
	RawText    string                `json:"rawText"`
	Result     nlp.ParsedTransaction `json:"result"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type StructureReceiptIn struct {
	TelegramID string
	RawText    string
}

type StructureReceiptRequest struct {
	TelegramID string `json:"telegramId" validate:"required,max=50,numeric"`
	RawText    string `json:"rawText" validate:"required"`
}

type StructureReceiptOut struct {
	Kind   string       `json:"kind"`
	Result receipt.Data `json:"result"`
}

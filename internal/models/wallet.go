package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultWalletName  = "Cash"
	DefaultWalletColor = "#16A085"
	DefaultWalletIcon  = "wallet"
)

type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   decimal.Decimal
	ColorHex  string
	Icon      string
	CreatedAt time.Time
}

func (w *Wallet) ConvertToWalletOut() *WalletOut {
	return &WalletOut{
		Kind:      "wallet",
		ID:        w.ID,
		Name:      w.Name,
		Balance:   w.Balance.String(),
		ColorHex:  w.ColorHex,
		Icon:      w.Icon,
		CreatedAt: w.CreatedAt,
	}
}

type CreateWalletIn struct {
	UserID   uuid.UUID
	Name     string
	Balance  decimal.Decimal
	ColorHex string
	Icon     string
}

type WalletOut struct {
	Kind      string    `json:"kind"`
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	ColorHex  string    `json:"colorHex"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateWalletRequest struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	Name     string `json:"name" validate:"required,min=1,max=100,noStartEndSpaces"`
	Balance  string `json:"balance" validate:"omitempty,numeric"`
	ColorHex string `json:"colorHex" validate:"omitempty,hexcolor"`
	Icon     string `json:"icon" validate:"omitempty,max=50"`
}

type GetWalletListRequest struct {
	UserID string `query:"userId" validate:"required,uuid4"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID
	TelegramID string
	Name       string
	Email      string
	IsPro      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) ConvertToUserOut() *UserOut {
	return &UserOut{
		Kind:       "user",
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Name:       u.Name,
		Email:      u.Email,
		IsPro:      u.IsPro,
		CreatedAt:  u.CreatedAt,
	}
}

type CreateUserIn struct {
	TelegramID string
	Name       string
	Email      string
}

type UserOut struct {
	Kind       string    `json:"kind"`
	ID         uuid.UUID `json:"id"`
	TelegramID string    `json:"telegramId"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	IsPro      bool      `json:"isPro"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateUserRequest struct {
	TelegramID string `json:"telegramId" validate:"required,max=50,numeric"`
	Name       string `json:"name" validate:"required,min=1,max=100,noStartEndSpaces"`
	Email      string `json:"email" validate:"omitempty,email,max=100"`
}

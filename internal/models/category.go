package models

import "github.com/google/uuid"

const (
	DefaultCategoryColor = "#3498DB"
	DefaultCategoryIcon  = "category"
)

type Category struct {
	ID       uuid.UUID
	Name     string
	ColorHex string
	Icon     string
	Type     TransactionType
	IsSystem bool
}

func (c *Category) ConvertToCategoryOut() *CategoryOut {
	return &CategoryOut{
		Kind:     "category",
		ID:       c.ID,
		Name:     c.Name,
		ColorHex: c.ColorHex,
		Icon:     c.Icon,
		Type:     c.Type,
		IsSystem: c.IsSystem,
	}
}

type CreateCategoryIn struct {
	Name     string
	ColorHex string
	Icon     string
	Type     TransactionType
	IsSystem bool
}

type CategoryOut struct {
	Kind     string          `json:"kind"`
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	ColorHex string          `json:"colorHex"`
	Icon     string          `json:"icon"`
	Type     TransactionType `json:"type"`
	IsSystem bool            `json:"isSystem"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100,nospecial,noStartEndSpaces"`
	ColorHex string `json:"colorHex" validate:"omitempty,hexcolor"`
	Icon     string `json:"icon" validate:"omitempty,max=50"`
	Type     string `json:"type" validate:"required,oneof=expense income transfer"`
}

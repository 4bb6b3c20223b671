package models

import (
	"errors"
	"fmt"
)

type (
	MapErrs     map[string]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		ErrorMessage error  `json:"message,omitempty"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

// MapErrors maps "<field>_<rule>" validation keys to stable error codes the
// API returns. Unmapped keys fall through to the generic response.
var MapErrors = MapErrs{
	"telegramId_required": {Code: "CD-001", ErrorMessage: errors.New("telegramId is required")},
	"telegramId_numeric":  {Code: "CD-002", ErrorMessage: errors.New("telegramId must be numeric")},
	"text_required":       {Code: "CD-003", ErrorMessage: errors.New("text is required")},
	"name_required":       {Code: "CD-004", ErrorMessage: errors.New("name is required")},
	"amount_required":     {Code: "CD-005", ErrorMessage: errors.New("amount is required")},
	"type_oneof":          {Code: "CD-006", ErrorMessage: errors.New("type must be expense, income or transfer")},
	"walletId_uuid4":      {Code: "CD-007", ErrorMessage: errors.New("walletId must be a valid uuid")},
	"categoryId_uuid4":    {Code: "CD-008", ErrorMessage: errors.New("categoryId must be a valid uuid")},
	"rawText_required":    {Code: "CD-009", ErrorMessage: errors.New("rawText is required")},
	"colorHex_hexcolor":   {Code: "CD-010", ErrorMessage: errors.New("colorHex must be a hex color")},
	"userId_required":     {Code: "CD-011", ErrorMessage: errors.New("userId is required")},
	"userId_uuid4":        {Code: "CD-012", ErrorMessage: errors.New("userId must be a valid uuid")},
	"type_required":       {Code: "CD-013", ErrorMessage: errors.New("type is required")},
	"month_month":         {Code: "CD-014", ErrorMessage: errors.New("month must be formatted YYYY-MM")},
}

func GetErrMap(code string, args ...string) ErrorDetail {
	v, ok := MapErrors[code]
	if !ok {
		return ErrorDetail{
			Code:         code,
			ErrorMessage: errors.New("unknown error mapping"),
		}
	}
	if len(args) > 0 {
		v.ErrorMessage = fmt.Errorf("%s caused by %s", v.ErrorMessage, args[0])
	}

	return v
}

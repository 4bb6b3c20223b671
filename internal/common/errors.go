package common

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrNoRowsAffected       = errors.New("no rows affected")
	ErrValidation           = errors.New("validation failed")
	ErrDataNotFound         = errors.New("data not found")
	ErrInternalServerError  = errors.New("internal server error")
	ErrDataExist            = errors.New("data exist")
	ErrUnableToCreate       = errors.New("unable to create data")
	ErrUnableToUpdate       = errors.New("unable to update data")
	ErrUnableToDelete       = errors.New("unable to delete data")
	ErrUserNotFound         = errors.New("user not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNothingToUndo        = errors.New("no transaction to undo")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidIntent        = errors.New("invalid transaction intent")
	ErrPendingParseNotFound = errors.New("no pending parse for this chat")
	ErrUnreadableReceipt    = errors.New("unable to extract a total from receipt text")
	ErrNoRows               = sql.ErrNoRows
)

type WrapError struct {
	Causer interface{}
	Err    error
}

func (e WrapError) Error() string {
	return fmt.Sprintf("%v, root cause: %v", e.Causer, e.Err)
}

package transaction

import (
	"errors"
	nethttp "net/http"

	"github.com/catatduit/go-catatduit/internal/common"
)

// getHTTPStatusCode will return http status code based on error
func getHTTPStatusCode(err error) int {
	if err == nil {
		return nethttp.StatusOK
	}

	if errors.Is(err, common.ErrInvalidAmount) {
		return nethttp.StatusBadRequest
	}

	if errors.Is(err, common.ErrWalletNotFound) ||
		errors.Is(err, common.ErrCategoryNotFound) ||
		errors.Is(err, common.ErrTransactionNotFound) ||
		errors.Is(err, common.ErrNothingToUndo) {
		return nethttp.StatusNotFound
	}

	return nethttp.StatusInternalServerError
}

package utils

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vbelyaev/escrowd/internal/domain"
)

// RespondWithDomainError maps the service error taxonomy to HTTP status
// codes. Internal errors never leak details to the caller.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrInvalidState):
		RespondWithError(w, http.StatusConflict, "Operation not valid for current state")
	case errors.Is(err, domain.ErrInsufficientFunds):
		RespondWithError(w, http.StatusPaymentRequired, "Insufficient funds")
	case errors.Is(err, domain.ErrConflict):
		RespondWithError(w, http.StatusConflict, "Conflict")
	case errors.Is(err, domain.ErrValidation):
		RespondWithError(w, http.StatusUnprocessableEntity, "Invalid input")
	default:
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

const defaultPageSize = 50

// Pagination reads limit/offset query parameters with sane bounds.
func Pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

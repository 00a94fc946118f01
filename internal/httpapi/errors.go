package httpapi

import (
	"errors"
	"net/http"

	"skladr.dev/internal/auth"
)

var statusForKind = map[auth.Kind]int{
	auth.KindInvalid:       http.StatusBadRequest,
	auth.KindUnauthorized:  http.StatusUnauthorized,
	auth.KindForbidden:     http.StatusForbidden,
	auth.KindNotFound:      http.StatusNotFound,
	auth.KindAlreadyExists: http.StatusConflict,
}

// writeDomainError maps service errors to HTTP statuses. Anything without a
// recognized kind is reported as a generic 500 so internals never leak.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *auth.Error
	if errors.As(err, &domainErr) {
		if code, ok := statusForKind[domainErr.Kind]; ok {
			writeError(w, r, code, domainErr.Message)
			return
		}
	}
	writeError(w, r, http.StatusInternalServerError, "internal error")
}

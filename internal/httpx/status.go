package httpx

import (
	"net/http"

	"github.com/malware-d/bercos/internal/bank"
)

// StatusFor maps the error taxonomy to HTTP status codes. PDPUnavailable is
// distinct from a deny so operators can alert on it, but neither mutates.
func StatusFor(err error) int {
	switch bank.KindOf(err) {
	case bank.KindAuthentication:
		return http.StatusUnauthorized
	case bank.KindAuthorization:
		return http.StatusForbidden
	case bank.KindValidation:
		return http.StatusBadRequest
	case bank.KindNotFound:
		return http.StatusNotFound
	case bank.KindConflict:
		return http.StatusConflict
	case bank.KindPDPUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteErr renders err through the envelope with the mapped status.
func WriteErr(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	WriteError(w, code, msg)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
)

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func errNotFound(path string) error {
	return apperrors.New(apperrors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch code := apperrors.GetCode(err); {
	case code == apperrors.ErrCodeNotFound, code == apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == apperrors.ErrCodeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case code.IsInput():
		return http.StatusBadRequest
	case code == apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.Is(err, context.Canceled) {
		return statusClientClosed
	}
	return http.StatusInternalServerError
}

// statusClientClosed is nginx's non-standard status for a request the client
// abandoned.
const statusClientClosed = 499

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(apperrors.GetCode(err))
	msg := apperrors.UserMessage(err)

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		code = string(apperrors.ErrCodeLimitExceeded)
		msg = "request body too large"
	case code == "":
		code = string(apperrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}

	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFrom(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

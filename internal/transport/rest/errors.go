package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// errorResponse carries a stable machine code in Error and a human-readable
// Message. The remaining fields are set only for the errors they describe.
type errorResponse struct {
	Error     string       `json:"error"`
	Message   string       `json:"message,omitempty"`
	Fields    []fieldError `json:"fields,omitempty"`
	Verified  *int         `json:"verified,omitempty"`
	Total     *int         `json:"total,omitempty"`
	Remaining *int         `json:"remaining,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	codeValidation         = "validation_error"
	codePreconditionFailed = "precondition_failed"
	codeNotFound           = "not_found"
	codeInvalidNodeKind    = "invalid_node_kind"
	codeEventClosed        = "event_closed"
	codeConflict           = "conflict"
	codeAlreadyExists      = "already_exists"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternal           = "internal_error"
)

// handleError translates a service error into an HTTP response. Unknown
// errors are logged and reported as 500 without detail.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verr *domain.ValidationError
		perr *domain.PreconditionError
	)

	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: codeValidation, Message: "validation failed"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, "validation failed")
	case errors.As(err, &perr):
		remaining := perr.Remaining()
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     codePreconditionFailed,
			Message:   "group is not complete",
			Verified:  &perr.Verified,
			Total:     &perr.Total,
			Remaining: &remaining,
		})
	case errors.Is(err, domain.ErrPreconditionFailed):
		writeError(w, http.StatusConflict, codePreconditionFailed, "group is not complete")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidNodeKind):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidNodeKind, "operation not allowed for this node type")
	case errors.Is(err, domain.ErrEventClosed):
		writeError(w, http.StatusConflict, codeEventClosed, "event is closed")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, "conflict")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeAlreadyExists, "already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidArgument, domain.KindInvalidReference:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders err using the domain taxonomy. Internal failures are
// logged and replaced with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInternal {
		logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"ambiguous", errors.Is(err, repository.ErrAmbiguous),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   domain.KindInternal.String(),
			Message: "an unexpected error occurred",
		})
		return
	}
	writeJSON(w, statusFor(de.Kind), ErrorResponse{Error: de.Kind.String(), Message: de.Message})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		return domain.InvalidArgument(typeErr.Field, "%s must be of type %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.InvalidArgument("", "request body is not valid JSON")
	case errors.As(err, &maxErr):
		return domain.InvalidArgument("", "request body is too large")
	}
	// Field-level decoders such as decimal and date report plain errors.
	return domain.InvalidArgument("", "invalid request body: %v", err)
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidArgument("id", "id must be a positive integer")
	}
	return id, nil
}

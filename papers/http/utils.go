package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BHUPESH003/research-paper-tracker/errors"
)

// encodeError writes an error as an HTTP response envelope. It handles the
// status code and machine code contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := http.StatusInternalServerError
	kind := errors.DefaultKind
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
		kind = err.Kind()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    kind,
		"data":    nil,
		"message": err.Error(),
	})
}

func invalidBody(cause error) error {
	return errors.New("invalid request body", errors.BadRequest(), errors.WithCause(cause))
}

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

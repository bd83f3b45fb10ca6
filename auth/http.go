package auth

import (
	"context"
	"encoding/json"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/BHUPESH003/research-paper-tracker/errors"
)

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterEndpoints(srv Server, service *CredentialService) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	issueHandler := kithttp.NewServer(
		func(ctx context.Context, _ interface{}) (interface{}, error) {
			key, err := service.Issue()
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"code":    "OK",
				"data":    map[string]string{"key": key},
				"message": "",
			}, nil
		},
		decodeIssueRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	srv.RegisterHandler("/credentials", "POST", issueHandler)
}

func decodeIssueRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

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

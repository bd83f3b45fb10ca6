package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"

	"github.com/BHUPESH003/research-paper-tracker/errors"
)

type contextKey string

const (
	tokenContextKey contextKey = "credentialToken"
	ownerContextKey contextKey = "owner"
)

// TokenToContext is a kithttp ServerBefore that moves the bearer token
// from the Authorization header into the context, where the Authenticated
// middleware picks it up.
func TokenToContext(ctx context.Context, r *http.Request) context.Context {
	header := r.Header.Get("Authorization")
	if len(header) <= 6 || !strings.EqualFold(header[:7], "bearer ") {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey, header[7:])
}

// OwnerFromContext returns the owner id resolved by the Authenticated
// middleware.
func OwnerFromContext(ctx context.Context) (string, error) {
	owner, ok := ctx.Value(ownerContextKey).(string)
	if !ok || owner == "" {
		return "", errors.New("no credential", errors.Unauthorized())
	}
	return owner, nil
}

type Authenticator struct {
	service *CredentialService
}

func NewAuthenticator(s *CredentialService) *Authenticator {
	return &Authenticator{
		service: s,
	}
}

// Authenticated resolves the caller's credential before the endpoint runs.
// Requests without a resolvable credential never reach the service layer.
func (a *Authenticator) Authenticated(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		token, ok := ctx.Value(tokenContextKey).(string)
		if !ok || token == "" {
			return nil, errors.New("no credential", errors.Unauthorized())
		}

		ownerID, err := a.service.Resolve(token)
		if err != nil {
			return nil, err
		}

		ctx = context.WithValue(ctx, ownerContextKey, ownerID)
		return next(ctx, req)
	}
}

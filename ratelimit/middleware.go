package ratelimit

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/BHUPESH003/research-paper-tracker/auth"
	"github.com/BHUPESH003/research-paper-tracker/errors"
)

// Middleware rejects the request before the endpoint runs once the owner's
// quota for the class is spent. It must be wired inside the authentication
// middleware: it needs the resolved owner.
func Middleware(l *Limiter, class Class) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			owner, err := auth.OwnerFromContext(ctx)
			if err != nil {
				return nil, err
			}

			if !l.Allow(owner, class) {
				return nil, errors.New("rate limit exceeded, retry later", errors.TooManyRequests())
			}

			return next(ctx, req)
		}
	}
}

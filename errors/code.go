package errors

import (
	"net/http"
)

func enrich(code int, kind string) ErrorEnricher {
	return func(err error) error {
		return WithKind(kind)(WithCode(code)(err))
	}
}

func BadRequest() ErrorEnricher      { return enrich(http.StatusBadRequest, "VALIDATION_ERROR") }
func Unauthorized() ErrorEnricher    { return enrich(http.StatusUnauthorized, "UNAUTHORIZED") }
func Forbidden() ErrorEnricher       { return enrich(http.StatusForbidden, "FORBIDDEN") }
func NotFound() ErrorEnricher        { return enrich(http.StatusNotFound, "NOT_FOUND") }
func Duplicate() ErrorEnricher       { return enrich(http.StatusConflict, "DUPLICATE_PAPER") }
func TooManyRequests() ErrorEnricher { return enrich(http.StatusTooManyRequests, "RATE_LIMITED") }

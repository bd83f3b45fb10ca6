package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertCode(t *testing.T, err error, code int) {
	switch err := err.(type) {
	case Error:
		assert.Equal(t, code, err.Code(), "code should be equal")
	default:
		if code != DefaultCode {
			assert.Fail(t, fmt.Sprintf("error is not Error and expected code != %d (default)", DefaultCode))
		}
	}
}

func AssertKind(t *testing.T, err error, kind string) {
	switch err := err.(type) {
	case Error:
		assert.Equal(t, kind, err.Kind(), "kind should be equal")
	default:
		if kind != DefaultKind {
			assert.Fail(t, fmt.Sprintf("error is not Error and expected kind != %s (default)", DefaultKind))
		}
	}
}

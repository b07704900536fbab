package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApiErrWrapping(t *testing.T) {
	err := NewNotFoundError("blog post")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsBadRequest(err))

	missing := NewMissingRequiredFieldError("email")
	assert.True(t, IsMissingRequiredFieldError(missing))
	assert.Equal(t, "missing required field: Missing required field: email", missing.Error())
}

func TestGetFullError(t *testing.T) {
	inner := NewInternalErrorWithCause("render", errors.New("template missing"))
	outer := &ApiErr{StatusCode: 500, err: errors.New("page failed"), Cause: inner}

	assert.Equal(t, "page failed -> render: internal server error -> template missing", outer.GetFullError())
}

func TestNewDatabaseError(t *testing.T) {
	cases := []struct {
		name   string
		cause  error
		status int
	}{
		{"duplicate", errors.New(`ERROR: duplicate key value violates unique constraint`), http.StatusConflict},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable},
		{"translated duplicate", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"translated not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"disabled", fmt.Errorf("list: %w", ErrDatabaseDisabled), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("insert", "intake_application", tc.cause)
			assert.Equal(t, tc.status, err.StatusCode)
		})
	}
}

func TestCMSErrors(t *testing.T) {
	var err error = &CMSError{Endpoint: "/blog-posts", StatusCode: 503, Status: "503 Service Unavailable", Body: "down"}
	wrapped := fmt.Errorf("load blog: %w", err)

	assert.True(t, IsCMSError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrCMSRequest))
	assert.Equal(t, 503, CMSStatus(wrapped))
	assert.Contains(t, err.Error(), "API request failed")

	transport := NewCMSUnavailableError("/faqs", errors.New("dial tcp: refused"))
	assert.True(t, IsCMSError(transport))
	assert.True(t, errors.Is(transport, ErrCMSUnavailable))
	assert.Equal(t, 0, CMSStatus(transport))

	assert.False(t, IsCMSError(errors.New("other")))
}

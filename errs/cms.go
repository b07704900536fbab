package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// CMS errors
var (
	ErrCMSRequest     = errors.New("cms request failed")
	ErrCMSUnavailable = errors.New("cms unavailable")
	ErrCMSDecode      = errors.New("cms response could not be decoded")
)

// CMSError describes a non-2xx response from the content API.
type CMSError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *CMSError) Error() string {
	return fmt.Sprintf("API request failed: %s - %s (%s)", e.Status, e.Body, e.Endpoint)
}

func (e *CMSError) Unwrap() error {
	return ErrCMSRequest
}

func NewCMSUnavailableError(endpoint string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrCMSUnavailable, endpoint, cause)
}

func NewCMSDecodeError(endpoint string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrCMSDecode, endpoint, cause)
}

// IsCMSError reports whether err came from the content API, either as a
// failed response or a transport failure.
func IsCMSError(err error) bool {
	return errors.Is(err, ErrCMSRequest) || errors.Is(err, ErrCMSUnavailable) || errors.Is(err, ErrCMSDecode)
}

// CMSStatus returns the HTTP status of a failed CMS response, or 0.
func CMSStatus(err error) int {
	var cmsErr *CMSError
	if errors.As(err, &cmsErr) {
		return cmsErr.StatusCode
	}
	return 0
}

// NewCMSApiErr reports a failed CMS call to JSON clients as a 502.
func NewCMSApiErr(operation string, cause error) *ApiErr {
	err := ErrCMSUnavailable
	if errors.Is(cause, ErrCMSRequest) {
		err = ErrCMSRequest
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        err,
		Details:    "Failed to " + operation,
		Cause:      cause,
	}
}

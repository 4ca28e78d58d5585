package imagegen

import (
	"errors"
	"fmt"
)

// Sentinel errors for image generation operations.
var (
	// ErrNoImage indicates the upstream call succeeded but the response
	// carried no base64 image payload at the expected path.
	ErrNoImage = errors.New("imagegen: upstream returned no image data")

	// ErrEmptyPrompt indicates an empty prompt was passed to a provider.
	ErrEmptyPrompt = errors.New("imagegen: prompt cannot be empty")
)

// UpstreamError reports a failed call to the image generation service:
// either a non-2xx response or a transport failure. Reason carries the
// upstream error body's message when parseable, otherwise the HTTP status
// line text or the transport error.
type UpstreamError struct {
	// Reason is the human-readable failure description
	Reason string

	// StatusCode is the upstream HTTP status, 0 for transport failures
	StatusCode int

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("imagegen: upstream call failed (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("imagegen: upstream call failed: %s", e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

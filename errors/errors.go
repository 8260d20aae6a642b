package errors

import "fmt"

// ConfigError reports a missing or invalid configuration value. It is the
// only fatal error in the program: main exits nonzero before any network
// call is made.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError wraps an HTTP failure for a single endpoint. It is logged
// and the fetch degrades to an empty result; the run continues.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error for %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error for %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError wraps a malformed-XML failure for a single document. The
// records decoded before the failure are kept; the run continues.
type DecodeError struct {
	Element string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error while scanning for <%s>: %v", e.Element, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrMissingBaseURL  = fmt.Errorf("missing base URL")
	ErrMissingUsername = fmt.Errorf("missing username")
	ErrMissingPassword = fmt.Errorf("missing password")
	ErrMalformedXML    = fmt.Errorf("malformed XML")
)

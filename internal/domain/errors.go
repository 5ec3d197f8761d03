package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned when a request fails structural validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform is returned for a platform outside the supported set.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrUpstreamAuth is returned when the content generator rejects our credentials.
	ErrUpstreamAuth = errors.New("content generator rejected credentials")

	// ErrUpstreamRateLimit is returned when the content generator throttles us.
	ErrUpstreamRateLimit = errors.New("content generator rate limited")

	// ErrUpstreamTimeout is returned when the content generator does not answer in time.
	ErrUpstreamTimeout = errors.New("content generator timed out")

	// ErrUpstreamUnavailable is returned for any other content generator failure.
	ErrUpstreamUnavailable = errors.New("content generator unavailable")

	// ErrValidationFailed is returned when generated content is missing required fields.
	ErrValidationFailed = errors.New("generated content failed validation")

	// ErrInvalidURL is returned when a listing URL cannot be used.
	ErrInvalidURL = errors.New("invalid listing URL")

	// ErrScrapingFailed is returned when a listing page could not be fetched or read.
	ErrScrapingFailed = errors.New("failed to scrape listing")

	// ErrQuotaExceeded is returned when the caller used up the monthly allowance.
	ErrQuotaExceeded = errors.New("usage quota exceeded")

	// ErrRateLimited is returned when a client sends too many requests.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnauthenticated is returned when a route needs a user and none was supplied.
	ErrUnauthenticated = errors.New("authentication required")
)

// InputError describes which part of a request is invalid.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// UnsupportedPlatformError names the unknown platform key.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedPlatform, e.Platform)
}

func (e *UnsupportedPlatformError) Unwrap() error { return ErrUnsupportedPlatform }

// ValidationError lists the fields missing from a generated response.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	if len(e.Fields) > 0 {
		b.WriteString(": missing ")
		b.WriteString(strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// UpstreamError is a content generator failure after all attempts were spent.
// Kind is one of the ErrUpstream* sentinels or ErrValidationFailed.
type UpstreamError struct {
	Kind     error
	Attempts int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s after %d attempt(s)", e.Kind, e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

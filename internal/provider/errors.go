package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrorKind buckets API failures by what the user can do about them.
type ErrorKind int

const (
	ErrKindUnclassified ErrorKind = iota
	ErrKindAuth
	ErrKindRateLimited
	ErrKindOverloaded
	ErrKindConnectivity
)

// APIError is a classified transport failure.
type APIError struct {
	Kind ErrorKind
	Err  error
}

func (e *APIError) Error() string { return e.Err.Error() }
func (e *APIError) Unwrap() error { return e.Err }

// Title is the one-line failure description shown to the user.
func (e *APIError) Title() string {
	switch e.Kind {
	case ErrKindAuth:
		return "Invalid API key"
	case ErrKindRateLimited:
		return "Rate limited"
	case ErrKindOverloaded:
		return "Claude is overloaded"
	case ErrKindConnectivity:
		return "Connection failed"
	default:
		return "Something went wrong"
	}
}

// Hint tells the user what to try next.
func (e *APIError) Hint() string {
	switch e.Kind {
	case ErrKindAuth:
		return "Check your .env file; the key may be expired or incorrect."
	case ErrKindRateLimited:
		return "Too many requests. Wait a moment and try again."
	case ErrKindOverloaded:
		return "The API is busy right now. Try again in a few seconds."
	case ErrKindConnectivity:
		return "Check your internet connection and try again."
	default:
		return fmt.Sprintf("Details: %v", e.Err)
	}
}

// Classify wraps err with the ErrorKind derived from its HTTP status code,
// falling back to substring matching for errors that never reached the API.
// Already-classified errors pass through unchanged.
func Classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: classifyKind(err), Err: err}
}

func classifyKind(err error) ErrorKind {
	var sdkErr *anthropic.Error
	if errors.As(err, &sdkErr) {
		switch sdkErr.StatusCode {
		case 401, 403:
			return ErrKindAuth
		case 429:
			return ErrKindRateLimited
		case 529:
			return ErrKindOverloaded
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"), strings.Contains(msg, "authentication"):
		return ErrKindAuth
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate"):
		return ErrKindRateLimited
	case strings.Contains(msg, "overloaded"), strings.Contains(msg, "529"):
		return ErrKindOverloaded
	case strings.Contains(msg, "connection"), strings.Contains(msg, "timeout"):
		return ErrKindConnectivity
	}
	return ErrKindUnclassified
}

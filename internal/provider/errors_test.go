package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestClassify_StatusCodes(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{401, ErrKindAuth},
		{403, ErrKindAuth},
		{429, ErrKindRateLimited},
		{529, ErrKindOverloaded},
	}
	for _, tc := range cases {
		got := Classify(&anthropic.Error{StatusCode: tc.status})
		if got.Kind != tc.want {
			t.Errorf("status %d classified as %d, want %d", tc.status, got.Kind, tc.want)
		}
	}
}

func TestClassify_MessageFallback(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorKind
	}{
		{"got 429 from upstream", ErrKindRateLimited},
		{"rate limit hit", ErrKindRateLimited},
		{"authentication failed", ErrKindAuth},
		{"server overloaded", ErrKindOverloaded},
		{"connection refused", ErrKindConnectivity},
		{"dial tcp: i/o timeout", ErrKindConnectivity},
		{"something exploded", ErrKindUnclassified},
	}
	for _, tc := range cases {
		got := Classify(errors.New(tc.msg))
		if got.Kind != tc.want {
			t.Errorf("%q classified as %d, want %d", tc.msg, got.Kind, tc.want)
		}
	}
}

func TestClassify_AlreadyClassifiedPassesThrough(t *testing.T) {
	first := Classify(errors.New("rate limit"))
	second := Classify(fmt.Errorf("send: %w", first))
	if second != first {
		t.Error("a classified error should come back unchanged, not re-wrapped")
	}
}

func TestClassify_PreservesErrorChain(t *testing.T) {
	apiErr := Classify(context.Canceled)
	if !errors.Is(apiErr, context.Canceled) {
		t.Error("classified error should still match its cause via errors.Is")
	}
}

func TestAPIError_TitlesAndHints(t *testing.T) {
	limited := &APIError{Kind: ErrKindRateLimited, Err: errors.New("429")}
	if limited.Title() != "Rate limited" {
		t.Errorf("Title = %q", limited.Title())
	}
	if limited.Hint() == "" {
		t.Error("every kind needs a hint")
	}

	unknown := &APIError{Kind: ErrKindUnclassified, Err: errors.New("boom")}
	if unknown.Title() != "Something went wrong" {
		t.Errorf("Title = %q", unknown.Title())
	}
	if want := "Details: boom"; unknown.Hint() != want {
		t.Errorf("Hint = %q, want %q", unknown.Hint(), want)
	}
}

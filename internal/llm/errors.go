package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Kind classifies provider failures for the retry policy.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx replies.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindInvalidResponse means the reply was not valid JSON or did not
	// match the schema.
	KindInvalidResponse
	// KindTruncated means generation hit MaxTokens.
	KindTruncated
	// KindRejected covers 4xx replies other than 429, such as a bad key.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "provider unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	case KindRejected:
		return "request rejected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by providers for every failed request.
type Error struct {
	Kind Kind

	// RetryAfter is the server's requested delay for KindRateLimited.
	RetryAfter time.Duration

	// Content is the offending reply for KindInvalidResponse and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := "llm: " + e.Kind.String()
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// classifyStatus maps an HTTP status from a provider SDK error.
func classifyStatus(status int, err error) error {
	switch {
	case status == 429:
		return &Error{Kind: KindRateLimited, Err: err}
	case status >= 400 && status < 500:
		return &Error{Kind: KindRejected, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

package generation

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyPrompt is returned when a request's prompt is empty or
// whitespace-only. The request is rejected before any network call.
var ErrEmptyPrompt = errors.New("generation: prompt is empty")

// TransientError marks a failure that is expected to resolve on its own:
// rate limiting, timeouts, 5xx responses, transport errors. Retrier
// retries these up to its configured bound.
type TransientError struct {
	RetryAfter time.Duration // Parsed Retry-After hint; zero when absent.
	Cause      error
}

func (e *TransientError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("transient service error (retry after %s): %v", e.RetryAfter, e.Cause)
	}

	return fmt.Sprintf("transient service error: %v", e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// RejectionError marks a definitive rejection by the service: invalid
// key, malformed request, exhausted quota, blocked prompt. Retrying
// cannot help, so it surfaces after a single attempt.
type RejectionError struct {
	StatusCode int    // HTTP status; zero when the rejection was not status-based.
	Code       string // Provider error status, e.g. "INVALID_ARGUMENT".
	Message    string
}

func (e *RejectionError) Error() string {
	msg := "service rejected the request"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}

	return msg
}

// ResponseError marks a response that could not be mapped into a Result.
// It indicates a contract mismatch with the provider rather than a
// transient condition, so it is never retried.
type ResponseError struct {
	Reason string
	Body   string // Offending payload or decode error, for diagnostics.
}

func (e *ResponseError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected response: %s: %s", e.Reason, e.Body)
	}

	return "unexpected response: " + e.Reason
}

// IsTransient reports whether err is classified as a transient failure.
func IsTransient(err error) bool {
	var te *TransientError

	return errors.As(err, &te)
}

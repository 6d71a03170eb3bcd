package faults

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind is a stable failure category. The first group drives retry decisions;
// PostList and Recommendation exist only to pick a presentation fallback.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindTimeout      Kind = "timeout"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindBadRequest   Kind = "bad_request"
	KindServerError  Kind = "server_error"
	KindGeneral      Kind = "general"

	KindPostList       Kind = "post_list"
	KindRecommendation Kind = "recommendation"
)

// StatusError carries an HTTP status so classification can inspect the code
// instead of matching message substrings.
type StatusError struct {
	Status  int
	Context string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Context, e.Status)
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Classify maps an error to its Kind. Structured signals (status codes,
// context deadline, net timeouts) are preferred; message substrings remain as
// a fallback for transports that only surface text.
func Classify(err error) Kind {
	if err == nil {
		return KindGeneral
	}

	var se *StatusError
	if errors.As(err, &se) {
		return classifyStatus(se.Status)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout") || strings.Contains(s, "timed out") ||
		strings.Contains(s, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(s, "401") || strings.Contains(s, "unauthorized"):
		return KindUnauthorized
	case strings.Contains(s, "403") || strings.Contains(s, "forbidden"):
		return KindForbidden
	case strings.Contains(s, "404") || strings.Contains(s, "not found"):
		return KindNotFound
	case strings.Contains(s, "429") || strings.Contains(s, "too many requests") ||
		strings.Contains(s, "rate limit"):
		return KindRateLimited
	case strings.Contains(s, "400") || strings.Contains(s, "bad request") ||
		strings.Contains(s, "invalid request"):
		return KindBadRequest
	case strings.Contains(s, "connection refused") || strings.Contains(s, "connection reset") ||
		strings.Contains(s, "no such host") || strings.Contains(s, "network"):
		return KindNetwork
	case strings.Contains(s, "500") || strings.Contains(s, "502") ||
		strings.Contains(s, "503") || strings.Contains(s, "504") ||
		strings.Contains(s, "internal server error"):
		return KindServerError
	}

	// Unknown errors fail open: one more attempt beats failing a user action
	// on an unrecognized transient condition.
	return KindGeneral
}

func classifyStatus(status int) Kind {
	switch {
	case status == 400:
		return KindBadRequest
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindServerError
	default:
		return KindGeneral
	}
}

// Retryable reports whether a Kind is eligible for automatic re-attempt.
// Client errors short-circuit immediately: retrying them wastes attempts.
func Retryable(k Kind) bool {
	switch k {
	case KindNetwork, KindTimeout, KindServerError, KindGeneral:
		return true
	default:
		return false
	}
}

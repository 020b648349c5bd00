package reliability

import (
	"context"
	"errors"
	"net"

	"github.com/ent0n29/lexassist/internal/inference"
)

// Failure reasons reported for a tier that did not produce an answer.
const (
	ReasonTimeout     = "timeout"
	ReasonCanceled    = "canceled"
	ReasonNetwork     = "network"
	ReasonRateLimited = "rate_limited"
	ReasonStatus4xx   = "status_4xx"
	ReasonStatus5xx   = "status_5xx"
	ReasonPayload     = "payload"
	ReasonInternal    = "internal"
)

// IsRetryableHTTPStatus classifies transient HTTP status codes.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether a later attempt could plausibly succeed. The
// remote tier never retries itself; this only annotates logs.
func IsRetryable(err error) bool {
	var statusErr *inference.StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableHTTPStatus(statusErr.Code)
	}
	switch ClassifyRemoteFailure(err) {
	case ReasonTimeout, ReasonNetwork:
		return true
	default:
		return false
	}
}

// ClassifyRemoteFailure maps an inference error to a metric-friendly reason.
func ClassifyRemoteFailure(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}
		return ReasonNetwork
	}

	var statusErr *inference.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == 429:
			return ReasonRateLimited
		case statusErr.Code >= 500:
			return ReasonStatus5xx
		default:
			return ReasonStatus4xx
		}
	}
	if errors.Is(err, inference.ErrMalformedPayload) {
		return ReasonPayload
	}
	if errors.Is(err, inference.ErrNotConfigured) {
		return ReasonInternal
	}
	return ReasonNetwork
}

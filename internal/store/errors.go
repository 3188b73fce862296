package store

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlocked            = errors.New("your account has been restricted")
	ErrRateLimited        = errors.New("rate limited")
	ErrNotFound           = errors.New("not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrNoSession          = errors.New("no signed-in user")
	ErrSelfSubscribe      = errors.New("cannot subscribe to your own channel")
	ErrReportNotPending   = errors.New("report is not pending")
	ErrForbidden          = errors.New("operation not permitted")
)

// RateLimitedError is returned when a like toggle arrives inside the
// cooldown window. Wait is the time left until the next toggle is allowed.
type RateLimitedError struct {
	Wait time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: please wait %ds before liking again", e.WaitSeconds())
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// WaitSeconds returns the remaining wait rounded up to whole seconds
func (e *RateLimitedError) WaitSeconds() int {
	return int(math.Ceil(e.Wait.Seconds()))
}

// outcome maps an operation error to a metrics/log status label
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrBlocked):
		return "blocked"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, ErrNoSession):
		return "no_session"
	case errors.Is(err, ErrSelfSubscribe):
		return "self_subscribe"
	case errors.Is(err, ErrReportNotPending):
		return "report_not_pending"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

package app

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	err = errors.Cause(err)
	if ire, ok := err.(invalidReqErr); ok {
		return ire.IsInvalidRequest()
	}

	return false
}

// TooManyRequestsError is returned when outgoing call rate limit is exceeded
type TooManyRequestsError string

// Error implements error interface
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exceeding call rate limit
func IsTooManyRequestsError(err error) bool {
	type tooManyReqErr interface {
		IsTooManyRequests() bool
	}

	err = errors.Cause(err)
	if tmr, ok := err.(tooManyReqErr); ok {
		return tmr.IsTooManyRequests()
	}

	return false
}

// TransientError is returned on failures worth retrying:
// transport errors, timeouts and 5xx responses.
type TransientError string

// Error implements error interface
func (e TransientError) Error() string {
	return string(e)
}

// IsTransient tells that this error is transient. Returns always true.
func (TransientError) IsTransient() bool {
	return true
}

// IsTransientError checks if given error is caused by a transient failure
func IsTransientError(err error) bool {
	type transientErr interface {
		IsTransient() bool
	}

	err = errors.Cause(err)
	if te, ok := err.(transientErr); ok {
		return te.IsTransient()
	}

	return false
}

// RateLimitedError is returned when the remote service reports exhausted quota.
// RetryAfter is the mandatory wait before issuing the next request.
type RateLimitedError struct {
	RetryAfter time.Duration
}

// Error implements error interface
func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// RateLimitRetryAfter returns the wait reported by the remote service.
func (e RateLimitedError) RateLimitRetryAfter() time.Duration {
	return e.RetryAfter
}

// IsRateLimitedError checks if given error is caused by remote rate limiting
func IsRateLimitedError(err error) bool {
	_, ok := RetryAfter(err)
	return ok
}

// RetryAfter extracts the mandatory wait from a rate limit error.
// Returns false if the error is not caused by rate limiting.
func RetryAfter(err error) (time.Duration, bool) {
	type rateLimitedErr interface {
		RateLimitRetryAfter() time.Duration
	}

	err = errors.Cause(err)
	if rle, ok := err.(rateLimitedErr); ok {
		return rle.RateLimitRetryAfter(), true
	}

	return 0, false
}

// NotFoundError is returned when requested resource doesn't exist
type NotFoundError string

// Error implements error interface
func (e NotFoundError) Error() string {
	return string(e)
}

// IsNotFound tells that this error is 'not found'. Returns always true.
func (NotFoundError) IsNotFound() bool {
	return true
}

// IsNotFoundError checks if given error is caused by a missing resource
func IsNotFoundError(err error) bool {
	type notFoundErr interface {
		IsNotFound() bool
	}

	err = errors.Cause(err)
	if nfe, ok := err.(notFoundErr); ok {
		return nfe.IsNotFound()
	}

	return false
}

// ClientError is returned on non-retryable 4xx responses.
type ClientError struct {
	Status int
}

// Error implements error interface
func (e ClientError) Error() string {
	return fmt.Sprintf("got invalid http status code: %d", e.Status)
}

// ClientErrorStatus returns the response status. Marks error as non-retryable.
func (e ClientError) ClientErrorStatus() int {
	return e.Status
}

// IsClientError checks if given error is caused by a non-retryable 4xx response
func IsClientError(err error) bool {
	type clientErr interface {
		ClientErrorStatus() int
	}

	err = errors.Cause(err)
	_, ok := err.(clientErr)

	return ok
}

// MalformedError is returned when a response doesn't match the expected schema
type MalformedError string

// Error implements error interface
func (e MalformedError) Error() string {
	return string(e)
}

// IsMalformed tells that this error is 'malformed response'. Returns always true.
func (MalformedError) IsMalformed() bool {
	return true
}

// IsMalformedError checks if given error is caused by an unexpected response shape
func IsMalformedError(err error) bool {
	type malformedErr interface {
		IsMalformed() bool
	}

	err = errors.Cause(err)
	if me, ok := err.(malformedErr); ok {
		return me.IsMalformed()
	}

	return false
}

// StatsUnavailableError is returned when contributor statistics
// stay in the 'still computing' state past the retry budget
type StatsUnavailableError string

// Error implements error interface
func (e StatsUnavailableError) Error() string {
	return string(e)
}

// IsStatsUnavailable tells that this error is 'stats unavailable'. Returns always true.
func (StatsUnavailableError) IsStatsUnavailable() bool {
	return true
}

// IsStatsUnavailableError checks if given error is caused by deferred stats computation timeout
func IsStatsUnavailableError(err error) bool {
	type statsUnavailableErr interface {
		IsStatsUnavailable() bool
	}

	err = errors.Cause(err)
	if sue, ok := err.(statsUnavailableErr); ok {
		return sue.IsStatsUnavailable()
	}

	return false
}

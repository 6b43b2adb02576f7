package smartreply

import "errors"

// Sentinel errors.
var (
	ErrSubmitInFlight    = errors.New("smartreply: submission already in progress")
	ErrQuotaExceeded     = errors.New("smartreply: daily quota exceeded")
	ErrTransportTimeout  = errors.New("smartreply: request deadline exceeded")
	ErrServerUnavailable = errors.New("smartreply: service unavailable")
	ErrServerRejected    = errors.New("smartreply: request rejected")
	ErrUnknownFailure    = errors.New("smartreply: request failed")
)

// IsRetryable returns true if the error describes a transient failure the
// user can retry without changing input and without having spent quota.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransportTimeout) || errors.Is(err, ErrServerUnavailable)
}

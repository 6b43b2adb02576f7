package smartreply

import (
	"fmt"
	"time"
)

// OutcomeKind tags the terminal result of one submission.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeQuotaExceeded
	OutcomeTransportTimeout
	OutcomeServerUnavailable
	OutcomeServerRejected
	OutcomeUnknownFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeQuotaExceeded:
		return "quota_exceeded"
	case OutcomeTransportTimeout:
		return "transport_timeout"
	case OutcomeServerUnavailable:
		return "server_unavailable"
	case OutcomeServerRejected:
		return "server_rejected"
	case OutcomeUnknownFailure:
		return "unknown_failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one reply submission. Exactly one
// Outcome is produced per submission; it is never partially applied.
type Outcome struct {
	Kind OutcomeKind

	// Text is the generated reply. Set only on OutcomeSuccess.
	Text string

	// Message is the server-supplied or generic failure message for
	// OutcomeServerRejected and OutcomeUnknownFailure.
	Message string

	// ServerQuota is the authoritative quota reported by the server,
	// when the response carried quota fields.
	ServerQuota *QuotaView

	// ResetHint is the time until the quota window resets, when known.
	// Set only on OutcomeQuotaExceeded; zero means unknown.
	ResetHint time.Duration
}

// Retryable reports whether the user can retry without changing input
// and without the attempt having consumed quota.
func (o Outcome) Retryable() bool {
	return o.Kind == OutcomeTransportTimeout || o.Kind == OutcomeServerUnavailable
}

// Err maps a non-success outcome to its sentinel error. Returns nil for
// OutcomeSuccess.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeQuotaExceeded:
		return ErrQuotaExceeded
	case OutcomeTransportTimeout:
		return ErrTransportTimeout
	case OutcomeServerUnavailable:
		return ErrServerUnavailable
	case OutcomeServerRejected:
		if o.Message != "" {
			return fmt.Errorf("%w: %s", ErrServerRejected, o.Message)
		}
		return ErrServerRejected
	default:
		if o.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnknownFailure, o.Message)
		}
		return ErrUnknownFailure
	}
}

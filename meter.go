package smartreply

import "time"

// Meter observes submission events for monitoring/logging.
type Meter interface {
	// OnSubmit is called when a submission is dispatched to the service.
	OnSubmit(event SubmitEvent)

	// OnOutcome is called when a submission reaches a terminal outcome.
	OnOutcome(event OutcomeEvent)
}

// SubmitEvent describes a submission that passed validation and the
// local quota check.
type SubmitEvent struct {
	ID         string
	Tone       Tone
	ContentLen int
	Remaining  int
}

// OutcomeEvent describes the terminal result of a submission.
type OutcomeEvent struct {
	ID       string
	Kind     OutcomeKind
	Duration time.Duration
	Quota    QuotaView
	Message  string
}

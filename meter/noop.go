package meter

import "github.com/smartreplyhq/smartreply"

// NoopMeter discards all events.
type NoopMeter struct{}

var _ smartreply.Meter = (*NoopMeter)(nil)

func (NoopMeter) OnSubmit(smartreply.SubmitEvent)   {}
func (NoopMeter) OnOutcome(smartreply.OutcomeEvent) {}

package smartreply

import "context"

// Generator is the boundary to the remote reply-generation service.
type Generator interface {
	// GenerateReply performs one generation attempt, bounded in time,
	// and classifies the result. It never mutates quota state and never
	// retries; failures are reported as outcome kinds, not errors.
	GenerateReply(ctx context.Context, req ReplyRequest) Outcome

	// CheckUsage fetches the server-reported quota state.
	CheckUsage(ctx context.Context) (QuotaView, error)
}

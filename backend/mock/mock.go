// Package mock provides a scripted Generator for tests and demos.
package mock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartreplyhq/smartreply"
)

// Generator is a mock reply generator.
type Generator struct {
	latency  time.Duration
	outcomes []smartreply.Outcome
	usage    smartreply.QuotaView
	usageErr error

	callCount  atomic.Int64
	usageCalls atomic.Int64

	mu      sync.Mutex
	next    int
	lastReq smartreply.ReplyRequest
	haveReq bool
}

var _ smartreply.Generator = (*Generator)(nil)

// Option configures a mock Generator.
type Option func(*Generator)

// New creates a mock generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		usage: smartreply.QuotaView{
			Used:        0,
			Remaining:   smartreply.DefaultMaxCalls,
			MaxCalls:    smartreply.DefaultMaxCalls,
			CanMakeCall: true,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithLatency adds simulated latency to each generation call.
func WithLatency(d time.Duration) Option {
	return func(g *Generator) { g.latency = d }
}

// WithOutcome appends a scripted outcome. Outcomes are returned in
// order; the last one repeats.
func WithOutcome(o smartreply.Outcome) Option {
	return func(g *Generator) { g.outcomes = append(g.outcomes, o) }
}

// WithUsage sets the quota view returned by CheckUsage.
func WithUsage(v smartreply.QuotaView) Option {
	return func(g *Generator) { g.usage = v }
}

// WithUsageError makes CheckUsage fail with err.
func WithUsageError(err error) Option {
	return func(g *Generator) { g.usageErr = err }
}

func (g *Generator) GenerateReply(ctx context.Context, req smartreply.ReplyRequest) smartreply.Outcome {
	if g.latency > 0 {
		select {
		case <-time.After(g.latency):
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return smartreply.Outcome{Kind: smartreply.OutcomeTransportTimeout}
			}
			return smartreply.Outcome{Kind: smartreply.OutcomeUnknownFailure, Message: ctx.Err().Error()}
		}
	}

	g.callCount.Add(1)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastReq = req
	g.haveReq = true

	if len(g.outcomes) == 0 {
		return smartreply.Outcome{Kind: smartreply.OutcomeSuccess, Text: "Hello from mock generator"}
	}
	out := g.outcomes[g.next]
	if g.next < len(g.outcomes)-1 {
		g.next++
	}
	return out
}

func (g *Generator) CheckUsage(context.Context) (smartreply.QuotaView, error) {
	g.usageCalls.Add(1)
	if g.usageErr != nil {
		return smartreply.QuotaView{}, g.usageErr
	}
	return g.usage, nil
}

// CallCount returns the number of generation attempts made.
func (g *Generator) CallCount() int64 { return g.callCount.Load() }

// UsageCalls returns the number of CheckUsage calls made.
func (g *Generator) UsageCalls() int64 { return g.usageCalls.Load() }

// LastRequest returns the most recent generation request, if any.
func (g *Generator) LastRequest() (smartreply.ReplyRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastReq, g.haveReq
}

package smartreply

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Orchestrator is the single entry point consumed by callers. It
// validates input, checks the local quota, performs one generation
// attempt through a Generator, and reconciles quota state with the
// outcome.
type Orchestrator struct {
	cfg        Config
	gen        Generator
	store      QuotaStore
	meter      Meter
	reconciler *Reconciler

	inFlight atomic.Bool

	mu            sync.Mutex
	lastView      QuotaView
	onQuotaChange func(QuotaView)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithQuotaStore sets the quota store.
func WithQuotaStore(qs QuotaStore) Option {
	return func(o *Orchestrator) { o.store = qs }
}

// WithMeter sets the meter.
func WithMeter(m Meter) Option {
	return func(o *Orchestrator) { o.meter = m }
}

// WithQuotaListener registers a callback invoked whenever the displayed
// quota view changes. It is called synchronously after reconciliation.
func WithQuotaListener(fn func(QuotaView)) Option {
	return func(o *Orchestrator) { o.onQuotaChange = fn }
}

// New creates an Orchestrator with the given config and generator.
// Default components (in-memory quota store, noop meter) are used unless
// overridden via options.
func New(cfg Config, gen Generator, opts ...Option) (*Orchestrator, error) {
	if gen == nil {
		return nil, fmt.Errorf("smartreply: a generator is required")
	}

	cfg.applyDefaults()

	o := &Orchestrator{
		cfg: cfg,
		gen: gen,
	}

	for _, opt := range opts {
		opt(o)
	}

	// Apply defaults after options.
	if o.store == nil {
		o.store = newMemoryStore(cfg.Window)
	}
	if o.meter == nil {
		o.meter = noopMeter{}
	}
	o.reconciler = NewReconciler(o.store, cfg.MaxCalls)
	o.lastView = View(o.store.Read(), cfg.MaxCalls)

	return o, nil
}

// Submit runs one reply submission end to end: validate, quota check,
// generate, reconcile. Exactly one generation attempt is made per call
// and no retries are performed. ErrSubmitInFlight is returned if a prior
// submission has not yet reconciled.
func (o *Orchestrator) Submit(ctx context.Context, req ReplyRequest) (Outcome, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInFlight
	}
	defer o.inFlight.Store(false)

	// Local validation short-circuit: no quota, no network.
	req.EmailContent = strings.TrimSpace(req.EmailContent)
	if req.EmailContent == "" {
		return Outcome{Kind: OutcomeServerRejected, Message: "email content is empty"}, nil
	}
	if len(req.EmailContent) > MaxEmailContentLen {
		msg := fmt.Sprintf("email content exceeds %d characters", MaxEmailContentLen)
		return Outcome{Kind: OutcomeServerRejected, Message: msg}, nil
	}
	req.Tone = NormalizeTone(req.Tone)

	id := uuid.New().String()

	// Re-derive from the freshest record; the in-flight guard keeps this
	// check-then-act free of overlapping submissions.
	rec := o.store.Read()
	view := View(rec, o.cfg.MaxCalls)
	if !view.CanMakeCall {
		out := Outcome{Kind: OutcomeQuotaExceeded, ResetHint: o.resetHint(rec)}
		o.setView(view)
		o.meter.OnOutcome(OutcomeEvent{ID: id, Kind: out.Kind, Quota: view})
		return out, nil
	}

	o.meter.OnSubmit(SubmitEvent{
		ID:         id,
		Tone:       req.Tone,
		ContentLen: len(req.EmailContent),
		Remaining:  view.Remaining,
	})

	start := time.Now()
	out := o.gen.GenerateReply(ctx, req)
	duration := time.Since(start)

	view = o.reconciler.Reconcile(out)
	o.setView(view)

	o.meter.OnOutcome(OutcomeEvent{
		ID:       id,
		Kind:     out.Kind,
		Duration: duration,
		Quota:    view,
		Message:  out.Message,
	})

	return out, nil
}

// QuotaView returns the most recently reconciled quota view.
func (o *Orchestrator) QuotaView() QuotaView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastView
}

// RefreshUsage seeds the displayed view from the remote quota-check
// endpoint. On failure it falls back to the locally derived view without
// surfacing the error.
func (o *Orchestrator) RefreshUsage(ctx context.Context) QuotaView {
	sq, err := o.gen.CheckUsage(ctx)
	if err != nil {
		v := View(o.store.Read(), o.cfg.MaxCalls)
		o.setView(v)
		return v
	}

	o.store.SetUsed(sq.Used)
	o.setView(sq)
	return sq
}

func (o *Orchestrator) resetHint(rec QuotaRecord) time.Duration {
	d := time.Until(rec.WindowStartedAt.Add(o.cfg.Window))
	if d < 0 {
		d = 0
	}
	return d
}

func (o *Orchestrator) setView(v QuotaView) {
	o.mu.Lock()
	changed := v != o.lastView
	o.lastView = v
	fn := o.onQuotaChange
	o.mu.Unlock()

	if changed && fn != nil {
		fn(v)
	}
}

// memoryStore is the default non-durable quota store.
type memoryStore struct {
	mu     sync.Mutex
	rec    QuotaRecord
	window time.Duration
}

func newMemoryStore(window time.Duration) *memoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &memoryStore{window: window}
}

func (s *memoryStore) Read() QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeReset()
	return s.rec
}

func (s *memoryStore) Increment() QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeReset()
	s.rec.Count++
	return s.rec
}

func (s *memoryStore) SetUsed(used int) QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeReset()
	if used < 0 {
		used = 0
	}
	s.rec.Count = used
	return s.rec
}

func (s *memoryStore) maybeReset() {
	now := time.Now()
	if s.rec.WindowStartedAt.IsZero() || now.Sub(s.rec.WindowStartedAt) >= s.window {
		s.rec = QuotaRecord{WindowStartedAt: now}
	}
}

// noopMeter is a meter that does nothing.
type noopMeter struct{}

func (noopMeter) OnSubmit(SubmitEvent)   {}
func (noopMeter) OnOutcome(OutcomeEvent) {}

package smartreply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sr "github.com/smartreplyhq/smartreply"
	"github.com/smartreplyhq/smartreply/quota"
)

func TestReconcile_SuccessWithServerQuota_AdoptedVerbatim(t *testing.T) {
	store := quota.NewStore(quota.NewMemoryBackend())
	store.SetUsed(4) // stale local counter
	r := sr.NewReconciler(store, sr.DefaultMaxCalls)

	serverQuota := sr.QuotaView{Used: 2, Remaining: 3, MaxCalls: 5, CanMakeCall: true}
	view := r.Reconcile(sr.Outcome{Kind: sr.OutcomeSuccess, Text: "hi", ServerQuota: &serverQuota})

	assert.Equal(t, serverQuota, view)
	// Server count written through for the next session.
	assert.Equal(t, 2, store.Read().Count)
}

func TestReconcile_SuccessWithoutServerQuota_Increments(t *testing.T) {
	store := quota.NewStore(quota.NewMemoryBackend())
	r := sr.NewReconciler(store, sr.DefaultMaxCalls)

	view := r.Reconcile(sr.Outcome{Kind: sr.OutcomeSuccess, Text: "hi"})
	assert.Equal(t, 1, view.Used)
	assert.Equal(t, 4, view.Remaining)

	view = r.Reconcile(sr.Outcome{Kind: sr.OutcomeSuccess, Text: "hi"})
	assert.Equal(t, 2, view.Used)
}

func TestReconcile_QuotaExceeded_ForcesBlockedView(t *testing.T) {
	store := quota.NewStore(quota.NewMemoryBackend())
	store.SetUsed(1)
	r := sr.NewReconciler(store, sr.DefaultMaxCalls)

	view := r.Reconcile(sr.Outcome{Kind: sr.OutcomeQuotaExceeded})
	assert.False(t, view.CanMakeCall)
	assert.Equal(t, 0, view.Remaining)
	assert.Equal(t, sr.DefaultMaxCalls, view.Used)

	// The counter is not mutated.
	assert.Equal(t, 1, store.Read().Count)
}

func TestReconcile_QuotaExceeded_UsesServerCountWhenPresent(t *testing.T) {
	store := quota.NewStore(quota.NewMemoryBackend())
	r := sr.NewReconciler(store, sr.DefaultMaxCalls)

	serverQuota := sr.QuotaView{Used: 7, Remaining: 0, MaxCalls: 5, CanMakeCall: false}
	view := r.Reconcile(sr.Outcome{Kind: sr.OutcomeQuotaExceeded, ServerQuota: &serverQuota})
	assert.Equal(t, 7, view.Used)
	assert.False(t, view.CanMakeCall)
}

func TestReconcile_OtherOutcomes_NoMutation(t *testing.T) {
	kinds := []sr.OutcomeKind{
		sr.OutcomeTransportTimeout,
		sr.OutcomeServerUnavailable,
		sr.OutcomeServerRejected,
		sr.OutcomeUnknownFailure,
	}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			store := quota.NewStore(quota.NewMemoryBackend())
			store.SetUsed(3)
			r := sr.NewReconciler(store, sr.DefaultMaxCalls)

			view := r.Reconcile(sr.Outcome{Kind: kind})
			assert.Equal(t, 3, view.Used)
			assert.Equal(t, 2, view.Remaining)
			assert.Equal(t, 3, store.Read().Count)
		})
	}
}
